package curve

import (
	"fmt"
	"sort"

	"github.com/hollowpine/frontier/internal/domain"
)

// Table maps XP to level and back using a precomputed threshold array.
// Construction is the only place the geometric series is evaluated; lookups
// are a binary search or a slice index.
type Table struct {
	baseXP     float64
	multiplier float64
	maxLevel   int

	// thresholds[level-1] = total XP required to reach level. thresholds[0] = 0.
	thresholds []int64
}

// New builds a curve table. baseXP is the XP needed to reach level 2,
// multiplier is the per-level growth factor, maxLevel the level cap.
// Invalid parameters are configuration errors and fail fast.
func New(baseXP float64, multiplier float64, maxLevel int) (*Table, error) {
	if baseXP <= 0 {
		return nil, fmt.Errorf("%w: base xp %v must be > 0", domain.ErrInvalidCurveConfig, baseXP)
	}
	if multiplier <= 1.0 {
		return nil, fmt.Errorf("%w: multiplier %v must be > 1.0", domain.ErrInvalidCurveConfig, multiplier)
	}
	if maxLevel <= 0 {
		return nil, fmt.Errorf("%w: max level %d must be > 0", domain.ErrInvalidCurveConfig, maxLevel)
	}

	thresholds := make([]int64, maxLevel)
	cumulative := 0.0
	step := baseXP
	for level := 2; level <= maxLevel; level++ {
		cumulative += step
		thresholds[level-1] = int64(cumulative)
		step *= multiplier
	}

	return &Table{
		baseXP:     baseXP,
		multiplier: multiplier,
		maxLevel:   maxLevel,
		thresholds: thresholds,
	}, nil
}

// MaxLevel returns the level cap.
func (t *Table) MaxLevel() int {
	return t.maxLevel
}

// LevelFor returns the highest level whose threshold is <= xp, clamped to
// [1, maxLevel]. Non-positive XP is always level 1.
func (t *Table) LevelFor(xp int64) int {
	if xp <= 0 {
		return 1
	}

	// First index whose threshold exceeds xp; the level before it is ours.
	idx := sort.Search(len(t.thresholds), func(i int) bool {
		return t.thresholds[i] > xp
	})
	if idx < 1 {
		return 1
	}
	return idx
}

// XPFor returns the total XP required to reach level. Levels at or below 1
// cost nothing; levels beyond the cap return the cap's threshold.
func (t *Table) XPFor(level int) int64 {
	if level <= 1 {
		return 0
	}
	if level > t.maxLevel {
		return t.thresholds[t.maxLevel-1]
	}
	return t.thresholds[level-1]
}

// ProgressToNextLevel returns the fraction in [0,1] of XP earned within the
// current level bracket. At max level, or if the bracket width is not positive
// (misconfiguration), it returns 1.0.
func (t *Table) ProgressToNextLevel(xp int64, level int) float64 {
	if level >= t.maxLevel {
		return 1.0
	}

	floor := t.XPFor(level)
	ceil := t.XPFor(level + 1)
	width := ceil - floor
	if width <= 0 {
		return 1.0
	}

	progress := float64(xp-floor) / float64(width)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1.0
	}
	return progress
}
