package deathpenalty

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hollowpine/frontier/internal/domain"
	"github.com/hollowpine/frontier/internal/event"
	"github.com/hollowpine/frontier/internal/logger"
	"github.com/hollowpine/frontier/internal/metrics"
)

// StateStore is the slice of the profession cache the penalty engine needs:
// snapshot reads for targeting and XP overwrites for applying losses.
type StateStore interface {
	GetAllStats(playerID string) (map[domain.Profession]domain.ProfessionSnapshot, error)
	SetXP(playerID string, profession domain.Profession, xp int64) error
}

// Curve resolves level floors so a penalty can never cross a level boundary.
type Curve interface {
	XPFor(level int) int64
}

// Publisher is the slice of the event publisher the engine needs.
type Publisher interface {
	PublishWithRetry(ctx context.Context, evt event.Event)
}

// Config tunes the penalty formula. Percentages are fractions (0.10 = 10%).
type Config struct {
	BasePercent     float64
	ProgressiveStep float64
	MaxPercent      float64
	MercyThreshold  int
	MercyReduction  float64
	DecayHours      float64
}

// session holds one player's in-memory death history. It never persists; a
// fresh session starts clean.
type session struct {
	// deathCount only grows; it drives the mercy check.
	deathCount int

	// weights carries one decaying entry per death. Entries that reach zero
	// stop counting toward escalation but stay in deathCount.
	weights []float64

	// mercyActive is monotonic for the session once the threshold is hit.
	mercyActive bool

	lastDecay time.Time
}

// Engine applies the progressive death penalty: a growing percentage of
// level-progress XP stripped from the player's two most developed professions,
// softened by mercy after repeated deaths and forgiven gradually by decay.
type Engine struct {
	cfg       Config
	store     StateStore
	curve     Curve
	publisher Publisher

	mu       sync.Mutex
	sessions map[string]*session

	now func() time.Time
}

// NewEngine creates a penalty engine. publisher may be nil.
func NewEngine(cfg Config, store StateStore, curve Curve, publisher Publisher) *Engine {
	return &Engine{
		cfg:       cfg,
		store:     store,
		curve:     curve,
		publisher: publisher,
		sessions:  make(map[string]*session),
		now:       time.Now,
	}
}

// OnDeath records a death and applies the XP penalty to the player's two
// highest-XP professions. Only progress within the current level bracket is at
// stake: the new XP never drops below the level's floor, so a death cannot
// de-level a profession.
//
// Deaths of untracked players are a logged no-op.
func (e *Engine) OnDeath(ctx context.Context, playerID string) (domain.DeathPenaltyResult, error) {
	log := logger.FromContext(ctx)

	stats, err := e.store.GetAllStats(playerID)
	if err != nil {
		log.Warn(LogMsgUntrackedDeath, "player_id", playerID)
		return domain.DeathPenaltyResult{PlayerID: playerID}, nil
	}

	deathCount, percent, mercy := e.recordDeath(playerID)
	metrics.Deaths.Inc()

	result := domain.DeathPenaltyResult{
		PlayerID:       playerID,
		DeathCount:     deathCount,
		PercentApplied: percent,
		MercyActive:    mercy,
	}

	for _, snap := range targetProfessions(stats) {
		floor := e.curve.XPFor(snap.Level)
		progress := snap.XP - floor
		if progress <= 0 {
			result.Losses = append(result.Losses, domain.ProfessionXPLoss{
				Profession: snap.Profession, XPLost: 0, NewXP: snap.XP,
			})
			continue
		}

		lost := int64(float64(progress) * percent)
		newXP := snap.XP - lost
		if newXP < floor {
			newXP = floor
			lost = snap.XP - floor
		}

		if err := e.store.SetXP(playerID, snap.Profession, newXP); err != nil {
			log.Error(LogMsgApplyFailed, "player_id", playerID, "profession", snap.Profession, "error", err)
			continue
		}

		metrics.PenaltyXPLost.WithLabelValues(string(snap.Profession)).Add(float64(lost))
		result.Losses = append(result.Losses, domain.ProfessionXPLoss{
			Profession: snap.Profession, XPLost: lost, NewXP: newXP,
		})
	}

	log.Info(LogMsgPenaltyApplied,
		"player_id", playerID,
		"death_count", deathCount,
		"percent", percent,
		"mercy", mercy,
	)

	if e.publisher != nil {
		e.publisher.PublishWithRetry(ctx, event.NewDeathPenaltyEvent(result))
	}
	return result, nil
}

// recordDeath mutates the session and returns the death count, the penalty
// percent for this death and whether mercy softened it.
func (e *Engine) recordDeath(playerID string) (int, float64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := e.sessions[playerID]
	if st == nil {
		st = &session{lastDecay: e.now()}
		e.sessions[playerID] = st
	}

	st.deathCount++
	st.weights = append(st.weights, 1.0)
	if st.deathCount >= e.cfg.MercyThreshold {
		st.mercyActive = true
	}

	// Escalation counts only deaths whose weight has not fully decayed.
	effective := 0
	for _, w := range st.weights {
		if w > 0 {
			effective++
		}
	}

	percent := e.cfg.BasePercent + e.cfg.ProgressiveStep*float64(effective-1)
	if percent > e.cfg.MaxPercent {
		percent = e.cfg.MaxPercent
	}
	if st.mercyActive {
		percent *= 1 - e.cfg.MercyReduction
	}

	return st.deathCount, percent, st.mercyActive
}

// targetProfessions picks the two highest-XP professions. Ties break by the
// fixed profession declaration order so the choice is deterministic.
func targetProfessions(stats map[domain.Profession]domain.ProfessionSnapshot) []domain.ProfessionSnapshot {
	ordered := make([]domain.ProfessionSnapshot, 0, len(stats))
	for _, p := range domain.Professions {
		if snap, ok := stats[p]; ok {
			ordered = append(ordered, snap)
		}
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].XP > ordered[j].XP
	})

	if len(ordered) > 2 {
		ordered = ordered[:2]
	}
	return ordered
}

// Tick advances weight decay for all sessions. Each death weight falls
// linearly from 1 to 0 over DecayHours; the decay worker calls this on its
// interval.
func (e *Engine) Tick(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cfg.DecayHours <= 0 {
		return
	}

	now := e.now()
	perHour := 1.0 / e.cfg.DecayHours

	for playerID, st := range e.sessions {
		elapsed := now.Sub(st.lastDecay).Hours()
		if elapsed <= 0 {
			continue
		}
		st.lastDecay = now

		decayed := 0
		for i, w := range st.weights {
			if w <= 0 {
				continue
			}
			w -= elapsed * perHour
			if w < 0 {
				w = 0
			}
			st.weights[i] = w
			if w == 0 {
				decayed++
			}
		}
		if decayed > 0 {
			logger.FromContext(ctx).Debug(LogMsgWeightsDecayed, "player_id", playerID, "forgiven", decayed)
		}
	}
}

// DeathCount returns the session death count, zero for unknown players.
func (e *Engine) DeathCount(playerID string) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	if st, ok := e.sessions[playerID]; ok {
		return st.deathCount
	}
	return 0
}

// ClearSession drops a player's death history, typically on disconnect.
func (e *Engine) ClearSession(playerID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.sessions, playerID)
}
