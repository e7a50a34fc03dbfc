package depletion

import (
	"fmt"
	"sync"

	"github.com/hollowpine/frontier/internal/domain"
)

// DisplayNotifier pushes HUD refreshes to whatever is rendering player stats.
type DisplayNotifier interface {
	RefreshHUD(playerID string)
}

// playerState holds the depletion-side knobs the ability engine writes:
// stat ceilings and the named multiplicative rate-modifier stack.
type playerState struct {
	maxCapacity map[domain.StatKind]float64
	modifiers   map[string]float64
}

// Tracker owns per-player depletion tuning. It is the effect sink consumed by
// the ability engine; the depletion tick itself lives outside this core and
// reads ceilings and the combined modifier from here.
type Tracker struct {
	mu      sync.RWMutex
	players map[string]*playerState
	display DisplayNotifier
}

// NewTracker creates a Tracker. display may be nil; refreshes are then dropped.
func NewTracker(display DisplayNotifier) *Tracker {
	return &Tracker{
		players: make(map[string]*playerState),
		display: display,
	}
}

func (t *Tracker) stateLocked(playerID string) *playerState {
	st := t.players[playerID]
	if st == nil {
		st = &playerState{
			maxCapacity: make(map[domain.StatKind]float64),
			modifiers:   make(map[string]float64),
		}
		t.players[playerID] = st
	}
	return st
}

// SetMaxCapacity sets the ceiling for one stat.
func (t *Tracker) SetMaxCapacity(playerID string, stat domain.StatKind, value float64) error {
	if value <= 0 {
		return fmt.Errorf("%w: capacity %v for %s must be positive", domain.ErrInvalidInput, value, stat)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.stateLocked(playerID).maxCapacity[stat] = value
	return nil
}

// MaxCapacity returns the ceiling for one stat, or fallback if none is set.
func (t *Tracker) MaxCapacity(playerID string, stat domain.StatKind, fallback float64) float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if st, ok := t.players[playerID]; ok {
		if v, ok := st.maxCapacity[stat]; ok {
			return v
		}
	}
	return fallback
}

// ApplyRateModifier registers a named multiplicative depletion-rate modifier.
// Re-registering a source overwrites its factor.
func (t *Tracker) ApplyRateModifier(playerID, sourceID string, multiplier float64) error {
	if multiplier <= 0 {
		return fmt.Errorf("%w: modifier %v from %s must be positive", domain.ErrInvalidInput, multiplier, sourceID)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.stateLocked(playerID).modifiers[sourceID] = multiplier
	return nil
}

// RemoveRateModifier unregisters a named modifier. Removing an absent source
// is a no-op.
func (t *Tracker) RemoveRateModifier(playerID, sourceID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if st, ok := t.players[playerID]; ok {
		delete(st.modifiers, sourceID)
	}
	return nil
}

// CombinedModifier returns the product of all active modifiers for a player.
// Two independent -15% modifiers compose to 0.7225, not 0.70.
func (t *Tracker) CombinedModifier(playerID string) float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	combined := 1.0
	if st, ok := t.players[playerID]; ok {
		for _, m := range st.modifiers {
			combined *= m
		}
	}
	return combined
}

// ForceDisplayRefresh pushes a HUD refresh for the player, if a display
// collaborator is attached.
func (t *Tracker) ForceDisplayRefresh(playerID string) {
	if t.display != nil {
		t.display.RefreshHUD(playerID)
	}
}

// ClearPlayer drops a player's depletion tuning on disconnect.
func (t *Tracker) ClearPlayer(playerID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.players, playerID)
}
