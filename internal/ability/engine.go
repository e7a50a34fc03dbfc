package ability

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/hollowpine/frontier/internal/domain"
	"github.com/hollowpine/frontier/internal/logger"
	"github.com/hollowpine/frontier/internal/metrics"
)

// EffectSink is the surface of the depletion subsystem that standing ability
// effects write through. The engine never hands out its tracking state; the
// sink only ever sees computed values.
type EffectSink interface {
	SetMaxCapacity(playerID string, stat domain.StatKind, value float64) error
	ApplyRateModifier(playerID, sourceID string, multiplier float64) error
	RemoveRateModifier(playerID, sourceID string) error
	ForceDisplayRefresh(playerID string)
}

// playerEffects tracks which ability effects are currently applied for one
// player, split by tier so removal can target the right category.
type playerEffects struct {
	tier2 map[string]struct{}
	tier3 map[string]struct{}

	// Sum of capacity bonuses currently applied per stat, so stacked
	// max-capacity abilities accumulate instead of overwriting each other.
	capacityBonus map[domain.StatKind]float64
}

func newPlayerEffects() *playerEffects {
	return &playerEffects{
		tier2:         make(map[string]struct{}),
		tier3:         make(map[string]struct{}),
		capacityBonus: make(map[domain.StatKind]float64),
	}
}

func (p *playerEffects) tierSet(tier int) map[string]struct{} {
	if tier == domain.AbilityTier3 {
		return p.tier3
	}
	return p.tier2
}

// Engine keeps "abilities whose effect is applied" consistent with "abilities
// the player's levels qualify for", across joins, level-ups, level-downs and
// world switches. All mutations of the tracking sets go through its methods.
type Engine struct {
	catalog        *Catalog
	enabled        bool
	baseCapacities map[domain.StatKind]float64

	mu      sync.Mutex
	sink    EffectSink
	applied map[string]*playerEffects
}

// DefaultBaseCapacities returns the stat ceilings players start with.
func DefaultBaseCapacities() map[domain.StatKind]float64 {
	return map[domain.StatKind]float64{
		domain.StatHunger: 100,
		domain.StatThirst: 100,
		domain.StatEnergy: 100,
	}
}

// NewEngine creates the effect engine. sink may be nil if the depletion
// subsystem is not ready yet; effect application degrades to a logged no-op
// until SetSink is called.
func NewEngine(catalog *Catalog, sink EffectSink, enabled bool, baseCapacities map[domain.StatKind]float64) *Engine {
	if baseCapacities == nil {
		baseCapacities = DefaultBaseCapacities()
	}
	return &Engine{
		catalog:        catalog,
		sink:           sink,
		enabled:        enabled,
		baseCapacities: baseCapacities,
		applied:        make(map[string]*playerEffects),
	}
}

// SetSink late-binds the depletion subsystem once it is initialized.
func (e *Engine) SetSink(sink EffectSink) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sink = sink
}

// ApplyTier2 applies the tier-2 ability effect for a profession, if not
// already applied. Safe to call repeatedly.
func (e *Engine) ApplyTier2(ctx context.Context, playerID string, profession domain.Profession) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.applyLocked(ctx, playerID, profession, domain.AbilityTier2); err != nil {
		return err
	}
	e.refreshLocked(playerID)
	return nil
}

// ApplyTier3 applies the tier-3 ability effect for a profession, if not
// already applied. Safe to call repeatedly.
func (e *Engine) ApplyTier3(ctx context.Context, playerID string, profession domain.Profession) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.applyLocked(ctx, playerID, profession, domain.AbilityTier3); err != nil {
		return err
	}
	e.refreshLocked(playerID)
	return nil
}

// applyLocked performs the category-specific effect and marks the ability
// applied. The numeric effect and the tracking update happen together or not
// at all: a missing sink means neither happens.
func (e *Engine) applyLocked(ctx context.Context, playerID string, profession domain.Profession, tier int) error {
	if !e.enabled {
		return nil
	}

	a, ok := e.catalog.ForTier(profession, tier)
	if !ok {
		return fmt.Errorf("%w: %s tier %d", domain.ErrAbilityNotFound, profession, tier)
	}

	effects := e.applied[playerID]
	if effects == nil {
		effects = newPlayerEffects()
		e.applied[playerID] = effects
	}

	set := effects.tierSet(tier)
	if _, done := set[a.ID]; done {
		return nil
	}

	log := logger.FromContext(ctx)

	switch a.Kind {
	case domain.EffectMaxCapacity:
		if e.sink == nil {
			log.Warn("Effect sink unavailable, deferring ability effect",
				"player_id", playerID, "ability_id", a.ID)
			return nil
		}
		newBonus := effects.capacityBonus[a.Stat] + a.CapacityBonus
		if err := e.sink.SetMaxCapacity(playerID, a.Stat, e.baseCapacities[a.Stat]+newBonus); err != nil {
			return fmt.Errorf("set max capacity for %s: %w", a.ID, err)
		}
		effects.capacityBonus[a.Stat] = newBonus

	case domain.EffectRateModifier:
		if e.sink == nil {
			log.Warn("Effect sink unavailable, deferring ability effect",
				"player_id", playerID, "ability_id", a.ID)
			return nil
		}
		if err := e.sink.ApplyRateModifier(playerID, a.ModifierSource, a.RateMultiplier); err != nil {
			return fmt.Errorf("apply rate modifier for %s: %w", a.ID, err)
		}

	case domain.EffectTriggered:
		// Only unlock-state tracking; the event-handling collaborator queries
		// IsApplied when the trigger condition fires.

	default:
		return fmt.Errorf("%w: %s has kind %s at tier %d", domain.ErrAbilityNotFound, a.ID, a.Kind, tier)
	}

	set[a.ID] = struct{}{}
	metrics.AbilityEffectsApplied.WithLabelValues(strconv.Itoa(tier)).Inc()
	log.Debug("Applied ability effect", "player_id", playerID, "ability_id", a.ID, "tier", tier)
	return nil
}

// ReapplyAll reconciles a player's applied effects against their current
// levels. Called on join and after anything that may have lowered a level.
// The reset-then-reapply order is what makes effects removable: an
// incremental apply-only pass would leak stale bonuses once a level drops.
func (e *Engine) ReapplyAll(ctx context.Context, playerID string, levels map[domain.Profession]int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	metrics.Reconciliations.Inc()

	e.resetLocked(ctx, playerID)

	if !e.enabled {
		e.refreshLocked(playerID)
		return nil
	}

	// One bad profession must not leave the rest reset-but-not-reapplied.
	var errs []error
	for _, profession := range domain.Professions {
		level := levels[profession]
		if e.catalog.IsUnlockedAt(profession, level, domain.AbilityTier2) {
			if err := e.applyLocked(ctx, playerID, profession, domain.AbilityTier2); err != nil {
				errs = append(errs, err)
			}
		}
		if e.catalog.IsUnlockedAt(profession, level, domain.AbilityTier3) {
			if err := e.applyLocked(ctx, playerID, profession, domain.AbilityTier3); err != nil {
				errs = append(errs, err)
			}
		}
	}

	e.refreshLocked(playerID)
	return errors.Join(errs...)
}

// RemoveAll strips a player's standing effects and tracking without
// reapplying. Used when the ability subsystem is disabled via configuration.
func (e *Engine) RemoveAll(ctx context.Context, playerID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetLocked(ctx, playerID)
	e.refreshLocked(playerID)
}

// resetLocked returns every standing effect the engine owns to its base value
// and clears the tracking sets.
func (e *Engine) resetLocked(ctx context.Context, playerID string) {
	e.applied[playerID] = newPlayerEffects()

	if e.sink == nil {
		logger.FromContext(ctx).Warn("Effect sink unavailable during reset", "player_id", playerID)
		return
	}

	for stat, base := range e.baseCapacities {
		if err := e.sink.SetMaxCapacity(playerID, stat, base); err != nil {
			logger.FromContext(ctx).Error("Failed to reset max capacity",
				"player_id", playerID, "stat", stat, "error", err)
		}
	}

	// Remove every modifier this engine could have registered, applied or not;
	// removing an absent source is a no-op in the sink.
	for _, profession := range domain.Professions {
		for _, a := range e.catalog.AbilitiesFor(profession) {
			if a.Kind != domain.EffectRateModifier {
				continue
			}
			if err := e.sink.RemoveRateModifier(playerID, a.ModifierSource); err != nil {
				logger.FromContext(ctx).Error("Failed to remove rate modifier",
					"player_id", playerID, "source", a.ModifierSource, "error", err)
			}
		}
	}
}

// refreshLocked forces a display refresh. Forced, not threshold-gated: a
// capacity change must be visible immediately.
func (e *Engine) refreshLocked(playerID string) {
	if e.sink == nil {
		return
	}
	e.sink.ForceDisplayRefresh(playerID)
}

// IsApplied reports whether an ability's effect is currently applied (or, for
// triggered abilities, unlocked). Queried by gameplay event handlers.
func (e *Engine) IsApplied(playerID, abilityID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	effects, ok := e.applied[playerID]
	if !ok {
		return false
	}
	if _, ok := effects.tier2[abilityID]; ok {
		return true
	}
	_, ok = effects.tier3[abilityID]
	return ok
}

// AppliedIDs returns copies of the applied sets for a player, by tier.
func (e *Engine) AppliedIDs(playerID string) (tier2, tier3 []string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	effects, ok := e.applied[playerID]
	if !ok {
		return nil, nil
	}
	for id := range effects.tier2 {
		tier2 = append(tier2, id)
	}
	for id := range effects.tier3 {
		tier3 = append(tier3, id)
	}
	return tier2, tier3
}

// ClearPlayer drops a player's tracking state on disconnect.
func (e *Engine) ClearPlayer(playerID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.applied, playerID)
}
