package ability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollowpine/frontier/internal/domain"
)

// fakeSink records sink calls so tests can assert on the externally visible
// effects without pulling in the real depletion tracker.
type fakeSink struct {
	capacities map[string]map[domain.StatKind]float64
	modifiers  map[string]map[string]float64
	refreshes  int

	failSetCapacity map[domain.StatKind]error
}

func newFakeSink() *fakeSink {
	return &fakeSink{
		capacities: make(map[string]map[domain.StatKind]float64),
		modifiers:  make(map[string]map[string]float64),
	}
}

func (f *fakeSink) SetMaxCapacity(playerID string, stat domain.StatKind, value float64) error {
	if err := f.failSetCapacity[stat]; err != nil {
		return err
	}
	if f.capacities[playerID] == nil {
		f.capacities[playerID] = make(map[domain.StatKind]float64)
	}
	f.capacities[playerID][stat] = value
	return nil
}

func (f *fakeSink) ApplyRateModifier(playerID, sourceID string, multiplier float64) error {
	if f.modifiers[playerID] == nil {
		f.modifiers[playerID] = make(map[string]float64)
	}
	f.modifiers[playerID][sourceID] = multiplier
	return nil
}

func (f *fakeSink) RemoveRateModifier(playerID, sourceID string) error {
	delete(f.modifiers[playerID], sourceID)
	return nil
}

func (f *fakeSink) ForceDisplayRefresh(playerID string) {
	f.refreshes++
}

func newTestEngine(sink EffectSink) *Engine {
	return NewEngine(NewCatalog(), sink, true, DefaultBaseCapacities())
}

func TestApplyTier2_RateModifier(t *testing.T) {
	sink := newFakeSink()
	e := newTestEngine(sink)

	err := e.ApplyTier2(context.Background(), "p1", domain.ProfessionGathering)
	require.NoError(t, err)

	assert.Equal(t, 0.85, sink.modifiers["p1"]["professions:survivalist"])
	assert.True(t, e.IsApplied("p1", "gathering_survivalist"))
	assert.Equal(t, 1, sink.refreshes)
}

func TestApplyTier2_Idempotent(t *testing.T) {
	sink := newFakeSink()
	e := newTestEngine(sink)

	ctx := context.Background()
	require.NoError(t, e.ApplyTier2(ctx, "p1", domain.ProfessionLogging))
	require.NoError(t, e.ApplyTier2(ctx, "p1", domain.ProfessionLogging))
	require.NoError(t, e.ApplyTier2(ctx, "p1", domain.ProfessionLogging))

	// Capacity bonus applied exactly once: 100 base + 25
	assert.Equal(t, 125.0, sink.capacities["p1"][domain.StatHunger])
}

func TestApplyTier3_CapacityStacksAcrossAbilities(t *testing.T) {
	sink := newFakeSink()
	e := newTestEngine(sink)
	ctx := context.Background()

	// Both combat tier 3 (+20 energy) and any other stat remain independent
	require.NoError(t, e.ApplyTier3(ctx, "p1", domain.ProfessionCombat))
	require.NoError(t, e.ApplyTier3(ctx, "p1", domain.ProfessionGathering))

	assert.Equal(t, 120.0, sink.capacities["p1"][domain.StatEnergy])
	assert.Equal(t, 125.0, sink.capacities["p1"][domain.StatThirst])
}

func TestApplyTier2_TriggeredOnlyTracks(t *testing.T) {
	sink := newFakeSink()
	e := newTestEngine(sink)

	require.NoError(t, e.ApplyTier2(context.Background(), "p1", domain.ProfessionCombat))

	// Triggered abilities register no standing effect
	assert.Empty(t, sink.capacities["p1"])
	assert.Empty(t, sink.modifiers["p1"])
	assert.True(t, e.IsApplied("p1", "combat_adrenaline_rush"))
}

func TestApply_NilSinkDefersEffectAndTracking(t *testing.T) {
	e := newTestEngine(nil)

	err := e.ApplyTier2(context.Background(), "p1", domain.ProfessionGathering)
	require.NoError(t, err)

	// Neither the numeric bonus nor the tracking happened
	assert.False(t, e.IsApplied("p1", "gathering_survivalist"))
}

func TestReapplyAll_RevokesEffectsBelowThreshold(t *testing.T) {
	sink := newFakeSink()
	e := newTestEngine(sink)
	ctx := context.Background()

	// Player qualifies for logging tier 2 at level 50
	require.NoError(t, e.ReapplyAll(ctx, "p1", map[domain.Profession]int{
		domain.ProfessionLogging: 50,
	}))
	assert.Equal(t, 125.0, sink.capacities["p1"][domain.StatHunger])
	assert.True(t, e.IsApplied("p1", "logging_hearty_appetite"))

	// Level drops to 40: the tier 2 effect must be fully revoked
	require.NoError(t, e.ReapplyAll(ctx, "p1", map[domain.Profession]int{
		domain.ProfessionLogging: 40,
	}))
	assert.Equal(t, 100.0, sink.capacities["p1"][domain.StatHunger])
	assert.False(t, e.IsApplied("p1", "logging_hearty_appetite"))
}

func TestReapplyAll_AppliesAllQualifyingTiers(t *testing.T) {
	sink := newFakeSink()
	e := newTestEngine(sink)

	require.NoError(t, e.ReapplyAll(context.Background(), "p1", map[domain.Profession]int{
		domain.ProfessionCombat:    100,
		domain.ProfessionMining:    45,
		domain.ProfessionGathering: 44,
	}))

	tier2, tier3 := e.AppliedIDs("p1")
	assert.ElementsMatch(t, []string{"combat_adrenaline_rush", "mining_miners_endurance"}, tier2)
	assert.ElementsMatch(t, []string{"combat_second_wind"}, tier3)

	// Gathering at 44 just misses tier 2
	assert.False(t, e.IsApplied("p1", "gathering_survivalist"))

	// One refresh per reconciliation pass, not per ability
	assert.Equal(t, 1, sink.refreshes)
}

func TestReapplyAll_FaultInOneProfessionDoesNotStopOthers(t *testing.T) {
	sink := newFakeSink()
	sink.failSetCapacity = map[domain.StatKind]error{
		domain.StatHunger: errors.New("sink exploded"),
	}
	e := newTestEngine(sink)

	err := e.ReapplyAll(context.Background(), "p1", map[domain.Profession]int{
		domain.ProfessionLogging:   50, // hunger capacity, will fail
		domain.ProfessionGathering: 50, // rate modifier, must still apply
	})
	require.Error(t, err)

	assert.False(t, e.IsApplied("p1", "logging_hearty_appetite"))
	assert.True(t, e.IsApplied("p1", "gathering_survivalist"))
	assert.Equal(t, 0.85, sink.modifiers["p1"]["professions:survivalist"])
}

func TestRemoveAll(t *testing.T) {
	sink := newFakeSink()
	e := newTestEngine(sink)
	ctx := context.Background()

	require.NoError(t, e.ReapplyAll(ctx, "p1", map[domain.Profession]int{
		domain.ProfessionLogging:   50,
		domain.ProfessionGathering: 50,
	}))

	e.RemoveAll(ctx, "p1")

	assert.Equal(t, 100.0, sink.capacities["p1"][domain.StatHunger])
	assert.Empty(t, sink.modifiers["p1"])
	tier2, tier3 := e.AppliedIDs("p1")
	assert.Empty(t, tier2)
	assert.Empty(t, tier3)
}

func TestDisabledEngine_AppliesNothing(t *testing.T) {
	sink := newFakeSink()
	e := NewEngine(NewCatalog(), sink, false, DefaultBaseCapacities())

	require.NoError(t, e.ReapplyAll(context.Background(), "p1", map[domain.Profession]int{
		domain.ProfessionLogging: 50,
	}))

	assert.False(t, e.IsApplied("p1", "logging_hearty_appetite"))
	assert.Empty(t, sink.modifiers["p1"])
}

func TestClearPlayer(t *testing.T) {
	sink := newFakeSink()
	e := newTestEngine(sink)

	require.NoError(t, e.ApplyTier2(context.Background(), "p1", domain.ProfessionGathering))
	e.ClearPlayer("p1")

	assert.False(t, e.IsApplied("p1", "gathering_survivalist"))
}
