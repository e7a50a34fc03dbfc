package deathpenalty

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollowpine/frontier/internal/curve"
	"github.com/hollowpine/frontier/internal/domain"
	"github.com/hollowpine/frontier/internal/profession"
)

func testConfig() Config {
	return Config{
		BasePercent:     0.10,
		ProgressiveStep: 0.03,
		MaxPercent:      0.25,
		MercyThreshold:  5,
		MercyReduction:  0.5,
		DecayHours:      6,
	}
}

type fixture struct {
	engine *Engine
	cache  *profession.Cache
	table  *curve.Table
}

func newFixture(t *testing.T, cfg Config) *fixture {
	t.Helper()

	table, err := curve.New(100, 1.15, 100)
	require.NoError(t, err)

	cache := profession.NewCache(table)
	cache.InitializeDefaults("p1")

	return &fixture{
		engine: NewEngine(cfg, cache, table, nil),
		cache:  cache,
		table:  table,
	}
}

func (f *fixture) setXP(t *testing.T, prof domain.Profession, xp int64) {
	t.Helper()
	require.NoError(t, f.cache.SetXP("p1", prof, xp))
}

func (f *fixture) snapshot(t *testing.T, prof domain.Profession) domain.ProfessionSnapshot {
	t.Helper()
	snap, err := f.cache.Snapshot("p1", prof)
	require.NoError(t, err)
	return snap
}

func TestOnDeath_FirstDeathTargetsTwoHighest(t *testing.T) {
	f := newFixture(t, testConfig())

	// Stay inside the level bracket: level 10 -> 11 costs ~352 XP
	combatXP := f.table.XPFor(10) + 300
	miningXP := f.table.XPFor(5) + 100
	f.setXP(t, domain.ProfessionCombat, combatXP)
	f.setXP(t, domain.ProfessionMining, miningXP)
	f.setXP(t, domain.ProfessionLogging, 50)

	result, err := f.engine.OnDeath(context.Background(), "p1")
	require.NoError(t, err)

	assert.Equal(t, 1, result.DeathCount)
	assert.Equal(t, 0.10, result.PercentApplied)
	assert.False(t, result.MercyActive)
	require.Len(t, result.Losses, 2)

	// 10% of the 300 XP of level progress
	assert.Equal(t, domain.ProfessionCombat, result.Losses[0].Profession)
	assert.Equal(t, int64(30), result.Losses[0].XPLost)
	assert.Equal(t, combatXP-30, result.Losses[0].NewXP)

	assert.Equal(t, domain.ProfessionMining, result.Losses[1].Profession)
	assert.Equal(t, int64(10), result.Losses[1].XPLost)

	// Logging was not touched
	assert.Equal(t, int64(50), f.snapshot(t, domain.ProfessionLogging).XP)
}

func TestOnDeath_ProgressiveEscalation(t *testing.T) {
	f := newFixture(t, testConfig())
	f.setXP(t, domain.ProfessionCombat, f.table.XPFor(20)+10000)

	ctx := context.Background()
	var last domain.DeathPenaltyResult
	for i := 0; i < 4; i++ {
		var err error
		last, err = f.engine.OnDeath(ctx, "p1")
		require.NoError(t, err)
	}

	// Fourth death: 0.10 + 0.03 * 3
	assert.Equal(t, 4, last.DeathCount)
	assert.InDelta(t, 0.19, last.PercentApplied, 1e-9)
}

func TestOnDeath_PercentCaps(t *testing.T) {
	cfg := testConfig()
	cfg.MercyThreshold = 100 // isolate the cap from mercy
	f := newFixture(t, cfg)
	f.setXP(t, domain.ProfessionCombat, f.table.XPFor(20)+10000)

	ctx := context.Background()
	var last domain.DeathPenaltyResult
	for i := 0; i < 7; i++ {
		var err error
		last, err = f.engine.OnDeath(ctx, "p1")
		require.NoError(t, err)
	}

	// Raw would be 0.10 + 0.03 * 6 = 0.28
	assert.InDelta(t, 0.25, last.PercentApplied, 1e-9)
}

func TestOnDeath_MercyHalvesPenalty(t *testing.T) {
	f := newFixture(t, testConfig())
	f.setXP(t, domain.ProfessionCombat, f.table.XPFor(20)+10000)

	ctx := context.Background()
	var last domain.DeathPenaltyResult
	for i := 0; i < 5; i++ {
		var err error
		last, err = f.engine.OnDeath(ctx, "p1")
		require.NoError(t, err)
	}

	// Fifth death: raw 0.10 + 0.03 * 4 = 0.22, halved by mercy
	assert.True(t, last.MercyActive)
	assert.InDelta(t, 0.11, last.PercentApplied, 1e-9)
}

func TestOnDeath_NeverDropsBelowLevelFloor(t *testing.T) {
	f := newFixture(t, testConfig())

	floor := f.table.XPFor(10)
	f.setXP(t, domain.ProfessionCombat, floor+10)

	result, err := f.engine.OnDeath(context.Background(), "p1")
	require.NoError(t, err)

	snap := f.snapshot(t, domain.ProfessionCombat)
	assert.Equal(t, 10, snap.Level, "a death must never de-level")
	assert.GreaterOrEqual(t, snap.XP, floor)
	assert.Equal(t, int64(1), result.Losses[0].XPLost)
}

func TestOnDeath_AtExactFloorLosesNothing(t *testing.T) {
	f := newFixture(t, testConfig())

	floor := f.table.XPFor(10)
	f.setXP(t, domain.ProfessionCombat, floor)

	result, err := f.engine.OnDeath(context.Background(), "p1")
	require.NoError(t, err)

	assert.Equal(t, int64(0), result.Losses[0].XPLost)
	assert.Equal(t, floor, f.snapshot(t, domain.ProfessionCombat).XP)
}

func TestOnDeath_TieBreaksByDeclarationOrder(t *testing.T) {
	f := newFixture(t, testConfig())
	for _, p := range domain.Professions {
		f.setXP(t, p, 50)
	}

	result, err := f.engine.OnDeath(context.Background(), "p1")
	require.NoError(t, err)

	require.Len(t, result.Losses, 2)
	assert.Equal(t, domain.ProfessionCombat, result.Losses[0].Profession)
	assert.Equal(t, domain.ProfessionMining, result.Losses[1].Profession)
}

func TestOnDeath_UntrackedPlayerIsSoftNoop(t *testing.T) {
	f := newFixture(t, testConfig())

	result, err := f.engine.OnDeath(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Equal(t, 0, result.DeathCount)
	assert.Empty(t, result.Losses)
}

func TestTick_DecayForgivesEscalationButNotMercy(t *testing.T) {
	f := newFixture(t, testConfig())
	f.setXP(t, domain.ProfessionCombat, f.table.XPFor(20)+10000)

	now := time.Now()
	f.engine.now = func() time.Time { return now }

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := f.engine.OnDeath(ctx, "p1")
		require.NoError(t, err)
	}

	// Seven hours later every weight has fully decayed
	now = now.Add(7 * time.Hour)
	f.engine.Tick(ctx)

	result, err := f.engine.OnDeath(ctx, "p1")
	require.NoError(t, err)

	// Escalation restarts from the base, but the historical count kept growing
	assert.InDelta(t, 0.10, result.PercentApplied, 1e-9)
	assert.Equal(t, 4, result.DeathCount)
}

func TestTick_PartialDecayKeepsWeightsActive(t *testing.T) {
	f := newFixture(t, testConfig())
	f.setXP(t, domain.ProfessionCombat, f.table.XPFor(20)+10000)

	now := time.Now()
	f.engine.now = func() time.Time { return now }

	ctx := context.Background()
	_, err := f.engine.OnDeath(ctx, "p1")
	require.NoError(t, err)

	// Three of six hours elapsed: the weight is halved but still counts
	now = now.Add(3 * time.Hour)
	f.engine.Tick(ctx)

	result, err := f.engine.OnDeath(ctx, "p1")
	require.NoError(t, err)
	assert.InDelta(t, 0.13, result.PercentApplied, 1e-9)
}

func TestClearSession(t *testing.T) {
	f := newFixture(t, testConfig())
	f.setXP(t, domain.ProfessionCombat, f.table.XPFor(20)+10000)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := f.engine.OnDeath(ctx, "p1")
		require.NoError(t, err)
	}
	assert.Equal(t, 3, f.engine.DeathCount("p1"))

	f.engine.ClearSession("p1")
	assert.Equal(t, 0, f.engine.DeathCount("p1"))

	result, err := f.engine.OnDeath(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, result.DeathCount)
	assert.InDelta(t, 0.10, result.PercentApplied, 1e-9)
}
