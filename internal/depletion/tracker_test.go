package depletion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollowpine/frontier/internal/domain"
)

func TestModifierComposition(t *testing.T) {
	tr := NewTracker(nil)

	require.NoError(t, tr.ApplyRateModifier("p1", "professions:survivalist", 0.85))
	require.NoError(t, tr.ApplyRateModifier("p1", "professions:miners_endurance", 0.85))

	// Multiplicative, not additive: 0.85 * 0.85, not 0.70
	assert.InDelta(t, 0.7225, tr.CombinedModifier("p1"), 1e-9)

	require.NoError(t, tr.RemoveRateModifier("p1", "professions:survivalist"))
	assert.InDelta(t, 0.85, tr.CombinedModifier("p1"), 1e-9)
}

func TestCombinedModifier_DefaultsToOne(t *testing.T) {
	tr := NewTracker(nil)
	assert.Equal(t, 1.0, tr.CombinedModifier("unknown"))
}

func TestApplyRateModifier_OverwritesSameSource(t *testing.T) {
	tr := NewTracker(nil)

	require.NoError(t, tr.ApplyRateModifier("p1", "professions:survivalist", 0.85))
	require.NoError(t, tr.ApplyRateModifier("p1", "professions:survivalist", 0.9))

	assert.InDelta(t, 0.9, tr.CombinedModifier("p1"), 1e-9)
}

func TestApplyRateModifier_RejectsNonPositive(t *testing.T) {
	tr := NewTracker(nil)

	err := tr.ApplyRateModifier("p1", "bad", 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRemoveRateModifier_AbsentSourceIsNoop(t *testing.T) {
	tr := NewTracker(nil)
	require.NoError(t, tr.RemoveRateModifier("p1", "never_applied"))
}

func TestMaxCapacity(t *testing.T) {
	tr := NewTracker(nil)

	assert.Equal(t, 100.0, tr.MaxCapacity("p1", domain.StatHunger, 100))

	require.NoError(t, tr.SetMaxCapacity("p1", domain.StatHunger, 125))
	assert.Equal(t, 125.0, tr.MaxCapacity("p1", domain.StatHunger, 100))

	err := tr.SetMaxCapacity("p1", domain.StatHunger, -5)
	require.Error(t, err)
}

func TestClearPlayer(t *testing.T) {
	tr := NewTracker(nil)

	require.NoError(t, tr.ApplyRateModifier("p1", "professions:survivalist", 0.85))
	require.NoError(t, tr.SetMaxCapacity("p1", domain.StatThirst, 125))

	tr.ClearPlayer("p1")

	assert.Equal(t, 1.0, tr.CombinedModifier("p1"))
	assert.Equal(t, 100.0, tr.MaxCapacity("p1", domain.StatThirst, 100))
}

type recordingDisplay struct {
	refreshes []string
}

func (d *recordingDisplay) RefreshHUD(playerID string) {
	d.refreshes = append(d.refreshes, playerID)
}

func TestForceDisplayRefresh(t *testing.T) {
	display := &recordingDisplay{}
	tr := NewTracker(display)

	tr.ForceDisplayRefresh("p1")
	tr.ForceDisplayRefresh("p1")

	assert.Equal(t, []string{"p1", "p1"}, display.refreshes)

	// Nil display must not panic
	NewTracker(nil).ForceDisplayRefresh("p1")
}
