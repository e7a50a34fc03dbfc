package ability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollowpine/frontier/internal/domain"
)

func TestNewCatalog_FifteenAbilities(t *testing.T) {
	c := NewCatalog()

	seen := make(map[string]bool)
	for _, profession := range domain.Professions {
		abilities := c.AbilitiesFor(profession)
		require.Len(t, abilities, 3, "profession %s", profession)

		for i, a := range abilities {
			assert.Equal(t, i+1, a.Tier, "abilities must be ordered by tier")
			assert.Equal(t, profession, a.Profession)
			assert.False(t, seen[a.ID], "duplicate ability id %s", a.ID)
			seen[a.ID] = true
		}

		// Tier 1 is always the XP multiplier by convention
		assert.Equal(t, domain.EffectXPMultiplier, abilities[0].Kind)
		assert.Equal(t, domain.Tier1UnlockLevel, abilities[0].RequiredLevel)
		assert.Equal(t, domain.Tier2UnlockLevel, abilities[1].RequiredLevel)
		assert.Equal(t, domain.Tier3UnlockLevel, abilities[2].RequiredLevel)
	}
	assert.Len(t, seen, 15)
}

func TestIsUnlockedAt(t *testing.T) {
	c := NewCatalog()

	assert.False(t, c.IsUnlockedAt(domain.ProfessionMining, 44, domain.AbilityTier2))
	assert.True(t, c.IsUnlockedAt(domain.ProfessionMining, 45, domain.AbilityTier2))
	assert.True(t, c.IsUnlockedAt(domain.ProfessionMining, 100, domain.AbilityTier3))
	assert.False(t, c.IsUnlockedAt(domain.ProfessionMining, 99, domain.AbilityTier3))
}

func TestNewlyUnlocked(t *testing.T) {
	c := NewCatalog()

	// Crossing 15: tier 1 only
	unlocked := c.NewlyUnlocked(domain.ProfessionCombat, 14, 15)
	require.Len(t, unlocked, 1)
	assert.Equal(t, 1, unlocked[0].Tier)

	// Jump across two thresholds reports both
	unlocked = c.NewlyUnlocked(domain.ProfessionCombat, 10, 50)
	require.Len(t, unlocked, 2)

	// The boundary is exclusive on the old level
	assert.Empty(t, c.NewlyUnlocked(domain.ProfessionCombat, 15, 16))
	assert.Empty(t, c.NewlyUnlocked(domain.ProfessionCombat, 20, 20))
}

func TestXPMultiplier(t *testing.T) {
	c := NewCatalog()

	assert.Equal(t, 1.0, c.XPMultiplier(domain.ProfessionGathering, 14))
	assert.Equal(t, 1.15, c.XPMultiplier(domain.ProfessionGathering, 15))
	assert.Equal(t, 1.15, c.XPMultiplier(domain.ProfessionGathering, 100))
}

func TestByID(t *testing.T) {
	c := NewCatalog()

	a, ok := c.ByID("gathering_survivalist")
	require.True(t, ok)
	assert.Equal(t, domain.EffectRateModifier, a.Kind)
	assert.Equal(t, "professions:survivalist", a.ModifierSource)
	assert.Equal(t, 0.85, a.RateMultiplier)

	_, ok = c.ByID("nonexistent")
	assert.False(t, ok)
}
