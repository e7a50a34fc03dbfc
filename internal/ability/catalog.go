package ability

import (
	"github.com/hollowpine/frontier/internal/domain"
)

// Catalog is the static registry of the fifteen abilities: one per profession
// per tier. It is built once at startup and never mutated.
type Catalog struct {
	byProfession map[domain.Profession][]domain.Ability
	byID         map[string]domain.Ability
}

// NewCatalog builds the ability registry.
func NewCatalog() *Catalog {
	abilities := []domain.Ability{
		// Combat
		{
			ID: "combat_conditioning", Profession: domain.ProfessionCombat,
			Tier: domain.AbilityTier1, RequiredLevel: domain.Tier1UnlockLevel,
			Kind: domain.EffectXPMultiplier, XPMultiplier: 1.15,
			DisplayName: "Conditioning", Description: "Combat XP gains increased by 15%",
		},
		{
			ID: "combat_adrenaline_rush", Profession: domain.ProfessionCombat,
			Tier: domain.AbilityTier2, RequiredLevel: domain.Tier2UnlockLevel,
			Kind:        domain.EffectTriggered,
			DisplayName: "Adrenaline Rush", Description: "Brief speed burst after a kill",
		},
		{
			ID: "combat_second_wind", Profession: domain.ProfessionCombat,
			Tier: domain.AbilityTier3, RequiredLevel: domain.Tier3UnlockLevel,
			Kind: domain.EffectMaxCapacity, Stat: domain.StatEnergy, CapacityBonus: 20,
			DisplayName: "Second Wind", Description: "Maximum energy increased by 20",
		},

		// Mining
		{
			ID: "mining_prospectors_eye", Profession: domain.ProfessionMining,
			Tier: domain.AbilityTier1, RequiredLevel: domain.Tier1UnlockLevel,
			Kind: domain.EffectXPMultiplier, XPMultiplier: 1.15,
			DisplayName: "Prospector's Eye", Description: "Mining XP gains increased by 15%",
		},
		{
			ID: "mining_miners_endurance", Profession: domain.ProfessionMining,
			Tier: domain.AbilityTier2, RequiredLevel: domain.Tier2UnlockLevel,
			Kind:           domain.EffectRateModifier,
			ModifierSource: "professions:miners_endurance", RateMultiplier: 0.85,
			DisplayName: "Miner's Endurance", Description: "Stats deplete 15% slower",
		},
		{
			ID: "mining_lucky_strike", Profession: domain.ProfessionMining,
			Tier: domain.AbilityTier3, RequiredLevel: domain.Tier3UnlockLevel,
			Kind:        domain.EffectTriggered,
			DisplayName: "Lucky Strike", Description: "Chance to double ore from a vein",
		},

		// Logging
		{
			ID: "logging_timber_sense", Profession: domain.ProfessionLogging,
			Tier: domain.AbilityTier1, RequiredLevel: domain.Tier1UnlockLevel,
			Kind: domain.EffectXPMultiplier, XPMultiplier: 1.15,
			DisplayName: "Timber Sense", Description: "Logging XP gains increased by 15%",
		},
		{
			ID: "logging_hearty_appetite", Profession: domain.ProfessionLogging,
			Tier: domain.AbilityTier2, RequiredLevel: domain.Tier2UnlockLevel,
			Kind: domain.EffectMaxCapacity, Stat: domain.StatHunger, CapacityBonus: 25,
			DisplayName: "Hearty Appetite", Description: "Maximum hunger increased by 25",
		},
		{
			ID: "logging_woodland_stride", Profession: domain.ProfessionLogging,
			Tier: domain.AbilityTier3, RequiredLevel: domain.Tier3UnlockLevel,
			Kind:           domain.EffectRateModifier,
			ModifierSource: "professions:woodland_stride", RateMultiplier: 0.9,
			DisplayName: "Woodland Stride", Description: "Stats deplete 10% slower",
		},

		// Building
		{
			ID: "building_craftsmans_focus", Profession: domain.ProfessionBuilding,
			Tier: domain.AbilityTier1, RequiredLevel: domain.Tier1UnlockLevel,
			Kind: domain.EffectXPMultiplier, XPMultiplier: 1.15,
			DisplayName: "Craftsman's Focus", Description: "Building XP gains increased by 15%",
		},
		{
			ID: "building_efficient_motion", Profession: domain.ProfessionBuilding,
			Tier: domain.AbilityTier2, RequiredLevel: domain.Tier2UnlockLevel,
			Kind:           domain.EffectRateModifier,
			ModifierSource: "professions:efficient_motion", RateMultiplier: 0.9,
			DisplayName: "Efficient Motion", Description: "Stats deplete 10% slower",
		},
		{
			ID: "building_master_builder", Profession: domain.ProfessionBuilding,
			Tier: domain.AbilityTier3, RequiredLevel: domain.Tier3UnlockLevel,
			Kind:        domain.EffectTriggered,
			DisplayName: "Master Builder", Description: "Chance to place structures instantly",
		},

		// Gathering
		{
			ID: "gathering_foragers_instinct", Profession: domain.ProfessionGathering,
			Tier: domain.AbilityTier1, RequiredLevel: domain.Tier1UnlockLevel,
			Kind: domain.EffectXPMultiplier, XPMultiplier: 1.15,
			DisplayName: "Forager's Instinct", Description: "Gathering XP gains increased by 15%",
		},
		{
			ID: "gathering_survivalist", Profession: domain.ProfessionGathering,
			Tier: domain.AbilityTier2, RequiredLevel: domain.Tier2UnlockLevel,
			Kind:           domain.EffectRateModifier,
			ModifierSource: "professions:survivalist", RateMultiplier: 0.85,
			DisplayName: "Survivalist", Description: "Stats deplete 15% slower",
		},
		{
			ID: "gathering_natural_reserves", Profession: domain.ProfessionGathering,
			Tier: domain.AbilityTier3, RequiredLevel: domain.Tier3UnlockLevel,
			Kind: domain.EffectMaxCapacity, Stat: domain.StatThirst, CapacityBonus: 25,
			DisplayName: "Natural Reserves", Description: "Maximum thirst increased by 25",
		},
	}

	c := &Catalog{
		byProfession: make(map[domain.Profession][]domain.Ability, len(domain.Professions)),
		byID:         make(map[string]domain.Ability, len(abilities)),
	}
	for _, a := range abilities {
		c.byProfession[a.Profession] = append(c.byProfession[a.Profession], a)
		c.byID[a.ID] = a
	}
	return c
}

// AbilitiesFor returns the three abilities of a profession ordered by tier.
func (c *Catalog) AbilitiesFor(profession domain.Profession) []domain.Ability {
	src := c.byProfession[profession]
	out := make([]domain.Ability, len(src))
	copy(out, src)
	return out
}

// ByID looks up an ability by its unique id.
func (c *Catalog) ByID(id string) (domain.Ability, bool) {
	a, ok := c.byID[id]
	return a, ok
}

// ForTier returns the ability for a profession/tier pair.
func (c *Catalog) ForTier(profession domain.Profession, tier int) (domain.Ability, bool) {
	for _, a := range c.byProfession[profession] {
		if a.Tier == tier {
			return a, true
		}
	}
	return domain.Ability{}, false
}

// IsUnlockedAt reports whether the profession's ability of the given tier is
// unlocked at the given level.
func (c *Catalog) IsUnlockedAt(profession domain.Profession, level, tier int) bool {
	a, ok := c.ForTier(profession, tier)
	return ok && level >= a.RequiredLevel
}

// NewlyUnlocked returns abilities whose required level lies in
// (oldLevel, newLevel]. Used for one-time unlock notifications, distinct from
// standing-effect reconciliation.
func (c *Catalog) NewlyUnlocked(profession domain.Profession, oldLevel, newLevel int) []domain.Ability {
	var unlocked []domain.Ability
	for _, a := range c.byProfession[profession] {
		if a.RequiredLevel > oldLevel && a.RequiredLevel <= newLevel {
			unlocked = append(unlocked, a)
		}
	}
	return unlocked
}

// XPMultiplier returns the tier-1 multiplier for a profession at the given
// level, or 1.0 when the tier-1 ability is not yet unlocked. Applied by the
// award call site to amounts in transit; never registered as a standing
// modifier.
func (c *Catalog) XPMultiplier(profession domain.Profession, level int) float64 {
	a, ok := c.ForTier(profession, domain.AbilityTier1)
	if !ok || level < a.RequiredLevel {
		return 1.0
	}
	return a.XPMultiplier
}
