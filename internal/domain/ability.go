package domain

// EffectKind tags what an ability does when its level threshold is met.
// It drives a dispatch table in the effect engine instead of subclassing.
type EffectKind string

const (
	// EffectXPMultiplier boosts XP amounts in transit at the award call site.
	// It is never registered as a standing modifier.
	EffectXPMultiplier EffectKind = "xp_multiplier"

	// EffectMaxCapacity permanently raises a depletion stat ceiling.
	EffectMaxCapacity EffectKind = "max_capacity"

	// EffectRateModifier registers a named multiplicative depletion-rate
	// modifier. Independent modifiers compose by product.
	EffectRateModifier EffectKind = "rate_modifier"

	// EffectTriggered marks the ability unlocked for an event-handling
	// collaborator; no standing effect is applied.
	EffectTriggered EffectKind = "triggered"
)

// Ability tiers and the levels that unlock them.
const (
	AbilityTier1 = 1
	AbilityTier2 = 2
	AbilityTier3 = 3

	Tier1UnlockLevel = 15
	Tier2UnlockLevel = 45
	Tier3UnlockLevel = 100
)

// Ability is a statically defined, immutable ability entry. Effect parameters
// are flat fields; only the ones relevant to Kind are set.
type Ability struct {
	ID            string     `json:"id"`
	Profession    Profession `json:"profession"`
	Tier          int        `json:"tier"`
	RequiredLevel int        `json:"required_level"`
	Kind          EffectKind `json:"kind"`
	DisplayName   string     `json:"display_name"`
	Description   string     `json:"description"`

	// EffectXPMultiplier
	XPMultiplier float64 `json:"xp_multiplier,omitempty"`

	// EffectMaxCapacity
	Stat          StatKind `json:"stat,omitempty"`
	CapacityBonus float64  `json:"capacity_bonus,omitempty"`

	// EffectRateModifier
	ModifierSource string  `json:"modifier_source,omitempty"`
	RateMultiplier float64 `json:"rate_multiplier,omitempty"`
}
