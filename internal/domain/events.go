package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "profession.level_up")
const (
	// EventTypeLevelUp is published when a profession crosses a level threshold
	EventTypeLevelUp = "profession.level_up"

	// EventTypeAbilityUnlocked is published once per newly crossed ability threshold
	EventTypeAbilityUnlocked = "ability.unlocked"

	// EventTypeDeathPenalty is published after a death penalty is applied
	EventTypeDeathPenalty = "death.penalty_applied"

	// EventTypeXPCritical is published when an XP award is boosted by a tier-1 multiplier
	EventTypeXPCritical = "profession.xp_boosted"
)
