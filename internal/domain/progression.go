package domain

import "time"

// ProfessionSnapshot is an immutable copy of a player's progress in one
// profession. The live mutable state never leaves the cache; external readers
// only ever see snapshots.
type ProfessionSnapshot struct {
	Profession Profession `json:"profession"`
	XP         int64      `json:"xp"`
	Level      int        `json:"level"`
}

// ProfessionRecord is the persistence-gateway shape of one profession row.
type ProfessionRecord struct {
	PlayerID    string     `json:"player_id"`
	Profession  Profession `json:"profession"`
	XP          int64      `json:"xp"`
	Level       int        `json:"level"`
	LastUpdated time.Time  `json:"last_updated"`
}

// XPAwardResult contains the outcome of awarding XP
type XPAwardResult struct {
	Profession Profession `json:"profession"`
	XPGained   int64      `json:"xp_gained"`
	NewXP      int64      `json:"new_xp"`
	OldLevel   int        `json:"old_level"`
	NewLevel   int        `json:"new_level"`
	LeveledUp  bool       `json:"leveled_up"`
}

// StatKind names a depletion stat whose ceiling abilities can raise.
type StatKind string

const (
	StatHunger StatKind = "hunger"
	StatThirst StatKind = "thirst"
	StatEnergy StatKind = "energy"
)
