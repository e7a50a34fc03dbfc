package domain

import "fmt"

// Profession identifies one of the five fixed survival professions.
// The set is closed: values outside this list are rejected at the boundary.
type Profession string

const (
	ProfessionCombat    Profession = "combat"
	ProfessionMining    Profession = "mining"
	ProfessionLogging   Profession = "logging"
	ProfessionBuilding  Profession = "building"
	ProfessionGathering Profession = "gathering"
)

// Professions lists every profession in declaration order. This order is the
// stable tie-break wherever two professions compare equal (death penalty
// target selection, snapshot iteration), so it must not be reordered.
var Professions = []Profession{
	ProfessionCombat,
	ProfessionMining,
	ProfessionLogging,
	ProfessionBuilding,
	ProfessionGathering,
}

// String returns the wire name of the profession
func (p Profession) String() string {
	return string(p)
}

// DisplayName returns the capitalized human-readable name
func (p Profession) DisplayName() string {
	switch p {
	case ProfessionCombat:
		return "Combat"
	case ProfessionMining:
		return "Mining"
	case ProfessionLogging:
		return "Logging"
	case ProfessionBuilding:
		return "Building"
	case ProfessionGathering:
		return "Gathering"
	default:
		return string(p)
	}
}

// ParseProfession validates a profession name from external input.
// Returns ErrUnknownProfession for anything outside the closed set.
func ParseProfession(name string) (Profession, error) {
	p := Profession(name)
	for _, known := range Professions {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownProfession, name)
}
