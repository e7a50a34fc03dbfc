package domain

// ProfessionXPLoss records how much XP one profession lost to a death penalty.
type ProfessionXPLoss struct {
	Profession Profession `json:"profession"`
	XPLost     int64      `json:"xp_lost"`
	NewXP      int64      `json:"new_xp"`
}

// DeathPenaltyResult describes the outcome of applying the death penalty,
// intended for a feedback/notification collaborator.
type DeathPenaltyResult struct {
	PlayerID       string             `json:"player_id"`
	DeathCount     int                `json:"death_count"`
	PercentApplied float64            `json:"percent_applied"`
	MercyActive    bool               `json:"mercy_active"`
	Losses         []ProfessionXPLoss `json:"losses"`
}
