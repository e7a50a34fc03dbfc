package deathpenalty

// Log messages
const (
	LogMsgUntrackedDeath = "Death for untracked player ignored"
	LogMsgPenaltyApplied = "Death penalty applied"
	LogMsgApplyFailed    = "Death penalty could not be applied to profession"
	LogMsgWeightsDecayed = "Death weights fully decayed"
)
