package profession

// Log messages
const (
	LogMsgPlayerJoined        = "Player profession state ready"
	LogMsgPlayerLeft          = "Player profession state flushed and evicted"
	LogMsgUntrackedAward      = "XP award for untracked player ignored"
	LogMsgUntrackedLookup     = "Stats lookup for untracked player"
	LogMsgLoadFailed          = "Profession load failed, continuing on defaults"
	LogMsgLevelUp             = "Profession level up"
	LogMsgAbilityUnlocked     = "Ability unlocked"
	LogMsgEffectApplyFailed   = "Ability effect application failed"
	LogMsgReconcileFailed     = "Ability reconciliation failed"
	LogMsgFlushFailed         = "Profession flush failed, records kept dirty"
	LogMsgLeaveSaveFailed     = "Final save on leave failed"
	LogMsgShutdownSaveFailed  = "Shutdown save incomplete"
	LogMsgNonPositiveAward    = "Ignoring non-positive XP award"
	LogMsgXPBoosted           = "Tier 1 multiplier boosted XP award"
	LogMsgAdminOverride       = "Administrative profession override"
)
