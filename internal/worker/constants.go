package worker

// Log Messages
const (
	LogMsgAutosaveStarting      = "Autosave worker started"
	LogMsgAutosavePassComplete  = "Autosave pass complete"
	LogMsgAutosavePassFailed    = "Autosave pass had failures"
	LogMsgAutosaveShuttingDown  = "Shutting down autosave worker"
	LogMsgAutosaveShutdownDone  = "Autosave worker shutdown complete"
	LogMsgAutosaveShutdownSlow  = "Autosave worker shutdown timeout, a save may still be running"
	LogMsgDecayStarting         = "Death weight decay worker started"
	LogMsgDecayShuttingDown     = "Shutting down decay worker"
	LogMsgDecayShutdownDone     = "Decay worker shutdown complete"
	LogMsgDecayShutdownSlow     = "Decay worker shutdown timeout"
)
