package bootstrap

// File system permissions
const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755
)

// Log messages for startup
const (
	LogMsgStartingFrontier      = "Starting frontier server"
	LogMsgConfigurationLoaded   = "Configuration loaded"
	LogMsgEventSystemReady      = "Event system initialized"
	LogMsgEventHandlersAttached = "Event handlers registered"
)

// Error messages for startup
const (
	ErrMsgFailedCreateDeadLetterDir = "failed to create dead-letter directory"
	ErrMsgFailedCreateDeadLetter    = "failed to create dead-letter writer"
	ErrMsgFailedBuildCurve          = "failed to build xp curve table"
)

// Shutdown messages
const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgProfessionShutdownFailed   = "Profession service shutdown failed"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
	LogMsgShutdownComplete           = "Shutdown complete"
)
