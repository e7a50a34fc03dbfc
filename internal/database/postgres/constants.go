package postgres

import "time"

// Read-cache tuning for the profession repository
const (
	// ProfessionCacheSize bounds how many players' records are cached
	ProfessionCacheSize = 1024

	// ProfessionCacheTTL expires cached records; rapid reconnects hit the
	// cache, long absences read fresh
	ProfessionCacheTTL = 2 * time.Minute
)

// Log messages
const (
	LogMsgUpsertAffectedNoRows = "Profession upsert affected no rows"
)
