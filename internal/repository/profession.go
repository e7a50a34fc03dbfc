package repository

import (
	"context"

	"github.com/hollowpine/frontier/internal/domain"
)

// ProfessionRepository persists per-player profession records. Ensure is the
// load-or-create path used on join: missing rows are created at their
// defaults so a first-time player and a returning one look the same to the
// caller.
type ProfessionRepository interface {
	// Ensure returns the player's records, creating level-1/zero-XP rows for
	// any profession that has none yet.
	Ensure(ctx context.Context, playerID string) (map[domain.Profession]domain.ProfessionRecord, error)

	// Save upserts a single record.
	Save(ctx context.Context, record domain.ProfessionRecord) error

	// SaveAll upserts a batch of records, continuing past individual
	// failures. It returns how many records failed alongside the joined
	// error so callers can decide whether the flush was good enough.
	SaveAll(ctx context.Context, records []domain.ProfessionRecord) (failed int, err error)

	// Delete removes all of a player's records.
	Delete(ctx context.Context, playerID string) error
}
