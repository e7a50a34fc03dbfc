package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hollowpine/frontier/internal/domain"
)

// ProfessionRepository implements the profession repository for PostgreSQL.
// A small TTL'd LRU in front of Ensure absorbs rapid reconnects; every write
// invalidates the player's cached entry.
type ProfessionRepository struct {
	db    *pgxpool.Pool
	cache *expirable.LRU[string, map[domain.Profession]domain.ProfessionRecord]
}

// NewProfessionRepository creates a new ProfessionRepository
func NewProfessionRepository(db *pgxpool.Pool) *ProfessionRepository {
	return &ProfessionRepository{
		db: db,
		cache: expirable.NewLRU[string, map[domain.Profession]domain.ProfessionRecord](
			ProfessionCacheSize, nil, ProfessionCacheTTL,
		),
	}
}

// Ensure returns the player's records, creating default rows for professions
// that have none yet. A first-time player and a returning one are
// indistinguishable to the caller.
func (r *ProfessionRepository) Ensure(ctx context.Context, playerID string) (map[domain.Profession]domain.ProfessionRecord, error) {
	if cached, ok := r.cache.Get(playerID); ok {
		return cloneRecords(cached), nil
	}

	records, err := r.fetch(ctx, playerID)
	if err != nil {
		return nil, err
	}

	// Create missing rows at their defaults
	now := time.Now()
	for _, p := range domain.Professions {
		if _, ok := records[p]; ok {
			continue
		}
		rec := domain.ProfessionRecord{
			PlayerID:    playerID,
			Profession:  p,
			XP:          0,
			Level:       1,
			LastUpdated: now,
		}
		if err := r.upsert(ctx, rec); err != nil {
			return nil, err
		}
		records[p] = rec
	}

	r.cache.Add(playerID, cloneRecords(records))
	return records, nil
}

func (r *ProfessionRepository) fetch(ctx context.Context, playerID string) (map[domain.Profession]domain.ProfessionRecord, error) {
	query := `
		SELECT player_id, profession, xp, level, last_updated
		FROM profession_records
		WHERE player_id = $1
	`

	rows, err := r.db.Query(ctx, query, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query profession records: %w", err)
	}
	defer rows.Close()

	records := make(map[domain.Profession]domain.ProfessionRecord, len(domain.Professions))
	for rows.Next() {
		var rec domain.ProfessionRecord
		var profession string
		err := rows.Scan(
			&rec.PlayerID,
			&profession,
			&rec.XP,
			&rec.Level,
			&rec.LastUpdated,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profession record: %w", err)
		}

		prof, err := domain.ParseProfession(profession)
		if err != nil {
			// A retired profession name in old data is skipped, not fatal
			slog.Default().Warn("Skipping unknown profession in stored records",
				"player_id", playerID, "profession", profession)
			continue
		}
		rec.Profession = prof
		records[prof] = rec
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return records, nil
}

func (r *ProfessionRepository) upsert(ctx context.Context, rec domain.ProfessionRecord) error {
	query := `
		INSERT INTO profession_records (player_id, profession, xp, level, last_updated)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (player_id, profession)
		DO UPDATE SET
			xp = EXCLUDED.xp,
			level = EXCLUDED.level,
			last_updated = EXCLUDED.last_updated
	`

	tag, err := r.db.Exec(ctx, query,
		rec.PlayerID,
		string(rec.Profession),
		rec.XP,
		rec.Level,
		rec.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profession record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		slog.Default().Warn(LogMsgUpsertAffectedNoRows,
			"player_id", rec.PlayerID,
			"profession", rec.Profession)
	}
	return nil
}

// Save upserts a single record.
func (r *ProfessionRepository) Save(ctx context.Context, record domain.ProfessionRecord) error {
	if err := r.upsert(ctx, record); err != nil {
		return err
	}
	r.cache.Remove(record.PlayerID)
	return nil
}

// SaveAll upserts a batch of records in one round trip, continuing past
// individual failures. Returns the failure count with the joined error.
func (r *ProfessionRepository) SaveAll(ctx context.Context, records []domain.ProfessionRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO profession_records (player_id, profession, xp, level, last_updated)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (player_id, profession)
		DO UPDATE SET
			xp = EXCLUDED.xp,
			level = EXCLUDED.level,
			last_updated = EXCLUDED.last_updated
	`

	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(query, rec.PlayerID, string(rec.Profession), rec.XP, rec.Level, rec.LastUpdated)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	failed := 0
	var errs []error
	for _, rec := range records {
		if _, err := results.Exec(); err != nil {
			failed++
			errs = append(errs, fmt.Errorf("save %s/%s: %w", rec.PlayerID, rec.Profession, err))
		}
		r.cache.Remove(rec.PlayerID)
	}

	return failed, errors.Join(errs...)
}

// Delete removes all of a player's records.
func (r *ProfessionRepository) Delete(ctx context.Context, playerID string) error {
	query := `
		DELETE FROM profession_records
		WHERE player_id = $1
	`

	if _, err := r.db.Exec(ctx, query, playerID); err != nil {
		return fmt.Errorf("failed to delete profession records: %w", err)
	}
	r.cache.Remove(playerID)
	return nil
}

func cloneRecords(in map[domain.Profession]domain.ProfessionRecord) map[domain.Profession]domain.ProfessionRecord {
	out := make(map[domain.Profession]domain.ProfessionRecord, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
