package profession

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/hollowpine/frontier/internal/concurrency"
	"github.com/hollowpine/frontier/internal/curve"
	"github.com/hollowpine/frontier/internal/domain"
)

// professionState is the hot-path mutable record for one (player, profession)
// pair. It never escapes the cache; readers get value-type snapshots.
type professionState struct {
	xp    int64
	level int
}

// playerEntry holds one player's five profession states plus a dirty flag for
// the autosave worker. The flag is atomic because the autosave scan reads it
// under the cache map lock while mutations set it under the per-player lock.
type playerEntry struct {
	states map[domain.Profession]*professionState
	dirty  atomic.Bool
}

// Cache is the authoritative in-memory source of truth for XP and level during
// a session. It is the only writer; the level invariant
// level == curve.LevelFor(xp) holds after every mutation, and no torn xp/level
// pair is ever observable.
type Cache struct {
	curve *curve.Table
	locks *concurrency.LockManager

	mu      sync.RWMutex
	players map[string]*playerEntry
}

// NewCache creates an empty cache backed by the given curve table.
func NewCache(table *curve.Table) *Cache {
	return &Cache{
		curve:   table,
		locks:   concurrency.NewLockManager(),
		players: make(map[string]*playerEntry),
	}
}

// InitializeDefaults creates level-1/zero-XP entries for all five professions,
// only if the player is absent. The check-and-insert is atomic so a reconnect
// racing a world switch cannot clobber already-loaded state.
func (c *Cache) InitializeDefaults(playerID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.players[playerID]; ok {
		return false
	}

	states := make(map[domain.Profession]*professionState, len(domain.Professions))
	for _, p := range domain.Professions {
		states[p] = &professionState{xp: 0, level: 1}
	}
	c.players[playerID] = &playerEntry{states: states}
	return true
}

// entry returns the player's entry, or nil when untracked.
func (c *Cache) entry(playerID string) *playerEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.players[playerID]
}

// ApplyLoaded overwrites the player's states with persisted records, typically
// right after InitializeDefaults once the asynchronous load completes. Levels
// are recomputed from XP so a stale stored level cannot break the invariant.
func (c *Cache) ApplyLoaded(playerID string, records map[domain.Profession]domain.ProfessionRecord) error {
	e := c.entry(playerID)
	if e == nil {
		return domain.ErrPlayerNotTracked
	}

	c.locks.WithLock(playerID, func() {
		for p, rec := range records {
			st, ok := e.states[p]
			if !ok {
				continue
			}
			st.xp = rec.XP
			st.level = c.curve.LevelFor(rec.XP)
		}
	})
	return nil
}

// AwardXP atomically adds XP to one profession and reports whether a level-up
// occurred. The old level is captured before the mutation and the new level
// recomputed after, inside one critical section, so concurrent awards can
// neither miss nor double-count a level-up. Non-positive amounts are a no-op.
func (c *Cache) AwardXP(playerID string, profession domain.Profession, amount int64) (domain.XPAwardResult, error) {
	result := domain.XPAwardResult{Profession: profession}

	e := c.entry(playerID)
	if e == nil {
		return result, domain.ErrPlayerNotTracked
	}
	st, ok := e.states[profession]
	if !ok {
		return result, domain.ErrUnknownProfession
	}

	if amount <= 0 {
		c.locks.WithLock(playerID, func() {
			result.NewXP = st.xp
			result.OldLevel = st.level
			result.NewLevel = st.level
		})
		return result, nil
	}

	c.locks.WithLock(playerID, func() {
		oldLevel := st.level
		st.xp += amount
		st.level = c.curve.LevelFor(st.xp)
		e.dirty.Store(true)

		result.XPGained = amount
		result.NewXP = st.xp
		result.OldLevel = oldLevel
		result.NewLevel = st.level
		result.LeveledUp = st.level > oldLevel
	})
	return result, nil
}

// SetXP administratively overwrites one profession's XP, recomputing the
// level. Negative values clamp to zero. Callers owning ability semantics must
// reconcile effects afterwards; the cache does not.
func (c *Cache) SetXP(playerID string, profession domain.Profession, xp int64) error {
	e := c.entry(playerID)
	if e == nil {
		return domain.ErrPlayerNotTracked
	}
	st, ok := e.states[profession]
	if !ok {
		return domain.ErrUnknownProfession
	}

	if xp < 0 {
		xp = 0
	}
	c.locks.WithLock(playerID, func() {
		st.xp = xp
		st.level = c.curve.LevelFor(xp)
		e.dirty.Store(true)
	})
	return nil
}

// SetLevel administratively sets a profession to the start of a level.
func (c *Cache) SetLevel(playerID string, profession domain.Profession, level int) error {
	if level < 1 {
		level = 1
	}
	if level > c.curve.MaxLevel() {
		level = c.curve.MaxLevel()
	}
	return c.SetXP(playerID, profession, c.curve.XPFor(level))
}

// Snapshot returns an immutable copy of one profession's state.
func (c *Cache) Snapshot(playerID string, profession domain.Profession) (domain.ProfessionSnapshot, error) {
	var snap domain.ProfessionSnapshot

	e := c.entry(playerID)
	if e == nil {
		return snap, domain.ErrPlayerNotTracked
	}
	st, ok := e.states[profession]
	if !ok {
		return snap, domain.ErrUnknownProfession
	}

	c.locks.WithLock(playerID, func() {
		snap = domain.ProfessionSnapshot{Profession: profession, XP: st.xp, Level: st.level}
	})
	return snap, nil
}

// GetAllStats returns immutable snapshots for all five professions. The live
// mutable states never leave the cache.
func (c *Cache) GetAllStats(playerID string) (map[domain.Profession]domain.ProfessionSnapshot, error) {
	e := c.entry(playerID)
	if e == nil {
		return nil, domain.ErrPlayerNotTracked
	}

	out := make(map[domain.Profession]domain.ProfessionSnapshot, len(domain.Professions))
	c.locks.WithLock(playerID, func() {
		for p, st := range e.states {
			out[p] = domain.ProfessionSnapshot{Profession: p, XP: st.xp, Level: st.level}
		}
	})
	return out, nil
}

// Levels returns the player's current level per profession, for ability
// reconciliation.
func (c *Cache) Levels(playerID string) (map[domain.Profession]int, error) {
	e := c.entry(playerID)
	if e == nil {
		return nil, domain.ErrPlayerNotTracked
	}

	out := make(map[domain.Profession]int, len(domain.Professions))
	c.locks.WithLock(playerID, func() {
		for p, st := range e.states {
			out[p] = st.level
		}
	})
	return out, nil
}

// Records returns persistence-shaped copies of the player's states.
func (c *Cache) Records(playerID string) ([]domain.ProfessionRecord, error) {
	e := c.entry(playerID)
	if e == nil {
		return nil, domain.ErrPlayerNotTracked
	}

	now := time.Now()
	records := make([]domain.ProfessionRecord, 0, len(domain.Professions))
	c.locks.WithLock(playerID, func() {
		for p, st := range e.states {
			records = append(records, domain.ProfessionRecord{
				PlayerID:    playerID,
				Profession:  p,
				XP:          st.xp,
				Level:       st.level,
				LastUpdated: now,
			})
		}
	})
	return records, nil
}

// DirtyRecords returns records for every player mutated since the last call
// and clears their dirty flags. The autosave worker flushes these.
func (c *Cache) DirtyRecords() map[string][]domain.ProfessionRecord {
	c.mu.RLock()
	ids := make([]string, 0, len(c.players))
	for id, e := range c.players {
		if e.dirty.Load() {
			ids = append(ids, id)
		}
	}
	c.mu.RUnlock()

	out := make(map[string][]domain.ProfessionRecord, len(ids))
	for _, id := range ids {
		e := c.entry(id)
		if e == nil {
			continue
		}
		now := time.Now()
		c.locks.WithLock(id, func() {
			records := make([]domain.ProfessionRecord, 0, len(e.states))
			for p, st := range e.states {
				records = append(records, domain.ProfessionRecord{
					PlayerID:    id,
					Profession:  p,
					XP:          st.xp,
					Level:       st.level,
					LastUpdated: now,
				})
			}
			e.dirty.Store(false)
			out[id] = records
		})
	}
	return out
}

// MarkDirty flags a player for the next autosave pass. Used when a save fails
// so the records are retried rather than dropped.
func (c *Cache) MarkDirty(playerID string) {
	e := c.entry(playerID)
	if e == nil {
		return
	}
	e.dirty.Store(true)
}

// Remove evicts a player from memory (not from the store), returning the final
// records for a last save. The per-player lock is forgotten afterwards.
func (c *Cache) Remove(playerID string) ([]domain.ProfessionRecord, error) {
	records, err := c.Records(playerID)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	delete(c.players, playerID)
	c.mu.Unlock()
	c.locks.Forget(playerID)

	return records, nil
}

// TrackedPlayers lists the player ids currently in memory.
func (c *Cache) TrackedPlayers() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make([]string, 0, len(c.players))
	for id := range c.players {
		ids = append(ids, id)
	}
	return ids
}
