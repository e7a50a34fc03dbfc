package profession

import (
	"context"
	"errors"
	"fmt"

	"github.com/hollowpine/frontier/internal/ability"
	"github.com/hollowpine/frontier/internal/curve"
	"github.com/hollowpine/frontier/internal/domain"
	"github.com/hollowpine/frontier/internal/event"
	"github.com/hollowpine/frontier/internal/logger"
	"github.com/hollowpine/frontier/internal/metrics"
	"github.com/hollowpine/frontier/internal/repository"
)

// Publisher is the slice of the event publisher the service needs.
type Publisher interface {
	PublishWithRetry(ctx context.Context, evt event.Event)
}

// ProfessionProgress pairs a snapshot with the fractional progress toward the
// next level, for UI display.
type ProfessionProgress struct {
	Profession domain.Profession `json:"profession"`
	XP         int64             `json:"xp"`
	Level      int               `json:"level"`
	Progress   float64           `json:"progress"`
}

// Service is the orchestration layer over the profession cache: it applies
// tier 1 XP multipliers in transit, turns level-ups into events and ability
// effects, and owns the session lifecycle (join load, leave flush, autosave).
type Service interface {
	HandleJoin(ctx context.Context, playerID string) error
	HandleLeave(ctx context.Context, playerID string) error

	AwardXP(ctx context.Context, playerID, professionName string, amount int64, source string) (domain.XPAwardResult, error)
	GetAllStats(ctx context.Context, playerID string) (map[domain.Profession]domain.ProfessionSnapshot, error)
	GetProgress(ctx context.Context, playerID, professionName string) (ProfessionProgress, error)

	SetXP(ctx context.Context, playerID, professionName string, xp int64) error
	SetLevel(ctx context.Context, playerID, professionName string, level int) error
	ResetProfession(ctx context.Context, playerID, professionName string) error
	ResetAll(ctx context.Context, playerID string) error

	Flush(ctx context.Context) (int, error)
	Shutdown(ctx context.Context) error
}

type service struct {
	cache     *Cache
	table     *curve.Table
	repo      repository.ProfessionRepository
	catalog   *ability.Catalog
	engine    *ability.Engine
	publisher Publisher
}

// NewService wires the profession service. publisher may be nil in tests that
// do not care about events.
func NewService(cache *Cache, table *curve.Table, repo repository.ProfessionRepository, catalog *ability.Catalog, engine *ability.Engine, publisher Publisher) Service {
	return &service{
		cache:     cache,
		table:     table,
		repo:      repo,
		catalog:   catalog,
		engine:    engine,
		publisher: publisher,
	}
}

// HandleJoin makes the player playable immediately on defaults, then overlays
// persisted state and reconciles ability effects. A failed load is logged and
// the session continues on defaults rather than blocking the join.
func (s *service) HandleJoin(ctx context.Context, playerID string) error {
	log := logger.FromContext(ctx)

	created := s.cache.InitializeDefaults(playerID)

	records, err := s.repo.Ensure(ctx, playerID)
	if err != nil {
		log.Error(LogMsgLoadFailed, "player_id", playerID, "error", err)
	} else if err := s.cache.ApplyLoaded(playerID, records); err != nil {
		// Player left again before the load finished; nothing to do.
		log.Warn(LogMsgUntrackedLookup, "player_id", playerID)
		return nil
	}

	s.reconcile(ctx, playerID)

	log.Info(LogMsgPlayerJoined, "player_id", playerID, "created", created)
	return nil
}

// HandleLeave flushes the player's final records, evicts the cache entry and
// drops ability tracking. The eviction happens regardless of save outcome so
// a broken store cannot pin memory.
func (s *service) HandleLeave(ctx context.Context, playerID string) error {
	log := logger.FromContext(ctx)

	records, err := s.cache.Remove(playerID)
	if err != nil {
		log.Warn(LogMsgUntrackedLookup, "player_id", playerID)
		return nil
	}

	s.engine.ClearPlayer(playerID)

	if failed, err := s.repo.SaveAll(ctx, records); err != nil {
		metrics.ProfessionSaveFailures.Inc()
		log.Error(LogMsgLeaveSaveFailed, "player_id", playerID, "failed", failed, "error", err)
		return fmt.Errorf("saving records for %s: %w", playerID, err)
	}

	metrics.ProfessionSaves.Inc()
	log.Info(LogMsgPlayerLeft, "player_id", playerID)
	return nil
}

// AwardXP grants XP to one profession. The tier 1 multiplier, when unlocked at
// the level held before this award, boosts the amount in transit. A level-up
// publishes an event and applies any newly reached tier 2/3 effects.
//
// Awards to untracked players are a logged no-op, never an error: disconnect
// races with in-flight gameplay are routine.
func (s *service) AwardXP(ctx context.Context, playerID, professionName string, amount int64, source string) (domain.XPAwardResult, error) {
	log := logger.FromContext(ctx)

	prof, err := domain.ParseProfession(professionName)
	if err != nil {
		return domain.XPAwardResult{}, err
	}

	if amount <= 0 {
		log.Debug(LogMsgNonPositiveAward, "player_id", playerID, "profession", prof, "amount", amount)
		snap, snapErr := s.cache.Snapshot(playerID, prof)
		if snapErr != nil {
			return domain.XPAwardResult{Profession: prof}, nil
		}
		return domain.XPAwardResult{Profession: prof, NewXP: snap.XP, OldLevel: snap.Level, NewLevel: snap.Level}, nil
	}

	snap, err := s.cache.Snapshot(playerID, prof)
	if err != nil {
		log.Warn(LogMsgUntrackedAward, "player_id", playerID, "profession", prof, "amount", amount)
		return domain.XPAwardResult{Profession: prof}, nil
	}

	actual := amount
	if multiplier := s.catalog.XPMultiplier(prof, snap.Level); multiplier > 1.0 {
		actual = int64(float64(amount) * multiplier)
		s.publish(ctx, event.NewXPBoostedEvent(playerID, prof, amount, actual-amount, multiplier, source))
		log.Debug(LogMsgXPBoosted, "player_id", playerID, "profession", prof, "base", amount, "actual", actual)
	}

	result, err := s.cache.AwardXP(playerID, prof, actual)
	if err != nil {
		log.Warn(LogMsgUntrackedAward, "player_id", playerID, "profession", prof, "amount", actual)
		return domain.XPAwardResult{Profession: prof}, nil
	}

	metrics.XPAwarded.WithLabelValues(string(prof)).Add(float64(result.XPGained))

	if result.LeveledUp {
		s.onLevelUp(ctx, playerID, result, source)
	}
	return result, nil
}

// onLevelUp publishes the level-up event, announces newly crossed ability
// thresholds and applies their standing effects. Effect failures are logged,
// never propagated into the award path.
func (s *service) onLevelUp(ctx context.Context, playerID string, result domain.XPAwardResult, source string) {
	log := logger.FromContext(ctx)

	metrics.LevelUps.WithLabelValues(string(result.Profession)).Inc()
	log.Info(LogMsgLevelUp,
		"player_id", playerID,
		"profession", result.Profession,
		"old_level", result.OldLevel,
		"new_level", result.NewLevel,
	)

	unlocked := s.catalog.NewlyUnlocked(result.Profession, result.OldLevel, result.NewLevel)

	firstUnlocked := ""
	if len(unlocked) > 0 {
		firstUnlocked = unlocked[0].DisplayName
	}
	s.publish(ctx, event.NewLevelUpEvent(playerID, result.Profession, result.OldLevel, result.NewLevel, firstUnlocked, source))

	for _, a := range unlocked {
		log.Info(LogMsgAbilityUnlocked, "player_id", playerID, "ability_id", a.ID, "tier", a.Tier)
		s.publish(ctx, event.NewAbilityUnlockedEvent(playerID, a))

		var applyErr error
		switch a.Tier {
		case domain.AbilityTier2:
			applyErr = s.engine.ApplyTier2(ctx, playerID, a.Profession)
		case domain.AbilityTier3:
			applyErr = s.engine.ApplyTier3(ctx, playerID, a.Profession)
		}
		if applyErr != nil {
			log.Error(LogMsgEffectApplyFailed, "player_id", playerID, "ability_id", a.ID, "error", applyErr)
		}
	}
}

func (s *service) GetAllStats(ctx context.Context, playerID string) (map[domain.Profession]domain.ProfessionSnapshot, error) {
	return s.cache.GetAllStats(playerID)
}

func (s *service) GetProgress(ctx context.Context, playerID, professionName string) (ProfessionProgress, error) {
	prof, err := domain.ParseProfession(professionName)
	if err != nil {
		return ProfessionProgress{}, err
	}

	snap, err := s.cache.Snapshot(playerID, prof)
	if err != nil {
		return ProfessionProgress{}, err
	}

	return ProfessionProgress{
		Profession: prof,
		XP:         snap.XP,
		Level:      snap.Level,
		Progress:   s.table.ProgressToNextLevel(snap.XP, snap.Level),
	}, nil
}

// SetXP administratively overwrites a profession's XP and reconciles ability
// effects against the resulting levels, revoking anything no longer earned.
func (s *service) SetXP(ctx context.Context, playerID, professionName string, xp int64) error {
	prof, err := domain.ParseProfession(professionName)
	if err != nil {
		return err
	}
	if err := s.cache.SetXP(playerID, prof, xp); err != nil {
		return err
	}

	logger.FromContext(ctx).Info(LogMsgAdminOverride, "player_id", playerID, "profession", prof, "xp", xp)
	s.reconcile(ctx, playerID)
	return nil
}

// SetLevel administratively moves a profession to the start of a level.
func (s *service) SetLevel(ctx context.Context, playerID, professionName string, level int) error {
	prof, err := domain.ParseProfession(professionName)
	if err != nil {
		return err
	}
	if err := s.cache.SetLevel(playerID, prof, level); err != nil {
		return err
	}

	logger.FromContext(ctx).Info(LogMsgAdminOverride, "player_id", playerID, "profession", prof, "level", level)
	s.reconcile(ctx, playerID)
	return nil
}

// ResetProfession zeroes one profession.
func (s *service) ResetProfession(ctx context.Context, playerID, professionName string) error {
	return s.SetXP(ctx, playerID, professionName, 0)
}

// ResetAll zeroes every profession, reconciling once at the end.
func (s *service) ResetAll(ctx context.Context, playerID string) error {
	for _, prof := range domain.Professions {
		if err := s.cache.SetXP(playerID, prof, 0); err != nil {
			return err
		}
	}

	logger.FromContext(ctx).Info(LogMsgAdminOverride, "player_id", playerID, "reset", "all")
	s.reconcile(ctx, playerID)
	return nil
}

// reconcile re-derives the player's ability effects from current levels.
func (s *service) reconcile(ctx context.Context, playerID string) {
	levels, err := s.cache.Levels(playerID)
	if err != nil {
		return
	}
	if err := s.engine.ReapplyAll(ctx, playerID, levels); err != nil {
		logger.FromContext(ctx).Error(LogMsgReconcileFailed, "player_id", playerID, "error", err)
	}
}

// Flush persists every player mutated since the last flush. Players whose save
// fails are re-marked dirty so the next pass retries them. Returns the number
// of players flushed successfully.
func (s *service) Flush(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	dirty := s.cache.DirtyRecords()
	if len(dirty) == 0 {
		return 0, nil
	}

	flushed := 0
	var errs []error
	for playerID, records := range dirty {
		if failed, err := s.repo.SaveAll(ctx, records); err != nil {
			metrics.ProfessionSaveFailures.Inc()
			s.cache.MarkDirty(playerID)
			log.Error(LogMsgFlushFailed, "player_id", playerID, "failed", failed, "error", err)
			errs = append(errs, err)
			continue
		}
		metrics.ProfessionSaves.Inc()
		flushed++
	}
	return flushed, errors.Join(errs...)
}

// Shutdown saves every tracked player, dirty or not. Partial failure returns
// ErrSaveIncomplete so the caller can log the loss before exiting.
func (s *service) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)

	failedPlayers := 0
	for _, playerID := range s.cache.TrackedPlayers() {
		records, err := s.cache.Records(playerID)
		if err != nil {
			continue
		}
		if failed, err := s.repo.SaveAll(ctx, records); err != nil {
			metrics.ProfessionSaveFailures.Inc()
			failedPlayers++
			log.Error(LogMsgShutdownSaveFailed, "player_id", playerID, "failed", failed, "error", err)
			continue
		}
		metrics.ProfessionSaves.Inc()
	}

	if failedPlayers > 0 {
		return fmt.Errorf("%w: %d players not saved", domain.ErrSaveIncomplete, failedPlayers)
	}
	return nil
}

// publish sends an event when a publisher is attached.
func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, evt)
	}
}
