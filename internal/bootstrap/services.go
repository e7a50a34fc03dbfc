package bootstrap

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hollowpine/frontier/internal/ability"
	"github.com/hollowpine/frontier/internal/config"
	"github.com/hollowpine/frontier/internal/curve"
	"github.com/hollowpine/frontier/internal/database/postgres"
	"github.com/hollowpine/frontier/internal/deathpenalty"
	"github.com/hollowpine/frontier/internal/depletion"
	"github.com/hollowpine/frontier/internal/event"
	"github.com/hollowpine/frontier/internal/profession"
	"github.com/hollowpine/frontier/internal/repository"
)

// Repositories holds all repository implementations used by the application.
type Repositories struct {
	Profession repository.ProfessionRepository
}

// InitializeRepositories creates all repository implementations.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Profession: postgres.NewProfessionRepository(dbPool),
	}
}

// Services holds the wired domain layer.
type Services struct {
	Curve      *curve.Table
	Cache      *profession.Cache
	Catalog    *ability.Catalog
	Tracker    *depletion.Tracker
	Engine     *ability.Engine
	Profession profession.Service
	Penalty    *deathpenalty.Engine
}

// InitializeServices wires the progression core: curve table, state cache,
// ability catalog and effect engine, the profession service and the death
// penalty engine. The depletion tracker doubles as the engine's effect sink.
func InitializeServices(cfg *config.Config, repos *Repositories, publisher *event.ResilientPublisher) (*Services, error) {
	table, err := curve.New(cfg.CurveBaseXP, cfg.CurveMultiplier, cfg.MaxLevel)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedBuildCurve, err)
	}

	cache := profession.NewCache(table)
	catalog := ability.NewCatalog()
	tracker := depletion.NewTracker(nil)
	engine := ability.NewEngine(catalog, tracker, cfg.AbilitiesEnabled, ability.DefaultBaseCapacities())

	professionService := profession.NewService(cache, table, repos.Profession, catalog, engine, publisher)

	penaltyEngine := deathpenalty.NewEngine(deathpenalty.Config{
		BasePercent:     cfg.PenaltyBasePercent,
		ProgressiveStep: cfg.PenaltyProgressiveStep,
		MaxPercent:      cfg.PenaltyMaxPercent,
		MercyThreshold:  cfg.MercyThreshold,
		MercyReduction:  cfg.MercyReduction,
		DecayHours:      cfg.PenaltyDecayHours,
	}, cache, table, publisher)

	return &Services{
		Curve:      table,
		Cache:      cache,
		Catalog:    catalog,
		Tracker:    tracker,
		Engine:     engine,
		Profession: professionService,
		Penalty:    penaltyEngine,
	}, nil
}
