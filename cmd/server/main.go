package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hollowpine/frontier/internal/bootstrap"
	"github.com/hollowpine/frontier/internal/config"
	"github.com/hollowpine/frontier/internal/database"
	"github.com/hollowpine/frontier/internal/logger"
	"github.com/hollowpine/frontier/internal/server"
	"github.com/hollowpine/frontier/internal/worker"
)

const version = "0.3.0"

func main() {
	if err := run(); err != nil {
		slog.Error("Fatal startup error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger.Init(logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		"frontier-server",
		version,
		getEnvironment(),
		false,
	))

	slog.Info(bootstrap.LogMsgStartingFrontier, "version", version)
	slog.Info(bootstrap.LogMsgConfigurationLoaded, "port", cfg.Port, "max_level", cfg.MaxLevel)

	connString := cfg.GetDBConnString()
	if err := database.RunMigrations(connString); err != nil {
		return err
	}

	dbPool, err := database.NewPool(
		connString,
		database.DefaultMaxConnections,
		database.DefaultMaxConnIdleTime,
		database.DefaultMaxConnLifetime,
	)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	eventBus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}
	bootstrap.RegisterEventHandlers(eventBus)

	repos := bootstrap.InitializeRepositories(dbPool)
	services, err := bootstrap.InitializeServices(cfg, repos, publisher)
	if err != nil {
		return err
	}

	autosaveWorker := worker.NewAutosaveWorker(services.Profession, cfg.AutosaveInterval)
	autosaveWorker.Start()

	decayWorker := worker.NewDecayWorker(services.Penalty, cfg.DecayTickInterval)
	decayWorker.Start()

	srv := server.NewServer(
		cfg.Port,
		cfg.APIKey,
		cfg.TrustedProxies,
		dbPool,
		services.Profession,
		services.Penalty,
		services.Catalog,
		services.Tracker,
	)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case sig := <-stop:
		slog.Info("Received shutdown signal", "signal", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		AutosaveWorker:     autosaveWorker,
		DecayWorker:        decayWorker,
		ProfessionService:  services.Profession,
		ResilientPublisher: publisher,
	})

	return nil
}

func getEnvironment() string {
	if env := os.Getenv("ENVIRONMENT"); env != "" {
		return env
	}
	return "dev"
}
