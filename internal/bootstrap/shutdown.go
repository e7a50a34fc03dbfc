package bootstrap

import (
	"context"
	"log/slog"

	"github.com/hollowpine/frontier/internal/event"
	"github.com/hollowpine/frontier/internal/profession"
	"github.com/hollowpine/frontier/internal/server"
	"github.com/hollowpine/frontier/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server             *server.Server
	AutosaveWorker     *worker.AutosaveWorker
	DecayWorker        *worker.DecayWorker
	ProfessionService  profession.Service
	ResilientPublisher *event.ResilientPublisher
}

// GracefulShutdown stops everything in dependency order:
//  1. HTTP server, so no new mutations arrive
//  2. workers, so no background pass races the final save
//  3. profession service, flushing every tracked player
//  4. event publisher, draining the retry queue to the dead-letter file
//
// Errors are logged but never stop the sequence; a failed step must not
// prevent the later saves.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if components.AutosaveWorker != nil {
		if err := components.AutosaveWorker.Shutdown(ctx); err != nil {
			slog.Error("Autosave worker shutdown failed", "error", err)
		}
	}

	if components.DecayWorker != nil {
		if err := components.DecayWorker.Shutdown(ctx); err != nil {
			slog.Error("Decay worker shutdown failed", "error", err)
		}
	}

	if components.ProfessionService != nil {
		if err := components.ProfessionService.Shutdown(ctx); err != nil {
			slog.Error(LogMsgProfessionShutdownFailed, "error", err)
		}
	}

	if components.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	slog.Info(LogMsgShutdownComplete)
}
