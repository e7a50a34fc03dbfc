package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hollowpine/frontier/internal/config"
	"github.com/hollowpine/frontier/internal/domain"
	"github.com/hollowpine/frontier/internal/event"
	"github.com/hollowpine/frontier/internal/logger"
)

// InitializeEventSystem creates the event bus and resilient publisher, making
// sure the dead-letter directory exists first.
func InitializeEventSystem(cfg *config.Config) (event.Bus, *event.ResilientPublisher, error) {
	eventBus := event.NewMemoryBus()

	if err := os.MkdirAll(filepath.Dir(cfg.EventDeadLetterPath), DirPermission); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateDeadLetterDir, err)
	}

	deadLetter, err := event.NewDeadLetterWriter(cfg.EventDeadLetterPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateDeadLetter, err)
	}

	publisher := event.NewResilientPublisher(eventBus, deadLetter)

	slog.Info(LogMsgEventSystemReady, "deadletter_path", cfg.EventDeadLetterPath)
	return eventBus, publisher, nil
}

// RegisterEventHandlers attaches the in-process consumers: structured audit
// logging for every progression event.
func RegisterEventHandlers(bus event.Bus) {
	bus.Subscribe(event.Type(domain.EventTypeLevelUp), func(ctx context.Context, evt event.Event) error {
		payload, err := event.DecodePayload[event.LevelUpPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		logger.FromContext(ctx).Info("Level up event",
			"player_id", payload.PlayerID,
			"profession", payload.Profession,
			"new_level", payload.NewLevel)
		return nil
	})

	bus.Subscribe(event.Type(domain.EventTypeAbilityUnlocked), func(ctx context.Context, evt event.Event) error {
		payload, err := event.DecodePayload[event.AbilityUnlockedPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		logger.FromContext(ctx).Info("Ability unlocked event",
			"player_id", payload.PlayerID,
			"ability_id", payload.AbilityID,
			"tier", payload.Tier)
		return nil
	})

	bus.Subscribe(event.Type(domain.EventTypeDeathPenalty), func(ctx context.Context, evt event.Event) error {
		payload, err := event.DecodePayload[event.DeathPenaltyPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		logger.FromContext(ctx).Info("Death penalty event",
			"player_id", payload.PlayerID,
			"death_count", payload.DeathCount,
			"percent", payload.PercentApplied,
			"mercy", payload.MercyActive)
		return nil
	})

	slog.Info(LogMsgEventHandlersAttached)
}
