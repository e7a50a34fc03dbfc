package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hollowpine/frontier/internal/domain"
	"github.com/hollowpine/frontier/internal/metrics"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// Typed event payloads for type safety

// LevelUpPayloadV1 is the typed payload for profession level-up events
type LevelUpPayloadV1 struct {
	PlayerID        string            `json:"player_id"`
	Profession      domain.Profession `json:"profession"`
	OldLevel        int               `json:"old_level"`
	NewLevel        int               `json:"new_level"`
	UnlockedAbility string            `json:"unlocked_ability,omitempty"`
	Source          string            `json:"source,omitempty"`
}

// AbilityUnlockedPayloadV1 is the typed payload for one-time ability unlock events
type AbilityUnlockedPayloadV1 struct {
	PlayerID    string            `json:"player_id"`
	AbilityID   string            `json:"ability_id"`
	Profession  domain.Profession `json:"profession"`
	Tier        int               `json:"tier"`
	DisplayName string            `json:"display_name"`
}

// DeathPenaltyPayloadV1 is the typed payload for death penalty events
type DeathPenaltyPayloadV1 struct {
	PlayerID       string                    `json:"player_id"`
	DeathCount     int                       `json:"death_count"`
	PercentApplied float64                   `json:"percent_applied"`
	MercyActive    bool                      `json:"mercy_active"`
	Losses         []domain.ProfessionXPLoss `json:"losses"`
	Timestamp      int64                     `json:"timestamp"`
}

// XPBoostedPayloadV1 is the typed payload for tier-1 multiplier boost events
type XPBoostedPayloadV1 struct {
	PlayerID   string            `json:"player_id"`
	Profession domain.Profession `json:"profession"`
	BaseXP     int64             `json:"base_xp"`
	BonusXP    int64             `json:"bonus_xp"`
	Multiplier float64           `json:"multiplier"`
	Source     string            `json:"source,omitempty"`
}

// Type-safe event constructors

// NewLevelUpEvent creates a new profession level-up event
func NewLevelUpEvent(playerID string, profession domain.Profession, oldLevel, newLevel int, unlockedAbility, source string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeLevelUp),
		Payload: LevelUpPayloadV1{
			PlayerID:        playerID,
			Profession:      profession,
			OldLevel:        oldLevel,
			NewLevel:        newLevel,
			UnlockedAbility: unlockedAbility,
			Source:          source,
		},
	}
}

// NewAbilityUnlockedEvent creates a new ability unlock event
func NewAbilityUnlockedEvent(playerID string, ability domain.Ability) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeAbilityUnlocked),
		Payload: AbilityUnlockedPayloadV1{
			PlayerID:    playerID,
			AbilityID:   ability.ID,
			Profession:  ability.Profession,
			Tier:        ability.Tier,
			DisplayName: ability.DisplayName,
		},
	}
}

// NewDeathPenaltyEvent creates a new death penalty event
func NewDeathPenaltyEvent(result domain.DeathPenaltyResult) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeDeathPenalty),
		Payload: DeathPenaltyPayloadV1{
			PlayerID:       result.PlayerID,
			DeathCount:     result.DeathCount,
			PercentApplied: result.PercentApplied,
			MercyActive:    result.MercyActive,
			Losses:         result.Losses,
			Timestamp:      time.Now().Unix(),
		},
	}
}

// NewXPBoostedEvent creates a new XP boost event
func NewXPBoostedEvent(playerID string, profession domain.Profession, baseXP, bonusXP int64, multiplier float64, source string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeXPCritical),
		Payload: XPBoostedPayloadV1{
			PlayerID:   playerID,
			Profession: profession,
			BaseXP:     baseXP,
			BonusXP:    bonusXP,
			Multiplier: multiplier,
			Source:     source,
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers. Handlers run synchronously;
// handler errors are collected, not short-circuited.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	metrics.EventsPublished.WithLabelValues(string(event.Type)).Inc()

	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
