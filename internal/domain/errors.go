package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	ErrMsgUnknownProfession  = "unknown profession"
	ErrMsgPlayerNotTracked   = "player not tracked"
	ErrMsgInvalidCurveConfig = "invalid xp curve configuration"
	ErrMsgInvalidAmount      = "amount must be positive"
	ErrMsgAbilityNotFound    = "ability not found"
	ErrMsgAbilitiesDisabled  = "ability category is disabled"
	ErrMsgSaveIncomplete     = "one or more records failed to save"
	ErrMsgInvalidInput       = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Profession errors
	ErrUnknownProfession = errors.New(ErrMsgUnknownProfession)

	// Cache errors
	ErrPlayerNotTracked = errors.New(ErrMsgPlayerNotTracked)

	// Configuration errors
	ErrInvalidCurveConfig = errors.New(ErrMsgInvalidCurveConfig)

	// Award errors
	ErrInvalidAmount = errors.New(ErrMsgInvalidAmount)

	// Ability errors
	ErrAbilityNotFound   = errors.New(ErrMsgAbilityNotFound)
	ErrAbilitiesDisabled = errors.New(ErrMsgAbilitiesDisabled)

	// Persistence errors
	ErrSaveIncomplete = errors.New(ErrMsgSaveIncomplete)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
