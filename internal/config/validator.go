package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks a loaded Config against its struct tags. A failure here is a
// configuration error and should abort startup.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		// Cross-field constraints the tags cannot express
		if cfg.PenaltyBasePercent > cfg.PenaltyMaxPercent {
			return fmt.Errorf("config validation failed: PENALTY_BASE_PERCENT %v exceeds PENALTY_MAX_PERCENT %v",
				cfg.PenaltyBasePercent, cfg.PenaltyMaxPercent)
		}
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("config validation failed: %w", err)
	}

	fields := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		fields = append(fields, fmt.Sprintf("%s (%s)", e.Field(), e.Tag()))
	}
	return fmt.Errorf("config validation failed: %s", strings.Join(fields, ", "))
}
