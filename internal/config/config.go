package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port      int    `validate:"gt=0,lte=65535"`
	LogLevel  string `validate:"oneof=debug info warn warning error"`
	LogFormat string `validate:"oneof=json text"`

	DBUser     string `validate:"required"`
	DBPassword string `validate:"required"`
	DBHost     string `validate:"required"`
	DBPort     string `validate:"required"`
	DBName     string `validate:"required"`

	APIKey string `validate:"required"` // API key for the admin surface

	// TrustedProxies lists proxy IPs whose X-Forwarded-For header is honored
	TrustedProxies []string

	// EventDeadLetterPath is where events that exhaust their retries land
	EventDeadLetterPath string `validate:"required"`

	// XP curve tuning. Invalid values are startup-fatal; the curve table
	// re-validates them at construction.
	CurveBaseXP     float64 `validate:"gt=0"`
	CurveMultiplier float64 `validate:"gt=1"`
	MaxLevel        int     `validate:"gt=0"`

	// Death penalty tuning
	PenaltyBasePercent     float64 `validate:"gte=0,lte=1"`
	PenaltyProgressiveStep float64 `validate:"gte=0,lte=1"`
	PenaltyMaxPercent      float64 `validate:"gte=0,lte=1"`
	MercyThreshold         int     `validate:"gt=0"`
	MercyReduction         float64 `validate:"gte=0,lte=1"`
	PenaltyDecayHours      float64 `validate:"gt=0"`

	// Whether standing ability effects are applied at all. When disabled the
	// effect engine strips everything and applies nothing.
	AbilitiesEnabled bool

	AutosaveInterval  time.Duration `validate:"gt=0"`
	DecayTickInterval time.Duration `validate:"gt=0"`
	ShutdownTimeout   time.Duration `validate:"gt=0"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "frontier"),

		APIKey: getEnv("API_KEY", ""),

		TrustedProxies:      splitAndTrim(getEnv("TRUSTED_PROXIES", "")),
		EventDeadLetterPath: getEnv("EVENT_DEADLETTER_PATH", "logs/event_deadletter.jsonl"),

		AbilitiesEnabled: getEnvBool("ABILITIES_ENABLED", true),
	}

	var err error
	if cfg.Port, err = getEnvInt("PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.CurveBaseXP, err = getEnvFloat("CURVE_BASE_XP", 100); err != nil {
		return nil, err
	}
	if cfg.CurveMultiplier, err = getEnvFloat("CURVE_MULTIPLIER", 1.15); err != nil {
		return nil, err
	}
	if cfg.MaxLevel, err = getEnvInt("MAX_LEVEL", 100); err != nil {
		return nil, err
	}
	if cfg.PenaltyBasePercent, err = getEnvFloat("PENALTY_BASE_PERCENT", 0.10); err != nil {
		return nil, err
	}
	if cfg.PenaltyProgressiveStep, err = getEnvFloat("PENALTY_PROGRESSIVE_STEP", 0.03); err != nil {
		return nil, err
	}
	if cfg.PenaltyMaxPercent, err = getEnvFloat("PENALTY_MAX_PERCENT", 0.25); err != nil {
		return nil, err
	}
	if cfg.MercyThreshold, err = getEnvInt("MERCY_THRESHOLD", 5); err != nil {
		return nil, err
	}
	if cfg.MercyReduction, err = getEnvFloat("MERCY_REDUCTION", 0.5); err != nil {
		return nil, err
	}
	if cfg.PenaltyDecayHours, err = getEnvFloat("PENALTY_DECAY_HOURS", 6); err != nil {
		return nil, err
	}
	if cfg.AutosaveInterval, err = getEnvDuration("AUTOSAVE_INTERVAL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.DecayTickInterval, err = getEnvDuration("DECAY_TICK_INTERVAL", 3*time.Minute); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// splitAndTrim turns a comma-separated list into a slice, dropping empties
func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return n, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return f, nil
}

func getEnvBool(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return d, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
