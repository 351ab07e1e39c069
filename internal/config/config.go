package config

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all ingest settings, populated from environment variables.
type Config struct {
	DataDir   string
	RecordTag string
	LogLevel  string
	LogFormat string

	// Timestamp interpretation. Timezone is the name Location was loaded from.
	Timezone string
	Location *time.Location

	EventCodeRadix int
	RangeCheck     bool

	// MetricsTextfile, when set, receives a Prometheus text dump on exit.
	MetricsTextfile string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	timezone := sharedcfg.EnvOrDefault("TIMEZONE", "Local")
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	radix, err := strconv.Atoi(sharedcfg.EnvOrDefault("EVENT_CODE_RADIX", "10"))
	if err != nil || (radix != 2 && radix != 10) {
		return nil, errors.New("invalid EVENT_CODE_RADIX: must be 2 or 10")
	}

	rangeCheck, err := strconv.ParseBool(sharedcfg.EnvOrDefault("RANGE_CHECK", "false"))
	if err != nil {
		return nil, errors.New("invalid RANGE_CHECK")
	}

	cfg := &Config{
		DataDir:         sharedcfg.EnvOrDefault("DATA_DIR", "./data"),
		RecordTag:       sharedcfg.EnvOrDefault("RECORD_TAG", "MEASUREMENT"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		Timezone:        timezone,
		Location:        loc,
		EventCodeRadix:  radix,
		RangeCheck:      rangeCheck,
		MetricsTextfile: sharedcfg.EnvOrDefault("METRICS_TEXTFILE", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that flags may have overridden after Load.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return errors.New("DATA_DIR is required")
	}
	if c.RecordTag == "" {
		return errors.New("RECORD_TAG is required")
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q: must be json or text", c.LogFormat)
	}
	return nil
}
