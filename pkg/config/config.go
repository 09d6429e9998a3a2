package config

import (
	"github.com/ajitpratap0/tabular/pkg/errors"
	"github.com/ajitpratap0/tabular/pkg/logger"
)

const (
	// DefaultDecimalPrecision is the number of decimal places kept by
	// division and square root.
	DefaultDecimalPrecision = 28
	// MaxDecimalPrecision bounds DecimalConfig.Precision.
	MaxDecimalPrecision = 100
)

// Config is the single configuration structure for tabular. It is organized
// into sections:
//   - Logging: zap logger settings
//   - Decimal: exact arithmetic settings for numeric statistics
//   - Cast: how raw input is cleaned before numeric parsing
//   - Metrics: prometheus collector settings
type Config struct {
	// Logging configures the global zap logger
	Logging LoggingConfig `yaml:"logging" json:"logging"`

	// Decimal controls exact arithmetic
	Decimal DecimalConfig `yaml:"decimal" json:"decimal"`

	// Cast controls raw value cleanup
	Cast CastConfig `yaml:"cast" json:"cast"`

	// Metrics controls prometheus collection
	Metrics MetricsConfig `yaml:"metrics" json:"metrics"`
}

// LoggingConfig mirrors logger.Config in YAML form.
type LoggingConfig struct {
	// Level is a zap level name (debug, info, warn, error)
	Level string `yaml:"level" json:"level"`
	// Development enables colored levels and error stack traces
	Development bool `yaml:"development" json:"development"`
	// Encoding is json or console
	Encoding string `yaml:"encoding" json:"encoding"`
	// OutputPaths are zap sink URLs, stdout when empty
	OutputPaths []string `yaml:"output_paths" json:"output_paths"`
}

// DecimalConfig controls the exact arithmetic used by numeric statistics.
type DecimalConfig struct {
	// Precision is the number of decimal places kept by division and sqrt
	Precision int32 `yaml:"precision" json:"precision"`
}

// CastConfig controls how raw input is cleaned before numeric parsing.
type CastConfig struct {
	// ThousandsSeparators are removed from numeric strings before parsing
	ThousandsSeparators []string `yaml:"thousands_separators" json:"thousands_separators"`
}

// MetricsConfig controls prometheus collection.
type MetricsConfig struct {
	// Enabled turns recording on
	Enabled bool `yaml:"enabled" json:"enabled"`
	// Namespace prefixes every metric name
	Namespace string `yaml:"namespace" json:"namespace"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "json",
		},
		Decimal: DecimalConfig{
			Precision: DefaultDecimalPrecision,
		},
		Cast: CastConfig{
			ThousandsSeparators: []string{","},
		},
		Metrics: MetricsConfig{
			Namespace: "tabular",
		},
	}
}

// Validate validates the configuration for correctness.
func (c *Config) Validate() error {
	if c.Decimal.Precision < 1 || c.Decimal.Precision > MaxDecimalPrecision {
		return errors.Newf(errors.ErrorTypeConfig, "decimal.precision must be between 1 and %d", MaxDecimalPrecision).
			WithDetail("precision", c.Decimal.Precision)
	}
	for _, sep := range c.Cast.ThousandsSeparators {
		if sep == "" {
			return errors.New(errors.ErrorTypeConfig, "cast.thousands_separators cannot contain an empty separator")
		}
		if sep == "." || sep == "-" || sep == "+" {
			return errors.Newf(errors.ErrorTypeConfig, "cast.thousands_separators cannot contain %q", sep)
		}
	}
	switch c.Logging.Encoding {
	case "", "json", "console":
	default:
		return errors.Newf(errors.ErrorTypeConfig, "logging.encoding must be json or console, got %q", c.Logging.Encoding)
	}
	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return errors.New(errors.ErrorTypeConfig, "metrics.namespace is required when metrics are enabled")
	}
	return nil
}

// LoggerConfig converts the logging section into a logger.Config.
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{
		Level:       c.Logging.Level,
		Development: c.Logging.Development,
		Encoding:    c.Logging.Encoding,
		OutputPaths: c.Logging.OutputPaths,
	}
}
