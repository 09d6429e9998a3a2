package table

import (
	"go.uber.org/zap"

	"github.com/ajitpratap0/tabular/pkg/columns"
	"github.com/ajitpratap0/tabular/pkg/config"
	"github.com/ajitpratap0/tabular/pkg/metrics"
)

// Option configures a Table. Options are inherited by every table forked
// from it.
type Option func(*columns.Settings)

// WithLogger sets the logger used by the table and its columns.
func WithLogger(l *zap.Logger) Option {
	return func(s *columns.Settings) {
		s.Logger = l
	}
}

// WithMetrics sets the collector fed by the table and its columns.
func WithMetrics(c *metrics.Collector) Option {
	return func(s *columns.Settings) {
		s.Metrics = c
	}
}

// WithPrecision sets the number of decimal places kept by division and
// square root.
func WithPrecision(places int32) Option {
	return func(s *columns.Settings) {
		s.Precision = places
	}
}

// WithThousandsSeparators sets the separators stripped from numeric text
// before parsing.
func WithThousandsSeparators(seps ...string) Option {
	return func(s *columns.Settings) {
		s.ThousandsSeparators = append([]string(nil), seps...)
	}
}

// WithConfig applies the decimal, cast and metrics sections of cfg. The
// logging section is applied separately through logger.Init.
func WithConfig(cfg *config.Config) Option {
	return func(s *columns.Settings) {
		if cfg == nil {
			return
		}
		s.Precision = cfg.Decimal.Precision
		s.ThousandsSeparators = append([]string(nil), cfg.Cast.ThousandsSeparators...)
		if cfg.Metrics.Enabled {
			s.Metrics = metrics.ForNamespace(cfg.Metrics.Namespace)
		} else {
			s.Metrics = nil
		}
	}
}
