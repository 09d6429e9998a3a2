package testutil

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ajitpratap0/tabular/pkg/columns"
	"github.com/ajitpratap0/tabular/pkg/metrics"
	"github.com/ajitpratap0/tabular/pkg/table"
)

// TableSuite gives each test a fresh observed logger and metrics registry
// and builds tables wired to both.
type TableSuite struct {
	suite.Suite

	Logger   *zap.Logger
	Logs     *observer.ObservedLogs
	Metrics  *metrics.Collector
	Registry *prometheus.Registry
}

// SetupTest runs before each test in the suite
func (s *TableSuite) SetupTest() {
	s.Logger, s.Logs = ObservedLogger(zapcore.DebugLevel)
	s.Registry = prometheus.NewRegistry()
	s.Metrics = metrics.NewCollector("test", s.Registry)
}

// Options returns the table options wiring the suite's logger and metrics.
func (s *TableSuite) Options() []table.Option {
	return []table.Option{table.WithLogger(s.Logger), table.WithMetrics(s.Metrics)}
}

// NewTable builds a table with the suite options and fails on error.
func (s *TableSuite) NewTable(names []string, types []columns.ColumnType, rows [][]any, opts ...table.Option) *table.Table {
	tbl, err := table.New(names, types, rows, append(s.Options(), opts...)...)
	s.Require().NoError(err)
	return tbl
}

// LogCount returns how many entries with msg were logged.
func (s *TableSuite) LogCount(msg string) int {
	return s.Logs.FilterMessage(msg).Len()
}
