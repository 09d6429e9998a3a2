// Package testutil provides testing utilities for tabular
package testutil

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ajitpratap0/tabular/pkg/columns"
	"github.com/ajitpratap0/tabular/pkg/metrics"
	"github.com/ajitpratap0/tabular/pkg/table"
	"github.com/ajitpratap0/tabular/pkg/value"
)

// TestLogger creates a test logger that writes to the test output.
func TestLogger(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t)
}

// ObservedLogger returns a logger that records every entry at or above
// level, and the recorder to inspect them.
func ObservedLogger(level zapcore.Level) (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return zap.New(core), logs
}

// TestMetrics returns a collector on its own registry so counts start at
// zero in every test.
func TestMetrics(t *testing.T) (*metrics.Collector, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	return metrics.NewCollector("test", reg), reg
}

// Table builds a table from raw values and fails the test on error. The
// table logs to the test output.
func Table(t *testing.T, names []string, types []columns.ColumnType, rows [][]any, opts ...table.Option) *table.Table {
	t.Helper()
	opts = append([]table.Option{table.WithLogger(TestLogger(t))}, opts...)
	tbl, err := table.New(names, types, rows, opts...)
	require.NoError(t, err, "building test table")
	return tbl
}

// SingleColumn builds a one-column table called name from vals.
func SingleColumn(t *testing.T, name string, typ columns.ColumnType, vals ...any) *table.Table {
	t.Helper()
	rows := make([][]any, len(vals))
	for i, v := range vals {
		rows[i] = []any{v}
	}
	return Table(t, []string{name}, []columns.ColumnType{typ}, rows)
}

// Column returns the column at slot, failing the test on error.
func Column(t *testing.T, tbl columns.Table, slot int) columns.Column {
	t.Helper()
	col, err := tbl.Column(slot)
	require.NoError(t, err)
	return col
}

// Numeric returns the column at slot as columns.Numeric.
func Numeric(t *testing.T, tbl columns.Table, slot int) columns.Numeric {
	t.Helper()
	col := Column(t, tbl, slot)
	num, ok := col.(columns.Numeric)
	require.Truef(t, ok, "column %q of type %s is not numeric", col.Name(), col.Type())
	return num
}

// Values converts raw Go values with value.Of, failing the test on error.
func Values(t *testing.T, vals ...any) []value.Value {
	t.Helper()
	row, err := value.RowOf(vals...)
	require.NoError(t, err)
	return row
}

// RequireValue fails the test unless got equals want under value.Equal.
func RequireValue(t *testing.T, want, got value.Value) {
	t.Helper()
	require.Truef(t, want.Equal(got), "want %#v, got %#v", want, got)
}

// CounterValue returns the value of the counter called name whose single
// label equals label, or 0 when it was never incremented.
func CounterValue(t *testing.T, reg prometheus.Gatherer, name, label string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetValue() == label {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}
