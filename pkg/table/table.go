// Package table provides the immutable row store behind columns.Column.
//
// A Table holds rows, column names and column types. It never changes
// after construction; edits are made by copying state out with Rows,
// ColumnNames and ColumnTypes and building a new table with Fork.
package table

import (
	"sync"

	"go.uber.org/zap"

	"github.com/ajitpratap0/tabular/pkg/columns"
	"github.com/ajitpratap0/tabular/pkg/errors"
	"github.com/ajitpratap0/tabular/pkg/json"
	"github.com/ajitpratap0/tabular/pkg/logger"
	"github.com/ajitpratap0/tabular/pkg/metrics"
	"github.com/ajitpratap0/tabular/pkg/value"
)

// Table is an immutable table of rows. It implements columns.Table.
type Table struct {
	rows     []value.Row
	names    []string
	types    []columns.ColumnType
	settings columns.Settings

	mu   sync.Mutex
	cols []columns.Column
}

var _ columns.Table = (*Table)(nil)

// New builds a table from raw Go values, converting each with value.Of.
func New(names []string, types []columns.ColumnType, rows [][]any, opts ...Option) (*Table, error) {
	converted := make([]value.Row, len(rows))
	for r, raw := range rows {
		row, err := value.RowOf(raw...)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData, "cannot convert row").
				WithDetail("row", r)
		}
		converted[r] = row
	}
	return FromRows(names, types, converted, opts...)
}

// FromRows builds a table from rows of values. The table takes ownership
// of rows, names and types; callers must not modify them afterwards.
func FromRows(names []string, types []columns.ColumnType, rows []value.Row, opts ...Option) (*Table, error) {
	settings := columns.DefaultSettings()
	settings.Logger = logger.Get().With(zap.String("component", "table"))
	for _, opt := range opts {
		opt(&settings)
	}
	return build(rows, types, names, settings)
}

// build validates that rows, types and names line up.
func build(rows []value.Row, types []columns.ColumnType, names []string, settings columns.Settings) (*Table, error) {
	if len(names) != len(types) {
		return nil, errors.Newf(errors.ErrorTypeSchema, "%d column names but %d column types", len(names), len(types)).
			WithDetail("names", len(names)).
			WithDetail("types", len(types))
	}

	seen := make(map[string]int, len(names))
	for slot, name := range names {
		if prev, ok := seen[name]; ok {
			return nil, errors.Newf(errors.ErrorTypeSchema, "duplicate column name %q in slots %d and %d", name, prev, slot).
				WithDetail("column", name)
		}
		seen[name] = slot
	}

	for slot, t := range types {
		if !t.Valid() {
			return nil, errors.Newf(errors.ErrorTypeSchema, "unknown column type %d for column %q", int(t), names[slot]).
				WithDetail("slot", slot)
		}
	}

	for r, row := range rows {
		if len(row) != len(names) {
			return nil, errors.Newf(errors.ErrorTypeSchema, "row %d has %d values, want %d", r, len(row), len(names)).
				WithDetail("row", r)
		}
	}

	return &Table{
		rows:     rows,
		names:    names,
		types:    types,
		settings: settings,
		cols:     make([]columns.Column, len(names)),
	}, nil
}

// Fork builds a new table from the given state with this table's settings.
// The new table takes ownership of rows, types and names.
func (t *Table) Fork(rows []value.Row, types []columns.ColumnType, names []string) (columns.Table, error) {
	forked, err := build(rows, types, names, t.settings)
	if err != nil {
		return nil, err
	}
	return forked, nil
}

func (t *Table) RowCount() int {
	return len(t.rows)
}

// Row returns a copy of row i.
func (t *Table) Row(i int) (value.Row, error) {
	if i < 0 || i >= len(t.rows) {
		return nil, errors.Newf(errors.ErrorTypeOutOfRange, "row %d out of range for table of %d rows", i, len(t.rows)).
			WithDetail("index", i).
			WithDetail("length", len(t.rows))
	}
	return t.rows[i].Clone(), nil
}

func (t *Table) Cell(row, slot int) value.Value {
	return t.rows[row][slot]
}

func (t *Table) Rows() []value.Row {
	out := make([]value.Row, len(t.rows))
	for i, row := range t.rows {
		out[i] = row.Clone()
	}
	return out
}

func (t *Table) ColumnNames() []string {
	return append([]string(nil), t.names...)
}

func (t *Table) ColumnTypes() []columns.ColumnType {
	return append([]columns.ColumnType(nil), t.types...)
}

func (t *Table) Settings() columns.Settings {
	return t.settings
}

// Column returns the column at slot. Repeated calls return the same
// instance so its caches are shared.
func (t *Table) Column(slot int) (columns.Column, error) {
	if slot < 0 || slot >= len(t.names) {
		return nil, errors.Newf(errors.ErrorTypeOutOfRange, "column %d out of range for table of %d columns", slot, len(t.names)).
			WithDetail("index", slot).
			WithDetail("length", len(t.names))
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if col := t.cols[slot]; col != nil {
		return col, nil
	}
	col, err := columns.New(t.types[slot], t, slot)
	if err != nil {
		return nil, err
	}
	t.cols[slot] = col
	return col, nil
}

// Columns returns a name-keyed view of the columns.
func (t *Table) Columns() *columns.ColumnMapping {
	return columns.NewColumnMapping(t)
}

// ColumnByName is shorthand for Columns().Get(name).
func (t *Table) ColumnByName(name string) (columns.Column, error) {
	return t.Columns().Get(name)
}

// Validate validates every column in slot order and returns the first
// failure.
func (t *Table) Validate() error {
	it := columns.NewColumnIterator(t)
	for col, ok := it.Next(); ok; col, ok = it.Next() {
		if err := col.Validate(); err != nil {
			return err
		}
	}
	return it.Err()
}

// Cast casts every column to its type and returns the result as a new
// table. The receiver is unchanged.
func (t *Table) Cast() (*Table, error) {
	rows := t.Rows()

	it := columns.NewColumnIterator(t)
	for col, ok := it.Next(); ok; col, ok = it.Next() {
		casted, err := col.Cast()
		if err != nil {
			return nil, err
		}
		for r, v := range casted {
			rows[r][col.Index()] = v
		}
	}
	if err := it.Err(); err != nil {
		return nil, err
	}

	forked, err := build(rows, t.ColumnTypes(), t.ColumnNames(), t.settings)
	if err != nil {
		return nil, err
	}

	t.settings.Metrics.RecordFork(metrics.OriginCast)
	t.logger().Debug("table cast",
		zap.Int("rows", len(rows)),
		zap.Int("columns", len(t.names)))
	return forked, nil
}

func (t *Table) logger() *zap.Logger {
	if t.settings.Logger == nil {
		return zap.NewNop()
	}
	return t.settings.Logger
}

type jsonTable struct {
	Columns []jsonColumn `json:"columns"`
	Rows    []value.Row  `json:"rows"`
}

type jsonColumn struct {
	Name string             `json:"name"`
	Type columns.ColumnType `json:"type"`
}

// MarshalJSON encodes the table as its column schema and rows.
func (t *Table) MarshalJSON() ([]byte, error) {
	out := jsonTable{
		Columns: make([]jsonColumn, len(t.names)),
		Rows:    t.rows,
	}
	for i, name := range t.names {
		out.Columns[i] = jsonColumn{Name: name, Type: t.types[i]}
	}
	if out.Rows == nil {
		out.Rows = []value.Row{}
	}

	buf, err := json.MarshalToBuffer(out)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to encode table")
	}
	defer json.PutBuffer(buf)
	return append([]byte(nil), buf.Bytes()...), nil
}

// UnmarshalJSON decodes the form written by MarshalJSON with default
// settings.
func UnmarshalJSON(data []byte, opts ...Option) (*Table, error) {
	var in jsonTable
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "invalid table JSON")
	}
	names := make([]string, len(in.Columns))
	types := make([]columns.ColumnType, len(in.Columns))
	for i, c := range in.Columns {
		names[i] = c.Name
		types[i] = c.Type
	}
	return FromRows(names, types, in.Rows, opts...)
}
