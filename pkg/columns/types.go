package columns

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ajitpratap0/tabular/pkg/errors"
	"github.com/ajitpratap0/tabular/pkg/metrics"
	"github.com/ajitpratap0/tabular/pkg/value"
)

// ColumnType is the type tag of a column slot.
type ColumnType int

const (
	TypeText ColumnType = iota
	TypeInt
	TypeDecimal
)

func (t ColumnType) String() string {
	switch t {
	case TypeText:
		return "text"
	case TypeInt:
		return "int"
	case TypeDecimal:
		return "decimal"
	default:
		return "ColumnType(" + strconv.Itoa(int(t)) + ")"
	}
}

// Valid reports whether t is a known tag.
func (t ColumnType) Valid() bool {
	return t >= TypeText && t <= TypeDecimal
}

// ParseColumnType parses the names produced by String.
func ParseColumnType(s string) (ColumnType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "string":
		return TypeText, nil
	case "int", "integer":
		return TypeInt, nil
	case "decimal", "number":
		return TypeDecimal, nil
	default:
		return 0, errors.Newf(errors.ErrorTypeSchema, "unknown column type %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t ColumnType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, errors.Newf(errors.ErrorTypeSchema, "unknown column type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ColumnType) UnmarshalText(text []byte) error {
	parsed, err := ParseColumnType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Table is the narrow view of a table that columns call into. A Table is
// immutable: every method returns the same answer for the life of the
// instance, and edits go through Fork.
type Table interface {
	// RowCount is the number of rows.
	RowCount() int
	// Cell returns the value at (row, slot). Both indexes must be in range.
	Cell(row, slot int) value.Value
	// Rows returns a deep copy of the row data that the caller may mutate.
	Rows() []value.Row
	// ColumnNames returns a copy of the column names.
	ColumnNames() []string
	// ColumnTypes returns a copy of the column type tags.
	ColumnTypes() []ColumnType
	// Column returns the column for slot, the same instance on every call.
	Column(slot int) (Column, error)
	// Fork builds a new table from the given state, validating that rows,
	// types and names line up.
	Fork(rows []value.Row, types []ColumnType, names []string) (Table, error)
	// Settings returns the arithmetic, casting and observability settings
	// shared by the table's columns.
	Settings() Settings
}

// Settings are the knobs a table hands to its columns.
type Settings struct {
	Logger              *zap.Logger
	Metrics             *metrics.Collector
	Precision           int32
	ThousandsSeparators []string
}

// DefaultSettings returns settings with a no-op logger, no metrics, 28
// decimal places and "," as the thousands separator.
func DefaultSettings() Settings {
	return Settings{
		Logger:              zap.NewNop(),
		Precision:           28,
		ThousandsSeparators: []string{","},
	}
}

func (s Settings) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s Settings) precision() int32 {
	if s.Precision <= 0 {
		return 28
	}
	return s.Precision
}

// New is the column factory: it builds the column variant for t over slot
// index of table.
func New(t ColumnType, table Table, index int) (Column, error) {
	b := &baseColumn{table: table, index: index, kind: t}

	var col Column
	switch t {
	case TypeText:
		col = &TextColumn{baseColumn: b}
	case TypeInt:
		col = &IntColumn{NumberColumn: NumberColumn{baseColumn: b, integral: true}}
	case TypeDecimal:
		col = &DecimalColumn{NumberColumn: NumberColumn{baseColumn: b}}
	default:
		return nil, errors.Newf(errors.ErrorTypeSchema, "unknown column type %d", int(t)).
			WithDetail("slot", index)
	}

	b.self = col
	return col, nil
}
