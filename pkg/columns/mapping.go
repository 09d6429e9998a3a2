package columns

import (
	"github.com/ajitpratap0/tabular/pkg/errors"
)

// ColumnMapping is a read-only name to Column view over a table. It keeps
// no state besides the table; every lookup goes through Table.Column so
// repeated lookups share the same caches.
type ColumnMapping struct {
	table Table
}

// NewColumnMapping returns a mapping over table's columns.
func NewColumnMapping(table Table) *ColumnMapping {
	return &ColumnMapping{table: table}
}

// Get returns the column called name.
func (m *ColumnMapping) Get(name string) (Column, error) {
	for slot, n := range m.table.ColumnNames() {
		if n == name {
			return m.table.Column(slot)
		}
	}
	return nil, errors.Newf(errors.ErrorTypeNotFound, "no column named %q", name).
		WithDetail("column", name)
}

// Has reports whether a column called name exists.
func (m *ColumnMapping) Has(name string) bool {
	for _, n := range m.table.ColumnNames() {
		if n == name {
			return true
		}
	}
	return false
}

// Len returns the number of columns.
func (m *ColumnMapping) Len() int {
	return len(m.table.ColumnNames())
}

// Keys returns the column names in slot order.
func (m *ColumnMapping) Keys() []string {
	return m.table.ColumnNames()
}

// Iter returns a fresh iterator over the columns in slot order.
func (m *ColumnMapping) Iter() *ColumnIterator {
	return NewColumnIterator(m.table)
}

// ColumnIterator walks a table's columns by slot. It is single pass.
//
//	it := columns.NewColumnIterator(t)
//	for col, ok := it.Next(); ok; col, ok = it.Next() {
//		...
//	}
//	if err := it.Err(); err != nil {
//		...
//	}
type ColumnIterator struct {
	table Table
	slot  int
	err   error
}

// NewColumnIterator returns an iterator positioned before slot 0.
func NewColumnIterator(table Table) *ColumnIterator {
	return &ColumnIterator{table: table}
}

// Next returns the next column, or false once every slot has been visited
// or the table failed to build a column.
func (it *ColumnIterator) Next() (Column, bool) {
	if it.err != nil || it.slot >= len(it.table.ColumnNames()) {
		return nil, false
	}
	col, err := it.table.Column(it.slot)
	if err != nil {
		it.err = err
		return nil, false
	}
	it.slot++
	return col, true
}

// Err returns the error that stopped iteration, if any.
func (it *ColumnIterator) Err() error {
	return it.err
}
