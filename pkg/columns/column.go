package columns

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/ajitpratap0/tabular/pkg/errors"
	"github.com/ajitpratap0/tabular/pkg/metrics"
	"github.com/ajitpratap0/tabular/pkg/value"
)

// Column is a lazy, read-only view over one slot across every row of its
// table.
type Column interface {
	// Table returns the owning table.
	Table() Table
	// Index returns the slot index.
	Index() int
	// Name returns the column name.
	Name() string
	// Type returns the column type tag.
	Type() ColumnType

	// Len returns the number of rows.
	Len() int
	// At returns the value in row j.
	At(j int) (value.Value, error)
	// Values returns a copy of the column data.
	Values() []value.Value
	// Equals reports element-wise equality with seq.
	Equals(seq []value.Value) bool
	// NotEquals is the negation of Equals.
	NotEquals(seq []value.Value) bool

	// HasNulls reports whether any value is the absent marker.
	HasNulls() bool
	// Any reports whether pred holds for some value.
	Any(pred func(value.Value) bool) bool
	// All reports whether pred holds for every value.
	All(pred func(value.Value) bool) bool

	// Map applies fn to every value of this column in a copy of the table
	// and returns the copy as a new table.
	Map(fn Transform, opts ...MapOption) (Table, error)
	// Count returns the number of values equal to v.
	Count(v value.Value) int
	// Counts returns a (name, "count") table of distinct values ordered by
	// descending count, ties in first-occurrence order.
	Counts() (Table, error)

	// Validate checks every value against the column type.
	Validate() error
	// Cast converts every value into the column type's representation.
	Cast() ([]value.Value, error)
}

// Transform maps one value to another. It must be pure.
type Transform func(value.Value) (value.Value, error)

// Pure adapts an infallible function into a Transform.
func Pure(fn func(value.Value) value.Value) Transform {
	return func(v value.Value) (value.Value, error) {
		return fn(v), nil
	}
}

type mapOptions struct {
	newType *ColumnType
	newName *string
}

// MapOption configures Map.
type MapOption func(*mapOptions)

// WithType retags the mapped column.
func WithType(t ColumnType) MapOption {
	return func(o *mapOptions) { o.newType = &t }
}

// WithName renames the mapped column.
func WithName(name string) MapOption {
	return func(o *mapOptions) { o.newName = &name }
}

// baseColumn holds the table reference, slot index and the three
// write-once caches shared by every variant.
type baseColumn struct {
	table Table
	index int
	kind  ColumnType
	self  Column

	dataOnce    sync.Once
	data        []value.Value
	nonNullOnce sync.Once
	nonNull     []value.Value
	sortedOnce  sync.Once
	sorted      []value.Value
}

func (c *baseColumn) Table() Table     { return c.table }
func (c *baseColumn) Index() int       { return c.index }
func (c *baseColumn) Type() ColumnType { return c.kind }

func (c *baseColumn) Name() string {
	return c.table.ColumnNames()[c.index]
}

func (c *baseColumn) settings() Settings {
	return c.table.Settings()
}

func (c *baseColumn) cacheFilled(cache string, n int) {
	s := c.settings()
	s.Metrics.RecordCacheFill(cache)
	s.logger().Debug("column cache computed",
		zap.Int("slot", c.index),
		zap.String("cache", cache),
		zap.Int("values", n))
}

// values is the raw slice: row[index] for every row.
func (c *baseColumn) values() []value.Value {
	c.dataOnce.Do(func() {
		n := c.table.RowCount()
		data := make([]value.Value, n)
		for r := 0; r < n; r++ {
			data[r] = c.table.Cell(r, c.index)
		}
		c.data = data
		c.cacheFilled(metrics.CacheData, n)
	})
	return c.data
}

func (c *baseColumn) valuesWithoutNulls() []value.Value {
	c.nonNullOnce.Do(func() {
		data := c.values()
		out := make([]value.Value, 0, len(data))
		for _, v := range data {
			if !v.IsNull() {
				out = append(out, v)
			}
		}
		c.nonNull = out
		c.cacheFilled(metrics.CacheNonNull, len(out))
	})
	return c.nonNull
}

func (c *baseColumn) valuesSorted() []value.Value {
	c.sortedOnce.Do(func() {
		data := c.values()
		out := make([]value.Value, len(data))
		copy(out, data)
		sort.SliceStable(out, func(i, j int) bool { return value.Less(out[i], out[j]) })
		c.sorted = out
		c.cacheFilled(metrics.CacheSorted, len(out))
	})
	return c.sorted
}

func (c *baseColumn) Len() int {
	return len(c.values())
}

func (c *baseColumn) At(j int) (value.Value, error) {
	data := c.values()
	if j < 0 || j >= len(data) {
		return value.Null, errors.Newf(errors.ErrorTypeOutOfRange, "index %d out of range for column of length %d", j, len(data)).
			WithDetail("index", j).
			WithDetail("length", len(data))
	}
	return data[j], nil
}

func (c *baseColumn) Values() []value.Value {
	data := c.values()
	out := make([]value.Value, len(data))
	copy(out, data)
	return out
}

func (c *baseColumn) Equals(seq []value.Value) bool {
	return value.Row(c.values()).Equal(seq)
}

func (c *baseColumn) NotEquals(seq []value.Value) bool {
	return !c.Equals(seq)
}

func (c *baseColumn) HasNulls() bool {
	for _, v := range c.values() {
		if v.IsNull() {
			return true
		}
	}
	return false
}

func (c *baseColumn) Any(pred func(value.Value) bool) bool {
	for _, v := range c.values() {
		if pred(v) {
			return true
		}
	}
	return false
}

func (c *baseColumn) All(pred func(value.Value) bool) bool {
	for _, v := range c.values() {
		if !pred(v) {
			return false
		}
	}
	return true
}

func (c *baseColumn) Map(fn Transform, opts ...MapOption) (Table, error) {
	var o mapOptions
	for _, opt := range opts {
		opt(&o)
	}

	rows := c.table.Rows()
	types := c.table.ColumnTypes()
	names := c.table.ColumnNames()

	for r, row := range rows {
		out, err := fn(row[c.index])
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeTransform, "map transform failed").
				WithDetail("column", names[c.index]).
				WithDetail("row", r)
		}
		row[c.index] = out
	}

	if o.newType != nil {
		types[c.index] = *o.newType
	}
	if o.newName != nil {
		names[c.index] = *o.newName
	}

	forked, err := c.table.Fork(rows, types, names)
	if err != nil {
		return nil, err
	}

	s := c.settings()
	s.Metrics.RecordFork(metrics.OriginMap)
	s.logger().Debug("column mapped",
		zap.String("column", names[c.index]),
		zap.Int("rows", len(rows)))
	return forked, nil
}

func (c *baseColumn) Count(v value.Value) int {
	n := 0
	for _, d := range c.values() {
		if d.Equal(v) {
			n++
		}
	}
	return n
}

// group counts values by equality, keeping first-occurrence order.
func group(data []value.Value) ([]value.Value, []int) {
	index := make(map[value.Key]int, len(data))
	var reps []value.Value
	var counts []int
	for _, v := range data {
		k := v.Key()
		if i, ok := index[k]; ok {
			counts[i]++
			continue
		}
		index[k] = len(reps)
		reps = append(reps, v)
		counts = append(counts, 1)
	}
	return reps, counts
}

func (c *baseColumn) Counts() (Table, error) {
	reps, counts := group(c.values())

	order := make([]int, len(reps))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return counts[order[a]] > counts[order[b]] })

	rows := make([]value.Row, len(order))
	for i, g := range order {
		rows[i] = value.Row{reps[g], value.Int(int64(counts[g]))}
	}

	names := []string{c.Name(), "count"}
	types := []ColumnType{c.kind, TypeInt}

	forked, err := c.table.Fork(rows, types, names)
	if err != nil {
		return nil, err
	}

	s := c.settings()
	s.Metrics.RecordFork(metrics.OriginCounts)
	s.logger().Debug("column counted",
		zap.String("column", names[0]),
		zap.Int("distinct", len(rows)))
	return forked, nil
}

// validate reports the first value that is neither null nor accepted.
func (c *baseColumn) validate(accept func(value.Value) bool) error {
	for r, v := range c.values() {
		if v.IsNull() || accept(v) {
			continue
		}
		s := c.settings()
		s.Metrics.RecordValidationFailure(c.kind.String())
		s.logger().Warn("column validation failed",
			zap.String("column", c.Name()),
			zap.String("type", c.kind.String()),
			zap.Int("row", r),
			zap.Stringer("value", v))
		return newColumnValidationError(v, c.self, r)
	}
	return nil
}

// cast applies fn to every value, failing on the first error.
func (c *baseColumn) cast(fn func(value.Value) (value.Value, error)) ([]value.Value, error) {
	data := c.values()
	out := make([]value.Value, len(data))
	for r, v := range data {
		casted, err := fn(v)
		if err != nil {
			c.settings().Metrics.RecordCastFailure(c.kind.String())
			return nil, errors.Wrap(err, errors.ErrorTypeCast, "cannot cast column value").
				WithDetail("column", c.Name()).
				WithDetail("type", c.kind.String()).
				WithDetail("row", r)
		}
		out[r] = casted
	}
	return out, nil
}
