package columns_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/tabular/pkg/columns"
	"github.com/ajitpratap0/tabular/pkg/errors"
	"github.com/ajitpratap0/tabular/pkg/testutil"
	"github.com/ajitpratap0/tabular/pkg/value"
)

func peopleTable(t *testing.T) columns.Table {
	return testutil.Table(t,
		[]string{"name", "age", "score"},
		[]columns.ColumnType{columns.TypeText, columns.TypeInt, columns.TypeDecimal},
		[][]any{
			{"ada", 36, "1.50"},
			{"bob", nil, "2.25"},
			{"cy", 41, nil},
		})
}

func TestViewConsistency(t *testing.T) {
	tbl := peopleTable(t)
	rows := tbl.Rows()

	for slot := range tbl.ColumnNames() {
		col := testutil.Column(t, tbl, slot)
		require.Equal(t, len(rows), col.Len())
		for j := range rows {
			got, err := col.At(j)
			require.NoError(t, err)
			assert.True(t, got.Equal(rows[j][slot]), "slot %d row %d", slot, j)
		}
	}
}

func TestColumnIdentity(t *testing.T) {
	tbl := peopleTable(t)
	col := testutil.Column(t, tbl, 1)

	assert.Same(t, tbl, col.Table())
	assert.Equal(t, 1, col.Index())
	assert.Equal(t, "age", col.Name())
	assert.Equal(t, columns.TypeInt, col.Type())
	assert.IsType(t, &columns.IntColumn{}, col)

	again := testutil.Column(t, tbl, 1)
	assert.Same(t, col, again)
}

func TestAtOutOfRange(t *testing.T) {
	col := testutil.Column(t, peopleTable(t), 0)

	for _, j := range []int{-1, 3, 100} {
		_, err := col.At(j)
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeOutOfRange), "index %d", j)
	}
}

func TestValuesReturnsCopy(t *testing.T) {
	col := testutil.Column(t, peopleTable(t), 0)

	vals := col.Values()
	vals[0] = value.Text("changed")

	first, err := col.At(0)
	require.NoError(t, err)
	assert.Equal(t, "ada", first.String())
}

func TestEquals(t *testing.T) {
	tbl := testutil.SingleColumn(t, "n", columns.TypeInt, 1, 2, 3)
	col := testutil.Column(t, tbl, 0)

	assert.True(t, col.Equals(testutil.Values(t, 1, 2, 3)))
	assert.True(t, col.Equals([]value.Value{value.Int(1), value.MustDecimal("2.0"), value.Int(3)}))
	assert.False(t, col.Equals(testutil.Values(t, 1, 2)))
	assert.False(t, col.Equals(testutil.Values(t, 1, 2, 4)))
	assert.True(t, col.NotEquals(testutil.Values(t, 3, 2, 1)))
	assert.False(t, col.NotEquals(testutil.Values(t, 1, 2, 3)))
}

func TestNullPredicates(t *testing.T) {
	tbl := peopleTable(t)

	name := testutil.Column(t, tbl, 0)
	age := testutil.Column(t, tbl, 1)

	assert.False(t, name.HasNulls())
	assert.True(t, age.HasNulls())

	assert.True(t, age.Any(value.Value.IsNull))
	assert.False(t, name.Any(value.Value.IsNull))
	assert.True(t, name.All(func(v value.Value) bool { return v.Kind() == value.KindText }))
	assert.False(t, age.All(func(v value.Value) bool { return v.Kind() == value.KindInt }))
}

func TestEmptyStringIsNotNull(t *testing.T) {
	tbl := testutil.SingleColumn(t, "s", columns.TypeText, "", "x")
	col := testutil.Column(t, tbl, 0)

	assert.False(t, col.HasNulls())

	casted, err := col.Cast()
	require.NoError(t, err)
	assert.True(t, casted[0].IsNull())
}

func TestCount(t *testing.T) {
	tbl := testutil.SingleColumn(t, "n", columns.TypeInt, 1, 1, 2, nil, 3, 3, 3)
	col := testutil.Column(t, tbl, 0)

	assert.Equal(t, 2, col.Count(value.Int(1)))
	assert.Equal(t, 3, col.Count(value.MustDecimal("3")))
	assert.Equal(t, 1, col.Count(value.Null))
	assert.Equal(t, 0, col.Count(value.Int(4)))
	assert.Equal(t, 0, col.Count(value.Text("1")))
}

func TestCountAndCountsAgreeOnNaN(t *testing.T) {
	nan := math.NaN()
	tbl := testutil.SingleColumn(t, "f", columns.TypeText, nan, 1.5, nan)
	col := testutil.Column(t, tbl, 0)

	assert.Equal(t, 2, col.Count(value.Float(nan)))

	counts, err := col.Counts()
	require.NoError(t, err)
	require.Equal(t, 2, counts.RowCount())
	testutil.RequireValue(t, value.Float(nan), counts.Cell(0, 0))
	testutil.RequireValue(t, value.Int(2), counts.Cell(0, 1))
}

func TestCounts(t *testing.T) {
	tbl := testutil.SingleColumn(t, "n", columns.TypeInt, 1, 1, 2, 3, 3, 3)
	col := testutil.Column(t, tbl, 0)

	counts, err := col.Counts()
	require.NoError(t, err)

	assert.Equal(t, []string{"n", "count"}, counts.ColumnNames())
	assert.Equal(t, []columns.ColumnType{columns.TypeInt, columns.TypeInt}, counts.ColumnTypes())
	assert.True(t, testutil.Column(t, counts, 0).Equals(testutil.Values(t, 3, 1, 2)))
	assert.True(t, testutil.Column(t, counts, 1).Equals(testutil.Values(t, 3, 2, 1)))

	// the source table is untouched
	assert.Equal(t, 6, tbl.RowCount())
	assert.True(t, col.Equals(testutil.Values(t, 1, 1, 2, 3, 3, 3)))
}

func TestCountsTiesKeepFirstOccurrence(t *testing.T) {
	tbl := testutil.SingleColumn(t, "w", columns.TypeText, "b", "a", "c", "a", "b", nil)
	col := testutil.Column(t, tbl, 0)

	counts, err := col.Counts()
	require.NoError(t, err)

	assert.True(t, testutil.Column(t, counts, 0).Equals(testutil.Values(t, "b", "a", "c", nil)))
	assert.True(t, testutil.Column(t, counts, 1).Equals(testutil.Values(t, 2, 2, 1, 1)))
}

func TestCountsOnColumnNamedCount(t *testing.T) {
	tbl := testutil.SingleColumn(t, "count", columns.TypeInt, 1, 2)

	_, err := testutil.Column(t, tbl, 0).Counts()
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeSchema))
}

func TestMapDoesNotMutate(t *testing.T) {
	tbl := peopleTable(t)
	before := tbl.Rows()
	age := testutil.Column(t, tbl, 1)
	cached := age.Values()

	mapped, err := age.Map(columns.Pure(func(v value.Value) value.Value {
		if i, ok := v.AsInt(); ok {
			return value.Int(i + 1)
		}
		return v
	}))
	require.NoError(t, err)

	assert.NotSame(t, tbl, mapped)
	assert.True(t, testutil.Column(t, mapped, 1).Equals(testutil.Values(t, 37, nil, 42)))

	after := tbl.Rows()
	require.Len(t, after, len(before))
	for i := range before {
		assert.True(t, before[i].Equal(after[i]), "row %d", i)
	}
	assert.True(t, age.Equals(cached))
	assert.True(t, testutil.Column(t, mapped, 0).Equals(testutil.Column(t, tbl, 0).Values()))
}

func TestMapOptions(t *testing.T) {
	tbl := peopleTable(t)
	age := testutil.Column(t, tbl, 1)

	mapped, err := age.Map(columns.Pure(func(v value.Value) value.Value {
		if v.IsNull() {
			return v
		}
		return value.Text(v.String())
	}), columns.WithType(columns.TypeText), columns.WithName("age_text"))
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "age_text", "score"}, mapped.ColumnNames())
	assert.Equal(t, columns.TypeText, mapped.ColumnTypes()[1])
	assert.IsType(t, &columns.TextColumn{}, testutil.Column(t, mapped, 1))
	assert.NoError(t, testutil.Column(t, mapped, 1).Validate())

	assert.Equal(t, []string{"name", "age", "score"}, tbl.ColumnNames())
}

func TestMapTransformError(t *testing.T) {
	tbl := peopleTable(t)
	age := testutil.Column(t, tbl, 1)

	boom := errors.New(errors.ErrorTypeData, "boom")
	_, err := age.Map(func(v value.Value) (value.Value, error) {
		if v.IsNull() {
			return value.Null, boom
		}
		return v, nil
	})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeTransform))
	assert.ErrorIs(t, err, boom)

	var e *errors.Error
	require.ErrorAs(t, err, &e)
	row, ok := e.Detail("row")
	assert.True(t, ok)
	assert.Equal(t, 1, row)
}

func TestMapRenameCollision(t *testing.T) {
	tbl := peopleTable(t)

	_, err := testutil.Column(t, tbl, 1).Map(columns.Pure(func(v value.Value) value.Value { return v }),
		columns.WithName("name"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeSchema))
}

func TestConcurrentCacheAccess(t *testing.T) {
	tbl := testutil.SingleColumn(t, "n", columns.TypeInt, 5, 3, 1, 4, 2)
	col := testutil.Numeric(t, tbl, 0)

	done := make(chan value.Value, 8)
	for i := 0; i < 8; i++ {
		go func() {
			m, err := col.Median()
			if err != nil {
				done <- value.Null
				return
			}
			done <- m
		}()
	}
	for i := 0; i < 8; i++ {
		testutil.RequireValue(t, value.Int(3), <-done)
	}
}
