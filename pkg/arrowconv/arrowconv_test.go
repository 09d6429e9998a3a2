package arrowconv_test

import (
	"bytes"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/tabular/pkg/arrowconv"
	"github.com/ajitpratap0/tabular/pkg/columns"
	"github.com/ajitpratap0/tabular/pkg/errors"
	"github.com/ajitpratap0/tabular/pkg/table"
	"github.com/ajitpratap0/tabular/pkg/testutil"
	"github.com/ajitpratap0/tabular/pkg/value"
)

func ledger(t *testing.T) *table.Table {
	tbl := testutil.Table(t,
		[]string{"account", "entries", "balance"},
		[]columns.ColumnType{columns.TypeText, columns.TypeInt, columns.TypeDecimal},
		[][]any{
			{"cash", "1,200", "10.5"},
			{"bank", "", "-0.125"},
			{"", "3", "7"},
		})
	casted, err := tbl.Cast()
	require.NoError(t, err)
	return casted
}

func TestSchema(t *testing.T) {
	schema, err := arrowconv.Schema(ledger(t))
	require.NoError(t, err)

	require.Len(t, schema.Fields(), 3)
	assert.Equal(t, arrow.STRING, schema.Field(0).Type.ID())
	assert.Equal(t, arrow.INT64, schema.Field(1).Type.ID())

	dec, ok := schema.Field(2).Type.(*arrow.Decimal128Type)
	require.True(t, ok)
	assert.Equal(t, int32(3), dec.Scale)
	assert.Equal(t, int32(arrowconv.MaxDecimalPrecision), dec.Precision)
}

func TestToRecord(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	rec, err := arrowconv.ToRecord(ledger(t), mem)
	require.NoError(t, err)
	defer rec.Release()

	assert.Equal(t, int64(3), rec.NumRows())

	accounts := rec.Column(0).(*array.String)
	assert.Equal(t, "cash", accounts.Value(0))
	assert.True(t, accounts.IsNull(2))

	entries := rec.Column(1).(*array.Int64)
	assert.Equal(t, int64(1200), entries.Value(0))
	assert.True(t, entries.IsNull(1))

	balances := rec.Column(2).(*array.Decimal128)
	assert.Equal(t, "10500", balances.Value(0).BigInt().String())
	assert.Equal(t, "-125", balances.Value(1).BigInt().String())
	assert.Equal(t, "7000", balances.Value(2).BigInt().String())
}

func TestRoundTrip(t *testing.T) {
	src := ledger(t)

	rec, err := arrowconv.ToRecord(src, nil)
	require.NoError(t, err)
	defer rec.Release()

	back, err := arrowconv.FromRecord(rec, table.WithLogger(testutil.TestLogger(t)))
	require.NoError(t, err)

	assert.Equal(t, src.ColumnNames(), back.ColumnNames())
	assert.Equal(t, src.ColumnTypes(), back.ColumnTypes())
	require.NoError(t, back.Validate())

	want := src.Rows()
	got := back.Rows()
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "row %d: %v vs %v", i, want[i], got[i])
	}
}

func TestIPCRoundTrip(t *testing.T) {
	src := ledger(t)

	var buf bytes.Buffer
	require.NoError(t, arrowconv.WriteIPC(&buf, src))

	back, err := arrowconv.ReadIPC(&buf)
	require.NoError(t, err)

	require.Equal(t, src.RowCount(), back.RowCount())
	balance, err := back.ColumnByName("balance")
	require.NoError(t, err)

	sum, err := balance.(columns.Numeric).Sum()
	require.NoError(t, err)
	testutil.RequireValue(t, value.MustDecimal("17.375"), sum)
}

func TestToRecordRejectsUncastValues(t *testing.T) {
	tbl := testutil.Table(t, []string{"n"}, []columns.ColumnType{columns.TypeInt}, [][]any{{"12"}})

	_, err := arrowconv.ToRecord(tbl, nil)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeData))
}

func TestFromRecordUnsupportedType(t *testing.T) {
	schema := arrow.NewSchema([]arrow.Field{{Name: "f", Type: arrow.PrimitiveTypes.Float64, Nullable: true}}, nil)
	b := array.NewRecordBuilder(memory.NewGoAllocator(), schema)
	defer b.Release()
	b.Field(0).(*array.Float64Builder).Append(1.5)
	rec := b.NewRecord()
	defer rec.Release()

	_, err := arrowconv.FromRecord(rec)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeSchema))
}

func TestIPCCompression(t *testing.T) {
	src := ledger(t)

	for _, name := range []string{"zstd", "lz4", "none"} {
		t.Run(name, func(t *testing.T) {
			c, err := arrowconv.ParseCompression(name)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, arrowconv.WriteIPC(&buf, src, arrowconv.WithCompression(c)))

			back, err := arrowconv.ReadIPC(&buf)
			require.NoError(t, err)
			want := src.Rows()
			got := back.Rows()
			require.Len(t, got, len(want))
			for i := range want {
				assert.True(t, want[i].Equal(got[i]), "row %d", i)
			}
		})
	}

	_, err := arrowconv.ParseCompression("brotli")
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}
