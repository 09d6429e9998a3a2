// Package arrowconv converts tables to and from Apache Arrow records.
//
// Text columns map to utf8, Int columns to int64 and Decimal columns to
// decimal128 with a single scale per column, wide enough for every value
// in it. Nulls map to Arrow nulls in both directions.
package arrowconv

import (
	"io"
	"math/big"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/decimal128"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/shopspring/decimal"

	"github.com/ajitpratap0/tabular/pkg/columns"
	"github.com/ajitpratap0/tabular/pkg/errors"
	"github.com/ajitpratap0/tabular/pkg/table"
	"github.com/ajitpratap0/tabular/pkg/value"
)

// MaxDecimalPrecision is the widest decimal128 precision.
const MaxDecimalPrecision = 38

var maxCoefficient = new(big.Int).Exp(big.NewInt(10), big.NewInt(MaxDecimalPrecision), nil)

// Schema returns the Arrow schema for t. Decimal scales are derived from
// the column data.
func Schema(t *table.Table) (*arrow.Schema, error) {
	names := t.ColumnNames()
	fields := make([]arrow.Field, len(names))
	for slot, name := range names {
		col, err := t.Column(slot)
		if err != nil {
			return nil, err
		}
		dt, err := dataType(col)
		if err != nil {
			return nil, err
		}
		fields[slot] = arrow.Field{Name: name, Type: dt, Nullable: true}
	}
	return arrow.NewSchema(fields, nil), nil
}

func dataType(col columns.Column) (arrow.DataType, error) {
	switch col.Type() {
	case columns.TypeText:
		return arrow.BinaryTypes.String, nil
	case columns.TypeInt:
		return arrow.PrimitiveTypes.Int64, nil
	case columns.TypeDecimal:
		return &arrow.Decimal128Type{Precision: MaxDecimalPrecision, Scale: scaleOf(col.Values())}, nil
	}
	return nil, errors.Newf(errors.ErrorTypeSchema, "no arrow type for column type %s", col.Type())
}

// scaleOf is the largest number of fractional digits in vals.
func scaleOf(vals []value.Value) int32 {
	var scale int32
	for _, v := range vals {
		d, ok := v.Numeric()
		if !ok {
			continue
		}
		if s := -d.Exponent(); s > scale {
			scale = s
		}
	}
	return scale
}

// ToRecord builds an Arrow record holding t's rows. The caller must
// Release it. Values must already match their column types; cast the
// table first when loading raw input.
func ToRecord(t *table.Table, mem memory.Allocator) (arrow.Record, error) {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	schema, err := Schema(t)
	if err != nil {
		return nil, err
	}

	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()

	for slot := range schema.Fields() {
		col, err := t.Column(slot)
		if err != nil {
			return nil, err
		}
		if err := appendColumn(b.Field(slot), col); err != nil {
			return nil, err
		}
	}
	return b.NewRecord(), nil
}

func appendColumn(builder array.Builder, col columns.Column) error {
	for r, v := range col.Values() {
		if v.IsNull() {
			builder.AppendNull()
			continue
		}
		if err := appendValue(builder, v); err != nil {
			return errors.Wrap(err, errors.ErrorTypeData, "cannot convert value to arrow").
				WithDetail("column", col.Name()).
				WithDetail("row", r)
		}
	}
	return nil
}

func appendValue(builder array.Builder, v value.Value) error {
	switch b := builder.(type) {
	case *array.StringBuilder:
		b.Append(v.String())

	case *array.Int64Builder:
		i, ok := v.AsInt()
		if !ok {
			return errors.Newf(errors.ErrorTypeData, "%s value %q in int column", v.Kind(), v.String())
		}
		b.Append(i)

	case *array.Decimal128Builder:
		d, ok := v.Numeric()
		if !ok {
			return errors.Newf(errors.ErrorTypeData, "%s value %q in decimal column", v.Kind(), v.String())
		}
		scale := b.Type().(*arrow.Decimal128Type).Scale
		coef := d.Round(scale).Coefficient()
		if coef.CmpAbs(maxCoefficient) >= 0 {
			return errors.Newf(errors.ErrorTypeOutOfRange, "%s needs more than %d digits", d.String(), MaxDecimalPrecision)
		}
		b.Append(decimal128.FromBigInt(coef))

	default:
		return errors.Newf(errors.ErrorTypeInternal, "unsupported builder type: %T", builder)
	}
	return nil
}

// FromRecord builds a table from rec. Supported field types are utf8,
// large utf8, int32, int64 and decimal128.
func FromRecord(rec arrow.Record, opts ...table.Option) (*table.Table, error) {
	names, types, err := schemaColumns(rec.Schema())
	if err != nil {
		return nil, err
	}
	return table.FromRows(names, types, recordRows(rec), opts...)
}

func schemaColumns(schema *arrow.Schema) ([]string, []columns.ColumnType, error) {
	fields := schema.Fields()
	names := make([]string, len(fields))
	types := make([]columns.ColumnType, len(fields))
	for i, f := range fields {
		t, err := columnType(f.Type)
		if err != nil {
			return nil, nil, errors.Wrap(err, errors.ErrorTypeSchema, "unsupported arrow field").
				WithDetail("field", f.Name)
		}
		names[i] = f.Name
		types[i] = t
	}
	return names, types, nil
}

func recordRows(rec arrow.Record) []value.Row {
	ncols := int(rec.NumCols())
	rows := make([]value.Row, int(rec.NumRows()))
	for r := range rows {
		rows[r] = make(value.Row, ncols)
	}
	for c := 0; c < ncols; c++ {
		arr := rec.Column(c)
		for r := range rows {
			rows[r][c] = cellValue(arr, r)
		}
	}
	return rows
}

func columnType(dt arrow.DataType) (columns.ColumnType, error) {
	switch dt.ID() {
	case arrow.STRING, arrow.LARGE_STRING:
		return columns.TypeText, nil
	case arrow.INT32, arrow.INT64:
		return columns.TypeInt, nil
	case arrow.DECIMAL128:
		return columns.TypeDecimal, nil
	}
	return 0, errors.Newf(errors.ErrorTypeSchema, "arrow type %s has no column type", dt)
}

func cellValue(arr arrow.Array, row int) value.Value {
	if arr.IsNull(row) {
		return value.Null
	}

	switch a := arr.(type) {
	case *array.String:
		return value.Text(a.Value(row))
	case *array.LargeString:
		return value.Text(a.Value(row))
	case *array.Int32:
		return value.Int(int64(a.Value(row)))
	case *array.Int64:
		return value.Int(a.Value(row))
	case *array.Decimal128:
		scale := a.DataType().(*arrow.Decimal128Type).Scale
		return value.Decimal(decimal.NewFromBigInt(a.Value(row).BigInt(), -scale))
	default:
		return value.Null
	}
}

// Compression selects the body compression of an IPC stream.
type Compression string

const (
	CompressionNone Compression = ""
	CompressionZstd Compression = "zstd"
	CompressionLZ4  Compression = "lz4"
)

// ParseCompression accepts "", "none", "zstd" and "lz4".
func ParseCompression(s string) (Compression, error) {
	switch Compression(strings.ToLower(s)) {
	case CompressionNone, "none":
		return CompressionNone, nil
	case CompressionZstd:
		return CompressionZstd, nil
	case CompressionLZ4:
		return CompressionLZ4, nil
	}
	return CompressionNone, errors.Newf(errors.ErrorTypeConfig, "unknown compression %q", s)
}

type writeOptions struct {
	compression Compression
}

// WriteOption configures WriteIPC.
type WriteOption func(*writeOptions)

// WithCompression compresses record batch bodies. Readers decompress
// transparently.
func WithCompression(c Compression) WriteOption {
	return func(o *writeOptions) { o.compression = c }
}

// WriteIPC writes t to w as a single-batch Arrow IPC stream.
func WriteIPC(w io.Writer, t *table.Table, opts ...WriteOption) error {
	var o writeOptions
	for _, opt := range opts {
		opt(&o)
	}

	mem := memory.NewGoAllocator()
	rec, err := ToRecord(t, mem)
	if err != nil {
		return err
	}
	defer rec.Release()

	ipcOpts := []ipc.Option{ipc.WithSchema(rec.Schema()), ipc.WithAllocator(mem)}
	switch o.compression {
	case CompressionNone:
	case CompressionZstd:
		ipcOpts = append(ipcOpts, ipc.WithZstd())
	case CompressionLZ4:
		ipcOpts = append(ipcOpts, ipc.WithLZ4())
	default:
		return errors.Newf(errors.ErrorTypeConfig, "unknown compression %q", string(o.compression))
	}

	iw := ipc.NewWriter(w, ipcOpts...)
	if err := iw.Write(rec); err != nil {
		iw.Close()
		return errors.Wrap(err, errors.ErrorTypeData, "failed to write arrow record batch")
	}
	if err := iw.Close(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeData, "failed to close arrow stream")
	}
	return nil
}

// ReadIPC reads an Arrow IPC stream from r and concatenates its batches
// into one table.
func ReadIPC(r io.Reader, opts ...table.Option) (*table.Table, error) {
	ir, err := ipc.NewReader(r, ipc.WithAllocator(memory.NewGoAllocator()))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to open arrow stream")
	}
	defer ir.Release()

	names, types, err := schemaColumns(ir.Schema())
	if err != nil {
		return nil, err
	}

	var rows []value.Row
	for ir.Next() {
		rows = append(rows, recordRows(ir.Record())...)
	}
	if err := ir.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to read arrow record batch")
	}
	return table.FromRows(names, types, rows, opts...)
}
