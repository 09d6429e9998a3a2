// Package value defines the cell representation shared by tables and
// columns: a small tagged union over the kinds a row store can hold.
package value

import (
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/ajitpratap0/tabular/pkg/errors"
)

// Kind identifies which field of a Value is meaningful.
type Kind uint8

const (
	// KindNull is the absent marker
	KindNull Kind = iota
	// KindText holds a string
	KindText
	// KindInt holds an int64
	KindInt
	// KindDecimal holds an arbitrary-precision decimal
	KindDecimal
	// KindFloat holds a float64; raw input only, never produced by a cast
	KindFloat
	// KindBool holds a bool; raw input only, never produced by a cast
	KindBool
)

var kindNames = [...]string{"null", "text", "int", "decimal", "float", "bool"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is one cell. Only the field matching Kind is meaningful; the zero
// Value is Null.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
	d    decimal.Decimal
}

// Row is one record: a Value per column.
type Row []Value

// Null is the absent marker.
var Null = Value{}

// Text returns a text Value.
func Text(s string) Value { return Value{kind: KindText, s: s} }

// Int returns an integer Value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Decimal returns a decimal Value.
func Decimal(d decimal.Decimal) Value { return Value{kind: KindDecimal, d: d} }

// Float returns a float Value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Bool returns a bool Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// MustDecimal parses s as an exact decimal and panics on failure. It is
// meant for literals in tests and examples.
func MustDecimal(s string) Value {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return Decimal(d)
}

// Of converts a Go value into a Value.
func Of(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null, nil
	case Value:
		return x, nil
	case *Value:
		if x == nil {
			return Null, nil
		}
		return *x, nil
	case string:
		return Text(x), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return fromUint(uint64(x)), nil
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case uint64:
		return fromUint(x), nil
	case decimal.Decimal:
		return Decimal(x), nil
	case *decimal.Decimal:
		if x == nil {
			return Null, nil
		}
		return Decimal(*x), nil
	case *big.Int:
		if x == nil {
			return Null, nil
		}
		if x.IsInt64() {
			return Int(x.Int64()), nil
		}
		return Decimal(decimal.NewFromBigInt(x, 0)), nil
	case float32:
		return Float(float64(x)), nil
	case float64:
		return Float(x), nil
	case bool:
		return Bool(x), nil
	case fmt.Stringer:
		return Text(x.String()), nil
	default:
		return Null, errors.Newf(errors.ErrorTypeData, "unsupported value type %T", v).
			WithDetail("value", v)
	}
}

// MustOf is Of that panics on unsupported input.
func MustOf(v any) Value {
	out, err := Of(v)
	if err != nil {
		panic(err)
	}
	return out
}

// RowOf converts a slice of Go values into a Row.
func RowOf(values ...any) (Row, error) {
	row := make(Row, len(values))
	for i, v := range values {
		out, err := Of(v)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData, "invalid row value").
				WithDetail("position", i)
		}
		row[i] = out
	}
	return row, nil
}

func fromUint(u uint64) Value {
	if u <= math.MaxInt64 {
		return Int(int64(u))
	}
	return Decimal(decimal.NewFromBigInt(new(big.Int).SetUint64(u), 0))
}

// Kind returns the kind tag.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the absent marker.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsNumeric reports whether v is an Int or Decimal.
func (v Value) IsNumeric() bool { return v.kind == KindInt || v.kind == KindDecimal }

// AsText returns the string of a Text value.
func (v Value) AsText() (string, bool) { return v.s, v.kind == KindText }

// AsInt returns the integer of an Int value.
func (v Value) AsInt() (int64, bool) { return v.i, v.kind == KindInt }

// AsDecimal returns the decimal of a Decimal value.
func (v Value) AsDecimal() (decimal.Decimal, bool) { return v.d, v.kind == KindDecimal }

// AsFloat returns the float of a Float value.
func (v Value) AsFloat() (float64, bool) { return v.f, v.kind == KindFloat }

// AsBool returns the bool of a Bool value.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// Numeric returns Int and Decimal values as an exact decimal.
func (v Value) Numeric() (decimal.Decimal, bool) {
	switch v.kind {
	case KindInt:
		return decimal.NewFromInt(v.i), true
	case KindDecimal:
		return v.d, true
	default:
		return decimal.Decimal{}, false
	}
}

// Interface returns the underlying Go value: nil, string, int64,
// decimal.Decimal, float64 or bool.
func (v Value) Interface() any {
	switch v.kind {
	case KindText:
		return v.s
	case KindInt:
		return v.i
	case KindDecimal:
		return v.d
	case KindFloat:
		return v.f
	case KindBool:
		return v.b
	default:
		return nil
	}
}

// String renders the value; Null renders as the empty string.
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.s
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindDecimal:
		return v.d.String()
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// GoString renders the value with its kind, for test failure output.
func (v Value) GoString() string {
	if v.kind == KindNull {
		return "value.Null"
	}
	return fmt.Sprintf("value.%s(%s)", v.kind, strconv.Quote(v.String()))
}
