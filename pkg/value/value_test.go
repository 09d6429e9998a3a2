package value_test

import (
	"math"
	"math/big"
	"sort"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/tabular/pkg/errors"
	"github.com/ajitpratap0/tabular/pkg/json"
	"github.com/ajitpratap0/tabular/pkg/value"
)

type label struct{ name string }

func (l label) String() string { return "label:" + l.name }

func TestOf(t *testing.T) {
	tests := []struct {
		name string
		in   any
		kind value.Kind
		str  string
	}{
		{"nil", nil, value.KindNull, ""},
		{"string", "abc", value.KindText, "abc"},
		{"empty string stays text", "", value.KindText, ""},
		{"int", 42, value.KindInt, "42"},
		{"int8", int8(-3), value.KindInt, "-3"},
		{"uint32", uint32(7), value.KindInt, "7"},
		{"uint64 overflow", uint64(math.MaxUint64), value.KindDecimal, "18446744073709551615"},
		{"decimal", decimal.RequireFromString("3.14"), value.KindDecimal, "3.14"},
		{"big int", big.NewInt(12), value.KindInt, "12"},
		{"float", 1.5, value.KindFloat, "1.5"},
		{"bool", true, value.KindBool, "true"},
		{"stringer", label{"x"}, value.KindText, "label:x"},
		{"value passthrough", value.Int(9), value.KindInt, "9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := value.Of(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, v.Kind())
			assert.Equal(t, tt.str, v.String())
		})
	}
}

func TestOfUnsupported(t *testing.T) {
	_, err := value.Of([]int{1})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeData))

	_, err = value.RowOf("a", struct{}{})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeData))
}

func TestEqual(t *testing.T) {
	assert.True(t, value.Null.Equal(value.Null))
	assert.False(t, value.Null.Equal(value.Text("")))
	assert.False(t, value.Text("").Equal(value.Null))
	assert.True(t, value.Int(1).Equal(value.MustDecimal("1.00")))
	assert.True(t, value.MustDecimal("1.50").Equal(value.MustDecimal("1.5")))
	assert.False(t, value.Int(1).Equal(value.Float(1)))
	assert.False(t, value.Text("1").Equal(value.Int(1)))
	assert.True(t, value.Bool(false).Equal(value.Bool(false)))
	assert.True(t, value.Float(2.5).Equal(value.Float(2.5)))
	assert.True(t, value.Float(math.NaN()).Equal(value.Float(math.NaN())))
	assert.False(t, value.Float(math.NaN()).Equal(value.Float(0)))
	assert.Equal(t, 0, value.Compare(value.Float(math.NaN()), value.Float(math.NaN())))
}

func TestKeyMatchesEqual(t *testing.T) {
	vals := []value.Value{
		value.Null, value.Text("1"), value.Int(1), value.MustDecimal("1.0"),
		value.Float(1), value.Bool(true), value.Text(""), value.MustDecimal("2.50"),
		value.MustDecimal("2.5"), value.Float(0), value.Float(math.Copysign(0, -1)),
		value.Float(math.NaN()), value.Float(math.Inf(1)),
	}

	for _, a := range vals {
		for _, b := range vals {
			assert.Equal(t, a.Equal(b), a.Key() == b.Key(), "%#v vs %#v", a, b)
		}
	}
}

func TestCompareOrdering(t *testing.T) {
	vals := []value.Value{
		value.Text("b"),
		value.Int(3),
		value.Null,
		value.Bool(true),
		value.MustDecimal("2.5"),
		value.Text("a"),
		value.Float(-1),
		value.Bool(false),
	}

	sort.SliceStable(vals, func(i, j int) bool { return value.Less(vals[i], vals[j]) })

	want := []value.Value{
		value.Null,
		value.Float(-1),
		value.MustDecimal("2.5"),
		value.Int(3),
		value.Bool(false),
		value.Bool(true),
		value.Text("a"),
		value.Text("b"),
	}
	assert.True(t, value.Row(vals).Equal(want), "got %#v", vals)
}

func TestCompareNumericAcrossKinds(t *testing.T) {
	assert.Equal(t, 0, value.Compare(value.Int(2), value.MustDecimal("2.000")))
	assert.Equal(t, -1, value.Compare(value.Int(-7), value.Int(5)))
	assert.Equal(t, 1, value.Compare(value.MustDecimal("0.30"), value.Float(0.1)))
	assert.Equal(t, -1, value.Compare(value.Float(math.NaN()), value.Float(0)))
}

func TestAccessors(t *testing.T) {
	i, ok := value.Int(4).AsInt()
	assert.True(t, ok)
	assert.Equal(t, int64(4), i)

	_, ok = value.Text("4").AsInt()
	assert.False(t, ok)

	d, ok := value.Int(4).Numeric()
	assert.True(t, ok)
	assert.True(t, d.Equal(decimal.NewFromInt(4)))

	_, ok = value.Float(4).Numeric()
	assert.False(t, ok)

	assert.Nil(t, value.Null.Interface())
	assert.Equal(t, "x", value.Text("x").Interface())
	assert.Equal(t, "value.Null", value.Null.GoString())
	assert.Equal(t, `value.int("4")`, value.Int(4).GoString())
}

func TestRowClone(t *testing.T) {
	r := value.Row{value.Int(1), value.Text("a")}
	c := r.Clone()
	c[0] = value.Int(2)

	assert.True(t, r[0].Equal(value.Int(1)))
	assert.Nil(t, value.Row(nil).Clone())
}

func TestJSONRoundTrip(t *testing.T) {
	row := value.Row{
		value.Null,
		value.Text("x"),
		value.Int(-12),
		value.MustDecimal("3.14"),
		value.Bool(true),
	}

	data, err := json.Marshal(row)
	require.NoError(t, err)
	assert.Equal(t, `[null,"x",-12,"3.14",true]`, string(data))

	var back value.Row
	require.NoError(t, json.Unmarshal([]byte(`[null,"x",-12,3.14,true,1e400]`), &back))
	require.Len(t, back, 6)
	assert.True(t, back[0].IsNull())
	assert.Equal(t, value.KindInt, back[2].Kind())
	assert.Equal(t, value.KindDecimal, back[3].Kind())
	assert.Equal(t, "3.14", back[3].String())
	assert.Equal(t, value.KindDecimal, back[5].Kind())
}

func TestUnmarshalRejectsObjects(t *testing.T) {
	var v value.Value
	err := v.UnmarshalJSON([]byte(`{"a":1}`))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeData))
}
