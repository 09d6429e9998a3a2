package value

import (
	"math"
	"strconv"
	"strings"
)

// Key is a comparable grouping key consistent with Equal: two values are
// Equal exactly when their keys are ==.
type Key struct {
	class uint8
	repr  string
}

const (
	classNull uint8 = iota
	classNumber
	classFloat
	classBool
	classText
)

// Key returns the grouping key of v.
func (v Value) Key() Key {
	switch v.kind {
	case KindText:
		return Key{class: classText, repr: v.s}
	case KindInt:
		return Key{class: classNumber, repr: strconv.FormatInt(v.i, 10)}
	case KindDecimal:
		// String drops trailing zeros, so 1.50 and 1.5 share a key
		return Key{class: classNumber, repr: v.d.String()}
	case KindFloat:
		f := v.f
		if f == 0 {
			f = 0 // -0 groups with 0
		}
		return Key{class: classFloat, repr: strconv.FormatFloat(f, 'g', -1, 64)}
	case KindBool:
		return Key{class: classBool, repr: strconv.FormatBool(v.b)}
	default:
		return Key{class: classNull}
	}
}

// Equal reports value equality. Null equals only Null; Int and Decimal
// compare numerically; every other kind compares within itself. NaN
// equals NaN so that equal values always group together.
func (v Value) Equal(o Value) bool {
	switch {
	case v.kind == KindNull || o.kind == KindNull:
		return v.kind == o.kind
	case v.kind == KindInt && o.kind == KindInt:
		return v.i == o.i
	case v.IsNumeric() && o.IsNumeric():
		a, _ := v.Numeric()
		b, _ := o.Numeric()
		return a.Equal(b)
	case v.kind != o.kind:
		return false
	case v.kind == KindText:
		return v.s == o.s
	case v.kind == KindFloat:
		return v.f == o.f || (math.IsNaN(v.f) && math.IsNaN(o.f))
	case v.kind == KindBool:
		return v.b == o.b
	}
	return false
}

// rank orders kinds: null, numbers, bool, text.
func (v Value) rank() int {
	switch v.kind {
	case KindNull:
		return 0
	case KindInt, KindDecimal, KindFloat:
		return 1
	case KindBool:
		return 2
	default:
		return 3
	}
}

// Compare returns -1, 0 or +1. Null sorts before everything, numbers
// compare numerically across Int, Decimal and Float, then bools, then text.
func Compare(a, b Value) int {
	ra, rb := a.rank(), b.rank()
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}

	switch ra {
	case 0:
		return 0
	case 1:
		return compareNumbers(a, b)
	case 2:
		switch {
		case a.b == b.b:
			return 0
		case !a.b:
			return -1
		default:
			return 1
		}
	default:
		return strings.Compare(a.s, b.s)
	}
}

func compareNumbers(a, b Value) int {
	if a.kind == KindInt && b.kind == KindInt {
		switch {
		case a.i < b.i:
			return -1
		case a.i > b.i:
			return 1
		default:
			return 0
		}
	}
	if a.IsNumeric() && b.IsNumeric() {
		x, _ := a.Numeric()
		y, _ := b.Numeric()
		return x.Cmp(y)
	}

	// At least one side is a binary float; ordering only, never equality
	x, y := a.approxFloat(), b.approxFloat()
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	case math.IsNaN(x) && !math.IsNaN(y):
		return -1
	case !math.IsNaN(x) && math.IsNaN(y):
		return 1
	default:
		return 0
	}
}

func (v Value) approxFloat() float64 {
	switch v.kind {
	case KindFloat:
		return v.f
	case KindInt:
		return float64(v.i)
	case KindDecimal:
		return v.d.InexactFloat64()
	}
	return math.NaN()
}

// Less reports whether a sorts before b.
func Less(a, b Value) bool { return Compare(a, b) < 0 }

// Equal reports element-wise equality of two sequences.
func (r Row) Equal(o Row) bool {
	if len(r) != len(o) {
		return false
	}
	for i := range r {
		if !r[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// Clone returns a copy of r.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	out := make(Row, len(r))
	copy(out, r)
	return out
}
