package columns

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/ajitpratap0/tabular/pkg/errors"
	"github.com/ajitpratap0/tabular/pkg/value"
)

// IntColumn is a column of int64 values.
type IntColumn struct {
	NumberColumn
}

// Validate fails with a *ColumnValidationError on the first value that is
// neither an Int nor null.
func (c *IntColumn) Validate() error {
	return c.validate(func(v value.Value) bool {
		return v.Kind() == value.KindInt
	})
}

// Cast parses text after stripping thousands separators and whitespace.
// The empty string becomes null; decimals and floats are truncated toward
// zero; booleans become 0 or 1.
func (c *IntColumn) Cast() ([]value.Value, error) {
	settings := c.settings()
	return c.cast(func(v value.Value) (value.Value, error) {
		return castInt(v, settings)
	})
}

func castInt(v value.Value, settings Settings) (value.Value, error) {
	switch v.Kind() {
	case value.KindNull, value.KindInt:
		return v, nil
	case value.KindText:
		s, _ := v.AsText()
		s = cleanNumber(s, settings)
		if s == "" {
			return value.Null, nil
		}
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return value.Null, errors.Wrap(err, errors.ErrorTypeCast, "cannot cast text to int").
				WithDetail("input", s)
		}
		return value.Int(i), nil
	case value.KindDecimal:
		d, _ := v.AsDecimal()
		return truncateToInt(d, v)
	case value.KindFloat:
		f, _ := v.AsFloat()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return value.Null, errors.Newf(errors.ErrorTypeCast, "cannot cast %v to int", f)
		}
		return truncateToInt(decimal.NewFromFloat(math.Trunc(f)), v)
	case value.KindBool:
		if b, _ := v.AsBool(); b {
			return value.Int(1), nil
		}
		return value.Int(0), nil
	}
	return value.Null, errors.Newf(errors.ErrorTypeCast, "cannot cast %s to int", v.Kind())
}

func truncateToInt(d decimal.Decimal, orig value.Value) (value.Value, error) {
	t := d.Truncate(0)
	if t.Cmp(maxInt64) > 0 || t.Cmp(minInt64) < 0 {
		return value.Null, errors.Newf(errors.ErrorTypeCast, "%s overflows int64", orig.String()).
			WithDetail("input", orig.String())
	}
	return value.Int(t.IntPart()), nil
}
