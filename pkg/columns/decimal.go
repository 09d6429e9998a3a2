package columns

import (
	"github.com/shopspring/decimal"

	"github.com/ajitpratap0/tabular/pkg/errors"
	"github.com/ajitpratap0/tabular/pkg/value"
)

// DecimalColumn is a column of exact decimals. Values are only ever built
// from text or integers, never from binary floats.
type DecimalColumn struct {
	NumberColumn
}

// Validate fails with a *ColumnValidationError on the first value that is
// neither a Decimal nor null.
func (c *DecimalColumn) Validate() error {
	return c.validate(func(v value.Value) bool {
		return v.Kind() == value.KindDecimal
	})
}

// Cast parses text after stripping thousands separators and whitespace.
// The empty string becomes null and integers widen exactly. Floats are
// rejected: cast from the original text instead.
func (c *DecimalColumn) Cast() ([]value.Value, error) {
	settings := c.settings()
	return c.cast(func(v value.Value) (value.Value, error) {
		return castDecimal(v, settings)
	})
}

func castDecimal(v value.Value, settings Settings) (value.Value, error) {
	switch v.Kind() {
	case value.KindNull, value.KindDecimal:
		return v, nil
	case value.KindText:
		s, _ := v.AsText()
		s = cleanNumber(s, settings)
		if s == "" {
			return value.Null, nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return value.Null, errors.Wrap(err, errors.ErrorTypeCast, "cannot cast text to decimal").
				WithDetail("input", s)
		}
		return value.Decimal(d), nil
	case value.KindInt:
		i, _ := v.AsInt()
		return value.Decimal(decimal.NewFromInt(i)), nil
	case value.KindBool:
		if b, _ := v.AsBool(); b {
			return value.Decimal(decimal.NewFromInt(1)), nil
		}
		return value.Decimal(decimal.Zero), nil
	case value.KindFloat:
		return value.Null, errors.Newf(errors.ErrorTypeCast, "refusing to cast binary float %s to decimal", v.String()).
			WithDetail("input", v.String())
	}
	return value.Null, errors.Newf(errors.ErrorTypeCast, "cannot cast %s to decimal", v.Kind())
}
