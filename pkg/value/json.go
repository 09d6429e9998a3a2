package value

import (
	"bytes"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/ajitpratap0/tabular/pkg/errors"
	"github.com/ajitpratap0/tabular/pkg/json"
)

// MarshalJSON encodes Null as null and Decimal as a string of its exact
// digits so that no reader parses it into a binary float.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindText:
		return json.Marshal(v.s)
	case KindInt:
		return strconv.AppendInt(nil, v.i, 10), nil
	case KindDecimal:
		return json.Marshal(v.d.String())
	case KindFloat:
		return json.Marshal(v.f)
	case KindBool:
		return strconv.AppendBool(nil, v.b), nil
	}
	return nil, errors.Newf(errors.ErrorTypeInternal, "unknown kind %d", v.kind)
}

// UnmarshalJSON decodes null, strings, booleans and numbers. Integral
// numbers that fit in int64 become Int; every other number becomes an
// exact Decimal parsed from its literal text.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0:
		return errors.New(errors.ErrorTypeData, "empty JSON value")
	case bytes.Equal(data, []byte("null")):
		*v = Null
	case bytes.Equal(data, []byte("true")):
		*v = Bool(true)
	case bytes.Equal(data, []byte("false")):
		*v = Bool(false)
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return errors.Wrap(err, errors.ErrorTypeData, "invalid JSON string")
		}
		*v = Text(s)
	default:
		lit := string(data)
		if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
			*v = Int(i)
			return nil
		}
		d, err := decimal.NewFromString(lit)
		if err != nil {
			return errors.Wrap(err, errors.ErrorTypeData, "invalid JSON number").
				WithDetail("literal", lit)
		}
		*v = Decimal(d)
	}
	return nil
}
