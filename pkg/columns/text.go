package columns

import (
	"github.com/ajitpratap0/tabular/pkg/value"
)

// TextColumn is a column of strings.
type TextColumn struct {
	*baseColumn
}

// Validate fails with a *ColumnValidationError on the first value that is
// neither text nor null.
func (c *TextColumn) Validate() error {
	return c.validate(func(v value.Value) bool {
		return v.Kind() == value.KindText
	})
}

// Cast turns the empty string into null and renders everything else as
// text, with booleans spelled True and False. It never fails.
func (c *TextColumn) Cast() ([]value.Value, error) {
	return c.cast(castText)
}

func castText(v value.Value) (value.Value, error) {
	switch v.Kind() {
	case value.KindNull:
		return value.Null, nil
	case value.KindText:
		if s, _ := v.AsText(); s == "" {
			return value.Null, nil
		}
		return v, nil
	case value.KindBool:
		if b, _ := v.AsBool(); b {
			return value.Text("True"), nil
		}
		return value.Text("False"), nil
	default:
		return value.Text(v.String()), nil
	}
}
