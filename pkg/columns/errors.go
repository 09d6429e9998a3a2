package columns

import (
	"github.com/ajitpratap0/tabular/pkg/errors"
	"github.com/ajitpratap0/tabular/pkg/value"
)

// ColumnValidationError reports a value that does not satisfy its column
// type. It unwraps to an *errors.Error of type ErrorTypeValidation.
type ColumnValidationError struct {
	Value  value.Value
	Column Column
	Row    int

	err *errors.Error
}

func newColumnValidationError(v value.Value, col Column, row int) *ColumnValidationError {
	err := errors.Newf(errors.ErrorTypeValidation, "%s value %q in row %d is not valid for %s column %q",
		v.Kind(), v.String(), row, col.Type(), col.Name()).
		WithDetail("column", col.Name()).
		WithDetail("row", row).
		WithDetail("value", v.Interface())
	return &ColumnValidationError{Value: v, Column: col, Row: row, err: err}
}

func (e *ColumnValidationError) Error() string {
	return e.err.Error()
}

func (e *ColumnValidationError) Unwrap() error {
	return e.err
}

func nullComputationError(c *baseColumn, stat string) error {
	return errors.Newf(errors.ErrorTypeNullComputation, "cannot compute %s of column %q: column contains nulls", stat, c.Name()).
		WithDetail("column", c.Name()).
		WithDetail("statistic", stat)
}

func emptyAggregateError(c *baseColumn, stat string) error {
	return errors.Newf(errors.ErrorTypeEmptyAggregate, "cannot compute %s of column %q: no non-null values", stat, c.Name()).
		WithDetail("column", c.Name()).
		WithDetail("statistic", stat)
}
