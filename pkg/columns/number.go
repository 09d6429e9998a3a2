package columns

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ajitpratap0/tabular/pkg/errors"
	"github.com/ajitpratap0/tabular/pkg/value"
)

// Numeric is implemented by IntColumn and DecimalColumn.
type Numeric interface {
	Column
	Sum() (value.Value, error)
	Min() (value.Value, error)
	Max() (value.Value, error)
	Mean() (value.Value, error)
	Median() (value.Value, error)
	Mode() (value.Value, error)
	Variance() (value.Value, error)
	Stdev() (value.Value, error)
}

// NumberColumn carries the statistics shared by IntColumn and
// DecimalColumn. Sum, Min and Max skip nulls; Mean, Median, Mode, Variance
// and Stdev refuse to run on a column containing any null.
type NumberColumn struct {
	*baseColumn
	integral bool
}

// decimals converts values to exact decimals, failing on anything that is
// not an Int or Decimal.
func (c *NumberColumn) decimals(data []value.Value) ([]decimal.Decimal, error) {
	out := make([]decimal.Decimal, len(data))
	for i, v := range data {
		d, ok := v.Numeric()
		if !ok {
			return nil, errors.Newf(errors.ErrorTypeData, "non-numeric %s value %q in %s column %q",
				v.Kind(), v.String(), c.kind, c.Name()).
				WithDetail("column", c.Name()).
				WithDetail("value", v.Interface())
		}
		out[i] = d
	}
	return out, nil
}

func (c *NumberColumn) requireNoNulls(stat string) error {
	if c.HasNulls() {
		return nullComputationError(c.baseColumn, stat)
	}
	return nil
}

func sum(ds []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, d := range ds {
		total = total.Add(d)
	}
	return total
}

// result keeps integral results as Int in an IntColumn when they fit.
func (c *NumberColumn) result(d decimal.Decimal) value.Value {
	if c.integral && d.IsInteger() {
		if d.Cmp(maxInt64) <= 0 && d.Cmp(minInt64) >= 0 {
			return value.Int(d.IntPart())
		}
	}
	return value.Decimal(d)
}

var (
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
	minInt64 = decimal.NewFromInt(math.MinInt64)
	half     = decimal.New(5, -1)
)

// Sum adds the non-null values.
func (c *NumberColumn) Sum() (value.Value, error) {
	data := c.valuesWithoutNulls()
	if len(data) == 0 {
		return value.Null, emptyAggregateError(c.baseColumn, "sum")
	}
	ds, err := c.decimals(data)
	if err != nil {
		return value.Null, err
	}
	return c.result(sum(ds)), nil
}

// Min returns the smallest non-null value.
func (c *NumberColumn) Min() (value.Value, error) {
	return c.extreme("min", -1)
}

// Max returns the largest non-null value.
func (c *NumberColumn) Max() (value.Value, error) {
	return c.extreme("max", 1)
}

func (c *NumberColumn) extreme(stat string, sign int) (value.Value, error) {
	data := c.valuesWithoutNulls()
	if len(data) == 0 {
		return value.Null, emptyAggregateError(c.baseColumn, stat)
	}
	if _, err := c.decimals(data); err != nil {
		return value.Null, err
	}
	best := data[0]
	for _, v := range data[1:] {
		if value.Compare(v, best)*sign > 0 {
			best = v
		}
	}
	return best, nil
}

// Mean is sum divided by count, as a Decimal.
func (c *NumberColumn) Mean() (value.Value, error) {
	m, err := c.mean("mean")
	if err != nil {
		return value.Null, err
	}
	return value.Decimal(m), nil
}

func (c *NumberColumn) mean(stat string) (decimal.Decimal, error) {
	if err := c.requireNoNulls(stat); err != nil {
		return decimal.Zero, err
	}
	data := c.values()
	if len(data) == 0 {
		return decimal.Zero, emptyAggregateError(c.baseColumn, stat)
	}
	ds, err := c.decimals(data)
	if err != nil {
		return decimal.Zero, err
	}
	return sum(ds).DivRound(decimal.NewFromInt(int64(len(ds))), c.settings().precision()), nil
}

// Median returns the middle value of the sorted column, or the exact
// average of the two middle values when the length is even.
func (c *NumberColumn) Median() (value.Value, error) {
	if err := c.requireNoNulls("median"); err != nil {
		return value.Null, err
	}
	data := c.valuesSorted()
	n := len(data)
	if n == 0 {
		return value.Null, emptyAggregateError(c.baseColumn, "median")
	}
	if _, err := c.decimals(data); err != nil {
		return value.Null, err
	}

	if n%2 == 1 {
		return data[n/2], nil
	}

	a, _ := data[n/2-1].Numeric()
	b, _ := data[n/2].Numeric()
	return value.Decimal(a.Add(b).Mul(half)), nil
}

// Mode returns the most frequent value; ties go to the value seen first.
func (c *NumberColumn) Mode() (value.Value, error) {
	if err := c.requireNoNulls("mode"); err != nil {
		return value.Null, err
	}
	data := c.values()
	if len(data) == 0 {
		return value.Null, emptyAggregateError(c.baseColumn, "mode")
	}
	if _, err := c.decimals(data); err != nil {
		return value.Null, err
	}

	reps, counts := group(data)
	best := 0
	for i := 1; i < len(reps); i++ {
		if counts[i] > counts[best] {
			best = i
		}
	}
	return reps[best], nil
}

// Variance is the population variance: the mean squared deviation from
// the mean, divided by count.
func (c *NumberColumn) Variance() (value.Value, error) {
	v, err := c.variance("variance")
	if err != nil {
		return value.Null, err
	}
	return value.Decimal(v), nil
}

func (c *NumberColumn) variance(stat string) (decimal.Decimal, error) {
	m, err := c.mean(stat)
	if err != nil {
		return decimal.Zero, err
	}
	ds, err := c.decimals(c.values())
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, d := range ds {
		dev := d.Sub(m)
		total = total.Add(dev.Mul(dev))
	}
	return total.DivRound(decimal.NewFromInt(int64(len(ds))), c.settings().precision()), nil
}

// Stdev is the square root of Variance.
func (c *NumberColumn) Stdev() (value.Value, error) {
	v, err := c.variance("stdev")
	if err != nil {
		return value.Null, err
	}
	return value.Decimal(sqrt(v, c.settings().precision())), nil
}

// sqrt computes the square root of a non-negative d by Newton's method in
// decimal arithmetic, rounded to places.
func sqrt(d decimal.Decimal, places int32) decimal.Decimal {
	if d.Sign() <= 0 {
		return decimal.Zero
	}

	guard := places + 4
	two := decimal.NewFromInt(2)
	step := func(x decimal.Decimal) decimal.Decimal {
		return x.Add(d.DivRound(x, guard)).DivRound(two, guard)
	}

	// After one step x is at or above the root, so the iterates fall until
	// rounding stops them.
	x := step(sqrtSeed(d))
	for {
		next := step(x)
		if next.Sign() <= 0 || next.GreaterThanOrEqual(x) {
			break
		}
		x = next
	}
	return x.Round(places)
}

// sqrtSeed estimates the root from float64 when d fits, otherwise from its
// decimal magnitude.
func sqrtSeed(d decimal.Decimal) decimal.Decimal {
	if f := math.Sqrt(d.InexactFloat64()); f > 0 && !math.IsInf(f, 0) {
		return decimal.NewFromFloat(f)
	}
	magnitude := d.NumDigits() + int(d.Exponent())
	return decimal.New(1, int32(magnitude/2))
}

// cleanNumber strips thousands separators and whitespace from raw input.
func cleanNumber(s string, settings Settings) string {
	for _, sep := range settings.ThousandsSeparators {
		if sep != "" {
			s = strings.ReplaceAll(s, sep, "")
		}
	}
	return strings.TrimSpace(s)
}
