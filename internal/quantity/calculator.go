package quantity

import (
	"errors"
	"fmt"
	"math"

	"github.com/papapumpkin/furlong/internal/dimension"
	"github.com/papapumpkin/furlong/internal/unit"
)

// DefaultEpsilon is the absolute tolerance used by Equal and Compare.
const DefaultEpsilon = 1e-4

var (
	// ErrNoQuantities indicates Sum was called without operands.
	ErrNoQuantities = errors.New("no quantities to sum")
	// ErrNoUnit indicates a zero Quantity or nil unit was used as an operand.
	ErrNoUnit = errors.New("quantity has no unit")
)

// Calculator performs arithmetic between quantities, converting operands
// through a unit.Resolver. The left operand's unit is authoritative: sums
// and differences come back in it, products and quotients in its system.
type Calculator struct {
	resolver *unit.Resolver
	epsilon  float64
}

// CalcOption configures a Calculator.
type CalcOption func(*Calculator)

// WithEpsilon sets the absolute tolerance for Equal, Compare and Less.
// Negative values are ignored.
func WithEpsilon(e float64) CalcOption {
	return func(c *Calculator) {
		if e >= 0 {
			c.epsilon = e
		}
	}
}

// NewCalculator returns a Calculator resolving conversions with r.
func NewCalculator(r *unit.Resolver, opts ...CalcOption) *Calculator {
	c := &Calculator{resolver: r, epsilon: DefaultEpsilon}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Epsilon returns the comparison tolerance.
func (c *Calculator) Epsilon() float64 { return c.epsilon }

// Resolver returns the resolver backing c.
func (c *Calculator) Resolver() *unit.Resolver { return c.resolver }

// Into re-expresses q in u.
func (c *Calculator) Into(q Quantity, u unit.Unit) (Quantity, error) {
	if q.unit == nil || u == nil {
		return Quantity{}, ErrNoUnit
	}
	f, err := c.resolver.Resolve(q.unit, u)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{value: f.Apply(q.value), unit: u}, nil
}

// Compare returns -1, 0 or +1 as a is less than, within epsilon of, or
// greater than b. b is converted into a's unit first.
func (c *Calculator) Compare(a, b Quantity) (int, error) {
	rhs, err := c.Into(b, a.unit)
	if err != nil {
		return 0, err
	}
	d := a.value - rhs.value
	switch {
	case math.Abs(d) <= c.epsilon:
		return 0, nil
	case d < 0:
		return -1, nil
	default:
		return 1, nil
	}
}

// Equal reports whether a and b are within epsilon once b is expressed in
// a's unit.
func (c *Calculator) Equal(a, b Quantity) (bool, error) {
	cmp, err := c.Compare(a, b)
	return cmp == 0, err
}

// Less reports whether a is less than b by more than epsilon.
func (c *Calculator) Less(a, b Quantity) (bool, error) {
	cmp, err := c.Compare(a, b)
	return cmp < 0, err
}

// Add returns a + b in a's unit. Both must share a dimension vector.
func (c *Calculator) Add(a, b Quantity) (Quantity, error) {
	rhs, err := c.Into(b, a.unit)
	if err != nil {
		return Quantity{}, fmt.Errorf("add: %w", err)
	}
	return Quantity{value: a.value + rhs.value, unit: a.unit}, nil
}

// Sub returns a − b in a's unit. Both must share a dimension vector.
func (c *Calculator) Sub(a, b Quantity) (Quantity, error) {
	rhs, err := c.Into(b, a.unit)
	if err != nil {
		return Quantity{}, fmt.Errorf("subtract: %w", err)
	}
	return Quantity{value: a.value - rhs.value, unit: a.unit}, nil
}

// Accumulate adds b into *dst. On error *dst is left unchanged.
func (c *Calculator) Accumulate(dst *Quantity, b Quantity) error {
	sum, err := c.Add(*dst, b)
	if err != nil {
		return err
	}
	*dst = sum
	return nil
}

// Sum folds qs with Add; the result is in the first quantity's unit.
func (c *Calculator) Sum(qs ...Quantity) (Quantity, error) {
	if len(qs) == 0 {
		return Quantity{}, ErrNoQuantities
	}
	total := qs[0]
	for i, q := range qs[1:] {
		if err := c.Accumulate(&total, q); err != nil {
			return Quantity{}, fmt.Errorf("operand %d: %w", i+1, err)
		}
	}
	return total, nil
}

// Mul returns a × b expressed in a's system unit for the summed dimension
// vector.
func (c *Calculator) Mul(a, b Quantity) (Quantity, error) {
	av, bv, sys, err := c.operands(a, b)
	if err != nil {
		return Quantity{}, fmt.Errorf("multiply: %w", err)
	}
	u := sys.Unit(dimension.Add(a.unit.Dimension(), b.unit.Dimension()))
	return Quantity{value: av * bv, unit: u}, nil
}

// Div returns a ÷ b expressed in a's system unit for the difference of the
// dimension vectors. Division by zero follows IEEE 754.
func (c *Calculator) Div(a, b Quantity) (Quantity, error) {
	av, bv, sys, err := c.operands(a, b)
	if err != nil {
		return Quantity{}, fmt.Errorf("divide: %w", err)
	}
	u := sys.Unit(dimension.Sub(a.unit.Dimension(), b.unit.Dimension()))
	return Quantity{value: av / bv, unit: u}, nil
}

// operands expresses a in its root system unit and b in the same system's
// unit for b's dimension, returning both magnitudes.
func (c *Calculator) operands(a, b Quantity) (float64, float64, *unit.System, error) {
	if a.unit == nil || b.unit == nil {
		return 0, 0, nil, ErrNoUnit
	}
	root, ratio := unit.Root(a.unit)
	sys := root.System()
	rhs, err := c.Into(b, sys.Unit(b.unit.Dimension()))
	if err != nil {
		return 0, 0, nil, err
	}
	return ratio.Apply(a.value), rhs.value, sys, nil
}
