// Package quantity pairs a float64 value with a unit and implements
// conversion-aware arithmetic over such pairs.
package quantity

import (
	"strconv"

	"github.com/papapumpkin/furlong/internal/unit"
)

// DefaultPrecision is the number of decimals String renders.
const DefaultPrecision = 2

// Quantity is a value measured in a unit. It is immutable; arithmetic
// returns new quantities through a Calculator.
type Quantity struct {
	value float64
	unit  unit.Unit
}

// New returns v expressed in u.
func New(v float64, u unit.Unit) Quantity {
	return Quantity{value: v, unit: u}
}

// Value returns the raw magnitude in q's own unit.
func (q Quantity) Value() float64 { return q.value }

// Unit returns the unit q is expressed in.
func (q Quantity) Unit() unit.Unit { return q.unit }

// Scale returns q multiplied by the dimensionless scalar k.
func (q Quantity) Scale(k float64) Quantity {
	return Quantity{value: q.value * k, unit: q.unit}
}

// IsZero reports whether q has no unit.
func (q Quantity) IsZero() bool { return q.unit == nil }

// String renders q with DefaultPrecision decimals, e.g. "2000.00 m".
func (q Quantity) String() string {
	return q.Format(DefaultPrecision)
}

// Format renders the value with prec decimals followed by the unit symbol.
// Dimensionless quantities render the number alone. A negative prec uses
// the shortest representation that round-trips.
func (q Quantity) Format(prec int) string {
	if prec < 0 {
		prec = -1
	}
	return withSymbol(strconv.FormatFloat(q.value, 'f', prec, 64), q.symbol())
}

func (q Quantity) symbol() string {
	if q.unit == nil {
		return ""
	}
	return q.unit.Symbol()
}

func withSymbol(num, sym string) string {
	if sym == "" {
		return num
	}
	return num + " " + sym
}
