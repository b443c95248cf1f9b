// Package unit models units of measure on top of base units and dimension
// vectors, and resolves the conversion factor between any two units of the
// same dimension.
//
// A Unit is one of two variants:
//   - *SystemUnit: a system's base units raised to the exponents of a
//     dimension vector (e.g. si m^2);
//   - *ScaledUnit: a rational multiple of another unit (e.g. km = 1000 m).
package unit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/papapumpkin/furlong/internal/dimension"
	"github.com/papapumpkin/furlong/internal/factor"
)

// Unit is implemented by *SystemUnit and *ScaledUnit only.
type Unit interface {
	// Name returns a descriptive name, e.g. "kilometer".
	Name() string
	// Symbol returns the display symbol, e.g. "km".
	Symbol() string
	// System returns the unit system the unit is ultimately expressed in.
	System() *System
	// Dimension returns the canonical dimension vector.
	Dimension() dimension.Vector

	sealed()
}

// SystemUnit is the product of a system's base units raised to the
// exponents of a dimension vector. Obtain one through System.Unit.
type SystemUnit struct {
	system *System
	dim    dimension.Vector
	name   string
	symbol string
}

func newSystemUnit(s *System, v dimension.Vector) *SystemUnit {
	u := &SystemUnit{system: s, dim: v}
	var names []string
	var sym strings.Builder
	for _, term := range v.Terms() {
		b, ok := s.bases[term.Key]
		name, symbol := s.reg.Name(term.Key), "?"
		if ok {
			name, symbol = b.Name(), b.Symbol()
		}
		if term.Exp != 1 {
			pow := "^" + strconv.Itoa(term.Exp)
			name += pow
			symbol += pow
		}
		names = append(names, name)
		sym.WriteString(symbol)
	}
	u.name = strings.Join(names, "·")
	u.symbol = sym.String()
	return u
}

// Name joins the base unit names, e.g. "meter·second^-1".
func (u *SystemUnit) Name() string { return u.name }

// Symbol concatenates, in dimension order, each base symbol suffixed with
// ^n when the exponent is not 1, e.g. "m^2" or "ms^-1". Dimensionless
// units have an empty symbol.
func (u *SystemUnit) Symbol() string { return u.symbol }

// System returns the owning system.
func (u *SystemUnit) System() *System { return u.system }

// Dimension returns the unit's dimension vector.
func (u *SystemUnit) Dimension() dimension.Vector { return u.dim }

// String returns the symbol.
func (u *SystemUnit) String() string { return u.symbol }

func (*SystemUnit) sealed() {}

// ScaledUnit is ratio × inner. It forwards System and Dimension to inner.
type ScaledUnit struct {
	inner  Unit
	ratio  factor.Factor
	name   string
	symbol string
}

// Scaled defines a unit equal to ratio × inner.
func Scaled(inner Unit, ratio factor.Factor, name, symbol string) *ScaledUnit {
	return &ScaledUnit{inner: inner, ratio: ratio, name: name, symbol: symbol}
}

// Named gives inner a name and symbol of its own without changing its size,
// e.g. newton for kg·m·s^-2.
func Named(inner Unit, name, symbol string) *ScaledUnit {
	return Scaled(inner, factor.One(), name, symbol)
}

// Name returns the unit name.
func (u *ScaledUnit) Name() string { return u.name }

// Symbol returns the unit symbol. Units defined without one render as
// the ratio times the inner symbol.
func (u *ScaledUnit) Symbol() string {
	if u.symbol != "" {
		return u.symbol
	}
	return fmt.Sprintf("%s·%s", u.ratio, u.inner.Symbol())
}

// System forwards to the inner unit.
func (u *ScaledUnit) System() *System { return u.inner.System() }

// Dimension forwards to the inner unit.
func (u *ScaledUnit) Dimension() dimension.Vector { return u.inner.Dimension() }

// Inner returns the unit this one is a multiple of.
func (u *ScaledUnit) Inner() Unit { return u.inner }

// Ratio returns how many inner units make up one of u.
func (u *ScaledUnit) Ratio() factor.Factor { return u.ratio }

// String returns the symbol.
func (u *ScaledUnit) String() string { return u.Symbol() }

func (*ScaledUnit) sealed() {}

// Root strips any chain of ScaledUnit wrappers and returns the underlying
// SystemUnit together with the product of the ratios encountered, so that
// one u equals ratio × root.
func Root(u Unit) (*SystemUnit, factor.Factor) {
	ratio := factor.One()
	for {
		switch v := u.(type) {
		case *SystemUnit:
			return v, ratio
		case *ScaledUnit:
			ratio = factor.Product(ratio, v.ratio)
			u = v.inner
		default:
			panic(fmt.Sprintf("unit: unknown unit variant %T", u))
		}
	}
}
