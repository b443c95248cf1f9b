// Package catalog turns declarative unit definitions (TOML, YAML or JSON)
// into a ready-to-use set of systems, units, a resolver and a calculator.
//
// A catalog file declares, in order: extra base dimensions, base units,
// directed edges between base units, unit systems and finally units. Build
// validates the whole definition and reports every problem it finds as a
// *ValidationError. A built-in catalog covering SI, imperial, foot-pound-second
// and CGS units is embedded and used whenever no catalog file is configured.
package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/papapumpkin/furlong/internal/baseunit"
	"github.com/papapumpkin/furlong/internal/dimension"
	"github.com/papapumpkin/furlong/internal/quantity"
	"github.com/papapumpkin/furlong/internal/unit"
)

// Catalog is an immutable, validated set of unit definitions. It is safe
// for concurrent use.
type Catalog struct {
	def   *Definition
	reg   *dimension.Registry
	graph *baseunit.Graph

	systems []*unit.System
	units   []unit.Unit
	index   map[string]unit.Unit

	resolver *unit.Resolver
	calc     *quantity.Calculator
}

// Definition returns the definition the catalog was built from.
func (c *Catalog) Definition() *Definition { return c.def }

// Registry returns the catalog's dimension registry.
func (c *Catalog) Registry() *dimension.Registry { return c.reg }

// Graph returns the declared base-unit edges.
func (c *Catalog) Graph() *baseunit.Graph { return c.graph }

// Resolver returns the resolver shared by all of the catalog's units.
func (c *Catalog) Resolver() *unit.Resolver { return c.resolver }

// Calculator returns a calculator backed by Resolver.
func (c *Catalog) Calculator() *quantity.Calculator { return c.calc }

// Systems returns the unit systems in declaration order.
func (c *Catalog) Systems() []*unit.System {
	out := make([]*unit.System, len(c.systems))
	copy(out, c.systems)
	return out
}

// System returns the system with the given name.
func (c *Catalog) System(name string) (*unit.System, bool) {
	for _, s := range c.systems {
		if s.Name() == name {
			return s, true
		}
	}
	return nil, false
}

// Units returns the declared units in declaration order.
func (c *Catalog) Units() []unit.Unit {
	out := make([]unit.Unit, len(c.units))
	copy(out, c.units)
	return out
}

// UnitsOf returns the declared units whose dimension vector equals v.
func (c *Catalog) UnitsOf(v dimension.Vector) []unit.Unit {
	var out []unit.Unit
	for _, u := range c.units {
		if dimension.Equal(u.Dimension(), v) {
			out = append(out, u)
		}
	}
	return out
}

// Lookup finds a unit by name or symbol. Exact matches win; otherwise a
// case-insensitive match on the name is tried.
func (c *Catalog) Lookup(s string) (unit.Unit, error) {
	if u, ok := c.index[s]; ok {
		return u, nil
	}
	for _, u := range c.units {
		if strings.EqualFold(u.Name(), s) {
			return u, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownUnit, s)
}

// Quantity returns v measured in the unit named or symbolized by s.
func (c *Catalog) Quantity(v float64, s string) (quantity.Quantity, error) {
	u, err := c.Lookup(s)
	if err != nil {
		return quantity.Quantity{}, err
	}
	return quantity.New(v, u), nil
}

// Convert re-expresses v from one unit into another, both given by name or
// symbol.
func (c *Catalog) Convert(v float64, from, to string) (quantity.Quantity, error) {
	q, err := c.Quantity(v, from)
	if err != nil {
		return quantity.Quantity{}, err
	}
	target, err := c.Lookup(to)
	if err != nil {
		return quantity.Quantity{}, err
	}
	return c.calc.Into(q, target)
}

// Describe renders a dimension vector with the catalog's dimension names.
func (c *Catalog) Describe(v dimension.Vector) string {
	return v.Format(c.reg)
}

// ParseDimension parses expressions such as "length", "length/time" or
// "mass*length/time^2" against the catalog's dimension names. Terms may be
// joined with '*', '·' or spaces; at most one '/' separates the numerator
// from the denominator.
func (c *Catalog) ParseDimension(expr string) (dimension.Vector, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" || expr == "dimensionless" {
		return dimension.Dimensionless(), nil
	}
	num, den, _ := strings.Cut(expr, "/")
	exps := make(map[dimension.Key]int)
	for i, part := range []string{num, den} {
		sign := 1
		if i == 1 {
			sign = -1
		}
		terms := strings.FieldsFunc(part, func(r rune) bool {
			return r == '*' || r == '·' || r == ' '
		})
		for _, term := range terms {
			if term == "1" {
				continue
			}
			name, pow, hasPow := strings.Cut(term, "^")
			n := 1
			if hasPow {
				var err error
				if n, err = strconv.Atoi(pow); err != nil {
					return dimension.Vector{}, fmt.Errorf("%w: exponent %q in %q", ErrInvalidDimension, pow, expr)
				}
			}
			k, err := c.reg.Lookup(name)
			if err != nil {
				return dimension.Vector{}, fmt.Errorf("%w: %w", ErrInvalidDimension, err)
			}
			exps[k] += sign * n
		}
	}
	return dimension.Of(exps), nil
}

// Unresolved is a pair of same-dimension units that cannot be converted.
type Unresolved struct {
	From unit.Unit
	To   unit.Unit
	Err  error
}

// String renders the pair and the reason.
func (u Unresolved) String() string {
	return fmt.Sprintf("%s → %s: %v", u.From.Name(), u.To.Name(), u.Err)
}

// Verify resolves every ordered pair of distinct declared units that share
// a dimension vector and returns the pairs that fail. A nil result means
// every such conversion has a declared path.
func (c *Catalog) Verify() []Unresolved {
	var out []Unresolved
	for i, a := range c.units {
		for j, b := range c.units {
			if i == j || !dimension.Equal(a.Dimension(), b.Dimension()) {
				continue
			}
			if err := c.resolver.Check(a, b); err != nil {
				out = append(out, Unresolved{From: a, To: b, Err: err})
			}
		}
	}
	return out
}
