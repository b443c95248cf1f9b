// Package baseunit defines base-unit identities (tags such as gram or meter),
// scaled base units (kilogram = 1000 gram) and the graph of explicitly
// declared conversion edges between tags of the same base dimension.
package baseunit

import (
	"fmt"

	"github.com/papapumpkin/furlong/internal/dimension"
	"github.com/papapumpkin/furlong/internal/factor"
)

// Tag identifies one concrete base unit within one base dimension.
// Tags are compared by pointer identity.
type Tag struct {
	name      string
	symbol    string
	dimension dimension.Key
}

// NewTag creates a tag for the base dimension dim.
func NewTag(name, symbol string, dim dimension.Key) *Tag {
	return &Tag{name: name, symbol: symbol, dimension: dim}
}

// Name returns the tag's name, e.g. "gram".
func (t *Tag) Name() string { return t.name }

// Symbol returns the tag's symbol, e.g. "g".
func (t *Tag) Symbol() string { return t.symbol }

// Dimension returns the base dimension the tag measures.
func (t *Tag) Dimension() dimension.Key { return t.dimension }

// String returns the tag name.
func (t *Tag) String() string { return t.name }

// Base returns the tag as an unscaled base unit.
func (t *Tag) Base() BaseUnit {
	return BaseUnit{root: t, scale: factor.One(), name: t.name, symbol: t.symbol}
}

// BaseUnit is a tag at some exact or approximate scale: one BaseUnit equals
// Scale() of its Root() tag. A tag's own base unit has scale 1.
type BaseUnit struct {
	root   *Tag
	scale  factor.Factor
	name   string
	symbol string
}

// Scale defines a new base unit as ratio × of. Scaling a scaled unit
// multiplies the ratios onto the same root tag.
func Scale(of BaseUnit, ratio factor.Factor, name, symbol string) BaseUnit {
	return BaseUnit{
		root:   of.root,
		scale:  factor.Product(of.scale, ratio),
		name:   name,
		symbol: symbol,
	}
}

// Root returns the tag this unit is a multiple of.
func (b BaseUnit) Root() *Tag { return b.root }

// Scale returns how many root-tag units make up one of b.
func (b BaseUnit) Scale() factor.Factor { return b.scale }

// Name returns the unit name.
func (b BaseUnit) Name() string { return b.name }

// Symbol returns the unit symbol.
func (b BaseUnit) Symbol() string { return b.symbol }

// Dimension returns the root tag's base dimension.
func (b BaseUnit) Dimension() dimension.Key { return b.root.dimension }

// IsZero reports whether b is the zero value (no root tag).
func (b BaseUnit) IsZero() bool { return b.root == nil }

// String renders the unit as its name plus, for scaled units, the ratio to
// the root tag.
func (b BaseUnit) String() string {
	if b.root == nil {
		return "<nil base unit>"
	}
	if b.scale.IsOne() {
		return b.name
	}
	return fmt.Sprintf("%s (%s %s)", b.name, b.scale, b.root.name)
}
