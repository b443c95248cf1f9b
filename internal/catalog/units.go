package catalog

import (
	"fmt"
	"maps"
	"slices"

	"github.com/papapumpkin/furlong/internal/dimension"
	"github.com/papapumpkin/furlong/internal/unit"
)

// buildUnits resolves system units first, then scaled units in as many
// passes as their "of" references need.
func (b *builder) buildUnits() {
	const kind = "unit"
	var pending []UnitDef
	names := make(map[string]bool, len(b.def.Units))
	for _, d := range b.def.Units {
		if d.Name == "" {
			b.failErr(kind, "", missing("name"))
			continue
		}
		if names[d.Name] {
			b.failErr(kind, d.Name, fmt.Errorf("%w: unit %q", ErrDuplicateName, d.Name))
			continue
		}
		names[d.Name] = true
		if d.Symbol == "" {
			b.failErr(kind, d.Name, missing("symbol"))
			continue
		}
		if d.Of != "" {
			pending = append(pending, d)
			continue
		}
		if d.System == "" {
			b.failErr(kind, d.Name, missing("system or of"))
			continue
		}
		sys, ok := b.systems[d.System]
		if !ok {
			b.failErr(kind, d.Name, unknown("system", d.System))
			continue
		}
		v, err := b.vector(d.Dimension)
		if err != nil {
			b.failErr(kind, d.Name, err)
			continue
		}
		su := sys.Unit(v)
		var u unit.Unit = su
		if su.Name() != d.Name || su.Symbol() != d.Symbol {
			u = unit.Named(su, d.Name, d.Symbol)
		}
		b.addUnit(d, u)
	}

	for len(pending) > 0 {
		var next []UnitDef
		for _, d := range pending {
			of, ok := b.index[d.Of]
			if !ok {
				next = append(next, d)
				continue
			}
			ratio, err := parseRatio(d.Ratio)
			if err != nil {
				b.failErr(kind, d.Name, err)
				continue
			}
			if d.System != "" && d.System != of.System().Name() {
				b.fail(ValCatInvalidSystem, kind, d.Name,
					fmt.Errorf("declared in system %s but %s belongs to %s", d.System, of.Name(), of.System().Name()))
				continue
			}
			if len(d.Dimension) > 0 {
				v, err := b.vector(d.Dimension)
				if err != nil {
					b.failErr(kind, d.Name, err)
					continue
				}
				if !dimension.Equal(v, of.Dimension()) {
					b.fail(ValCatDimensionMismatch, kind, d.Name,
						fmt.Errorf("%w: declared %s but %s is %s", unit.ErrIncompatibleDimension,
							v.Format(b.reg), of.Name(), of.Dimension().Format(b.reg)))
					continue
				}
			}
			b.addUnit(d, unit.Scaled(of, ratio, d.Name, d.Symbol))
		}
		if len(next) == len(pending) {
			for _, d := range next {
				b.failErr(kind, d.Name, unknown("unit", d.Of))
			}
			return
		}
		pending = next
	}
}

func (b *builder) addUnit(d UnitDef, u unit.Unit) {
	for _, key := range []string{d.Name, d.Symbol} {
		if prev, ok := b.index[key]; ok && prev != u {
			b.failErr("unit", d.Name, fmt.Errorf("%w: %q already names %s", ErrDuplicateName, key, prev.Name()))
			return
		}
	}
	b.index[d.Name] = u
	b.index[d.Symbol] = u
	b.unitOrder = append(b.unitOrder, u)
}

// vector converts a name → exponent map into a dimension vector.
func (b *builder) vector(exps map[string]int) (dimension.Vector, error) {
	terms := make([]dimension.Term, 0, len(exps))
	for _, name := range slices.Sorted(maps.Keys(exps)) {
		k, err := b.reg.Lookup(name)
		if err != nil {
			return dimension.Vector{}, err
		}
		terms = append(terms, dimension.Term{Key: k, Exp: exps[name]})
	}
	return dimension.New(terms...), nil
}
