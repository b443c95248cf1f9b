package unit

import (
	"testing"

	"github.com/papapumpkin/furlong/internal/baseunit"
	"github.com/papapumpkin/furlong/internal/dimension"
	"github.com/papapumpkin/furlong/internal/factor"
)

// fixture is a small SI/imperial world: kilogram/meter/second against
// slug/foot/second, with yard↔meter and slug↔gram declared both ways.
type fixture struct {
	reg      *dimension.Registry
	graph    *baseunit.Graph
	si       *System
	imperial *System

	meter, kilometer, centimeter Unit
	foot, yard, mile             Unit
	second, hour                 Unit
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	reg := dimension.NewRegistry()
	gram := baseunit.NewTag("gram", "g", dimension.Mass)
	slug := baseunit.NewTag("slug", "slug", dimension.Mass)
	meter := baseunit.NewTag("meter", "m", dimension.Length)
	yard := baseunit.NewTag("yard", "yd", dimension.Length)
	second := baseunit.NewTag("second", "s", dimension.Time)

	g := baseunit.NewGraph()
	if err := g.DeclarePair(yard.Base(), meter.Base(), factor.MustRatio(1143, 1250)); err != nil {
		t.Fatalf("DeclarePair(yard, meter): %v", err)
	}
	if err := g.DeclarePair(slug.Base(), gram.Base(), factor.FromInteger(14590)); err != nil {
		t.Fatalf("DeclarePair(slug, gram): %v", err)
	}

	kg := baseunit.Scale(gram.Base(), factor.FromInteger(1000), "kilogram", "kg")
	ft := baseunit.Scale(yard.Base(), factor.MustRatio(1, 3), "foot", "ft")

	si, err := NewSystem(reg, "si", kg, meter.Base(), second.Base())
	if err != nil {
		t.Fatalf("NewSystem(si): %v", err)
	}
	imperial, err := NewSystem(reg, "imperial", slug.Base(), ft, second.Base())
	if err != nil {
		t.Fatalf("NewSystem(imperial): %v", err)
	}

	length := dimension.Primitive(dimension.Length)
	time := dimension.Primitive(dimension.Time)
	f := &fixture{
		reg:      reg,
		graph:    g,
		si:       si,
		imperial: imperial,
		meter:    si.Unit(length),
		foot:     imperial.Unit(length),
		second:   si.Unit(time),
	}
	f.kilometer = Scaled(f.meter, factor.FromInteger(1000), "kilometer", "km")
	f.centimeter = Scaled(f.meter, factor.MustRatio(1, 100), "centimeter", "cm")
	f.yard = Scaled(f.foot, factor.FromInteger(3), "yard", "yd")
	f.mile = Scaled(f.foot, factor.FromInteger(5280), "mile", "mi")
	f.hour = Scaled(f.second, factor.FromInteger(3600), "hour", "h")
	return f
}

func mustResolve(t *testing.T, r *Resolver, from, to Unit) factor.Factor {
	t.Helper()
	f, err := r.Resolve(from, to)
	if err != nil {
		t.Fatalf("Resolve(%s, %s): %v", from.Symbol(), to.Symbol(), err)
	}
	return f
}
