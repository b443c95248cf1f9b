package baseunit

import (
	"errors"
	"math"
	"testing"

	"github.com/papapumpkin/furlong/internal/dimension"
	"github.com/papapumpkin/furlong/internal/factor"
)

type lengthFixture struct {
	graph *Graph
	meter *Tag
	yard  *Tag
	foot  BaseUnit
	km    BaseUnit
}

func newLengthFixture(t *testing.T) lengthFixture {
	t.Helper()
	meter := NewTag("meter", "m", dimension.Length)
	yard := NewTag("yard", "yd", dimension.Length)
	g := NewGraph()
	if err := g.DeclarePair(yard.Base(), meter.Base(), factor.MustRatio(1143, 1250)); err != nil {
		t.Fatalf("DeclarePair: %v", err)
	}
	return lengthFixture{
		graph: g,
		meter: meter,
		yard:  yard,
		foot:  Scale(yard.Base(), factor.MustRatio(1, 3), "foot", "ft"),
		km:    Scale(meter.Base(), factor.FromInteger(1000), "kilometer", "km"),
	}
}

func mustFactor(t *testing.T, g *Graph, a, b BaseUnit) factor.Factor {
	t.Helper()
	f, err := g.Factor(a, b)
	if err != nil {
		t.Fatalf("Factor(%s, %s): %v", a.Name(), b.Name(), err)
	}
	return f
}

func TestFactorDeclaredAndScaled(t *testing.T) {
	t.Parallel()
	fx := newLengthFixture(t)

	tests := []struct {
		name string
		from BaseUnit
		to   BaseUnit
		want string
	}{
		{"yard to meter", fx.yard.Base(), fx.meter.Base(), "1143/1250"},
		{"meter to yard", fx.meter.Base(), fx.yard.Base(), "1250/1143"},
		{"foot to meter", fx.foot, fx.meter.Base(), "381/1250"},
		{"meter to foot", fx.meter.Base(), fx.foot, "1250/381"},
		{"yard to foot", fx.yard.Base(), fx.foot, "3"},
		{"km to meter", fx.km, fx.meter.Base(), "1000"},
		{"km to foot", fx.km, fx.foot, "1250000/381"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := mustFactor(t, fx.graph, tt.from, tt.to); got.String() != tt.want {
				t.Errorf("Factor = %s, want %s", got, tt.want)
			}
		})
	}
}

// Three feet, one yard and 0.9144 meter are the same length.
func TestFeetYardMeterAgree(t *testing.T) {
	t.Parallel()
	fx := newLengthFixture(t)

	feetInMeters := mustFactor(t, fx.graph, fx.foot, fx.meter.Base()).Apply(3)
	yardInMeters := mustFactor(t, fx.graph, fx.yard.Base(), fx.meter.Base()).Apply(1)
	if feetInMeters != 0.9144 || yardInMeters != 0.9144 {
		t.Errorf("3 ft = %v m, 1 yd = %v m, want 0.9144 both", feetInMeters, yardInMeters)
	}
}

func TestSelfEdgeIsIdentity(t *testing.T) {
	t.Parallel()

	second := NewTag("second", "s", dimension.Time)
	g := NewGraph()
	// Never registered: equal roots still resolve.
	if f := mustFactor(t, g, second.Base(), second.Base()); !f.IsOne() {
		t.Errorf("Factor(s, s) = %s, want 1", f)
	}
	minute := Scale(second.Base(), factor.FromInteger(60), "minute", "min")
	if f := mustFactor(t, g, minute, second.Base()); f.String() != "60" {
		t.Errorf("Factor(min, s) = %s, want 60", f)
	}
	if f := mustFactor(t, g, second.Base(), minute); f.String() != "1/60" {
		t.Errorf("Factor(s, min) = %s, want 1/60", f)
	}

	if err := g.DeclareEdge(second.Base(), second.Base(), factor.FromInteger(2)); !errors.Is(err, ErrConflictingEdge) {
		t.Errorf("non-identity self edge error = %v, want ErrConflictingEdge", err)
	}
	if err := g.DeclareEdge(minute, second.Base(), factor.FromInteger(60)); err != nil {
		t.Errorf("consistent self edge error = %v, want nil", err)
	}
}

// Declaring only B→A must leave A→B unresolved: there is no implicit
// reverse edge and no path search.
func TestOneDirectionalEdge(t *testing.T) {
	t.Parallel()

	gram := NewTag("gram", "g", dimension.Mass)
	slug := NewTag("slug", "slug", dimension.Mass)
	g := NewGraph()
	if err := g.DeclareEdge(slug.Base(), gram.Base(), factor.FromInteger(14590)); err != nil {
		t.Fatalf("DeclareEdge: %v", err)
	}

	if f := mustFactor(t, g, slug.Base(), gram.Base()); f.String() != "14590" {
		t.Errorf("Factor(slug, g) = %s, want 14590", f)
	}
	_, err := g.Factor(gram.Base(), slug.Base())
	if !errors.Is(err, ErrUnresolvedConversion) {
		t.Errorf("Factor(g, slug) error = %v, want ErrUnresolvedConversion", err)
	}
}

func TestNoMultiHop(t *testing.T) {
	t.Parallel()

	a := NewTag("a", "a", dimension.Length)
	b := NewTag("b", "b", dimension.Length)
	c := NewTag("c", "c", dimension.Length)
	g := NewGraph()
	if err := g.DeclarePair(a.Base(), b.Base(), factor.FromInteger(2)); err != nil {
		t.Fatalf("DeclarePair(a, b): %v", err)
	}
	if err := g.DeclarePair(b.Base(), c.Base(), factor.FromInteger(5)); err != nil {
		t.Fatalf("DeclarePair(b, c): %v", err)
	}
	if _, err := g.Factor(a.Base(), c.Base()); !errors.Is(err, ErrUnresolvedConversion) {
		t.Fatalf("Factor(a, c) error = %v, want ErrUnresolvedConversion", err)
	}

	if err := g.Compose(a.Base(), b.Base(), c.Base()); err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if f := mustFactor(t, g, a.Base(), c.Base()); f.String() != "10" {
		t.Errorf("Factor(a, c) after Compose = %s, want 10", f)
	}
	if _, err := g.Factor(c.Base(), a.Base()); !errors.Is(err, ErrUnresolvedConversion) {
		t.Errorf("Compose declared reverse edge: Factor(c, a) error = %v", err)
	}

	d := NewTag("d", "d", dimension.Length)
	if err := g.Compose(a.Base(), d.Base(), c.Base()); !errors.Is(err, ErrUnresolvedConversion) {
		t.Errorf("Compose with missing leg error = %v, want ErrUnresolvedConversion", err)
	}
}

func TestDeclareEdgeErrors(t *testing.T) {
	t.Parallel()
	fx := newLengthFixture(t)

	second := NewTag("second", "s", dimension.Time)
	if err := fx.graph.DeclareEdge(fx.meter.Base(), second.Base(), factor.One()); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("cross-dimension edge error = %v, want ErrDimensionMismatch", err)
	}
	if _, err := fx.graph.Factor(fx.meter.Base(), second.Base()); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("cross-dimension Factor error = %v, want ErrDimensionMismatch", err)
	}
	if err := fx.graph.DeclareEdge(fx.yard.Base(), fx.meter.Base(), factor.FromInteger(1)); !errors.Is(err, ErrConflictingEdge) {
		t.Errorf("conflicting edge error = %v, want ErrConflictingEdge", err)
	}
	// Same edge expressed through feet: 1 ft = 0.3048 m is consistent.
	if err := fx.graph.DeclareEdge(fx.foot, fx.meter.Base(), factor.MustRatio(381, 1250)); err != nil {
		t.Errorf("consistent re-declaration error = %v, want nil", err)
	}
	if err := fx.graph.DeclareEdge(BaseUnit{}, fx.meter.Base(), factor.One()); !errors.Is(err, ErrNilUnit) {
		t.Errorf("zero unit error = %v, want ErrNilUnit", err)
	}

	chain := NewTag("chain", "ch", dimension.Length)
	for _, f := range []factor.Factor{
		factor.FromInteger(0),
		factor.MustRatio(-1143, 1250),
		factor.FromFloat(math.Inf(1)),
		factor.FromFloat(math.NaN()),
	} {
		if err := fx.graph.DeclarePair(chain.Base(), fx.meter.Base(), f); !errors.Is(err, ErrInvalidFactor) {
			t.Errorf("DeclarePair with factor %s error = %v, want ErrInvalidFactor", f, err)
		}
	}
	if _, ok := fx.graph.Edge(chain, fx.meter); ok {
		t.Error("rejected factor left an edge behind")
	}
}

func TestTagsAndEdges(t *testing.T) {
	t.Parallel()
	fx := newLengthFixture(t)

	gram := NewTag("gram", "g", dimension.Mass)
	fx.graph.Register(gram)

	tags := fx.graph.Tags()
	want := []string{"gram", "meter", "yard"}
	if len(tags) != len(want) {
		t.Fatalf("Tags() = %v, want %v", tags, want)
	}
	for i, tag := range tags {
		if tag.Name() != want[i] {
			t.Errorf("Tags()[%d] = %s, want %s", i, tag.Name(), want[i])
		}
	}

	edges := fx.graph.Edges()
	if len(edges) != 2 {
		t.Fatalf("Edges() = %d edges, want 2", len(edges))
	}
	if edges[0].From != fx.meter || edges[0].To != fx.yard || edges[0].Factor.String() != "1250/1143" {
		t.Errorf("Edges()[0] = %s→%s %s, want meter→yard 1250/1143", edges[0].From, edges[0].To, edges[0].Factor)
	}
}

func TestBaseUnitString(t *testing.T) {
	t.Parallel()
	fx := newLengthFixture(t)

	if got := fx.meter.Base().String(); got != "meter" {
		t.Errorf("String() = %q, want meter", got)
	}
	if got := fx.foot.String(); got != "foot (1/3 yard)" {
		t.Errorf("String() = %q, want %q", got, "foot (1/3 yard)")
	}
	if fx.foot.Root() != fx.yard {
		t.Errorf("Root() = %s, want yard", fx.foot.Root())
	}
}
