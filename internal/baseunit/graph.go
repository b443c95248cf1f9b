package baseunit

import (
	"errors"
	"fmt"
	"sort"

	"github.com/papapumpkin/furlong/internal/factor"
)

var (
	// ErrUnresolvedConversion is returned when no edge was declared between
	// two root tags. The graph never searches for multi-hop paths.
	ErrUnresolvedConversion = errors.New("unresolved conversion")
	// ErrDimensionMismatch is returned when an edge or lookup spans two
	// different base dimensions.
	ErrDimensionMismatch = errors.New("base dimension mismatch")
	// ErrConflictingEdge is returned when an edge is re-declared with a
	// different factor, or a tag is given a non-identity edge to itself.
	ErrConflictingEdge = errors.New("conflicting edge")
	// ErrNilUnit is returned for a zero BaseUnit.
	ErrNilUnit = errors.New("base unit has no tag")
	// ErrInvalidFactor is returned for an edge factor that is zero,
	// negative or not finite.
	ErrInvalidFactor = errors.New("edge factor must be finite and positive")
)

// Edge is one declared directional conversion: 1 From = Factor To.
type Edge struct {
	From   *Tag
	To     *Tag
	Factor factor.Factor
}

// Graph holds the declared conversion edges between tags. Edges are
// directional: declaring yard→meter does not make meter→yard resolvable.
// Every registered tag has an implicit identity self-edge.
//
// A Graph is built at definition time and must not be mutated once
// lookups begin; concurrent lookups need no locking.
type Graph struct {
	// edges maps from-tag → to-tag → factor.
	edges map[*Tag]map[*Tag]factor.Factor
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{edges: make(map[*Tag]map[*Tag]factor.Factor)}
}

// Register adds t with its identity self-edge. Registering twice is a no-op.
func (g *Graph) Register(t *Tag) {
	if _, ok := g.edges[t]; ok {
		return
	}
	g.edges[t] = map[*Tag]factor.Factor{t: factor.One()}
}

// DeclareEdge records that one from equals f to. Scaled endpoints are
// normalized onto their root tags so that Factor(from, to) returns f.
// Both root tags are registered if needed.
func (g *Graph) DeclareEdge(from, to BaseUnit, f factor.Factor) error {
	if from.IsZero() || to.IsZero() {
		return ErrNilUnit
	}
	if from.Dimension() != to.Dimension() {
		return fmt.Errorf("%w: %s and %s", ErrDimensionMismatch, from.name, to.name)
	}
	if !f.Positive() {
		return fmt.Errorf("%w: %s → %s given %s", ErrInvalidFactor, from.name, to.name, f)
	}
	// f = scale(from) × E / scale(to)  ⇒  E = f × scale(to) / scale(from)
	rootFactor := factor.Quotient(factor.Product(f, to.scale), from.scale)

	if from.root == to.root {
		if !rootFactor.IsOne() {
			return fmt.Errorf("%w: %s → %s must be identity, got %s",
				ErrConflictingEdge, from.name, to.name, f)
		}
		g.Register(from.root)
		return nil
	}

	g.Register(from.root)
	g.Register(to.root)
	if existing, ok := g.edges[from.root][to.root]; ok {
		if existing.Equal(rootFactor) {
			return nil
		}
		return fmt.Errorf("%w: %s → %s declared as %s and %s",
			ErrConflictingEdge, from.root.name, to.root.name, existing, rootFactor)
	}
	g.edges[from.root][to.root] = rootFactor
	return nil
}

// DeclarePair declares a → b as f and b → a as its reciprocal.
func (g *Graph) DeclarePair(a, b BaseUnit, f factor.Factor) error {
	if err := g.DeclareEdge(a, b, f); err != nil {
		return err
	}
	return g.DeclareEdge(b, a, factor.Reciprocal(f))
}

// Compose declares from → to as the product of the declared edges
// from → via and via → to. It is an explicit authoring step; lookups still
// only follow direct edges.
func (g *Graph) Compose(from, via, to BaseUnit) error {
	first, err := g.Factor(from, via)
	if err != nil {
		return fmt.Errorf("composing %s → %s via %s: %w", from.name, to.name, via.name, err)
	}
	second, err := g.Factor(via, to)
	if err != nil {
		return fmt.Errorf("composing %s → %s via %s: %w", from.name, to.name, via.name, err)
	}
	return g.DeclareEdge(from, to, factor.Product(first, second))
}

// Edge returns the declared root-level factor from → to. Equal tags always
// resolve to the identity.
func (g *Graph) Edge(from, to *Tag) (factor.Factor, bool) {
	if from == to {
		return factor.One(), true
	}
	f, ok := g.edges[from][to]
	return f, ok
}

// Factor returns the factor converting a value in a into a value in b:
// scale(a) × edge(root(a), root(b)) / scale(b).
func (g *Graph) Factor(a, b BaseUnit) (factor.Factor, error) {
	if a.IsZero() || b.IsZero() {
		return factor.Factor{}, ErrNilUnit
	}
	if a.Dimension() != b.Dimension() {
		return factor.Factor{}, fmt.Errorf("%w: %s and %s", ErrDimensionMismatch, a.name, b.name)
	}
	edge, ok := g.Edge(a.root, b.root)
	if !ok {
		return factor.Factor{}, fmt.Errorf("%w: no edge declared from %s to %s",
			ErrUnresolvedConversion, a.root.name, b.root.name)
	}
	return factor.Quotient(factor.Product(a.scale, edge), b.scale), nil
}

// Tags returns all registered tags ordered by dimension, then name.
func (g *Graph) Tags() []*Tag {
	tags := make([]*Tag, 0, len(g.edges))
	for t := range g.edges {
		tags = append(tags, t)
	}
	sortTags(tags)
	return tags
}

// Edges returns all declared non-identity edges ordered by from, then to.
func (g *Graph) Edges() []Edge {
	var out []Edge
	for _, from := range g.Tags() {
		targets := make([]*Tag, 0, len(g.edges[from]))
		for to := range g.edges[from] {
			if to != from {
				targets = append(targets, to)
			}
		}
		sortTags(targets)
		for _, to := range targets {
			out = append(out, Edge{From: from, To: to, Factor: g.edges[from][to]})
		}
	}
	return out
}

func sortTags(tags []*Tag) {
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].dimension != tags[j].dimension {
			return tags[i].dimension < tags[j].dimension
		}
		return tags[i].name < tags[j].name
	})
}
