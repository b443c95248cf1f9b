package unit

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/papapumpkin/furlong/internal/baseunit"
	"github.com/papapumpkin/furlong/internal/dimension"
	"github.com/papapumpkin/furlong/internal/factor"
)

// Resolver computes conversion factors between units using the declared
// edges of a base-unit graph. Successful resolutions are memoized per unit
// pair; a Resolver is safe for concurrent use once its graph is final.
type Resolver struct {
	graph  *baseunit.Graph
	logger *slog.Logger
	strict bool

	// memo maps pair → factor.Factor.
	memo sync.Map
}

type pair struct {
	from, to Unit
}

// Option configures a Resolver (functional option pattern).
type Option func(*Resolver)

// WithLogger sets the logger used for overflow diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithStrictExact makes Resolve fail with ErrNumericOverflow instead of
// falling back to the float approximation when an exact factor overflows.
func WithStrictExact(strict bool) Option {
	return func(r *Resolver) {
		r.strict = strict
	}
}

// NewResolver creates a resolver over g.
func NewResolver(g *baseunit.Graph, opts ...Option) *Resolver {
	r := &Resolver{
		graph:  g,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Graph returns the base-unit graph the resolver consults.
func (r *Resolver) Graph() *baseunit.Graph {
	return r.graph
}

// Resolve returns the factor f such that a value v in from equals f·v in to.
// Errors are *ConversionError wrapping ErrIncompatibleDimension,
// baseunit.ErrUnresolvedConversion, ErrIncompleteSystem or ErrNumericOverflow.
func (r *Resolver) Resolve(from, to Unit) (factor.Factor, error) {
	if from == to {
		return factor.One(), nil
	}
	key := pair{from: from, to: to}
	if f, ok := r.memo.Load(key); ok {
		return f.(factor.Factor), nil
	}

	f, err := r.resolve(from, to)
	if err != nil {
		return factor.Factor{}, &ConversionError{From: from.Symbol(), To: to.Symbol(), Err: err}
	}
	if f.Overflowed() {
		r.logger.Debug("conversion factor exceeded exact range; using float approximation",
			"from", from.Name(), "to", to.Name(), "factor", f.Float64())
		if r.strict {
			return factor.Factor{}, &ConversionError{From: from.Symbol(), To: to.Symbol(), Err: ErrNumericOverflow}
		}
	}
	r.memo.Store(key, f)
	return f, nil
}

// Check reports whether from can be converted into to.
func (r *Resolver) Check(from, to Unit) error {
	_, err := r.Resolve(from, to)
	return err
}

func (r *Resolver) resolve(from, to Unit) (factor.Factor, error) {
	rootA, ratioA := Root(from)
	rootB, ratioB := Root(to)

	if !dimension.Equal(rootA.dim, rootB.dim) {
		reg := rootA.system.reg
		return factor.Factor{}, fmt.Errorf("%w: %s vs %s",
			ErrIncompatibleDimension, rootA.dim.Format(reg), rootB.dim.Format(reg))
	}

	f := factor.Quotient(ratioA, ratioB)
	if rootA.system == rootB.system {
		// Same system, same vector: the roots are the same unit.
		return f, nil
	}
	for _, term := range rootA.dim.Terms() {
		baseA, ok := rootA.system.Base(term.Key)
		if !ok {
			return factor.Factor{}, fmt.Errorf("%w %s in %s", ErrIncompleteSystem,
				rootA.system.reg.Name(term.Key), rootA.system.name)
		}
		baseB, ok := rootB.system.Base(term.Key)
		if !ok {
			return factor.Factor{}, fmt.Errorf("%w %s in %s", ErrIncompleteSystem,
				rootB.system.reg.Name(term.Key), rootB.system.name)
		}
		base, err := r.graph.Factor(baseA, baseB)
		if err != nil {
			return factor.Factor{}, err
		}
		f = factor.Product(f, factor.Power(base, term.Exp))
	}
	return f, nil
}
