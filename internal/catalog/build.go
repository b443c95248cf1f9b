package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/papapumpkin/furlong/internal/baseunit"
	"github.com/papapumpkin/furlong/internal/dimension"
	"github.com/papapumpkin/furlong/internal/factor"
	"github.com/papapumpkin/furlong/internal/quantity"
	"github.com/papapumpkin/furlong/internal/unit"
)

// Option configures Build.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	strict  bool
	epsilon float64
}

// WithLogger sets the logger passed to the catalog's resolver.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithStrictExact makes conversions fail instead of falling back to float
// factors when an exact factor overflows.
func WithStrictExact(strict bool) Option {
	return func(o *options) { o.strict = strict }
}

// WithEpsilon sets the comparison tolerance of the catalog's calculator.
func WithEpsilon(e float64) Option {
	return func(o *options) { o.epsilon = e }
}

// Build validates def and assembles a Catalog from it. Validation runs in
// stages (dimensions, base units, edges, systems, units); all problems of
// the first failing stage are returned together as *ValidationError values
// joined with errors.Join.
func Build(def *Definition, opts ...Option) (*Catalog, error) {
	o := options{logger: slog.Default(), epsilon: quantity.DefaultEpsilon}
	for _, opt := range opts {
		opt(&o)
	}
	if def == nil {
		def = &Definition{}
	}

	b := &builder{
		def:     def,
		reg:     dimension.NewRegistry(),
		graph:   baseunit.NewGraph(),
		bases:   make(map[string]baseunit.BaseUnit),
		systems: make(map[string]*unit.System),
		index:   make(map[string]unit.Unit),
	}
	stages := []func(){b.dimensions, b.baseUnits, b.edges, b.buildSystems, b.buildUnits}
	for _, stage := range stages {
		stage()
		if len(b.errs) > 0 {
			return nil, errors.Join(b.errs...)
		}
	}

	resolver := unit.NewResolver(b.graph, unit.WithLogger(o.logger), unit.WithStrictExact(o.strict))
	c := &Catalog{
		def:      def,
		reg:      b.reg,
		graph:    b.graph,
		systems:  b.systemOrder,
		units:    b.unitOrder,
		index:    b.index,
		resolver: resolver,
		calc:     quantity.NewCalculator(resolver, quantity.WithEpsilon(o.epsilon)),
	}
	o.logger.Debug("catalog built",
		"dimensions", b.reg.Len(),
		"base_units", len(b.bases),
		"edges", len(b.graph.Edges()),
		"systems", len(c.systems),
		"units", len(c.units))
	return c, nil
}

type builder struct {
	def  *Definition
	errs []error

	reg   *dimension.Registry
	graph *baseunit.Graph
	bases map[string]baseunit.BaseUnit

	systems     map[string]*unit.System
	systemOrder []*unit.System

	index     map[string]unit.Unit // by name and symbol
	unitOrder []unit.Unit
}

func (b *builder) fail(cat ValidationCategory, kind, name string, err error) {
	b.errs = append(b.errs, &ValidationError{Category: cat, Kind: kind, Name: name, Err: err})
}

// failErr records err with a category derived from the sentinel it wraps.
func (b *builder) failErr(kind, name string, err error) {
	b.fail(categorize(err), kind, name, err)
}

func categorize(err error) ValidationCategory {
	switch {
	case errors.Is(err, ErrMissingField):
		return ValCatMissingField
	case errors.Is(err, ErrDuplicateName), errors.Is(err, dimension.ErrDuplicateDimension):
		return ValCatDuplicateName
	case errors.Is(err, ErrUnknownReference), errors.Is(err, dimension.ErrUnknownDimension),
		errors.Is(err, baseunit.ErrUnresolvedConversion):
		return ValCatUnknownReference
	case errors.Is(err, baseunit.ErrDimensionMismatch), errors.Is(err, unit.ErrIncompatibleDimension):
		return ValCatDimensionMismatch
	case errors.Is(err, unit.ErrDuplicateBase), errors.Is(err, unit.ErrIncompleteSystem):
		return ValCatInvalidSystem
	default:
		return ValCatInvalidFactor
	}
}

func missing(field string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, field)
}

func unknown(what, name string) error {
	return fmt.Errorf("%w: %s %q", ErrUnknownReference, what, name)
}

func parseRatio(s string) (factor.Factor, error) {
	if s == "" {
		return factor.Factor{}, missing("ratio")
	}
	return factor.Parse(s)
}

func (b *builder) dimensions() {
	for _, d := range b.def.Dimensions {
		if d.Name == "" {
			b.failErr("dimension", "", missing("name"))
			continue
		}
		if _, err := b.reg.Register(d.Name); err != nil {
			b.failErr("dimension", d.Name, err)
		}
	}
}

func (b *builder) baseUnits() {
	const kind = "base_unit"
	var pending []BaseUnitDef
	for _, d := range b.def.BaseUnits {
		if d.Name == "" {
			b.failErr(kind, "", missing("name"))
			continue
		}
		if d.Symbol == "" {
			b.failErr(kind, d.Name, missing("symbol"))
		}
		if _, dup := b.bases[d.Name]; dup || slices.ContainsFunc(pending, func(p BaseUnitDef) bool { return p.Name == d.Name }) {
			b.failErr(kind, d.Name, fmt.Errorf("%w: base unit %q", ErrDuplicateName, d.Name))
			continue
		}
		if d.Of != "" {
			pending = append(pending, d)
			continue
		}
		if d.Dimension == "" {
			b.failErr(kind, d.Name, missing("dimension or of"))
			continue
		}
		k, err := b.reg.Lookup(d.Dimension)
		if err != nil {
			b.failErr(kind, d.Name, err)
			continue
		}
		tag := baseunit.NewTag(d.Name, d.Symbol, k)
		b.graph.Register(tag)
		b.bases[d.Name] = tag.Base()
	}

	// Scaled base units may refer to ones declared later in the file.
	for len(pending) > 0 {
		var next []BaseUnitDef
		for _, d := range pending {
			of, ok := b.bases[d.Of]
			if !ok {
				next = append(next, d)
				continue
			}
			ratio, err := parseRatio(d.Ratio)
			if err != nil {
				b.failErr(kind, d.Name, err)
				continue
			}
			if d.Dimension != "" {
				if k, err := b.reg.Lookup(d.Dimension); err != nil || k != of.Dimension() {
					b.fail(ValCatDimensionMismatch, kind, d.Name,
						fmt.Errorf("%w: declared %s but %s is %s",
							baseunit.ErrDimensionMismatch, d.Dimension, of.Name(), b.reg.Name(of.Dimension())))
					continue
				}
			}
			b.bases[d.Name] = baseunit.Scale(of, ratio, d.Name, d.Symbol)
		}
		if len(next) == len(pending) {
			for _, d := range next {
				b.failErr(kind, d.Name, unknown("base unit", d.Of))
			}
			return
		}
		pending = next
	}
}

func (b *builder) base(kind, owner, name string) (baseunit.BaseUnit, bool) {
	bu, ok := b.bases[name]
	if !ok {
		b.failErr(kind, owner, unknown("base unit", name))
	}
	return bu, ok
}

func (b *builder) edges() {
	const kind = "edge"
	for _, e := range b.def.Edges {
		name := e.From + " → " + e.To
		if e.From == "" || e.To == "" {
			b.failErr(kind, name, missing("from and to"))
			continue
		}
		from, okFrom := b.base(kind, name, e.From)
		to, okTo := b.base(kind, name, e.To)
		if !okFrom || !okTo {
			continue
		}

		var err error
		switch {
		case e.Via != "" && e.Factor != "":
			b.fail(ValCatInvalidFactor, kind, name, errors.New("factor and via are mutually exclusive"))
			continue
		case e.Via != "":
			via, ok := b.base(kind, name, e.Via)
			if !ok {
				continue
			}
			err = b.graph.Compose(from, via, to)
			if err == nil && e.Reverse {
				err = b.graph.Compose(to, via, from)
			}
		default:
			f, perr := parseRatio(e.Factor)
			if perr != nil {
				if errors.Is(perr, ErrMissingField) {
					perr = missing("factor or via")
				}
				b.failErr(kind, name, perr)
				continue
			}
			if e.Reverse {
				err = b.graph.DeclarePair(from, to, f)
			} else {
				err = b.graph.DeclareEdge(from, to, f)
			}
		}
		if err != nil {
			b.failErr(kind, name, err)
		}
	}
}

func (b *builder) buildSystems() {
	const kind = "system"
	for _, s := range b.def.Systems {
		if s.Name == "" {
			b.failErr(kind, "", missing("name"))
			continue
		}
		if _, dup := b.systems[s.Name]; dup {
			b.failErr(kind, s.Name, fmt.Errorf("%w: system %q", ErrDuplicateName, s.Name))
			continue
		}
		bases := make([]baseunit.BaseUnit, 0, len(s.Bases))
		ok := true
		for _, name := range s.Bases {
			bu, found := b.base(kind, s.Name, name)
			ok = ok && found
			bases = append(bases, bu)
		}
		if !ok {
			continue
		}
		sys, err := unit.NewSystem(b.reg, s.Name, bases...)
		if err != nil {
			b.failErr(kind, s.Name, err)
			continue
		}
		b.systems[s.Name] = sys
		b.systemOrder = append(b.systemOrder, sys)
	}
}
