package unit

import (
	"fmt"
	"sync"

	"github.com/papapumpkin/furlong/internal/baseunit"
	"github.com/papapumpkin/furlong/internal/dimension"
)

// System assigns exactly one base unit to every base dimension of a
// registry. It also interns the SystemUnit for each dimension vector so the
// same (system, vector) pair always yields the same *SystemUnit.
type System struct {
	name  string
	reg   *dimension.Registry
	bases map[dimension.Key]baseunit.BaseUnit

	// units maps a canonical vector encoding → *SystemUnit.
	units sync.Map
}

// NewSystem builds a system over reg. Every dimension registered in reg
// must receive exactly one base unit.
func NewSystem(reg *dimension.Registry, name string, bases ...baseunit.BaseUnit) (*System, error) {
	s := &System{
		name:  name,
		reg:   reg,
		bases: make(map[dimension.Key]baseunit.BaseUnit, len(bases)),
	}
	for _, b := range bases {
		if b.IsZero() {
			return nil, fmt.Errorf("system %s: %w", name, baseunit.ErrNilUnit)
		}
		k := b.Dimension()
		if prev, dup := s.bases[k]; dup {
			return nil, fmt.Errorf("system %s: %w %s: %s and %s",
				name, ErrDuplicateBase, reg.Name(k), prev.Name(), b.Name())
		}
		s.bases[k] = b
	}
	for _, k := range reg.Keys() {
		if _, ok := s.bases[k]; !ok {
			return nil, fmt.Errorf("system %s: %w %s", name, ErrIncompleteSystem, reg.Name(k))
		}
	}
	return s, nil
}

// Name returns the system name, e.g. "si".
func (s *System) Name() string { return s.name }

// Registry returns the dimension registry the system was built against.
func (s *System) Registry() *dimension.Registry { return s.reg }

// Base returns the base unit the system uses for dimension k.
func (s *System) Base(k dimension.Key) (baseunit.BaseUnit, bool) {
	b, ok := s.bases[k]
	return b, ok
}

// Bases returns the system's base units in dimension order.
func (s *System) Bases() []baseunit.BaseUnit {
	out := make([]baseunit.BaseUnit, 0, len(s.bases))
	for _, k := range s.reg.Keys() {
		if b, ok := s.bases[k]; ok {
			out = append(out, b)
		}
	}
	return out
}

// Unit returns the system's canonical unit for dimension vector v.
// Safe for concurrent use.
func (s *System) Unit(v dimension.Vector) *SystemUnit {
	key := v.String()
	if u, ok := s.units.Load(key); ok {
		return u.(*SystemUnit)
	}
	u, _ := s.units.LoadOrStore(key, newSystemUnit(s, v))
	return u.(*SystemUnit)
}

// String returns the system name.
func (s *System) String() string { return s.name }
