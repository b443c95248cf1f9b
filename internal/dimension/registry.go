// Package dimension models base dimensions (mass, length, time, ...) and the
// exponent vectors that describe derived physical quantities. Vectors are
// immutable values kept in canonical form: sorted by key, one entry per key,
// zero exponents dropped.
package dimension

import (
	"errors"
	"fmt"
)

// ErrDuplicateDimension is returned when registering a dimension name twice.
var ErrDuplicateDimension = errors.New("duplicate base dimension")

// ErrUnknownDimension is returned when looking up a name that was never registered.
var ErrUnknownDimension = errors.New("unknown base dimension")

// Key identifies a base dimension. Keys also define the fixed order in which
// dimensions are listed and displayed.
type Key int

// Predeclared base dimensions. Every Registry starts with these three.
const (
	Mass   Key = 0
	Length Key = 1
	Time   Key = 2
)

// Registry is the ordered set of base dimensions known to a catalog.
// It is populated at definition time and read-only afterwards.
type Registry struct {
	names  []string
	byName map[string]Key
}

// NewRegistry returns a registry seeded with mass, length and time.
func NewRegistry() *Registry {
	r := &Registry{byName: make(map[string]Key)}
	for _, name := range []string{"mass", "length", "time"} {
		// Seed names are distinct.
		_, _ = r.Register(name)
	}
	return r
}

// Register appends a new base dimension and returns its key.
func (r *Registry) Register(name string) (Key, error) {
	if name == "" {
		return 0, fmt.Errorf("%w: empty name", ErrUnknownDimension)
	}
	if _, exists := r.byName[name]; exists {
		return 0, fmt.Errorf("%w: %s", ErrDuplicateDimension, name)
	}
	k := Key(len(r.names))
	r.names = append(r.names, name)
	r.byName[name] = k
	return k, nil
}

// Lookup returns the key registered under name.
func (r *Registry) Lookup(name string) (Key, error) {
	k, ok := r.byName[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownDimension, name)
	}
	return k, nil
}

// Name returns the registered name of k, or a placeholder for unknown keys.
func (r *Registry) Name(k Key) string {
	if r != nil && int(k) >= 0 && int(k) < len(r.names) {
		return r.names[k]
	}
	return defaultName(k)
}

// Has reports whether k was registered.
func (r *Registry) Has(k Key) bool {
	return int(k) >= 0 && int(k) < len(r.names)
}

// Keys returns all registered keys in order.
func (r *Registry) Keys() []Key {
	keys := make([]Key, len(r.names))
	for i := range r.names {
		keys[i] = Key(i)
	}
	return keys
}

// Len returns the number of registered dimensions.
func (r *Registry) Len() int {
	return len(r.names)
}

func defaultName(k Key) string {
	switch k {
	case Mass:
		return "mass"
	case Length:
		return "length"
	case Time:
		return "time"
	}
	return fmt.Sprintf("dim%d", int(k))
}
