package dimension

import (
	"errors"
	"math/rand/v2"
	"testing"
)

// randomVector builds a vector over the first five keys with exponents in
// [-3, 3], deliberately including duplicate keys and zeros.
func randomVector(rng *rand.Rand) Vector {
	n := rng.IntN(6)
	terms := make([]Term, n)
	for i := range terms {
		terms[i] = Term{Key: Key(rng.IntN(5)), Exp: rng.IntN(7) - 3}
	}
	return New(terms...)
}

func TestNewCanonicalizes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		terms []Term
		want  []Term
	}{
		{"empty", nil, []Term{}},
		{"sorted", []Term{{Time, -1}, {Length, 1}}, []Term{{Length, 1}, {Time, -1}}},
		{"merge duplicates", []Term{{Length, 1}, {Length, 2}}, []Term{{Length, 3}}},
		{"drop zero", []Term{{Mass, 0}, {Length, 1}}, []Term{{Length, 1}}},
		{"net to zero", []Term{{Time, 2}, {Time, -2}}, []Term{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := New(tt.terms...).Terms()
			if len(got) != len(tt.want) {
				t.Fatalf("Terms() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Terms()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestAddIsCommutativeAndAssociative(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewPCG(7, 11))

	for i := 0; i < 500; i++ {
		a, b, c := randomVector(rng), randomVector(rng), randomVector(rng)
		if !Equal(Add(a, b), Add(b, a)) {
			t.Fatalf("Add not commutative: a=%s b=%s", a, b)
		}
		if !Equal(Add(Add(a, b), c), Add(a, Add(b, c))) {
			t.Fatalf("Add not associative: a=%s b=%s c=%s", a, b, c)
		}
		if !Equal(Sub(a, b), Add(a, Negate(b))) {
			t.Fatalf("Sub(a,b) != Add(a,Negate(b)): a=%s b=%s", a, b)
		}
		if !Sub(a, a).IsDimensionless() {
			t.Fatalf("Sub(a,a) = %s, want dimensionless", Sub(a, a))
		}
	}
}

func TestEqualIgnoresDroppedZeroEntries(t *testing.T) {
	t.Parallel()

	// mass·length / mass nets mass to zero; it must equal plain length
	// and look up mass as 0.
	v := Sub(Add(Primitive(Mass), Primitive(Length)), Primitive(Mass))
	if !Equal(v, Primitive(Length)) {
		t.Errorf("Equal(%s, length) = false, want true", v)
	}
	if got := v.Exponent(Mass); got != 0 {
		t.Errorf("Exponent(Mass) = %d, want 0", got)
	}
	if got := v.Exponent(Length); got != 1 {
		t.Errorf("Exponent(Length) = %d, want 1", got)
	}
	if got := Of(map[Key]int{Mass: 0, Length: 1}); !Equal(got, v) {
		t.Errorf("Of with zero entry = %s, want %s", got, v)
	}
	if v.String() != Primitive(Length).String() {
		t.Errorf("String() = %q, want %q", v.String(), Primitive(Length).String())
	}
}

func TestDerivedDimensions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		got  Vector
		want map[Key]int
	}{
		{"area", Area(), map[Key]int{Length: 2}},
		{"volume", Volume(), map[Key]int{Length: 3}},
		{"velocity", Velocity(), map[Key]int{Length: 1, Time: -1}},
		{"acceleration", Acceleration(), map[Key]int{Length: 1, Time: -2}},
		{"force", Force(), map[Key]int{Mass: 1, Length: 1, Time: -2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if !Equal(tt.got, Of(tt.want)) {
				t.Errorf("%s = %s, want %s", tt.name, tt.got, Of(tt.want))
			}
		})
	}
}

func TestPowAndNegate(t *testing.T) {
	t.Parallel()

	v := Velocity()
	if got, want := v.Pow(2), Of(map[Key]int{Length: 2, Time: -2}); !Equal(got, want) {
		t.Errorf("Pow(2) = %s, want %s", got, want)
	}
	if !v.Pow(0).IsDimensionless() {
		t.Errorf("Pow(0) = %s, want dimensionless", v.Pow(0))
	}
	if got, want := Negate(v), Of(map[Key]int{Length: -1, Time: 1}); !Equal(got, want) {
		t.Errorf("Negate = %s, want %s", got, want)
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	temp, err := reg.Register("temperature")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	v := New(Term{Length, 1}, Term{Time, -2}, Term{temp, 1})
	if got, want := v.Format(reg), "length·time^-2·temperature"; got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
	if got, want := Dimensionless().Format(nil), "dimensionless"; got != want {
		t.Errorf("Format(nil) = %q, want %q", got, want)
	}
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	if reg.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", reg.Len())
	}
	for _, tt := range []struct {
		name string
		key  Key
	}{{"mass", Mass}, {"length", Length}, {"time", Time}} {
		got, err := reg.Lookup(tt.name)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", tt.name, err)
		}
		if got != tt.key {
			t.Errorf("Lookup(%q) = %d, want %d", tt.name, got, tt.key)
		}
	}

	k, err := reg.Register("current")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if k != 3 {
		t.Errorf("Register(current) = %d, want 3", k)
	}
	if _, err := reg.Register("current"); !errors.Is(err, ErrDuplicateDimension) {
		t.Errorf("duplicate Register error = %v, want ErrDuplicateDimension", err)
	}
	if _, err := reg.Lookup("luminosity"); !errors.Is(err, ErrUnknownDimension) {
		t.Errorf("Lookup(unknown) error = %v, want ErrUnknownDimension", err)
	}
	if got := reg.Keys(); len(got) != 4 || got[3] != k {
		t.Errorf("Keys() = %v, want 4 keys ending in %d", got, k)
	}
}
