package dimension

import (
	"sort"
	"strconv"
	"strings"
)

// Term is one (base dimension, exponent) entry of a Vector.
type Term struct {
	Key Key
	Exp int
}

// Vector maps base dimensions to integer exponents. The zero value is the
// dimensionless vector. Keys absent from the vector have exponent 0.
type Vector struct {
	terms []Term
}

// New builds a canonical vector from terms. Duplicate keys are merged by
// summing their exponents and zero exponents are dropped.
func New(terms ...Term) Vector {
	if len(terms) == 0 {
		return Vector{}
	}
	sum := make(map[Key]int, len(terms))
	for _, t := range terms {
		sum[t.Key] += t.Exp
	}
	return fromMap(sum)
}

// Of builds a vector from a key → exponent map.
func Of(exps map[Key]int) Vector {
	return fromMap(exps)
}

// Primitive returns the vector with exponent 1 on k.
func Primitive(k Key) Vector {
	return Vector{terms: []Term{{Key: k, Exp: 1}}}
}

// Dimensionless returns the empty vector.
func Dimensionless() Vector {
	return Vector{}
}

// Area is length².
func Area() Vector {
	return Add(Primitive(Length), Primitive(Length))
}

// Volume is length³.
func Volume() Vector {
	return Add(Area(), Primitive(Length))
}

// Velocity is length·time⁻¹.
func Velocity() Vector {
	return Sub(Primitive(Length), Primitive(Time))
}

// Acceleration is length·time⁻².
func Acceleration() Vector {
	return Sub(Velocity(), Primitive(Time))
}

// Force is mass·length·time⁻².
func Force() Vector {
	return Add(Primitive(Mass), Acceleration())
}

// Add returns the key-wise sum of a and b (the vector of a product).
func Add(a, b Vector) Vector {
	return merge(a, b, 1)
}

// Sub returns the key-wise difference a - b (the vector of a quotient).
func Sub(a, b Vector) Vector {
	return merge(a, b, -1)
}

// Negate flips the sign of every exponent (the vector of a reciprocal).
func Negate(a Vector) Vector {
	if len(a.terms) == 0 {
		return Vector{}
	}
	out := make([]Term, len(a.terms))
	for i, t := range a.terms {
		out[i] = Term{Key: t.Key, Exp: -t.Exp}
	}
	return Vector{terms: out}
}

// Equal reports whether a and b have the same exponent for every key.
// Because both are canonical, this is an element-wise comparison.
func Equal(a, b Vector) bool {
	if len(a.terms) != len(b.terms) {
		return false
	}
	for i := range a.terms {
		if a.terms[i] != b.terms[i] {
			return false
		}
	}
	return true
}

// Pow multiplies every exponent by n.
func (v Vector) Pow(n int) Vector {
	if n == 0 || len(v.terms) == 0 {
		return Vector{}
	}
	out := make([]Term, len(v.terms))
	for i, t := range v.terms {
		out[i] = Term{Key: t.Key, Exp: t.Exp * n}
	}
	return Vector{terms: out}
}

// Exponent returns the exponent of k, 0 when absent.
func (v Vector) Exponent(k Key) int {
	i := sort.Search(len(v.terms), func(i int) bool { return v.terms[i].Key >= k })
	if i < len(v.terms) && v.terms[i].Key == k {
		return v.terms[i].Exp
	}
	return 0
}

// Keys returns the keys with a nonzero exponent, in ascending order.
func (v Vector) Keys() []Key {
	keys := make([]Key, len(v.terms))
	for i, t := range v.terms {
		keys[i] = t.Key
	}
	return keys
}

// Terms returns a copy of the canonical terms.
func (v Vector) Terms() []Term {
	out := make([]Term, len(v.terms))
	copy(out, v.terms)
	return out
}

// IsDimensionless reports whether every exponent is zero.
func (v Vector) IsDimensionless() bool {
	return len(v.terms) == 0
}

// String returns the canonical encoding, e.g. "1:1,2:-1". Equal vectors
// always produce the same string, so it doubles as a map key.
func (v Vector) String() string {
	var b strings.Builder
	for i, t := range v.terms {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(int(t.Key)))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(t.Exp))
	}
	return b.String()
}

// Format renders the vector with dimension names, e.g. "length·time^-1".
// A nil registry falls back to the predeclared names.
func (v Vector) Format(reg *Registry) string {
	if len(v.terms) == 0 {
		return "dimensionless"
	}
	parts := make([]string, len(v.terms))
	for i, t := range v.terms {
		name := reg.Name(t.Key)
		if t.Exp != 1 {
			name += "^" + strconv.Itoa(t.Exp)
		}
		parts[i] = name
	}
	return strings.Join(parts, "·")
}

func merge(a, b Vector, sign int) Vector {
	out := make([]Term, 0, len(a.terms)+len(b.terms))
	i, j := 0, 0
	for i < len(a.terms) || j < len(b.terms) {
		var t Term
		switch {
		case j >= len(b.terms) || (i < len(a.terms) && a.terms[i].Key < b.terms[j].Key):
			t = a.terms[i]
			i++
		case i >= len(a.terms) || b.terms[j].Key < a.terms[i].Key:
			t = Term{Key: b.terms[j].Key, Exp: sign * b.terms[j].Exp}
			j++
		default:
			t = Term{Key: a.terms[i].Key, Exp: a.terms[i].Exp + sign*b.terms[j].Exp}
			i++
			j++
		}
		if t.Exp != 0 {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return Vector{}
	}
	return Vector{terms: out}
}

func fromMap(exps map[Key]int) Vector {
	terms := make([]Term, 0, len(exps))
	for k, e := range exps {
		if e != 0 {
			terms = append(terms, Term{Key: k, Exp: e})
		}
	}
	if len(terms) == 0 {
		return Vector{}
	}
	sort.Slice(terms, func(i, j int) bool { return terms[i].Key < terms[j].Key })
	return Vector{terms: terms}
}
