// Package factor implements conversion factors: multiplicative scales kept as
// an exact int64 ratio for as long as possible, together with a float64
// approximation. Exact arithmetic cross-reduces before multiplying so chained
// conversions (squaring a length factor for an area, say) do not accumulate
// floating error. When an exact result would overflow int64, the factor keeps
// only its float approximation and reports Overflowed.
package factor

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"math/bits"
	"strconv"
	"strings"
)

var (
	// ErrZeroDenominator is returned by FromRatio when d is zero.
	ErrZeroDenominator = errors.New("zero denominator")
	// ErrInvalidLiteral is returned by Parse for text that is not a number or ratio.
	ErrInvalidLiteral = errors.New("invalid factor literal")
)

// Factor is an immutable conversion factor. Use the constructors; the zero
// value is not a valid factor.
type Factor struct {
	num, den   int64
	fl         float64
	inexact    bool
	overflowed bool
}

// One is the identity factor.
func One() Factor {
	return Factor{num: 1, den: 1, fl: 1}
}

// FromInteger returns the exact factor i/1.
func FromInteger(i int64) Factor {
	return Factor{num: i, den: 1, fl: float64(i)}
}

// FromRatio returns the exact factor n/d in lowest terms with a positive
// denominator.
func FromRatio(n, d int64) (Factor, error) {
	if d == 0 {
		return Factor{}, fmt.Errorf("%w: %d/0", ErrZeroDenominator, n)
	}
	f, ok := reduce(n, d)
	if !ok {
		return approx(float64(n)/float64(d), true), nil
	}
	return f, nil
}

// MustRatio is FromRatio for literals known to be valid. It panics when d is zero.
func MustRatio(n, d int64) Factor {
	f, err := FromRatio(n, d)
	if err != nil {
		panic(err)
	}
	return f
}

// FromFloat returns an inexact factor carrying only f.
func FromFloat(f float64) Factor {
	return approx(f, false)
}

// Parse reads "n/d", integer and decimal literals ("0.9144", "1e3") exactly.
// Literals whose exact form does not fit int64 become inexact factors.
// Only finite, strictly positive values are conversion factors.
func Parse(s string) (Factor, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Factor{}, fmt.Errorf("%w: empty", ErrInvalidLiteral)
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return Factor{}, fmt.Errorf("%w: %q", ErrInvalidLiteral, s)
	}
	var f Factor
	if r.Num().IsInt64() && r.Denom().IsInt64() {
		f = exact(r.Num().Int64(), r.Denom().Int64())
	} else {
		fl, _ := r.Float64()
		f = approx(fl, false)
	}
	if !f.Positive() {
		return Factor{}, fmt.Errorf("%w: %q is not a finite positive number", ErrInvalidLiteral, s)
	}
	return f, nil
}

// Product returns a·b.
func Product(a, b Factor) Factor {
	fl := a.fl * b.fl
	if a.inexact || b.inexact {
		return approx(fl, a.overflowed || b.overflowed)
	}
	// Cross-reduce so the partial products stay as small as possible.
	g1 := gcd(a.num, b.den)
	g2 := gcd(b.num, a.den)
	num, ok1 := mul(a.num/g1, b.num/g2)
	den, ok2 := mul(a.den/g2, b.den/g1)
	if !ok1 || !ok2 {
		return approx(fl, true)
	}
	if num == 0 {
		return FromInteger(0)
	}
	return exact(num, den)
}

// Quotient returns a/b.
func Quotient(a, b Factor) Factor {
	return Product(a, Reciprocal(b))
}

// Reciprocal returns 1/a. The reciprocal of an exact zero is +Inf.
func Reciprocal(a Factor) Factor {
	if a.inexact {
		return approx(1/a.fl, a.overflowed)
	}
	if a.num == 0 {
		return approx(math.Inf(1), false)
	}
	num, den := a.den, a.num
	if den < 0 {
		// MinInt64 cannot be negated.
		if den == math.MinInt64 {
			return approx(1/a.fl, true)
		}
		num, den = -num, -den
	}
	return exact(num, den)
}

// Power returns a raised to n. Negative n yields the reciprocal of the
// positive power; n == 0 yields One. Positive powers use repeated squaring.
func Power(a Factor, n int) Factor {
	if n == 0 {
		return One()
	}
	if n == math.MinInt {
		// -n is not representable.
		return Quotient(Power(a, n+1), a)
	}
	if n < 0 {
		return Reciprocal(Power(a, -n))
	}
	result := One()
	base := a
	for n > 0 {
		if n&1 == 1 {
			result = Product(result, base)
		}
		n >>= 1
		if n > 0 {
			base = Product(base, base)
		}
	}
	return result
}

// Float64 returns the floating approximation.
func (f Factor) Float64() float64 {
	return f.fl
}

// Ratio returns the exact numerator and denominator. ok is false when the
// factor only has a float approximation.
func (f Factor) Ratio() (num, den int64, ok bool) {
	if f.inexact {
		return 0, 0, false
	}
	return f.num, f.den, true
}

// Exact reports whether the factor still carries an exact ratio.
func (f Factor) Exact() bool {
	return !f.inexact
}

// Overflowed reports whether exactness was lost because a composition
// exceeded the int64 range.
func (f Factor) Overflowed() bool {
	return f.overflowed
}

// Positive reports whether f is finite and strictly greater than zero.
func (f Factor) Positive() bool {
	return f.fl > 0 && !math.IsInf(f.fl, 1)
}

// IsOne reports whether f is exactly (or, when inexact, numerically) 1.
func (f Factor) IsOne() bool {
	if f.inexact {
		return f.fl == 1
	}
	return f.num == 1 && f.den == 1
}

// Equal compares exact ratios when both sides have them, and the float
// approximations otherwise.
func (f Factor) Equal(g Factor) bool {
	if !f.inexact && !g.inexact {
		return f.num == g.num && f.den == g.den
	}
	return f.fl == g.fl
}

// Apply scales v by f. Exact factors multiply by the numerator before
// dividing by the denominator, which keeps results such as 3 × 381/1250
// as close to the decimal answer as float64 allows.
func (f Factor) Apply(v float64) float64 {
	if f.inexact {
		return v * f.fl
	}
	if f.den == 1 {
		return v * float64(f.num)
	}
	return v * float64(f.num) / float64(f.den)
}

// String renders exact factors as "n" or "n/d" and inexact ones as a float.
func (f Factor) String() string {
	if f.inexact {
		return strconv.FormatFloat(f.fl, 'g', -1, 64)
	}
	if f.den == 1 {
		return strconv.FormatInt(f.num, 10)
	}
	return strconv.FormatInt(f.num, 10) + "/" + strconv.FormatInt(f.den, 10)
}

func exact(num, den int64) Factor {
	return Factor{num: num, den: den, fl: float64(num) / float64(den)}
}

func approx(fl float64, overflowed bool) Factor {
	return Factor{fl: fl, inexact: true, overflowed: overflowed}
}

// reduce normalizes n/d to lowest terms with a positive denominator.
func reduce(n, d int64) (Factor, bool) {
	if n == math.MinInt64 || d == math.MinInt64 {
		return Factor{}, false
	}
	if d < 0 {
		n, d = -n, -d
	}
	g := gcd(n, d)
	return exact(n/g, d/g), true
}

// gcd returns the positive greatest common divisor, treating gcd(0, 0) as 1
// so callers can always divide by it.
func gcd(a, b int64) int64 {
	ua, ub := abs(a), abs(b)
	for ub != 0 {
		ua, ub = ub, ua%ub
	}
	if ua == 0 || ua > math.MaxInt64 {
		return 1
	}
	return int64(ua)
}

func abs(x int64) uint64 {
	if x < 0 {
		return uint64(-(x + 1)) + 1
	}
	return uint64(x)
}

// mul multiplies two int64 values, reporting false on overflow.
func mul(a, b int64) (int64, bool) {
	hi, lo := bits.Mul64(abs(a), abs(b))
	if hi != 0 || lo > math.MaxInt64 {
		return 0, false
	}
	p := int64(lo)
	if (a < 0) != (b < 0) {
		p = -p
	}
	return p, true
}
