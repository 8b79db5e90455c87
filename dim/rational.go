package dim

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Sentinel errors for rational construction.
var (
	// ErrZeroDenominator indicates a Rational was requested with denominator 0.
	ErrZeroDenominator = errors.New("dim: zero denominator")

	// ErrNotRational indicates a float64 could not be approximated by a
	// small-denominator fraction (NaN, ±Inf, or no convergent found).
	ErrNotRational = errors.New("dim: value has no small rational form")
)

// maxApproxDenominator bounds the denominators considered by ApproxRational.
// Unit exponents in practice are tiny fractions (1/2, 1/3, 3/2); anything
// needing a larger denominator is almost certainly floating-point noise.
const maxApproxDenominator = 1_000_000

// Rational is an exact fraction with int64 numerator and denominator.
//
// A Rational is always stored in normalized form: the denominator is
// positive, and numerator/denominator are coprime (0 is stored as 0/1).
// Because normalization is canonical, Rational is a comparable value
// type: two equal fractions compare equal with ==, which lets Vector
// use plain map equality for dimension comparison.
type Rational struct {
	num int64
	den int64
}

// Int returns the Rational n/1.
func Int(n int64) Rational { return Rational{num: n, den: 1} }

// NewRational returns the normalized fraction num/den.
// Returns ErrZeroDenominator when den == 0.
func NewRational(num, den int64) (Rational, error) {
	if den == 0 {
		return Rational{}, ErrZeroDenominator
	}

	return reduce(num, den), nil
}

// MustRational is NewRational that panics on error; intended for
// compile-time-constant fractions in tests and tables.
func MustRational(num, den int64) Rational {
	r, err := NewRational(num, den)
	if err != nil {
		panic(err)
	}

	return r
}

// ApproxRational converts a float64 into the simplest Rational within
// 1e-12 relative tolerance, using continued-fraction convergents with
// denominators bounded by maxApproxDenominator.
//
// It exists so that parsed numeric exponents ("m**0.5") become exact
// fractions before entering dimension algebra.
func ApproxRational(x float64) (Rational, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return Rational{}, ErrNotRational
	}

	neg := x < 0
	if neg {
		x = -x
	}

	// Fast path: integral values.
	if x == math.Trunc(x) && x <= math.MaxInt64 {
		r := Rational{num: int64(x), den: 1}
		if neg {
			r.num = -r.num
		}

		return r, nil
	}

	// Continued-fraction expansion: h/k converges to x.
	var (
		h0, h1 = int64(0), int64(1)
		k0, k1 = int64(1), int64(0)
		rem    = x
	)
	for i := 0; i < 64; i++ {
		a := int64(math.Floor(rem))
		h0, h1 = h1, a*h1+h0
		k0, k1 = k1, a*k1+k0
		if k1 > maxApproxDenominator {
			break
		}
		approx := float64(h1) / float64(k1)
		if math.Abs(approx-x) <= 1e-12*math.Max(1, x) {
			if neg {
				h1 = -h1
			}

			return reduce(h1, k1), nil
		}
		frac := rem - math.Floor(rem)
		if frac == 0 {
			break
		}
		rem = 1 / frac
	}

	return Rational{}, fmt.Errorf("%w: %v", ErrNotRational, x)
}

// reduce normalizes num/den: positive denominator, coprime parts.
func reduce(num, den int64) Rational {
	if num == 0 {
		return Rational{num: 0, den: 1}
	}
	if den < 0 {
		num, den = -num, -den
	}
	g := gcd(abs64(num), den)

	return Rational{num: num / g, den: den / g}
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}

	return a
}

func abs64(a int64) int64 {
	if a < 0 {
		return -a
	}

	return a
}

// norm maps the zero value of Rational (den == 0) onto the canonical
// 0/1, so uninitialized map entries behave as zero in arithmetic.
func (r Rational) norm() Rational {
	if r.den == 0 {
		return Rational{num: 0, den: 1}
	}

	return r
}

// Num returns the normalized numerator.
func (r Rational) Num() int64 { return r.num }

// Den returns the normalized (positive) denominator.
func (r Rational) Den() int64 { return r.norm().den }

// IsZero reports whether r equals 0.
func (r Rational) IsZero() bool { return r.num == 0 }

// IsOne reports whether r equals 1.
func (r Rational) IsOne() bool { return r.num == 1 && r.den == 1 }

// Sign returns -1, 0, or +1 according to the sign of r.
func (r Rational) Sign() int {
	switch {
	case r.num < 0:
		return -1
	case r.num > 0:
		return 1
	default:
		return 0
	}
}

// Add returns r + o.
func (r Rational) Add(o Rational) Rational {
	r, o = r.norm(), o.norm()

	return reduce(r.num*o.den+o.num*r.den, r.den*o.den)
}

// Sub returns r - o.
func (r Rational) Sub(o Rational) Rational {
	r, o = r.norm(), o.norm()

	return reduce(r.num*o.den-o.num*r.den, r.den*o.den)
}

// Mul returns r · o.
func (r Rational) Mul(o Rational) Rational {
	r, o = r.norm(), o.norm()

	return reduce(r.num*o.num, r.den*o.den)
}

// Neg returns -r.
func (r Rational) Neg() Rational {
	r = r.norm()

	return Rational{num: -r.num, den: r.den}
}

// Float64 returns the nearest float64 to r.
func (r Rational) Float64() float64 {
	r = r.norm()

	return float64(r.num) / float64(r.den)
}

// String renders r as "n" for integers and "n/d" otherwise.
func (r Rational) String() string {
	r = r.norm()
	if r.den == 1 {
		return strconv.FormatInt(r.num, 10)
	}

	return strconv.FormatInt(r.num, 10) + "/" + strconv.FormatInt(r.den, 10)
}
