package decimal

import (
	"fmt"
	"math"
	"math/bits"
)

const (
	float64Prec = 53 // significand bits of float64
	float32Prec = 24 // significand bits of float32
)

// FromFloat64 converts f to an unscaled value.
// The exact binary value of f is rounded with the rounding mode of a, so
// 0.1 becomes 0.100000000000000006 at scale 18 but 0.10 at scale 2.
//
// FromFloat64 returns [ErrNotFinite] if f is NaN or infinite, and
// [ErrNumericOverflow] if the rounded value does not fit, regardless of the
// overflow mode of a.
func (a *Arithmetic) FromFloat64(f float64) (int64, error) {
	z, err := a.fromFloat(f)
	if err != nil {
		return 0, fmt.Errorf("FromFloat64(%v) failed: %w", f, err)
	}
	return z, nil
}

// FromFloat32 converts f to an unscaled value.
// Also see method [Arithmetic.FromFloat64].
func (a *Arithmetic) FromFloat32(f float32) (int64, error) {
	z, err := a.fromFloat(float64(f))
	if err != nil {
		return 0, fmt.Errorf("FromFloat32(%v) failed: %w", f, err)
	}
	return z, nil
}

func (a *Arithmetic) fromFloat(f float64) (int64, error) {
	switch {
	case math.IsNaN(f) || math.IsInf(f, 0):
		return 0, ErrNotFinite
	case f == 0:
		return 0, nil
	}
	neg := f < 0

	// |f| = mant * 2^exp
	frac, exp := math.Frexp(math.Abs(f))
	mant := uint64(math.Ldexp(frac, float64Prec))
	exp -= float64Prec

	// |f| * 10^scale = p * 2^exp
	p := a.metrics.mulFactor(mant)
	var (
		q    u128
		part TruncatedPart
	)
	switch {
	case exp >= 0:
		if p.bitLen()+exp > 64 {
			return 0, ErrNumericOverflow
		}
		q = p.shl(uint(exp))
	default:
		q, part = p.rsh(uint(-exp))
	}
	q, err := a.round(neg, q, part)
	if err != nil {
		return 0, err
	}
	z, ok := toInt64(neg, q)
	if !ok {
		return 0, ErrNumericOverflow
	}
	return z, nil
}

// ToFloat64 returns the float64 nearest to x in the direction of the
// rounding mode of a.
// With [HalfEven] rounding the result is the same as the one of
// [strconv.ParseFloat] applied to the decimal notation of x.
//
// ToFloat64 returns [ErrRoundingNecessary] if the rounding mode is
// [Unnecessary] and x is not exactly representable as a float64.
func (a *Arithmetic) ToFloat64(x int64) (float64, error) {
	f, err := a.toFloat(x, float64Prec)
	if err != nil {
		return 0, fmt.Errorf("ToFloat64(%v) failed: %w", a.Format(x), err)
	}
	return f, nil
}

// ToFloat32 returns the float32 nearest to x in the direction of the
// rounding mode of a.
// Also see method [Arithmetic.ToFloat64].
func (a *Arithmetic) ToFloat32(x int64) (float32, error) {
	f, err := a.toFloat(x, float32Prec)
	if err != nil {
		return 0, fmt.Errorf("ToFloat32(%v) failed: %w", a.Format(x), err)
	}
	// f has at most 24 significant bits, so the conversion is exact.
	return float32(f), nil
}

// toFloat rounds x / 10^scale to a binary significand of prec bits.
// Results of all scales lie between 2^-60 and 2^63, so neither subnormal
// numbers nor infinities can occur.
func (a *Arithmetic) toFloat(x int64, prec int) (float64, error) {
	if x == 0 {
		return 0, nil
	}
	neg := x < 0
	u, f := mag(x), a.metrics.factor

	// q = ⌊u * 2^k / f⌋ has prec + 1 or prec + 2 bits
	k := prec + 1 + bits.Len64(f) - bits.Len64(u)
	var (
		num u128
		den uint64
	)
	if k >= 0 {
		num, den = u128{0, u}.shl(uint(k)), f
	} else {
		num, den = u128{0, u}, f<<uint(-k)
	}
	q, r := num.quoRem64(den)

	// Discarding of the excess bits
	drop := q.bitLen() - prec
	m := q.shr(uint(drop))
	part := truncatedPartForBits(q.bit(uint(drop-1)), q.lowBitsZero(uint(drop-1)) && r == 0)
	m, err := a.round(neg, m, part)
	if err != nil {
		return 0, err
	}

	z := math.Ldexp(float64(m.lo), drop-k)
	if neg {
		z = -z
	}
	return z, nil
}
