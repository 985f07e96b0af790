package decimal

import (
	"errors"
	"fmt"
	"math/big"
	"math/bits"
)

const (
	powBigBits   = 4096 // maximum size of an exact power in bits
	powBigDigits = 1200 // maximum exponent of 10 in an exact power
	powFloatPrec = 256  // precision of the approximate power in bits
)

// errPowRange is returned by powFast if 128 bits are not enough.
var errPowRange = errors.New("power out of 128-bit range")

// Pow returns (possibly rounded) x raised to the power n.
// The result is 1 if n is 0, even if x is 0.
//
// The power is calculated by repeated squaring of the exact integer
// coefficient of x and rounded once, so the result is the correctly rounded
// value of x^n.
// Only for very large exponents, where an exact calculation is impractical,
// a 256-bit approximation is rounded instead.
// With unchecked overflow, a power that is too large to be calculated exactly
// wraps around at every intermediate multiplication.
//
// Pow returns [ErrDivisionByZero] if x is 0 and n is negative.
func (a *Arithmetic) Pow(x int64, n int) (int64, error) {
	z, err := a.pow(x, n)
	if err != nil {
		return 0, fmt.Errorf("Pow(%v, %v) failed: %w", a.Format(x), n, err)
	}
	return z, nil
}

func (a *Arithmetic) pow(x int64, n int) (int64, error) {
	// Special cases
	switch {
	case n == 0:
		return a.One(), nil
	case n == 1:
		return x, nil
	case x == 0 && n < 0:
		return 0, ErrDivisionByZero
	case x == 0:
		return 0, nil
	}

	inv := n < 0
	m := uint64(n)
	if inv {
		m = -m
	}
	neg := x < 0 && m&1 != 0

	// Reduction: |x| = c / 10^scale without trailing zeros in c
	c, scale := mag(x), a.metrics.scale
	for scale > 0 {
		q, r := quoRemPow10(c, 1)
		if r != 0 {
			break
		}
		c, scale = q, scale-1
	}

	// Special case: power of ten
	if c == 1 {
		return a.powOfPow10(neg, scale, m, inv)
	}

	// General case
	z, err := a.powFast(neg, c, scale, m, inv)
	if !errors.Is(err, errPowRange) {
		return z, err
	}
	if m <= powBigBits && m*uint64(bits.Len64(c)) <= powBigBits && m*uint64(scale) <= powBigDigits {
		return a.powSlow(neg, c, scale, m, inv)
	}
	return a.powFloat(x, neg, c, scale, m, inv)
}

// powOfPow10 calculates ±(10^-scale)^m or its inverse.
func (a *Arithmetic) powOfPow10(neg bool, scale int, m uint64, inv bool) (int64, error) {
	// e is the exponent of 10 in the unscaled result
	var e int
	switch {
	case scale == 0:
		e = 0
	case m > 1<<20:
		e = -1 << 30
	default:
		e = -scale * int(m)
	}
	if inv {
		e = -e
	}
	e += a.metrics.scale
	var one int64 = 1
	if neg {
		one = -1
	}
	return a.scaleByPow10(one, clampShift(e))
}

// powFast calculates the power exactly using 128-bit integers.
func (a *Arithmetic) powFast(neg bool, c uint64, scale int, m uint64, inv bool) (int64, error) {
	if m >= 128 {
		return 0, errPowRange // c >= 2
	}
	p, ok := u128{0, c}.pow(m)
	if !ok {
		return 0, errPowRange
	}
	if inv {
		// 10^(scale*m + s) / c^m
		e := a.metrics.scale + scale*int(m)
		if p.hi != 0 || e > 2*(len(pow10)-1) {
			return 0, errPowRange
		}
		num := mul64(pow10[e/2], pow10[e-e/2])
		return a.quo(neg, num, p.lo)
	}
	e := a.metrics.scale - scale*int(m)
	if e >= 0 {
		if e >= len(pow10) {
			return 0, errPowRange
		}
		z, ok := p.mul64(pow10[e])
		if !ok {
			return 0, errPowRange
		}
		return a.narrow(neg, z)
	}
	q, part := p.quoPow10(-e)
	q, err := a.round(neg, q, part)
	if err != nil {
		return 0, err
	}
	return a.narrow(neg, q)
}

// powSlow calculates the power exactly using big integers.
func (a *Arithmetic) powSlow(neg bool, c uint64, scale int, m uint64, inv bool) (int64, error) {
	p := getBint()
	defer putBint(p)
	num := getBint()
	defer putBint(num)
	den := getBint()
	defer putBint(den)

	p.setUint64(c)
	p.pow(p, m)
	e := a.metrics.scale - scale*int(m)
	switch {
	case inv:
		num.pow10(a.metrics.scale + scale*int(m))
		den.setBint(p)
	case e >= 0:
		num.lsh(p, e)
		den.setUint64(1)
	default:
		num.setBint(p)
		den.pow10(-e)
	}

	q := getBint()
	defer putBint(q)
	part := q.quoRound(num, den)
	if err := a.roundBint(neg, q, part); err != nil {
		return 0, err
	}
	if z, ok := q.int64(); ok {
		return z, nil
	}
	return a.overflow(q.wrapInt64())
}

// roundBint rounds the truncated magnitude q of a result and applies
// the sign neg to it.
func (a *Arithmetic) roundBint(neg bool, q *bint, part TruncatedPart) error {
	sign := 1
	if neg {
		sign = -1
	}
	inc, err := a.policy.rounding.RoundingIncrement(sign, q.isOdd(), part)
	if err != nil {
		return err
	}
	if inc != 0 {
		q.inc(q)
	}
	if neg {
		q.neg(q)
	}
	return nil
}

// powFloat approximates the power with big floats.
// Exact and half-way results never reach this path, so the approximation
// only has to be accurate enough to decide the rounding direction.
func (a *Arithmetic) powFloat(x int64, neg bool, c uint64, scale int, m uint64, inv bool) (int64, error) {
	v := new(big.Float).SetPrec(powFloatPrec).SetUint64(c)
	if scale > 0 {
		f := new(big.Float).SetPrec(powFloatPrec).SetUint64(pow10[scale])
		v.Quo(v, f)
	}
	if inv {
		one := new(big.Float).SetPrec(powFloatPrec).SetInt64(1)
		v.Quo(one, v)
	}

	// Exponentiation by squaring with early exits.
	// Either all factors are at least 1 or all are at most 1, so the power
	// is out of range as soon as one of the remaining factors is.
	n := m
	z := new(big.Float).SetPrec(powFloatPrec).SetInt64(1)
	tiny := false
	for {
		if n&1 != 0 {
			z.Mul(z, v)
		}
		n >>= 1
		if n == 0 {
			break
		}
		v.Mul(v, v)
		if exp := v.MantExp(nil); exp > 64 {
			return a.powOverflow(x, m, inv)
		} else if exp < -128 {
			tiny = true
			break
		}
	}
	if tiny || z.MantExp(nil) < -128 {
		// 0 < |result| < 2^-129 * 10^18 < 1/2
		q, err := a.round(neg, u128{}, LessThanHalfButNotZero)
		if err != nil {
			return 0, err
		}
		return a.narrow(neg, q)
	}

	// Rounding
	f := new(big.Float).SetPrec(powFloatPrec).SetUint64(a.metrics.factor)
	z.Mul(z, f)
	qi, _ := z.Int(nil)
	if qi.BitLen() > 64 {
		return a.powOverflow(x, m, inv)
	}
	frac := new(big.Float).SetPrec(powFloatPrec).SetInt(qi)
	frac.Sub(z, frac)
	part := LessThanHalfButNotZero
	switch frac.Cmp(big.NewFloat(0.5)) {
	case 0:
		part = EqualToHalf
	case 1:
		part = GreaterThanHalf
	}
	q := (*bint)(qi)
	if err := a.roundBint(neg, q, part); err != nil {
		return 0, err
	}
	if z, ok := q.int64(); ok {
		return z, nil
	}
	return a.powOverflow(x, m, inv)
}

// powOverflow handles a power that is out of range and too large to be
// calculated exactly.
// With unchecked overflow the power is calculated by repeated squaring,
// each multiplication wrapping around.
func (a *Arithmetic) powOverflow(x int64, m uint64, inv bool) (int64, error) {
	if a.policy.overflow == Checked {
		return 0, ErrOverflow
	}
	var err error
	if inv {
		x, err = a.inv(x)
		if err != nil {
			return 0, err
		}
	}
	z := a.One()
	for {
		if m&1 != 0 {
			z, err = a.mul(z, x)
			if err != nil {
				return 0, err
			}
		}
		m >>= 1
		if m == 0 {
			return z, nil
		}
		x, err = a.mul(x, x)
		if err != nil {
			return 0, err
		}
	}
}
