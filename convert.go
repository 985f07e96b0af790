package decimal

import (
	"fmt"
	"math/big"

	shopspring "github.com/shopspring/decimal"
	"gopkg.in/inf.v0"
)

// FromLong returns the unscaled value of the integer n.
// See also method [ScaleMetrics.IsValidIntegerValue].
func (a *Arithmetic) FromLong(n int64) (int64, error) {
	z, err := a.narrow(n < 0, a.metrics.mulFactor(mag(n)))
	if err != nil {
		return 0, fmt.Errorf("FromLong(%v) failed: %w", n, err)
	}
	return z, nil
}

// ToLong returns the integer part of x.
// The fraction digits are discarded, which is rounding towards zero
// regardless of the rounding mode of a.
func (a *Arithmetic) ToLong(x int64) int64 {
	q, _ := quoRemPow10(mag(x), a.metrics.scale)
	if x < 0 {
		return -int64(q)
	}
	return int64(q)
}

// ToLongExact returns x rounded to an integer with the rounding mode of a.
// ToLongExact returns [ErrRoundingNecessary] if the rounding mode is
// [Unnecessary] and x has non-zero fraction digits.
func (a *Arithmetic) ToLongExact(x int64) (int64, error) {
	z, err := a.toLongExact(x)
	if err != nil {
		return 0, fmt.Errorf("ToLongExact(%v) failed: %w", a.Format(x), err)
	}
	return z, nil
}

func (a *Arithmetic) toLongExact(x int64) (int64, error) {
	q, r := quoRemPow10(mag(x), a.metrics.scale)
	p, err := a.round(x < 0, u128{0, q}, NewTruncatedPart(r, a.metrics.factor))
	if err != nil {
		return 0, err
	}
	return a.narrow(x < 0, p)
}

// FromUnscaled converts the unscaled value u of any scale, including
// negative scales and scales greater than [MaxScale], to the scale of a.
// The result is rounded if scale is greater than the scale of a.
func (a *Arithmetic) FromUnscaled(u int64, scale int) (int64, error) {
	z, err := a.scaleByPow10(u, clampShift(a.metrics.scale-clampShift(scale)))
	if err != nil {
		return 0, fmt.Errorf("FromUnscaled(%v, %v) failed: %w", u, scale, err)
	}
	return z, nil
}

// ToUnscaled converts x to an unscaled value of the given scale.
// The result is rounded if scale is less than the scale of a.
func (a *Arithmetic) ToUnscaled(x int64, scale int) (int64, error) {
	z, err := a.scaleByPow10(x, clampShift(clampShift(scale)-a.metrics.scale))
	if err != nil {
		return 0, fmt.Errorf("ToUnscaled(%v, %v) failed: %w", a.Format(x), scale, err)
	}
	return z, nil
}

// FromBigInt returns the unscaled value of the integer b.
// FromBigInt returns [ErrDomain] if b is nil.
// If the result does not fit, FromBigInt either returns [ErrOverflow] or
// the result modulo 2^64, depending on the overflow mode of a.
func (a *Arithmetic) FromBigInt(b *big.Int) (int64, error) {
	z, err := a.fromBigDecimal(b, 0)
	if err != nil {
		return 0, fmt.Errorf("FromBigInt(%v) failed: %w", b, err)
	}
	return z, nil
}

// ToBigInt returns x rounded to an integer with the rounding mode of a.
func (a *Arithmetic) ToBigInt(x int64) (*big.Int, error) {
	z, err := a.toLongExact(x)
	if err != nil {
		return nil, fmt.Errorf("ToBigInt(%v) failed: %w", a.Format(x), err)
	}
	return big.NewInt(z), nil
}

// FromBigDecimal converts the arbitrary-precision decimal u / 10^scale to
// the scale of a.
// The result is rounded if scale is greater than the scale of a.
// FromBigDecimal returns [ErrDomain] if u is nil.
// If the result does not fit, FromBigDecimal either returns [ErrOverflow] or
// the result modulo 2^64, depending on the overflow mode of a.
func (a *Arithmetic) FromBigDecimal(u *big.Int, scale int) (int64, error) {
	z, err := a.fromBigDecimal(u, scale)
	if err != nil {
		return 0, fmt.Errorf("FromBigDecimal(%v, %v) failed: %w", u, scale, err)
	}
	return z, nil
}

func (a *Arithmetic) fromBigDecimal(u *big.Int, scale int) (int64, error) {
	if u == nil {
		return 0, errNilNumber
	}
	x := (*bint)(u)
	if x.sign() == 0 {
		return 0, nil
	}
	neg := x.sign() < 0

	q := getBint()
	defer putBint(q)
	part := Zero
	switch d := a.metrics.scale - clampShift(scale); {
	case d == 0:
		q.setBint(x)
	case d >= 64:
		// 10^d is a multiple of 2^64
		return a.overflow(0)
	case d > 0:
		q.lsh(x, d)
	case x.bitLen()+1 < -3*d:
		// 2|u| < 2^(3k) < 10^k
		q.setUint64(0)
		part = LessThanHalfButNotZero
	default:
		y := getBint()
		defer putBint(y)
		y.pow10(-d)
		part = q.quoRound(x, y)
	}

	q.abs(q)
	if err := a.roundBint(neg, q, part); err != nil {
		return 0, err
	}
	if z, ok := q.int64(); ok {
		return z, nil
	}
	return a.overflow(q.wrapInt64())
}

// errNilNumber is returned if a big number argument is nil.
var errNilNumber = fmt.Errorf("nil number: %w", ErrDomain)

// ToBigDecimal returns x as an arbitrary-precision decimal u / 10^scale,
// where scale is the scale of a.
func (a *Arithmetic) ToBigDecimal(x int64) (u *big.Int, scale int) {
	return big.NewInt(x), a.metrics.scale
}

// FromInfDec converts d to the scale of a.
// FromInfDec returns [ErrDomain] if d is nil.
// Also see method [Arithmetic.FromBigDecimal].
func (a *Arithmetic) FromInfDec(d *inf.Dec) (int64, error) {
	if d == nil {
		return 0, fmt.Errorf("FromInfDec(%v) failed: %w", d, errNilNumber)
	}
	z, err := a.fromBigDecimal(d.UnscaledBig(), int(d.Scale()))
	if err != nil {
		return 0, fmt.Errorf("FromInfDec(%v) failed: %w", d, err)
	}
	return z, nil
}

// ToInfDec returns x as an [inf.Dec] with the scale of a.
func (a *Arithmetic) ToInfDec(x int64) *inf.Dec {
	return inf.NewDec(x, inf.Scale(a.metrics.scale))
}

// FromShopspring converts d to the scale of a.
// Also see method [Arithmetic.FromBigDecimal].
func (a *Arithmetic) FromShopspring(d shopspring.Decimal) (int64, error) {
	z, err := a.fromBigDecimal(d.Coefficient(), -int(d.Exponent()))
	if err != nil {
		return 0, fmt.Errorf("FromShopspring(%v) failed: %w", d, err)
	}
	return z, nil
}

// ToShopspring returns x as a [shopspring.Decimal] with the exponent -scale,
// where scale is the scale of a.
func (a *Arithmetic) ToShopspring(x int64) shopspring.Decimal {
	return shopspring.New(x, int32(-a.metrics.scale))
}
