package decimal

import (
	"errors"
	"fmt"
	"math"
)

// Arithmetic performs decimal arithmetic on unscaled values of one scale
// with one truncation policy.
// An unscaled value u represents the decimal number u / 10^scale.
//
// Arithmetic is immutable and holds no per-call state, so it is safe for
// concurrent use by multiple goroutines.
// There is exactly one Arithmetic per combination of scale and policy;
// use [New] or [ScaleMetrics.Arithmetic] to obtain it.
type Arithmetic struct {
	metrics *ScaleMetrics
	policy  TruncationPolicy
}

var (
	ErrOverflow            = errors.New("overflow")
	ErrDivisionByZero      = errors.New("division by zero")
	ErrDomain              = errors.New("argument out of domain")
	ErrRoundingNecessary   = errors.New("rounding necessary")
	ErrInvalidScale        = errors.New("scale out of range")
	ErrInvalidNumberFormat = errors.New("invalid number format")
	ErrNumericOverflow     = errors.New("numeric overflow")
	ErrNotFinite           = errors.New("not a finite number")
)

// New returns the arithmetic for the given scale and policy.
// New returns [ErrInvalidScale] if scale is less than 0 or greater
// than [MaxScale].
func New(scale int, p TruncationPolicy) (*Arithmetic, error) {
	m, err := Scale(scale)
	if err != nil {
		return nil, err
	}
	return m.Arithmetic(p), nil
}

// ScaleMetrics returns the metrics of the scale of a.
func (a *Arithmetic) ScaleMetrics() *ScaleMetrics {
	return a.metrics
}

// Scale returns the number of digits after the decimal point.
func (a *Arithmetic) Scale() int {
	return a.metrics.scale
}

// Policy returns the truncation policy of a.
func (a *Arithmetic) Policy() TruncationPolicy {
	return a.policy
}

// RoundingMode returns the rounding mode of a.
func (a *Arithmetic) RoundingMode() RoundingMode {
	return a.policy.rounding
}

// OverflowMode returns the overflow mode of a.
func (a *Arithmetic) OverflowMode() OverflowMode {
	return a.policy.overflow
}

// WithScale returns the arithmetic with the same policy as a but a different scale.
func (a *Arithmetic) WithScale(scale int) (*Arithmetic, error) {
	return New(scale, a.policy)
}

// WithRounding returns the arithmetic with the same scale and overflow mode
// as a but a different rounding mode.
func (a *Arithmetic) WithRounding(r RoundingMode) *Arithmetic {
	return a.metrics.Arithmetic(NewPolicy(r, a.policy.overflow))
}

// WithOverflow returns the arithmetic with the same scale and rounding mode
// as a but a different overflow mode.
func (a *Arithmetic) WithOverflow(o OverflowMode) *Arithmetic {
	return a.metrics.Arithmetic(NewPolicy(a.policy.rounding, o))
}

// String implements the [fmt.Stringer] interface.
func (a *Arithmetic) String() string {
	return fmt.Sprintf("Arithmetic(%v, %v)", a.metrics, a.policy)
}

// One returns the unscaled value of 1.
func (a *Arithmetic) One() int64 {
	return int64(a.metrics.factor)
}

// ULP returns the unscaled value of the unit in the last place, which is
// always 1.
func (a *Arithmetic) ULP() int64 {
	return 1
}

// Signum returns:
//
//	-1 if x < 0
//	 0 if x == 0
//	+1 if x > 0
func (a *Arithmetic) Signum(x int64) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}

// Compare compares x and y numerically and returns:
//
//	-1 if x < y
//	 0 if x == y
//	+1 if x > y
func (a *Arithmetic) Compare(x, y int64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

// IsZero returns true if x == 0.
func (a *Arithmetic) IsZero(x int64) bool {
	return x == 0
}

// IsOne returns true if x == 1.
func (a *Arithmetic) IsOne(x int64) bool {
	return x == a.One()
}

// round applies the rounding mode to the truncated magnitude q of a result
// with sign neg.
func (a *Arithmetic) round(neg bool, q u128, part TruncatedPart) (u128, error) {
	if part == Zero {
		return q, nil
	}
	sign := 1
	if neg {
		sign = -1
	}
	inc, err := a.policy.rounding.RoundingIncrement(sign, q.isOdd(), part)
	if err != nil {
		return u128{}, err
	}
	if inc != 0 {
		q = q.inc()
	}
	return q, nil
}

// narrow converts sign and magnitude of an exact result to int64.
// If the result does not fit, narrow either fails or wraps around
// depending on the overflow mode.
func (a *Arithmetic) narrow(neg bool, x u128) (int64, error) {
	if z, ok := toInt64(neg, x); ok {
		return z, nil
	}
	if a.policy.overflow == Checked {
		return 0, ErrOverflow
	}
	return wrapInt64(neg, x), nil
}

// overflow is like narrow for results that are known not to fit.
// The result is 0 modulo 2^64 if the magnitude is unknown.
func (a *Arithmetic) overflow(wrapped int64) (int64, error) {
	if a.policy.overflow == Checked {
		return 0, ErrOverflow
	}
	return wrapped, nil
}

// quo calculates the rounded quotient of a magnitude x and a divisor d > 0.
func (a *Arithmetic) quo(neg bool, x u128, d uint64) (int64, error) {
	q, r := x.quoRem64(d)
	q, err := a.round(neg, q, NewTruncatedPart(r, d))
	if err != nil {
		return 0, err
	}
	return a.narrow(neg, q)
}

// quoFactor calculates the rounded quotient of a magnitude x and 10^scale.
func (a *Arithmetic) quoFactor(neg bool, x u128) (int64, error) {
	q, r := a.metrics.quoRemFactor(x)
	q, err := a.round(neg, q, NewTruncatedPart(r, a.metrics.factor))
	if err != nil {
		return 0, err
	}
	return a.narrow(neg, q)
}

// Add returns x + y.
// Addition is always exact, only overflow is possible.
func (a *Arithmetic) Add(x, y int64) (int64, error) {
	z := x + y
	if (x^z)&(y^z) < 0 && a.policy.overflow == Checked {
		return 0, fmt.Errorf("Add(%v, %v) failed: %w", a.Format(x), a.Format(y), ErrOverflow)
	}
	return z, nil
}

// Subtract returns x - y.
func (a *Arithmetic) Subtract(x, y int64) (int64, error) {
	z := x - y
	if (x^y)&(x^z) < 0 && a.policy.overflow == Checked {
		return 0, fmt.Errorf("Subtract(%v, %v) failed: %w", a.Format(x), a.Format(y), ErrOverflow)
	}
	return z, nil
}

// Negate returns -x.
// Only math.MinInt64 overflows.
func (a *Arithmetic) Negate(x int64) (int64, error) {
	if x == math.MinInt64 && a.policy.overflow == Checked {
		return 0, fmt.Errorf("Negate(%v) failed: %w", a.Format(x), ErrOverflow)
	}
	return -x, nil
}

// Abs returns |x|.
// Only math.MinInt64 overflows.
func (a *Arithmetic) Abs(x int64) (int64, error) {
	if x >= 0 {
		return x, nil
	}
	z, err := a.Negate(x)
	if err != nil {
		return 0, fmt.Errorf("Abs(%v) failed: %w", a.Format(x), ErrOverflow)
	}
	return z, nil
}

// AddLong returns x + n, where n is an integer.
func (a *Arithmetic) AddLong(x, n int64) (int64, error) {
	z, err := a.addLong(x, n < 0, mag(n))
	if err != nil {
		return 0, fmt.Errorf("AddLong(%v, %v) failed: %w", a.Format(x), n, err)
	}
	return z, nil
}

// SubtractLong returns x - n, where n is an integer.
func (a *Arithmetic) SubtractLong(x, n int64) (int64, error) {
	z, err := a.addLong(x, n > 0, mag(n))
	if err != nil {
		return 0, fmt.Errorf("SubtractLong(%v, %v) failed: %w", a.Format(x), n, err)
	}
	return z, nil
}

func (a *Arithmetic) addLong(x int64, nneg bool, n uint64) (int64, error) {
	neg, z, _ := addSigned(x < 0, u128{0, mag(x)}, nneg, a.metrics.mulFactor(n))
	return a.narrow(neg, z)
}

// AddUnscaled returns x + u / 10^scale, where scale is any scale, including
// negative ones and scales greater than [MaxScale].
// The sum is rounded if scale is greater than the scale of a.
func (a *Arithmetic) AddUnscaled(x, u int64, scale int) (int64, error) {
	z, err := a.addUnscaled(x, u < 0, mag(u), scale)
	if err != nil {
		return 0, fmt.Errorf("AddUnscaled(%v, %v, %v) failed: %w", a.Format(x), u, scale, err)
	}
	return z, nil
}

// SubtractUnscaled returns x - u / 10^scale.
// Also see method [Arithmetic.AddUnscaled].
func (a *Arithmetic) SubtractUnscaled(x, u int64, scale int) (int64, error) {
	z, err := a.addUnscaled(x, u > 0, mag(u), scale)
	if err != nil {
		return 0, fmt.Errorf("SubtractUnscaled(%v, %v, %v) failed: %w", a.Format(x), u, scale, err)
	}
	return z, nil
}

func (a *Arithmetic) addUnscaled(x int64, uneg bool, u uint64, scale int) (int64, error) {
	if u == 0 {
		return x, nil
	}
	shift := clampShift(scale) - a.metrics.scale

	// Alignment of u with the scale of a, no rounding
	if shift <= 0 {
		if -shift >= len(pow10) {
			// |u * 10^-shift| >= 10^20
			w := int64(u * wrapPow10(-shift))
			if uneg {
				w = -w
			}
			return a.overflow(x + w)
		}
		m, _ := u128{0, u}.mul64(pow10[-shift])
		neg, z, _ := addSigned(x < 0, u128{0, mag(x)}, uneg, m)
		return a.narrow(neg, z)
	}

	// Alignment of x with the scale of u, rounding of the sum
	if shift >= len(pow10) {
		// 0 < |u / 10^shift| < 0.1, any other such value rounds the same way
		u, shift = 1, len(pow10)-1
	}
	m := mul64(mag(x), pow10[shift])
	neg, z, _ := addSigned(x < 0, m, uneg, u128{0, u})
	return a.quo(neg, z, pow10[shift])
}

// clampShift limits a scale or an exponent to a range where all larger
// values behave the same way, so that differences of shifts cannot overflow.
func clampShift(n int) int {
	const limit = 1 << 20
	switch {
	case n > limit:
		return limit
	case n < -limit:
		return -limit
	}
	return n
}

// Multiply returns (possibly rounded) x * y.
// The exact 128-bit product is divided by 10^scale and rounded once.
func (a *Arithmetic) Multiply(x, y int64) (int64, error) {
	z, err := a.mul(x, y)
	if err != nil {
		return 0, fmt.Errorf("Multiply(%v, %v) failed: %w", a.Format(x), a.Format(y), err)
	}
	return z, nil
}

func (a *Arithmetic) mul(x, y int64) (int64, error) {
	neg := (x < 0) != (y < 0)
	p := mul64(mag(x), mag(y))
	return a.quoFactor(neg, p)
}

// Square returns (possibly rounded) x * x.
func (a *Arithmetic) Square(x int64) (int64, error) {
	m := mag(x)
	var p u128
	if m <= math.MaxUint32 {
		p.lo = m * m
	} else {
		p = mul64(m, m)
	}
	z, err := a.quoFactor(false, p)
	if err != nil {
		return 0, fmt.Errorf("Square(%v) failed: %w", a.Format(x), err)
	}
	return z, nil
}

// MultiplyByLong returns x * n, where n is an integer.
// The product is exact, only overflow is possible.
func (a *Arithmetic) MultiplyByLong(x, n int64) (int64, error) {
	z, err := a.narrow((x < 0) != (n < 0), mul64(mag(x), mag(n)))
	if err != nil {
		return 0, fmt.Errorf("MultiplyByLong(%v, %v) failed: %w", a.Format(x), n, err)
	}
	return z, nil
}

// Divide returns (possibly rounded) x / y.
// The exact dividend x * 10^scale is divided by y and rounded once.
//
// Divide returns [ErrDivisionByZero] if y is 0, regardless of the policy.
func (a *Arithmetic) Divide(x, y int64) (int64, error) {
	z, err := a.div(x, y)
	if err != nil {
		return 0, fmt.Errorf("Divide(%v, %v) failed: %w", a.Format(x), a.Format(y), err)
	}
	return z, nil
}

func (a *Arithmetic) div(x, y int64) (int64, error) {
	if y == 0 {
		return 0, ErrDivisionByZero
	}
	neg := (x < 0) != (y < 0)
	return a.quo(neg, a.metrics.mulFactor(mag(x)), mag(y))
}

// DivideByLong returns (possibly rounded) x / n, where n is an integer.
//
// DivideByLong returns [ErrDivisionByZero] if n is 0.
func (a *Arithmetic) DivideByLong(x, n int64) (int64, error) {
	if n == 0 {
		return 0, fmt.Errorf("DivideByLong(%v, %v) failed: %w", a.Format(x), n, ErrDivisionByZero)
	}
	z, err := a.quo((x < 0) != (n < 0), u128{0, mag(x)}, mag(n))
	if err != nil {
		return 0, fmt.Errorf("DivideByLong(%v, %v) failed: %w", a.Format(x), n, err)
	}
	return z, nil
}

// Invert returns (possibly rounded) 1 / x.
//
// Invert returns [ErrDivisionByZero] if x is 0.
func (a *Arithmetic) Invert(x int64) (int64, error) {
	z, err := a.inv(x)
	if err != nil {
		return 0, fmt.Errorf("Invert(%v) failed: %w", a.Format(x), err)
	}
	return z, nil
}

func (a *Arithmetic) inv(x int64) (int64, error) {
	if x == 0 {
		return 0, ErrDivisionByZero
	}
	f := a.metrics.factor
	return a.quo(x < 0, mul64(f, f), mag(x))
}

// Avg returns (possibly rounded) (x + y) / 2.
// The sum is calculated with 65 bits, so it never overflows.
func (a *Arithmetic) Avg(x, y int64) (int64, error) {
	neg, s, _ := addSigned(x < 0, u128{0, mag(x)}, y < 0, u128{0, mag(y)})
	z, err := a.quo(neg, s, 2)
	if err != nil {
		return 0, fmt.Errorf("Avg(%v, %v) failed: %w", a.Format(x), a.Format(y), err)
	}
	return z, nil
}

// MultiplyByPowerOf10 returns (possibly rounded) x * 10^n.
// If n is negative, the result is x / 10^-n.
func (a *Arithmetic) MultiplyByPowerOf10(x int64, n int) (int64, error) {
	z, err := a.scaleByPow10(x, clampShift(n))
	if err != nil {
		return 0, fmt.Errorf("MultiplyByPowerOf10(%v, %v) failed: %w", a.Format(x), n, err)
	}
	return z, nil
}

// DivideByPowerOf10 returns (possibly rounded) x / 10^n.
// If n is negative, the result is x * 10^-n.
func (a *Arithmetic) DivideByPowerOf10(x int64, n int) (int64, error) {
	z, err := a.scaleByPow10(x, -clampShift(n))
	if err != nil {
		return 0, fmt.Errorf("DivideByPowerOf10(%v, %v) failed: %w", a.Format(x), n, err)
	}
	return z, nil
}

// scaleByPow10 calculates x * 10^n for any n.
func (a *Arithmetic) scaleByPow10(x int64, n int) (int64, error) {
	switch {
	case x == 0 || n == 0:
		return x, nil
	case n >= len(pow10):
		return a.overflow(x * int64(wrapPow10(n)))
	case n > 0:
		return a.narrow(x < 0, mul64(mag(x), pow10[n]))
	}
	q, part := u128{0, mag(x)}.quoPow10(-n)
	q, err := a.round(x < 0, q, part)
	if err != nil {
		return 0, err
	}
	return a.narrow(x < 0, q)
}

// ShiftLeft returns (possibly rounded) x * 2^n.
// If n is negative, the result is x / 2^-n.
func (a *Arithmetic) ShiftLeft(x int64, n int) (int64, error) {
	z, err := a.scaleByPow2(x, clampShift(n))
	if err != nil {
		return 0, fmt.Errorf("ShiftLeft(%v, %v) failed: %w", a.Format(x), n, err)
	}
	return z, nil
}

// ShiftRight returns (possibly rounded) x / 2^n.
// Unlike the >> operator, the result is rounded by the policy of a.
// If n is negative, the result is x * 2^-n.
func (a *Arithmetic) ShiftRight(x int64, n int) (int64, error) {
	z, err := a.scaleByPow2(x, -clampShift(n))
	if err != nil {
		return 0, fmt.Errorf("ShiftRight(%v, %v) failed: %w", a.Format(x), n, err)
	}
	return z, nil
}

// scaleByPow2 calculates x * 2^n for any n.
func (a *Arithmetic) scaleByPow2(x int64, n int) (int64, error) {
	switch {
	case x == 0 || n == 0:
		return x, nil
	case n >= 64:
		return a.overflow(0)
	case n > 0:
		return a.narrow(x < 0, u128{0, mag(x)}.shl(uint(n)))
	}
	q, part := u128{0, mag(x)}.rsh(uint(-n))
	q, err := a.round(x < 0, q, part)
	if err != nil {
		return 0, err
	}
	return a.narrow(x < 0, q)
}

// Round returns x rounded to the given number of digits after the decimal
// point, keeping the scale of a.
// A negative precision rounds digits of the integer part.
func (a *Arithmetic) Round(x int64, precision int) (int64, error) {
	z, err := a.roundTo(x, clampShift(precision))
	if err != nil {
		return 0, fmt.Errorf("Round(%v, %v) failed: %w", a.Format(x), precision, err)
	}
	return z, nil
}

func (a *Arithmetic) roundTo(x int64, precision int) (int64, error) {
	shift := a.metrics.scale - precision
	if shift <= 0 || x == 0 {
		return x, nil
	}
	q, part := u128{0, mag(x)}.quoPow10(shift)
	q, err := a.round(x < 0, q, part)
	if err != nil {
		return 0, err
	}
	switch {
	case q.isZero():
		return 0, nil
	case shift >= len(pow10):
		// q == 1 and 10^shift > 2^64
		w := int64(wrapPow10(shift))
		if x < 0 {
			w = -w
		}
		return a.overflow(w)
	}
	z, _ := q.mul64(pow10[shift])
	return a.narrow(x < 0, z)
}

// FractionalPart returns the fraction digits of x, with the sign of x.
func (a *Arithmetic) FractionalPart(x int64) int64 {
	_, r := quoRemPow10(mag(x), a.metrics.scale)
	if x < 0 {
		return -int64(r)
	}
	return int64(r)
}
