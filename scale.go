package decimal

import (
	"fmt"
	"math"
)

// MaxScale is the maximum number of digits after the decimal point.
const MaxScale = 18

// ScaleMetrics holds the constants of one scale: the number of fraction digits,
// the scale factor 10^scale and the range of integer values that can be
// represented at that scale.
// There is exactly one ScaleMetrics per scale; use [Scale] to obtain it.
type ScaleMetrics struct {
	scale  int
	factor uint64 // 10^scale
	maxInt int64  // math.MaxInt64 / factor
	minInt int64  // math.MinInt64 / factor
	arith  [len(Policies)]Arithmetic
}

// pow10 is a cache of powers of 10, where pow10[x] = 10^x.
var pow10 = [...]uint64{
	1,                          // 10^0
	10,                         // 10^1
	100,                        // 10^2
	1_000,                      // 10^3
	10_000,                     // 10^4
	100_000,                    // 10^5
	1_000_000,                  // 10^6
	10_000_000,                 // 10^7
	100_000_000,                // 10^8
	1_000_000_000,              // 10^9
	10_000_000_000,             // 10^10
	100_000_000_000,            // 10^11
	1_000_000_000_000,          // 10^12
	10_000_000_000_000,         // 10^13
	100_000_000_000_000,        // 10^14
	1_000_000_000_000_000,      // 10^15
	10_000_000_000_000_000,     // 10^16
	100_000_000_000_000_000,    // 10^17
	1_000_000_000_000_000_000,  // 10^18
	10_000_000_000_000_000_000, // 10^19
}

// scales is the table of all scale metrics, where scales[x] has scale x.
// It is filled once by init and never modified afterwards.
var scales [MaxScale + 1]ScaleMetrics

func init() {
	for s := range scales {
		m := &scales[s]
		m.scale = s
		m.factor = pow10[s]
		m.maxInt = math.MaxInt64 / int64(m.factor)
		m.minInt = math.MinInt64 / int64(m.factor)
		for i, p := range Policies {
			m.arith[i] = Arithmetic{metrics: m, policy: p}
		}
	}
}

// Scale returns the metrics of the given scale.
// Scale returns [ErrInvalidScale] if scale is less than 0 or greater
// than [MaxScale].
func Scale(scale int) (*ScaleMetrics, error) {
	if scale < 0 || MaxScale < scale {
		return nil, fmt.Errorf("scale %v: %w", scale, ErrInvalidScale)
	}
	return &scales[scale], nil
}

// Scale returns the number of digits after the decimal point.
func (m *ScaleMetrics) Scale() int {
	return m.scale
}

// ScaleFactor returns 10^scale, which is also the unscaled value of one.
func (m *ScaleMetrics) ScaleFactor() int64 {
	return int64(m.factor)
}

// MaxIntegerValue returns the largest integer n such that n * 10^scale
// does not overflow int64.
func (m *ScaleMetrics) MaxIntegerValue() int64 {
	return m.maxInt
}

// MinIntegerValue returns the smallest integer n such that n * 10^scale
// does not overflow int64.
func (m *ScaleMetrics) MinIntegerValue() int64 {
	return m.minInt
}

// IsValidIntegerValue returns true if n can be converted to an unscaled
// value of this scale without overflow.
func (m *ScaleMetrics) IsValidIntegerValue(n int64) bool {
	return m.minInt <= n && n <= m.maxInt
}

// Arithmetic returns the arithmetic of this scale with the given policy.
func (m *ScaleMetrics) Arithmetic(p TruncationPolicy) *Arithmetic {
	return &m.arith[p.index()]
}

// DefaultArithmetic returns the arithmetic of this scale with [DefaultPolicy].
func (m *ScaleMetrics) DefaultArithmetic() *Arithmetic {
	return m.Arithmetic(DefaultPolicy)
}

// CheckedArithmetic returns the arithmetic of this scale with [CheckedPolicy].
func (m *ScaleMetrics) CheckedArithmetic() *Arithmetic {
	return m.Arithmetic(CheckedPolicy)
}

// String implements the [fmt.Stringer] interface.
func (m *ScaleMetrics) String() string {
	return fmt.Sprintf("Scale%d", m.scale)
}

// mulFactor calculates x * 10^scale.
func (m *ScaleMetrics) mulFactor(x uint64) u128 {
	return mul64(x, m.factor)
}

// quoRemFactor calculates q = ⌊x / 10^scale⌋, r = x - q * 10^scale.
func (m *ScaleMetrics) quoRemFactor(x u128) (q u128, r uint64) {
	if x.hi == 0 {
		q.lo, r = quoRemPow10(x.lo, m.scale)
		return q, r
	}
	return x.quoRem64(m.factor)
}

// quoRemPow10 calculates q = ⌊x / 10^n⌋, r = x - q * 10^n for 0 <= n <= 19.
// Every divisor is a constant, so the compiler replaces the division with
// a multiplication by the reciprocal.
func quoRemPow10(x uint64, n int) (q, r uint64) {
	switch n {
	case 0:
		return x, 0
	case 1:
		q = x / 10
	case 2:
		q = x / 100
	case 3:
		q = x / 1_000
	case 4:
		q = x / 10_000
	case 5:
		q = x / 100_000
	case 6:
		q = x / 1_000_000
	case 7:
		q = x / 10_000_000
	case 8:
		q = x / 100_000_000
	case 9:
		q = x / 1_000_000_000
	case 10:
		q = x / 10_000_000_000
	case 11:
		q = x / 100_000_000_000
	case 12:
		q = x / 1_000_000_000_000
	case 13:
		q = x / 10_000_000_000_000
	case 14:
		q = x / 100_000_000_000_000
	case 15:
		q = x / 1_000_000_000_000_000
	case 16:
		q = x / 10_000_000_000_000_000
	case 17:
		q = x / 100_000_000_000_000_000
	case 18:
		q = x / 1_000_000_000_000_000_000
	case 19:
		q = x / 10_000_000_000_000_000_000
	default:
		panic(fmt.Sprintf("quoRemPow10(%v, %v) failed: power out of range", x, n))
	}
	return q, x - q*pow10[n]
}

// wrapPow10 returns 10^n modulo 2^64 for n >= 0.
func wrapPow10(n int) uint64 {
	if n < len(pow10) {
		return pow10[n]
	}
	if n >= 64 { // 10^n = 2^n * 5^n
		return 0
	}
	z := pow10[len(pow10)-1]
	for i := len(pow10) - 1; i < n; i++ {
		z *= 10
	}
	return z
}
