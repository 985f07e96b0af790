package decimal

import (
	"fmt"
	"math/bits"
)

// Parse converts a string to an unscaled value of the scale of a.
//
// The string must match [+|-]digits[.digits] and must not contain any
// whitespace.
// Fraction digits beyond the scale of a are rounded by the rounding mode of a.
//
// Parse returns [ErrInvalidNumberFormat] if the string is malformed.
// If the digits before rounding do not fit into the scale of a, the error
// also matches [ErrOverflow], regardless of the overflow mode.
// If only the rounded result does not fit, Parse either returns
// [ErrOverflow] or the result modulo 2^64, depending on the overflow mode of a.
func (a *Arithmetic) Parse(s string) (int64, error) {
	z, err := a.parse(s)
	if err != nil {
		return 0, fmt.Errorf("Parse(%q) failed: %w", s, err)
	}
	return z, nil
}

func (a *Arithmetic) parse(s string) (int64, error) {
	var (
		pos      int
		width    int
		neg      bool
		ip       uint64 // integer part
		fp       uint64 // retained fraction digits
		kept     int    // number of retained fraction digits
		first    int    // first discarded fraction digit
		discard  bool   // fraction digits were discarded
		restZero bool   // all discarded digits after the first one are 0
		hasint   bool
		hasfrac  bool
		ok       bool
	)

	width = len(s)
	restZero = true

	// Sign
	switch {
	case pos == width:
		// skip
	case s[pos] == '-':
		neg = true
		pos++
	case s[pos] == '+':
		pos++
	}

	// Integer
	for pos < width && s[pos] >= '0' && s[pos] <= '9' {
		hasint = true
		ip, ok = fsa(ip, s[pos]-'0')
		if !ok {
			return 0, errParseRange
		}
		pos++
	}
	if !hasint {
		return 0, fmt.Errorf("no integer digits: %w", ErrInvalidNumberFormat)
	}

	// Fraction
	if pos < width && s[pos] == '.' {
		pos++
		for pos < width && s[pos] >= '0' && s[pos] <= '9' {
			hasfrac = true
			d := s[pos] - '0'
			switch {
			case kept < a.metrics.scale:
				fp = fp*10 + uint64(d)
				kept++
			case !discard:
				first, discard = int(d), true
			case d != 0:
				restZero = false
			}
			pos++
		}
		if !hasfrac {
			return 0, fmt.Errorf("no fraction digits: %w", ErrInvalidNumberFormat)
		}
	}

	// Trailing characters
	if pos < width {
		return 0, fmt.Errorf("invalid character %q: %w", s[pos], ErrInvalidNumberFormat)
	}

	// Magnitude
	fp *= pow10[a.metrics.scale-kept]
	m, _ := a.metrics.mulFactor(ip).add(u128{0, fp})
	part := Zero
	if discard {
		part = TruncatedPartFor(first, restZero)
	}
	_, fits := toInt64(neg, m)
	m, err := a.round(neg, m, part)
	if err != nil {
		return 0, err
	}
	if !fits {
		return 0, errParseRange
	}
	return a.narrow(neg, m)
}

// errParseRange is returned if the digits of a well-formed number do not fit.
var errParseRange = fmt.Errorf("%w: %w", ErrInvalidNumberFormat, ErrOverflow)

// fsa (Fused Shift and Addition) calculates x * 10 + d and checks overflow.
func fsa(x uint64, d byte) (uint64, bool) {
	hi, lo := bits.Mul64(x, 10)
	lo, c := bits.Add64(lo, uint64(d), 0)
	return lo, hi == 0 && c == 0
}

// Format returns the plain decimal notation of x, with exactly as many
// digits after the decimal point as the scale of a.
// The decimal point is omitted if the scale is 0.
// Exponential notation is never used.
func (a *Arithmetic) Format(x int64) string {
	var buf [24]byte
	return string(a.AppendFormat(buf[:0], x))
}

// AppendFormat appends the plain decimal notation of x to dst and returns
// the extended buffer.
// Also see method [Arithmetic.Format].
func (a *Arithmetic) AppendFormat(dst []byte, x int64) []byte {
	var (
		buf   [24]byte
		pos   int
		coef  uint64
		scale int
	)

	pos = len(buf) - 1
	coef = mag(x)
	scale = a.metrics.scale

	// Coefficient
	for {
		buf[pos] = byte(coef%10) + '0'
		pos--
		coef /= 10
		if scale > 0 {
			scale--
			// Decimal point
			if scale == 0 {
				buf[pos] = '.'
				pos--
				// Leading 0
				if coef == 0 {
					buf[pos] = '0'
					pos--
				}
			}
		}
		if coef == 0 && scale == 0 {
			break
		}
	}

	// Sign
	if x < 0 {
		buf[pos] = '-'
		pos--
	}

	return append(dst, buf[pos+1:]...)
}
