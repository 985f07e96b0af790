package decimal

import (
	"fmt"
	"strings"
)

// RoundingMode determines how a result is rounded when digits have to be
// discarded.
// The zero value is [HalfUp].
type RoundingMode uint8

const (
	HalfUp      RoundingMode = iota // to nearest; away from zero if equidistant
	HalfEven                        // to nearest; to the even neighbour if equidistant
	HalfDown                        // to nearest; towards zero if equidistant
	Up                              // away from zero
	Down                            // towards zero
	Ceiling                         // towards positive infinity
	Floor                           // towards negative infinity
	Unnecessary                     // fail if any non-zero digit is discarded
)

var roundingModeNames = [...]string{
	HalfUp:      "HALF_UP",
	HalfEven:    "HALF_EVEN",
	HalfDown:    "HALF_DOWN",
	Up:          "UP",
	Down:        "DOWN",
	Ceiling:     "CEILING",
	Floor:       "FLOOR",
	Unnecessary: "UNNECESSARY",
}

// RoundingModes lists every rounding mode.
var RoundingModes = [...]RoundingMode{HalfUp, HalfEven, HalfDown, Up, Down, Ceiling, Floor, Unnecessary}

// String implements the [fmt.Stringer] interface.
func (m RoundingMode) String() string {
	if int(m) < len(roundingModeNames) {
		return roundingModeNames[m]
	}
	return fmt.Sprintf("RoundingMode(%d)", uint8(m))
}

// ParseRoundingMode converts a name such as "HALF_EVEN" or "half_even"
// to a rounding mode.
func ParseRoundingMode(s string) (RoundingMode, error) {
	for i, name := range roundingModeNames {
		if strings.EqualFold(s, name) {
			return RoundingMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown rounding mode %q", s)
}

// RoundingIncrement decides whether the truncated result of an operation
// must be moved by one unit in the last place.
// The sign argument is the sign of the exact result (-1 or +1), oddQuotient
// reports whether the last retained digit is odd, and part classifies
// the discarded fraction.
//
// RoundingIncrement returns either 0 or sign, so a non-zero increment always
// moves the result away from zero.
// It returns [ErrRoundingNecessary] if the mode is [Unnecessary] and part
// is not [Zero].
func (m RoundingMode) RoundingIncrement(sign int, oddQuotient bool, part TruncatedPart) (int, error) {
	if part == Zero {
		return 0, nil
	}
	switch m {
	case Up:
		return sign, nil
	case Down:
		return 0, nil
	case Ceiling:
		if sign > 0 {
			return sign, nil
		}
		return 0, nil
	case Floor:
		if sign < 0 {
			return sign, nil
		}
		return 0, nil
	case HalfUp:
		if part >= EqualToHalf {
			return sign, nil
		}
		return 0, nil
	case HalfDown:
		if part == GreaterThanHalf {
			return sign, nil
		}
		return 0, nil
	case HalfEven:
		if part == GreaterThanHalf || (part == EqualToHalf && oddQuotient) {
			return sign, nil
		}
		return 0, nil
	case Unnecessary:
		return 0, ErrRoundingNecessary
	}
	panic(fmt.Sprintf("%v.RoundingIncrement(%v, %v, %v) failed: unknown rounding mode", m, sign, oddQuotient, part))
}

// OverflowMode determines what happens when a result does not fit into int64.
// The zero value is [Unchecked].
type OverflowMode uint8

const (
	Unchecked OverflowMode = iota // the result wraps around like native int64 arithmetic
	Checked                       // the operation fails with ErrOverflow
)

// String implements the [fmt.Stringer] interface.
func (m OverflowMode) String() string {
	switch m {
	case Unchecked:
		return "UNCHECKED"
	case Checked:
		return "CHECKED"
	}
	return fmt.Sprintf("OverflowMode(%d)", uint8(m))
}

// TruncatedPart classifies the discarded fraction of a result relative to
// one half of the unit in the last place.
type TruncatedPart uint8

const (
	Zero                   TruncatedPart = iota // nothing was discarded
	LessThanHalfButNotZero                      // 0 < discarded < 1/2
	EqualToHalf                                 // discarded == 1/2
	GreaterThanHalf                             // 1/2 < discarded < 1
)

// String implements the [fmt.Stringer] interface.
func (p TruncatedPart) String() string {
	switch p {
	case Zero:
		return "ZERO"
	case LessThanHalfButNotZero:
		return "LESS_THAN_HALF_BUT_NOT_ZERO"
	case EqualToHalf:
		return "EQUAL_TO_HALF"
	case GreaterThanHalf:
		return "GREATER_THAN_HALF"
	}
	return fmt.Sprintf("TruncatedPart(%d)", uint8(p))
}

// NewTruncatedPart classifies the remainder rem of a division by divisor.
// It requires rem < divisor.
func NewTruncatedPart(rem, divisor uint64) TruncatedPart {
	if rem == 0 {
		return Zero
	}
	// rem is compared with divisor - rem to avoid overflow of 2 * rem
	switch d := divisor - rem; {
	case rem < d:
		return LessThanHalfButNotZero
	case rem == d:
		return EqualToHalf
	}
	return GreaterThanHalf
}

// TruncatedPartFor classifies a discarded fraction given its first digit
// and whether all the following digits are zero.
func TruncatedPartFor(firstDiscardedDigit int, restZero bool) TruncatedPart {
	switch {
	case firstDiscardedDigit == 0 && restZero:
		return Zero
	case firstDiscardedDigit < 5:
		return LessThanHalfButNotZero
	case firstDiscardedDigit == 5 && restZero:
		return EqualToHalf
	}
	return GreaterThanHalf
}

// truncatedPartForBits is like [TruncatedPartFor] for binary fractions.
func truncatedPartForBits(firstDiscardedBit uint64, restZero bool) TruncatedPart {
	switch {
	case firstDiscardedBit == 0 && restZero:
		return Zero
	case firstDiscardedBit == 0:
		return LessThanHalfButNotZero
	case restZero:
		return EqualToHalf
	}
	return GreaterThanHalf
}

// sticky adjusts p for additional discarded digits of lower significance.
func (p TruncatedPart) sticky(restZero bool) TruncatedPart {
	if restZero {
		return p
	}
	switch p {
	case Zero:
		return LessThanHalfButNotZero
	case EqualToHalf:
		return GreaterThanHalf
	}
	return p
}

// TruncationPolicy is a combination of a rounding mode and an overflow mode.
// The zero value is [DefaultPolicy].
type TruncationPolicy struct {
	rounding RoundingMode
	overflow OverflowMode
}

// Policies lists every truncation policy.
// The position of a policy in this table is its index in the dispatch
// table of every [ScaleMetrics].
var Policies = [2 * len(RoundingModes)]TruncationPolicy{
	{HalfUp, Unchecked}, {HalfUp, Checked},
	{HalfEven, Unchecked}, {HalfEven, Checked},
	{HalfDown, Unchecked}, {HalfDown, Checked},
	{Up, Unchecked}, {Up, Checked},
	{Down, Unchecked}, {Down, Checked},
	{Ceiling, Unchecked}, {Ceiling, Checked},
	{Floor, Unchecked}, {Floor, Checked},
	{Unnecessary, Unchecked}, {Unnecessary, Checked},
}

var (
	DefaultPolicy = TruncationPolicy{HalfUp, Unchecked} // default policy, also the zero value
	CheckedPolicy = TruncationPolicy{HalfUp, Checked}   // default rounding with overflow checks
)

// NewPolicy returns the policy combining r and o.
// NewPolicy panics if r or o is not one of the declared constants.
func NewPolicy(r RoundingMode, o OverflowMode) TruncationPolicy {
	if int(r) >= len(RoundingModes) || o > Checked {
		panic(fmt.Sprintf("NewPolicy(%v, %v) failed: invalid mode", r, o))
	}
	return TruncationPolicy{r, o}
}

// RoundingMode returns the rounding mode of p.
func (p TruncationPolicy) RoundingMode() RoundingMode {
	return p.rounding
}

// OverflowMode returns the overflow mode of p.
func (p TruncationPolicy) OverflowMode() OverflowMode {
	return p.overflow
}

// String implements the [fmt.Stringer] interface.
func (p TruncationPolicy) String() string {
	return p.rounding.String() + "/" + p.overflow.String()
}

func (p TruncationPolicy) index() int {
	return 2*int(p.rounding) + int(p.overflow)
}
