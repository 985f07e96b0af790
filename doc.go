/*
Package decimal implements fixed-point decimal arithmetic on int64 values.
It is specifically designed for financial calculations that need exact
decimal results without heap allocations.

# Representation

A decimal number is represented by a single int64, called the unscaled value,
and a scale that is fixed by the caller:

  - Unscaled value: a signed integer representing the numeric value of the
    decimal without the decimal point.
  - Scale: a non-negative integer indicating the number of digits after the
    decimal point.
    For example, an unscaled value of 12345 with a scale of 2 represents
    the value 123.45.
    The range of allowed values for the scale is from 0 to 18.

The numerical value of a decimal is calculated as:

  - UnscaledValue / 10^Scale

The scale is not stored with the value.
All operands of an operation must have the scale of the [Arithmetic]
that performs it.

# Constraints

The range of a decimal is determined by its scale.
Here are the ranges for frequently used scales:

	| Example      | Scale | Minimum                                       | Maximum                                      |
	| ------------ | ----- | --------------------------------------------- | -------------------------------------------- |
	| Japanese Yen | 0     | -9,223,372,036,854,775,808                    | 9,223,372,036,854,775,807                    |
	| US Dollar    | 2     |    -92,233,720,368,547,758.08                 |    92,233,720,368,547,758.07                 |
	| Omani Rial   | 3     |     -9,223,372,036,854,775.808                |     9,223,372,036,854,775.807                |
	| Bitcoin      | 8     |            -92,233,720,368.54775808           |            92,233,720,368.54775807           |
	| Wei          | 18    |                         -9.223372036854775808 |                         9.223372036854775807 |

# Arithmetic

An [Arithmetic] combines one [ScaleMetrics] with one [TruncationPolicy].
There is exactly one Arithmetic per combination, created when the package is
initialized, so obtaining it with [New] or [ScaleMetrics.Arithmetic] is
a table lookup.
Arithmetics are immutable and safe for concurrent use.

Each operation computes the exact mathematical result using 128-bit
intermediates, discards the digits beyond the scale, and then:

 1. classifies the discarded digits as a [TruncatedPart];
 2. asks the [RoundingMode] whether the result must be incremented
    away from zero;
 3. asks the [OverflowMode] what to do with a result that does not fit
    into int64.

The result is therefore the one that would be obtained by computing the exact
result with infinite precision and then rounding it to the scale.
Only [Arithmetic.Pow] with very large exponents falls back to a 256-bit
binary approximation.

# Rounding

The following rounding modes are supported:

  - [HalfUp]: to nearest, away from zero if equidistant (the default).
  - [HalfEven]: to nearest, to the even neighbour if equidistant.
  - [HalfDown]: to nearest, towards zero if equidistant.
  - [Up]: away from zero.
  - [Down]: towards zero.
  - [Ceiling]: towards positive infinity.
  - [Floor]: towards negative infinity.
  - [Unnecessary]: fail with [ErrRoundingNecessary] if rounding is required.

# Overflow

With [Unchecked] overflow, which is the default, a result that does not fit
into int64 wraps around like native integer arithmetic: the returned value is
the exact rounded result modulo 2^64.
With [Checked] overflow, the operation returns [ErrOverflow] instead.

# Conversions

The package provides methods for converting unscaled values:

  - from/to string:
    [Arithmetic.Parse], [Arithmetic.Format], [Arithmetic.AppendFormat].
  - from/to float64 and float32:
    [Arithmetic.FromFloat64], [Arithmetic.ToFloat64],
    [Arithmetic.FromFloat32], [Arithmetic.ToFloat32].
  - from/to int64:
    [Arithmetic.FromLong], [Arithmetic.ToLong], [Arithmetic.ToLongExact].
  - from/to other scales:
    [Arithmetic.FromUnscaled], [Arithmetic.ToUnscaled].
  - from/to arbitrary-precision numbers:
    [Arithmetic.FromBigInt], [Arithmetic.ToBigInt],
    [Arithmetic.FromBigDecimal], [Arithmetic.ToBigDecimal],
    [Arithmetic.FromInfDec], [Arithmetic.ToInfDec],
    [Arithmetic.FromShopspring], [Arithmetic.ToShopspring].

Conversions from floats are exact before rounding: the binary value of
the float is rounded, not its shortest decimal representation.
Conversions to floats are correctly rounded in every rounding mode.

# Errors

All methods are panic-free, except for the Must variants.
Errors are returned in the following cases:

  - [ErrOverflow]: the result does not fit and the overflow mode is [Checked].
  - [ErrDivisionByZero]: division, inversion or negative power of 0,
    regardless of the overflow mode.
  - [ErrDomain]: square root of a negative number.
  - [ErrRoundingNecessary]: rounding is required and the rounding mode
    is [Unnecessary].
  - [ErrInvalidScale]: the scale is out of range.
  - [ErrInvalidNumberFormat]: malformed input of [Arithmetic.Parse].
  - [ErrNotFinite], [ErrNumericOverflow]: float input that is not finite
    or out of range.

All errors can be matched with [errors.Is].
*/
package decimal
