package decimal

import "fmt"

// Sqrt returns (possibly rounded) square root of x.
// The integer square root of x * 10^scale is calculated exactly on 128 bits,
// so the result is correctly rounded in every rounding mode.
// The result never overflows.
//
// Sqrt returns [ErrDomain] if x is negative.
func (a *Arithmetic) Sqrt(x int64) (int64, error) {
	z, err := a.sqrt(x)
	if err != nil {
		return 0, fmt.Errorf("Sqrt(%v) failed: %w", a.Format(x), err)
	}
	return z, nil
}

func (a *Arithmetic) sqrt(x int64) (int64, error) {
	switch {
	case x < 0:
		return 0, ErrDomain
	case x == 0:
		return 0, nil
	}
	root, rem := a.metrics.mulFactor(uint64(x)).sqrtRem()

	// The radicand lies in [root², (root+1)²), so the discarded fraction is
	// greater than one half if and only if rem > root.
	// An exact half is impossible, since (root + 1/2)² is not an integer.
	part := LessThanHalfButNotZero
	switch {
	case rem.isZero():
		part = Zero
	case rem.cmp(root) > 0:
		part = GreaterThanHalf
	}
	root, err := a.round(false, root, part)
	if err != nil {
		return 0, err
	}
	return a.narrow(false, root)
}
