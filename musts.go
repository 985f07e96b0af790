package decimal

import "fmt"

// MustScale is like [Scale] but panics if the scale is out of range.
// It simplifies safe initialization of global variables holding metrics.
func MustScale(scale int) *ScaleMetrics {
	m, err := Scale(scale)
	if err != nil {
		panic(fmt.Sprintf("MustScale(%v) failed: %v", scale, err))
	}
	return m
}

// MustNew is like [New] but panics if the scale is out of range.
// It simplifies safe initialization of global variables holding arithmetics.
func MustNew(scale int, p TruncationPolicy) *Arithmetic {
	a, err := New(scale, p)
	if err != nil {
		panic(fmt.Sprintf("MustNew(%v, %v) failed: %v", scale, p, err))
	}
	return a
}

// MustParse is like [Arithmetic.Parse] but panics if the string cannot
// be parsed.
// It simplifies safe initialization of global variables holding unscaled values.
func (a *Arithmetic) MustParse(s string) int64 {
	z, err := a.Parse(s)
	if err != nil {
		panic(fmt.Sprintf("MustParse(%q) failed: %v", s, err))
	}
	return z
}

// MustFromLong is like [Arithmetic.FromLong] but panics if computing error.
func (a *Arithmetic) MustFromLong(n int64) int64 {
	z, err := a.FromLong(n)
	if err != nil {
		panic(fmt.Sprintf("MustFromLong(%v) failed: %v", n, err))
	}
	return z
}

// MustAdd is like [Arithmetic.Add] but panics if computing error.
func (a *Arithmetic) MustAdd(x, y int64) int64 {
	z, err := a.Add(x, y)
	if err != nil {
		panic(fmt.Sprintf("MustAdd(%v, %v) failed: %v", a.Format(x), a.Format(y), err))
	}
	return z
}

// MustSubtract is like [Arithmetic.Subtract] but panics if computing error.
func (a *Arithmetic) MustSubtract(x, y int64) int64 {
	z, err := a.Subtract(x, y)
	if err != nil {
		panic(fmt.Sprintf("MustSubtract(%v, %v) failed: %v", a.Format(x), a.Format(y), err))
	}
	return z
}

// MustMultiply is like [Arithmetic.Multiply] but panics if computing error.
func (a *Arithmetic) MustMultiply(x, y int64) int64 {
	z, err := a.Multiply(x, y)
	if err != nil {
		panic(fmt.Sprintf("MustMultiply(%v, %v) failed: %v", a.Format(x), a.Format(y), err))
	}
	return z
}

// MustDivide is like [Arithmetic.Divide] but panics if computing error.
func (a *Arithmetic) MustDivide(x, y int64) int64 {
	z, err := a.Divide(x, y)
	if err != nil {
		panic(fmt.Sprintf("MustDivide(%v, %v) failed: %v", a.Format(x), a.Format(y), err))
	}
	return z
}
