package decimal

import (
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	shopspring "github.com/shopspring/decimal"
	"gopkg.in/inf.v0"
)

func TestArithmetic_FromLong(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			scale int
			n     int64
			want  int64
		}{
			{0, math.MinInt64, math.MinInt64},
			{2, 5, 500},
			{2, -92233720368547758, -9223372036854775800},
			{18, 9, 9_000_000_000_000_000_000},
			{18, -9, -9_000_000_000_000_000_000},
		}
		for _, tt := range tests {
			a := MustNew(tt.scale, CheckedPolicy)
			got, err := a.FromLong(tt.n)
			if err != nil || got != tt.want {
				t.Errorf("%v.FromLong(%v) = %v, %v, want %v", a, tt.n, got, err, tt.want)
			}
			if back := a.ToLong(got); back != tt.n {
				t.Errorf("%v.ToLong(%v) = %v, want %v", a, got, back, tt.n)
			}
		}
	})

	t.Run("overflow", func(t *testing.T) {
		n := int64(92233720368547759)
		got, err := MustNew(2, DefaultPolicy).FromLong(n)
		if err != nil || got != n*100 {
			t.Errorf("FromLong(%v) = %v, %v, want %v", n, got, err, n*100)
		}
		if _, err := MustNew(2, CheckedPolicy).FromLong(n); !errors.Is(err, ErrOverflow) {
			t.Errorf("FromLong(%v) did not fail with %v", n, ErrOverflow)
		}
	})
}

func TestArithmetic_ToLong(t *testing.T) {
	tests := []struct {
		scale int
		x     int64
		want  []int64 // Trunc, HalfUp, HalfEven, HalfDown, Up, Down, Ceiling, Floor
	}{
		{2, 199, []int64{1, 2, 2, 2, 2, 1, 2, 1}},
		{2, -199, []int64{-1, -2, -2, -2, -2, -1, -1, -2}},
		{2, 250, []int64{2, 3, 2, 2, 3, 2, 3, 2}},
		{2, -350, []int64{-3, -4, -4, -3, -4, -3, -3, -4}},
		{2, 100, []int64{1, 1, 1, 1, 1, 1, 1, 1}},
		{0, math.MinInt64, []int64{math.MinInt64, math.MinInt64, math.MinInt64, math.MinInt64, math.MinInt64, math.MinInt64, math.MinInt64, math.MinInt64}},
		{18, math.MinInt64, []int64{-9, -9, -9, -9, -10, -9, -9, -10}},
		{18, math.MaxInt64, []int64{9, 9, 9, 9, 10, 9, 10, 9}},
	}
	for _, tt := range tests {
		a := MustNew(tt.scale, DefaultPolicy)
		got := []int64{a.ToLong(tt.x)}
		for _, m := range RoundingModes[:len(RoundingModes)-1] {
			b := MustNew(tt.scale, NewPolicy(m, Checked))
			z, err := b.ToLongExact(tt.x)
			if err != nil {
				t.Errorf("%v.ToLongExact(%v) failed: %v", b, tt.x, err)
			}
			got = append(got, z)
			bi, err := b.ToBigInt(tt.x)
			if err != nil || bi.Int64() != z {
				t.Errorf("%v.ToBigInt(%v) = %v, %v, want %v", b, tt.x, bi, err, z)
			}
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("ToLong(%v) mismatch (-want +got):\n%s", a.Format(tt.x), diff)
		}
	}

	a := MustNew(2, NewPolicy(Unnecessary, Checked))
	if _, err := a.ToLongExact(250); !errors.Is(err, ErrRoundingNecessary) {
		t.Errorf("%v.ToLongExact(2.50) did not fail with %v", a, ErrRoundingNecessary)
	}
	if _, err := a.ToBigInt(250); !errors.Is(err, ErrRoundingNecessary) {
		t.Errorf("%v.ToBigInt(2.50) did not fail with %v", a, ErrRoundingNecessary)
	}
}

func TestArithmetic_FromUnscaled(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			u     int64
			scale int
			want  []string // HalfUp, HalfEven, HalfDown, Up, Down, Ceiling, Floor
		}{
			{12345, 4, []string{"1.23", "1.23", "1.23", "1.24", "1.23", "1.24", "1.23"}},
			{-12350, 4, []string{"-1.24", "-1.24", "-1.23", "-1.24", "-1.23", "-1.23", "-1.24"}},
			{5, 0, []string{"5.00", "5.00", "5.00", "5.00", "5.00", "5.00", "5.00"}},
			{5, -2, []string{"500.00", "500.00", "500.00", "500.00", "500.00", "500.00", "500.00"}},
			{1, 100, []string{"0.00", "0.00", "0.00", "0.01", "0.00", "0.01", "0.00"}},
			{-1, math.MaxInt, []string{"0.00", "0.00", "0.00", "-0.01", "0.00", "0.00", "-0.01"}},
		}
		for _, tt := range tests {
			got := roundAll(t, 2, func(a *Arithmetic) (int64, error) {
				return a.FromUnscaled(tt.u, tt.scale)
			})
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FromUnscaled(%v, %v) mismatch (-want +got):\n%s", tt.u, tt.scale, diff)
			}
		}
	})

	t.Run("overflow", func(t *testing.T) {
		for _, scale := range []int{-17, -20, -100, math.MinInt} {
			if _, err := MustNew(2, CheckedPolicy).FromUnscaled(1, scale); !errors.Is(err, ErrOverflow) {
				t.Errorf("FromUnscaled(1, %v) did not fail with %v", scale, ErrOverflow)
			}
		}
	})
}

func TestArithmetic_ToUnscaled(t *testing.T) {
	tests := []struct {
		x     int64
		scale int
		want  []int64 // HalfUp, HalfEven, HalfDown, Up, Down, Ceiling, Floor
	}{
		{123, 4, []int64{12300, 12300, 12300, 12300, 12300, 12300, 12300}},
		{125, 1, []int64{13, 12, 12, 13, 12, 13, 12}},
		{-125, 1, []int64{-13, -12, -12, -13, -12, -12, -13}},
		{125, -1, []int64{0, 0, 0, 1, 0, 1, 0}},
		{-5000, -3, []int64{0, 0, 0, -1, 0, 0, -1}},
	}
	for _, tt := range tests {
		got := make([]int64, 0, len(tt.want))
		for _, m := range RoundingModes[:len(RoundingModes)-1] {
			a := MustNew(2, NewPolicy(m, Checked))
			z, err := a.ToUnscaled(tt.x, tt.scale)
			if err != nil {
				t.Errorf("%v.ToUnscaled(%v, %v) failed: %v", a, tt.x, tt.scale, err)
			}
			got = append(got, z)
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("ToUnscaled(%v, %v) mismatch (-want +got):\n%s", tt.x, tt.scale, diff)
		}
	}
}

func TestArithmetic_FromBigInt(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		a := MustNew(2, CheckedPolicy)
		tests := []struct {
			b    *big.Int
			want int64
		}{
			{big.NewInt(0), 0},
			{big.NewInt(12), 1200},
			{big.NewInt(-92233720368547758), -9223372036854775800},
		}
		for _, tt := range tests {
			got, err := a.FromBigInt(tt.b)
			if err != nil || got != tt.want {
				t.Errorf("%v.FromBigInt(%v) = %v, %v, want %v", a, tt.b, got, err, tt.want)
			}
		}
	})

	t.Run("overflow", func(t *testing.T) {
		tests := []*big.Int{
			new(big.Int).Lsh(big.NewInt(1), 70),
			big.NewInt(-100_000_000_000_000_000),
			big.NewInt(92233720368547759),
		}
		for _, b := range tests {
			want := wrapBig(new(big.Int).Mul(b, big.NewInt(100)))
			got, err := MustNew(2, DefaultPolicy).FromBigInt(b)
			if err != nil || got != want {
				t.Errorf("FromBigInt(%v) = %v, %v, want %v", b, got, err, want)
			}
			if _, err := MustNew(2, CheckedPolicy).FromBigInt(b); !errors.Is(err, ErrOverflow) {
				t.Errorf("FromBigInt(%v) did not fail with %v", b, ErrOverflow)
			}
		}
	})
}

func TestArithmetic_FromBigDecimal(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			u     string
			scale int
			want  []string // HalfUp, HalfEven, HalfDown, Up, Down, Ceiling, Floor
		}{
			{"12345", 4, []string{"1.23", "1.23", "1.23", "1.24", "1.23", "1.24", "1.23"}},
			{"123456789012345678901234567890", 28, []string{"1.23", "1.23", "1.23", "1.24", "1.23", "1.24", "1.23"}},
			{"-1250000000000000000000000000000", 30, []string{"-1.25", "-1.25", "-1.25", "-1.25", "-1.25", "-1.25", "-1.25"}},
			{"-1250000000000000000000000000001", 31, []string{"-0.13", "-0.13", "-0.13", "-0.13", "-0.12", "-0.12", "-0.13"}},
			{"-1250000000000000000000000000001", 33, []string{"0.00", "0.00", "0.00", "-0.01", "0.00", "0.00", "-0.01"}},
			{"5", -3, []string{"5000.00", "5000.00", "5000.00", "5000.00", "5000.00", "5000.00", "5000.00"}},
			{"1", 1000, []string{"0.00", "0.00", "0.00", "0.01", "0.00", "0.01", "0.00"}},
			{"-99999999999999999999999999999999", 1000, []string{"0.00", "0.00", "0.00", "-0.01", "0.00", "0.00", "-0.01"}},
		}
		for _, tt := range tests {
			u := (*big.Int)(mustParseBint(tt.u))
			got := roundAll(t, 2, func(a *Arithmetic) (int64, error) {
				return a.FromBigDecimal(u, tt.scale)
			})
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FromBigDecimal(%v, %v) mismatch (-want +got):\n%s", tt.u, tt.scale, diff)
			}
		}
	})

	t.Run("overflow", func(t *testing.T) {
		u := big.NewInt(1)
		got, err := MustNew(2, DefaultPolicy).FromBigDecimal(u, -70)
		if err != nil || got != 0 {
			t.Errorf("FromBigDecimal(1, -70) = %v, %v, want 0", got, err)
		}
		if _, err := MustNew(2, CheckedPolicy).FromBigDecimal(u, -70); !errors.Is(err, ErrOverflow) {
			t.Errorf("FromBigDecimal(1, -70) did not fail with %v", ErrOverflow)
		}
	})

	t.Run("nil", func(t *testing.T) {
		for _, p := range Policies {
			a := MustNew(2, p)
			if _, err := a.FromBigDecimal(nil, 2); !errors.Is(err, ErrDomain) {
				t.Errorf("%v.FromBigDecimal(nil, 2) did not fail with %v", a, ErrDomain)
			}
			if _, err := a.FromBigInt(nil); !errors.Is(err, ErrDomain) {
				t.Errorf("%v.FromBigInt(nil) did not fail with %v", a, ErrDomain)
			}
			if _, err := a.FromInfDec(nil); !errors.Is(err, ErrDomain) {
				t.Errorf("%v.FromInfDec(nil) did not fail with %v", a, ErrDomain)
			}
		}
	})

	t.Run("round trip", func(t *testing.T) {
		a := MustNew(7, CheckedPolicy)
		for _, x := range []int64{0, 1, -1, math.MaxInt64, math.MinInt64} {
			u, scale := a.ToBigDecimal(x)
			if scale != 7 {
				t.Errorf("%v.ToBigDecimal(%v) scale = %v, want 7", a, x, scale)
			}
			got, err := a.FromBigDecimal(u, scale)
			if err != nil || got != x {
				t.Errorf("%v.FromBigDecimal(%v, %v) = %v, %v, want %v", a, u, scale, got, err, x)
			}
		}
	})
}

func FuzzArithmetic_FromBigDecimal(f *testing.F) {
	fuzzSeeds(f)

	f.Fuzz(
		func(t *testing.T, x, y int64, scale int, mode uint8) {
			if !validArgs(scale, mode) {
				t.Skip()
				return
			}
			r, s := RoundingMode(mode), inf.Scale(scale)
			u := new(big.Int).Mul(big.NewInt(x), big.NewInt(y))
			for _, from := range []int{-70, -20, -1, 0, 1, scale, 19, 37, 40} {
				want := new(inf.Dec).Round(inf.NewDecBig(u, inf.Scale(from)), s, infRounders[r])
				checkRounded(t, "FromBigDecimal", scale, r, want, func(a *Arithmetic) (int64, error) {
					return a.FromBigDecimal(u, from)
				})
				d := inf.NewDecBig(u, inf.Scale(from))
				checkRounded(t, "FromInfDec", scale, r, want, func(a *Arithmetic) (int64, error) {
					return a.FromInfDec(d)
				})
			}
		},
	)
}

func TestArithmetic_InfDec(t *testing.T) {
	a := MustNew(2, NewPolicy(HalfEven, Checked))
	got, err := a.FromInfDec(inf.NewDec(12345, 3))
	if err != nil || got != 1234 {
		t.Errorf("%v.FromInfDec(12.345) = %v, %v, want 1234", a, got, err)
	}
	got, err = a.FromInfDec(inf.NewDec(-5, -2))
	if err != nil || got != -50000 {
		t.Errorf("%v.FromInfDec(-500) = %v, %v, want -50000", a, got, err)
	}
	if s := a.ToInfDec(-123).String(); s != "-1.23" {
		t.Errorf("%v.ToInfDec(-123) = %v, want -1.23", a, s)
	}
	if _, err := a.FromInfDec(inf.NewDec(1, -18)); !errors.Is(err, ErrOverflow) {
		t.Errorf("%v.FromInfDec(10^18) did not fail with %v", a, ErrOverflow)
	}
}

func TestArithmetic_Shopspring(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			d    string
			want []string // HalfUp, HalfEven, HalfDown, Up, Down, Ceiling, Floor
		}{
			{"1.005", []string{"1.01", "1.00", "1.00", "1.01", "1.00", "1.01", "1.00"}},
			{"-1.015", []string{"-1.02", "-1.02", "-1.01", "-1.02", "-1.01", "-1.01", "-1.02"}},
			{"123", []string{"123.00", "123.00", "123.00", "123.00", "123.00", "123.00", "123.00"}},
			{"0.000000000000000000000000000001", []string{"0.00", "0.00", "0.00", "0.01", "0.00", "0.01", "0.00"}},
		}
		for _, tt := range tests {
			d := shopspring.RequireFromString(tt.d)
			got := roundAll(t, 2, func(a *Arithmetic) (int64, error) {
				return a.FromShopspring(d)
			})
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FromShopspring(%v) mismatch (-want +got):\n%s", tt.d, diff)
			}
		}
	})

	t.Run("positive exponent", func(t *testing.T) {
		a := MustNew(2, CheckedPolicy)
		got, err := a.FromShopspring(shopspring.New(5, 3))
		if err != nil || got != 500000 {
			t.Errorf("%v.FromShopspring(5e3) = %v, %v, want 500000", a, got, err)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		a := MustNew(2, CheckedPolicy)
		for _, x := range []int64{0, 123, -5, math.MaxInt64, math.MinInt64} {
			d := a.ToShopspring(x)
			if d.String() != shopspring.RequireFromString(a.Format(x)).String() {
				t.Errorf("%v.ToShopspring(%v) = %v, want %v", a, x, d, a.Format(x))
			}
			got, err := a.FromShopspring(d)
			if err != nil || got != x {
				t.Errorf("%v.FromShopspring(%v) = %v, %v, want %v", a, d, got, err, x)
			}
		}
		if s := a.ToShopspring(123).String(); s != "1.23" {
			t.Errorf("%v.ToShopspring(123) = %q, want %q", a, s, "1.23")
		}
	})
}
