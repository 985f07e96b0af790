package decimal

import (
	"fmt"
	"math"
	"math/big"
	"math/bits"
	"sync"
)

// u128 is an unsigned 128-bit integer.
// It holds the exact magnitude of intermediate results, which may not fit
// into 64 bits.
type u128 struct {
	hi, lo uint64
}

// mul64 calculates x * y.
func mul64(x, y uint64) u128 {
	hi, lo := bits.Mul64(x, y)
	return u128{hi, lo}
}

// mag returns |x| as uint64, which is correct for math.MinInt64.
func mag(x int64) uint64 {
	if x < 0 {
		return -uint64(x)
	}
	return uint64(x)
}

func (x u128) isZero() bool {
	return x.hi == 0 && x.lo == 0
}

func (x u128) isOdd() bool {
	return x.lo&1 != 0
}

// cmp compares x and y and returns -1, 0 or +1.
func (x u128) cmp(y u128) int {
	switch {
	case x.hi < y.hi:
		return -1
	case x.hi > y.hi:
		return 1
	case x.lo < y.lo:
		return -1
	case x.lo > y.lo:
		return 1
	}
	return 0
}

// add calculates x + y and checks overflow.
func (x u128) add(y u128) (z u128, ok bool) {
	var c uint64
	z.lo, c = bits.Add64(x.lo, y.lo, 0)
	z.hi, c = bits.Add64(x.hi, y.hi, c)
	return z, c == 0
}

// inc calculates x + 1.
// Results of rounding never reach 2^128, so overflow is not checked.
func (x u128) inc() u128 {
	lo, c := bits.Add64(x.lo, 1, 0)
	return u128{x.hi + c, lo}
}

// sub calculates x - y, assuming x >= y.
func (x u128) sub(y u128) u128 {
	lo, b := bits.Sub64(x.lo, y.lo, 0)
	hi, _ := bits.Sub64(x.hi, y.hi, b)
	return u128{hi, lo}
}

// mul64 calculates x * y and checks overflow.
func (x u128) mul64(y uint64) (z u128, ok bool) {
	hi, lo := bits.Mul64(x.lo, y)
	h, l := bits.Mul64(x.hi, y)
	if h != 0 {
		return u128{}, false
	}
	hi, c := bits.Add64(hi, l, 0)
	if c != 0 {
		return u128{}, false
	}
	return u128{hi, lo}, true
}

// mul calculates x * y and checks overflow.
func (x u128) mul(y u128) (z u128, ok bool) {
	switch {
	case x.hi != 0 && y.hi != 0:
		return u128{}, false
	case y.hi != 0:
		return y.mul64(x.lo)
	}
	return x.mul64(y.lo)
}

// pow calculates x^n by repeated squaring and checks overflow.
func (x u128) pow(n uint64) (z u128, ok bool) {
	z = u128{0, 1}
	for {
		if n&1 != 0 {
			z, ok = z.mul(x)
			if !ok {
				return u128{}, false
			}
		}
		n >>= 1
		if n == 0 {
			return z, true
		}
		x, ok = x.mul(x)
		if !ok {
			return u128{}, false
		}
	}
}

// quoRem64 calculates q = ⌊x / y⌋, r = x - q * y for y > 0.
func (x u128) quoRem64(y uint64) (q u128, r uint64) {
	q.hi, r = x.hi/y, x.hi%y
	q.lo, r = bits.Div64(r, x.lo, y)
	return q, r
}

// quoPow10 calculates q = ⌊x / 10^n⌋ and classifies the discarded digits.
func (x u128) quoPow10(n int) (q u128, part TruncatedPart) {
	switch {
	case n <= 0:
		return x, Zero
	case x.isZero():
		return x, Zero
	case n < len(pow10):
		q, r := x.quoRem64(pow10[n])
		return q, NewTruncatedPart(r, pow10[n])
	case n < 2*len(pow10)-1:
		// Division in two steps: by 10^19, then by 10^(n-19).
		q, r := x.quoRem64(pow10[len(pow10)-1])
		p := pow10[n-len(pow10)+1]
		q, rr := q.quoRem64(p)
		return q, NewTruncatedPart(rr, p).sticky(r == 0)
	}
	// 10^n / 2 > 2^128 > x
	return u128{}, LessThanHalfButNotZero
}

// rsh calculates ⌊x / 2^n⌋ and classifies the discarded bits.
func (x u128) rsh(n uint) (q u128, part TruncatedPart) {
	switch {
	case n == 0:
		return x, Zero
	case n > 128:
		if x.isZero() {
			return x, Zero
		}
		return u128{}, LessThanHalfButNotZero
	}
	first := x.bit(n - 1)
	rest := x.lowBitsZero(n - 1)
	return x.shr(n), truncatedPartForBits(first, rest)
}

// shr calculates ⌊x / 2^n⌋.
func (x u128) shr(n uint) u128 {
	switch {
	case n >= 128:
		return u128{}
	case n >= 64:
		return u128{0, x.hi >> (n - 64)}
	case n == 0:
		return x
	}
	return u128{x.hi >> n, x.lo>>n | x.hi<<(64-n)}
}

// shl calculates x * 2^n modulo 2^128.
func (x u128) shl(n uint) u128 {
	switch {
	case n >= 128:
		return u128{}
	case n >= 64:
		return u128{x.lo << (n - 64), 0}
	case n == 0:
		return x
	}
	return u128{x.hi<<n | x.lo>>(64-n), x.lo << n}
}

// bit returns the n-th bit of x.
func (x u128) bit(n uint) uint64 {
	if n >= 64 {
		return (x.hi >> (n - 64)) & 1
	}
	return (x.lo >> n) & 1
}

// lowBitsZero returns true if x is a multiple of 2^n.
func (x u128) lowBitsZero(n uint) bool {
	switch {
	case n == 0:
		return true
	case n >= 128:
		return x.isZero()
	case n > 64:
		return x.lo == 0 && x.hi<<(128-n) == 0
	}
	return x.lo<<(64-n) == 0
}

// bitLen returns the minimum number of bits required to represent x.
func (x u128) bitLen() int {
	if x.hi != 0 {
		return 64 + bits.Len64(x.hi)
	}
	return bits.Len64(x.lo)
}

// sqrtRem calculates r = ⌊√x⌋ and the remainder x - r².
// The root is determined bit by bit, consuming two bits of the radicand
// per iteration.
func (x u128) sqrtRem() (root u128, rem u128) {
	bit := u128{1 << 62, 0} // 4^63
	for bit.cmp(x) > 0 {
		bit = bit.shr(2)
	}
	rem = x
	for !bit.isZero() {
		t, _ := root.add(bit)
		if rem.cmp(t) >= 0 {
			rem = rem.sub(t)
			root, _ = root.shr(1).add(bit)
		} else {
			root = root.shr(1)
		}
		bit = bit.shr(2)
	}
	return root, rem
}

// toInt64 converts a sign and a magnitude to int64 and checks overflow.
func toInt64(neg bool, x u128) (int64, bool) {
	if x.hi != 0 {
		return 0, false
	}
	switch {
	case x.lo <= math.MaxInt64 && neg:
		return -int64(x.lo), true
	case x.lo <= math.MaxInt64:
		return int64(x.lo), true
	case neg && x.lo == 1<<63:
		return math.MinInt64, true
	}
	return 0, false
}

// wrapInt64 returns the two's complement of sign and magnitude modulo 2^64.
func wrapInt64(neg bool, x u128) int64 {
	if neg {
		return int64(-x.lo)
	}
	return int64(x.lo)
}

// addSigned calculates the sum of two signed magnitudes.
func addSigned(xneg bool, x u128, yneg bool, y u128) (neg bool, z u128, ok bool) {
	if xneg == yneg {
		z, ok = x.add(y)
		return xneg, z, ok
	}
	if x.cmp(y) >= 0 {
		return xneg, x.sub(y), true
	}
	return yneg, y.sub(x), true
}

// bint (Big INTeger) is a wrapper around big.Int.
// It is used only when intermediate results do not fit into 128 bits.
type bint big.Int

// bpow10 is a cache of powers of 10, where bpow10[x] = 10^x.
var bpow10 = func() (p [2 * len(pow10)]*bint) {
	for i := range p {
		z := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(i)), nil)
		p[i] = (*bint)(z)
	}
	return p
}()

// mask64 is 2^64 - 1.
var mask64 = new(big.Int).SetUint64(math.MaxUint64)

func (z *bint) sign() int {
	return (*big.Int)(z).Sign()
}

func (z *bint) cmp(x *bint) int {
	return (*big.Int)(z).Cmp((*big.Int)(x))
}

func (z *bint) setBint(x *bint) {
	(*big.Int)(z).Set((*big.Int)(x))
}

func (z *bint) setInt64(x int64) {
	(*big.Int)(z).SetInt64(x)
}

func (z *bint) setUint64(x uint64) {
	(*big.Int)(z).SetUint64(x)
}

func (z *bint) bitLen() int {
	return (*big.Int)(z).BitLen()
}

func (z *bint) isOdd() bool {
	return (*big.Int)(z).Bit(0) != 0
}

// add calculates z = x + y.
func (z *bint) add(x, y *bint) {
	(*big.Int)(z).Add((*big.Int)(x), (*big.Int)(y))
}

// inc calculates z = x + 1.
func (z *bint) inc(x *bint) {
	z.add(x, bpow10[0])
}

// abs calculates z = |x|.
func (z *bint) abs(x *bint) {
	(*big.Int)(z).Abs((*big.Int)(x))
}

// neg calculates z = -x.
func (z *bint) neg(x *bint) {
	(*big.Int)(z).Neg((*big.Int)(x))
}

// dbl (Double) calculates z = x * 2.
func (z *bint) dbl(x *bint) {
	(*big.Int)(z).Lsh((*big.Int)(x), 1)
}

// mul calculates z = x * y.
func (z *bint) mul(x, y *bint) {
	(*big.Int)(z).Mul((*big.Int)(x), (*big.Int)(y))
}

// pow calculates z = x^n.
func (z *bint) pow(x *bint, n uint64) {
	y := getBint()
	defer putBint(y)
	(*big.Int)(y).SetUint64(n)
	(*big.Int)(z).Exp((*big.Int)(x), (*big.Int)(y), nil)
}

// pow10 calculates z = 10^n.
// If n is negative, the result is unpredictable.
func (z *bint) pow10(n int) {
	if n < len(bpow10) {
		z.setBint(bpow10[n])
		return
	}
	x := getBint()
	defer putBint(x)
	x.setInt64(10)
	z.pow(x, uint64(n))
}

// quoRem calculates z = x / y truncated towards zero, r = x - y * z.
func (z *bint) quoRem(x, y, r *bint) {
	(*big.Int)(z).QuoRem((*big.Int)(x), (*big.Int)(y), (*big.Int)(r))
}

// lsh (Left Shift) calculates z = x * 10^shift.
func (z *bint) lsh(x *bint, shift int) {
	y := getBint()
	defer putBint(y)
	y.pow10(shift)
	z.mul(x, y)
}

// quoRound calculates z = x / y truncated towards zero and classifies the
// discarded fraction, for y > 0.
func (z *bint) quoRound(x, y *bint) TruncatedPart {
	r := getBint()
	defer putBint(r)
	z.quoRem(x, y, r)
	if r.sign() == 0 {
		return Zero
	}
	r.abs(r)
	r.dbl(r)
	switch r.cmp(y) {
	case -1:
		return LessThanHalfButNotZero
	case 0:
		return EqualToHalf
	}
	return GreaterThanHalf
}

// int64 converts z to int64 and checks overflow.
func (z *bint) int64() (int64, bool) {
	if !(*big.Int)(z).IsInt64() {
		return 0, false
	}
	return (*big.Int)(z).Int64(), true
}

// wrapInt64 returns z modulo 2^64 as a two's complement int64.
func (z *bint) wrapInt64() int64 {
	y := getBint()
	defer putBint(y)
	// And uses two's complement semantics for negative operands.
	(*big.Int)(y).And((*big.Int)(z), mask64)
	return int64((*big.Int)(y).Uint64())
}

// mustParseBint converts a string to *bint, panicking on error.
// Use only for package variable initialization and test code!
func mustParseBint(s string) *bint {
	z, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic(fmt.Errorf("mustParseBint(%q) failed: parsing error", s))
	}
	return (*bint)(z)
}

// bpool is a cache of reusable *big.Int instances.
var bpool = sync.Pool{
	New: func() any {
		return (*bint)(new(big.Int))
	},
}

// getBint obtains a *big.Int from the pool.
func getBint() *bint {
	return bpool.Get().(*bint)
}

// putBint returns the *big.Int into the pool.
func putBint(b *bint) {
	bpool.Put(b)
}
