// Package rankperm implements the permutation codec: an exact bijection between
// an integer rank in [0, n!) and a specific permutation of n sorted items, plus
// the capacity function that decides how many payload bits a dictionary carries.
//
// www.cs.uvic.ca/~ruskey/Publications/RankPerm/RankPerm.html
package rankperm

import "math/big"

// MaxDictSize is the largest dictionary size this package will rank/unrank.
// Dictionaries larger than this are rare in practice; AvailableBits reports
// capacity 0 for them (see Oversized) rather than risking runaway factorial
// growth. No warning is emitted for this case.
const MaxDictSize = 64

// Int is an arbitrary-precision non-negative integer. The zero value is not
// usable; use Zero or one of the constructors below.
type Int struct {
	v *big.Int
}

// Zero returns the integer 0.
func Zero() *Int {
	return &Int{v: new(big.Int)}
}

// FromUint64 builds an Int from a machine-word value.
func FromUint64(n uint64) *Int {
	return &Int{v: new(big.Int).SetUint64(n)}
}

// clone returns an independent copy so callers can mutate without aliasing.
func (x *Int) clone() *Int {
	return &Int{v: new(big.Int).Set(x.v)}
}

// TestBit reports whether bit i (0 = least significant) is set.
func (x *Int) TestBit(i int) bool {
	if i < 0 {
		return false
	}
	return x.v.Bit(i) == 1
}

// SetBit sets bit i (0 = least significant) to 1, returning x for chaining.
func (x *Int) SetBit(i int) *Int {
	x.v.SetBit(x.v, i, 1)
	return x
}

// BitLen returns the number of bits required to represent x, i.e. 0 for x==0
// and floor(log2(x))+1 otherwise — matches GMP's mpz_sizeinbase(x, 2).
func (x *Int) BitLen() int {
	return x.v.BitLen()
}

// DivModSmall divides x by the machine-word n, returning the quotient and the
// remainder. n must be > 0.
func (x *Int) DivModSmall(n uint) (q *Int, r uint) {
	nb := new(big.Int).SetUint64(uint64(n))
	quo := new(big.Int)
	rem := new(big.Int)
	quo.QuoRem(x.v, nb, rem)
	return &Int{v: quo}, uint(rem.Uint64())
}

// AddSmall returns x + s as a new Int.
func (x *Int) AddSmall(s uint) *Int {
	return &Int{v: new(big.Int).Add(x.v, new(big.Int).SetUint64(uint64(s)))}
}

// MulSmall returns x * n as a new Int.
func (x *Int) MulSmall(n uint) *Int {
	return &Int{v: new(big.Int).Mul(x.v, new(big.Int).SetUint64(uint64(n)))}
}

// Cmp compares x and y the way big.Int.Cmp does.
func (x *Int) Cmp(y *Int) int {
	return x.v.Cmp(y.v)
}

// String renders the decimal representation, mostly for logging/tests.
func (x *Int) String() string {
	return x.v.String()
}

// Uint64 returns x as a uint64. Only safe for ranks known to fit (the caller
// is responsible — this package never does that conversion on its own for
// values that could be 64!-sized).
func (x *Int) Uint64() uint64 {
	return x.v.Uint64()
}

// Factorial computes n! exactly. Floating point is never used — factorial
// growth defeats float64 well before MaxDictSize, which is exactly why this
// type exists.
func Factorial(n int) *Int {
	result := new(big.Int).SetUint64(1)
	for i := 2; i <= n; i++ {
		result.Mul(result, new(big.Int).SetUint64(uint64(i)))
	}
	return &Int{v: result}
}
