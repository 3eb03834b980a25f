// SPDX-License-Identifier: MIT

package numeric

import (
	"math"
	"math/big"
)

// Context carries the precision policy of one run. It is immutable after
// NewContext returns and safe for concurrent readers.
type Context struct {
	digits    uint
	prec      uint
	tolerance *big.Float
}

// NewContext returns a Context carrying digits significant decimal digits.
//
// The binary mantissa is ceil(digits·log2(10)) plus a fixed guard, so the
// decimal precision promised by Digits is always available.
//
// Errors:
//   - ErrBadPrecision if digits == 0 or digits > MaxDigits.
func NewContext(digits uint) (*Context, error) {
	if digits == 0 || digits > MaxDigits {
		return nil, ErrBadPrecision
	}
	c := &Context{
		digits: digits,
		prec:   uint(math.Ceil(float64(digits)*math.Log2(10))) + guardBits,
	}

	exp := int64(digits) - ToleranceGuard
	if exp < 1 {
		exp = 1
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(exp), nil)
	c.tolerance = c.New().Quo(c.FromInt(1), c.FromBigInt(scale))

	return c, nil
}

// MustContext is NewContext for package-level test fixtures; it panics on error.
func MustContext(digits uint) *Context {
	c, err := NewContext(digits)
	if err != nil {
		panic(err)
	}
	return c
}

// Digits reports the decimal precision.
func (c *Context) Digits() uint { return c.digits }

// Prec reports the binary mantissa length used for every value.
func (c *Context) Prec() uint { return c.prec }

// New returns a zero value at the context precision.
func (c *Context) New() *big.Float {
	return new(big.Float).SetPrec(c.prec)
}

// FromInt returns x rounded to the context precision.
func (c *Context) FromInt(x int64) *big.Float {
	return c.New().SetInt64(x)
}

// FromBigInt returns x rounded to the context precision.
func (c *Context) FromBigInt(x *big.Int) *big.Float {
	return c.New().SetInt(x)
}

// FromFloat64 returns x at the context precision. NaN panics, as in math/big.
func (c *Context) FromFloat64(x float64) *big.Float {
	return c.New().SetFloat64(x)
}

// Add returns a+b.
func (c *Context) Add(a, b *big.Float) *big.Float {
	return c.New().Add(a, b)
}

// Sub returns a-b.
func (c *Context) Sub(a, b *big.Float) *big.Float {
	return c.New().Sub(a, b)
}

// Mul returns a·b.
func (c *Context) Mul(a, b *big.Float) *big.Float {
	return c.New().Mul(a, b)
}

// MulInt returns w·a. The integer weight is exact below 2^63.
func (c *Context) MulInt(a *big.Float, w int64) *big.Float {
	z := c.FromInt(w)
	return z.Mul(z, a)
}

// Quo returns a/b.
func (c *Context) Quo(a, b *big.Float) (*big.Float, error) {
	if b.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	return c.New().Quo(a, b), nil
}

// PowInt returns base^exp, computed exactly on integers and rounded once.
// PowInt(x, 0) is 1 for every x, including 0.
func (c *Context) PowInt(base, exp int64) (*big.Float, error) {
	z, err := IntPow(base, exp)
	if err != nil {
		return nil, err
	}
	return c.FromBigInt(z), nil
}

// Binomial returns C(n, k); C(n, k) = 0 when k > n.
func (c *Context) Binomial(n, k int64) (*big.Float, error) {
	z, err := IntBinomial(n, k)
	if err != nil {
		return nil, err
	}
	return c.FromBigInt(z), nil
}

// Factorial returns n!.
func (c *Context) Factorial(n int64) (*big.Float, error) {
	z, err := IntFactorial(n)
	if err != nil {
		return nil, err
	}
	return c.FromBigInt(z), nil
}

// RelDiff returns |a-b| / max(|a|,|b|), or 0 when both are zero.
func (c *Context) RelDiff(a, b *big.Float) *big.Float {
	diff := c.Sub(a, b)
	diff.Abs(diff)
	if diff.Sign() == 0 {
		return diff
	}
	absA := c.New().Abs(a)
	absB := c.New().Abs(b)
	scale := absA
	if absB.Cmp(absA) > 0 {
		scale = absB
	}
	return diff.Quo(diff, scale)
}

// Tolerance returns 10^-(Digits-ToleranceGuard), floored at 10^-1: the
// relative difference two exact strategies may show at this precision.
func (c *Context) Tolerance() *big.Float {
	return c.New().Set(c.tolerance)
}

// Within reports whether a and b agree to the context tolerance.
func (c *Context) Within(a, b *big.Float) bool {
	return c.RelDiff(a, b).Cmp(c.tolerance) <= 0
}

// Text formats x with sig significant digits.
func Text(x *big.Float, sig int) string {
	if x == nil {
		return "<nil>"
	}
	return x.Text('g', sig)
}
