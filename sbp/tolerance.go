// SPDX-License-Identifier: MIT

package sbp

import (
	"math"
	"math/big"

	"github.com/katalvlaran/strongbirthday/numeric"
)

// floatSlack covers the handful of roundings one P step performs (three
// products, two sums, the 1/m scale) plus the final sum over j.
const floatSlack = 64

// floatFloor absorbs results that underflow into the subnormal range, where
// float64 no longer carries a relative error bound.
const floatFloor = 0x1p-1000

// FloatTolerance returns the relative error the float strategies are
// allowed against an exact strategy at n people: (n+1)·64·2⁻⁵².
//
// Every P layer sums non-negative terms and adds a bounded relative
// rounding error to each entry, so the bound grows linearly with n and
// holds for tiny probabilities as well as large ones. At the largest
// benchmark case (n = 1410) it is about 2e-11.
func FloatTolerance(n int) float64 {
	if n < 0 {
		n = 0
	}
	return float64(n+1) * floatSlack * math.Pow(2, -52)
}

// ExactTolerance returns the relative error two exact strategies may show
// at n people: c.Tolerance()·(n+1).
//
// The direct sum is exact on integers and rounded once. The recurrences
// add only non-negative terms, one rounding per step over at most n
// layers, so their error is a few ulps per person. The ToleranceGuard
// digits and the guard bits of c leave room for n well beyond 10^6.
func ExactTolerance(c *numeric.Context, n int) *big.Float {
	if n < 0 {
		n = 0
	}
	return c.MulInt(c.Tolerance(), int64(n+1))
}

// Agree reports whether a and b are the same probability within the
// tolerance their strategies allow: ExactTolerance when both are exact,
// FloatTolerance as soon as one of them is a float strategy. Both bounds
// are relative.
func Agree(c *numeric.Context, a, b Result) bool {
	n := max(a.N, b.N)
	if a.Strategy.Exact() && b.Strategy.Exact() {
		return c.RelDiff(a.Value, b.Value).Cmp(ExactTolerance(c, n)) <= 0
	}
	diff := math.Abs(a.Float - b.Float)
	scale := max(math.Abs(a.Float), math.Abs(b.Float))
	return diff <= FloatTolerance(n)*scale+floatFloor
}
