// SPDX-License-Identifier: MIT

package direct

import (
	"fmt"
	"math/big"

	"github.com/katalvlaran/strongbirthday/numeric"
)

// Probability returns prob(m, n, k) at the precision of c.
//
// Contracts:
//   - m ≥ 1, n ≥ 0, 0 ≤ k ≤ n.
//
// Example:
//
//	c := numeric.MustContext(100)
//	p, err := direct.Probability(c, 365, 100, 0)
func Probability(c *numeric.Context, m, n, k int) (*big.Float, error) {
	count, err := Count(c, m, n, k)
	if err != nil {
		return nil, err
	}
	total, err := c.PowInt(int64(m), int64(n))
	if err != nil {
		return nil, fmt.Errorf("direct: m^n: %w", err)
	}

	return c.Quo(count, total)
}

// Count returns the numerator of prob(m, n, k) rounded once to the precision
// of c: the number of assignments of n people to m days leaving exactly k
// singleton days.
func Count(c *numeric.Context, m, n, k int) (*big.Float, error) {
	z, err := CountInt(m, n, k)
	if err != nil {
		return nil, err
	}
	return c.FromBigInt(z), nil
}

// CountInt returns the exact numerator of prob(m, n, k).
//
// Every summand is an integer, so the alternating sum is accumulated on
// big.Int: the terms can exceed the result by hundreds of digits, and no
// digit is lost to cancellation whatever the working precision.
func CountInt(m, n, k int) (*big.Int, error) {
	if m < 1 || n < 0 || k < 0 || k > n {
		return nil, fmt.Errorf("%w: m=%d n=%d k=%d", ErrInvalidArgument, m, n, k)
	}

	sum := new(big.Int)
	// C(m,j) = 0 beyond m, so the sum stops at min(n, m).
	for j := k; j <= min(n, m); j++ {
		term, err := summand(m, n, k, j)
		if err != nil {
			return nil, err
		}
		sum.Add(sum, term)
	}
	if sum.Sign() < 0 {
		return nil, fmt.Errorf("direct: negative count %s for m=%d n=%d k=%d", sum, m, n, k)
	}

	return sum, nil
}

// summand returns (-1)^{j-k} · C(j,k) · C(m,j) · C(n,j) · j! · (m-j)^(n-j).
func summand(m, n, k, j int) (*big.Int, error) {
	jk, err := numeric.IntBinomial(int64(j), int64(k))
	if err != nil {
		return nil, fmt.Errorf("direct: C(%d,%d): %w", j, k, err)
	}
	mj, err := numeric.IntBinomial(int64(m), int64(j))
	if err != nil {
		return nil, fmt.Errorf("direct: C(%d,%d): %w", m, j, err)
	}
	nj, err := numeric.IntBinomial(int64(n), int64(j))
	if err != nil {
		return nil, fmt.Errorf("direct: C(%d,%d): %w", n, j, err)
	}
	fact, err := numeric.IntFactorial(int64(j))
	if err != nil {
		return nil, fmt.Errorf("direct: %d!: %w", j, err)
	}
	// IntPow defines x^0 = 1, which covers n = j regardless of m-j.
	pow, err := numeric.IntPow(int64(m-j), int64(n-j))
	if err != nil {
		return nil, fmt.Errorf("direct: (%d)^%d: %w", m-j, n-j, err)
	}

	term := new(big.Int).Mul(jk, mj)
	term.Mul(term, nj)
	term.Mul(term, fact)
	term.Mul(term, pow)
	if (j-k)%2 == 1 {
		term.Neg(term)
	}

	return term, nil
}
