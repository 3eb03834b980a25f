// SPDX-License-Identifier: MIT

package numeric

import "math/big"

// Exact integer kernels. They carry no precision and never round; the
// Context methods of the same name round their result once.

// IntPow returns base^exp. IntPow(x, 0) is 1 for every x, including 0.
func IntPow(base, exp int64) (*big.Int, error) {
	if exp < 0 {
		return nil, ErrNegativeArgument
	}
	if exp == 0 {
		return big.NewInt(1), nil
	}
	return new(big.Int).Exp(big.NewInt(base), big.NewInt(exp), nil), nil
}

// IntBinomial returns C(n, k); C(n, k) = 0 when k > n.
func IntBinomial(n, k int64) (*big.Int, error) {
	if n < 0 || k < 0 {
		return nil, ErrNegativeArgument
	}
	if k > n {
		return new(big.Int), nil
	}
	return new(big.Int).Binomial(n, k), nil
}

// IntFactorial returns n!.
func IntFactorial(n int64) (*big.Int, error) {
	if n < 0 {
		return nil, ErrNegativeArgument
	}
	// MulRange(1, 0) is the empty product 1.
	return new(big.Int).MulRange(1, n), nil
}
