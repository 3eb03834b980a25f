// SPDX-License-Identifier: MIT

// Package direct evaluates the strong birthday probability with a single
// inclusion–exclusion sum, no memoization involved.
//
// Formula:
//
//	prob(m, n, k) = m^-n · Σ_{j=k}^{n} (-1)^{j-k} · C(j,k) · C(m,j) · C(n,j) · j! · (m-j)^(n-j)
//
// prob(m, n, k) is the probability that exactly k of the m days carry a
// single birthday. k = 0 is the strong birthday problem: every occupied
// day is shared.
//
// Every summand is computed independently. (m-j)^(n-j) is exactly 1 when
// n = j, including the m = j case, and summands with j > m vanish since
// C(m,j) = 0. Every summand is an integer, so the alternating sum is
// accumulated exactly on big.Int and rounded once into the supplied
// numeric.Context. For (m,n) = (365,300) the largest summand exceeds the
// count by about 100 digits; a rounded accumulator at 60 digits would
// return noise of either sign.
//
// Complexity:
//
//   - Time:   O(min(n,m)) summands, each dominated by one exact power.
//   - Memory: O(n·log m) bits for the largest summand.
//
// Errors:
//
//   - ErrInvalidArgument if m < 1, n < 0 or k ∉ [0, n].
package direct
