// SPDX-License-Identifier: MIT

// Package numeric is the arbitrary-precision kernel shared by every exact
// strategy of the strong birthday computation.
//
// 🚀 What is a Context?
//
//	A Context fixes the number of significant decimal digits carried by
//	every value it creates. It is built once per run with NewContext and
//	passed by pointer to every arithmetic call; there is no package-level
//	precision setting to mutate.
//
// ✨ Operations:
//   - New / FromInt / FromBigInt / FromFloat64 - value construction at the context precision
//   - Add / Sub / Mul / MulInt / Quo          - rounded binary arithmetic
//   - PowInt / Binomial / Factorial           - exact integer kernels, rounded once
//   - IntPow / IntBinomial / IntFactorial     - the same kernels as *big.Int, never rounded
//   - RelDiff / Tolerance / Within            - comparison at the context precision
//
// Invariant:
//
//	Values from two different Contexts must never be combined inside one
//	probability evaluation. The kernel does not check this at every call;
//	callers own one Context per run.
//
// Every result is a freshly allocated *big.Float, so inputs are never
// mutated and memo tables may safely share values.
package numeric
