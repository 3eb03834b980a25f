// SPDX-License-Identifier: MIT

// Package occupancy evaluates the two-parameter occupancy recurrence
// T(j,k,n,m) and its normalized float twin P(j,k,n,m) = T(j,k,n,m)/m^n.
//
// 🚀 What is T?
//
//	T(j,k,n,m) counts the ways n distinguishable items fall into m labeled
//	slots so that exactly j slots hold two or more items and exactly k
//	slots hold one item. The remaining m-j-k slots stay empty.
//
// Recurrence (n ≥ 1, valid state):
//
//	T(j,k,n,m) = j·T(j,k,n-1,m)              // item joins a multi-occupied slot
//	           + (k+1)·T(j-1,k+1,n-1,m)      // item turns a singleton into a pair
//	           + (m-j-k+1)·T(j,k-1,n-1,m)    // item opens an empty slot
//
//	T(0,0,0,m) = 1
//
// A state is structurally zero when j<0, k<0, n<2j+k or m<j+k. Structural
// zeros short-circuit and are never written into a memo table, so a stored
// zero always means "computed and equal to zero".
//
// ✨ Execution modes:
//   - Memo     - top-down with a write-once table, driven by an explicit
//     work list instead of native recursion, so n in the thousands needs
//     no stack tuning.
//   - BottomUp - tabulation over n with a single rolling predecessor
//     layer, dense or sparse (see LayerMode).
//
// Both modes are generic over Arithmetic[V]: Counts evaluates T at the
// precision of a numeric.Context, Probabilities evaluates P in float64
// with the 1/m factor folded into every step, keeping values in [0,1].
//
// Complexity (valid pairs per layer ≤ (⌊n/2⌋+1)·(min(n,m)+1)):
//
//   - Time:   O(n · valid pairs) arithmetic steps.
//   - Memory: Memo O(reachable states); BottomUp O(largest layer).
package occupancy
