// SPDX-License-Identifier: MIT

// Package stirling evaluates the 2-associated Stirling numbers of the
// second kind S(n,k): the number of partitions of n labeled items into
// exactly k unlabeled blocks, every block holding at least two items.
//
// Recurrence (n ≥ 1):
//
//	S(n,k) = k·S(n-1,k) + (n-1)·S(n-2,k-1)
//	S(0,0) = 1
//
// The n-th item either joins one of the k existing blocks, or pairs with
// one of the n-1 other items to open a new block, which consumes two items
// at once and is why the recurrence reaches back to n-2.
//
// A state is structurally zero when (n ≤ 0 and k > 0), (n > 0 and k ≤ 0)
// or n < 2k. S does not depend on the number of days: m enters the strong
// birthday probability only through the C(m,k)·k! multiplier applied by
// package sbp, so no m-dependent pruning happens here.
//
// ✨ Execution modes:
//   - Memo     - top-down, write-once table keyed by (n,k), explicit work list.
//   - BottomUp - three-slot rolling window prev2 / prev1 / curr, each row
//     indexed by k and reused once superseded.
//
// Complexity:
//
//   - Time:   O(n²/2) arithmetic steps.
//   - Memory: Memo O(reachable states); BottomUp O(n) values in three rows.
package stirling
