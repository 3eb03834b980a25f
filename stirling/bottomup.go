// SPDX-License-Identifier: MIT

package stirling

import (
	"fmt"
	"math/big"

	"go.uber.org/zap"

	"github.com/katalvlaran/strongbirthday/numeric"
)

// Row is S(N,k) for every k; entries outside 0..⌊N/2⌋ read as 0.
type Row struct {
	N    int
	ctx  *numeric.Context
	vals []*big.Float
}

// At returns a copy of S(N,k).
func (r *Row) At(k int) *big.Float {
	out := r.ctx.New()
	if k >= 0 && k < len(r.vals) && r.vals[k] != nil {
		out.Set(r.vals[k])
	}
	return out
}

// Len returns the number of non-zero entries.
func (r *Row) Len() int {
	n := 0
	for _, v := range r.vals {
		if v != nil {
			n++
		}
	}
	return n
}

// BottomUp tabulates S row by row up to target and returns row target.
//
// Algorithm Outline:
//  1. Seed row 0 with S(0,0) = 1.
//  2. For row = 1..target, fill k = 1..⌊row/2⌋ from the two previous rows:
//     k·prev1[k] + (row-1)·prev2[k-1].
//  3. Rotate prev2 ← prev1 ← curr ← prev2, reusing the outgoing row's
//     slice and its values as scratch.
//
// Errors:
//   - ErrInvalidArgument if target < 0.
func BottomUp(c *numeric.Context, target int, opts ...Option) (*Row, Stats, error) {
	if target < 0 {
		return nil, Stats{}, fmt.Errorf("%w: n=%d", ErrInvalidArgument, target)
	}
	o := gatherOptions(opts)

	width := target/2 + 1
	prev2 := make([]*big.Float, width) // row n-2
	prev1 := make([]*big.Float, width) // row n-1
	curr := make([]*big.Float, width)
	prev1[0] = c.FromInt(1)

	stats := Stats{PeakEntries: 3 * width}
	tmp := c.New()
	for n := 1; n <= target; n++ {
		curr[0] = nil
		hi := n / 2
		for k := 1; k < width; k++ {
			if k > hi {
				curr[k] = nil
				continue
			}
			v := curr[k]
			if v == nil {
				v = c.New()
			}
			v.SetInt64(0)
			if prev1[k] != nil {
				tmp.SetInt64(int64(k))
				v.Add(v, tmp.Mul(tmp, prev1[k]))
			}
			if prev2[k-1] != nil {
				tmp.SetInt64(int64(n - 1))
				v.Add(v, tmp.Mul(tmp, prev2[k-1]))
			}
			curr[k] = v
			stats.States++
		}
		prev2, prev1, curr = prev1, curr, prev2
		stats.Rows++
	}

	o.Logger.Debug("stirling bottom-up complete",
		zap.Int("n", target), zap.Int("rows", stats.Rows), zap.Int("states", stats.States))

	return &Row{N: target, ctx: c, vals: prev1}, stats, nil
}
