// SPDX-License-Identifier: MIT

package occupancy

import (
	"fmt"

	"go.uber.org/zap"
)

// BottomUp tabulates T (or P) for n = 1..target and returns the target layer.
//
// Algorithm Outline:
//  1. Seed layer 0 with T(0,0,0,m) = 1.
//  2. For layer = 1..target, visit j ≤ min(⌊layer/2⌋, m), k ≤ min(layer, m),
//     skip invalid pairs, and combine the three predecessors read from the
//     previous layer only.
//  3. Store only non-zero results, then swap: the previous layer is cleared
//     and becomes the next write target.
//
// Both layer stores are sized once for the target, so LayerDense allocates
// two jagged grids of ValidCells(m, target) cells for the whole run.
//
// Errors:
//   - ErrInvalidArgument   if m < 1 or target < 0.
//   - ErrResourceExhausted if a layer exceeds MaxLayerEntries.
func BottomUp[V any](arith Arithmetic[V], m, target int, opts ...Option) (*Layer[V], Stats, error) {
	if m < 1 || target < 0 {
		return nil, Stats{}, fmt.Errorf("%w: m=%d n=%d", ErrInvalidArgument, m, target)
	}
	o := gatherOptions(opts)

	mode := resolveMode(o, ValidCells(m, target))
	prev, curr := newStore[V](mode, m, target), newStore[V](mode, m, target)
	prev.put(0, 0, arith.One())

	stats := Stats{Mode: mode, PeakEntries: 1}
	for n := 1; n <= target; n++ {
		curr.reset()
		hiJ, hiK := min(n/2, m), min(n, m)
		for j := 0; j <= hiJ; j++ {
			for k := 0; k <= hiK; k++ {
				key := Key{J: j, K: k, N: n, M: m}
				if !key.Valid() {
					continue
				}

				var terms [3]Term[V]
				found := false
				for i, e := range key.predecessors() {
					if e.weight == 0 {
						continue
					}
					if v, ok := prev.get(e.from.J, e.from.K); ok {
						terms[i] = Term[V]{Weight: e.weight, Value: v}
						found = true
					}
				}
				if !found {
					continue
				}

				v := arith.Step(m, terms)
				stats.States++
				if arith.IsZero(v) {
					continue
				}
				curr.put(j, k, v)
			}
		}

		if size := curr.size(); size > stats.PeakEntries {
			stats.PeakEntries = size
		}
		if o.MaxLayerEntries > 0 && curr.size() > o.MaxLayerEntries {
			o.Logger.Warn("occupancy layer limit reached",
				zap.Int("n", n), zap.Int("entries", curr.size()), zap.Int("limit", o.MaxLayerEntries))
			return nil, stats, fmt.Errorf("%w: layer n=%d holds %d entries (limit %d)",
				ErrResourceExhausted, n, curr.size(), o.MaxLayerEntries)
		}
		prev, curr = curr, prev
		stats.Layers++
	}

	o.Logger.Debug("occupancy bottom-up complete",
		zap.Int("m", m), zap.Int("n", target), zap.Stringer("mode", mode),
		zap.Int("layers", stats.Layers), zap.Int("states", stats.States),
		zap.Int("peak_entries", stats.PeakEntries))

	return &Layer[V]{N: target, M: m, arith: arith, store: prev}, stats, nil
}

// resolveMode turns LayerAuto into a concrete mode for a target layer of
// cells valid pairs.
func resolveMode(o Options, cells int) LayerMode {
	switch o.LayerMode {
	case LayerDense, LayerSparse:
		return o.LayerMode
	}
	if o.DenseCellLimit > 0 && cells <= o.DenseCellLimit {
		return LayerDense
	}
	return LayerSparse
}

func newStore[V any](mode LayerMode, m, target int) layerStore[V] {
	if mode == LayerDense {
		return newDenseStore[V](m, target)
	}
	return newSparseStore[V]()
}
