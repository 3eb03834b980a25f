// SPDX-License-Identifier: MIT

package occupancy

import "fmt"

// layerStore holds the (j,k) entries of one bottom-up layer.
type layerStore[V any] interface {
	get(j, k int) (V, bool)
	put(j, k int, v V)
	reset()
	size() int
	each(fn func(j, k int, v V) bool)
}

// denseStore is a preallocated jagged grid over the valid pairs of a
// target layer: row j holds k = 0..min(target-2j, m-j). Pairs outside it
// are invalid at every layer ≤ target and read as absent.
type denseStore[V any] struct {
	offsets []int // row j occupies vals[offsets[j]:offsets[j+1]]
	vals    []V
	set     []bool
	count   int
}

func newDenseStore[V any](m, target int) *denseStore[V] {
	maxJ := min(target/2, m)
	offsets := make([]int, maxJ+2)
	for j := 0; j <= maxJ; j++ {
		offsets[j+1] = offsets[j] + rowLen(m, target, j)
	}
	cells := offsets[maxJ+1]
	return &denseStore[V]{
		offsets: offsets,
		vals:    make([]V, cells),
		set:     make([]bool, cells),
	}
}

func rowLen(m, target, j int) int { return min(target-2*j, m-j) + 1 }

// ValidCells returns the number of valid (j,k) pairs of layer n for a year
// of m slots: the cells a LayerDense layer allocates.
func ValidCells(m, n int) int {
	if m < 1 || n < 0 {
		return 0
	}
	cells := 0
	for j := 0; j <= min(n/2, m); j++ {
		cells += rowLen(m, n, j)
	}
	return cells
}

func (s *denseStore[V]) index(j, k int) (int, bool) {
	if j < 0 || k < 0 || j >= len(s.offsets)-1 {
		return 0, false
	}
	i := s.offsets[j] + k
	return i, i < s.offsets[j+1]
}

func (s *denseStore[V]) get(j, k int) (V, bool) {
	i, ok := s.index(j, k)
	if !ok {
		var zero V
		return zero, false
	}
	return s.vals[i], s.set[i]
}

func (s *denseStore[V]) put(j, k int, v V) {
	i, ok := s.index(j, k)
	if !ok {
		panic(fmt.Sprintf("occupancy: dense layer write outside valid pairs (%d,%d)", j, k))
	}
	if !s.set[i] {
		s.count++
	}
	s.vals[i] = v
	s.set[i] = true
}

func (s *denseStore[V]) reset() {
	clear(s.vals)
	clear(s.set)
	s.count = 0
}

func (s *denseStore[V]) size() int { return s.count }

func (s *denseStore[V]) each(fn func(j, k int, v V) bool) {
	for j := 0; j < len(s.offsets)-1; j++ {
		for i := s.offsets[j]; i < s.offsets[j+1]; i++ {
			if s.set[i] && !fn(j, i-s.offsets[j], s.vals[i]) {
				return
			}
		}
	}
}

// cell packs a (j,k) pair into a comparable map key.
type cell struct{ j, k int }

// sparseStore keeps only the entries written to it.
type sparseStore[V any] struct {
	m map[cell]V
}

func newSparseStore[V any]() *sparseStore[V] {
	return &sparseStore[V]{m: make(map[cell]V)}
}

func (s *sparseStore[V]) get(j, k int) (V, bool) {
	v, ok := s.m[cell{j, k}]
	return v, ok
}

func (s *sparseStore[V]) put(j, k int, v V) { s.m[cell{j, k}] = v }

func (s *sparseStore[V]) reset() { clear(s.m) }

func (s *sparseStore[V]) size() int { return len(s.m) }

func (s *sparseStore[V]) each(fn func(j, k int, v V) bool) {
	for c, v := range s.m {
		if !fn(c.j, c.k, v) {
			return
		}
	}
}

// Layer is the final bottom-up layer: every non-zero T(j,k,N,M) (or P).
type Layer[V any] struct {
	N, M  int
	arith Arithmetic[V]
	store layerStore[V]
}

// At returns a copy of the value at (j,k), or arith.Zero() when the entry
// is zero. Mutating the result leaves the layer untouched.
func (l *Layer[V]) At(j, k int) V {
	if v, ok := l.store.get(j, k); ok {
		return l.arith.Clone(v)
	}
	return l.arith.Zero()
}

// Len returns the number of non-zero entries.
func (l *Layer[V]) Len() int { return l.store.size() }

// Range calls fn with a copy of every non-zero entry until fn returns
// false. Dense layers iterate in (j,k) order; sparse layers in map order.
func (l *Layer[V]) Range(fn func(j, k int, v V) bool) {
	l.store.each(func(j, k int, v V) bool { return fn(j, k, l.arith.Clone(v)) })
}
