// SPDX-License-Identifier: MIT

package occupancy

import (
	"fmt"

	"go.uber.org/zap"
)

// Memo evaluates T (or P) top-down for one m, keeping every computed state
// in a write-once table for the lifetime of the Memo.
//
// A Memo is not safe for concurrent use; each top-level query owns one.
type Memo[V any] struct {
	arith Arithmetic[V]
	m     int
	opts  Options
	table map[Key]V
	stats Stats
}

// frame is one entry of the explicit work list. A frame is expanded once
// its unresolved predecessors have been pushed above it; when it is seen
// again all of them are in the table.
type frame struct {
	key      Key
	expanded bool
}

// NewMemo returns an empty Memo for a year of m slots.
//
// Errors:
//   - ErrInvalidArgument if m < 1.
func NewMemo[V any](arith Arithmetic[V], m int, opts ...Option) (*Memo[V], error) {
	if m < 1 {
		return nil, fmt.Errorf("%w: m=%d", ErrInvalidArgument, m)
	}
	return &Memo[V]{
		arith: arith,
		m:     m,
		opts:  gatherOptions(opts),
		table: make(map[Key]V),
	}, nil
}

// Value returns T(j,k,n,m) (or P for Probabilities). The result is a copy;
// mutating it leaves the table untouched.
//
// Structurally zero states return arith.Zero() without touching the table.
// Other states are computed bottom of the dependency chain first, with the
// chain held on a heap-allocated work list whose depth is bounded by
// Options.MaxStack instead of the goroutine stack.
//
// Errors:
//   - ErrInvalidArgument    if n < 0.
//   - ErrResourceExhausted  if MaxStates or MaxStack is exceeded.
func (t *Memo[V]) Value(j, k, n int) (V, error) {
	var zero V
	if n < 0 {
		return zero, fmt.Errorf("%w: n=%d", ErrInvalidArgument, n)
	}
	root := Key{J: j, K: k, N: n, M: t.m}
	if !root.Valid() {
		return t.arith.Zero(), nil
	}
	if root.base() {
		return t.arith.One(), nil
	}
	if v, ok := t.table[root]; ok {
		return t.arith.Clone(v), nil
	}

	stack := []frame{{key: root}}
	for len(stack) > 0 {
		top := len(stack) - 1
		key := stack[top].key
		if _, done := t.table[key]; done {
			stack = stack[:top]
			continue
		}

		if !stack[top].expanded {
			stack[top].expanded = true
			for _, e := range key.predecessors() {
				if e.weight == 0 {
					continue
				}
				if _, ok := t.resolve(e.from); !ok {
					stack = append(stack, frame{key: e.from})
				}
			}
			if len(stack) > t.stats.PeakStack {
				t.stats.PeakStack = len(stack)
			}
			if t.opts.MaxStack > 0 && len(stack) > t.opts.MaxStack {
				return zero, t.exhausted("work list", len(stack), t.opts.MaxStack)
			}
			continue
		}

		var terms [3]Term[V]
		for i, e := range key.predecessors() {
			if e.weight == 0 {
				continue
			}
			v, _ := t.resolve(e.from)
			terms[i] = Term[V]{Weight: e.weight, Value: v}
		}
		if t.opts.MaxStates > 0 && len(t.table) >= t.opts.MaxStates {
			return zero, t.exhausted("memo table", len(t.table)+1, t.opts.MaxStates)
		}
		t.table[key] = t.arith.Step(t.m, terms)
		stack = stack[:top]
	}

	t.stats.States = len(t.table)
	t.stats.PeakEntries = len(t.table)
	t.opts.Logger.Debug("occupancy memo query complete",
		zap.Int("j", j), zap.Int("k", k), zap.Int("n", n), zap.Int("m", t.m),
		zap.Int("states", t.stats.States), zap.Int("peak_stack", t.stats.PeakStack))

	return t.arith.Clone(t.table[root]), nil
}

// resolve returns the value of key when no computation is needed: a
// structural zero (the zero V, treated as 0 by every Arithmetic), the base
// state, or a table hit.
func (t *Memo[V]) resolve(key Key) (V, bool) {
	var zero V
	if !key.Valid() {
		return zero, true
	}
	if key.base() {
		return t.arith.One(), true
	}
	v, ok := t.table[key]
	return v, ok
}

// Contains reports whether (j,k,n) has been computed and stored.
// Structural zeros and the base state are never stored.
func (t *Memo[V]) Contains(j, k, n int) bool {
	_, ok := t.table[Key{J: j, K: k, N: n, M: t.m}]
	return ok
}

// Len returns the number of stored states.
func (t *Memo[V]) Len() int { return len(t.table) }

// Stats returns the resources consumed so far.
func (t *Memo[V]) Stats() Stats { return t.stats }

func (t *Memo[V]) exhausted(what string, got, limit int) error {
	t.opts.Logger.Warn("occupancy memo resource limit reached",
		zap.String("resource", what), zap.Int("size", got), zap.Int("limit", limit), zap.Int("m", t.m))
	return fmt.Errorf("%w: %s reached %d entries (limit %d)", ErrResourceExhausted, what, got, limit)
}
