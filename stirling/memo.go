// SPDX-License-Identifier: MIT

package stirling

import (
	"fmt"
	"math/big"

	"go.uber.org/zap"

	"github.com/katalvlaran/strongbirthday/numeric"
)

// Memo evaluates S(n,k) top-down into a write-once table. Since S does not
// depend on m, one Memo can serve every year length at a given precision.
//
// A Memo is not safe for concurrent use.
type Memo struct {
	ctx   *numeric.Context
	opts  Options
	table map[Key]*big.Float
	stats Stats
}

// NewMemo returns an empty Memo computing at the precision of c.
func NewMemo(c *numeric.Context, opts ...Option) *Memo {
	return &Memo{
		ctx:   c,
		opts:  gatherOptions(opts),
		table: make(map[Key]*big.Float),
	}
}

// edge is one weighted predecessor of a state.
type edge struct {
	weight int64
	from   Key
}

// predecessors returns the join edge k·S(n-1,k) and the open edge
// (n-1)·S(n-2,k-1).
func (key Key) predecessors() [2]edge {
	return [2]edge{
		{int64(key.K), Key{N: key.N - 1, K: key.K}},
		{int64(key.N - 1), Key{N: key.N - 2, K: key.K - 1}},
	}
}

// Value returns S(n,k). Structural zeros return 0 without touching the table.
//
// Errors:
//   - ErrInvalidArgument   if n < 0.
//   - ErrResourceExhausted if MaxStates or MaxStack is exceeded.
func (s *Memo) Value(n, k int) (*big.Float, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: n=%d", ErrInvalidArgument, n)
	}
	root := Key{N: n, K: k}
	if v, ok := s.resolve(root); ok {
		return s.copyOf(v), nil
	}

	type frame struct {
		key      Key
		expanded bool
	}
	stack := []frame{{key: root}}
	for len(stack) > 0 {
		top := len(stack) - 1
		key := stack[top].key
		if _, done := s.table[key]; done {
			stack = stack[:top]
			continue
		}

		if !stack[top].expanded {
			stack[top].expanded = true
			for _, e := range key.predecessors() {
				if e.weight == 0 {
					continue
				}
				if _, ok := s.resolve(e.from); !ok {
					stack = append(stack, frame{key: e.from})
				}
			}
			if len(stack) > s.stats.PeakStack {
				s.stats.PeakStack = len(stack)
			}
			if s.opts.MaxStack > 0 && len(stack) > s.opts.MaxStack {
				return nil, s.exhausted("work list", len(stack), s.opts.MaxStack)
			}
			continue
		}

		sum := s.ctx.New()
		for _, e := range key.predecessors() {
			if e.weight == 0 {
				continue
			}
			v, _ := s.resolve(e.from)
			if v == nil {
				continue
			}
			sum.Add(sum, s.ctx.MulInt(v, e.weight))
		}
		if s.opts.MaxStates > 0 && len(s.table) >= s.opts.MaxStates {
			return nil, s.exhausted("memo table", len(s.table)+1, s.opts.MaxStates)
		}
		s.table[key] = sum
		stack = stack[:top]
	}

	s.stats.States = len(s.table)
	s.stats.PeakEntries = len(s.table)
	s.opts.Logger.Debug("stirling memo query complete",
		zap.Int("n", n), zap.Int("k", k),
		zap.Int("states", s.stats.States), zap.Int("peak_stack", s.stats.PeakStack))

	return s.copyOf(s.table[root]), nil
}

// resolve returns the value of key when no computation is needed. Structural
// zeros resolve to nil.
func (s *Memo) resolve(key Key) (*big.Float, bool) {
	if !key.Valid() {
		return nil, true
	}
	if key.N == 0 && key.K == 0 {
		return s.ctx.FromInt(1), true
	}
	v, ok := s.table[key]
	return v, ok
}

// copyOf detaches a result from the table so callers may mutate it.
func (s *Memo) copyOf(v *big.Float) *big.Float {
	out := s.ctx.New()
	if v != nil {
		out.Set(v)
	}
	return out
}

// Contains reports whether S(n,k) has been computed and stored.
func (s *Memo) Contains(n, k int) bool {
	_, ok := s.table[Key{N: n, K: k}]
	return ok
}

// Len returns the number of stored states.
func (s *Memo) Len() int { return len(s.table) }

// Stats returns the resources consumed so far.
func (s *Memo) Stats() Stats { return s.stats }

func (s *Memo) exhausted(what string, got, limit int) error {
	s.opts.Logger.Warn("stirling memo resource limit reached",
		zap.String("resource", what), zap.Int("size", got), zap.Int("limit", limit))
	return fmt.Errorf("%w: %s reached %d entries (limit %d)", ErrResourceExhausted, what, got, limit)
}
