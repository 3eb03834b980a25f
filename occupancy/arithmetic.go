// SPDX-License-Identifier: MIT

package occupancy

import (
	"math/big"

	"github.com/katalvlaran/strongbirthday/numeric"
)

// Term is one weighted predecessor of a recurrence step.
type Term[V any] struct {
	Weight int
	Value  V
}

// Arithmetic is the value domain the engines run over.
//
// Implementations must return fresh values from Zero, One and Step: the
// engines store them in write-once tables and never copy. Step must treat
// a Term holding the zero V (nil for pointers) as the value 0; the engines
// pass structural zeros that way instead of allocating.
type Arithmetic[V any] interface {
	Zero() V
	One() V
	IsZero(v V) bool
	// Clone returns a value equal to v that shares no storage with it.
	Clone(v V) V
	// Step combines the stay, promote and open predecessors of one state
	// of a year with m slots.
	Step(m int, terms [3]Term[V]) V
}

// Counts evaluates T exactly up to the precision of a numeric.Context.
type Counts struct {
	ctx *numeric.Context
}

// NewCounts binds Counts to c.
func NewCounts(c *numeric.Context) Counts {
	return Counts{ctx: c}
}

// Zero returns 0 at the context precision.
func (a Counts) Zero() *big.Float { return a.ctx.New() }

// One returns 1 at the context precision.
func (a Counts) One() *big.Float { return a.ctx.FromInt(1) }

// IsZero reports v == 0.
func (a Counts) IsZero(v *big.Float) bool { return v == nil || v.Sign() == 0 }

// Clone returns a fresh copy of v; nil clones to 0.
func (a Counts) Clone(v *big.Float) *big.Float {
	if v == nil {
		return a.ctx.New()
	}
	return a.ctx.New().Set(v)
}

// Step returns Σ weight·value.
func (a Counts) Step(_ int, terms [3]Term[*big.Float]) *big.Float {
	sum := a.ctx.New()
	tmp := a.ctx.New()
	for _, t := range terms {
		if t.Weight == 0 || a.IsZero(t.Value) {
			continue
		}
		tmp.SetInt64(int64(t.Weight))
		tmp.Mul(tmp, t.Value)
		sum.Add(sum, tmp)
	}
	return sum
}

// Probabilities evaluates P = T/m^n in float64, applying 1/m at every step
// so no intermediate grows past 1. Rounding compounds with n; see
// sbp.FloatTolerance for the documented bound.
type Probabilities struct{}

// Zero returns 0.
func (Probabilities) Zero() float64 { return 0 }

// One returns 1.
func (Probabilities) One() float64 { return 1 }

// IsZero reports v == 0.
func (Probabilities) IsZero(v float64) bool { return v == 0 }

// Clone returns v.
func (Probabilities) Clone(v float64) float64 { return v }

// Step returns (1/m)·Σ weight·value.
func (Probabilities) Step(m int, terms [3]Term[float64]) float64 {
	inv := 1.0 / float64(m)
	var sum float64
	for _, t := range terms {
		sum += float64(t.Weight) * t.Value
	}
	return inv * sum
}
