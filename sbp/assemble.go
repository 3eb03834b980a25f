// SPDX-License-Identifier: MIT

package sbp

import (
	"fmt"
	"math/big"
)

// sumStrong folds T(j,0,n,m) (or P) over j = 0..min(⌊n/2⌋, m): every
// occupied day holds at least two people and none holds exactly one.
//
// The sum starts at j = 0 so that prob(m,0) = T(0,0,0,m) = 1; for n ≥ 1
// the j = 0 term is a structural zero.
func sumStrong[V any](acc V, m, n int, value func(j int) (V, error), add func(V, V) V) (V, error) {
	for j := 0; j <= min(n/2, m); j++ {
		v, err := value(j)
		if err != nil {
			return acc, err
		}
		acc = add(acc, v)
	}
	return acc, nil
}

func addBig(acc, v *big.Float) *big.Float { return acc.Add(acc, v) }

func addFloat(acc, v float64) float64 { return acc + v }

// stirlingSum returns Σ_k C(m,k)·k!·S(n,k) for k = 0..min(⌊n/2⌋, m).
// C(m,k)·k! is the falling factorial m(m-1)…(m-k+1), grown one factor per
// k on exact integers and rounded once per term.
func (s *Solver) stirlingSum(m, n int, value func(k int) (*big.Float, error)) (*big.Float, error) {
	sum := s.ctx.New()
	falling := big.NewInt(1)
	for k := 0; k <= min(n/2, m); k++ {
		if k > 0 {
			falling.Mul(falling, big.NewInt(int64(m-k+1)))
		}
		v, err := value(k)
		if err != nil {
			return nil, err
		}
		if v.Sign() == 0 {
			continue
		}
		term := s.ctx.FromBigInt(falling)
		sum.Add(sum, term.Mul(term, v))
	}
	return sum, nil
}

// normalize divides a count by m^n.
func (s *Solver) normalize(count *big.Float, m, n int) (*big.Float, error) {
	total, err := s.ctx.PowInt(int64(m), int64(n))
	if err != nil {
		return nil, fmt.Errorf("sbp: m^n: %w", err)
	}
	return s.ctx.Quo(count, total)
}
