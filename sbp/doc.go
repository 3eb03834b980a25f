// SPDX-License-Identifier: MIT

// Package sbp assembles the Strong Birthday probability from the engines in
// direct, occupancy and stirling, and exposes them as interchangeable
// strategies behind one ProbabilityFunc signature.
//
// prob(m,n) is the probability that, with n people assigned uniformly to m
// days, no day holds exactly one of them.
//
// 🚀 Strategies:
//
//	Direct             - inclusion–exclusion sum, no table
//	OccupancyTopDown   - Σ_j T(j,0,n,m) / m^n, memo + explicit work list
//	OccupancyBottomUp  - same sum over the final rolling layer
//	StirlingTopDown    - Σ_k m(m-1)…(m-k+1)·S(n,k) / m^n, memo
//	StirlingBottomUp   - same sum over the final three-slot window row
//	FloatTopDown       - Σ_j P(j,0,n,m) in float64, memo
//	FloatBottomUp      - Σ_j P(j,0,n,m) in float64, rolling layer
//
// The five exact strategies agree to ExactTolerance(c, n); the float
// strategies agree with them to FloatTolerance(n). Both are relative bounds
// that grow with n.
//
// Every call starts cold: a Solver holds configuration only, and each
// Probability call owns fresh engine tables.
//
// Quick start:
//
//	c := numeric.MustContext(numeric.DefaultDigits)
//	s := sbp.NewSolver(c)
//	res, err := s.Probability(sbp.StirlingBottomUp, 365, 3064)
package sbp
