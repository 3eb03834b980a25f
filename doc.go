// SPDX-License-Identifier: MIT

// Package strongbirthday computes the Strong Birthday probability: the chance
// that, with n people spread uniformly over m days, no day hosts exactly one
// of them.
//
// 🚀 What is inside?
//
//	Three equivalent counting schemes, each evaluated top-down and bottom-up
//	at a caller-chosen precision, plus a float64 variant for comparison:
//		• Direct formula: one alternating inclusion–exclusion sum
//		• Occupancy recurrence T(j,k,n,m): days holding ≥2 and exactly 1 people
//		• 2-associated Stirling numbers S(n,k): partitions into blocks of ≥2
//		• Normalized recurrence P = T/m^n in float64
//
// ✨ Why several algorithms for one number?
//
//   - Cross-checking: all exact strategies must agree to the working precision
//   - Trade-offs: memo tables vs rolling layers, dense vs sparse storage
//   - Numeric stability: the float strategies show how rounding accumulates
//
// Layout:
//
//	numeric/          - precision Context over math/big (no global precision)
//	direct/           - inclusion–exclusion, including the general k count
//	occupancy/        - T and P engines: Memo (explicit work list), BottomUp (rolling layer)
//	stirling/         - S engine: Memo and a three-row rolling window
//	sbp/              - Strategy enum, Solver, shared ProbabilityFunc, tolerances
//	internal/results/ - in-memory (go-memdb) and SQLite result tables
//	internal/bench/   - benchmark harness: config, runner, agreement check, report
//	cmd/sbpbench/     - harness binary
//
// Quick example:
//
//	c := numeric.MustContext(1000)
//	res, err := sbp.NewSolver(c).Probability(sbp.OccupancyBottomUp, 10, 41)
//
//	go get github.com/katalvlaran/strongbirthday
package strongbirthday
