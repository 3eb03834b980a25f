// SPDX-License-Identifier: MIT

package sbp_test

import (
	"fmt"

	"github.com/katalvlaran/strongbirthday/numeric"
	"github.com/katalvlaran/strongbirthday/sbp"
)

// ExampleSolver_Probability evaluates prob(2,4) with every strategy: of the
// 16 ways four people fall on two days, 2 put everyone on one day and 6
// split them two and two.
func ExampleSolver_Probability() {
	s := sbp.NewSolver(numeric.MustContext(30))
	for _, strategy := range sbp.Strategies() {
		res, err := s.Probability(strategy, 2, 4)
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Printf("%-18s %s\n", strategy, numeric.Text(res.Value, 10))
	}
	// Output:
	// direct             0.5
	// occupancy-topdown  0.5
	// occupancy-bottomup 0.5
	// stirling-topdown   0.5
	// stirling-bottomup  0.5
	// float-topdown      0.5
	// float-bottomup     0.5
}

// ExampleSolver_Func plugs strategies into code that only knows the shared
// signature.
func ExampleSolver_Func() {
	s := sbp.NewSolver(numeric.MustContext(50))
	run := func(f sbp.ProbabilityFunc) string {
		res, _ := f(3, 4)
		return numeric.Text(res.Value, 6)
	}
	fmt.Println(run(s.Func(sbp.OccupancyTopDown)), run(s.Func(sbp.StirlingBottomUp)))
	// Output:
	// 0.259259 0.259259
}
