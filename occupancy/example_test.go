// SPDX-License-Identifier: MIT

package occupancy_test

import (
	"fmt"
	"math/big"

	"github.com/katalvlaran/strongbirthday/numeric"
	"github.com/katalvlaran/strongbirthday/occupancy"
)

// ExampleMemo counts the ways 4 people share 3 days with no singleton day:
// T(1,0,4,3) = 3 (everyone on one day) and T(2,0,4,3) = 18 (two pairs).
func ExampleMemo() {
	c := numeric.MustContext(30)
	memo, err := occupancy.NewMemo[*big.Float](occupancy.NewCounts(c), 3)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	for j := 1; j <= 2; j++ {
		v, _ := memo.Value(j, 0, 4)
		fmt.Printf("T(%d,0,4,3) = %s\n", j, v.Text('f', 0))
	}
	// Output:
	// T(1,0,4,3) = 3
	// T(2,0,4,3) = 18
}

// ExampleBottomUp tabulates the float recurrence P and reads the final layer.
func ExampleBottomUp() {
	layer, stats, err := occupancy.BottomUp[float64](occupancy.Probabilities{}, 2, 4)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	fmt.Printf("P(1,0,4,2)=%.4f P(2,0,4,2)=%.4f layers=%d\n", layer.At(1, 0), layer.At(2, 0), stats.Layers)
	// Output:
	// P(1,0,4,2)=0.1250 P(2,0,4,2)=0.3750 layers=4
}
