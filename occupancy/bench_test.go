// SPDX-License-Identifier: MIT

package occupancy_test

import (
	"math/big"
	"testing"

	"github.com/katalvlaran/strongbirthday/numeric"
	"github.com/katalvlaran/strongbirthday/occupancy"
)

// benchmarkBottomUp runs the exact tabulation for (m, n) in the given mode.
func benchmarkBottomUp(b *testing.B, m, n int, mode occupancy.LayerMode) {
	c := numeric.MustContext(numeric.DefaultDigits)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := occupancy.BottomUp[*big.Float](occupancy.NewCounts(c), m, n, occupancy.WithLayerMode(mode)); err != nil {
			b.Fatalf("BottomUp failed: %v", err)
		}
	}
}

// BenchmarkBottomUp_Dense_10_41 measures the dense rolling grid.
func BenchmarkBottomUp_Dense_10_41(b *testing.B) {
	benchmarkBottomUp(b, 10, 41, occupancy.LayerDense)
}

// BenchmarkBottomUp_Sparse_10_41 measures the sparse rolling map on the same case.
func BenchmarkBottomUp_Sparse_10_41(b *testing.B) {
	benchmarkBottomUp(b, 10, 41, occupancy.LayerSparse)
}

// BenchmarkMemo_10_41 measures the top-down work list with a fresh table per query.
func BenchmarkMemo_10_41(b *testing.B) {
	c := numeric.MustContext(numeric.DefaultDigits)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		memo, err := occupancy.NewMemo[*big.Float](occupancy.NewCounts(c), 10)
		if err != nil {
			b.Fatalf("NewMemo failed: %v", err)
		}
		for j := 0; j <= 20; j++ {
			if _, err := memo.Value(j, 0, 41); err != nil {
				b.Fatalf("Value failed: %v", err)
			}
		}
	}
}

// BenchmarkFloat_100_1410 measures the float recurrence on the largest benchmark case.
func BenchmarkFloat_100_1410(b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := occupancy.BottomUp[float64](occupancy.Probabilities{}, 100, 1410); err != nil {
			b.Fatalf("BottomUp failed: %v", err)
		}
	}
}
