// SPDX-License-Identifier: MIT

package sbp_test

import (
	"os"
	"testing"

	"github.com/katalvlaran/strongbirthday/numeric"
	"github.com/katalvlaran/strongbirthday/sbp"
)

func benchmarkStrategy(b *testing.B, strategy sbp.Strategy, m, n int) {
	if n >= 600 && os.Getenv("SBP_LONG") != "1" {
		b.Skip("set SBP_LONG=1 for the large benchmark cases")
	}
	s := sbp.NewSolver(numeric.MustContext(numeric.DefaultDigits))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Probability(strategy, m, n); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkProbability_M10_N41(b *testing.B) {
	for _, strategy := range sbp.Strategies() {
		b.Run(strategy.String(), func(b *testing.B) { benchmarkStrategy(b, strategy, 10, 41) })
	}
}

func BenchmarkProbability_M50_N304(b *testing.B) {
	for _, strategy := range sbp.Strategies() {
		b.Run(strategy.String(), func(b *testing.B) { benchmarkStrategy(b, strategy, 50, 304) })
	}
}

func BenchmarkProbability_M100_N1410(b *testing.B) {
	for _, strategy := range sbp.Strategies() {
		b.Run(strategy.String(), func(b *testing.B) { benchmarkStrategy(b, strategy, 100, 1410) })
	}
}
