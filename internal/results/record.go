// SPDX-License-Identifier: MIT

// Package results keeps the records a benchmark run produces: an in-memory
// table indexed by case and strategy for the agreement check, and an
// optional SQLite history of past runs.
package results

import (
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Record is the outcome of one (strategy, case) job.
type Record struct {
	ID       string // RunID/strategy/m:n:k
	RunID    string
	Strategy string
	M, N, K  int

	// Value is nil when Err is set.
	Value *big.Float
	// Text is Value at full context precision; it is what gets persisted.
	Text  string
	Float float64

	Elapsed     time.Duration
	LayerMode   string
	States      int
	PeakEntries int
	PeakStack   int

	// Digest is xxhash64 of Text, stable across runs at equal precision.
	Digest uint64
	Err    string
}

// RecordID builds the unique key of a record.
func RecordID(runID, strategy string, m, n, k int) string {
	return fmt.Sprintf("%s/%s/%d:%d:%d", runID, strategy, m, n, k)
}

// Digest hashes a rendered probability.
func Digest(text string) uint64 {
	return xxhash.Sum64String(text)
}

// DigestHex renders a digest the way it is stored.
func DigestHex(d uint64) string {
	return strconv.FormatUint(d, 16)
}

// Failed reports whether the job ended in an error.
func (r *Record) Failed() bool { return r.Err != "" }
