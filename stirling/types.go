// SPDX-License-Identifier: MIT

package stirling

import (
	"errors"

	"go.uber.org/zap"
)

// Sentinel errors returned by the Stirling engines.
var (
	// ErrInvalidArgument indicates a negative target n.
	ErrInvalidArgument = errors.New("stirling: invalid argument")

	// ErrResourceExhausted indicates that the memo table or work list
	// outgrew its limit.
	ErrResourceExhausted = errors.New("stirling: resource exhausted")
)

// Key identifies one S(n,k) state.
type Key struct {
	N, K int
}

// Valid reports whether S(n,k) can be non-zero.
func (key Key) Valid() bool {
	if key.N < 0 || key.K < 0 {
		return false
	}
	if key.N == 0 && key.K > 0 {
		return false
	}
	if key.N > 0 && key.K == 0 {
		return false
	}
	return key.N >= 2*key.K
}

// Defaults.
const (
	// DefaultMaxStates bounds a Memo table.
	DefaultMaxStates = 50_000_000

	// DefaultMaxStack bounds the explicit work list of a Memo.
	DefaultMaxStack = 10_000_000
)

// Options configures the engines. Limits ≤ 0 disable the check.
type Options struct {
	MaxStates int
	MaxStack  int
	Logger    *zap.Logger
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the default limits and a no-op logger.
func DefaultOptions() Options {
	return Options{
		MaxStates: DefaultMaxStates,
		MaxStack:  DefaultMaxStack,
		Logger:    zap.NewNop(),
	}
}

// WithMaxStates bounds the Memo table.
func WithMaxStates(n int) Option {
	return func(o *Options) { o.MaxStates = n }
}

// WithMaxStack bounds the Memo work list.
func WithMaxStack(n int) Option {
	return func(o *Options) { o.MaxStack = n }
}

// WithLogger routes engine diagnostics to logger. A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

func gatherOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Stats reports the resources one evaluation consumed.
type Stats struct {
	Rows        int // bottom-up rows computed
	States      int // states computed
	PeakEntries int // largest live table, or the three-row window
	PeakStack   int // deepest Memo work list
}
