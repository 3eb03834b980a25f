// SPDX-License-Identifier: MIT

package sbp

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"go.uber.org/zap"

	"github.com/katalvlaran/strongbirthday/occupancy"
)

// Sentinel errors. Engine errors are re-wrapped so that callers can match
// these without importing the engine packages.
var (
	// ErrInvalidArgument indicates m < 1 or n < 0.
	ErrInvalidArgument = errors.New("sbp: invalid argument")

	// ErrResourceExhausted indicates an engine limit was hit.
	ErrResourceExhausted = errors.New("sbp: resource exhausted")

	// ErrUnknownStrategy indicates a Strategy value or name outside the enum.
	ErrUnknownStrategy = errors.New("sbp: unknown strategy")
)

// Strategy selects the algorithm family that evaluates prob(m,n).
type Strategy int

// Strategies, in the order Strategies returns them.
const (
	Direct Strategy = iota
	OccupancyTopDown
	OccupancyBottomUp
	StirlingTopDown
	StirlingBottomUp
	FloatTopDown
	FloatBottomUp
)

var strategyNames = [...]string{
	Direct:            "direct",
	OccupancyTopDown:  "occupancy-topdown",
	OccupancyBottomUp: "occupancy-bottomup",
	StirlingTopDown:   "stirling-topdown",
	StirlingBottomUp:  "stirling-bottomup",
	FloatTopDown:      "float-topdown",
	FloatBottomUp:     "float-bottomup",
}

// String returns the strategy's command-line name.
func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
	return strategyNames[s]
}

// Exact reports whether s computes at the precision of the numeric.Context
// rather than in float64.
func (s Strategy) Exact() bool {
	return s >= Direct && s <= StirlingBottomUp
}

// Strategies returns every strategy in declaration order.
func Strategies() []Strategy {
	out := make([]Strategy, len(strategyNames))
	for i := range out {
		out[i] = Strategy(i)
	}
	return out
}

// ParseStrategy maps a name produced by String back to its Strategy.
// Matching is case-insensitive.
func ParseStrategy(name string) (Strategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range strategyNames {
		if n == name {
			return Strategy(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Stats is the engine-independent view of the resources one call consumed.
// Fields an engine does not track stay zero.
type Stats struct {
	LayerMode   string // "dense" or "sparse" for occupancy bottom-up runs
	Layers      int
	States      int
	PeakEntries int
	PeakStack   int
}

// Result is the outcome of one probability evaluation.
type Result struct {
	Strategy Strategy
	M, N     int
	// Value is the probability at Context precision. Float strategies carry
	// their float64 result converted exactly.
	Value *big.Float
	// Float is Value rounded to float64.
	Float float64
	Stats Stats
}

// ProbabilityFunc is the shared signature of every strategy.
type ProbabilityFunc func(m, n int) (Result, error)

// Options configures a Solver.
type Options struct {
	LayerMode       occupancy.LayerMode
	DenseCellLimit  int
	MaxStates       int
	MaxStack        int
	MaxLayerEntries int
	Logger          *zap.Logger
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions mirrors the engine defaults.
func DefaultOptions() Options {
	return Options{
		LayerMode:       occupancy.LayerAuto,
		DenseCellLimit:  occupancy.DefaultDenseCellLimit,
		MaxStates:       occupancy.DefaultMaxStates,
		MaxStack:        occupancy.DefaultMaxStack,
		MaxLayerEntries: occupancy.DefaultMaxLayerEntries,
		Logger:          zap.NewNop(),
	}
}

// WithLayerMode selects dense or sparse rolling layers for occupancy
// bottom-up strategies.
func WithLayerMode(mode occupancy.LayerMode) Option {
	return func(o *Options) { o.LayerMode = mode }
}

// WithDenseCellLimit sets the grid size up to which LayerAuto picks dense.
func WithDenseCellLimit(n int) Option {
	return func(o *Options) { o.DenseCellLimit = n }
}

// WithMaxStates bounds every memo table.
func WithMaxStates(n int) Option {
	return func(o *Options) { o.MaxStates = n }
}

// WithMaxStack bounds every top-down work list.
func WithMaxStack(n int) Option {
	return func(o *Options) { o.MaxStack = n }
}

// WithMaxLayerEntries bounds each occupancy bottom-up layer.
func WithMaxLayerEntries(n int) Option {
	return func(o *Options) { o.MaxLayerEntries = n }
}

// WithLogger sets the logger handed to the solver and its engines.
// A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}
