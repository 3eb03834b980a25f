// SPDX-License-Identifier: MIT

package occupancy

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Sentinel errors returned by the occupancy engines.
var (
	// ErrInvalidArgument indicates m < 1 or a negative target n.
	ErrInvalidArgument = errors.New("occupancy: invalid argument")

	// ErrResourceExhausted indicates that a memo table, work list or layer
	// outgrew the configured limit. Nothing is truncated; the caller must
	// pick a smaller case, another mode or higher limits.
	ErrResourceExhausted = errors.New("occupancy: resource exhausted")
)

// Key identifies one T (or P) state. Keys are comparable and used directly
// as map keys.
type Key struct {
	J, K, N, M int
}

// Valid reports whether the state can be non-zero.
func (key Key) Valid() bool {
	return key.J >= 0 && key.K >= 0 && key.N >= 2*key.J+key.K && key.M >= key.J+key.K
}

// base reports whether key is the empty assignment T(0,0,0,m).
func (key Key) base() bool {
	return key.J == 0 && key.K == 0 && key.N == 0
}

// predecessors returns the three states feeding key with their weights,
// in recurrence order: stay, promote, open.
func (key Key) predecessors() [3]edge {
	return [3]edge{
		{weight: key.J, from: Key{key.J, key.K, key.N - 1, key.M}},
		{weight: key.K + 1, from: Key{key.J - 1, key.K + 1, key.N - 1, key.M}},
		{weight: key.M - key.J - key.K + 1, from: Key{key.J, key.K - 1, key.N - 1, key.M}},
	}
}

type edge struct {
	weight int
	from   Key
}

// LayerMode selects the storage of a bottom-up layer.
//
//   - LayerAuto   - dense when ValidCells(m,n) fits DenseCellLimit, sparse otherwise.
//   - LayerDense  - two preallocated jagged grids, swapped each step. Row j
//     holds k ≤ min(n-2j, m-j), so only valid pairs are allocated; early
//     layers leave most of the grid unset.
//   - LayerSparse - maps holding only the non-zero entries of the current layer.
type LayerMode int

const (
	// LayerAuto picks dense or sparse from the target size.
	LayerAuto LayerMode = iota

	// LayerDense keeps a grid of every valid pair of the target layer.
	LayerDense

	// LayerSparse keeps only non-zero entries per layer.
	LayerSparse
)

// String returns the lower-case mode name.
func (mode LayerMode) String() string {
	switch mode {
	case LayerAuto:
		return "auto"
	case LayerDense:
		return "dense"
	case LayerSparse:
		return "sparse"
	default:
		return "unknown"
	}
}

// ParseLayerMode maps "auto", "dense" or "sparse" (any case) to a LayerMode.
func ParseLayerMode(name string) (LayerMode, error) {
	for _, mode := range []LayerMode{LayerAuto, LayerDense, LayerSparse} {
		if strings.EqualFold(strings.TrimSpace(name), mode.String()) {
			return mode, nil
		}
	}
	return LayerAuto, fmt.Errorf("%w: layer mode %q", ErrInvalidArgument, name)
}

// Defaults.
const (
	// DefaultDenseCellLimit is the largest ValidCells LayerAuto allocates densely.
	DefaultDenseCellLimit = 1 << 16

	// DefaultMaxStates bounds a Memo table.
	DefaultMaxStates = 50_000_000

	// DefaultMaxStack bounds the explicit work list of a Memo.
	DefaultMaxStack = 10_000_000

	// DefaultMaxLayerEntries bounds a single bottom-up layer.
	DefaultMaxLayerEntries = 50_000_000
)

// Options configures both execution modes. Limits ≤ 0 disable the check.
type Options struct {
	LayerMode       LayerMode   // bottom-up storage; LayerAuto by default
	DenseCellLimit  int         // LayerAuto threshold in valid cells
	MaxStates       int         // Memo table entries
	MaxStack        int         // Memo work-list frames
	MaxLayerEntries int         // entries in one bottom-up layer
	Logger          *zap.Logger // never nil after gatherOptions
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns LayerAuto, the default limits and a no-op logger.
func DefaultOptions() Options {
	return Options{
		LayerMode:       LayerAuto,
		DenseCellLimit:  DefaultDenseCellLimit,
		MaxStates:       DefaultMaxStates,
		MaxStack:        DefaultMaxStack,
		MaxLayerEntries: DefaultMaxLayerEntries,
		Logger:          zap.NewNop(),
	}
}

// WithLayerMode sets the bottom-up storage mode.
func WithLayerMode(mode LayerMode) Option {
	return func(o *Options) { o.LayerMode = mode }
}

// WithDenseCellLimit sets the LayerAuto dense threshold.
func WithDenseCellLimit(cells int) Option {
	return func(o *Options) { o.DenseCellLimit = cells }
}

// WithMaxStates bounds the Memo table.
func WithMaxStates(n int) Option {
	return func(o *Options) { o.MaxStates = n }
}

// WithMaxStack bounds the Memo work list.
func WithMaxStack(n int) Option {
	return func(o *Options) { o.MaxStack = n }
}

// WithMaxLayerEntries bounds a single bottom-up layer.
func WithMaxLayerEntries(n int) Option {
	return func(o *Options) { o.MaxLayerEntries = n }
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
	Mode        LayerMode // effective bottom-up mode; LayerAuto for Memo
	Layers      int       // bottom-up layers computed
	States      int       // states computed (memo entries or layer cells evaluated)
	PeakEntries int       // largest live table or layer
	PeakStack   int       // deepest Memo work list
}
