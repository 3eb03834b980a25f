// SPDX-License-Identifier: MIT

package sbp

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/strongbirthday/direct"
	"github.com/katalvlaran/strongbirthday/numeric"
	"github.com/katalvlaran/strongbirthday/occupancy"
	"github.com/katalvlaran/strongbirthday/stirling"
)

// Solver evaluates prob(m,n) with any Strategy at one precision.
// It holds configuration only and is safe for concurrent use.
type Solver struct {
	ctx  *numeric.Context
	opts Options
}

// NewSolver binds a Solver to c.
func NewSolver(c *numeric.Context, opts ...Option) *Solver {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Solver{ctx: c, opts: o}
}

// Context returns the precision context the Solver computes at.
func (s *Solver) Context() *numeric.Context { return s.ctx }

// Func returns strategy as a ProbabilityFunc. An unknown strategy yields a
// function that always fails with ErrUnknownStrategy.
func (s *Solver) Func(strategy Strategy) ProbabilityFunc {
	return func(m, n int) (Result, error) {
		return s.Probability(strategy, m, n)
	}
}

// Probability evaluates prob(m,n) with strategy.
//
// Contracts:
//   - m ≥ 1, n ≥ 0.
//
// Errors:
//   - ErrInvalidArgument   on bad m or n.
//   - ErrUnknownStrategy   on a strategy outside the enum.
//   - ErrResourceExhausted when an engine limit trips.
func (s *Solver) Probability(strategy Strategy, m, n int) (Result, error) {
	if m < 1 || n < 0 {
		return Result{}, fmt.Errorf("%w: m=%d n=%d", ErrInvalidArgument, m, n)
	}

	start := time.Now()
	var (
		res Result
		err error
	)
	switch strategy {
	case Direct:
		res, err = s.direct(m, n)
	case OccupancyTopDown:
		res, err = s.occupancyTopDown(m, n)
	case OccupancyBottomUp:
		res, err = s.occupancyBottomUp(m, n)
	case StirlingTopDown:
		res, err = s.stirlingTopDown(m, n)
	case StirlingBottomUp:
		res, err = s.stirlingBottomUp(m, n)
	case FloatTopDown:
		res, err = s.floatTopDown(m, n)
	case FloatBottomUp:
		res, err = s.floatBottomUp(m, n)
	default:
		return Result{}, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(strategy))
	}
	if err != nil {
		s.opts.Logger.Warn("probability failed",
			zap.Stringer("strategy", strategy), zap.Int("m", m), zap.Int("n", n), zap.Error(err))
		return Result{}, rewrap(err)
	}

	res.Strategy, res.M, res.N = strategy, m, n
	if res.Value == nil {
		res.Value = s.ctx.FromFloat64(res.Float)
	} else {
		res.Float, _ = res.Value.Float64()
	}
	s.opts.Logger.Debug("probability computed",
		zap.Stringer("strategy", strategy), zap.Int("m", m), zap.Int("n", n),
		zap.Float64("p", res.Float), zap.Duration("elapsed", time.Since(start)))

	return res, nil
}

// rewrap maps engine sentinels onto the sbp ones. The engine error stays in
// the chain for errors.Is.
func rewrap(err error) error {
	switch {
	case errors.Is(err, occupancy.ErrResourceExhausted),
		errors.Is(err, stirling.ErrResourceExhausted):
		return fmt.Errorf("%w: %w", ErrResourceExhausted, err)
	case errors.Is(err, occupancy.ErrInvalidArgument),
		errors.Is(err, stirling.ErrInvalidArgument),
		errors.Is(err, direct.ErrInvalidArgument):
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return err
}

func (s *Solver) occupancyOptions() []occupancy.Option {
	return []occupancy.Option{
		occupancy.WithLayerMode(s.opts.LayerMode),
		occupancy.WithDenseCellLimit(s.opts.DenseCellLimit),
		occupancy.WithMaxStates(s.opts.MaxStates),
		occupancy.WithMaxStack(s.opts.MaxStack),
		occupancy.WithMaxLayerEntries(s.opts.MaxLayerEntries),
		occupancy.WithLogger(s.opts.Logger),
	}
}

func (s *Solver) stirlingOptions() []stirling.Option {
	return []stirling.Option{
		stirling.WithMaxStates(s.opts.MaxStates),
		stirling.WithMaxStack(s.opts.MaxStack),
		stirling.WithLogger(s.opts.Logger),
	}
}

func (s *Solver) direct(m, n int) (Result, error) {
	v, err := direct.Probability(s.ctx, m, n, 0)
	if err != nil {
		return Result{}, err
	}
	return Result{Value: v}, nil
}

func (s *Solver) occupancyTopDown(m, n int) (Result, error) {
	memo, err := occupancy.NewMemo[*big.Float](occupancy.NewCounts(s.ctx), m, s.occupancyOptions()...)
	if err != nil {
		return Result{}, err
	}
	count, err := sumStrong(s.ctx.New(), m, n, func(j int) (*big.Float, error) {
		return memo.Value(j, 0, n)
	}, addBig)
	if err != nil {
		return Result{}, err
	}
	v, err := s.normalize(count, m, n)
	if err != nil {
		return Result{}, err
	}
	return Result{Value: v, Stats: occupancyStats(memo.Stats(), false)}, nil
}

func (s *Solver) occupancyBottomUp(m, n int) (Result, error) {
	layer, stats, err := occupancy.BottomUp[*big.Float](occupancy.NewCounts(s.ctx), m, n, s.occupancyOptions()...)
	if err != nil {
		return Result{}, err
	}
	count, _ := sumStrong(s.ctx.New(), m, n, func(j int) (*big.Float, error) {
		return layer.At(j, 0), nil
	}, addBig)
	v, err := s.normalize(count, m, n)
	if err != nil {
		return Result{}, err
	}
	return Result{Value: v, Stats: occupancyStats(stats, true)}, nil
}

func (s *Solver) stirlingTopDown(m, n int) (Result, error) {
	memo := stirling.NewMemo(s.ctx, s.stirlingOptions()...)
	count, err := s.stirlingSum(m, n, func(k int) (*big.Float, error) {
		return memo.Value(n, k)
	})
	if err != nil {
		return Result{}, err
	}
	v, err := s.normalize(count, m, n)
	if err != nil {
		return Result{}, err
	}
	return Result{Value: v, Stats: stirlingStats(memo.Stats())}, nil
}

func (s *Solver) stirlingBottomUp(m, n int) (Result, error) {
	row, stats, err := stirling.BottomUp(s.ctx, n, s.stirlingOptions()...)
	if err != nil {
		return Result{}, err
	}
	count, _ := s.stirlingSum(m, n, func(k int) (*big.Float, error) {
		return row.At(k), nil
	})
	v, err := s.normalize(count, m, n)
	if err != nil {
		return Result{}, err
	}
	return Result{Value: v, Stats: stirlingStats(stats)}, nil
}

func (s *Solver) floatTopDown(m, n int) (Result, error) {
	memo, err := occupancy.NewMemo[float64](occupancy.Probabilities{}, m, s.occupancyOptions()...)
	if err != nil {
		return Result{}, err
	}
	p, err := sumStrong(0.0, m, n, func(j int) (float64, error) {
		return memo.Value(j, 0, n)
	}, addFloat)
	if err != nil {
		return Result{}, err
	}
	return Result{Float: p, Stats: occupancyStats(memo.Stats(), false)}, nil
}

func (s *Solver) floatBottomUp(m, n int) (Result, error) {
	layer, stats, err := occupancy.BottomUp[float64](occupancy.Probabilities{}, m, n, s.occupancyOptions()...)
	if err != nil {
		return Result{}, err
	}
	p, _ := sumStrong(0.0, m, n, func(j int) (float64, error) {
		return layer.At(j, 0), nil
	}, addFloat)
	return Result{Float: p, Stats: occupancyStats(stats, true)}, nil
}

func occupancyStats(st occupancy.Stats, bottomUp bool) Stats {
	out := Stats{Layers: st.Layers, States: st.States, PeakEntries: st.PeakEntries, PeakStack: st.PeakStack}
	if bottomUp {
		out.LayerMode = st.Mode.String()
	}
	return out
}

func stirlingStats(st stirling.Stats) Stats {
	return Stats{Layers: st.Rows, States: st.States, PeakEntries: st.PeakEntries, PeakStack: st.PeakStack}
}
