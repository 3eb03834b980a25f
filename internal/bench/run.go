// SPDX-License-Identifier: MIT

package bench

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/strongbirthday/direct"
	"github.com/katalvlaran/strongbirthday/internal/results"
	"github.com/katalvlaran/strongbirthday/numeric"
	"github.com/katalvlaran/strongbirthday/sbp"
)

// Sentinel errors aggregated into the error Run returns.
var (
	// ErrJobFailed wraps one strategy failing on one case.
	ErrJobFailed = errors.New("bench: job failed")

	// ErrDisagreement wraps two strategies disagreeing on one case.
	ErrDisagreement = errors.New("bench: strategies disagree")
)

// job is one (case, strategy) pair.
type job struct {
	c        Case
	strategy sbp.Strategy
}

// Run executes the configured benchmark and writes the report to out.
//
// Job failures and disagreements do not stop the run: every job is
// reported, and the returned error combines all of them. Only setup errors
// and context cancellation abort early.
func Run(ctx context.Context, cfg Config, out io.Writer, logger *zap.Logger) error {
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.History {
		return listHistory(ctx, cfg, out)
	}

	p, err := cfg.plan()
	if err != nil {
		return err
	}
	c, err := numeric.NewContext(cfg.Digits)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBadConfig, err)
	}
	solver := sbp.NewSolver(c,
		sbp.WithLayerMode(p.layerMode),
		sbp.WithMaxStates(cfg.MaxStates),
		sbp.WithLogger(logger),
	)
	tbl, err := results.NewTable()
	if err != nil {
		return err
	}

	run := results.Run{ID: uuid.NewString(), StartedAt: time.Now().UTC(), Digits: cfg.Digits}
	logger = logger.With(zap.String("run_id", run.ID))
	jobs := schedule(p, logger)
	logger.Info("benchmark started",
		zap.Int("jobs", len(jobs)), zap.Uint("digits", cfg.Digits), zap.Int("parallel", cfg.Parallel))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Parallel)
	for _, jb := range jobs {
		jb := jb // per-iteration copy; module targets go 1.21 loop semantics
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec := execute(solver, run.ID, jb)
			if rec.Failed() {
				logger.Warn("job failed",
					zap.Stringer("strategy", jb.strategy), zap.Stringer("case", jb.c), zap.String("error", rec.Err))
			} else {
				logger.Debug("job done",
					zap.Stringer("strategy", jb.strategy), zap.Stringer("case", jb.c), zap.Duration("elapsed", rec.Elapsed))
			}
			return tbl.Insert(rec)
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("bench: run %s: %w", run.ID, err)
	}

	errs := check(c, tbl, p.cases)
	if err := writeReport(out, c, tbl, p, cfg.DisplayDigits, run); err != nil {
		return multierr.Append(errs, err)
	}

	if cfg.DBPath != "" {
		all, err := tbl.All()
		if err == nil {
			err = persist(ctx, cfg.DBPath, run, all)
		}
		if err != nil {
			return multierr.Append(errs, err)
		}
		logger.Info("run persisted", zap.String("db", cfg.DBPath), zap.Int("records", len(all)))
	}

	logger.Info("benchmark finished",
		zap.Duration("elapsed", time.Since(run.StartedAt)), zap.Int("problems", len(multierr.Errors(errs))))
	return errs
}

// schedule expands cases × strategies. Only the direct formula accepts
// k ≠ 0; the other strategies skip those cases.
func schedule(p plan, logger *zap.Logger) []job {
	var jobs []job
	for _, c := range p.cases {
		for _, s := range p.strategies {
			if c.K != 0 && s != sbp.Direct {
				logger.Debug("strategy skipped: k must be 0", zap.Stringer("strategy", s), zap.Stringer("case", c))
				continue
			}
			jobs = append(jobs, job{c: c, strategy: s})
		}
	}
	return jobs
}

// execute runs one job and turns its outcome into a Record.
func execute(solver *sbp.Solver, runID string, jb job) *results.Record {
	rec := &results.Record{
		ID:       results.RecordID(runID, jb.strategy.String(), jb.c.M, jb.c.N, jb.c.K),
		RunID:    runID,
		Strategy: jb.strategy.String(),
		M:        jb.c.M,
		N:        jb.c.N,
		K:        jb.c.K,
	}

	start := time.Now()
	var (
		res sbp.Result
		err error
	)
	if jb.c.K != 0 {
		res, err = directK(solver.Context(), jb.c)
	} else {
		res, err = solver.Probability(jb.strategy, jb.c.M, jb.c.N)
	}
	rec.Elapsed = time.Since(start)
	if err != nil {
		rec.Err = err.Error()
		return rec
	}

	rec.Value = res.Value
	rec.Float = res.Float
	rec.Text = numeric.Text(res.Value, int(solver.Context().Digits()))
	rec.Digest = results.Digest(rec.Text)
	rec.LayerMode = res.Stats.LayerMode
	rec.States = res.Stats.States
	rec.PeakEntries = res.Stats.PeakEntries
	rec.PeakStack = res.Stats.PeakStack
	return rec
}

// directK evaluates the general-k direct formula outside the Solver, which
// only serves the k = 0 strong probability.
func directK(c *numeric.Context, cs Case) (sbp.Result, error) {
	v, err := direct.Probability(c, cs.M, cs.N, cs.K)
	if err != nil {
		return sbp.Result{}, err
	}
	f, _ := v.Float64()
	return sbp.Result{Strategy: sbp.Direct, M: cs.M, N: cs.N, Value: v, Float: f}, nil
}

// check compares every successful record of a case against its reference:
// the direct record if present, otherwise the first exact one.
func check(c *numeric.Context, tbl *results.Table, cases []Case) error {
	var errs error
	for _, cs := range cases {
		recs, err := tbl.ForCase(cs.M, cs.N, cs.K)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		for _, r := range recs {
			if r.Failed() {
				errs = multierr.Append(errs, fmt.Errorf("%w: %s on %s: %s", ErrJobFailed, r.Strategy, cs, r.Err))
			}
		}

		ref := reference(recs)
		if ref == nil {
			continue
		}
		refRes := asResult(ref)
		for _, r := range recs {
			if r == ref || r.Failed() {
				continue
			}
			if !sbp.Agree(c, refRes, asResult(r)) {
				errs = multierr.Append(errs, fmt.Errorf("%w: %s vs %s on %s: %s vs %s",
					ErrDisagreement, ref.Strategy, r.Strategy, cs,
					numeric.Text(ref.Value, 30), numeric.Text(r.Value, 30)))
			}
		}
	}
	return errs
}

func reference(recs []*results.Record) *results.Record {
	var ref *results.Record
	for _, r := range recs {
		if r.Failed() {
			continue
		}
		s, err := sbp.ParseStrategy(r.Strategy)
		if err != nil || !s.Exact() {
			continue
		}
		if s == sbp.Direct {
			return r
		}
		if ref == nil {
			ref = r
		}
	}
	return ref
}

func asResult(r *results.Record) sbp.Result {
	s, _ := sbp.ParseStrategy(r.Strategy)
	v := r.Value
	if v == nil {
		v = new(big.Float)
	}
	return sbp.Result{Strategy: s, M: r.M, N: r.N, Value: v, Float: r.Float}
}

func persist(ctx context.Context, path string, run results.Run, recs []*results.Record) (err error) {
	store, err := results.OpenSQLite(path)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, store.Close()) }()
	return store.Save(ctx, run, recs)
}
