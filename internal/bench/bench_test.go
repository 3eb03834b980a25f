// SPDX-License-Identifier: MIT

package bench_test

import (
	"bytes"
	"context"
	"flag"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/strongbirthday/internal/bench"
	"github.com/katalvlaran/strongbirthday/internal/results"
	"github.com/katalvlaran/strongbirthday/sbp"
)

func parse(t *testing.T, args ...string) bench.Config {
	t.Helper()
	cfg, err := bench.ParseConfig(flag.NewFlagSet("sbpbench", flag.ContinueOnError), args)
	require.NoError(t, err)
	return cfg
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg := parse(t)
	assert.Equal(t, uint(1000), cfg.Digits)
	assert.Equal(t, 20, cfg.DisplayDigits)
	assert.Equal(t, "all", cfg.Strategies)
	assert.Equal(t, "auto", cfg.LayerMode)
	assert.Equal(t, 1, cfg.Parallel)
	assert.Empty(t, cfg.DBPath)

	cases, err := bench.ParseCases(cfg.Cases)
	require.NoError(t, err)
	assert.Equal(t, bench.DefaultCases(), cases)
}

func TestParseConfig_EnvThenFlags(t *testing.T) {
	t.Setenv("SBP_PRECISION", "200")
	t.Setenv("SBP_PARALLEL", "4")
	t.Setenv("SBP_VERBOSE", "true")

	cfg := parse(t, "-parallel", "2", "-layer-mode", "sparse")
	assert.Equal(t, uint(200), cfg.Digits, "environment applies")
	assert.Equal(t, 2, cfg.Parallel, "flag overrides environment")
	assert.Equal(t, "sparse", cfg.LayerMode)
	assert.True(t, cfg.Verbose)
}

func TestParseConfig_BadEnv(t *testing.T) {
	t.Setenv("SBP_PARALLEL", "many")
	_, err := bench.ParseConfig(flag.NewFlagSet("sbpbench", flag.ContinueOnError), nil)
	assert.Error(t, err)
}

func TestParseCases(t *testing.T) {
	cases, err := bench.ParseCases(" 10:41 , 5:9:2")
	require.NoError(t, err)
	assert.Equal(t, []bench.Case{{M: 10, N: 41}, {M: 5, N: 9, K: 2}}, cases)
	assert.Equal(t, "5:9:2", cases[1].String())

	cases, err = bench.ParseCases("")
	require.NoError(t, err)
	assert.Len(t, cases, 6)

	for _, bad := range []string{"10", "10:x", "1:2:3:4", "0:5", "5:3:4", "5:-1"} {
		_, err := bench.ParseCases(bad)
		assert.ErrorIsf(t, err, bench.ErrBadConfig, "%q", bad)
	}
}

func TestParseStrategies(t *testing.T) {
	all, err := bench.ParseStrategies("all")
	require.NoError(t, err)
	assert.Equal(t, sbp.Strategies(), all)

	some, err := bench.ParseStrategies("direct, float-bottomup")
	require.NoError(t, err)
	assert.Equal(t, []sbp.Strategy{sbp.Direct, sbp.FloatBottomUp}, some)

	_, err = bench.ParseStrategies("direct,guess")
	assert.ErrorIs(t, err, bench.ErrBadConfig)
	assert.ErrorIs(t, err, sbp.ErrUnknownStrategy)
}

func smallConfig(t *testing.T) bench.Config {
	cfg := parse(t, "-digits", "40", "-cases", "2:4,3:4,5:9:2", "-parallel", "3")
	cfg.DBPath = filepath.Join(t.TempDir(), "history.db")
	return cfg
}

func TestRun_ReportAndHistory(t *testing.T) {
	cfg := smallConfig(t)
	core, logs := observer.New(zap.InfoLevel)

	var out bytes.Buffer
	require.NoError(t, bench.Run(context.Background(), cfg, &out, zap.New(core)))

	report := out.String()
	assert.Contains(t, report, "m=2 n=4 k=0")
	assert.Contains(t, report, "m=5 n=9 k=2")
	assert.Contains(t, report, "0.500000000000000000")
	assert.Contains(t, report, "0.25925925925925925926", "prob(3,4) = 21/81 to 20 digits")
	for _, s := range sbp.Strategies() {
		assert.Contains(t, report, s.String())
	}
	assert.Equal(t, 1, strings.Count(report, "m=5 n=9 k=2\n"))
	require.Len(t, logs.FilterMessage("run persisted").All(), 1)

	store, err := results.OpenSQLite(cfg.DBPath)
	require.NoError(t, err)
	runs, err := store.Runs(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 2*len(sbp.Strategies())+1, runs[0].Records, "k≠0 cases run only the direct formula")
	require.NoError(t, store.Close())

	cfg.History = true
	out.Reset()
	require.NoError(t, bench.Run(context.Background(), cfg, &out, nil))
	assert.Contains(t, out.String(), runs[0].ID)
}

func TestRun_CollectsJobFailures(t *testing.T) {
	cfg := parse(t, "-digits", "30", "-cases", "5:9", "-max-states", "3", "-strategies", "direct,occupancy-topdown,stirling-bottomup")

	var out bytes.Buffer
	err := bench.Run(context.Background(), cfg, &out, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, bench.ErrJobFailed)
	assert.NotErrorIs(t, err, bench.ErrDisagreement)
	assert.Len(t, multierr.Errors(err), 1)
	assert.Contains(t, out.String(), "error: sbp: resource exhausted")
	assert.Contains(t, out.String(), "stirling-bottomup", "the other jobs still ran")
}

func TestRun_TinyProbabilityReportsRelativeDeviation(t *testing.T) {
	cfg := parse(t, "-digits", "60", "-cases", "365:300", "-strategies", "direct,stirling-bottomup,float-bottomup")

	var out bytes.Buffer
	require.NoError(t, bench.Run(context.Background(), cfg, &out, nil), "no disagreement at 1.6e-72")

	report := out.String()
	assert.Regexp(t, `deviation\s+rel\s+elapsed`, report)
	assert.Contains(t, report, "1.5866230112")
	assert.Contains(t, report, "0.000000000000000000", "the fixed-point column rounds to zero")
	assert.Contains(t, report, "0.0e+00", "the reference against itself")
}

func TestRun_BadConfig(t *testing.T) {
	for _, args := range [][]string{
		{"-digits", "0"},
		{"-display", "0"},
		{"-parallel", "0"},
		{"-layer-mode", "tiled"},
		{"-strategies", "guess"},
		{"-history"},
	} {
		cfg := parse(t, args...)
		err := bench.Run(context.Background(), cfg, nil, nil)
		assert.ErrorIsf(t, err, bench.ErrBadConfig, "%v", args)
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := parse(t, "-digits", "30", "-cases", "2:4")
	err := bench.Run(ctx, cfg, nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
