// SPDX-License-Identifier: MIT

// Package bench runs the fixed benchmark set against every probability
// strategy, checks that they agree, prints a report and optionally records
// the run in a SQLite history.
package bench

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/katalvlaran/strongbirthday/numeric"
	"github.com/katalvlaran/strongbirthday/occupancy"
	"github.com/katalvlaran/strongbirthday/sbp"
)

// ErrBadConfig indicates a configuration value the harness cannot run with.
var ErrBadConfig = errors.New("bench: bad config")

// Config holds harness configuration. Environment variables are read first,
// command-line flags override them.
type Config struct {
	Digits        uint   `env:"SBP_PRECISION"      envDefault:"1000"`
	DisplayDigits int    `env:"SBP_DISPLAY_DIGITS" envDefault:"20"`
	Strategies    string `env:"SBP_STRATEGIES"     envDefault:"all"`
	Cases         string `env:"SBP_CASES"          envDefault:"10:41:0,50:304:0,100:690:0,10:112:0,50:665:0,100:1410:0"`
	LayerMode     string `env:"SBP_LAYER_MODE"     envDefault:"auto"`
	MaxStates     int    `env:"SBP_MAX_STATES"     envDefault:"50000000"`
	Parallel      int    `env:"SBP_PARALLEL"       envDefault:"1"`
	DBPath        string `env:"SBP_DB_PATH"`
	History       bool   `env:"SBP_HISTORY"`
	Verbose       bool   `env:"SBP_VERBOSE"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.UintVar(&cfg.Digits, "digits", cfg.Digits, "significant decimal digits of every exact computation")
	fs.IntVar(&cfg.DisplayDigits, "display", cfg.DisplayDigits, "significant digits printed per probability")
	fs.StringVar(&cfg.Strategies, "strategies", cfg.Strategies, "comma-separated strategy names, or all")
	fs.StringVar(&cfg.Cases, "cases", cfg.Cases, "comma-separated m:n[:k] cases")
	fs.StringVar(&cfg.LayerMode, "layer-mode", cfg.LayerMode, "occupancy bottom-up layers: auto, dense or sparse")
	fs.IntVar(&cfg.MaxStates, "max-states", cfg.MaxStates, "memo table limit per call (0 disables)")
	fs.IntVar(&cfg.Parallel, "parallel", cfg.Parallel, "jobs run at once")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite history file; empty disables persistence")
	fs.BoolVar(&cfg.History, "history", cfg.History, "list the runs stored in -db and exit")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// plan is a validated Config.
type plan struct {
	strategies []sbp.Strategy
	cases      []Case
	layerMode  occupancy.LayerMode
}

func (cfg Config) plan() (plan, error) {
	var p plan
	if cfg.Digits == 0 || cfg.Digits > numeric.MaxDigits {
		return p, fmt.Errorf("%w: digits=%d", ErrBadConfig, cfg.Digits)
	}
	if cfg.DisplayDigits < 1 {
		return p, fmt.Errorf("%w: display=%d", ErrBadConfig, cfg.DisplayDigits)
	}
	if cfg.Parallel < 1 {
		return p, fmt.Errorf("%w: parallel=%d", ErrBadConfig, cfg.Parallel)
	}

	var err error
	if p.strategies, err = ParseStrategies(cfg.Strategies); err != nil {
		return p, err
	}
	if p.cases, err = ParseCases(cfg.Cases); err != nil {
		return p, err
	}
	if p.layerMode, err = occupancy.ParseLayerMode(cfg.LayerMode); err != nil {
		return p, fmt.Errorf("%w: %w", ErrBadConfig, err)
	}
	return p, nil
}

// ParseStrategies parses a comma-separated strategy list; "all" or an empty
// list selects every strategy.
func ParseStrategies(list string) ([]sbp.Strategy, error) {
	list = strings.TrimSpace(list)
	if list == "" || strings.EqualFold(list, "all") {
		return sbp.Strategies(), nil
	}
	var out []sbp.Strategy
	for _, name := range strings.Split(list, ",") {
		s, err := sbp.ParseStrategy(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadConfig, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// Case is one benchmark input: n people, m days, exactly k singleton days.
type Case struct {
	M, N, K int
}

// String renders the case as m:n:k.
func (c Case) String() string {
	return fmt.Sprintf("%d:%d:%d", c.M, c.N, c.K)
}

// DefaultCases is the fixed benchmark set.
func DefaultCases() []Case {
	return []Case{
		{M: 10, N: 41}, {M: 50, N: 304}, {M: 100, N: 690},
		{M: 10, N: 112}, {M: 50, N: 665}, {M: 100, N: 1410},
	}
}

// ParseCases parses comma-separated "m:n" or "m:n:k" cases. An empty list
// selects DefaultCases.
func ParseCases(list string) ([]Case, error) {
	if strings.TrimSpace(list) == "" {
		return DefaultCases(), nil
	}
	var out []Case
	for _, field := range strings.Split(list, ",") {
		parts := strings.Split(strings.TrimSpace(field), ":")
		if len(parts) != 2 && len(parts) != 3 {
			return nil, fmt.Errorf("%w: case %q is not m:n[:k]", ErrBadConfig, field)
		}
		nums := make([]int, 3)
		for i, part := range parts {
			v, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("%w: case %q: %w", ErrBadConfig, field, err)
			}
			nums[i] = v
		}
		c := Case{M: nums[0], N: nums[1], K: nums[2]}
		if c.M < 1 || c.N < 0 || c.K < 0 || c.K > c.N {
			return nil, fmt.Errorf("%w: case %s out of range", ErrBadConfig, c)
		}
		out = append(out, c)
	}
	return out, nil
}
