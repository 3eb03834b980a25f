// SPDX-License-Identifier: MIT

// Command sbpbench runs every Strong Birthday probability strategy over the
// benchmark set, checks that they agree and prints a timing report.
//
// Usage:
//
//	sbpbench [-digits 1000] [-cases 10:41,50:304] [-strategies all] [-db runs.db]
//	sbpbench -history -db runs.db
//
// Every flag has an SBP_* environment counterpart; flags win.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/katalvlaran/strongbirthday/internal/bench"
)

func main() {
	cfg, err := bench.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := bench.Run(ctx, cfg, os.Stdout, logger); err != nil {
		logger.Error("benchmark failed", zap.Error(err))
		stop()
		_ = logger.Sync()
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
