// Command cellsim seeds random boards, runs them until they settle or cycle,
// and catalogues the shapes of the surviving regions.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"cellsim/internal/config"
	"cellsim/internal/runlog"
	"cellsim/pkg/sims/life"
	"cellsim/pkg/storage"
)

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		slog.Error("cellsim failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string, logOut io.Writer) error {
	fs := flag.NewFlagSet("cellsim", flag.ContinueOnError)
	fs.SetOutput(logOut)
	configPath := fs.String("config", "", "path to config.yaml (empty = defaults)")
	seed := fs.Int64("seed", 0, "seed for the first attempt (0 = config seed, then time based)")
	storePath := fs.String("store", "", "shape catalogue path (overrides config)")
	runLogPath := fs.String("run-log", "", "CSV attempt log path (overrides config)")
	writeConfig := fs.String("write-config", "", "write the effective config to this path and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *storePath != "" {
		cfg.Storage.Path = *storePath
	}
	if *runLogPath != "" {
		cfg.RunLog.Path = *runLogPath
	}
	if *writeConfig != "" {
		return cfg.WriteYAML(*writeConfig)
	}

	logger, err := newLogger(cfg.Log, logOut)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	s := *seed
	if s == 0 {
		s = cfg.Simulation.Seed
	}
	if s == 0 {
		s = time.Now().UnixNano()
	}

	store := storage.New()
	if err := store.LoadFile(cfg.Storage.Path, cfg.Storage.ErrorOnMissing); err != nil {
		if !errors.Is(err, storage.ErrMissingFile) {
			// An unreadable catalogue must not be overwritten.
			return fmt.Errorf("loading shape catalogue: %w", err)
		}
		logger.Error("loading shape catalogue", "path", cfg.Storage.Path, "error", err)
	}
	logger.Info("catalogue loaded", "path", cfg.Storage.Path, "shapes", store.Size())

	rl, err := runlog.Open(cfg.RunLog.Path)
	if err != nil {
		return err
	}
	defer rl.Close()

	runner, err := life.NewRunner(cfg.Runner(s), store, rl, logger)
	if err != nil {
		return err
	}

	logger.Info("starting search",
		"seed", s,
		"rows", cfg.Grid.Rows,
		"cols", cfg.Grid.Cols,
		"target_regions", cfg.Simulation.TargetRegions,
		"run_id", rl.RunID(),
	)
	attempts, runErr := runner.Run()
	if len(attempts) > 0 {
		last := attempts[len(attempts)-1]
		logger.Info("search finished",
			"attempts", len(attempts),
			"state", last.State.String(),
			"generations", last.Generations,
			"regions", last.Regions,
		)
	}
	logger.Info("catalogue summary", "summary", store.Summarize())

	if err := store.SaveFile(cfg.Storage.Path); err != nil {
		logger.Error("saving shape catalogue", "path", cfg.Storage.Path, "error", err)
	}
	if runErr != nil {
		return fmt.Errorf("running simulation: %w", runErr)
	}
	return nil
}

func newLogger(lc config.LogConfig, w io.Writer) (*slog.Logger, error) {
	lvl, err := lc.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if lc.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}
