package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cosmos/csz-bench/bench"
)

type Plan struct {
	DatasetDir string    `json:"dataset_dir"`
	Parallel   int       `json:"parallel"`
	Runs       []RunPlan `json:"runs"`
}

type RunPlan struct {
	RunName     string          `json:"name"`
	Insert      string          `json:"insert"`
	Walk        string          `json:"walk"`
	TreeOptions json.RawMessage `json:"tree_options"`
	DatasetDir  string          `json:"dataset_dir"`
	Parallel    int             `json:"parallel"`
	Verify      bool            `json:"verify"`
}

func main() {
	var dryRun bool
	cmd := &cobra.Command{
		Use:  "csz-bench-all [plan-file]",
		Args: cobra.ExactArgs(1),
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "If true, the plan will be printed but not executed.")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		planFile := args[0]
		bz, err := os.ReadFile(planFile)
		if err != nil {
			return fmt.Errorf("error reading plan file: %w", err)
		}

		var plan Plan
		err = json.Unmarshal(bz, &plan)
		if err != nil {
			return fmt.Errorf("error unmarshaling plan file: %w", err)
		}

		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
			With().Timestamp().Logger()

		resultDir := filepath.Join(filepath.Dir(planFile), time.Now().Format("20060102_150405"))
		resultDir, err = filepath.Abs(resultDir)
		if err != nil {
			return fmt.Errorf("error getting absolute path of result dir: %w", err)
		}
		logger.Info().Msgf("writing results to %s", resultDir)

		if !dryRun {
			err = os.MkdirAll(resultDir, 0o755)
			if err != nil {
				return fmt.Errorf("error creating result dir: %w", err)
			}
		}

		for _, run := range plan.Runs {
			// fill in defaults from plan
			if run.DatasetDir == "" {
				run.DatasetDir = plan.DatasetDir
			}
			if run.Parallel == 0 {
				run.Parallel = plan.Parallel
			}
			runOne(cmd.Context(), logger, run, resultDir, dryRun)
		}

		return nil
	}
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runOne(ctx context.Context, logger zerolog.Logger, plan RunPlan, resultDir string, dryRun bool) {
	bz, err := json.Marshal(plan)
	if err != nil {
		logger.Error().Err(err).Msg("error marshaling plan")
		return
	}
	logger.Info().RawJSON("run_plan", bz).Msg("starting run")

	cfg := bench.RunConfig{
		DatasetDir: plan.DatasetDir,
		Parallel:   plan.Parallel,
		Insert:     plan.Insert,
		Walk:       plan.Walk,
		Verify:     plan.Verify,
		Log: bench.LogConfig{
			Type: "json",
			File: filepath.Join(resultDir, fmt.Sprintf("%s.jsonl", plan.RunName)),
		},
	}
	if cfg.Insert == "" {
		cfg.Insert = string(bench.InsertIterative)
	}
	if cfg.Walk == "" {
		cfg.Walk = string(bench.WalkIterative)
	}
	if plan.TreeOptions != nil {
		cfg.TreeOptions = string(plan.TreeOptions)
	}

	if dryRun {
		logger.Info().Msg("dry run, not executing")
		return
	}

	if err := bench.Run(ctx, cfg); err != nil {
		logger.Error().Err(err).Str("run", plan.RunName).Msg("error running benchmark")
		return
	}
	logger.Info().Str("run", plan.RunName).Msg("done")
}
