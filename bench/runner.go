package bench

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/cosmos/csz-bench/bst"
)

type RunConfig struct {
	DatasetDir  string
	Inputs      []string
	Parallel    int
	MetricsAddr string
	Log         LogConfig
	TreeOptions string
	Insert      string
	Walk        string
	Verify      bool
	// Output is a file the walked records of every input are written to; "-" is stdout.
	Output    string
	OutputDir string
	DotDir    string
}

// RunCommand returns the command that builds and walks one tree per input file.
func RunCommand() *cobra.Command {
	var cfg RunConfig
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Builds a city index from each input file and walks it in order.",
	}
	cmd.Flags().StringVar(&cfg.DatasetDir, "dataset-dir", "", "Directory of a dataset written by gen-cities.")
	cmd.Flags().StringArrayVar(&cfg.Inputs, "input", nil, "Record file to index; may be repeated.")
	cmd.Flags().IntVar(&cfg.Parallel, "parallel", 1, "Number of trees built at the same time.")
	cmd.Flags().StringVar(&cfg.MetricsAddr, "metrics-addr", "", "If set, serve prometheus metrics on this address.")
	cmd.Flags().StringVar(&cfg.Log.Type, "log-type", "console", "Log format (console|json).")
	cmd.Flags().StringVar(&cfg.Log.File, "log-file", "", "Write logs to this file instead of stderr.")
	cmd.Flags().StringVar(&cfg.Log.Level, "log-level", "info", "Log level.")
	cmd.Flags().StringVar(&cfg.TreeOptions, "tree-options", "", `Tree options as JSON, e.g. {"max_nodes": 1000000}.`)
	cmd.Flags().StringVar(&cfg.Insert, "insert", string(InsertIterative), "Insert method (iterative|recursive|alternate).")
	cmd.Flags().StringVar(&cfg.Walk, "walk", string(WalkIterative), "Walk method (iterative|recursive).")
	cmd.Flags().BoolVar(&cfg.Verify, "verify", false, "Check that every traversal of every tree agrees.")
	cmd.Flags().StringVar(&cfg.Output, "output", "", `Write walked records to this file; "-" for stdout.`)
	cmd.Flags().StringVar(&cfg.OutputDir, "output-dir", "", "Write the walked records of each input to its own file in this directory.")
	cmd.Flags().StringVar(&cfg.DotDir, "dot-dir", "", "Write a Graphviz file of each tree's shape to this directory.")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return Run(cmd.Context(), cfg)
	}
	return cmd
}

func Run(ctx context.Context, cfg RunConfig) error {
	log, closer, err := NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer closer.Close()

	treeCtx := &TreeContext{
		Context:   ctx,
		Log:       log,
		Metrics:   NewMetrics(),
		OutputDir: cfg.OutputDir,
		DotDir:    cfg.DotDir,
		Verify:    cfg.Verify,
	}
	if treeCtx.InsertMethod, err = ParseInsertMethod(cfg.Insert); err != nil {
		return err
	}
	if treeCtx.WalkMethod, err = ParseWalkMethod(cfg.Walk); err != nil {
		return err
	}
	if treeCtx.TreeOptions, err = LoadTreeOptions(cfg.TreeOptions); err != nil {
		return err
	}

	params := runParams{Inputs: cfg.Inputs, Parallel: cfg.Parallel}
	if cfg.DatasetDir != "" {
		info, err := readDatasetInfo(cfg.DatasetDir)
		if err != nil {
			return fmt.Errorf("error reading dataset info file: %w", err)
		}
		params.Inputs = append(params.Inputs, info.shardFiles(cfg.DatasetDir)...)
		params.ExpectedRecords = info.RecordsPerShard
		log.Info().
			Int("shards", info.Shards).
			Str("records_per_shard", humanize.Comma(int64(info.RecordsPerShard))).
			Str("order", string(info.Order)).
			Msg("loaded dataset")
	}
	if len(params.Inputs) == 0 {
		return fmt.Errorf("either dataset-dir or input is required")
	}

	if cfg.OutputDir != "" || cfg.DotDir != "" {
		seen := make(map[string]string, len(params.Inputs))
		for _, input := range params.Inputs {
			name := inputName(input)
			if prev, ok := seen[name]; ok {
				return fmt.Errorf("inputs %s and %s would write the same output files (%s)", prev, input, name)
			}
			seen[name] = input
		}
	}

	for _, dir := range []string{cfg.OutputDir, cfg.DotDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	switch cfg.Output {
	case "":
	case "-":
		treeCtx.Output = os.Stdout
	default:
		f, err := os.Create(cfg.Output)
		if err != nil {
			return fmt.Errorf("error creating output file: %w", err)
		}
		defer f.Close()
		treeCtx.Output = f
	}
	if treeCtx.Output != nil && params.Parallel > 1 {
		log.Warn().Msg("output is shared by all inputs; building trees one at a time")
		params.Parallel = 1
	}

	if cfg.MetricsAddr != "" {
		metricsCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		treeCtx.Metrics.Serve(metricsCtx, cfg.MetricsAddr, log)
	}

	return run(treeCtx, params)
}

type runParams struct {
	Inputs   []string
	Parallel int
	// ExpectedRecords is the number of records every input must hold; 0 skips the check.
	ExpectedRecords int
}

func run(c *TreeContext, params runParams) error {
	parallel := params.Parallel
	if parallel < 1 {
		parallel = 1
	}
	log := c.Log
	log.Info().
		Int("inputs", len(params.Inputs)).
		Int("parallel", parallel).
		Str("insert", string(c.InsertMethod)).
		Str("walk", string(c.WalkMethod)).
		Msg("starting run")

	// each tree is owned by the task that builds it; trees are never shared
	pool := pond.NewPool(parallel)
	defer pool.StopAndWait()
	group := pool.NewGroup()

	results := make([]treeResult, len(params.Inputs))
	startTime := time.Now()
	for i, input := range params.Inputs {
		group.SubmitErr(func() error {
			res, err := c.BuildTree(input)
			if err != nil {
				return err
			}
			if params.ExpectedRecords > 0 && res.Records != params.ExpectedRecords {
				return fmt.Errorf("%s holds %d records; dataset info says %d", input, res.Records, params.ExpectedRecords)
			}
			results[i] = res
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	var total, maxHeight int
	for _, res := range results {
		total += res.Records
		maxHeight = max(maxHeight, res.Height)
	}
	duration := time.Since(startTime)
	log.Info().
		Str("records", humanize.Comma(int64(total))).
		Int("max_height", maxHeight).
		Dur("duration", duration).
		Float64("records_per_sec", float64(total)/duration.Seconds()).
		Msg("run complete")
	return nil
}

// LoadTreeOptions decodes the JSON form accepted by --tree-options.
func LoadTreeOptions(s string) (bst.Options, error) {
	var opts bst.Options
	if s == "" {
		return opts, nil
	}
	if err := json.Unmarshal([]byte(s), &opts); err != nil {
		return opts, fmt.Errorf("error parsing tree options: %w", err)
	}
	return opts, nil
}
