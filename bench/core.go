package bench

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/cosmos/csz-bench/bst"
	"github.com/cosmos/csz-bench/csz"
)

// TreeContext carries what is needed to build and walk one tree per input file.
type TreeContext struct {
	context.Context

	Log          zerolog.Logger
	Metrics      *Metrics
	TreeOptions  bst.Options
	InsertMethod InsertMethod
	WalkMethod   WalkMethod
	// Verify walks every tree with both traversals and the iterator and fails if they
	// disagree with each other or with the number of records inserted.
	Verify bool
	// OutputDir, if set, receives one file per input with the walked records.
	OutputDir string
	// Output, if set, receives the walked records of every input.
	Output io.Writer
	// DotDir, if set, receives a Graphviz file per input with the tree's shape.
	DotDir string
}

type treeResult struct {
	Input   string
	Records int
	Height  int
	Build   time.Duration
	Walk    time.Duration
}

// BuildTree reads input, inserts every record into a fresh tree, walks it and erases it.
func (c *TreeContext) BuildTree(input string) (treeResult, error) {
	log := c.Log.With().Str("input", filepath.Base(input)).Logger()
	res := treeResult{Input: input}

	f, err := os.Open(input)
	if err != nil {
		return res, fmt.Errorf("error opening input: %w", err)
	}
	recs, err := csz.ReadAll(f)
	_ = f.Close()
	if err != nil {
		return res, fmt.Errorf("error reading %s: %w", input, err)
	}

	tree := bst.NewTree(c.TreeOptions)
	defer tree.EraseAll()

	since := time.Now()
	start := since
	for i, rec := range recs {
		if err := c.Err(); err != nil {
			return res, err
		}
		if err := c.InsertMethod.insert(tree, i, rec); err != nil {
			return res, fmt.Errorf("error inserting record %d (%s): %w", i, rec, err)
		}
		c.Metrics.RecordsInserted.Inc()
		if (i+1)%100_000 == 0 {
			elapsed := time.Since(since)
			log.Info().
				Str("records", humanize.Comma(int64(i+1))).
				Dur("elapsed", elapsed).
				Float64("records_per_sec", 100_000/max(elapsed.Seconds(), 1e-9)).
				Msg("insert progress")
			since = time.Now()
		}
	}
	res.Build = time.Since(start)
	res.Records = tree.Len()
	res.Height = tree.Height()
	c.Metrics.InsertDuration.Observe(res.Build.Seconds())
	c.Metrics.TreesBuilt.Inc()
	c.Metrics.TreeSize.Set(float64(res.Records))
	c.Metrics.TreeHeight.Set(float64(res.Height))

	if c.DotDir != "" {
		if err := c.writeDot(tree, input); err != nil {
			return res, err
		}
	}

	start = time.Now()
	emitted, err := c.walk(tree, input)
	if err != nil {
		return res, err
	}
	res.Walk = time.Since(start)
	if emitted != len(recs) {
		return res, fmt.Errorf("walk of %s emitted %d records; inserted %d", input, emitted, len(recs))
	}

	if c.Verify {
		if err := verifyTree(tree); err != nil {
			return res, fmt.Errorf("verification of %s failed: %w", input, err)
		}
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	log.Info().
		Str("records", humanize.Comma(int64(res.Records))).
		Int("height", res.Height).
		Dur("build", res.Build).
		Dur("walk", res.Walk).
		Float64("inserts_per_sec", float64(res.Records)/res.Build.Seconds()).
		Str("mem_allocs", humanize.Bytes(memStats.Alloc)).
		Str("mem_sys", humanize.Bytes(memStats.Sys)).
		Str("mem_num_gc", humanize.Comma(int64(memStats.NumGC))).
		Msg("built tree")

	return res, nil
}

func (c *TreeContext) walk(tree *bst.Tree, input string) (int, error) {
	var out io.Writer = io.Discard
	if c.OutputDir != "" {
		name := inputName(input) + ".sorted.csv"
		f, err := os.Create(filepath.Join(c.OutputDir, name))
		if err != nil {
			return 0, fmt.Errorf("error creating output file: %w", err)
		}
		defer f.Close()
		out = f
	} else if c.Output != nil {
		out = c.Output
	}

	var (
		emitted  int
		writeErr error
	)
	c.WalkMethod.walk(tree, func(rec csz.Record) {
		emitted++
		c.Metrics.RecordsEmitted.Inc()
		if writeErr == nil {
			writeErr = csz.Write(out, rec)
		}
	})
	if writeErr != nil {
		return emitted, fmt.Errorf("error writing output: %w", writeErr)
	}
	return emitted, nil
}

func (c *TreeContext) writeDot(tree *bst.Tree, input string) error {
	name := inputName(input) + ".dot"
	f, err := os.Create(filepath.Join(c.DotDir, name))
	if err != nil {
		return fmt.Errorf("error creating dot file: %w", err)
	}
	if err := tree.WriteDotGraph(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("error writing dot graph: %w", err)
	}
	return f.Close()
}

// inputName is the stem shared by the output and dot files written for input.
func inputName(input string) string {
	return strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
}

func verifyTree(tree *bst.Tree) error {
	var iterative, recursive []csz.Record
	tree.WalkIterative(func(rec csz.Record) { iterative = append(iterative, rec) })
	tree.WalkRecursive(func(rec csz.Record) { recursive = append(recursive, rec) })
	seq := slices.Collect(tree.All())

	if len(iterative) != tree.Len() {
		return fmt.Errorf("iterative walk emitted %d records; tree holds %d", len(iterative), tree.Len())
	}
	if !slices.Equal(iterative, recursive) {
		return fmt.Errorf("iterative and recursive walks differ")
	}
	if !slices.Equal(iterative, seq) {
		return fmt.Errorf("iterator and iterative walk differ")
	}
	for i := 1; i < len(iterative); i++ {
		if iterative[i].Less(iterative[i-1]) {
			return fmt.Errorf("record %d (%s) out of order after %s", i, iterative[i], iterative[i-1])
		}
	}
	return nil
}
