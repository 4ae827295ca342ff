package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cosmos/csz-bench/bench"
)

func main() {
	root := &cobra.Command{
		Use:   "csz-bench",
		Short: "Benchmarks the city/state/zip binary search tree.",
	}
	root.AddCommand(bench.RunCommand(), bench.GenCommand())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
