package main

import (
	"os"

	"github.com/cosmos/csz-bench/bench"
)

func main() {
	if err := bench.GenCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
