// Command csz loads a comma-delimited city list into two binary search trees, one
// built with each insert method, and prints each tree with both in-order walks.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cosmos/csz-bench/bst"
	"github.com/cosmos/csz-bench/csz"
)

func main() {
	var pause bool
	cmd := &cobra.Command{
		Use:   "csz [city-file]",
		Short: "Index a city/state/zip list and print it in city order",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := "city_list.txt"
			if len(args) == 1 {
				filename = args[0]
			}
			f, err := os.Open(filename)
			if err != nil {
				return fmt.Errorf("error opening %s: %w", filename, err)
			}
			recs, err := csz.ReadAll(f)
			_ = f.Close()
			if err != nil {
				return err
			}

			var in io.Reader
			if pause {
				in = cmd.InOrStdin()
			}
			return demo(cmd.OutOrStdout(), in, recs)
		},
	}
	cmd.Flags().BoolVar(&pause, "pause", false, "wait for <enter> after printing the test nodes")
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// demo writes the report for recs to out. If in is not nil it waits for a line from in
// before building the trees.
func demo(out io.Writer, in io.Reader, recs []csz.Record) error {
	w := bufio.NewWriter(out)

	fmt.Fprintln(w, "test nodes:")
	for _, rec := range recs[:min(2, len(recs))] {
		fmt.Fprintln(w, bst.NewNode(rec))
	}
	fmt.Fprintln(w)

	if in != nil {
		fmt.Fprintln(w, "Press <enter> to continue...")
		if err := w.Flush(); err != nil {
			return err
		}
		if _, err := bufio.NewReader(in).ReadString('\n'); err != nil && err != io.EOF {
			return err
		}
	}

	iterTree := bst.NewTree(bst.Options{})
	recTree := bst.NewTree(bst.Options{})
	defer iterTree.EraseAll()
	defer recTree.EraseAll()
	for _, rec := range recs {
		if err := iterTree.InsertIterative(rec); err != nil {
			return err
		}
		if err := recTree.InsertRecursive(rec); err != nil {
			return err
		}
	}

	writeRecord := func(rec csz.Record) { fmt.Fprintln(w, rec) }
	for _, section := range []struct {
		title string
		walk  func(func(csz.Record))
	}{
		{"built iteratively, written iteratively:", iterTree.WalkIterative},
		{"built iteratively, written recursively:", iterTree.WalkRecursive},
		{"built recursively, written iteratively:", recTree.WalkIterative},
		{"built recursively, written recursively:", recTree.WalkRecursive},
	} {
		fmt.Fprintln(w, section.title)
		section.walk(writeRecord)
		fmt.Fprintln(w)
	}
	return w.Flush()
}
