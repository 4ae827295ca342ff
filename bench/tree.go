package bench

import (
	"fmt"

	"github.com/cosmos/csz-bench/bst"
	"github.com/cosmos/csz-bench/csz"
)

// InsertMethod selects which bst insert algorithm builds the tree.
type InsertMethod string

const (
	InsertIterative InsertMethod = "iterative"
	InsertRecursive InsertMethod = "recursive"
	// InsertAlternate switches between the two algorithms on every record.
	InsertAlternate InsertMethod = "alternate"
)

func ParseInsertMethod(s string) (InsertMethod, error) {
	switch m := InsertMethod(s); m {
	case InsertIterative, InsertRecursive, InsertAlternate:
		return m, nil
	default:
		return "", fmt.Errorf("unknown insert method %q (iterative|recursive|alternate)", s)
	}
}

func (m InsertMethod) insert(tree *bst.Tree, i int, rec csz.Record) error {
	switch m {
	case InsertRecursive:
		return tree.InsertRecursive(rec)
	case InsertAlternate:
		if i%2 == 1 {
			return tree.InsertRecursive(rec)
		}
	}
	return tree.InsertIterative(rec)
}

// WalkMethod selects which bst traversal emits the tree's records.
type WalkMethod string

const (
	WalkIterative WalkMethod = "iterative"
	WalkRecursive WalkMethod = "recursive"
)

func ParseWalkMethod(s string) (WalkMethod, error) {
	switch m := WalkMethod(s); m {
	case WalkIterative, WalkRecursive:
		return m, nil
	default:
		return "", fmt.Errorf("unknown walk method %q (iterative|recursive)", s)
	}
}

func (m WalkMethod) walk(tree *bst.Tree, sink func(csz.Record)) {
	if m == WalkRecursive {
		tree.WalkRecursive(sink)
		return
	}
	tree.WalkIterative(sink)
}
