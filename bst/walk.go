package bst

import (
	"iter"

	"github.com/cosmos/csz-bench/csz"
)

// WalkIterative calls sink with every record in ascending city order, using an
// explicit stack instead of recursion.
func (t *Tree) WalkIterative(sink func(csz.Record)) {
	for rec := range t.All() {
		sink(rec)
	}
}

// WalkRecursive calls sink with every record in ascending city order.
func (t *Tree) WalkRecursive(sink func(csz.Record)) {
	walkRecursive(t.root, sink)
}

func walkRecursive(node *Node, sink func(csz.Record)) {
	if node == nil {
		return
	}
	walkRecursive(node.left, sink)
	sink(node.payload)
	walkRecursive(node.right, sink)
}

// All returns an in-order iterator over the tree's records. The stack it keeps holds
// at most one node per level.
func (t *Tree) All() iter.Seq[csz.Record] {
	return func(yield func(csz.Record) bool) {
		var stack []*Node
		current := t.root
		for current != nil || len(stack) > 0 {
			for current != nil {
				stack = append(stack, current)
				current = current.left
			}

			current = stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if !yield(current.payload) {
				return
			}

			current = current.right
		}
	}
}
