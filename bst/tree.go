// Package bst implements an unbalanced binary search tree of csz records keyed by city.
//
// Records whose city is not less than a node's city go to its right, so equal cities
// chain to the right in insertion order and an in-order walk returns them in the order
// they were inserted. There is no rebalancing: sorted input builds a degenerate chain.
//
// InsertRecursive and WalkRecursive use one stack frame per tree level. Go stacks grow
// on demand, but a chain deep enough to exceed the runtime's maximum stack size aborts
// the program. InsertIterative, WalkIterative and All are safe at any depth.
//
// A Tree is not safe for concurrent use.
package bst

import (
	"errors"
	"fmt"

	"github.com/cosmos/csz-bench/csz"
)

var ErrTreeFull = errors.New("tree is full")

type Options struct {
	// MaxNodes caps the number of records the tree will hold. 0 means no limit.
	MaxNodes int `json:"max_nodes"`
}

// Tree is an ordered index of records. The zero value is an empty tree ready for use.
type Tree struct {
	root *Node
	size int
	opts Options
}

func NewTree(opts Options) *Tree {
	return &Tree{opts: opts}
}

func (t *Tree) newNode(rec csz.Record) (*Node, error) {
	if t.opts.MaxNodes > 0 && t.size >= t.opts.MaxNodes {
		return nil, fmt.Errorf("%w: limit of %d nodes reached", ErrTreeFull, t.opts.MaxNodes)
	}
	t.size++
	return NewNode(rec), nil
}

// InsertIterative adds rec by walking down from the root without recursion.
func (t *Tree) InsertIterative(rec csz.Record) error {
	newNode, err := t.newNode(rec)
	if err != nil {
		return err
	}
	if t.root == nil {
		t.root = newNode
		return nil
	}

	var previous *Node
	current := t.root
	for current != nil {
		previous = current
		if newNode.Less(current) {
			current = current.Left()
		} else {
			current = current.Right()
		}
	}

	if newNode.Less(previous) {
		previous.SetLeft(newNode)
	} else {
		previous.SetRight(newNode)
	}
	return nil
}

// InsertRecursive adds rec with a recursive descent from the root. It builds exactly
// the same shape as InsertIterative for the same input.
func (t *Tree) InsertRecursive(rec csz.Record) error {
	newNode, err := t.newNode(rec)
	if err != nil {
		return err
	}
	if t.root == nil {
		t.root = newNode
		return nil
	}
	insertRecursive(newNode, t.root)
	return nil
}

func insertRecursive(newNode, subtreeRoot *Node) {
	if newNode.payload.Less(subtreeRoot.payload) {
		if subtreeRoot.left == nil {
			subtreeRoot.SetLeft(newNode)
			return
		}
		insertRecursive(newNode, subtreeRoot.left)
		return
	}
	if subtreeRoot.right == nil {
		subtreeRoot.SetRight(newNode)
		return
	}
	insertRecursive(newNode, subtreeRoot.right)
}

// EraseAll removes every record. Erasing an empty tree is a no-op.
func (t *Tree) EraseAll() {
	// nothing outside the tree references its nodes, so releasing the root frees the graph
	t.root = nil
	t.size = 0
}

func (t *Tree) Len() int {
	return t.size
}

// Height returns the number of levels in the tree, 0 when it is empty.
func (t *Tree) Height() int {
	if t.root == nil {
		return 0
	}
	height := 0
	level := []*Node{t.root}
	var next []*Node
	for len(level) > 0 {
		height++
		next = next[:0]
		for _, node := range level {
			if node.left != nil {
				next = append(next, node.left)
			}
			if node.right != nil {
				next = append(next, node.right)
			}
		}
		level, next = next, level
	}
	return height
}
