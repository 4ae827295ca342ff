package bst

import "github.com/cosmos/csz-bench/csz"

// Node is a single tree vertex holding one record and up to two children.
type Node struct {
	payload csz.Record
	left    *Node
	right   *Node
}

func NewNode(rec csz.Record) *Node {
	return &Node{payload: rec}
}

func (node *Node) SetLeft(left *Node) {
	node.left = left
}

func (node *Node) SetRight(right *Node) {
	node.right = right
}

// Data returns a copy of the stored record.
func (node *Node) Data() csz.Record {
	return node.payload
}

func (node *Node) Left() *Node {
	return node.left
}

func (node *Node) Right() *Node {
	return node.right
}

// Less orders nodes by their records' cities. It is defined through csz.Record.Less,
// which is also what InsertRecursive compares with, so both insert paths agree.
func (node *Node) Less(other *Node) bool {
	return node.payload.Less(other.payload)
}

func (node *Node) String() string {
	return node.payload.String()
}
