package bst

import (
	"fmt"
	"io"

	"github.com/emicklei/dot"
)

type dotFrame struct {
	node      *Node
	parent    dot.Node
	hasParent bool
	direction string
}

// WriteDotGraph writes the shape of the tree to w in Graphviz dot format.
func (t *Tree) WriteDotGraph(w io.Writer) error {
	graph := dot.NewGraph(dot.Directed)

	// cities may repeat, so graph ids are assigned in pre-order instead
	id := 0
	var stack []dotFrame
	if t.root != nil {
		stack = append(stack, dotFrame{node: t.root})
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := graph.Node(fmt.Sprintf("n%d", id)).Label(top.node.String())
		id++
		if top.hasParent {
			top.parent.Edge(n, top.direction)
		}
		if top.node.right != nil {
			stack = append(stack, dotFrame{node: top.node.right, parent: n, hasParent: true, direction: "r"})
		}
		if top.node.left != nil {
			stack = append(stack, dotFrame{node: top.node.left, parent: n, hasParent: true, direction: "l"})
		}
	}

	_, err := io.WriteString(w, graph.String())
	return err
}
