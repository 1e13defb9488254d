package searcher

import (
	"math"

	"planner/utils"
)

// Node wraps a state with the accumulated cost of reaching it and a link to
// the node it was expanded from. Nodes are immutable once built.
type Node[S comparable] struct {
	state  S
	cost   float64
	parent *Node[S]
}

func NewNode[S comparable](state S, cost float64, parent *Node[S]) *Node[S] {
	if cost < 0 || math.IsNaN(cost) {
		panic("node cost must be a non-negative number")
	}
	return &Node[S]{
		state:  state,
		cost:   cost,
		parent: parent,
	}
}

// Child builds a successor of n reached with the given step cost.
func (n *Node[S]) Child(state S, stepCost float64) *Node[S] {
	return NewNode(state, n.cost+stepCost, n)
}

func (n *Node[S]) State() S {
	return n.state
}

func (n *Node[S]) Cost() float64 {
	return n.cost
}

func (n *Node[S]) Parent() *Node[S] {
	return n.parent
}

// Depth is the number of parent links between n and the start node.
func (n *Node[S]) Depth() int {
	depth := 0
	for node := n.parent; node != nil; node = node.parent {
		depth++
	}
	return depth
}

// Path returns the states from the start node to n.
func (n *Node[S]) Path() []S {
	path := make([]S, 0, n.Depth()+1)
	for node := n; node != nil; node = node.parent {
		path = append(path, node.state)
	}
	utils.Reverse(path)
	return path
}
