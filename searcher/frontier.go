package searcher

import (
	"container/heap"
	"errors"
)

var (
	ErrDuplicateState = errors.New("state already in frontier")
	ErrEmptyFrontier  = errors.New("frontier is empty")
)

type entry[S comparable] struct {
	node  *Node[S]
	score float64
	seq   uint64
	index int
}

// entries is a min-heap on score; equal scores pop in insertion order.
type entries[S comparable] []*entry[S]

func (h entries[S]) Len() int { return len(h) }
func (h entries[S]) Less(i, j int) bool {
	if h[i].score != h[j].score {
		return h[i].score < h[j].score
	}
	return h[i].seq < h[j].seq
}
func (h entries[S]) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *entries[S]) Push(x any) {
	e := x.(*entry[S])
	e.index = len(*h)
	*h = append(*h, e)
}
func (h *entries[S]) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}

// Frontier holds discovered but unexpanded nodes, at most one per state,
// ordered by the evaluation score computed when the node was inserted.
type Frontier[S comparable] struct {
	evaluate Evaluate[S]
	byState  map[S]*entry[S]
	heap     entries[S]
	seq      uint64
}

func NewFrontier[S comparable](evaluate Evaluate[S]) *Frontier[S] {
	if evaluate == nil {
		panic("frontier needs an evaluation function")
	}
	return &Frontier[S]{
		evaluate: evaluate,
		byState:  make(map[S]*entry[S]),
	}
}

func (f *Frontier[S]) Len() int {
	return len(f.heap)
}

func (f *Frontier[S]) Insert(node *Node[S]) error {
	if _, ok := f.byState[node.state]; ok {
		return ErrDuplicateState
	}

	e := &entry[S]{
		node:  node,
		score: f.evaluate(node),
		seq:   f.seq,
	}
	f.seq++
	heap.Push(&f.heap, e)
	f.byState[node.state] = e
	return nil
}

func (f *Frontier[S]) PopMin() (*Node[S], error) {
	if len(f.heap) == 0 {
		return nil, ErrEmptyFrontier
	}

	e := heap.Pop(&f.heap).(*entry[S])
	delete(f.byState, e.node.state)
	return e.node, nil
}

func (f *Frontier[S]) Contains(state S) bool {
	_, ok := f.byState[state]
	return ok
}

func (f *Frontier[S]) Lookup(state S) (*Node[S], bool) {
	e, ok := f.byState[state]
	if !ok {
		return nil, false
	}
	return e.node, true
}

// Remove deletes node if it is the live entry for its state.
func (f *Frontier[S]) Remove(node *Node[S]) bool {
	e, ok := f.byState[node.state]
	if !ok || e.node != node {
		return false
	}

	heap.Remove(&f.heap, e.index)
	delete(f.byState, node.state)
	return true
}
