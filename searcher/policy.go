package searcher

// Evaluation functions for the common best-first strategies.

// UniformCost orders nodes by accumulated path cost (Dijkstra).
func UniformCost[S comparable]() Evaluate[S] {
	return func(node *Node[S]) float64 {
		return node.cost
	}
}

// Greedy orders nodes by the heuristic estimate alone.
func Greedy[S comparable](h Heuristic[S]) Evaluate[S] {
	if h == nil {
		panic("greedy search needs a heuristic")
	}
	return func(node *Node[S]) float64 {
		return h(node.state)
	}
}

// AStar orders nodes by f = g + h.
func AStar[S comparable](h Heuristic[S]) Evaluate[S] {
	if h == nil {
		panic("A* search needs a heuristic")
	}
	return func(node *Node[S]) float64 {
		return node.cost + h(node.state)
	}
}
