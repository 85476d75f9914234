package graph

// Empty returns the edgeless graph on n vertices.
func Empty(n int) (*Graph, error) {
	return New(n, nil)
}

// Complete returns K_n.
func Complete(n int) (*Graph, error) {
	var edges []Edge
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			edges = append(edges, Edge{i, j})
		}
	}
	return New(n, edges)
}

// Cycle returns C_n. n must be at least 3.
func Cycle(n int) (*Graph, error) {
	if n < 3 {
		return nil, &InvalidGraphError{N: n, Index: -1, Reason: ErrOrderTooSmall}
	}
	edges := make([]Edge, 0, n)
	for i := 0; i < n; i++ {
		edges = append(edges, Edge{i, (i + 1) % n})
	}
	return New(n, edges)
}

// Path returns P_n, the path through vertices 0..n-1 in order.
func Path(n int) (*Graph, error) {
	var edges []Edge
	for i := 0; i+1 < n; i++ {
		edges = append(edges, Edge{i, i + 1})
	}
	return New(n, edges)
}

// Star returns the star with center 0 and n-1 leaves.
func Star(n int) (*Graph, error) {
	var edges []Edge
	for i := 1; i < n; i++ {
		edges = append(edges, Edge{0, i})
	}
	return New(n, edges)
}

// CompleteBipartite returns K_{a,b}. Vertices 0..a-1 form the first side.
func CompleteBipartite(a, b int) (*Graph, error) {
	if a <= 0 || b <= 0 {
		return nil, &InvalidGraphError{N: a + b, Index: -1, Reason: ErrNonPositiveOrder}
	}
	edges := make([]Edge, 0, a*b)
	for i := 0; i < a; i++ {
		for j := 0; j < b; j++ {
			edges = append(edges, Edge{i, a + j})
		}
	}
	return New(a+b, edges)
}

// Petersen returns the Petersen graph: an outer 5-cycle on 0..4, an inner
// pentagram on 5..9, and spokes i -- i+5. Its chromatic number is 3.
func Petersen() *Graph {
	edges := make([]Edge, 0, 15)
	for i := 0; i < 5; i++ {
		edges = append(edges,
			Edge{i, (i + 1) % 5},
			Edge{i, i + 5},
			Edge{5 + i, 5 + (i+2)%5},
		)
	}
	return MustNew(10, edges)
}
