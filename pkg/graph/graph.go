package graph

import (
	"fmt"
	"slices"
)

// Edge is an unordered pair of vertex indices. Edges returned by a [Graph]
// always satisfy U < V.
type Edge struct {
	U, V int
}

// String formats the edge as "(u,v)".
func (e Edge) String() string {
	return fmt.Sprintf("(%d,%d)", e.U, e.V)
}

// normalized returns e with the smaller endpoint first.
func (e Edge) normalized() Edge {
	if e.U > e.V {
		return Edge{U: e.V, V: e.U}
	}
	return e
}

func compareEdges(a, b Edge) int {
	if a.U != b.U {
		return a.U - b.U
	}
	return a.V - b.V
}

// MaxOrder bounds the vertex count accepted by [Validate]. It keeps the
// adjacency allocation of a hostile input to a few megabytes; solvable
// colorings are far smaller.
const MaxOrder = 1 << 20

// Graph is an immutable simple undirected graph on vertices 0..N()-1.
type Graph struct {
	n     int
	edges []Edge
	adj   [][]int
}

// Validate checks that n and edges describe a simple graph. It does not
// reject duplicate edges; [New] removes them.
func Validate(n int, edges []Edge) error {
	if n <= 0 {
		return &InvalidGraphError{N: n, Index: -1, Reason: ErrNonPositiveOrder}
	}
	if n > MaxOrder {
		return &InvalidGraphError{N: n, Index: -1, Reason: ErrOrderTooLarge}
	}
	for i, e := range edges {
		if e.U < 0 || e.U >= n || e.V < 0 || e.V >= n {
			return &InvalidGraphError{N: n, Index: i, Edge: e, Reason: ErrEndpointOutOfRange}
		}
		if e.U == e.V {
			return &InvalidGraphError{N: n, Index: i, Edge: e, Reason: ErrSelfLoop}
		}
	}
	return nil
}

// New validates the input and returns the normalized graph. Duplicate edges,
// in either orientation, are kept once.
func New(n int, edges []Edge) (*Graph, error) {
	if err := Validate(n, edges); err != nil {
		return nil, err
	}

	norm := make([]Edge, len(edges))
	for i, e := range edges {
		norm[i] = e.normalized()
	}
	slices.SortFunc(norm, compareEdges)
	norm = slices.Compact(norm)

	adj := make([][]int, n)
	for _, e := range norm {
		adj[e.U] = append(adj[e.U], e.V)
		adj[e.V] = append(adj[e.V], e.U)
	}
	for _, nbrs := range adj {
		slices.Sort(nbrs)
	}

	return &Graph{n: n, edges: slices.Clip(norm), adj: adj}, nil
}

// MustNew is like [New] but panics on invalid input. Intended for literals in
// tests and the canonical constructors.
func MustNew(n int, edges []Edge) *Graph {
	g, err := New(n, edges)
	if err != nil {
		panic(err)
	}
	return g
}

// N returns the number of vertices.
func (g *Graph) N() int { return g.n }

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Edges returns a copy of the normalized, sorted edge list.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// Degree returns the number of neighbors of v, or 0 if v is not a vertex.
func (g *Graph) Degree(v int) int {
	if v < 0 || v >= g.n {
		return 0
	}
	return len(g.adj[v])
}

// MaxDegree returns the largest vertex degree.
func (g *Graph) MaxDegree() int {
	maxDeg := 0
	for _, nbrs := range g.adj {
		maxDeg = max(maxDeg, len(nbrs))
	}
	return maxDeg
}

// Neighbors returns a sorted copy of v's neighbors, or nil if v is not a vertex.
func (g *Graph) Neighbors(v int) []int {
	if v < 0 || v >= g.n {
		return nil
	}
	return slices.Clone(g.adj[v])
}

// HasEdge reports whether i and j are adjacent.
func (g *Graph) HasEdge(i, j int) bool {
	if i < 0 || i >= g.n || j < 0 || j >= g.n {
		return false
	}
	_, found := slices.BinarySearch(g.adj[i], j)
	return found
}

// IsolatedVertices returns the vertices with no incident edge, in order.
func (g *Graph) IsolatedVertices() []int {
	var out []int
	for v, nbrs := range g.adj {
		if len(nbrs) == 0 {
			out = append(out, v)
		}
	}
	return out
}

// String summarizes the graph size.
func (g *Graph) String() string {
	return fmt.Sprintf("graph(n=%d, m=%d)", g.n, len(g.edges))
}
