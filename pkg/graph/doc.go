// Package graph provides the validated, immutable undirected graph that the
// coloring encoder consumes.
//
// # Overview
//
// A [Graph] has n vertices labelled 0..n-1 and a set of unordered edges. It
// is constructed once with [New], which validates the input and then
// normalizes it: every edge is stored with its smaller endpoint first,
// duplicates such as (1,2) and (2,1) collapse into a single edge, and edges
// are kept in sorted order. Nothing mutates a Graph after construction.
//
//	g, err := graph.New(3, []graph.Edge{{0, 1}, {1, 2}, {2, 1}})
//	// g.EdgeCount() == 2
//
// # Validation
//
// [Validate] rejects inputs that cannot describe a simple graph: a
// non-positive vertex count, an endpoint outside [0, n), or a self-loop. All
// failures are reported as *[InvalidGraphError], which unwraps to one of the
// sentinels [ErrNonPositiveOrder], [ErrEndpointOutOfRange] or [ErrSelfLoop]
// and carries the INVALID_GRAPH error code.
//
// # Canonical Graphs
//
// [Empty], [Complete], [Cycle], [Path], [Star], [CompleteBipartite] and
// [Petersen] build well-known graphs whose chromatic numbers are known. They
// back the generate command and the end-to-end tests.
//
// # Concurrency
//
// Graph values are read-only after construction and safe for concurrent
// readers.
package graph
