// Package io reads and writes graphs and colorings.
//
// # Overview
//
// Three graph formats are supported. All of them describe n vertices labelled
// 0..n-1 (DIMACS uses 1..n on disk) and an edge list. Every reader validates
// through [graph.New], so the returned graph is normalized and any structural
// problem surfaces as *graph.InvalidGraphError.
//
// # JSON Format
//
//	{
//	  "vertices": 5,
//	  "edges": [[0, 1], [1, 2], [2, 3], [3, 4], [4, 0]]
//	}
//
// # DIMACS Format
//
// The coloring variant of the DIMACS format used by the graph coloring
// benchmark suites:
//
//	c pentagon
//	p edge 5 5
//	e 1 2
//	e 2 3
//	...
//
// Comment lines start with "c". The problem line gives the vertex and edge
// counts. Vertices are 1-based. The declared edge count is not enforced
// because published instances often list each edge twice.
//
// # TOML Format
//
//	vertices = 5
//	edges = [[0, 1], [1, 2]]
//
// # YAML Format
//
//	vertices: 5
//	edges: [[0, 1], [1, 2]]
//
// Block-style edge lists are accepted on read.
//
// # Dispatch
//
// [Import] and [Export] choose the format from the file extension: .json,
// .col or .dimacs, .toml, and .yaml or .yml. Other extensions fail with INVALID_FORMAT and
// missing files with FILE_NOT_FOUND.
//
// # Solutions
//
// [WriteSolution] and [ReadSolution] store a decoded coloring as JSON:
//
//	{"colors": [0, 1, 0, 1, 2], "colors_used": 3, "objective": 3, "status": "OPTIMAL"}
//
// [graph.New]: github.com/matzehuels/chromatic/pkg/graph.New
package io
