// Package pkg provides the core libraries for chromatic.
//
// # Overview
//
// chromatic computes minimum vertex colorings by modelling the problem as a
// 0/1 integer linear program: one binary per (vertex, color) pair, one binary
// per color, and an objective that minimizes the colors in use. The pkg
// directory is organized as:
//
//   - [graph]: validated simple undirected graphs and standard families
//   - [ilp]: solver-agnostic linear expressions, statuses and the Solver port
//   - [ilp/pbsolver]: the gophersat-backed Solver
//   - [coloring]: encoder, decoder and the one-call [coloring.Color]
//   - [io]: JSON, TOML, YAML and DIMACS graph files; solution JSON
//   - [render] and [render/dot]: DOT/SVG/PNG drawings of colorings
//   - [cache]: file, Redis, MongoDB and null caches for solutions and drawings
//   - [pipeline]: solve → render orchestration shared by the CLI and API
//   - [observability]: hooks and Prometheus metrics
//   - [errors]: coded errors shared across layers
//
// # Architecture
//
//	graph file (.json/.toml/.yaml/.col)
//	         ↓
//	    [io] (parse + validate)
//	         ↓
//	    [coloring] encoder → [ilp] Solver → decoder
//	         ↓
//	    [render/dot] (DOT → SVG/PNG)
//
// [pipeline] wraps the last two steps with caching and timing.
//
// # Quick Start
//
//	g := graph.Petersen()
//	sol, err := coloring.Color(ctx, g, pbsolver.New())
//	if err != nil {
//	    return err
//	}
//	fmt.Println(sol.ColorsUsed) // 3
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/chromatic/pkg/graph
// [ilp]: https://pkg.go.dev/github.com/matzehuels/chromatic/pkg/ilp
// [ilp/pbsolver]: https://pkg.go.dev/github.com/matzehuels/chromatic/pkg/ilp/pbsolver
// [coloring]: https://pkg.go.dev/github.com/matzehuels/chromatic/pkg/coloring
// [io]: https://pkg.go.dev/github.com/matzehuels/chromatic/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/chromatic/pkg/render
// [render/dot]: https://pkg.go.dev/github.com/matzehuels/chromatic/pkg/render/dot
// [cache]: https://pkg.go.dev/github.com/matzehuels/chromatic/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/chromatic/pkg/pipeline
// [observability]: https://pkg.go.dev/github.com/matzehuels/chromatic/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/chromatic/pkg/errors
package pkg
