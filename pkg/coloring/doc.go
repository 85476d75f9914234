// Package coloring encodes graph vertex coloring as a 0/1 integer program and
// decodes solver output back into a color assignment.
//
// # Model
//
// For a graph with n vertices the [Encoder] creates n color-usage variables
// w[k] and an n-by-n grid of assignment variables x[i][k], then registers:
//
//	minimize   sum_k w[k]
//	subject to sum_k x[i][k] = 1                 for every vertex i
//	           x[i][k] + x[j][k] - w[k] <= 0      for every edge (i,j), color k
//
// n colors always suffice, so the program is feasible for every valid graph.
//
// # Isolated vertices
//
// A w[k] is only tied to vertices through conflict rows, so a vertex without
// incident edges may take a color whose w[k] stays 0. The objective can then
// be smaller than the number of distinct colors in the decoded assignment;
// for an edgeless graph the objective is 0. [Solution.ColorsUsed] always
// counts the assignment itself. [WithUsageForcing] adds x[i][k] <= w[k] for
// every pair, which makes the objective equal the color count.
//
// # Decoding
//
// [Decode] reads x[i][k] after a single optimize call and picks, per vertex,
// the unique color whose value exceeds 0.5. Terminal solver statuses become
// *[SolveFailedError]; a vertex with no or several candidate colors becomes
// *[DecodeError].
//
// # One-shot helper
//
// [Color] runs encode, optimize and decode in one call with logging and
// observability hooks:
//
//	sol, err := coloring.Color(ctx, graph.Petersen(), pbsolver.New())
//	// sol.ColorsUsed == 3
package coloring
