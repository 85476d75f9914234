// Package ilp defines the boundary between the coloring model and an integer
// linear programming engine.
//
// # Overview
//
// The [Solver] interface is deliberately small: create binary variables,
// register linear constraints and a linear objective, optimize once, then
// read back variable values. Any engine that can solve 0/1 programs can sit
// behind it. The bundled adapter lives in [github.com/matzehuels/chromatic/pkg/ilp/pbsolver]
// and solves the program as a pseudo-boolean optimization problem.
//
// # Expressions
//
// Linear expressions are built from [Term] values:
//
//	expr := ilp.Sum(x, y).Minus(w)   // x + y - w
//	s.AddConstraint(expr, ilp.LessEq, 0)
//
// # Deadlines
//
// Solvers that can stop early implement [ContextOptimizer]. [Optimize] calls
// OptimizeContext when available and falls back to the blocking Optimize.
package ilp
