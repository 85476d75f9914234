package coloring

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	apperr "github.com/matzehuels/chromatic/pkg/errors"
	"github.com/matzehuels/chromatic/pkg/graph"
	"github.com/matzehuels/chromatic/pkg/ilp"
	"github.com/matzehuels/chromatic/pkg/observability"
)

// Color encodes g into s, optimizes once and decodes the result. s must be a
// fresh solver. When ctx ends first and s implements [ilp.ContextOptimizer],
// the best solution found so far is decoded with status Feasible; if there is
// none the error carries the TIMEOUT code and unwraps to *SolveFailedError.
func Color(ctx context.Context, g *graph.Graph, s ilp.Solver, opts ...Option) (*Solution, error) {
	enc := NewEncoder(opts...)
	logger := enc.logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	hooks := observability.Solve()

	m, err := enc.Encode(g, s)
	if err != nil {
		return nil, err
	}
	hooks.OnEncode(ctx, g.N(), g.EdgeCount(), m.NumVars(), len(m.constraints))
	logger.Debug("model encoded",
		"vertices", g.N(), "edges", g.EdgeCount(),
		"vars", m.NumVars(), "constraints", len(m.constraints),
		"usage_forcing", m.usageForcing)

	hooks.OnSolveStart(ctx, g.N())
	start := time.Now()
	status := ilp.Optimize(ctx, s)
	elapsed := time.Since(start)
	hooks.OnSolveComplete(ctx, status.String(), elapsed)
	logger.Debug("solver finished", "status", status, "duration", elapsed)

	sol, err := Decode(m, s, status)
	hooks.OnDecode(ctx, colorsOf(sol), err)
	if err != nil {
		var sf *SolveFailedError
		if errors.As(err, &sf) && ctx.Err() != nil {
			return nil, apperr.Wrap(apperr.ErrCodeTimeout, err, "no solution before %v", ctx.Err())
		}
		return nil, err
	}
	if err := sol.Validate(g); err != nil {
		return nil, fmt.Errorf("decoded solution: %w", err)
	}

	logger.Debug("coloring decoded", "colors_used", sol.ColorsUsed, "objective", sol.Objective)
	return sol, nil
}

func colorsOf(sol *Solution) int {
	if sol == nil {
		return 0
	}
	return sol.ColorsUsed
}
