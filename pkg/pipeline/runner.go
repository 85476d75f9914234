package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/chromatic/pkg/cache"
	"github.com/matzehuels/chromatic/pkg/coloring"
	"github.com/matzehuels/chromatic/pkg/graph"
	"github.com/matzehuels/chromatic/pkg/ilp"
	graphio "github.com/matzehuels/chromatic/pkg/io"
	"github.com/matzehuels/chromatic/pkg/observability"
	"github.com/matzehuels/chromatic/pkg/render"
	"github.com/matzehuels/chromatic/pkg/render/dot"
)

// Cache key types reported to observability hooks.
const (
	keyTypeSolution = "solution"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// SolutionTTL overrides cache.TTLSolution when positive.
	SolutionTTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete solve → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, g *graph.Graph, opts Options) (*Result, error) {
	if g == nil {
		return nil, fmt.Errorf("invalid options: graph is nil")
	}
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	graphHash, err := GraphHash(g)
	if err != nil {
		return nil, err
	}
	result := &Result{
		RunID:     uuid.NewString(),
		GraphHash: graphHash,
		Artifacts: make(map[render.Format][]byte),
		Stats: Stats{
			Vertices: g.N(),
			Edges:    g.EdgeCount(),
		},
	}
	logger := opts.Logger.With("run", result.RunID)
	opts.Logger = logger

	// Stage 1: Solve
	solveStart := time.Now()
	sol, solveHit, err := r.SolveWithCacheInfo(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}
	result.Solution = sol
	result.Stats.SolveTime = time.Since(solveStart)
	result.CacheInfo.SolveHit = solveHit

	logger.Info("colored graph",
		"vertices", g.N(),
		"edges", g.EdgeCount(),
		"colors", sol.ColorsUsed,
		"status", sol.Status,
		"cached", solveHit,
		"duration", result.Stats.SolveTime)

	if len(opts.Formats) == 0 {
		return result, nil
	}

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, g, sol, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// SolveWithCacheInfo colors g, consulting the solution cache first, and
// reports whether the cache served the result. Only optimal solutions are
// stored; a coloring cut short by the timeout is returned but not cached.
func (r *Runner) SolveWithCacheInfo(ctx context.Context, g *graph.Graph, opts Options) (*coloring.Solution, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	if err := opts.CheckSize(g); err != nil {
		return nil, false, err
	}
	hooks := observability.Cache()

	graphHash, err := GraphHash(g)
	if err != nil {
		return nil, false, err
	}
	cacheKey := r.Keyer.SolutionKey(graphHash, opts.SolutionKeyOpts())

	if !opts.Refresh {
		if sol, ok := r.cachedSolution(ctx, g, cacheKey, opts.Logger); ok {
			hooks.OnCacheHit(ctx, keyTypeSolution)
			return sol, true, nil
		}
		hooks.OnCacheMiss(ctx, keyTypeSolution)
	}

	solveCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()
	sol, err := coloring.Color(solveCtx, g, opts.SolverFactory(), opts.EncoderOptions()...)
	if err != nil {
		return nil, false, err
	}

	if sol.Status == ilp.Optimal {
		if data, err := json.Marshal(sol); err == nil {
			if err := r.Cache.Set(ctx, cacheKey, data, r.solutionTTL()); err != nil {
				opts.Logger.Warn("cache write failed", "key", cacheKey, "error", err)
			} else {
				hooks.OnCacheSet(ctx, keyTypeSolution, len(data))
			}
		}
	}
	return sol, false, nil
}

// Solve is a convenience wrapper that discards the cache hit info.
func (r *Runner) Solve(ctx context.Context, g *graph.Graph, opts Options) (*coloring.Solution, error) {
	sol, _, err := r.SolveWithCacheInfo(ctx, g, opts)
	return sol, err
}

func (r *Runner) cachedSolution(ctx context.Context, g *graph.Graph, key string, logger *log.Logger) (*coloring.Solution, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "key", key, "error", err)
		return nil, false
	}
	if !hit {
		return nil, false
	}
	var sol coloring.Solution
	if err := json.Unmarshal(data, &sol); err != nil {
		logger.Debug("discarding unreadable cache entry", "key", key, "error", err)
		return nil, false
	}
	if err := sol.Validate(g); err != nil {
		logger.Debug("discarding stale cache entry", "key", key, "error", err)
		return nil, false
	}
	return &sol, true
}

// RenderWithCacheInfo draws the colored graph in every requested format and
// reports whether all of them came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g *graph.Graph, sol *coloring.Solution, opts Options) (map[render.Format][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	hooks := observability.Cache()

	solutionHash, err := SolutionHash(g, sol)
	if err != nil {
		return nil, false, err
	}

	artifacts := make(map[render.Format][]byte, len(opts.Formats))
	allCached := true
	var src string
	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(solutionHash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil {
				opts.Logger.Warn("cache read failed", "key", cacheKey, "error", err)
			}
			if err == nil && hit {
				hooks.OnCacheHit(ctx, keyTypeArtifact)
				artifacts[format] = data
				continue
			}
			hooks.OnCacheMiss(ctx, keyTypeArtifact)
		}
		allCached = false

		if src == "" {
			src = dot.ToDOT(g, sol, dot.Options{Detailed: opts.Detailed})
		}
		data, err := dot.Render(ctx, src, format)
		if err != nil {
			return nil, false, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data

		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err != nil {
			opts.Logger.Warn("cache write failed", "key", cacheKey, "error", err)
		} else {
			hooks.OnCacheSet(ctx, keyTypeArtifact, len(data))
		}
	}
	return artifacts, allCached, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, g *graph.Graph, sol *coloring.Solution, opts Options) (map[render.Format][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, g, sol, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) solutionTTL() time.Duration {
	if r.SolutionTTL > 0 {
		return r.SolutionTTL
	}
	return cache.TTLSolution
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// GraphHash returns the content hash of g's canonical JSON encoding. Graphs
// equal up to edge order and orientation hash the same.
func GraphHash(g *graph.Graph) (string, error) {
	var buf bytes.Buffer
	if err := graphio.WriteJSON(g, &buf); err != nil {
		return "", fmt.Errorf("hash graph: %w", err)
	}
	return cache.Hash(buf.Bytes()), nil
}

// SolutionHash identifies a coloring of g for artifact cache keys.
func SolutionHash(g *graph.Graph, sol *coloring.Solution) (string, error) {
	graphHash, err := GraphHash(g)
	if err != nil {
		return "", err
	}
	colors, err := json.Marshal(sol.Colors)
	if err != nil {
		return "", fmt.Errorf("hash solution: %w", err)
	}
	return cache.Hash(append([]byte(graphHash+":"), colors...)), nil
}
