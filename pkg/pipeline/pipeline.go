// Package pipeline provides the core coloring pipeline for chromatic.
//
// This package implements the complete solve → render pipeline used by the
// CLI and the HTTP API. Both entry points go through a [Runner] so that they
// share defaults, cache keys and logging.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Solve: encode the graph as a 0/1 program, optimize and decode
//  2. Render: draw the colored graph in the requested formats (DOT, SVG, PNG)
//
// Each stage consults the cache first. Solutions are keyed by a hash of the
// normalized graph and the encoder options; drawings by a hash of the
// solution and the render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, g, pipeline.Options{
//	    Formats: []render.Format{render.SVG},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Solution.ColorsUsed)
//	svg := result.Artifacts[render.SVG]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chromatic/pkg/cache"
	"github.com/matzehuels/chromatic/pkg/coloring"
	apperr "github.com/matzehuels/chromatic/pkg/errors"
	"github.com/matzehuels/chromatic/pkg/graph"
	"github.com/matzehuels/chromatic/pkg/ilp"
	"github.com/matzehuels/chromatic/pkg/ilp/pbsolver"
	"github.com/matzehuels/chromatic/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultTimeout bounds a single solve.
	DefaultTimeout = 60 * time.Second

	// MaxTimeout caps caller-supplied timeouts.
	MaxTimeout = 10 * time.Minute

	// DefaultSolverName identifies the bundled gophersat backend in cache keys.
	DefaultSolverName = "gophersat"

	// DefaultMaxVertices caps the graph order. The program has n + n²
	// variables, so memory grows quadratically before the solver starts.
	DefaultMaxVertices = 1000

	// DefaultMaxRows caps the number of constraint rows (n + |E|·n, plus
	// n² with usage forcing).
	DefaultMaxRows = 1_000_000
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	// Solve options
	UsageForcing bool          `json:"usage_forcing,omitempty"`
	Timeout      time.Duration `json:"timeout,omitempty"`
	Refresh      bool          `json:"refresh,omitempty"`
	MaxVertices  int           `json:"max_vertices,omitempty"`
	MaxRows      int           `json:"max_rows,omitempty"`

	// Render options
	Formats  []render.Format `json:"formats,omitempty"`
	Detailed bool            `json:"detailed,omitempty"`

	// Runtime options (not serialized)
	Logger        *log.Logger `json:"-"`
	SolverFactory ilp.Factory `json:"-"`
	// SolverName distinguishes cached solutions of different backends.
	SolverName string `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs and API responses.
	RunID string

	// GraphHash is the content hash of the normalized graph.
	GraphHash string

	// Solution is the decoded coloring.
	Solution *coloring.Solution

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[render.Format][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Vertices   int
	Edges      int
	SolveTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SolveHit  bool // Whether the solution came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and fills in defaults.
// Calling it more than once has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Timeout < 0 {
		return apperr.New(apperr.ErrCodeInvalidInput, "timeout must not be negative, got %v", o.Timeout)
	}
	if o.Timeout == 0 {
		o.Timeout = DefaultTimeout
	}
	if o.Timeout > MaxTimeout {
		return apperr.New(apperr.ErrCodeInvalidInput, "timeout %v exceeds the maximum of %v", o.Timeout, MaxTimeout)
	}
	if o.MaxVertices < 0 || o.MaxRows < 0 {
		return apperr.New(apperr.ErrCodeInvalidInput, "size limits must not be negative")
	}
	if o.MaxVertices == 0 {
		o.MaxVertices = DefaultMaxVertices
	}
	if o.MaxRows == 0 {
		o.MaxRows = DefaultMaxRows
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.Formats = dedupFormats(o.Formats)
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.SolverFactory == nil {
		o.SolverFactory = pbsolver.Factory(pbsolver.WithLogger(o.Logger))
		o.SolverName = DefaultSolverName
	}
	if o.SolverName == "" {
		return apperr.New(apperr.ErrCodeInvalidInput, "solver_name is required with a custom solver factory")
	}
	o.validated = true
	return nil
}

// CheckSize rejects graphs whose program would exceed the configured limits.
// It only counts; nothing is allocated for g.
func (o *Options) CheckSize(g *graph.Graph) error {
	if g.N() > o.MaxVertices {
		return apperr.New(apperr.ErrCodeInvalidInput,
			"graph has %d vertices, the limit is %d", g.N(), o.MaxVertices)
	}
	if _, rows := coloring.ModelSize(g, o.UsageForcing); rows > o.MaxRows {
		return apperr.New(apperr.ErrCodeInvalidInput,
			"graph needs %d constraint rows, the limit is %d", rows, o.MaxRows)
	}
	return nil
}

// ValidateFormats checks that every format is known.
func ValidateFormats(formats []render.Format) error {
	for _, f := range formats {
		if _, err := render.ParseFormat(string(f)); err != nil {
			return err
		}
	}
	return nil
}

func dedupFormats(formats []render.Format) []render.Format {
	seen := make(map[render.Format]bool, len(formats))
	out := formats[:0:0]
	for _, f := range formats {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}

// EncoderOptions returns the coloring options for this run.
func (o *Options) EncoderOptions() []coloring.Option {
	return []coloring.Option{
		coloring.WithUsageForcing(o.UsageForcing),
		coloring.WithLogger(o.Logger),
	}
}

// SolutionKeyOpts returns cache key options for the solve stage.
func (o *Options) SolutionKeyOpts() cache.SolutionKeyOpts {
	return cache.SolutionKeyOpts{
		UsageForcing: o.UsageForcing,
		Solver:       o.SolverName,
	}
}

// ArtifactKeyOpts returns cache key options for a rendered format.
func (o *Options) ArtifactKeyOpts(format render.Format) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   string(format),
		Detailed: o.Detailed,
	}
}

