package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/chromatic/pkg/cache"
	apperr "github.com/matzehuels/chromatic/pkg/errors"
	"github.com/matzehuels/chromatic/pkg/graph"
	"github.com/matzehuels/chromatic/pkg/ilp"
	"github.com/matzehuels/chromatic/pkg/ilp/pbsolver"
	"github.com/matzehuels/chromatic/pkg/render"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(&strings.Builder{}, log.Options{})
}

// countingFactory hands out gophersat solvers and counts them.
func countingFactory(n *atomic.Int32) ilp.Factory {
	return func() ilp.Solver {
		n.Add(1)
		return pbsolver.New()
	}
}

// brokenCache fails every operation.
type brokenCache struct{}

var errBroken = errors.New("backend down")

func (brokenCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, errBroken }
func (brokenCache) Set(context.Context, string, []byte, time.Duration) error {
	return errBroken
}
func (brokenCache) Delete(context.Context, string) error { return errBroken }
func (brokenCache) Close() error                         { return nil }

// setCounter records writes and never hits.
type setCounter struct {
	sets atomic.Int32
}

func (*setCounter) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (c *setCounter) Set(context.Context, string, []byte, time.Duration) error {
	c.sets.Add(1)
	return nil
}
func (*setCounter) Delete(context.Context, string) error { return nil }
func (*setCounter) Close() error                         { return nil }

func TestExecuteDoesNotCacheFeasible(t *testing.T) {
	c := &setCounter{}
	r := NewRunner(c, nil, quietLogger())
	k14, err := graph.Complete(14)
	require.NoError(t, err)

	res, err := r.Execute(context.Background(), k14, Options{Timeout: 200 * time.Millisecond})
	require.NoError(t, err)
	assert.Equal(t, ilp.Feasible, res.Solution.Status)
	assert.Equal(t, 14, res.Solution.ColorsUsed)
	assert.NoError(t, res.Solution.Validate(k14))
	assert.Equal(t, int32(0), c.sets.Load(), "feasible solutions must not be cached")

	res, err = r.Execute(context.Background(), graph.Petersen(), Options{})
	require.NoError(t, err)
	assert.Equal(t, ilp.Optimal, res.Solution.Status)
	assert.Equal(t, int32(1), c.sets.Load())
}

func TestExecuteRejectsOversizedGraph(t *testing.T) {
	var solvers atomic.Int32
	r := NewRunner(nil, nil, quietLogger())
	g, err := graph.Empty(50)
	require.NoError(t, err)

	_, err = r.Execute(context.Background(), g, Options{
		MaxVertices:   49,
		SolverFactory: countingFactory(&solvers),
		SolverName:    "counting",
	})
	assert.Equal(t, apperr.ErrCodeInvalidInput, apperr.GetCode(err))
	assert.Equal(t, int32(0), solvers.Load(), "nothing may be encoded")
}

func TestExecuteColorsGraph(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())

	res, err := r.Execute(context.Background(), graph.Petersen(), Options{})
	require.NoError(t, err)

	assert.NotEmpty(t, res.RunID)
	assert.Len(t, res.GraphHash, 64)
	assert.Equal(t, 3, res.Solution.ColorsUsed)
	assert.Equal(t, ilp.Optimal, res.Solution.Status)
	assert.NoError(t, res.Solution.Validate(graph.Petersen()))
	assert.Equal(t, 10, res.Stats.Vertices)
	assert.Equal(t, 15, res.Stats.Edges)
	assert.Empty(t, res.Artifacts)
	assert.False(t, res.CacheInfo.SolveHit)
}

func TestExecuteRendersDOT(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	g, err := graph.Cycle(5)
	require.NoError(t, err)

	res, err := r.Execute(context.Background(), g, Options{Formats: []render.Format{render.DOT}, Detailed: true})
	require.NoError(t, err)

	src := string(res.Artifacts[render.DOT])
	assert.True(t, strings.HasPrefix(src, "graph G {"))
	assert.Contains(t, src, "0 -- 1")
	assert.Contains(t, src, `color 2`)
}

func TestExecuteUsesSolutionCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	r := NewRunner(c, nil, quietLogger())
	var solves atomic.Int32
	opts := Options{SolverFactory: countingFactory(&solves), SolverName: "counting"}

	g, err := graph.CompleteBipartite(3, 4)
	require.NoError(t, err)

	first, err := r.Execute(context.Background(), g, opts)
	require.NoError(t, err)
	assert.False(t, first.CacheInfo.SolveHit)

	second, err := r.Execute(context.Background(), g, opts)
	require.NoError(t, err)
	assert.True(t, second.CacheInfo.SolveHit)
	assert.Equal(t, first.Solution.Colors, second.Solution.Colors)
	assert.NotEqual(t, first.RunID, second.RunID)
	assert.Equal(t, int32(1), solves.Load())

	opts.Refresh = true
	third, err := r.Execute(context.Background(), g, opts)
	require.NoError(t, err)
	assert.False(t, third.CacheInfo.SolveHit)
	assert.Equal(t, int32(2), solves.Load())
}

func TestExecuteCacheKeyIncludesOptions(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	r := NewRunner(c, nil, quietLogger())
	var solves atomic.Int32
	g, err := graph.Cycle(4)
	require.NoError(t, err)

	_, err = r.Execute(context.Background(), g, Options{SolverFactory: countingFactory(&solves), SolverName: "counting"})
	require.NoError(t, err)
	res, err := r.Execute(context.Background(), g, Options{SolverFactory: countingFactory(&solves), SolverName: "counting", UsageForcing: true})
	require.NoError(t, err)

	assert.False(t, res.CacheInfo.SolveHit)
	assert.Equal(t, int32(2), solves.Load())
}

func TestExecuteUsesArtifactCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	r := NewRunner(c, nil, quietLogger())
	opts := Options{Formats: []render.Format{render.DOT}}

	first, err := r.Execute(context.Background(), graph.Petersen(), opts)
	require.NoError(t, err)
	assert.False(t, first.CacheInfo.RenderHit)

	second, err := r.Execute(context.Background(), graph.Petersen(), opts)
	require.NoError(t, err)
	assert.True(t, second.CacheInfo.RenderHit)
	assert.Equal(t, first.Artifacts[render.DOT], second.Artifacts[render.DOT])
}

func TestExecuteSurvivesBrokenCache(t *testing.T) {
	r := NewRunner(brokenCache{}, nil, quietLogger())

	res, err := r.Execute(context.Background(), graph.Petersen(), Options{Formats: []render.Format{render.DOT}})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Solution.ColorsUsed)
	assert.False(t, res.CacheInfo.SolveHit)
}

func TestExecuteWithRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	c, err := cache.NewRedisCache(context.Background(), mr.Addr())
	require.NoError(t, err)
	r := NewRunner(c, cache.NewScopedKeyer(nil, "test:"), quietLogger())
	t.Cleanup(func() { _ = r.Close() })

	_, err = r.Execute(context.Background(), graph.Petersen(), Options{})
	require.NoError(t, err)

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.True(t, strings.HasPrefix(keys[0], "test:solution:"))

	res, err := r.Execute(context.Background(), graph.Petersen(), Options{})
	require.NoError(t, err)
	assert.True(t, res.CacheInfo.SolveHit)
}

func TestExecuteIgnoresCorruptCacheEntry(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	r := NewRunner(c, nil, quietLogger())
	g := graph.Petersen()
	opts := Options{}
	require.NoError(t, opts.ValidateAndSetDefaults())

	hash, err := GraphHash(g)
	require.NoError(t, err)
	key := r.Keyer.SolutionKey(hash, opts.SolutionKeyOpts())
	require.NoError(t, c.Set(context.Background(), key, []byte(`{"colors":[0,0,0]}`), time.Hour))

	res, err := r.Execute(context.Background(), g, Options{})
	require.NoError(t, err)
	assert.False(t, res.CacheInfo.SolveHit)
	assert.NoError(t, res.Solution.Validate(g))
}

func TestExecuteRejectsBadInput(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())

	_, err := r.Execute(context.Background(), nil, Options{})
	assert.Error(t, err)

	_, err = r.Execute(context.Background(), graph.Petersen(), Options{Formats: []render.Format{"gif"}})
	assert.Error(t, err)
}

func TestGraphHashIgnoresEdgeOrder(t *testing.T) {
	a := graph.MustNew(3, []graph.Edge{{U: 0, V: 1}, {U: 1, V: 2}})
	b := graph.MustNew(3, []graph.Edge{{U: 2, V: 1}, {U: 1, V: 0}})
	c := graph.MustNew(4, []graph.Edge{{U: 0, V: 1}, {U: 1, V: 2}})

	ha, err := GraphHash(a)
	require.NoError(t, err)
	hb, err := GraphHash(b)
	require.NoError(t, err)
	hc, err := GraphHash(c)
	require.NoError(t, err)

	assert.Equal(t, ha, hb)
	assert.NotEqual(t, ha, hc)
}
