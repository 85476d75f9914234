package coloring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/chromatic/pkg/graph"
	"github.com/matzehuels/chromatic/pkg/ilp"
)

func TestEncodeCounts(t *testing.T) {
	tests := []struct {
		name         string
		g            *graph.Graph
		forcing      bool
		assignment   int
		conflict     int
		usageForcing int
	}{
		{"single vertex", graph.MustNew(1, nil), false, 1, 0, 0},
		{"edgeless", graph.MustNew(3, nil), false, 3, 0, 0},
		{"edgeless forced", graph.MustNew(3, nil), true, 3, 0, 9},
		{"triangle", graph.MustNew(3, []graph.Edge{{U: 0, V: 1}, {U: 1, V: 2}, {U: 0, V: 2}}), false, 3, 9, 0},
		{"path with duplicate", graph.MustNew(3, []graph.Edge{{U: 0, V: 1}, {U: 1, V: 0}, {U: 1, V: 2}}), false, 3, 6, 0},
		{"petersen", graph.Petersen(), false, 10, 150, 0},
		{"petersen forced", graph.Petersen(), true, 10, 150, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newScriptedSolver(ilp.Optimal)
			m, err := NewEncoder(WithUsageForcing(tt.forcing)).Encode(tt.g, s)
			require.NoError(t, err)

			n := tt.g.N()
			assert.Equal(t, n+n*n, s.nvars)
			assert.Equal(t, n+n*n, m.NumVars())
			assert.Equal(t, n, m.NumColors())
			assert.Equal(t, tt.forcing, m.UsageForcing())

			counts := m.CountByKind()
			assert.Equal(t, tt.assignment, counts[Assignment])
			assert.Equal(t, tt.conflict, counts[Conflict])
			assert.Equal(t, tt.usageForcing, counts[UsageForcing])
			assert.Len(t, s.rows, tt.assignment+tt.conflict+tt.usageForcing)

			vars, rows := ModelSize(tt.g, tt.forcing)
			assert.Equal(t, m.NumVars(), vars)
			assert.Equal(t, len(m.Constraints()), rows)
			assert.Equal(t, 0, s.optimizeCalls, "Encode must not optimize")
		})
	}
}

func TestEncodeVariableLayout(t *testing.T) {
	s := newScriptedSolver(ilp.Optimal)
	m, err := NewEncoder().Encode(graph.MustNew(3, []graph.Edge{{U: 0, V: 1}}), s)
	require.NoError(t, err)

	for k := 0; k < 3; k++ {
		w, err := m.ColorVar(k)
		require.NoError(t, err)
		assert.Equal(t, ilp.Var(k), w)
	}
	x, err := m.AssignVar(1, 2)
	require.NoError(t, err)
	assert.Equal(t, ilp.Var(3+1*3+2), x)

	seen := map[ilp.Var]bool{}
	for i := 0; i < 3; i++ {
		for k := 0; k < 3; k++ {
			v, err := m.AssignVar(i, k)
			require.NoError(t, err)
			assert.False(t, seen[v], "x[%d][%d] reuses %v", i, k, v)
			seen[v] = true
		}
	}
}

func TestEncodeBoundsChecks(t *testing.T) {
	m, err := NewEncoder().Encode(graph.MustNew(2, nil), newScriptedSolver(ilp.Optimal))
	require.NoError(t, err)

	_, err = m.ColorVar(2)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = m.ColorVar(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = m.AssignVar(2, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = m.AssignVar(0, 5)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestEncodeRows(t *testing.T) {
	s := newScriptedSolver(ilp.Optimal)
	m, err := NewEncoder().Encode(graph.MustNew(2, []graph.Edge{{U: 0, V: 1}}), s)
	require.NoError(t, err)

	assert.Equal(t, ilp.Minimize, s.sense)
	assert.Equal(t, ilp.Sum(0, 1), s.objective)
	assert.Equal(t, ilp.Sum(0, 1), m.Objective())

	rows := m.Constraints()
	require.Len(t, rows, 4)

	// x[0][*] = 1
	assert.Equal(t, Assignment, rows[0].Kind)
	assert.Equal(t, ilp.Equal, rows[0].Rel)
	assert.Equal(t, 1.0, rows[0].Bound)
	assert.Equal(t, "x2 + x3", rows[0].Expr.String())

	// x[0][0] + x[1][0] - w[0] <= 0
	assert.Equal(t, Conflict, rows[2].Kind)
	assert.Equal(t, ilp.LessEq, rows[2].Rel)
	assert.Equal(t, 0.0, rows[2].Bound)
	assert.Equal(t, "x2 + x4 - x0", rows[2].Expr.String())
	assert.Equal(t, "x3 + x5 - x1", rows[3].Expr.String())

	for i, r := range s.rows {
		assert.Equal(t, rows[i].Expr, r.expr)
	}
}

func TestEncodeConflictRowsByColor(t *testing.T) {
	m, err := NewEncoder().Encode(graph.MustNew(3, []graph.Edge{{U: 0, V: 1}, {U: 1, V: 2}}), newScriptedSolver(ilp.Optimal))
	require.NoError(t, err)

	var conflicts []string
	for _, r := range m.Constraints() {
		if r.Kind == Conflict {
			conflicts = append(conflicts, r.Expr.String())
		}
	}
	assert.Equal(t, []string{
		"x3 + x6 - x0", "x6 + x9 - x0",
		"x4 + x7 - x1", "x7 + x10 - x1",
		"x5 + x8 - x2", "x8 + x11 - x2",
	}, conflicts)
}

func TestEncodeUsageForcingRows(t *testing.T) {
	m, err := NewEncoder(WithUsageForcing(true)).Encode(graph.MustNew(2, nil), newScriptedSolver(ilp.Optimal))
	require.NoError(t, err)

	var forced []string
	for _, r := range m.Constraints() {
		if r.Kind == UsageForcing {
			forced = append(forced, r.Expr.String())
		}
	}
	assert.Equal(t, []string{"x2 - x0", "x3 - x1", "x4 - x0", "x5 - x1"}, forced)
}

func TestEncodeErrors(t *testing.T) {
	_, err := NewEncoder().Encode(nil, newScriptedSolver(ilp.Optimal))
	assert.Error(t, err)

	_, err = NewEncoder().Encode(graph.MustNew(2, nil), nil)
	assert.Error(t, err)

	s := newScriptedSolver(ilp.Optimal)
	s.failAfter = 1
	_, err = NewEncoder().Encode(graph.MustNew(2, nil), s)
	assert.ErrorIs(t, err, errScripted)
	assert.ErrorContains(t, err, "assignment row")
}

func TestConstraintKindString(t *testing.T) {
	assert.Equal(t, "assignment", Assignment.String())
	assert.Equal(t, "conflict", Conflict.String())
	assert.Equal(t, "usage-forcing", UsageForcing.String())
	assert.Equal(t, "ConstraintKind(7)", ConstraintKind(7).String())
}
