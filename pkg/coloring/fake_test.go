package coloring

import (
	"errors"

	"github.com/matzehuels/chromatic/pkg/ilp"
)

// scriptedSolver records what the encoder registers and answers Optimize,
// Value and ObjectiveValue from preset data.
type scriptedSolver struct {
	nvars     int
	rows      []scriptedRow
	objective ilp.LinExpr
	sense     ilp.Sense

	status    ilp.Status
	values    map[ilp.Var]float64
	objValue  float64
	failAfter int // AddConstraint fails once this many rows exist; 0 disables

	optimizeCalls int
}

type scriptedRow struct {
	expr  ilp.LinExpr
	rel   ilp.Relation
	bound float64
}

var errScripted = errors.New("scripted failure")

func newScriptedSolver(status ilp.Status) *scriptedSolver {
	return &scriptedSolver{status: status, values: map[ilp.Var]float64{}}
}

func (s *scriptedSolver) NewBinaryVar() ilp.Var {
	s.nvars++
	return ilp.Var(s.nvars - 1)
}

func (s *scriptedSolver) AddConstraint(expr ilp.LinExpr, rel ilp.Relation, bound float64) error {
	if s.failAfter > 0 && len(s.rows) >= s.failAfter {
		return errScripted
	}
	s.rows = append(s.rows, scriptedRow{expr, rel, bound})
	return nil
}

func (s *scriptedSolver) SetObjective(expr ilp.LinExpr, sense ilp.Sense) error {
	s.objective, s.sense = expr, sense
	return nil
}

func (s *scriptedSolver) Optimize() ilp.Status {
	s.optimizeCalls++
	return s.status
}

func (s *scriptedSolver) Value(v ilp.Var) float64 { return s.values[v] }

func (s *scriptedSolver) ObjectiveValue() float64 { return s.objValue }

// assign sets x[i][colors[i]] to 1 and every used w[k] to 1.
func (s *scriptedSolver) assign(m *EncodedModel, colors []int) {
	for i, c := range colors {
		x, _ := m.AssignVar(i, c)
		s.values[x] = 1
		w, _ := m.ColorVar(c)
		s.values[w] = 1
	}
}
