package coloring

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chromatic/pkg/graph"
	"github.com/matzehuels/chromatic/pkg/ilp"
)

// ConstraintKind classifies the rows of an encoded model.
type ConstraintKind int

const (
	// Assignment rows: sum_k x[i][k] = 1.
	Assignment ConstraintKind = iota
	// Conflict rows: x[i][k] + x[j][k] - w[k] <= 0.
	Conflict
	// UsageForcing rows: x[i][k] - w[k] <= 0.
	UsageForcing
)

func (k ConstraintKind) String() string {
	switch k {
	case Assignment:
		return "assignment"
	case Conflict:
		return "conflict"
	case UsageForcing:
		return "usage-forcing"
	default:
		return fmt.Sprintf("ConstraintKind(%d)", int(k))
	}
}

// Constraint is one registered row.
type Constraint struct {
	Kind  ConstraintKind
	Expr  ilp.LinExpr
	Rel   ilp.Relation
	Bound float64
}

// Holds reports whether the row is satisfied under value.
func (c Constraint) Holds(value func(ilp.Var) float64) bool {
	return c.Rel.Holds(c.Expr.Eval(value), c.Bound)
}

// EncodedModel is the result of [Encoder.Encode]: the variable handles and
// rows registered with one solver instance.
type EncodedModel struct {
	graph        *graph.Graph
	w            []ilp.Var
	x            [][]ilp.Var
	constraints  []Constraint
	objective    ilp.LinExpr
	usageForcing bool
}

// Graph returns the encoded graph.
func (m *EncodedModel) Graph() *graph.Graph { return m.graph }

// NumColors returns the size of the color palette, which equals the vertex
// count.
func (m *EncodedModel) NumColors() int { return len(m.w) }

// UsageForcing reports whether usage-forcing rows were added.
func (m *EncodedModel) UsageForcing() bool { return m.usageForcing }

// ColorVar returns w[k].
func (m *EncodedModel) ColorVar(k int) (ilp.Var, error) {
	if k < 0 || k >= len(m.w) {
		return 0, fmt.Errorf("color %d of %d: %w", k, len(m.w), ErrIndexOutOfRange)
	}
	return m.w[k], nil
}

// AssignVar returns x[i][k].
func (m *EncodedModel) AssignVar(i, k int) (ilp.Var, error) {
	if i < 0 || i >= len(m.x) {
		return 0, fmt.Errorf("vertex %d of %d: %w", i, len(m.x), ErrIndexOutOfRange)
	}
	if k < 0 || k >= len(m.x[i]) {
		return 0, fmt.Errorf("color %d of %d: %w", k, len(m.x[i]), ErrIndexOutOfRange)
	}
	return m.x[i][k], nil
}

// NumVars returns the number of variables the model created.
func (m *EncodedModel) NumVars() int {
	return len(m.w) + len(m.x)*len(m.w)
}

// Constraints returns a copy of the registered rows in registration order.
func (m *EncodedModel) Constraints() []Constraint {
	return slices.Clone(m.constraints)
}

// CountByKind returns how many rows of each kind were registered.
func (m *EncodedModel) CountByKind() map[ConstraintKind]int {
	counts := make(map[ConstraintKind]int, 3)
	for _, c := range m.constraints {
		counts[c.Kind]++
	}
	return counts
}

// Objective returns the minimized expression sum_k w[k].
func (m *EncodedModel) Objective() ilp.LinExpr {
	return slices.Clone(m.objective)
}

// Option configures an Encoder.
type Option func(*Encoder)

// WithUsageForcing adds x[i][k] <= w[k] for every vertex and color so that
// the objective counts every color in the assignment, including colors used
// only by isolated vertices.
func WithUsageForcing(enabled bool) Option {
	return func(e *Encoder) { e.usageForcing = enabled }
}

// WithLogger sets the logger used by [Color]. [Encoder.Encode] does not log.
func WithLogger(l *log.Logger) Option {
	return func(e *Encoder) { e.logger = l }
}

// Encoder builds the coloring program. The zero value is the default
// encoder.
type Encoder struct {
	usageForcing bool
	logger       *log.Logger
}

// NewEncoder returns an encoder configured by opts.
func NewEncoder(opts ...Option) *Encoder {
	e := &Encoder{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ModelSize returns the number of variables and rows [Encoder.Encode] would
// create for g, without building anything.
func ModelSize(g *graph.Graph, usageForcing bool) (vars, rows int) {
	n := g.N()
	vars = n + n*n
	rows = n + g.EdgeCount()*n
	if usageForcing {
		rows += n * n
	}
	return vars, rows
}

// Encode creates the variables and rows for g in s. It does not optimize.
// Variables are created color-usage first, then the assignment grid in
// row-major order. Conflict rows are grouped by color.
func (e *Encoder) Encode(g *graph.Graph, s ilp.Solver) (*EncodedModel, error) {
	if g == nil {
		return nil, fmt.Errorf("encode: nil graph")
	}
	if s == nil {
		return nil, fmt.Errorf("encode: nil solver")
	}

	n := g.N()
	m := &EncodedModel{
		graph:        g,
		w:            make([]ilp.Var, n),
		x:            make([][]ilp.Var, n),
		usageForcing: e.usageForcing,
	}
	for k := range m.w {
		m.w[k] = s.NewBinaryVar()
	}
	for i := range m.x {
		m.x[i] = make([]ilp.Var, n)
		for k := range m.x[i] {
			m.x[i][k] = s.NewBinaryVar()
		}
	}

	m.objective = ilp.Sum(m.w...)
	if err := s.SetObjective(m.objective, ilp.Minimize); err != nil {
		return nil, fmt.Errorf("encode objective: %w", err)
	}

	add := func(c Constraint) error {
		if err := s.AddConstraint(c.Expr, c.Rel, c.Bound); err != nil {
			return fmt.Errorf("encode %s row: %w", c.Kind, err)
		}
		m.constraints = append(m.constraints, c)
		return nil
	}

	for i := 0; i < n; i++ {
		if err := add(Constraint{Kind: Assignment, Expr: ilp.Sum(m.x[i]...), Rel: ilp.Equal, Bound: 1}); err != nil {
			return nil, err
		}
	}

	edges := g.Edges()
	for k := 0; k < n; k++ {
		for _, edge := range edges {
			expr := ilp.Sum(m.x[edge.U][k], m.x[edge.V][k]).Minus(m.w[k])
			if err := add(Constraint{Kind: Conflict, Expr: expr, Rel: ilp.LessEq, Bound: 0}); err != nil {
				return nil, err
			}
		}
	}

	if e.usageForcing {
		for i := 0; i < n; i++ {
			for k := 0; k < n; k++ {
				expr := ilp.Sum(m.x[i][k]).Minus(m.w[k])
				if err := add(Constraint{Kind: UsageForcing, Expr: expr, Rel: ilp.LessEq, Bound: 0}); err != nil {
					return nil, err
				}
			}
		}
	}

	return m, nil
}
