package ilp

import (
	"context"
	"fmt"
	"strings"
)

// Var identifies a decision variable inside one solver instance. Values are
// only meaningful to the solver that created them.
type Var int

// Term is a coefficient applied to a variable.
type Term struct {
	Coef float64
	Var  Var
}

// LinExpr is a sum of terms. The zero value is the empty sum.
type LinExpr []Term

// Sum returns the expression v1 + v2 + ... with unit coefficients.
func Sum(vars ...Var) LinExpr {
	expr := make(LinExpr, len(vars))
	for i, v := range vars {
		expr[i] = Term{Coef: 1, Var: v}
	}
	return expr
}

// Plus returns expr + v.
func (e LinExpr) Plus(v Var) LinExpr {
	return append(e[:len(e):len(e)], Term{Coef: 1, Var: v})
}

// Minus returns expr - v.
func (e LinExpr) Minus(v Var) LinExpr {
	return append(e[:len(e):len(e)], Term{Coef: -1, Var: v})
}

// Vars returns the variables referenced by the expression, in term order.
func (e LinExpr) Vars() []Var {
	out := make([]Var, len(e))
	for i, t := range e {
		out[i] = t.Var
	}
	return out
}

// Eval computes the expression value under the given assignment.
func (e LinExpr) Eval(value func(Var) float64) float64 {
	var sum float64
	for _, t := range e {
		sum += t.Coef * value(t.Var)
	}
	return sum
}

// String formats the expression as "x1 + x2 - x0".
func (e LinExpr) String() string {
	if len(e) == 0 {
		return "0"
	}
	var b strings.Builder
	for i, t := range e {
		coef := t.Coef
		switch {
		case i == 0 && coef < 0:
			b.WriteString("-")
			coef = -coef
		case i > 0 && coef < 0:
			b.WriteString(" - ")
			coef = -coef
		case i > 0:
			b.WriteString(" + ")
		}
		if coef != 1 {
			fmt.Fprintf(&b, "%g ", coef)
		}
		fmt.Fprintf(&b, "x%d", int(t.Var))
	}
	return b.String()
}

// Relation is the comparison operator of a constraint.
type Relation int

const (
	LessEq Relation = iota
	Equal
	GreaterEq
)

func (r Relation) String() string {
	switch r {
	case LessEq:
		return "<="
	case Equal:
		return "="
	case GreaterEq:
		return ">="
	default:
		return fmt.Sprintf("Relation(%d)", int(r))
	}
}

// Holds reports whether lhs rel rhs is satisfied.
func (r Relation) Holds(lhs, rhs float64) bool {
	const eps = 1e-9
	switch r {
	case LessEq:
		return lhs <= rhs+eps
	case Equal:
		return lhs >= rhs-eps && lhs <= rhs+eps
	case GreaterEq:
		return lhs >= rhs-eps
	default:
		return false
	}
}

// Sense is the optimization direction.
type Sense int

const (
	Minimize Sense = iota
	Maximize
)

func (s Sense) String() string {
	if s == Maximize {
		return "maximize"
	}
	return "minimize"
}

// Status is the outcome of an optimize call.
type Status int

const (
	// Error means the engine failed or was stopped before finding any
	// solution. It is the zero value so that an unsolved model reads as
	// unusable.
	Error Status = iota
	Optimal
	Feasible
	Infeasible
	Unbounded
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "OPTIMAL"
	case Feasible:
		return "FEASIBLE"
	case Infeasible:
		return "INFEASIBLE"
	case Unbounded:
		return "UNBOUNDED"
	case Error:
		return "ERROR"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// ParseStatus is the inverse of [Status.String].
func ParseStatus(s string) (Status, error) {
	switch strings.ToUpper(s) {
	case "OPTIMAL":
		return Optimal, nil
	case "FEASIBLE":
		return Feasible, nil
	case "INFEASIBLE":
		return Infeasible, nil
	case "UNBOUNDED":
		return Unbounded, nil
	case "ERROR":
		return Error, nil
	default:
		return Error, fmt.Errorf("unknown solver status %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(b []byte) error {
	st, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// HasSolution reports whether variable values may be read after this status.
func (s Status) HasSolution() bool {
	return s == Optimal || s == Feasible
}

// Solver is an ILP engine restricted to binary variables.
//
// A solver instance models exactly one program: variables and constraints are
// registered, Optimize is called once, and values are read afterwards. Value
// and ObjectiveValue are only meaningful when Optimize returned a status for
// which [Status.HasSolution] is true.
type Solver interface {
	NewBinaryVar() Var
	AddConstraint(expr LinExpr, rel Relation, bound float64) error
	SetObjective(expr LinExpr, sense Sense) error
	Optimize() Status
	Value(v Var) float64
	ObjectiveValue() float64
}

// ContextOptimizer is implemented by solvers that can stop when a context is
// done. On cancellation they return Feasible with the best solution found so
// far, or Error when nothing was found.
type ContextOptimizer interface {
	OptimizeContext(ctx context.Context) Status
}

// Optimize runs s, honoring ctx when s implements [ContextOptimizer].
func Optimize(ctx context.Context, s Solver) Status {
	if co, ok := s.(ContextOptimizer); ok {
		return co.OptimizeContext(ctx)
	}
	if ctx.Err() != nil {
		return Error
	}
	return s.Optimize()
}

// Factory creates a fresh solver per coloring attempt.
type Factory func() Solver
