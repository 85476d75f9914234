// Package pbsolver implements [ilp.Solver] on top of the gophersat
// pseudo-boolean solver.
//
// A 0/1 integer program is a pseudo-boolean problem: every variable becomes a
// boolean literal, every constraint a weighted cardinality constraint and the
// objective a weighted cost function over literals. Coefficients and bounds
// must therefore be integral.
//
// Negative objective coefficients are rewritten as c*x = c + |c|*(not x), so
// the cost function handed to gophersat only carries positive weights;
// [Solver.ObjectiveValue] adds the constant back. Maximization is solved as
// minimization of the negated objective.
//
// Because every variable is binary the program is never unbounded, so this
// adapter never reports [ilp.Unbounded].
package pbsolver

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/crillab/gophersat/solver"
	"golang.org/x/sync/semaphore"

	"github.com/matzehuels/chromatic/pkg/ilp"
)

// Solver adapts gophersat to [ilp.Solver]. It is not safe for concurrent use.
type Solver struct {
	logger *log.Logger
	slots  *semaphore.Weighted

	nvars   int
	constrs []solver.PBConstr

	objLits    []int
	objWeights []int
	objOffset  int
	objSign    int

	optimized bool
	status    ilp.Status
	model     []bool
	weight    int
}

// Option configures a Solver.
type Option func(*Solver)

// WithLogger sets the logger used for debug output. By default nothing is
// logged.
func WithLogger(l *log.Logger) Option {
	return func(s *Solver) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSearchSlots makes every search hold one unit of slots until it
// really ends. A search abandoned by OptimizeContext keeps its unit until
// gophersat returns, so solvers sharing slots never run more searches at
// once than its weight.
func WithSearchSlots(slots *semaphore.Weighted) Option {
	return func(s *Solver) { s.slots = slots }
}

// New returns an empty solver.
func New(opts ...Option) *Solver {
	s := &Solver{objSign: 1, status: ilp.Error}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	return s
}

// Factory returns an [ilp.Factory] producing solvers with the given options.
func Factory(opts ...Option) ilp.Factory {
	return func() ilp.Solver { return New(opts...) }
}

// NewBinaryVar implements [ilp.Solver].
func (s *Solver) NewBinaryVar() ilp.Var {
	s.nvars++
	return ilp.Var(s.nvars - 1)
}

// NumVars returns the number of variables created so far.
func (s *Solver) NumVars() int { return s.nvars }

// NumConstraints returns the number of pseudo-boolean constraints registered.
// An equality counts as two.
func (s *Solver) NumConstraints() int { return len(s.constrs) }

// AddConstraint implements [ilp.Solver].
func (s *Solver) AddConstraint(expr ilp.LinExpr, rel ilp.Relation, bound float64) error {
	if s.optimized {
		return fmt.Errorf("pbsolver: constraint added after optimize")
	}
	lits, weights, err := s.terms(expr)
	if err != nil {
		return err
	}
	rhs, err := integral(bound)
	if err != nil {
		return fmt.Errorf("pbsolver: bound: %w", err)
	}

	switch rel {
	case ilp.GreaterEq:
		s.constrs = append(s.constrs, solver.GtEq(lits, weights, rhs))
	case ilp.LessEq:
		s.constrs = append(s.constrs, solver.LtEq(lits, weights, rhs))
	case ilp.Equal:
		s.constrs = append(s.constrs, solver.Eq(lits, weights, rhs)...)
	default:
		return fmt.Errorf("pbsolver: unsupported relation %v", rel)
	}
	return nil
}

// SetObjective implements [ilp.Solver]. Calling it again replaces the
// previous objective.
func (s *Solver) SetObjective(expr ilp.LinExpr, sense ilp.Sense) error {
	if s.optimized {
		return fmt.Errorf("pbsolver: objective set after optimize")
	}
	lits, weights, err := s.terms(expr)
	if err != nil {
		return err
	}

	sign := 1
	if sense == ilp.Maximize {
		sign = -1
	}
	s.objSign = sign
	s.objLits = s.objLits[:0]
	s.objWeights = s.objWeights[:0]
	s.objOffset = 0
	for i, lit := range lits {
		w := sign * weights[i]
		if w < 0 {
			s.objOffset += w
			lit, w = -lit, -w
		}
		s.objLits = append(s.objLits, lit)
		s.objWeights = append(s.objWeights, w)
	}
	return nil
}

// Optimize implements [ilp.Solver]. It blocks until the search completes.
func (s *Solver) Optimize() ilp.Status {
	return s.OptimizeContext(context.Background())
}

// OptimizeContext implements [ilp.ContextOptimizer]. When ctx ends before the
// search completes it returns [ilp.Feasible] with the best model seen so far,
// or [ilp.Error] when no model was found yet. gophersat cannot be interrupted,
// so an abandoned search finishes on its own goroutine.
//
// Only the first call searches; later calls return the recorded status.
func (s *Solver) OptimizeContext(ctx context.Context) ilp.Status {
	if s.optimized {
		return s.status
	}
	s.optimized = true

	if err := ctx.Err(); err != nil {
		s.status = ilp.Error
		return s.status
	}

	start := time.Now()
	if s.nvars == 0 {
		s.status = s.infeasibleIfUnsat(solver.ParsePBConstrs(s.constrs).Status)
		s.logger.Debug("trivial program", "status", s.status)
		return s.status
	}

	if s.slots != nil {
		if err := s.slots.Acquire(ctx, 1); err != nil {
			s.status = ilp.Error
			s.logger.Debug("no search slot", "cause", err)
			return s.status
		}
	}
	release := func() {
		if s.slots != nil {
			s.slots.Release(1)
		}
	}

	all := make([]int, s.nvars)
	for i := range all {
		all[i] = i + 1
	}
	// A non-binding constraint over every variable makes gophersat allocate
	// them all, including those no other constraint mentions.
	constrs := append(append([]solver.PBConstr(nil), s.constrs...), solver.PBConstr{Lits: all, AtLeast: 0})
	prob := solver.ParsePBConstrs(constrs)
	if prob.Status == solver.Unsat {
		release()
		s.status = ilp.Infeasible
		s.logger.Debug("program unsatisfiable at parse time")
		return s.status
	}
	if len(s.objLits) > 0 {
		costLits := make([]solver.Lit, len(s.objLits))
		for i, l := range s.objLits {
			costLits[i] = solver.IntToLit(int32(l))
		}
		prob.SetCostFunc(costLits, append([]int(nil), s.objWeights...))
	}

	s.logger.Debug("pseudo-boolean search", "vars", s.nvars, "constraints", len(s.constrs), "cost_terms", len(s.objLits))

	gs := solver.New(prob)
	results := make(chan solver.Result)
	done := make(chan solver.Result, 1)
	go func() {
		res := gs.Optimal(results, nil)
		release()
		done <- res
	}()

	var (
		best  solver.Result
		found bool
	)
	for {
		select {
		case res, ok := <-results:
			if !ok {
				final := <-done
				s.finish(final)
				s.logger.Debug("search complete", "status", s.status, "cost", s.weight, "duration", time.Since(start))
				return s.status
			}
			if res.Status == solver.Sat {
				best, found = res, true
			}
		case <-ctx.Done():
			go func() {
				for range results {
				}
			}()
			if found {
				s.record(best)
				s.status = ilp.Feasible
			} else {
				s.status = ilp.Error
			}
			s.logger.Debug("search interrupted", "status", s.status, "cause", ctx.Err(), "duration", time.Since(start))
			return s.status
		}
	}
}

func (s *Solver) finish(res solver.Result) {
	switch res.Status {
	case solver.Sat:
		s.record(res)
		s.status = ilp.Optimal
	case solver.Unsat:
		s.status = ilp.Infeasible
	default:
		s.status = ilp.Error
	}
}

func (s *Solver) record(res solver.Result) {
	s.model = make([]bool, s.nvars)
	for i := range s.model {
		s.model[i] = res.Model[i]
	}
	s.weight = res.Weight
}

func (s *Solver) infeasibleIfUnsat(st solver.Status) ilp.Status {
	if st == solver.Unsat {
		return ilp.Infeasible
	}
	return ilp.Optimal
}

// Value implements [ilp.Solver]. It returns 1 or 0, and 0 for unknown
// variables or when no solution is available.
func (s *Solver) Value(v ilp.Var) float64 {
	if !s.status.HasSolution() || int(v) < 0 || int(v) >= len(s.model) {
		return 0
	}
	if s.model[v] {
		return 1
	}
	return 0
}

// ObjectiveValue implements [ilp.Solver].
func (s *Solver) ObjectiveValue() float64 {
	if !s.status.HasSolution() {
		return 0
	}
	return float64(s.objSign * (s.weight + s.objOffset))
}

// terms converts expr into gophersat literals (1-based) and integer weights,
// merging repeated variables and dropping zero coefficients.
func (s *Solver) terms(expr ilp.LinExpr) ([]int, []int, error) {
	index := make(map[ilp.Var]int, len(expr))
	var (
		lits    []int
		weights []int
	)
	for _, t := range expr {
		if int(t.Var) < 0 || int(t.Var) >= s.nvars {
			return nil, nil, fmt.Errorf("pbsolver: unknown variable x%d", int(t.Var))
		}
		c, err := integral(t.Coef)
		if err != nil {
			return nil, nil, fmt.Errorf("pbsolver: coefficient of x%d: %w", int(t.Var), err)
		}
		if i, ok := index[t.Var]; ok {
			weights[i] += c
			continue
		}
		index[t.Var] = len(lits)
		lits = append(lits, int(t.Var)+1)
		weights = append(weights, c)
	}

	n := 0
	for i := range lits {
		if weights[i] != 0 {
			lits[n], weights[n] = lits[i], weights[i]
			n++
		}
	}
	return lits[:n], weights[:n], nil
}

func integral(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%v is not an integer", f)
	}
	if math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("%v out of range", f)
	}
	return int(f), nil
}
