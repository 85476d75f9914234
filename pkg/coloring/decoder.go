package coloring

import (
	"fmt"

	"github.com/matzehuels/chromatic/pkg/ilp"
)

// Threshold is the value above which an assignment variable counts as set.
const Threshold = 0.5

// Decode reads the assignment from s after it returned status. It reads
// variable values only; the model is not modified.
func Decode(m *EncodedModel, s ilp.Solver, status ilp.Status) (*Solution, error) {
	if !status.HasSolution() {
		return nil, &SolveFailedError{Status: status}
	}
	if m == nil {
		return nil, fmt.Errorf("decode: nil model")
	}

	n := len(m.x)
	colors := make([]int, n)
	for i := 0; i < n; i++ {
		var candidates []int
		for k, v := range m.x[i] {
			if s.Value(v) > Threshold {
				candidates = append(candidates, k)
			}
		}
		if len(candidates) != 1 {
			return nil, &DecodeError{Vertex: i, Candidates: candidates}
		}
		colors[i] = candidates[0]
	}

	return NewSolution(colors, s.ObjectiveValue(), status), nil
}
