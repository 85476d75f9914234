package coloring

import (
	"errors"
	"fmt"

	apperr "github.com/matzehuels/chromatic/pkg/errors"
	"github.com/matzehuels/chromatic/pkg/graph"
	"github.com/matzehuels/chromatic/pkg/ilp"
)

// ErrIndexOutOfRange is returned by the bounds-checked variable accessors.
var ErrIndexOutOfRange = errors.New("index out of range")

// SolveFailedError reports a solver status that carries no usable solution.
type SolveFailedError struct {
	Status ilp.Status
}

func (e *SolveFailedError) Error() string {
	return fmt.Sprintf("solver finished without a solution: %v", e.Status)
}

func (e *SolveFailedError) Code() apperr.Code {
	return apperr.ErrCodeSolveFailed
}

// DecodeError reports a vertex whose assignment variables do not select
// exactly one color. Candidates lists the colors whose value exceeded the
// threshold; it is empty when none did.
type DecodeError struct {
	Vertex     int
	Candidates []int
}

func (e *DecodeError) Error() string {
	if len(e.Candidates) == 0 {
		return fmt.Sprintf("vertex %d: no color selected", e.Vertex)
	}
	return fmt.Sprintf("vertex %d: %d colors selected %v", e.Vertex, len(e.Candidates), e.Candidates)
}

func (e *DecodeError) Code() apperr.Code {
	return apperr.ErrCodeDecodeFailed
}

// ConflictError reports two adjacent vertices sharing a color.
type ConflictError struct {
	Edge  graph.Edge
	Color int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("edge %v: both endpoints have color %d", e.Edge, e.Color)
}

func (e *ConflictError) Code() apperr.Code {
	return apperr.ErrCodeDecodeFailed
}
