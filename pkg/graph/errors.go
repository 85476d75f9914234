package graph

import (
	"errors"
	"fmt"

	apperr "github.com/matzehuels/chromatic/pkg/errors"
)

var (
	// ErrNonPositiveOrder is returned when the vertex count is zero or negative.
	ErrNonPositiveOrder = errors.New("vertex count must be positive")

	// ErrOrderTooSmall is returned by a builder whose family needs more
	// vertices than requested, such as a cycle on fewer than 3.
	ErrOrderTooSmall = errors.New("vertex count too small for this graph family")

	// ErrOrderTooLarge is returned when the vertex count exceeds [MaxOrder].
	ErrOrderTooLarge = errors.New("vertex count exceeds the maximum")

	// ErrEndpointOutOfRange is returned when an edge references a vertex
	// outside [0, n).
	ErrEndpointOutOfRange = errors.New("edge endpoint out of range")

	// ErrSelfLoop is returned when an edge connects a vertex to itself.
	ErrSelfLoop = errors.New("self-loop")
)

// InvalidGraphError describes why an (n, edges) input is not a valid graph.
// Index is the position of the offending edge in the input list, or -1 when
// the vertex count itself is invalid.
type InvalidGraphError struct {
	N      int
	Index  int
	Edge   Edge
	Reason error
}

// Error implements the error interface.
func (e *InvalidGraphError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid graph: %v (n=%d)", e.Reason, e.N)
	}
	return fmt.Sprintf("invalid graph: edge #%d %v: %v (n=%d)", e.Index, e.Edge, e.Reason, e.N)
}

// Unwrap returns the sentinel reason for errors.Is.
func (e *InvalidGraphError) Unwrap() error { return e.Reason }

// Code returns the machine-readable error code.
func (e *InvalidGraphError) Code() apperr.Code { return apperr.ErrCodeInvalidGraph }
