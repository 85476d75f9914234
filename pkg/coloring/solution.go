package coloring

import (
	"fmt"

	"github.com/matzehuels/chromatic/pkg/graph"
	"github.com/matzehuels/chromatic/pkg/ilp"
)

// Solution is a decoded coloring. Colors[i] is the color index of vertex i.
type Solution struct {
	Colors     []int      `json:"colors"`
	ColorsUsed int        `json:"colors_used"`
	Objective  float64    `json:"objective"`
	Status     ilp.Status `json:"status"`
}

// NewSolution builds a Solution from an assignment, computing ColorsUsed.
func NewSolution(colors []int, objective float64, status ilp.Status) *Solution {
	return &Solution{
		Colors:     colors,
		ColorsUsed: countDistinct(colors),
		Objective:  objective,
		Status:     status,
	}
}

// Validate checks the solution against g: one color per vertex, colors in
// [0, n), and no edge with equal endpoint colors.
func (s *Solution) Validate(g *graph.Graph) error {
	if len(s.Colors) != g.N() {
		return fmt.Errorf("solution has %d colors for %d vertices", len(s.Colors), g.N())
	}
	for v, c := range s.Colors {
		if c < 0 || c >= g.N() {
			return &DecodeError{Vertex: v, Candidates: []int{c}}
		}
	}
	for _, e := range g.Edges() {
		if s.Colors[e.U] == s.Colors[e.V] {
			return &ConflictError{Edge: e, Color: s.Colors[e.U]}
		}
	}
	if got := countDistinct(s.Colors); got != s.ColorsUsed {
		return fmt.Errorf("colors_used is %d but assignment has %d distinct colors", s.ColorsUsed, got)
	}
	return nil
}

// ColorClasses groups vertices by color. Classes are ordered by color index
// and empty colors are omitted.
func (s *Solution) ColorClasses() [][]int {
	byColor := map[int][]int{}
	maxColor := -1
	for v, c := range s.Colors {
		byColor[c] = append(byColor[c], v)
		maxColor = max(maxColor, c)
	}
	var classes [][]int
	for c := 0; c <= maxColor; c++ {
		if vs, ok := byColor[c]; ok {
			classes = append(classes, vs)
		}
	}
	return classes
}

// Canonical returns a copy whose colors are renumbered 0, 1, ... in order of
// first appearance. Two solutions with the same partition into color classes
// have equal canonical forms.
func (s *Solution) Canonical() *Solution {
	relabel := map[int]int{}
	colors := make([]int, len(s.Colors))
	for v, c := range s.Colors {
		nc, ok := relabel[c]
		if !ok {
			nc = len(relabel)
			relabel[c] = nc
		}
		colors[v] = nc
	}
	return &Solution{
		Colors:     colors,
		ColorsUsed: s.ColorsUsed,
		Objective:  s.Objective,
		Status:     s.Status,
	}
}

func countDistinct(colors []int) int {
	seen := make(map[int]struct{}, len(colors))
	for _, c := range colors {
		seen[c] = struct{}{}
	}
	return len(seen)
}
