package dot

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/chromatic/pkg/coloring"
	"github.com/matzehuels/chromatic/pkg/graph"
	"github.com/matzehuels/chromatic/pkg/ilp"
	"github.com/matzehuels/chromatic/pkg/render"
)

func triangle() (*graph.Graph, *coloring.Solution) {
	g := graph.MustNew(3, []graph.Edge{{U: 0, V: 1}, {U: 1, V: 2}, {U: 0, V: 2}})
	return g, coloring.NewSolution([]int{0, 1, 2}, 3, ilp.Optimal)
}

func TestToDOT_Basic(t *testing.T) {
	g, sol := triangle()
	dot := ToDOT(g, sol, Options{})

	if !strings.HasPrefix(dot, "graph G {") {
		t.Error("ToDOT() output missing graph declaration")
	}
	if !strings.Contains(dot, `0 [label="0", fillcolor="#8dd3c7"]`) {
		t.Errorf("ToDOT() output missing colored vertex 0:\n%s", dot)
	}
	if !strings.Contains(dot, "1 -- 2;") {
		t.Error("ToDOT() output missing edge")
	}
	if strings.Contains(dot, "->") {
		t.Error("ToDOT() output must be undirected")
	}
}

func TestToDOT_Detailed(t *testing.T) {
	g, sol := triangle()
	dot := ToDOT(g, sol, Options{Detailed: true})

	if !strings.Contains(dot, `label="v2\ncolor 2"`) {
		t.Errorf("ToDOT() detailed output missing label:\n%s", dot)
	}
}

func TestToDOT_Uncolored(t *testing.T) {
	g, _ := triangle()
	dot := ToDOT(g, nil, Options{Detailed: true})

	if !strings.Contains(dot, `label="v0", fillcolor="white"`) {
		t.Errorf("ToDOT() without solution should leave vertices white:\n%s", dot)
	}
}

func TestFillColorCycles(t *testing.T) {
	if FillColor(0) != FillColor(len(Palette)) {
		t.Error("FillColor() should cycle through the palette")
	}
	if FillColor(1) == FillColor(0) {
		t.Error("FillColor() adjacent indices should differ")
	}
	if FillColor(-1) != "white" {
		t.Errorf("FillColor(-1) = %q, want white", FillColor(-1))
	}
}

func TestFmtLabel(t *testing.T) {
	tests := []struct {
		v, color int
		detailed bool
		want     string
	}{
		{3, 1, false, "3"},
		{3, 1, true, "v3\ncolor 1"},
		{3, -1, true, "v3"},
	}
	for _, tt := range tests {
		if got := fmtLabel(tt.v, tt.color, tt.detailed); got != tt.want {
			t.Errorf("fmtLabel(%d, %d, %v) = %q, want %q", tt.v, tt.color, tt.detailed, got, tt.want)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 62.00 116.00" width="62" height="116"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}

	plain := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("normalizeViewBox() should leave SVG without viewBox unchanged")
	}
}

func TestRenderDOTPassthrough(t *testing.T) {
	g, sol := triangle()
	src := ToDOT(g, sol, Options{})
	out, err := Render(context.Background(), src, render.DOT)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if string(out) != src {
		t.Error("Render(DOT) should return the source")
	}
	if _, err := Render(context.Background(), src, render.Format("pdf")); err == nil {
		t.Error("Render(pdf) should fail")
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz rendering in short mode")
	}
	g, sol := triangle()
	svg, err := RenderSVG(context.Background(), ToDOT(g, sol, Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output is not SVG")
	}
	if !strings.Contains(string(svg), "#8dd3c7") {
		t.Error("RenderSVG() output missing palette fill")
	}
}
