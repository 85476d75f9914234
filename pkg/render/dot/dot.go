package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/chromatic/pkg/coloring"
	"github.com/matzehuels/chromatic/pkg/graph"
	"github.com/matzehuels/chromatic/pkg/render"
)

// Palette is the fill color per color index.
var Palette = []string{
	"#8dd3c7", "#ffffb3", "#bebada", "#fb8072",
	"#80b1d3", "#fdb462", "#b3de69", "#fccde5",
	"#d9d9d9", "#bc80bd", "#ccebc5", "#ffed6f",
}

// Options configures drawing.
type Options struct {
	// Detailed labels each vertex with its index and color.
	Detailed bool
}

// FillColor returns the palette entry for color index c.
func FillColor(c int) string {
	if c < 0 {
		return "white"
	}
	return Palette[c%len(Palette)]
}

// ToDOT converts g and its coloring to Graphviz DOT. sol may be nil.
func ToDOT(g *graph.Graph, sol *coloring.Solution, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14, fontname=\"Helvetica\"];\n")
	buf.WriteString("  edge [color=\"#555555\"];\n")
	buf.WriteString("\n")

	for v := 0; v < g.N(); v++ {
		color := -1
		if sol != nil && v < len(sol.Colors) {
			color = sol.Colors[v]
		}
		attrs := []string{
			fmt.Sprintf("label=%q", fmtLabel(v, color, opts.Detailed)),
			fmt.Sprintf("fillcolor=%q", FillColor(color)),
		}
		fmt.Fprintf(&buf, "  %d [%s];\n", v, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %d -- %d;\n", e.U, e.V)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(v, color int, detailed bool) string {
	if !detailed {
		return strconv.Itoa(v)
	}
	if color < 0 {
		return fmt.Sprintf("v%d", v)
	}
	return fmt.Sprintf("v%d\ncolor %d", v, color)
}

// Render produces the drawing in format f. DOT returns the source unchanged.
func Render(ctx context.Context, src string, f render.Format) ([]byte, error) {
	switch f {
	case render.DOT:
		return []byte(src), nil
	case render.SVG:
		return RenderSVG(ctx, src)
	case render.PNG:
		return RenderPNG(ctx, src)
	default:
		return nil, fmt.Errorf("unsupported format %q", f)
	}
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, src string) ([]byte, error) {
	out, err := renderGraphviz(ctx, src, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders DOT source to PNG using Graphviz.
func RenderPNG(ctx context.Context, src string) ([]byte, error) {
	return renderGraphviz(ctx, src, graphviz.PNG)
}

func renderGraphviz(ctx context.Context, src string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(src))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the pt-sized root element with a unitless one so
// the SVG scales when embedded.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
