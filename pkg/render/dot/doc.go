// Package dot draws colored graphs with Graphviz.
//
// # Overview
//
// [ToDOT] turns a graph and an optional coloring into undirected DOT source in
// which every vertex is filled with the palette entry of its color. Without
// a coloring all vertices are white.
//
//	src := dot.ToDOT(g, sol, dot.Options{})
//	svg, err := dot.RenderSVG(ctx, src)
//
// # Palette
//
// [Palette] holds twelve fill colors chosen to stay distinguishable on light
// backgrounds. Color index k uses Palette[k % len(Palette)], so colorings with
// more than twelve classes repeat fills; the detailed labels still name the
// color index.
//
// # Options
//
//   - Detailed: labels read "v3\ncolor 1" instead of "3"
//
// # Rendering
//
// [RenderSVG] and [RenderPNG] use the WebAssembly build of Graphviz bundled
// with go-graphviz, so no system installation is needed.
package dot
