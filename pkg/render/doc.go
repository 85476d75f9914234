// Package render names the output formats for colored graph drawings.
//
// # Overview
//
// The drawing itself is produced by the [dot] subpackage, which emits
// Graphviz DOT source and renders it to SVG or PNG. This package only holds
// the [Format] enumeration shared by the pipeline, the CLI and the HTTP API.
//
//	f, err := render.FormatFromPath("out.svg")   // render.SVG
//
// [dot]: github.com/matzehuels/chromatic/pkg/render/dot
package render
