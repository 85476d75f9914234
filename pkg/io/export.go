package io

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	apperr "github.com/matzehuels/chromatic/pkg/errors"
	"github.com/matzehuels/chromatic/pkg/graph"
)

// WriteJSON encodes g as indented JSON. The output can be re-imported with
// [ReadJSON].
func WriteJSON(g *graph.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toGraphFile(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteTOML encodes g as TOML.
func WriteTOML(g *graph.Graph, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(toGraphFile(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteYAML encodes g as YAML with a flow-style edge list.
func WriteYAML(g *graph.Graph, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toGraphFile(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// WriteDIMACS encodes g in the DIMACS edge format with 1-based vertices.
// comment, when non-empty, is written as a leading "c" line.
func WriteDIMACS(g *graph.Graph, w io.Writer, comment string) error {
	bw := bufio.NewWriter(w)
	if comment != "" {
		fmt.Fprintf(bw, "c %s\n", comment)
	}
	fmt.Fprintf(bw, "p edge %d %d\n", g.N(), g.EdgeCount())
	for _, e := range g.Edges() {
		fmt.Fprintf(bw, "e %d %d\n", e.U+1, e.V+1)
	}
	return bw.Flush()
}

// Write encodes g in the given format.
func Write(g *graph.Graph, w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		return WriteJSON(g, w)
	case FormatDIMACS:
		return WriteDIMACS(g, w, "")
	case FormatTOML:
		return WriteTOML(g, w)
	case FormatYAML:
		return WriteYAML(g, w)
	default:
		return apperr.New(apperr.ErrCodeInvalidFormat, "unknown format %q", format)
	}
}

// Export writes g to path, choosing the format by extension.
func Export(g *graph.Graph, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(g, f, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ExportJSON writes g to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g *graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}
