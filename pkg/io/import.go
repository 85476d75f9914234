package io

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	apperr "github.com/matzehuels/chromatic/pkg/errors"
	"github.com/matzehuels/chromatic/pkg/graph"
)

// Format names a supported graph file format.
type Format string

const (
	FormatJSON   Format = "json"
	FormatDIMACS Format = "dimacs"
	FormatTOML   Format = "toml"
	FormatYAML   Format = "yaml"
)

// FormatFromPath infers the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".col", ".dimacs":
		return FormatDIMACS, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", apperr.New(apperr.ErrCodeInvalidFormat,
			"unsupported graph file %q (want .json, .col, .dimacs, .toml or .yaml)", filepath.Base(path))
	}
}

// graphFile is the document shape shared by the JSON, TOML and YAML formats.
type graphFile struct {
	Vertices int     `json:"vertices" toml:"vertices" yaml:"vertices"`
	Edges    [][]int `json:"edges" toml:"edges" yaml:"edges,flow"`
}

func (f graphFile) build() (*graph.Graph, error) {
	edges := make([]graph.Edge, len(f.Edges))
	for i, pair := range f.Edges {
		if len(pair) != 2 {
			return nil, apperr.New(apperr.ErrCodeInvalidFormat,
				"edge #%d has %d endpoints, want 2", i, len(pair))
		}
		edges[i] = graph.Edge{U: pair[0], V: pair[1]}
	}
	return graph.New(f.Vertices, edges)
}

func toGraphFile(g *graph.Graph) graphFile {
	f := graphFile{Vertices: g.N(), Edges: make([][]int, 0, g.EdgeCount())}
	for _, e := range g.Edges() {
		f.Edges = append(f.Edges, []int{e.U, e.V})
	}
	return f
}

// ReadJSON decodes a JSON graph from r. It does not close r.
func ReadJSON(r io.Reader) (*graph.Graph, error) {
	var data graphFile
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidFormat, err, "decode json graph")
	}
	return data.build()
}

// ReadTOML decodes a TOML graph from r.
func ReadTOML(r io.Reader) (*graph.Graph, error) {
	var data graphFile
	if _, err := toml.NewDecoder(r).Decode(&data); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidFormat, err, "decode toml graph")
	}
	return data.build()
}

// ReadYAML decodes a YAML graph from r. Unknown keys are rejected.
func ReadYAML(r io.Reader) (*graph.Graph, error) {
	var data graphFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&data); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidFormat, err, "decode yaml graph")
	}
	return data.build()
}

// dimacsPrealloc caps the edge capacity reserved from a "p" line.
const dimacsPrealloc = 1 << 16

// ReadDIMACS decodes a DIMACS edge file from r.
func ReadDIMACS(r io.Reader) (*graph.Graph, error) {
	sc := bufio.NewScanner(r)
	n := -1
	var edges []graph.Edge
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || fields[0] == "c" {
			continue
		}
		switch fields[0] {
		case "p":
			if n >= 0 {
				return nil, dimacsErr(line, "duplicate problem line")
			}
			if len(fields) != 4 || (fields[1] != "edge" && fields[1] != "col") {
				return nil, dimacsErr(line, "want \"p edge <vertices> <edges>\"")
			}
			v, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, dimacsErr(line, "vertex count %q", fields[2])
			}
			m, err := strconv.Atoi(fields[3])
			if err != nil || m < 0 {
				return nil, dimacsErr(line, "edge count %q", fields[3])
			}
			n = v
			// The header is untrusted; it only sizes the first allocation.
			edges = make([]graph.Edge, 0, min(m, dimacsPrealloc))
		case "e":
			if n < 0 {
				return nil, dimacsErr(line, "edge before problem line")
			}
			if len(fields) != 3 {
				return nil, dimacsErr(line, "want \"e <u> <v>\"")
			}
			u, err1 := strconv.Atoi(fields[1])
			v, err2 := strconv.Atoi(fields[2])
			if err1 != nil || err2 != nil {
				return nil, dimacsErr(line, "non-numeric endpoint")
			}
			edges = append(edges, graph.Edge{U: u - 1, V: v - 1})
		default:
			return nil, dimacsErr(line, "unknown line type %q", fields[0])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidFormat, err, "read dimacs graph")
	}
	if n < 0 {
		return nil, apperr.New(apperr.ErrCodeInvalidFormat, "dimacs: missing problem line")
	}
	return graph.New(n, edges)
}

func dimacsErr(line int, format string, args ...any) error {
	return apperr.New(apperr.ErrCodeInvalidFormat, "dimacs line %d: %s", line, fmt.Sprintf(format, args...))
}

// Read decodes r in the given format.
func Read(r io.Reader, format Format) (*graph.Graph, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatDIMACS:
		return ReadDIMACS(r)
	case FormatTOML:
		return ReadTOML(r)
	case FormatYAML:
		return ReadYAML(r)
	default:
		return nil, apperr.New(apperr.ErrCodeInvalidFormat, "unknown format %q", format)
	}
}

// Import reads the graph file at path, choosing the format by extension.
func Import(path string) (*graph.Graph, error) {
	if err := apperr.ValidatePath(path); err != nil {
		return nil, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperr.Wrap(apperr.ErrCodeFileNotFound, err, "graph file %s", path)
		}
		return nil, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	g, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// ImportJSON reads a JSON graph file.
func ImportJSON(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
