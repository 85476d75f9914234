package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "github.com/matzehuels/chromatic/pkg/errors"
	"github.com/matzehuels/chromatic/pkg/graph"
)

func TestReadJSON(t *testing.T) {
	g, err := ReadJSON(strings.NewReader(`{"vertices": 4, "edges": [[0,1],[2,1],[1,0]]}`))
	require.NoError(t, err)
	assert.Equal(t, 4, g.N())
	want := []graph.Edge{{U: 0, V: 1}, {U: 1, V: 2}}
	if diff := cmp.Diff(want, g.Edges()); diff != "" {
		t.Errorf("Edges() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  apperr.Code
	}{
		{"malformed", `{"vertices": `, apperr.ErrCodeInvalidFormat},
		{"three endpoints", `{"vertices": 3, "edges": [[0,1,2]]}`, apperr.ErrCodeInvalidFormat},
		{"zero vertices", `{"vertices": 0, "edges": []}`, apperr.ErrCodeInvalidGraph},
		{"self loop", `{"vertices": 2, "edges": [[1,1]]}`, apperr.ErrCodeInvalidGraph},
		{"out of range", `{"vertices": 2, "edges": [[0,2]]}`, apperr.ErrCodeInvalidGraph},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			require.Error(t, err)
			if got := apperr.GetCode(err); got != tt.code {
				t.Errorf("GetCode() = %v, want %v", got, tt.code)
			}
		})
	}
}

func TestReadDIMACS(t *testing.T) {
	input := `c the pentagon
c
p edge 5 6
e 1 2
e 2 3
e 3 4
e 4 5
e 5 1
e 2 1
`
	g, err := ReadDIMACS(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 5, g.N())
	assert.Equal(t, 5, g.EdgeCount())
	assert.True(t, g.HasEdge(0, 4))
}

func TestReadDIMACSUntrustedHeader(t *testing.T) {
	g, err := ReadDIMACS(strings.NewReader("p edge 3 9000000000000000\ne 1 2\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, g.N())
	assert.Equal(t, 1, g.EdgeCount())

	_, err = ReadDIMACS(strings.NewReader("p edge 9000000000000000 1\ne 1 2\n"))
	assert.Equal(t, apperr.ErrCodeInvalidGraph, apperr.GetCode(err))
	assert.ErrorIs(t, err, graph.ErrOrderTooLarge)

	_, err = ReadJSON(strings.NewReader(`{"vertices": 9000000000000000, "edges": []}`))
	assert.ErrorIs(t, err, graph.ErrOrderTooLarge)
}

func TestReadDIMACSErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  apperr.Code
	}{
		{"missing problem line", "c nothing\n", apperr.ErrCodeInvalidFormat},
		{"edge first", "e 1 2\np edge 2 1\n", apperr.ErrCodeInvalidFormat},
		{"bad problem", "p cnf 2 1\n", apperr.ErrCodeInvalidFormat},
		{"bad endpoint", "p edge 2 1\ne 1 x\n", apperr.ErrCodeInvalidFormat},
		{"unknown line", "p edge 2 1\nn 1 2\n", apperr.ErrCodeInvalidFormat},
		{"duplicate problem", "p edge 2 0\np edge 2 0\n", apperr.ErrCodeInvalidFormat},
		{"zero-based vertex", "p edge 2 1\ne 0 1\n", apperr.ErrCodeInvalidGraph},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadDIMACS(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Equal(t, tt.code, apperr.GetCode(err))
		})
	}
}

func TestReadTOML(t *testing.T) {
	input := "vertices = 3\nedges = [[0, 1], [1, 2]]\n"
	g, err := ReadTOML(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 3, g.N())
	assert.Equal(t, 2, g.EdgeCount())

	_, err = ReadTOML(strings.NewReader("vertices = \n"))
	assert.Equal(t, apperr.ErrCodeInvalidFormat, apperr.GetCode(err))
}

func TestReadYAML(t *testing.T) {
	input := "vertices: 3\nedges:\n  - [0, 1]\n  - [1, 2]\n"
	g, err := ReadYAML(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 3, g.N())
	assert.Equal(t, 2, g.EdgeCount())

	_, err = ReadYAML(strings.NewReader("vertices: 3\ncolour: red\n"))
	assert.Equal(t, apperr.ErrCodeInvalidFormat, apperr.GetCode(err))

	_, err = ReadYAML(strings.NewReader("vertices: 2\nedges: [[0, 1, 2]]\n"))
	assert.Equal(t, apperr.ErrCodeInvalidFormat, apperr.GetCode(err))
}

func TestRoundTrip(t *testing.T) {
	g := graph.Petersen()
	for _, f := range []Format{FormatJSON, FormatDIMACS, FormatTOML, FormatYAML} {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(g, &buf, f))
			back, err := Read(&buf, f)
			require.NoError(t, err)
			assert.Equal(t, g.N(), back.N())
			if diff := cmp.Diff(g.Edges(), back.Edges()); diff != "" {
				t.Errorf("edges mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWriteDIMACSComment(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDIMACS(graph.MustNew(2, []graph.Edge{{U: 0, V: 1}}), &buf, "k2"))
	assert.Equal(t, "c k2\np edge 2 1\ne 1 2\n", buf.String())
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
		ok   bool
	}{
		{"g.json", FormatJSON, true},
		{"dir/G.JSON", FormatJSON, true},
		{"myciel3.col", FormatDIMACS, true},
		{"x.dimacs", FormatDIMACS, true},
		{"g.toml", FormatTOML, true},
		{"g.yaml", FormatYAML, true},
		{"g.YML", FormatYAML, true},
		{"g.xml", "", false},
		{"noext", "", false},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if tt.ok {
			require.NoError(t, err, tt.path)
			assert.Equal(t, tt.want, got, tt.path)
		} else {
			assert.Equal(t, apperr.ErrCodeInvalidFormat, apperr.GetCode(err), tt.path)
		}
	}
}

func TestImportExport(t *testing.T) {
	dir := t.TempDir()
	g := graph.MustNew(3, []graph.Edge{{U: 0, V: 1}, {U: 1, V: 2}})

	for _, name := range []string{"g.json", "g.col", "g.toml", "g.yaml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Export(g, path))
		back, err := Import(path)
		require.NoError(t, err, name)
		assert.Equal(t, g.Edges(), back.Edges(), name)
	}

	require.NoError(t, ExportJSON(g, filepath.Join(dir, "plain.json")))
	back, err := ImportJSON(filepath.Join(dir, "plain.json"))
	require.NoError(t, err)
	assert.Equal(t, 3, back.N())
}

func TestImportErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Import(filepath.Join(dir, "missing.json"))
	assert.Equal(t, apperr.ErrCodeFileNotFound, apperr.GetCode(err))

	_, err = Import("")
	assert.Equal(t, apperr.ErrCodeInvalidInput, apperr.GetCode(err))

	bad := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("x"), 0o644))
	_, err = Import(bad)
	assert.Equal(t, apperr.ErrCodeInvalidFormat, apperr.GetCode(err))

	loop := filepath.Join(dir, "loop.json")
	require.NoError(t, os.WriteFile(loop, []byte(`{"vertices":2,"edges":[[0,0]]}`), 0o644))
	_, err = Import(loop)
	assert.ErrorIs(t, err, graph.ErrSelfLoop)
	assert.Contains(t, err.Error(), "loop.json")
}
