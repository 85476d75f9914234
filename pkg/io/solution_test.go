package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/chromatic/pkg/coloring"
	apperr "github.com/matzehuels/chromatic/pkg/errors"
	"github.com/matzehuels/chromatic/pkg/ilp"
)

func TestSolutionRoundTrip(t *testing.T) {
	sol := coloring.NewSolution([]int{0, 1, 0, 1, 2}, 3, ilp.Optimal)

	var buf bytes.Buffer
	require.NoError(t, WriteSolution(sol, &buf))
	assert.Contains(t, buf.String(), `"status": "OPTIMAL"`)
	assert.Contains(t, buf.String(), `"colors_used": 3`)

	back, err := ReadSolution(&buf)
	require.NoError(t, err)
	assert.Equal(t, sol, back)
}

func TestReadSolutionErrors(t *testing.T) {
	_, err := ReadSolution(strings.NewReader(`{"status": "SOMETHING"}`))
	assert.Equal(t, apperr.ErrCodeInvalidFormat, apperr.GetCode(err))

	_, err = ReadSolution(strings.NewReader(`[`))
	assert.Equal(t, apperr.ErrCodeInvalidFormat, apperr.GetCode(err))
}

func TestExportSolution(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sol.json")
	sol := coloring.NewSolution([]int{0}, 0, ilp.Feasible)
	require.NoError(t, ExportSolution(sol, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "FEASIBLE")
}
