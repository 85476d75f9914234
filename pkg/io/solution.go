package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/chromatic/pkg/coloring"
	apperr "github.com/matzehuels/chromatic/pkg/errors"
)

// WriteSolution encodes sol as indented JSON.
func WriteSolution(sol *coloring.Solution, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sol); err != nil {
		return fmt.Errorf("encode solution: %w", err)
	}
	return nil
}

// ReadSolution decodes a solution written by [WriteSolution].
func ReadSolution(r io.Reader) (*coloring.Solution, error) {
	var sol coloring.Solution
	if err := json.NewDecoder(r).Decode(&sol); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidFormat, err, "decode solution")
	}
	return &sol, nil
}

// ExportSolution writes sol to a JSON file at path.
func ExportSolution(sol *coloring.Solution, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteSolution(sol, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
