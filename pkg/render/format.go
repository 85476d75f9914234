package render

import (
	"path/filepath"
	"strings"

	apperr "github.com/matzehuels/chromatic/pkg/errors"
)

// Format is a drawing output format.
type Format string

const (
	DOT Format = "dot"
	SVG Format = "svg"
	PNG Format = "png"
)

// Formats lists every supported format.
var Formats = []Format{DOT, SVG, PNG}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	switch f {
	case SVG:
		return "image/svg+xml"
	case PNG:
		return "image/png"
	default:
		return "text/vnd.graphviz"
	}
}

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", apperr.New(apperr.ErrCodeInvalidFormat, "unknown render format %q (want dot, svg or png)", s)
}

// FormatFromPath infers the format from the file extension of path.
func FormatFromPath(path string) (Format, error) {
	if err := apperr.ValidateExtension(path, "dot", "svg", "png"); err != nil {
		return "", err
	}
	return Format(strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))), nil
}
