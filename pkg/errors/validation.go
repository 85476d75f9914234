package errors

import (
	"path/filepath"
	"slices"
	"strings"
	"unicode"
)

// maxPathLength bounds file paths accepted from users.
const maxPathLength = 4096

// ValidatePath validates a user-supplied file path for reading or writing.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateExtension checks that path ends with one of the allowed extensions.
// Extensions are compared case-insensitively and given without the leading dot.
func ValidateExtension(path string, allowed ...string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return New(ErrCodeInvalidFormat, "%s has no file extension (want one of: %s)", path, strings.Join(allowed, ", "))
	}
	if !slices.Contains(allowed, ext) {
		return New(ErrCodeInvalidFormat, "unsupported file extension %q (want one of: %s)", ext, strings.Join(allowed, ", "))
	}
	return nil
}
