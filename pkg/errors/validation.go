package errors

import (
	"strings"
	"unicode"
)

// MaxStepNameLength bounds step names accepted from input files.
const MaxStepNameLength = 512

// ValidateStepName checks that a funnel step name is usable as a label.
//
// Rules:
//   - Name cannot be empty or whitespace only
//   - No control characters (tabs and newlines included, labels wrap on spaces)
//   - Maximum length of MaxStepNameLength bytes
func ValidateStepName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "step name cannot be empty")
	}
	if len(name) > MaxStepNameLength {
		return New(ErrCodeInvalidInput, "step name too long (max %d characters)", MaxStepNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "step name contains control characters")
		}
	}
	return nil
}

// ValidatePath validates an output file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}
