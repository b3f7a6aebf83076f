package errors

import (
	"strings"
	"unicode"
)

// ValidateNodeID validates a node identifier found in graph input.
// It rejects IDs that could be used for path traversal or injection when
// the ID later appears in file names or cache keys.
//
// The validation rules are intentionally conservative:
//   - No empty IDs
//   - No control characters or null bytes
//   - No path traversal sequences (.., //, backslash)
//   - Maximum length of 256 characters
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidGraph, "node ID cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidGraph, "node ID too long (max 256 characters)")
	}

	// Check for control characters and null bytes
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidGraph, "node ID contains invalid control characters")
		}
	}

	// Check for path traversal patterns
	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidGraph, "node ID contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidatePath validates a user-supplied file path for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	// No backslashes (potential Windows path injection)
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateDimension validates a layout dimension.
// Dimensions 1 through 3 have closed-form starting placements; higher
// dimensions are allowed but capped to keep memory bounded.
func ValidateDimension(dim int) error {
	if dim < 1 {
		return New(ErrCodeInvalidDimension, "dimension must be at least 1, got %d", dim)
	}
	const maxDimension = 64
	if dim > maxDimension {
		return New(ErrCodeInvalidDimension, "dimension too large (max %d), got %d", maxDimension, dim)
	}
	return nil
}

// ValidatePositive validates that a named numeric parameter is strictly
// positive, the common requirement of scale, spacing, and iteration
// parameters.
func ValidatePositive(name string, value float64) error {
	if value <= 0 {
		return New(ErrCodeInvalidParameter, "%s must be positive, got %v", name, value)
	}
	return nil
}
