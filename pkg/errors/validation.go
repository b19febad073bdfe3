package errors

import (
	"strings"
	"unicode"
)

// ValidateSubsystemID validates a subsystem identifier arriving at an API or
// CLI boundary. It rejects values that could be used for path traversal or
// injection when the ID is later embedded in cache keys, URLs, or queries.
//
// The validation rules are intentionally conservative:
//   - No empty IDs
//   - No control characters or null bytes
//   - No path traversal sequences (.., //, backslash)
//   - Maximum length of 256 characters
func ValidateSubsystemID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidSubsystem, "subsystem ID cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidSubsystem, "subsystem ID too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidSubsystem, "subsystem ID contains control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}
	for _, pattern := range dangerousPatterns {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidSubsystem, "subsystem ID contains invalid sequence %q", pattern)
		}
	}

	return nil
}
