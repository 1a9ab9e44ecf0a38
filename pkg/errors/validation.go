package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxIDLength bounds card and board identifiers.
const maxIDLength = 128

// ValidateCardID validates a card identifier supplied by a host.
// Card ids are opaque to the engine but must be non-empty and free of
// control characters so they can be used as JSON keys and log fields.
func ValidateCardID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "card id cannot be empty")
	}
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidID, "card id too long (max %d characters)", maxIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidID, "card id contains invalid control characters")
		}
	}
	return nil
}

// boardIDRegex matches board ids usable as storage keys.
var boardIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateBoardID validates a board id for use as a storage key.
// It rejects names that could be used for path traversal in file-backed
// stores or key injection in Redis.
//
// Validation rules:
//   - No empty ids
//   - Maximum length of 128 characters
//   - No path traversal sequences (..)
//   - Only letters, digits, '.', '_' and '-', starting with a letter or digit
func ValidateBoardID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "board id cannot be empty")
	}
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidID, "board id too long (max %d characters)", maxIDLength)
	}
	if strings.Contains(id, "..") {
		return New(ErrCodeInvalidID, "board id cannot contain path traversal sequences (..)")
	}
	if !boardIDRegex.MatchString(id) {
		return New(ErrCodeInvalidID, "invalid board id: %q", id)
	}
	return nil
}
