package validation

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const maxNameLength = 100

var (
	ErrNameRequired = errors.New("Name is required")
	ErrNameTooLong  = errors.New("Name must be at most 100 characters")
)

// ValidateName checks a display name after trimming. Length is counted in
// characters, so accented names are not penalised for their encoding.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)

	if trimmed == "" {
		return ErrNameRequired
	}

	if utf8.RuneCountInString(trimmed) > maxNameLength {
		return ErrNameTooLong
	}

	return nil
}
