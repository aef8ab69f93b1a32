package entrykit

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingRequiredField matches any *MissingRequiredFieldError.
	ErrMissingRequiredField = errors.New("entrykit: missing required field")

	// ErrConfiguration matches any *ConfigurationError.
	ErrConfiguration = errors.New("entrykit: configuration error")
)

// MissingRequiredFieldError is returned by ComposeEntry when the entry lacks
// its ID, title or permalink. Only that entry's render fails.
type MissingRequiredFieldError struct {
	EntryID string
	Field   string
}

func (e *MissingRequiredFieldError) Error() string {
	if e.EntryID == "" {
		return fmt.Sprintf("entrykit: entry is missing required field %q", e.Field)
	}
	return fmt.Sprintf("entrykit: entry %s is missing required field %q", e.EntryID, e.Field)
}

func (e *MissingRequiredFieldError) Is(target error) bool {
	return target == ErrMissingRequiredField
}

// ConfigurationError reports a missing label or collaborator, or an invalid
// Config value.
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("entrykit: %s: %s", e.Key, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}
