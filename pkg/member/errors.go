package member

import (
	"errors"
	"strings"
)

// Исходы пайплайна создания и чтения; обработчики сопоставляют их со
// статусами исчерпывающе, без разбора строк.
var (
	ErrStoreUnavailable = errors.New("record store is not available")
	ErrMissingImage     = errors.New("profile image is required")
	ErrDuplicateEmail   = errors.New("a member with this email already exists")
	ErrNotFound         = errors.New("member not found")
)

// MissingFieldsError enumerates every absent form field, not just the first.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// ValidationError carries per-field messages from the schema check.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// StoreError wraps any other infrastructure fault so callers never depend on
// the driver's error shapes.
type StoreError struct {
	Err error
}

func (e *StoreError) Error() string { return "store error: " + e.Err.Error() }

func (e *StoreError) Unwrap() error { return e.Err }
