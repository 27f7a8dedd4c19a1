// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyQuery is returned when a search has no usable query text.
	ErrEmptyQuery = errors.New("empty query")

	// ErrValidation is wrapped by every ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when a project id is absent from every page
	// within the scan budget.
	ErrNotFound = errors.New("project not found")

	// ErrCollaboratorUnavailable marks operations that need the awards
	// service when none is configured. Correlation reports it as a status
	// rather than returning it; callers use it to build their own messages.
	ErrCollaboratorUnavailable = errors.New("awards service unavailable")

	// ErrSourceRequired is returned by New without a project source.
	ErrSourceRequired = errors.New("project source required")
)

// ValidationError describes a malformed request parameter. It is returned
// before any network I/O.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Msg: fmt.Sprintf(format, args...)}
}
