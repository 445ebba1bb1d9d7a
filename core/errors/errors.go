// Package errors provides standardized error types for the witness codebase.
//
// The ingestion core is deliberately total: the markup parser and the
// annotation table reader never fail. Errors exist only at the boundaries —
// reading source bytes, resolving a locus reference, serving the API — and
// are contained at single-witness granularity by the loader.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases.
var (
	// ErrNotFound indicates a resource was not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates invalid input or validation failure.
	ErrInvalidInput = errors.New("invalid input")
)

// NotFoundError represents a resource not found error with context.
type NotFoundError struct {
	Resource string // Type of resource (e.g., "document", "chapter")
	ID       string // Identifier of the resource
	Err      error  // Underlying error, if any
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Unwrap keeps ErrNotFound reachable even when an underlying error is
// attached.
func (e *NotFoundError) Unwrap() error {
	if e.Err != nil {
		return errors.Join(e.Err, ErrNotFound)
	}
	return ErrNotFound
}

// ParseError represents a parsing error at an input boundary.
type ParseError struct {
	Format  string // Format being parsed (e.g., "locus", "manifest")
	Input   string // Offending input, if short enough to repeat
	Message string // Error details
	Err     error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("failed to parse %s %q: %s", e.Format, e.Input, e.Message)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
}

// Unwrap keeps ErrInvalidInput reachable even when an underlying error is
// attached.
func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return errors.Join(e.Err, ErrInvalidInput)
	}
	return ErrInvalidInput
}

// IOError represents an I/O operation error with context.
type IOError struct {
	Operation string // Operation being performed (e.g., "read", "open")
	Path      string // File/resource path involved
	Err       error  // Underlying error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// NewNotFound creates a NotFoundError.
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// NewParse creates a ParseError.
func NewParse(format, input, message string) *ParseError {
	return &ParseError{Format: format, Input: input, Message: message}
}

// NewIO creates an IOError.
func NewIO(operation, path string, err error) *IOError {
	return &IOError{Operation: operation, Path: path, Err: err}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is wraps errors.Is for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
