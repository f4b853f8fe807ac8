// Package errors defines the error kinds worshipdesk returns. Every typed
// error unwraps to one of the sentinels, so callers branch with errors.Is.
package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidReference = errors.New("invalid reference")
	ErrUnsupported      = errors.New("unsupported")

	// ErrSectionNotFound is also an ErrNotFound.
	ErrSectionNotFound = fmt.Errorf("section %w", ErrNotFound)
)

// NotFoundError names the missing thing: a reading, a category, a note section.
type NotFoundError struct {
	Resource string
	ID       string
	Err      error // defaults to ErrNotFound
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Resource + " not found"
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error { return orDefault(e.Err, ErrNotFound) }

// ValidationError reports a rejected flag, path, tag or query.
type ValidationError struct {
	Field   string
	Value   string
	Message string
	Err     error // defaults to ErrInvalidInput
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return orDefault(e.Err, ErrInvalidInput) }

// IOError wraps a filesystem failure with the operation and path.
type IOError struct {
	Operation string
	Path      string
	Err       error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ParseError reports input that could not be parsed: a reference, a .docx part.
type ParseError struct {
	Format  string
	Input   string
	Message string
	Err     error // defaults to ErrInvalidInput
}

func (e *ParseError) Error() string {
	if e.Input == "" {
		return fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
	}
	return fmt.Sprintf("failed to parse %s %q: %s", e.Format, e.Input, e.Message)
}

func (e *ParseError) Unwrap() error { return orDefault(e.Err, ErrInvalidInput) }

// UnsupportedError reports a source the loader cannot read.
type UnsupportedError struct {
	Feature string
	Reason  string
}

func (e *UnsupportedError) Error() string {
	if e.Reason == "" {
		return "unsupported " + e.Feature
	}
	return fmt.Sprintf("unsupported %s: %s", e.Feature, e.Reason)
}

func (e *UnsupportedError) Unwrap() error { return ErrUnsupported }

func orDefault(err, def error) error {
	if err != nil {
		return err
	}
	return def
}

func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// NewSectionNotFound reports a note tag with no section in the notes file.
func NewSectionNotFound(tag string) *NotFoundError {
	return &NotFoundError{Resource: "section", ID: tag, Err: ErrSectionNotFound}
}

func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func NewIO(operation, path string, err error) *IOError {
	return &IOError{Operation: operation, Path: path, Err: err}
}

func NewParse(format, input, message string) *ParseError {
	return &ParseError{Format: format, Input: input, Message: message}
}

// NewInvalidReference reports a reference string that does not parse. cause,
// when set, supplies the message.
func NewInvalidReference(input string, cause error) *ParseError {
	msg := "expected <book><chapter>[:<verse>][-<verse>]"
	if cause != nil {
		msg = cause.Error()
	}
	return &ParseError{Format: "reference", Input: input, Message: msg, Err: ErrInvalidReference}
}

func NewUnsupported(feature, reason string) *UnsupportedError {
	return &UnsupportedError{Feature: feature, Reason: reason}
}

// Wrap prefixes err with message; a nil err stays nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
