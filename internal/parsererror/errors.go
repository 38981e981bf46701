// Package parsererror defines the typed errors and sentinels shared by the
// extraction, categorization and reconciliation stages.
package parsererror

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedAmount is returned when an amount token has no parseable digits.
	ErrMalformedAmount = errors.New("malformed amount")
	// ErrUnparsableDate is returned when a date token matches none of the expected layouts.
	ErrUnparsableDate = errors.New("unparsable date")
	// ErrUnknownDirection is returned when a debit/credit marker is not recognized.
	ErrUnknownDirection = errors.New("unknown direction marker")
	// ErrDocumentUnreadable is returned when every extraction stage failed on a document.
	ErrDocumentUnreadable = errors.New("document unreadable")
	// ErrMappingTableMissing marks a categorization rule table that could not be found.
	ErrMappingTableMissing = errors.New("mapping table missing")
	// ErrNoRoute is returned when no issuer tag matches a document path.
	ErrNoRoute = errors.New("no extractor route")
)

// ParseError represents a field-level parsing failure
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DocumentError reports a document that could not be read at a given stage.
// It always matches ErrDocumentUnreadable in addition to its cause.
type DocumentError struct {
	FilePath string
	Stage    string
	Err      error
}

func (e *DocumentError) Error() string {
	if e.Stage == "" {
		return fmt.Sprintf("document '%s' unreadable: %v", e.FilePath, e.Err)
	}
	return fmt.Sprintf("document '%s' unreadable at %s: %v", e.FilePath, e.Stage, e.Err)
}

func (e *DocumentError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDocumentUnreadable}
	}
	return []error{ErrDocumentUnreadable, e.Err}
}

// ValidationError represents a validation failure
type ValidationError struct {
	FilePath string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.FilePath, e.Reason)
}

// CategorizationError represents a categorization failure
type CategorizationError struct {
	Description string
	Strategy    string
	Err         error
}

func (e *CategorizationError) Error() string {
	return fmt.Sprintf("categorization failed for %q using %s: %v",
		e.Description, e.Strategy, e.Err)
}

func (e *CategorizationError) Unwrap() error {
	return e.Err
}
