package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrMalformedRecord is returned when an input record is not a JSON object
	ErrMalformedRecord = errors.New("malformed record")

	// ErrMissingReference is returned when a record has no usable reference key
	ErrMissingReference = errors.New("missing reference key")

	// ErrDuplicateReference is returned when two records share a reference key
	ErrDuplicateReference = errors.New("duplicate reference key")

	// ErrInvalidQuery is returned when a query string cannot be parsed
	ErrInvalidQuery = errors.New("invalid query")

	// ErrIncompatibleIndex is returned when a serialized index cannot be loaded
	ErrIncompatibleIndex = errors.New("incompatible index")

	// ErrDocumentNotFound is returned when a document is not found
	ErrDocumentNotFound = errors.New("document not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// MalformedRecordError describes an input element that is not a record.
type MalformedRecordError struct {
	Position int
	Reason   string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("record at position %d is malformed: %s", e.Position, e.Reason)
}

func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

// NewMalformedRecordError creates a new MalformedRecordError
func NewMalformedRecordError(position int, reason string) *MalformedRecordError {
	return &MalformedRecordError{Position: position, Reason: reason}
}

// MissingReferenceError represents a record without its reference key
type MissingReferenceError struct {
	RefField string
	Position int
}

func (e *MissingReferenceError) Error() string {
	return fmt.Sprintf("record at position %d has no string value for reference field '%s'", e.Position, e.RefField)
}

func (e *MissingReferenceError) Is(target error) bool {
	return target == ErrMissingReference
}

// NewMissingReferenceError creates a new MissingReferenceError
func NewMissingReferenceError(refField string, position int) *MissingReferenceError {
	return &MissingReferenceError{RefField: refField, Position: position}
}

// DuplicateReferenceError represents a reference key seen twice in one corpus
type DuplicateReferenceError struct {
	Ref string
}

func (e *DuplicateReferenceError) Error() string {
	return fmt.Sprintf("reference '%s' appears more than once", e.Ref)
}

func (e *DuplicateReferenceError) Is(target error) bool {
	return target == ErrDuplicateReference
}

// NewDuplicateReferenceError creates a new DuplicateReferenceError
func NewDuplicateReferenceError(ref string) *DuplicateReferenceError {
	return &DuplicateReferenceError{Ref: ref}
}

// QueryParseError reports where and why a query string could not be parsed.
// Position is a byte offset into the query string.
type QueryParseError struct {
	Query    string
	Position int
	Message  string
}

func (e *QueryParseError) Error() string {
	return fmt.Sprintf("cannot parse query %q at offset %d: %s", e.Query, e.Position, e.Message)
}

func (e *QueryParseError) Is(target error) bool {
	return target == ErrInvalidQuery
}

// NewQueryParseError creates a new QueryParseError
func NewQueryParseError(query string, position int, message string) *QueryParseError {
	return &QueryParseError{Query: query, Position: position, Message: message}
}

// IncompatibleIndexError represents an index artifact this build cannot read
type IncompatibleIndexError struct {
	Version  string
	Expected string
	Reason   string
}

func (e *IncompatibleIndexError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("incompatible index: %s", e.Reason)
	}
	return fmt.Sprintf("incompatible index version '%s' (expected '%s')", e.Version, e.Expected)
}

func (e *IncompatibleIndexError) Is(target error) bool {
	return target == ErrIncompatibleIndex
}

// NewIncompatibleIndexError creates a new IncompatibleIndexError for a version mismatch
func NewIncompatibleIndexError(version, expected string) *IncompatibleIndexError {
	return &IncompatibleIndexError{Version: version, Expected: expected}
}

// NewCorruptIndexError creates a new IncompatibleIndexError for a structurally invalid index
func NewCorruptIndexError(reason string) *IncompatibleIndexError {
	return &IncompatibleIndexError{Reason: reason}
}

// DocumentNotFoundError represents a document not found error with context
type DocumentNotFoundError struct {
	Ref string
}

func (e *DocumentNotFoundError) Error() string {
	return fmt.Sprintf("document with reference '%s' not found", e.Ref)
}

func (e *DocumentNotFoundError) Is(target error) bool {
	return target == ErrDocumentNotFound
}

// NewDocumentNotFoundError creates a new DocumentNotFoundError
func NewDocumentNotFoundError(ref string) *DocumentNotFoundError {
	return &DocumentNotFoundError{Ref: ref}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
