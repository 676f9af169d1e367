// Package api provides the HTTP front-end of the query client.
package api

import (
	"fmt"
	"strings"
)

// MaxQueryLength is the longest query string, in bytes, the server evaluates.
const MaxQueryLength = 512

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateQuery checks the q parameter. Syntax is not checked here: a query
// that does not parse is a normal view state, not a request error.
func ValidateQuery(query string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if len(query) > MaxQueryLength {
		result.AddError("q", fmt.Sprintf("Query must be at most %d bytes, got %d", MaxQueryLength, len(query)))
	}

	return result
}

// ValidateReference checks a company reference taken from the request path.
func ValidateReference(ref string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if ref == "" {
		result.AddError("ref", "Company reference is required")
		return result
	}

	if strings.TrimSpace(ref) != ref {
		result.AddError("ref", "Company reference cannot have leading or trailing whitespace")
	}

	return result
}
