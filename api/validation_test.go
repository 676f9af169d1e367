package api

import (
	"strings"
	"testing"
)

func TestValidationResult_AddError(t *testing.T) {
	result := &ValidationResult{Valid: true}

	result.AddError("field1", "error message")

	if result.Valid {
		t.Error("Expected Valid to be false after adding error")
	}

	if len(result.Errors) != 1 {
		t.Errorf("Expected 1 error, got %d", len(result.Errors))
	}

	if result.Errors[0].Field != "field1" {
		t.Errorf("Expected field 'field1', got '%s'", result.Errors[0].Field)
	}

	if result.Errors[0].Message != "error message" {
		t.Errorf("Expected message 'error message', got '%s'", result.Errors[0].Message)
	}
}

func TestValidationResult_HasErrors(t *testing.T) {
	result := &ValidationResult{Valid: true}

	if result.HasErrors() {
		t.Error("Expected HasErrors to be false for empty result")
	}

	result.AddError("field", "message")

	if !result.HasErrors() {
		t.Error("Expected HasErrors to be true after adding error")
	}
}

func TestValidateQuery(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantValid bool
		wantError string
	}{
		{
			name:      "empty query",
			query:     "",
			wantValid: true,
		},
		{
			name:      "plain query",
			query:     "steel widgets",
			wantValid: true,
		},
		{
			name:      "unparseable query is still valid input",
			query:     "name:",
			wantValid: true,
		},
		{
			name:      "query at the limit",
			query:     strings.Repeat("a", MaxQueryLength),
			wantValid: true,
		},
		{
			name:      "query over the limit",
			query:     strings.Repeat("a", MaxQueryLength+1),
			wantValid: false,
			wantError: "Query must be at most 512 bytes, got 513",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateQuery(tt.query)

			if result.Valid != tt.wantValid {
				t.Errorf("ValidateQuery() valid = %v, want %v", result.Valid, tt.wantValid)
			}

			if tt.wantError != "" {
				if len(result.Errors) == 0 {
					t.Errorf("Expected error message '%s', got no errors", tt.wantError)
				} else if result.Errors[0].Message != tt.wantError {
					t.Errorf("Expected error message '%s', got '%s'", tt.wantError, result.Errors[0].Message)
				}
			}
		})
	}
}

func TestValidateReference(t *testing.T) {
	tests := []struct {
		name      string
		ref       string
		wantValid bool
		wantError string
	}{
		{
			name:      "url reference",
			ref:       "https://example.com/companies/acme",
			wantValid: true,
		},
		{
			name:      "empty reference",
			ref:       "",
			wantValid: false,
			wantError: "Company reference is required",
		},
		{
			name:      "reference with whitespace",
			ref:       " acme ",
			wantValid: false,
			wantError: "Company reference cannot have leading or trailing whitespace",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateReference(tt.ref)

			if result.Valid != tt.wantValid {
				t.Errorf("ValidateReference() valid = %v, want %v", result.Valid, tt.wantValid)
			}

			if tt.wantError != "" {
				if len(result.Errors) == 0 {
					t.Errorf("Expected error message '%s', got no errors", tt.wantError)
				} else if result.Errors[0].Message != tt.wantError {
					t.Errorf("Expected error message '%s', got '%s'", tt.wantError, result.Errors[0].Message)
				}
			}
		})
	}
}
