package query

import (
	"errors"
	"testing"

	internalErrors "github.com/gcbaptista/mfg-search/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFields = []string{"name", "description", "products_manufactured"}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Clause
	}{
		{
			name:  "single term",
			input: "Steel",
			want:  []Clause{{Fields: testFields, Term: "steel", Boost: 1, UsePipeline: true}},
		},
		{
			name:  "two terms",
			input: "steel  widgets",
			want: []Clause{
				{Fields: testFields, Term: "steel", Boost: 1, UsePipeline: true},
				{Fields: testFields, Term: "widgets", Boost: 1, UsePipeline: true},
			},
		},
		{
			name:  "hyphen separates terms",
			input: "sheet-metal",
			want: []Clause{
				{Fields: testFields, Term: "sheet", Boost: 1, UsePipeline: true},
				{Fields: testFields, Term: "metal", Boost: 1, UsePipeline: true},
			},
		},
		{
			name:  "field scoped",
			input: "name:acme",
			want:  []Clause{{Fields: []string{"name"}, Term: "acme", Boost: 1, UsePipeline: true}},
		},
		{
			name:  "trailing wildcard",
			input: "stee*",
			want:  []Clause{{Fields: testFields, Term: "stee*", Boost: 1}},
		},
		{
			name:  "edit distance and boost",
			input: "stel~1^10",
			want:  []Clause{{Fields: testFields, Term: "stel", Boost: 10, EditDistance: 1, UsePipeline: true}},
		},
		{
			name:  "presence operators",
			input: "+steel -aluminum",
			want: []Clause{
				{Fields: testFields, Term: "steel", Boost: 1, UsePipeline: true, Presence: Required},
				{Fields: testFields, Term: "aluminum", Boost: 1, UsePipeline: true, Presence: Prohibited},
			},
		},
		{
			name:  "presence with field",
			input: "+description:steel",
			want:  []Clause{{Fields: []string{"description"}, Term: "steel", Boost: 1, UsePipeline: true, Presence: Required}},
		},
		{
			name:  "escaped colon stays in the term",
			input: `a\:b`,
			want:  []Clause{{Fields: testFields, Term: "a:b", Boost: 1, UsePipeline: true}},
		},
		{
			name:  "lone escape yields no clauses",
			input: `\`,
			want:  nil,
		},
		{
			name:  "whitespace only",
			input: "   ",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Parse(tt.input, testFields)
			require.NoError(t, err)
			assert.Equal(t, tt.want, q.Clauses)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		position int
	}{
		{name: "lone colon", input: ":", position: 0},
		{name: "lone plus", input: "+", position: 1},
		{name: "lone minus", input: "-", position: 1},
		{name: "field without term", input: "name:", position: 4},
		{name: "unknown field", input: "email:x", position: 0},
		{name: "non numeric edit distance", input: "foo~x", position: 4},
		{name: "non numeric boost", input: "foo^", position: 4},
		{name: "presence then modifier", input: "+~1", position: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input, testFields)
			require.Error(t, err)
			assert.True(t, errors.Is(err, internalErrors.ErrInvalidQuery))

			var parseErr *internalErrors.QueryParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, tt.position, parseErr.Position)
		})
	}
}

func TestQuery_IsNegated(t *testing.T) {
	q, err := Parse("-steel -aluminum", testFields)
	require.NoError(t, err)
	assert.True(t, q.IsNegated())

	q, err = Parse("-steel widgets", testFields)
	require.NoError(t, err)
	assert.False(t, q.IsNegated())

	q, err = Parse("", testFields)
	require.NoError(t, err)
	assert.False(t, q.IsNegated())
}
