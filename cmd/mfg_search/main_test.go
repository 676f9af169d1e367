package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/mfg-search/config"
	"github.com/gcbaptista/mfg-search/index"
	internalErrors "github.com/gcbaptista/mfg-search/internal/errors"
	testutil "github.com/gcbaptista/mfg-search/internal/testing"
)

func TestBuildIndex_WritesLoadableIndex(t *testing.T) {
	var out bytes.Buffer
	err := buildIndex(bytes.NewReader(testutil.SampleCompaniesJSON(t)), &out, config.DefaultIndexSettings())
	require.NoError(t, err)
	require.NotZero(t, out.Len())

	ii, err := index.Load(&out)
	require.NoError(t, err)
	assert.Equal(t, len(testutil.SampleCompanies()), ii.DocumentCount())
}

func TestBuildIndex_EmptyCorpus(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, buildIndex(strings.NewReader(`[]`), &out, config.DefaultIndexSettings()))

	ii, err := index.Load(&out)
	require.NoError(t, err)
	assert.Equal(t, 0, ii.DocumentCount())
}

func TestBuildIndex_RejectedInputWritesNothing(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		target error
	}{
		{name: "malformed json", input: `[{"detail_url": "a"`},
		{name: "not an array", input: `{"detail_url": "a"}`, target: internalErrors.ErrInvalidInput},
		{name: "element is not an object", input: `[{"detail_url": "a"}, 7]`, target: internalErrors.ErrMalformedRecord},
		{name: "missing reference", input: `[{"name": "Acme"}]`, target: internalErrors.ErrMissingReference},
		{name: "duplicate reference", input: `[{"detail_url": "a"}, {"detail_url": "a"}]`, target: internalErrors.ErrDuplicateReference},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := buildIndex(strings.NewReader(tt.input), &out, config.DefaultIndexSettings())

			require.Error(t, err)
			assert.Zero(t, out.Len())
			if tt.target != nil {
				assert.True(t, errors.Is(err, tt.target), "got %v", err)
			}
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestBuildIndex_WriteError(t *testing.T) {
	err := buildIndex(bytes.NewReader(testutil.SampleCompaniesJSON(t)), failingWriter{}, config.DefaultIndexSettings())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "writing index")
}
