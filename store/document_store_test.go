package store

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalErrors "github.com/gcbaptista/mfg-search/internal/errors"
	"github.com/gcbaptista/mfg-search/model"
)

func TestNew(t *testing.T) {
	docs := []model.Document{
		{"detail_url": "a", "name": "First"},
		{"name": "No ref"},
		{"detail_url": "a", "name": "Duplicate"},
		{"detail_url": "b", "name": "Second"},
	}
	ds := New(docs, "detail_url")

	assert.Equal(t, 4, ds.Len(), "records without refs stay listed")

	doc, err := ds.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "First", doc["name"], "first record wins on duplicate refs")

	doc, err = ds.Get("b")
	require.NoError(t, err)
	assert.Equal(t, "Second", doc["name"])

	_, err = ds.Get("missing")
	assert.True(t, errors.Is(err, internalErrors.ErrDocumentNotFound))
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantLen int
		wantErr bool
	}{
		{name: "array of records", input: `[{"detail_url":"a"},{"detail_url":"b"}]`, wantLen: 2},
		{name: "empty array", input: `[]`, wantLen: 0},
		{name: "not an array", input: `{"detail_url":"a"}`, wantErr: true},
		{name: "element not an object", input: `[1]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := Load(strings.NewReader(tt.input), "detail_url")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLen, ds.Len())
			assert.NotNil(t, ds.All())
		})
	}
}
