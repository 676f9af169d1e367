package index

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/gcbaptista/mfg-search/config"
	internalErrors "github.com/gcbaptista/mfg-search/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleIndex() *InvertedIndex {
	return &InvertedIndex{
		Version:           Version,
		Ref:               "detail_url",
		Fields:            []config.FieldSettings{{Name: "name", Path: "name", Boost: 1}, {Name: "description", Path: "details.description", Boost: 2}},
		MetadataWhitelist: []string{"position"},
		BM25:              BM25Params{K1: 1.2, B: 0.75},
		Documents: []DocumentInfo{
			{Ref: "a", FieldLengths: map[string]int{"name": 2, "description": 3}},
			{Ref: "b", FieldLengths: map[string]int{"name": 1}},
		},
		AverageFieldLength: map[string]float64{"name": 1.5, "description": 1.5},
		Index: map[string]*TermEntry{
			"steel": {IDF: IDF(2, 2), Postings: PostingList{
				{DocID: 0, FieldName: "description", TermFrequency: 1, Positions: []Position{{17, 5}}},
				{DocID: 1, FieldName: "name", TermFrequency: 1, Positions: []Position{{0, 5}}},
			}},
			"stamp":  {IDF: IDF(1, 2), Postings: PostingList{{DocID: 0, FieldName: "name", TermFrequency: 1}}},
			"widget": {IDF: IDF(1, 2), Postings: PostingList{{DocID: 0, FieldName: "description", TermFrequency: 1}}},
		},
	}
}

func TestPrepareAndAccessors(t *testing.T) {
	ii := sampleIndex()
	require.NoError(t, ii.Prepare())

	assert.Equal(t, []string{"stamp", "steel", "widget"}, ii.Terms())
	assert.Equal(t, []string{"stamp", "steel"}, ii.TermsWithPrefix("st"))
	assert.Empty(t, ii.TermsWithPrefix("zz"))
	assert.Equal(t, 3, ii.TermCount())
	assert.Equal(t, []string{"name", "description"}, ii.FieldNames())
	assert.True(t, ii.HasField("description"))
	assert.False(t, ii.HasField("email"))
	assert.Equal(t, 2.0, ii.FieldBoost("description"))
	assert.Equal(t, 1.0, ii.FieldBoost("unknown"))
	assert.Equal(t, 2, ii.DocumentCount())

	id, ok := ii.DocIDForRef("b")
	require.True(t, ok)
	assert.Equal(t, uint32(1), id)

	_, ok = ii.Document(5)
	assert.False(t, ok)

	settings := ii.Settings()
	assert.Equal(t, "detail_url", settings.Ref)
	assert.True(t, settings.StorePositions())
}

func TestWriteToAndLoad_RoundTrip(t *testing.T) {
	ii := sampleIndex()
	require.NoError(t, ii.Prepare())

	var buf bytes.Buffer
	n, err := ii.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Contains(t, buf.String(), `"position":[[17,5]]`)
	assert.Contains(t, buf.String(), `"inverted_index"`)

	loaded, err := Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, ii.Terms(), loaded.Terms())
	assert.Equal(t, ii.Documents, loaded.Documents)

	entry, ok := loaded.Lookup("steel")
	require.True(t, ok)
	assert.Equal(t, ii.Index["steel"].Postings, entry.Postings)
	assert.InDelta(t, ii.Index["steel"].IDF, entry.IDF, 1e-12)
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(ii *InvertedIndex)
		raw    string
	}{
		{name: "not json", raw: "{oops"},
		{name: "wrong version", mutate: func(ii *InvertedIndex) { ii.Version = "0" }},
		{name: "no ref", mutate: func(ii *InvertedIndex) { ii.Ref = "" }},
		{name: "no fields", mutate: func(ii *InvertedIndex) { ii.Fields = nil }},
		{name: "unknown document", mutate: func(ii *InvertedIndex) {
			ii.Index["steel"].Postings[0].DocID = 9
		}},
		{name: "unknown field", mutate: func(ii *InvertedIndex) {
			ii.Index["steel"].Postings[0].FieldName = "email"
		}},
		{name: "duplicate ref", mutate: func(ii *InvertedIndex) { ii.Documents[1].Ref = "a" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := tt.raw
			if tt.mutate != nil {
				ii := sampleIndex()
				tt.mutate(ii)
				var buf bytes.Buffer
				_, err := ii.WriteTo(&buf)
				require.NoError(t, err)
				raw = buf.String()
			}

			_, err := Load(strings.NewReader(raw))
			require.Error(t, err)
			assert.True(t, errors.Is(err, internalErrors.ErrIncompatibleIndex), "got %v", err)
		})
	}
}

func TestIDF(t *testing.T) {
	// A term in every document still gets a small positive weight.
	assert.Greater(t, IDF(10, 10), 0.0)
	assert.Greater(t, IDF(1, 10), IDF(5, 10))
	assert.InDelta(t, 0.9808292530117263, IDF(1, 3), 1e-9) // log(1 + 2.5/1.5)
}

func TestPostingListSortAndFrequency(t *testing.T) {
	pl := PostingList{
		{DocID: 2, FieldName: "name"},
		{DocID: 0, FieldName: "description"},
		{DocID: 0, FieldName: "name"},
	}
	pl.Sort(map[string]int{"name": 0, "description": 1})

	assert.Equal(t, uint32(0), pl[0].DocID)
	assert.Equal(t, "name", pl[0].FieldName)
	assert.Equal(t, "description", pl[1].FieldName)
	assert.Equal(t, 2, pl.DocumentFrequency())
}
