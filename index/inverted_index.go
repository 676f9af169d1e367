// Package index holds the serialized search index: documents, per-field statistics
// and the inverted index from term to postings. An InvertedIndex is built once
// and read-only afterwards, so it carries no lock.
package index

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/gcbaptista/mfg-search/config"
	internalErrors "github.com/gcbaptista/mfg-search/internal/errors"
)

// Version identifies the artifact layout. Loading any other version fails.
const Version = "1"

// BM25Params are the ranking parameters recorded at build time.
type BM25Params struct {
	K1 float64 `json:"k1"`
	B  float64 `json:"b"`
}

// DocumentInfo is the per-document data the ranker needs.
type DocumentInfo struct {
	Ref          string         `json:"ref"`
	FieldLengths map[string]int `json:"field_lengths"`
}

// TermEntry is one row of the inverted index.
type TermEntry struct {
	IDF      float64     `json:"idf"`
	Postings PostingList `json:"postings"`
}

// InvertedIndex maps a term (token) to the documents and fields containing it.
type InvertedIndex struct {
	Version            string                 `json:"version"`
	Ref                string                 `json:"ref"`
	Fields             []config.FieldSettings `json:"fields"`
	MetadataWhitelist  []string               `json:"metadata_whitelist"`
	BM25               BM25Params             `json:"bm25"`
	Documents          []DocumentInfo         `json:"documents"`
	AverageFieldLength map[string]float64     `json:"average_field_length"`
	Index              map[string]*TermEntry  `json:"inverted_index"`

	// derived by Prepare
	sortedTerms []string
	docByRef    map[string]uint32
	fieldOrder  map[string]int
}

// IDF returns the smoothed inverse document frequency of a term that occurs in
// df of n documents: log(1 + |n - df + 0.5| / (df + 0.5)).
func IDF(df, n int) float64 {
	return math.Log(1 + math.Abs(float64(n-df)+0.5)/(float64(df)+0.5))
}

// Load decodes and validates a serialized index.
func Load(r io.Reader) (*InvertedIndex, error) {
	var ii InvertedIndex
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&ii); err != nil {
		return nil, internalErrors.NewCorruptIndexError(fmt.Sprintf("decoding: %v", err))
	}
	if err := ii.Prepare(); err != nil {
		return nil, err
	}
	return &ii, nil
}

// WriteTo serializes the index as a single JSON value with one Write call,
// so a failed encode never leaves partial output behind.
func (ii *InvertedIndex) WriteTo(w io.Writer) (int64, error) {
	data, err := json.Marshal(ii)
	if err != nil {
		return 0, fmt.Errorf("failed to encode index: %w", err)
	}
	data = append(data, '\n')
	n, err := w.Write(data)
	return int64(n), err
}

// Prepare validates the structure and builds the lookup tables used at query time.
func (ii *InvertedIndex) Prepare() error {
	if ii.Version != Version {
		return internalErrors.NewIncompatibleIndexError(ii.Version, Version)
	}
	if strings.TrimSpace(ii.Ref) == "" {
		return internalErrors.NewCorruptIndexError("missing reference field name")
	}
	if len(ii.Fields) == 0 {
		return internalErrors.NewCorruptIndexError("no indexed fields")
	}

	ii.fieldOrder = make(map[string]int, len(ii.Fields))
	for i, f := range ii.Fields {
		if f.Name == "" {
			return internalErrors.NewCorruptIndexError(fmt.Sprintf("field %d has no name", i))
		}
		if _, dup := ii.fieldOrder[f.Name]; dup {
			return internalErrors.NewCorruptIndexError(fmt.Sprintf("field '%s' declared twice", f.Name))
		}
		ii.fieldOrder[f.Name] = i
	}

	ii.docByRef = make(map[string]uint32, len(ii.Documents))
	for i, doc := range ii.Documents {
		if _, dup := ii.docByRef[doc.Ref]; dup {
			return internalErrors.NewCorruptIndexError(fmt.Sprintf("reference '%s' appears twice", doc.Ref))
		}
		ii.docByRef[doc.Ref] = uint32(i)
	}

	if ii.Index == nil {
		ii.Index = make(map[string]*TermEntry)
	}
	if ii.AverageFieldLength == nil {
		ii.AverageFieldLength = make(map[string]float64)
	}

	ii.sortedTerms = make([]string, 0, len(ii.Index))
	for term, entry := range ii.Index {
		if entry == nil {
			return internalErrors.NewCorruptIndexError(fmt.Sprintf("term '%s' has no entry", term))
		}
		for _, posting := range entry.Postings {
			if int(posting.DocID) >= len(ii.Documents) {
				return internalErrors.NewCorruptIndexError(fmt.Sprintf("term '%s' references unknown document %d", term, posting.DocID))
			}
			if _, ok := ii.fieldOrder[posting.FieldName]; !ok {
				return internalErrors.NewCorruptIndexError(fmt.Sprintf("term '%s' references unknown field '%s'", term, posting.FieldName))
			}
			for _, pos := range posting.Positions {
				if pos.Start() < 0 || pos.Length() < 0 {
					return internalErrors.NewCorruptIndexError(fmt.Sprintf("term '%s' has a negative position", term))
				}
			}
		}
		ii.sortedTerms = append(ii.sortedTerms, term)
	}
	sort.Strings(ii.sortedTerms)
	return nil
}

// Settings returns the index settings the artifact was built with.
func (ii *InvertedIndex) Settings() config.IndexSettings {
	fields := make([]config.FieldSettings, len(ii.Fields))
	copy(fields, ii.Fields)
	return config.IndexSettings{
		Ref:               ii.Ref,
		Fields:            fields,
		MetadataWhitelist: append([]string(nil), ii.MetadataWhitelist...),
		K1:                config.Float64(ii.BM25.K1),
		B:                 config.Float64(ii.BM25.B),
	}
}

// Terms returns every indexed term in lexical order. The slice must not be modified.
func (ii *InvertedIndex) Terms() []string {
	return ii.sortedTerms
}

// TermCount returns the number of distinct indexed terms.
func (ii *InvertedIndex) TermCount() int {
	return len(ii.sortedTerms)
}

// TermsWithPrefix returns the indexed terms starting with prefix, in lexical order.
func (ii *InvertedIndex) TermsWithPrefix(prefix string) []string {
	start := sort.SearchStrings(ii.sortedTerms, prefix)
	end := start
	for end < len(ii.sortedTerms) && strings.HasPrefix(ii.sortedTerms[end], prefix) {
		end++
	}
	return ii.sortedTerms[start:end]
}

// Lookup returns the entry for an exact term.
func (ii *InvertedIndex) Lookup(term string) (*TermEntry, bool) {
	entry, ok := ii.Index[term]
	return entry, ok
}

// FieldNames returns the indexed field names in declaration order.
func (ii *InvertedIndex) FieldNames() []string {
	names := make([]string, len(ii.Fields))
	for i, f := range ii.Fields {
		names[i] = f.Name
	}
	return names
}

// HasField reports whether name is an indexed field.
func (ii *InvertedIndex) HasField(name string) bool {
	_, ok := ii.fieldOrder[name]
	return ok
}

// FieldOrder returns the declaration order of every field.
func (ii *InvertedIndex) FieldOrder() map[string]int {
	return ii.fieldOrder
}

// FieldBoost returns the boost of a field, 1 when the field declares none.
func (ii *InvertedIndex) FieldBoost(name string) float64 {
	if i, ok := ii.fieldOrder[name]; ok && ii.Fields[i].Boost > 0 {
		return ii.Fields[i].Boost
	}
	return 1
}

// DocumentCount returns the number of indexed documents.
func (ii *InvertedIndex) DocumentCount() int {
	return len(ii.Documents)
}

// Document returns the stored info for a document ordinal.
func (ii *InvertedIndex) Document(docID uint32) (DocumentInfo, bool) {
	if int(docID) >= len(ii.Documents) {
		return DocumentInfo{}, false
	}
	return ii.Documents[docID], true
}

// DocIDForRef returns the ordinal of the document with the given reference key.
func (ii *InvertedIndex) DocIDForRef(ref string) (uint32, bool) {
	id, ok := ii.docByRef[ref]
	return id, ok
}
