// Package store holds the dataset the query client displays: every record in
// dataset order plus a lookup from reference key to record.
package store

import (
	"fmt"
	"io"
	"log/slog"

	internalErrors "github.com/gcbaptista/mfg-search/internal/errors"
	"github.com/gcbaptista/mfg-search/internal/indexing"
	"github.com/gcbaptista/mfg-search/internal/logger"
	"github.com/gcbaptista/mfg-search/model"
)

// DocumentStore is immutable after construction and safe for concurrent reads.
type DocumentStore struct {
	Docs     []model.Document // Records in dataset order
	RefField string

	byRef map[string]int // Reference key to position in Docs
}

// New builds a store over docs. Records without a usable reference stay in the
// ordered list but cannot be looked up; for duplicate references the first
// record wins. Both cases are logged as warnings.
func New(docs []model.Document, refField string) *DocumentStore {
	log := logger.WithComponent("store")
	ds := &DocumentStore{
		Docs:     docs,
		RefField: refField,
		byRef:    make(map[string]int, len(docs)),
	}
	if ds.Docs == nil {
		ds.Docs = []model.Document{}
	}

	for i, doc := range ds.Docs {
		ref, ok := doc.GetReference(refField)
		if !ok {
			log.Warn("record has no reference key", slog.Int("position", i), slog.String("ref_field", refField))
			continue
		}
		if first, dup := ds.byRef[ref]; dup {
			log.Warn("duplicate reference key, keeping the first record",
				slog.String("ref", ref), slog.Int("first_position", first), slog.Int("position", i))
			continue
		}
		ds.byRef[ref] = i
	}
	return ds
}

// Load decodes a JSON array of records and builds a store over it.
func Load(r io.Reader, refField string) (*DocumentStore, error) {
	docs, err := indexing.DecodeDocuments(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}
	return New(docs, refField), nil
}

// Get returns the record with the given reference key.
func (ds *DocumentStore) Get(ref string) (model.Document, error) {
	i, ok := ds.byRef[ref]
	if !ok {
		return nil, internalErrors.NewDocumentNotFoundError(ref)
	}
	return ds.Docs[i], nil
}

// All returns every record in dataset order. The slice must not be modified.
func (ds *DocumentStore) All() []model.Document {
	return ds.Docs
}

// Len returns the number of records.
func (ds *DocumentStore) Len() int {
	return len(ds.Docs)
}
