// Package indexing builds a search index from a corpus of records.
package indexing

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gcbaptista/mfg-search/config"
	"github.com/gcbaptista/mfg-search/index"
	internalErrors "github.com/gcbaptista/mfg-search/internal/errors"
	"github.com/gcbaptista/mfg-search/internal/logger"
	"github.com/gcbaptista/mfg-search/internal/tokenizer"
	"github.com/gcbaptista/mfg-search/model"
)

// Builder accumulates postings for records added in corpus order.
// It is single-use and not safe for concurrent use.
type Builder struct {
	settings       config.IndexSettings
	fieldOrder     map[string]int
	storePositions bool
	pipeline       tokenizer.Pipeline

	documents   []index.DocumentInfo
	refs        map[string]struct{}
	postings    map[string]index.PostingList
	fieldTotals map[string]int

	log *slog.Logger
}

// NewBuilder validates the settings and returns an empty builder.
func NewBuilder(settings config.IndexSettings) (*Builder, error) {
	settings.ApplyDefaults()
	if problems := settings.ValidateFieldNames(); len(problems) > 0 {
		return nil, internalErrors.NewValidationError("index", strings.Join(problems, "; "))
	}

	fieldOrder := make(map[string]int, len(settings.Fields))
	for i, f := range settings.Fields {
		fieldOrder[f.Name] = i
	}

	return &Builder{
		settings:       settings,
		fieldOrder:     fieldOrder,
		storePositions: settings.StorePositions(),
		pipeline:       tokenizer.IndexPipeline(),
		refs:           make(map[string]struct{}),
		postings:       make(map[string]index.PostingList),
		fieldTotals:    make(map[string]int),
		log:            logger.WithComponent("indexing"),
	}, nil
}

// Add indexes one record. Records must be added in corpus order: the record's
// ordinal is the number of records added before it.
func (b *Builder) Add(doc model.Document) error {
	position := len(b.documents)

	ref, ok := doc.GetReference(b.settings.Ref)
	if !ok {
		return internalErrors.NewMissingReferenceError(b.settings.Ref, position)
	}
	if _, dup := b.refs[ref]; dup {
		return internalErrors.NewDuplicateReferenceError(ref)
	}

	docID := uint32(position)
	info := index.DocumentInfo{Ref: ref, FieldLengths: make(map[string]int, len(b.settings.Fields))}

	for _, field := range b.settings.Fields {
		text, _ := doc.Text(field.Path)
		tokens := b.pipeline.Process(text)
		info.FieldLengths[field.Name] = len(tokens)
		b.fieldTotals[field.Name] += len(tokens)

		// Group occurrences per term, keeping first-seen order for stable output.
		var order []string
		entries := make(map[string]*index.PostingEntry)
		for _, tok := range tokens {
			entry, seen := entries[tok.Term]
			if !seen {
				entry = &index.PostingEntry{DocID: docID, FieldName: field.Name}
				entries[tok.Term] = entry
				order = append(order, tok.Term)
			}
			entry.TermFrequency++
			if b.storePositions {
				entry.Positions = append(entry.Positions, index.Position{tok.Start, tok.Length})
			}
		}
		for _, term := range order {
			b.postings[term] = append(b.postings[term], *entries[term])
		}
	}

	b.refs[ref] = struct{}{}
	b.documents = append(b.documents, info)
	return nil
}

// AddAll indexes records in order and stops at the first failing one.
func (b *Builder) AddAll(docs []model.Document) error {
	for _, doc := range docs {
		if err := b.Add(doc); err != nil {
			return fmt.Errorf("failed to add record: %w", err)
		}
	}
	return nil
}

// Build finalizes term weights and field statistics and returns the index.
func (b *Builder) Build() (*index.InvertedIndex, error) {
	n := len(b.documents)

	averages := make(map[string]float64, len(b.settings.Fields))
	for _, f := range b.settings.Fields {
		if n > 0 {
			averages[f.Name] = float64(b.fieldTotals[f.Name]) / float64(n)
		} else {
			averages[f.Name] = 0
		}
	}

	terms := make(map[string]*index.TermEntry, len(b.postings))
	for term, postings := range b.postings {
		postings.Sort(b.fieldOrder)
		terms[term] = &index.TermEntry{
			IDF:      index.IDF(postings.DocumentFrequency(), n),
			Postings: postings,
		}
	}

	documents := b.documents
	if documents == nil {
		documents = []index.DocumentInfo{}
	}

	ii := &index.InvertedIndex{
		Version:            index.Version,
		Ref:                b.settings.Ref,
		Fields:             b.settings.Fields,
		MetadataWhitelist:  b.settings.MetadataWhitelist,
		BM25:               index.BM25Params{K1: b.settings.BM25K1(), B: b.settings.BM25B()},
		Documents:          documents,
		AverageFieldLength: averages,
		Index:              terms,
	}
	if err := ii.Prepare(); err != nil {
		return nil, fmt.Errorf("built index failed validation: %w", err)
	}

	b.log.Info("index built", "documents", n, "terms", len(terms), "fields", len(b.settings.Fields))
	return ii, nil
}

// BuildIndex decodes a JSON array of records from r and builds the index over it.
func BuildIndex(r io.Reader, settings config.IndexSettings) (*index.InvertedIndex, error) {
	docs, err := DecodeDocuments(r)
	if err != nil {
		return nil, err
	}
	return BuildFromDocuments(docs, settings)
}

// BuildFromDocuments builds an index over already decoded records.
func BuildFromDocuments(docs []model.Document, settings config.IndexSettings) (*index.InvertedIndex, error) {
	builder, err := NewBuilder(settings)
	if err != nil {
		return nil, err
	}
	if err := builder.AddAll(docs); err != nil {
		return nil, err
	}
	return builder.Build()
}
