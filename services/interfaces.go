// Package services declares the contracts between the query front-ends and the engine.
package services

import (
	"github.com/gcbaptista/mfg-search/index"
	"github.com/gcbaptista/mfg-search/internal/search"
	"github.com/gcbaptista/mfg-search/model"
)

// Searcher evaluates a query string against a loaded index.
// It returns an *errors.QueryParseError when the query cannot be parsed.
type Searcher interface {
	Search(query string) ([]search.Result, error)
}

// DocumentLookup resolves reference keys to records and lists the dataset.
type DocumentLookup interface {
	Get(ref string) (model.Document, error)
	All() []model.Document
}

// Renderer turns query text into the view model the front-ends draw.
type Renderer interface {
	Render(query string) model.ViewModel
}

// QueryClient is everything a front-end needs from a loaded engine.
type QueryClient interface {
	Renderer
	Searcher
	GetDocument(ref string) (model.Document, error)
	IndexInfo() IndexInfo
}

// IndexInfo summarizes the loaded index.
type IndexInfo struct {
	Version           string   `json:"version"`
	Ref               string   `json:"ref"`
	Fields            []string `json:"fields"`
	MetadataWhitelist []string `json:"metadata_whitelist"`
	DocumentCount     int      `json:"document_count"`
	TermCount         int      `json:"term_count"`
	DatasetSize       int      `json:"dataset_size"`
}

// NewIndexInfo summarizes an index together with the size of the dataset it is shown with.
func NewIndexInfo(ii *index.InvertedIndex, datasetSize int) IndexInfo {
	return IndexInfo{
		Version:           ii.Version,
		Ref:               ii.Ref,
		Fields:            ii.FieldNames(),
		MetadataWhitelist: ii.MetadataWhitelist,
		DocumentCount:     ii.DocumentCount(),
		TermCount:         ii.TermCount(),
		DatasetSize:       datasetSize,
	}
}

// AnalyticsTracker records query events.
type AnalyticsTracker interface {
	TrackSearchEvent(event model.SearchEvent)
	GetSummary() model.AnalyticsSummary
}
