// Package engine wires a loaded index, the dataset and the card layout into
// the query client used by every front-end.
package engine

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gcbaptista/mfg-search/config"
	"github.com/gcbaptista/mfg-search/index"
	"github.com/gcbaptista/mfg-search/internal/logger"
	"github.com/gcbaptista/mfg-search/internal/persistence"
	"github.com/gcbaptista/mfg-search/internal/search"
	"github.com/gcbaptista/mfg-search/internal/view"
	"github.com/gcbaptista/mfg-search/model"
	"github.com/gcbaptista/mfg-search/services"
	"github.com/gcbaptista/mfg-search/store"
)

// Engine is the loaded query client. Everything it holds is read-only after
// construction, so it is safe for concurrent use.
// It implements the services.QueryClient interface.
type Engine struct {
	index    *index.InvertedIndex
	docs     *store.DocumentStore
	searcher *search.Service
	layout   view.Layout
	loadedAt time.Time
}

// New assembles an engine from an index and a dataset already in memory.
func New(ii *index.InvertedIndex, docs *store.DocumentStore, viewCfg config.ViewConfig) (*Engine, error) {
	if ii == nil {
		return nil, fmt.Errorf("index cannot be nil")
	}
	if docs == nil {
		return nil, fmt.Errorf("document store cannot be nil")
	}

	searcher, err := search.NewService(ii)
	if err != nil {
		return nil, err
	}

	log := logger.WithComponent("engine")
	settings := ii.Settings()
	if viewCfg.TitleField != "" && !ii.HasField(viewCfg.TitleField) {
		log.Warn("title field is not indexed, titles will not be highlighted", slog.String("field", viewCfg.TitleField))
	}
	for _, s := range viewCfg.Sections {
		if !ii.HasField(s.Field) {
			log.Warn("section field is not indexed, it will not be highlighted", slog.String("field", s.Field))
		}
	}
	if ii.DocumentCount() != docs.Len() {
		log.Warn("index and dataset sizes differ", slog.Int("indexed", ii.DocumentCount()), slog.Int("dataset", docs.Len()))
	}

	return &Engine{
		index:    ii,
		docs:     docs,
		searcher: searcher,
		layout:   view.NewLayout(viewCfg, settings),
		loadedAt: time.Now(),
	}, nil
}

// Load reads the index artifact and the dataset named in cfg.Assets.
func Load(cfg *config.AppConfig) (*Engine, error) {
	ii, err := LoadIndex(cfg.Assets.IndexPath)
	if err != nil {
		return nil, err
	}

	var docs *store.DocumentStore
	err = persistence.ReadFile(cfg.Assets.DatasetPath, func(r io.Reader) error {
		var loadErr error
		docs, loadErr = store.Load(r, ii.Ref)
		return loadErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	eng, err := New(ii, docs, cfg.View)
	if err != nil {
		return nil, err
	}
	logger.WithComponent("engine").Info("query client loaded",
		slog.String("index", cfg.Assets.IndexPath),
		slog.String("dataset", cfg.Assets.DatasetPath),
		slog.Int("documents", docs.Len()),
		slog.Int("terms", ii.TermCount()))
	return eng, nil
}

// LoadIndex reads and validates a serialized index file.
func LoadIndex(path string) (*index.InvertedIndex, error) {
	var ii *index.InvertedIndex
	err := persistence.ReadFile(path, func(r io.Reader) error {
		var loadErr error
		ii, loadErr = index.Load(r)
		return loadErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load index: %w", err)
	}
	return ii, nil
}

// Render returns the view for a query.
func (e *Engine) Render(query string) model.ViewModel {
	return view.Render(query, e.searcher, e.docs, e.layout)
}

// Search evaluates a query and returns the ranked results with match data.
func (e *Engine) Search(query string) ([]search.Result, error) {
	return e.searcher.Search(query)
}

// GetDocument returns one record by reference key.
func (e *Engine) GetDocument(ref string) (model.Document, error) {
	return e.docs.Get(ref)
}

// IndexInfo summarizes the loaded index.
func (e *Engine) IndexInfo() services.IndexInfo {
	return services.NewIndexInfo(e.index, e.docs.Len())
}

// LoadedAt returns when the engine was assembled.
func (e *Engine) LoadedAt() time.Time {
	return e.loadedAt
}

// SaveIndex writes a serialized index to path atomically.
func SaveIndex(path string, ii *index.InvertedIndex) error {
	return persistence.WriteFileAtomic(path, func(w io.Writer) error {
		_, err := ii.WriteTo(w)
		return err
	})
}
