// Package view computes what a front-end shows for a query: the state of the
// result list and one card per record, with matched terms emphasized.
package view

import (
	"errors"
	"log/slog"
	"strings"

	internalErrors "github.com/gcbaptista/mfg-search/internal/errors"
	"github.com/gcbaptista/mfg-search/internal/highlight"
	"github.com/gcbaptista/mfg-search/internal/logger"
	"github.com/gcbaptista/mfg-search/internal/search"
	"github.com/gcbaptista/mfg-search/model"
	"github.com/gcbaptista/mfg-search/services"
)

// Render is the whole query client: given the query text it returns the view
// to draw. It has no side effects besides logging, so front-ends may call it
// on every keystroke.
//
//   - blank query: idle, every record in dataset order, nothing emphasized
//   - unparseable query: invalid_query, no cards
//   - no hits: no_results
//   - otherwise: results, cards in ranked order
func Render(queryText string, searcher services.Searcher, docs services.DocumentLookup, layout Layout) model.ViewModel {
	vm := model.ViewModel{Query: queryText, Cards: []model.CompanyCard{}}

	if strings.TrimSpace(queryText) == "" {
		vm.State = model.ViewStateIdle
		for _, doc := range docs.All() {
			ref, _ := doc.GetReference(layout.RefField)
			vm.Cards = append(vm.Cards, buildCard(doc, ref, 0, nil, layout))
		}
		vm.Total = len(vm.Cards)
		return vm
	}

	log := logger.WithComponent("view")
	results, err := searcher.Search(queryText)
	if err != nil {
		if errors.Is(err, internalErrors.ErrInvalidQuery) {
			log.Debug("query could not be parsed", slog.String("query", queryText), slog.Any("error", err))
		} else {
			log.Warn("search failed", slog.String("query", queryText), slog.Any("error", err))
		}
		vm.State = model.ViewStateInvalidQuery
		return vm
	}

	for _, result := range results {
		doc, err := docs.Get(result.Ref)
		if err != nil {
			log.Warn("search result has no record in the dataset, skipping", slog.String("ref", result.Ref))
			continue
		}
		vm.Cards = append(vm.Cards, buildCard(doc, result.Ref, result.Score, matchesOf(result), layout))
	}

	vm.Total = len(vm.Cards)
	if vm.Total == 0 {
		vm.State = model.ViewStateNoResults
	} else {
		vm.State = model.ViewStateResults
	}
	return vm
}

func matchesOf(result search.Result) []model.Match {
	if result.MatchData == nil {
		return nil
	}
	return result.MatchData.Matches()
}

func buildCard(doc model.Document, ref string, score float64, matches []model.Match, layout Layout) model.CompanyCard {
	url, ok := doc.Text(layout.LinkField)
	if !ok || url == "" {
		url = ref
	}

	titleText, _ := doc.Text(layout.Title.Path)
	card := model.CompanyCard{
		Ref:      ref,
		URL:      url,
		Score:    score,
		Title:    highlight.ForField(titleText, layout.Title.Field, matches),
		Sections: make([]model.Section, 0, len(layout.Sections)),
	}

	for _, s := range layout.Sections {
		text, _ := doc.Text(s.Path)
		card.Sections = append(card.Sections, model.Section{
			Field: s.Field,
			Label: s.Label,
			Spans: highlight.ForField(text, s.Field, matches),
		})
	}
	return card
}
