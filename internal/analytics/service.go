// Package analytics keeps a bounded in-memory log of queries and reports on it.
package analytics

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gcbaptista/mfg-search/model"
	"github.com/gcbaptista/mfg-search/services"
)

const (
	maxEventsToKeep  = 10000 // Keep last 10k events
	maxPopularToShow = 10
)

// IndexInfoProvider supplies the index figures shown alongside query analytics.
type IndexInfoProvider interface {
	IndexInfo() services.IndexInfo
}

// Service implements analytics tracking and reporting
type Service struct {
	mutex     sync.RWMutex
	events    []model.SearchEvent
	indexInfo IndexInfoProvider
	now       func() time.Time
}

// NewService creates a new analytics service. indexInfo may be nil.
func NewService(indexInfo IndexInfoProvider) *Service {
	return &Service{
		events:    make([]model.SearchEvent, 0),
		indexInfo: indexInfo,
		now:       time.Now,
	}
}

// TrackSearchEvent records a new search event
func (s *Service) TrackSearchEvent(event model.SearchEvent) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	s.events = append(s.events, event)

	// Keep only the latest events to prevent unbounded growth
	if len(s.events) > maxEventsToKeep {
		s.events = s.events[len(s.events)-maxEventsToKeep:]
	}
}

// EventCount returns how many events are currently retained.
func (s *Service) EventCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.events)
}

// GetSummary aggregates the retained events.
func (s *Service) GetSummary() model.AnalyticsSummary {
	s.mutex.RLock()
	events := make([]model.SearchEvent, len(s.events))
	copy(events, s.events)
	s.mutex.RUnlock()

	summary := model.AnalyticsSummary{
		TotalSearches:     len(events),
		AvgResponseTimeUs: calculateAvgResponseTime(events),
		PopularSearches:   getPopularSearches(events, func(model.SearchEvent) bool { return true }),
		ZeroResultQueries: getPopularSearches(events, func(e model.SearchEvent) bool {
			return e.State == model.ViewStateNoResults
		}),
	}

	for _, e := range events {
		switch e.State {
		case model.ViewStateNoResults:
			summary.ZeroResultSearches++
		case model.ViewStateInvalidQuery:
			summary.InvalidQueries++
		}
	}

	if len(events) > 0 {
		oldest := events[0].Timestamp
		newest := events[len(events)-1].Timestamp
		summary.OldestEventAt = &oldest
		summary.MostRecentEventAt = &newest
	}

	if s.indexInfo != nil {
		info := s.indexInfo.IndexInfo()
		summary.TotalDocuments = info.DocumentCount
		summary.TotalIndexedTerms = info.TermCount
	}

	return summary
}

func calculateAvgResponseTime(events []model.SearchEvent) int64 {
	if len(events) == 0 {
		return 0
	}

	var total time.Duration
	for _, event := range events {
		total += event.ResponseTime
	}

	return (total / time.Duration(len(events))).Microseconds()
}

// getPopularSearches counts normalized queries among the events that pass keep.
// Blank queries are the idle listing and are not counted.
func getPopularSearches(events []model.SearchEvent, keep func(model.SearchEvent) bool) []model.PopularSearch {
	queryStats := make(map[string]*model.PopularSearch)
	var order []string

	for _, event := range events {
		if !keep(event) {
			continue
		}
		query := strings.ToLower(strings.TrimSpace(event.Query))
		if query == "" {
			continue
		}
		stats, exists := queryStats[query]
		if !exists {
			stats = &model.PopularSearch{Query: query}
			queryStats[query] = stats
			order = append(order, query)
		}
		stats.SearchCount++
		stats.LastResults = event.ResultCount
	}

	queries := make([]model.PopularSearch, 0, len(order))
	for _, q := range order {
		queries = append(queries, *queryStats[q])
	}

	// Most searched first; first-seen order breaks ties
	sort.SliceStable(queries, func(i, j int) bool {
		return queries[i].SearchCount > queries[j].SearchCount
	})

	if len(queries) > maxPopularToShow {
		queries = queries[:maxPopularToShow]
	}
	return queries
}
