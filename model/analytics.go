package model

import "time"

// SearchEvent represents a single search event for analytics tracking
type SearchEvent struct {
	QueryID      string        `json:"query_id"`
	Query        string        `json:"query"`
	State        ViewState     `json:"state"`
	ResponseTime time.Duration `json:"response_time"`
	ResultCount  int           `json:"result_count"`
	Timestamp    time.Time     `json:"timestamp"`
}

// PopularSearch represents aggregated data for popular search terms
type PopularSearch struct {
	Query       string `json:"query"`
	SearchCount int    `json:"search_count"`
	LastResults int    `json:"last_result_count"`
}

// AnalyticsSummary is the query analytics report served by the API
type AnalyticsSummary struct {
	TotalSearches      int             `json:"total_searches"`
	ZeroResultSearches int             `json:"zero_result_searches"`
	InvalidQueries     int             `json:"invalid_queries"`
	AvgResponseTimeUs  int64           `json:"avg_response_time_us"`
	PopularSearches    []PopularSearch `json:"popular_searches"`
	ZeroResultQueries  []PopularSearch `json:"zero_result_queries"`
	TotalDocuments     int             `json:"total_documents"`
	TotalIndexedTerms  int             `json:"total_indexed_terms"`
	OldestEventAt      *time.Time      `json:"oldest_event_at,omitempty"`
	MostRecentEventAt  *time.Time      `json:"most_recent_event_at,omitempty"`
}
