package model

// ViewState is the state of the visible result set.
type ViewState string

const (
	// ViewStateIdle means the query is blank and every record is listed in dataset order.
	ViewStateIdle ViewState = "idle"
	// ViewStateResults means the query matched at least one record.
	ViewStateResults ViewState = "results"
	// ViewStateNoResults means the query was valid but matched nothing.
	ViewStateNoResults ViewState = "no_results"
	// ViewStateInvalidQuery means the query could not be parsed; it renders like ViewStateNoResults.
	ViewStateInvalidQuery ViewState = "invalid_query"
)

// IsEmpty reports whether the state renders an empty list.
func (s ViewState) IsEmpty() bool {
	return s == ViewStateNoResults || s == ViewStateInvalidQuery
}

// Span is a run of field text, either plain or emphasized.
type Span struct {
	Text      string `json:"text"`
	Highlight bool   `json:"highlight"`
}

// Section is one labelled block of a card (e.g. "Description").
type Section struct {
	Field string `json:"field"`
	Label string `json:"label"`
	Spans []Span `json:"spans"`
}

// CompanyCard is the rendered form of one record.
type CompanyCard struct {
	Ref      string    `json:"ref"`
	URL      string    `json:"url"`
	Score    float64   `json:"score,omitempty"`
	Title    []Span    `json:"title"`
	Sections []Section `json:"sections"`
}

// ViewModel is everything a front-end needs to draw the result list for one query.
type ViewModel struct {
	Query   string        `json:"query"`
	State   ViewState     `json:"state"`
	Total   int           `json:"total"`
	QueryID string        `json:"query_id,omitempty"`
	Cards   []CompanyCard `json:"cards"`
}
