// Package highlight splits field text into plain and emphasized spans.
package highlight

import (
	"sort"
	"unicode/utf8"

	"github.com/gcbaptista/mfg-search/model"
)

// Highlight splits text around the given matches. All matches are applied
// regardless of their Field; use ForField to scope them first.
//
// Matches are taken in ascending start order and never merged. A match that
// starts inside the previous one is clipped to begin where that one ended,
// offsets past the end of text are clamped, and empty spans are omitted.
// Empty text yields no spans; text without matches yields a single plain span.
func Highlight(text string, matches []model.Match) []model.Span {
	spans := make([]model.Span, 0)
	if text == "" {
		return spans
	}
	if len(matches) == 0 {
		return append(spans, model.Span{Text: text})
	}

	ordered := make([]model.Match, len(matches))
	copy(ordered, matches)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Start < ordered[j].Start
	})

	prev := 0
	for _, m := range ordered {
		start := alignStart(text, clamp(m.Start, 0, len(text)))
		end := alignEnd(text, clamp(m.Start+m.Length, 0, len(text)))
		if start < prev {
			start = prev
		}
		if end <= start {
			continue
		}
		if start > prev {
			spans = append(spans, model.Span{Text: text[prev:start]})
		}
		spans = append(spans, model.Span{Text: text[start:end], Highlight: true})
		prev = end
	}
	if prev < len(text) {
		spans = append(spans, model.Span{Text: text[prev:]})
	}
	return spans
}

// ForField highlights text with only the matches recorded for field.
func ForField(text, field string, matches []model.Match) []model.Span {
	scoped := make([]model.Match, 0, len(matches))
	for _, m := range matches {
		if m.Field == field {
			scoped = append(scoped, m)
		}
	}
	return Highlight(text, scoped)
}

// HasHighlight reports whether any span is emphasized.
func HasHighlight(spans []model.Span) bool {
	for _, s := range spans {
		if s.Highlight {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// alignStart moves an offset back to the first byte of the rune containing it.
func alignStart(text string, i int) int {
	for i > 0 && i < len(text) && !utf8.RuneStart(text[i]) {
		i--
	}
	return i
}

// alignEnd moves an offset forward past the rune containing it.
func alignEnd(text string, i int) int {
	for i > 0 && i < len(text) && !utf8.RuneStart(text[i]) {
		i++
	}
	return i
}
