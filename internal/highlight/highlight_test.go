package highlight

import (
	"reflect"
	"testing"

	"github.com/gcbaptista/mfg-search/model"
)

func plain(s string) model.Span { return model.Span{Text: s} }
func emph(s string) model.Span  { return model.Span{Text: s, Highlight: true} }

func TestHighlight(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		matches []model.Match
		want    []model.Span
	}{
		{
			name:    "match at the end",
			text:    "Widgets made of steel",
			matches: []model.Match{{Start: 16, Length: 5}},
			want:    []model.Span{plain("Widgets made of "), emph("steel")},
		},
		{
			name:    "match at the start",
			text:    "Steel widgets",
			matches: []model.Match{{Start: 0, Length: 5}},
			want:    []model.Span{emph("Steel"), plain(" widgets")},
		},
		{
			name:    "no matches",
			text:    "Family-owned bakery",
			matches: nil,
			want:    []model.Span{plain("Family-owned bakery")},
		},
		{
			name:    "empty text",
			text:    "",
			matches: []model.Match{{Start: 0, Length: 3}},
			want:    []model.Span{},
		},
		{
			name: "unsorted matches are ordered",
			text: "steel and steel",
			matches: []model.Match{
				{Start: 10, Length: 5},
				{Start: 0, Length: 5},
			},
			want: []model.Span{emph("steel"), plain(" and "), emph("steel")},
		},
		{
			name: "adjacent matches are not merged",
			text: "abcdef",
			matches: []model.Match{
				{Start: 0, Length: 3},
				{Start: 3, Length: 3},
			},
			want: []model.Span{emph("abc"), emph("def")},
		},
		{
			name: "overlapping match is clipped",
			text: "abcdefgh",
			matches: []model.Match{
				{Start: 0, Length: 4},
				{Start: 2, Length: 4},
			},
			want: []model.Span{emph("abcd"), emph("ef"), plain("gh")},
		},
		{
			name: "contained match is dropped",
			text: "abcdefgh",
			matches: []model.Match{
				{Start: 0, Length: 6},
				{Start: 1, Length: 2},
			},
			want: []model.Span{emph("abcdef"), plain("gh")},
		},
		{
			name:    "offsets beyond the text are clamped",
			text:    "steel",
			matches: []model.Match{{Start: 2, Length: 40}, {Start: 99, Length: 1}},
			want:    []model.Span{plain("st"), emph("eel")},
		},
		{
			name:    "zero length match is omitted",
			text:    "steel",
			matches: []model.Match{{Start: 2, Length: 0}},
			want:    []model.Span{plain("steel")},
		},
		{
			name:    "multi-byte text",
			text:    "Façade steel",
			matches: []model.Match{{Start: 8, Length: 5}},
			want:    []model.Span{plain("Façade "), emph("steel")},
		},
		{
			name:    "offset inside a rune is widened",
			text:    "çx",
			matches: []model.Match{{Start: 1, Length: 1}},
			want:    []model.Span{emph("ç"), plain("x")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Highlight(tt.text, tt.matches)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Highlight(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestHighlight_ConcatenationIsLossless(t *testing.T) {
	text := "Precision CNC machining of aluminum and steel"
	matches := []model.Match{{Start: 40, Length: 5}, {Start: 0, Length: 9}, {Start: 5, Length: 30}}

	joined := ""
	for _, s := range Highlight(text, matches) {
		joined += s.Text
	}
	if joined != text {
		t.Errorf("Spans do not reassemble the text: %q", joined)
	}
}

func TestForField(t *testing.T) {
	matches := []model.Match{
		{Term: "steel", Field: "name", Start: 5, Length: 5},
		{Term: "steel", Field: "description", Start: 16, Length: 5},
	}

	got := ForField("Widgets made of steel", "description", matches)
	want := []model.Span{plain("Widgets made of "), emph("steel")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ForField = %+v, want %+v", got, want)
	}

	got = ForField("Acme Steel Works", "products_manufactured", matches)
	if len(got) != 1 || got[0].Highlight {
		t.Errorf("Expected one plain span for a field without matches, got %+v", got)
	}
	if HasHighlight(got) {
		t.Error("HasHighlight should be false")
	}
}
