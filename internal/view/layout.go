package view

import (
	"github.com/gcbaptista/mfg-search/config"
)

// SectionLayout is a resolved card section: which text to show and which
// match field to highlight it with.
type SectionLayout struct {
	Field string
	Label string
	Path  string
}

// Layout describes how a record becomes a card.
type Layout struct {
	RefField  string
	Title     SectionLayout
	LinkField string
	Sections  []SectionLayout
}

// NewLayout resolves section paths against the indexed fields: a section
// names an indexed field and shows the text that field was indexed from.
func NewLayout(view config.ViewConfig, settings config.IndexSettings) Layout {
	paths := make(map[string]string, len(settings.Fields))
	for _, f := range settings.Fields {
		paths[f.Name] = f.Path
	}
	resolve := func(field, explicit string) string {
		if explicit != "" {
			return explicit
		}
		if p, ok := paths[field]; ok {
			return p
		}
		return field
	}

	layout := Layout{
		RefField:  settings.Ref,
		Title:     SectionLayout{Field: view.TitleField, Path: resolve(view.TitleField, "")},
		LinkField: view.LinkField,
	}
	if layout.LinkField == "" {
		layout.LinkField = settings.Ref
	}
	for _, s := range view.Sections {
		layout.Sections = append(layout.Sections, SectionLayout{
			Field: s.Field,
			Label: s.Label,
			Path:  resolve(s.Field, s.Path),
		})
	}
	return layout
}

// DefaultLayout is the company card over the default field set.
func DefaultLayout() Layout {
	return NewLayout(config.DefaultViewConfig(), config.DefaultIndexSettings())
}
