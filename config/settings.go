// Package config provides configuration structures for the index builder and the query client.
// It defines the indexed field list, ranking parameters and application settings.
package config

import (
	"fmt"
	"strings"
)

const (
	// DefaultRefField is the record attribute used as reference key.
	DefaultRefField = "detail_url"
	// DefaultK1 controls term frequency saturation in BM25.
	DefaultK1 = 1.2
	// DefaultB controls field length normalization in BM25.
	DefaultB = 0.75
	// MetadataPosition is the only metadata key the indexer knows how to record.
	MetadataPosition = "position"
)

// FieldSettings declares one indexed field.
type FieldSettings struct {
	Name  string  `json:"name" yaml:"name"`                       // Field name used in queries and match data (e.g. "description")
	Path  string  `json:"path" yaml:"path"`                       // Dotted extraction path into the record (e.g. "details.description")
	Boost float64 `json:"boost,omitempty" yaml:"boost,omitempty"` // Score multiplier, 1 when unset
}

// IndexSettings contains all configuration options for building a search index.
//
// Field order matters: postings are stored per document in this order and
// match data is reported with the same field names.
type IndexSettings struct {
	Ref               string          `json:"ref" yaml:"ref"`                               // Record attribute holding the unique reference key
	Fields            []FieldSettings `json:"fields" yaml:"fields"`                         // Indexed fields, in declaration order
	MetadataWhitelist []string        `json:"metadata_whitelist" yaml:"metadata_whitelist"` // Token metadata kept in the index, only "position" is supported
	K1                *float64        `json:"k1,omitempty" yaml:"k1,omitempty"`             // BM25 term frequency saturation, DefaultK1 when unset
	B                 *float64        `json:"b,omitempty" yaml:"b,omitempty"`               // BM25 length normalization, DefaultB when unset; 0 disables it
}

// Float64 returns a pointer to v, for setting K1 and B in literals.
func Float64(v float64) *float64 {
	return &v
}

// BM25K1 returns k1, or DefaultK1 when it is unset.
func (settings IndexSettings) BM25K1() float64 {
	if settings.K1 == nil {
		return DefaultK1
	}
	return *settings.K1
}

// BM25B returns b, or DefaultB when it is unset.
func (settings IndexSettings) BM25B() float64 {
	if settings.B == nil {
		return DefaultB
	}
	return *settings.B
}

// DefaultIndexSettings returns the three-field company index: name, description and products.
func DefaultIndexSettings() IndexSettings {
	settings := IndexSettings{
		Ref: DefaultRefField,
		Fields: []FieldSettings{
			{Name: "name", Path: "name"},
			{Name: "description", Path: "details.description"},
			{Name: "products_manufactured", Path: "details.products_manufactured"},
		},
	}
	settings.ApplyDefaults()
	return settings
}

// NAICSIndexSettings returns the default field list extended with the primary and
// secondary classification codes.
func NAICSIndexSettings() IndexSettings {
	settings := DefaultIndexSettings()
	settings.Fields = append(settings.Fields,
		FieldSettings{Name: "naics_code_primary", Path: "details.naics_code_(primary)", Boost: 1},
		FieldSettings{Name: "naics_code_secondary", Path: "details.naics_code_(secondary)", Boost: 1},
	)
	return settings
}

// FieldNames returns the indexed field names in declaration order.
func (settings *IndexSettings) FieldNames() []string {
	names := make([]string, len(settings.Fields))
	for i, f := range settings.Fields {
		names[i] = f.Name
	}
	return names
}

// StorePositions reports whether token positions are whitelisted.
func (settings *IndexSettings) StorePositions() bool {
	for _, key := range settings.MetadataWhitelist {
		if key == MetadataPosition {
			return true
		}
	}
	return false
}

// ValidateFieldNames validates the field list and ranking parameters.
// It returns one message per problem; an empty slice means the settings are usable.
func (settings *IndexSettings) ValidateFieldNames() []string {
	var conflicts []string

	if strings.TrimSpace(settings.Ref) == "" {
		conflicts = append(conflicts, "Reference field cannot be empty")
	}
	if len(settings.Fields) == 0 {
		conflicts = append(conflicts, "At least one indexed field is required")
	}

	names := make([]string, 0, len(settings.Fields))
	for _, field := range settings.Fields {
		names = append(names, field.Name)
		if strings.TrimSpace(field.Name) == "" {
			conflicts = append(conflicts, "Field name cannot be empty or whitespace-only")
			continue
		}
		if strings.ContainsAny(field.Name, ": \t") {
			conflicts = append(conflicts, "Field '"+field.Name+"' contains characters reserved by the query syntax")
		}
		if strings.TrimSpace(field.Path) == "" {
			conflicts = append(conflicts, "Field '"+field.Name+"' has an empty path")
		}
		if field.Boost < 0 {
			conflicts = append(conflicts, fmt.Sprintf("Field '%s' has a negative boost %g", field.Name, field.Boost))
		}
	}
	conflicts = append(conflicts, checkDuplicates("fields", names)...)
	conflicts = append(conflicts, checkDuplicates("metadata_whitelist", settings.MetadataWhitelist)...)

	for _, key := range settings.MetadataWhitelist {
		if key != MetadataPosition {
			conflicts = append(conflicts, "Unsupported metadata '"+key+"' in metadata_whitelist (only 'position')")
		}
	}

	if k1 := settings.BM25K1(); k1 < 0 {
		conflicts = append(conflicts, fmt.Sprintf("k1 must not be negative, got %g", k1))
	}
	if b := settings.BM25B(); b < 0 || b > 1 {
		conflicts = append(conflicts, fmt.Sprintf("b must be between 0 and 1, got %g", b))
	}

	return conflicts
}

// checkDuplicates checks for duplicate values in a slice and returns error messages
func checkDuplicates(fieldName string, fields []string) []string {
	var errors []string
	seen := make(map[string]bool)

	for _, field := range fields {
		if seen[field] {
			errors = append(errors, "Duplicate field '"+field+"' found in "+fieldName)
		}
		seen[field] = true
	}

	return errors
}

// ApplyDefaults applies default values to the index settings
func (settings *IndexSettings) ApplyDefaults() {
	if settings.Ref == "" {
		settings.Ref = DefaultRefField
	}
	if settings.MetadataWhitelist == nil {
		settings.MetadataWhitelist = []string{MetadataPosition}
	}
	if settings.K1 == nil {
		settings.K1 = Float64(DefaultK1)
	}
	if settings.B == nil {
		settings.B = Float64(DefaultB)
	}
	for i := range settings.Fields {
		if settings.Fields[i].Boost == 0 {
			settings.Fields[i].Boost = 1
		}
		if settings.Fields[i].Path == "" {
			settings.Fields[i].Path = settings.Fields[i].Name
		}
	}
	if settings.Fields == nil {
		settings.Fields = []FieldSettings{}
	}
}
