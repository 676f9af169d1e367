// Package testing provides fixtures and helpers shared by the package tests.
package testing

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/mfg-search/config"
	"github.com/gcbaptista/mfg-search/index"
	"github.com/gcbaptista/mfg-search/internal/indexing"
	"github.com/gcbaptista/mfg-search/model"
)

// Reference keys of the sample companies, in dataset order.
const (
	AcmeRef      = "https://example.com/companies/acme-steel-works"
	BrightRef    = "https://example.com/companies/brightline-plastics"
	CascadeRef   = "https://example.com/companies/cascade-machining"
	DeltaRef     = "https://example.com/companies/delta-bakery"
	EverfieldRef = "https://example.com/companies/everfield-textiles"
)

// SampleCompanies returns a small dataset in the shape the scraper produces.
// Cascade has no products_manufactured detail; Everfield has no description.
func SampleCompanies() []model.Document {
	return []model.Document{
		{
			"detail_url":   AcmeRef,
			"name":         "Acme Steel Works",
			"email":        "sales@acme.example",
			"phone_number": "(555) 010-2000",
			"website":      "https://acme.example",
			"details": map[string]interface{}{
				"description":           "Widgets made of steel",
				"products_manufactured": "Steel widgets, brackets and stamped parts",
				"naics_code_(primary)":  "332999",
			},
		},
		{
			"detail_url": BrightRef,
			"name":       "Brightline Plastics",
			"details": map[string]interface{}{
				"description":            "Custom injection molding for medical devices",
				"products_manufactured":  "Plastic housings, medical device components",
				"naics_code_(primary)":   "326199",
				"naics_code_(secondary)": "339112",
			},
		},
		{
			"detail_url": CascadeRef,
			"name":       "Cascade Machining",
			"details": map[string]interface{}{
				"description": "Precision CNC machining of aluminum and steel",
			},
		},
		{
			"detail_url": DeltaRef,
			"name":       "Delta Bakery",
			"details": map[string]interface{}{
				"description":           "Family-owned bakery",
				"products_manufactured": []interface{}{"Bread", "pastries", "cakes"},
				"naics_code_(primary)":  311811,
			},
		},
		{
			"detail_url": EverfieldRef,
			"name":       "Everfield Textiles",
			"details": map[string]interface{}{
				"products_manufactured": "Woven fabrics and industrial textiles",
			},
		},
	}
}

// SampleCompaniesJSON returns SampleCompanies encoded as a JSON array.
func SampleCompaniesJSON(t *testing.T) []byte {
	t.Helper()
	data, err := json.Marshal(SampleCompanies())
	require.NoError(t, err, "Failed to encode sample companies")
	return data
}

// BuildTestIndex builds an index over the sample companies with the given settings.
func BuildTestIndex(t *testing.T, settings config.IndexSettings) *index.InvertedIndex {
	t.Helper()
	ii, err := indexing.BuildFromDocuments(SampleCompanies(), settings)
	require.NoError(t, err, "Failed to build test index")
	return ii
}

// WriteAssets writes the sample dataset and its serialized index into a temp
// directory and returns a config pointing at them.
func WriteAssets(t *testing.T, settings config.IndexSettings) *config.AppConfig {
	t.Helper()
	dir := t.TempDir()

	ii := BuildTestIndex(t, settings)
	var buf bytes.Buffer
	_, err := ii.WriteTo(&buf)
	require.NoError(t, err, "Failed to serialize test index")

	indexPath := filepath.Join(dir, "index.json")
	datasetPath := filepath.Join(dir, "everything.json")
	require.NoError(t, os.WriteFile(indexPath, buf.Bytes(), 0o644))
	require.NoError(t, os.WriteFile(datasetPath, SampleCompaniesJSON(t), 0o644))

	cfg := config.DefaultAppConfig()
	cfg.Index = settings
	cfg.Index.ApplyDefaults()
	cfg.Assets.IndexPath = indexPath
	cfg.Assets.DatasetPath = datasetPath
	return cfg
}
