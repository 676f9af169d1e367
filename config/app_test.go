package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultRefField, cfg.Index.Ref)
	assert.Equal(t, []string{"name", "description", "products_manufactured"}, cfg.Index.FieldNames())
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "assets/index.json", cfg.Assets.IndexPath)
	assert.Equal(t, "name", cfg.View.TitleField)
	assert.Len(t, cfg.View.Sections, 2)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
index:
  ref: detail_url
  fields:
    - name: name
      boost: 2
    - name: naics_code_primary
      path: details.naics_code_(primary)
assets:
  index_path: /tmp/idx.json
server:
  port: 9000
  read_timeout: 3s
view:
  title_field: name
  sections:
    - field: naics_code_primary
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Len(t, cfg.Index.Fields, 2)
	assert.Equal(t, "name", cfg.Index.Fields[0].Path)
	assert.Equal(t, 2.0, cfg.Index.Fields[0].Boost)
	assert.Equal(t, 1.0, cfg.Index.Fields[1].Boost)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "/tmp/idx.json", cfg.Assets.IndexPath)
	assert.Equal(t, "assets/everything.json", cfg.Assets.DatasetPath)
	assert.Equal(t, "naics_code_primary", cfg.View.Sections[0].Label)
	assert.Equal(t, DefaultRefField, cfg.View.LinkField)
}

func TestLoad_BM25Parameters(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		expectedK1 float64
		expectedB  float64
	}{
		{name: "absent keys use defaults", body: "index:\n  ref: detail_url\n", expectedK1: DefaultK1, expectedB: DefaultB},
		{name: "b zero is kept", body: "index:\n  b: 0\n", expectedK1: DefaultK1, expectedB: 0},
		{name: "explicit values", body: "index:\n  k1: 1.6\n  b: 0.3\n", expectedK1: 1.6, expectedB: 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.body))
			require.NoError(t, err)

			assert.Equal(t, tt.expectedK1, cfg.Index.BM25K1())
			assert.Equal(t, tt.expectedB, cfg.Index.BM25B())
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MFG_SERVER_PORT", "7070")
	t.Setenv("MFG_DATASET_PATH", "/data/companies.json")
	t.Setenv("MFG_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "/data/companies.json", cfg.Assets.DatasetPath)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{name: "missing file", path: filepath.Join(t.TempDir(), "nope.yaml")},
		{name: "invalid yaml", path: writeConfig(t, "index: [")},
		{name: "section not indexed", path: writeConfig(t, "view:\n  sections:\n    - field: email\n")},
		{name: "duplicate fields", path: writeConfig(t, "index:\n  fields:\n    - name: a\n    - name: a\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			assert.Error(t, err)
		})
	}
}

func TestLoad_ShippedConfigs(t *testing.T) {
	for _, name := range []string{"default.yaml", "naics.yaml"} {
		t.Run(name, func(t *testing.T) {
			cfg, err := Load(filepath.Join("..", "configs", name))
			require.NoError(t, err)
			assert.NotEmpty(t, cfg.Index.Fields)
		})
	}
}
