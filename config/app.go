package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig is the root application configuration shared by the builder and the query client.
type AppConfig struct {
	Index   IndexSettings `yaml:"index"`
	Assets  AssetsConfig  `yaml:"assets"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	View    ViewConfig    `yaml:"view"`
}

// AssetsConfig locates the two artifacts the query client loads at startup.
type AssetsConfig struct {
	IndexPath   string `yaml:"index_path"`
	DatasetPath string `yaml:"dataset_path"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Addr returns the listen address for the configured port.
func (s ServerConfig) Addr() string {
	return ":" + strconv.Itoa(s.Port)
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// SectionConfig is one labelled block of a result card.
// Field names an indexed field; Path is only needed for fields that are not indexed.
type SectionConfig struct {
	Field string `yaml:"field"`
	Label string `yaml:"label"`
	Path  string `yaml:"path,omitempty"`
}

// ViewConfig describes how a record is turned into a card.
type ViewConfig struct {
	TitleField string          `yaml:"title_field"`
	LinkField  string          `yaml:"link_field"`
	Sections   []SectionConfig `yaml:"sections"`
}

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides. Missing values fall back to the three-field company defaults.
func Load(path string) (*AppConfig, error) {
	cfg := DefaultAppConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultAppConfig returns the configuration used when no file is given.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Index: DefaultIndexSettings(),
		Assets: AssetsConfig{
			IndexPath:   "assets/index.json",
			DatasetPath: "assets/everything.json",
		},
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		View: DefaultViewConfig(),
	}
}

// DefaultViewConfig mirrors the company card: linked name, description and products.
func DefaultViewConfig() ViewConfig {
	return ViewConfig{
		TitleField: "name",
		LinkField:  DefaultRefField,
		Sections: []SectionConfig{
			{Field: "description", Label: "Description"},
			{Field: "products_manufactured", Label: "Products Manufactured"},
		},
	}
}

// Validate checks the index settings and the card layout against each other.
func (c *AppConfig) Validate() error {
	var problems []string
	problems = append(problems, c.Index.ValidateFieldNames()...)

	indexed := make(map[string]bool, len(c.Index.Fields))
	for _, f := range c.Index.Fields {
		indexed[f.Name] = true
	}
	if c.View.TitleField != "" && !indexed[c.View.TitleField] {
		problems = append(problems, "Title field '"+c.View.TitleField+"' is not an indexed field")
	}
	for _, s := range c.View.Sections {
		if !indexed[s.Field] && s.Path == "" {
			problems = append(problems, "Section '"+s.Field+"' is neither indexed nor given a path")
		}
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("Server port %d is out of range", c.Server.Port))
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}

func (c *AppConfig) applyDefaults() {
	c.Index.ApplyDefaults()
	if c.View.LinkField == "" {
		c.View.LinkField = c.Index.Ref
	}
	for i := range c.View.Sections {
		if c.View.Sections[i].Label == "" {
			c.View.Sections[i].Label = c.View.Sections[i].Field
		}
	}
}

// applyEnvOverrides reads MFG_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *AppConfig) {
	if v := os.Getenv("MFG_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("MFG_INDEX_PATH"); v != "" {
		cfg.Assets.IndexPath = v
	}
	if v := os.Getenv("MFG_DATASET_PATH"); v != "" {
		cfg.Assets.DatasetPath = v
	}
	if v := os.Getenv("MFG_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("MFG_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
