// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Source kinds.
const (
	SourceKindFile = "file"
	SourceKindHTML = "html"
)

// Defaults applied by MergeWithDefaults.
const (
	DefaultTopK         = 6
	DefaultHorizonWeeks = 8
	DefaultCacheTTL     = "1h"
	DefaultLogMode      = "dev"
	DefaultPort         = 8080
)

// SourceConfig describes one posting feed.
type SourceConfig struct {
	Name       string `json:"name" yaml:"name"`
	Kind       string `json:"kind" yaml:"kind"`                                   // file or html
	Path       string `json:"path,omitempty" yaml:"path,omitempty"`               // JSON file of postings (kind=file)
	URL        string `json:"url,omitempty" yaml:"url,omitempty"`                 // job board page (kind=html)
	Source     string `json:"source,omitempty" yaml:"source,omitempty"`           // posting source label, e.g. LinkedIn
	UseBrowser bool   `json:"use_browser,omitempty" yaml:"use_browser,omitempty"` // render with headless Chrome
}

// Config is the application configuration, loaded from JSON or YAML.
// All fields are optional.
type Config struct {
	TaxonomyPath string `json:"taxonomy_path,omitempty" yaml:"taxonomy_path,omitempty"`
	RolesPath    string `json:"roles_path,omitempty" yaml:"roles_path,omitempty"`

	TopK         int `json:"top_k,omitempty" yaml:"top_k,omitempty"`
	HorizonWeeks int `json:"horizon_weeks,omitempty" yaml:"horizon_weeks,omitempty"`

	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"`
	RedisAddr   string `json:"redis_addr,omitempty" yaml:"redis_addr,omitempty"`
	CacheTTL    string `json:"cache_ttl,omitempty" yaml:"cache_ttl,omitempty"`

	Port    int    `json:"port,omitempty" yaml:"port,omitempty"`
	LogMode string `json:"log_mode,omitempty" yaml:"log_mode,omitempty"`
	APIKey  string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	Verbose bool   `json:"verbose,omitempty" yaml:"verbose,omitempty"`

	Sources []SourceConfig `json:"sources,omitempty" yaml:"sources,omitempty"`
}

// LoadConfig reads a config file, choosing the decoder by extension
// (.yaml/.yml for YAML, anything else JSON).
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks value ranges, source definitions, and that referenced files exist.
func (c *Config) Validate() error {
	if c.TopK < 0 {
		return fmt.Errorf("config error: 'top_k' must be non-negative")
	}
	if c.HorizonWeeks < 0 {
		return fmt.Errorf("config error: 'horizon_weeks' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' out of range: %d", c.Port)
	}
	if c.CacheTTL != "" {
		if _, err := time.ParseDuration(c.CacheTTL); err != nil {
			return fmt.Errorf("config error: invalid 'cache_ttl' %q: %w", c.CacheTTL, err)
		}
	}

	for _, p := range []struct{ field, path string }{
		{"taxonomy_path", c.TaxonomyPath},
		{"roles_path", c.RolesPath},
	} {
		if p.path == "" {
			continue
		}
		if _, err := os.Stat(p.path); os.IsNotExist(err) {
			return fmt.Errorf("config error: %s file not found: %s", p.field, p.path)
		}
	}

	for i, s := range c.Sources {
		label := s.Name
		if label == "" {
			label = fmt.Sprintf("#%d", i+1)
		}
		switch s.Kind {
		case SourceKindFile:
			if s.Path == "" {
				return fmt.Errorf("config error: source %s: 'path' is required for kind file", label)
			}
		case SourceKindHTML:
			if s.URL == "" {
				return fmt.Errorf("config error: source %s: 'url' is required for kind html", label)
			}
		default:
			return fmt.Errorf("config error: source %s: unknown kind %q", label, s.Kind)
		}
	}

	return nil
}

// MergeWithDefaults returns a copy with zero values filled from defaults and
// then from the built-in defaults. Bools are never merged; flags win.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.TaxonomyPath == "" {
		result.TaxonomyPath = defaults.TaxonomyPath
	}
	if result.RolesPath == "" {
		result.RolesPath = defaults.RolesPath
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.RedisAddr == "" {
		result.RedisAddr = defaults.RedisAddr
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if len(result.Sources) == 0 {
		result.Sources = defaults.Sources
	}

	result.TopK = firstInt(result.TopK, defaults.TopK, DefaultTopK)
	result.HorizonWeeks = firstInt(result.HorizonWeeks, defaults.HorizonWeeks, DefaultHorizonWeeks)
	result.Port = firstInt(result.Port, defaults.Port, DefaultPort)
	result.CacheTTL = firstString(result.CacheTTL, defaults.CacheTTL, DefaultCacheTTL)
	result.LogMode = firstString(result.LogMode, defaults.LogMode, DefaultLogMode)

	return result
}

// ApplyEnv fills connection settings left empty from the environment.
func (c *Config) ApplyEnv() {
	c.DatabaseURL = firstString(c.DatabaseURL, os.Getenv("DATABASE_URL"))
	c.RedisAddr = firstString(c.RedisAddr, os.Getenv("REDIS_ADDR"))
	c.APIKey = firstString(c.APIKey, os.Getenv("GEMINI_API_KEY"))
	c.LogMode = firstString(c.LogMode, os.Getenv("LOG_MODE"))
}

// TTL returns the parsed cache TTL, or the default when unset or invalid.
func (c *Config) TTL() time.Duration {
	if d, err := time.ParseDuration(c.CacheTTL); err == nil && d > 0 {
		return d
	}
	d, _ := time.ParseDuration(DefaultCacheTTL)
	return d
}

func firstInt(values ...int) int {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}

func firstString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
