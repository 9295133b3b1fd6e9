// Package config handles loading and managing Cropwise configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/cropwise/cropwise/pkg/scoring"
)

// Catalog sources accepted by CatalogConfig.Source.
const (
	SourceBuiltin  = "builtin"
	SourceFile     = "file"
	SourceS3       = "s3"
	SourceGCS      = "gcs"
	SourcePostgres = "postgres"
)

// Sources lists the valid catalog sources.
var Sources = []string{SourceBuiltin, SourceFile, SourceS3, SourceGCS, SourcePostgres}

// Config is the top-level configuration for Cropwise.
type Config struct {
	Scoring ScoringConfig `yaml:"scoring" toml:"scoring"`
	Catalog CatalogConfig `yaml:"catalog" toml:"catalog"`
	Server  ServerConfig  `yaml:"server" toml:"server"`
}

// ScoringConfig controls scoring behavior.
type ScoringConfig struct {
	Weights map[string]float64 `yaml:"weights" toml:"weights"`
}

// CatalogConfig says where crop profiles are loaded from.
type CatalogConfig struct {
	Source   string `yaml:"source" toml:"source"`
	Path     string `yaml:"path" toml:"path"`         // file source, or local blob root
	Bucket   string `yaml:"bucket" toml:"bucket"`     // s3, gcs
	Key      string `yaml:"key" toml:"key"`           // object key within the bucket
	Region   string `yaml:"region" toml:"region"`     // s3
	Endpoint string `yaml:"endpoint" toml:"endpoint"` // s3-compatible endpoint, e.g. MinIO
}

// ServerConfig controls the HTTP daemon.
type ServerConfig struct {
	Port             string `yaml:"port" toml:"port"`
	SessionCacheSize int    `yaml:"session_cache_size" toml:"session_cache_size"`
	AllowedOrigin    string `yaml:"allowed_origin" toml:"allowed_origin"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Scoring: ScoringConfig{
			Weights: map[string]float64{},
		},
		Catalog: CatalogConfig{
			Source: SourceBuiltin,
			Key:    "catalog.json",
		},
		Server: ServerConfig{
			Port:             "8080",
			SessionCacheSize: 256,
			AllowedOrigin:    "*",
		},
	}
}

// Load reads a config file from the given path. TOML is used for .toml
// files and YAML for everything else.
// If the file does not exist, it returns the default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the catalog source and the weight overrides.
func (c *Config) Validate() error {
	switch c.Catalog.Source {
	case SourceBuiltin, SourceFile, SourcePostgres:
	case "":
		c.Catalog.Source = SourceBuiltin
	case SourceS3, SourceGCS:
		if c.Catalog.Bucket == "" {
			return fmt.Errorf("catalog source %s requires a bucket", c.Catalog.Source)
		}
	default:
		return fmt.Errorf("unknown catalog source %q (want one of %s)", c.Catalog.Source, strings.Join(Sources, ", "))
	}
	if c.Catalog.Source == SourceFile && c.Catalog.Path == "" {
		return fmt.Errorf("catalog source file requires a path")
	}
	if c.Server.SessionCacheSize < 0 {
		return fmt.Errorf("session_cache_size must not be negative")
	}
	if _, err := c.Scoring.Resolve(); err != nil {
		return fmt.Errorf("scoring: %w", err)
	}
	return nil
}

// Resolve applies the configured overrides to the default weights.
func (s ScoringConfig) Resolve() (scoring.Weights, error) {
	return scoring.Defaults().WithOverrides(s.Weights)
}

// FindConfigFile looks for .cropwise/config.yaml (or config.toml) in the
// given directory and its parents, returning the path if found, or "" if not.
func FindConfigFile(dir string) string {
	for {
		for _, name := range []string{"config.yaml", "config.yml", "config.toml"} {
			candidate := filepath.Join(dir, ".cropwise", name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}
