package main

import (
	"os"
	"path/filepath"
	"testing"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "server:\n  port: \"9000\"\ncatalog:\n  source: gcs\n  bucket: from-file\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(envMap(map[string]string{
		"CROPWISE_CONFIG":    path,
		"PORT":               "8181",
		"CATALOG_BUCKET":     "from-env",
		"SESSION_CACHE_SIZE": "12",
		"DATABASE_URL":       "postgres://localhost/cropwise",
	}))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	if cfg.Server.Port != "8181" {
		t.Errorf("Port = %q, want env override", cfg.Server.Port)
	}
	if cfg.Catalog.Source != "gcs" || cfg.Catalog.Bucket != "from-env" {
		t.Errorf("Catalog = %+v", cfg.Catalog)
	}
	if cfg.Server.SessionCacheSize != 12 {
		t.Errorf("SessionCacheSize = %d", cfg.Server.SessionCacheSize)
	}
	if cfg.DatabaseURL != "postgres://localhost/cropwise" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(envMap(map[string]string{
		"CROPWISE_CONFIG": filepath.Join(t.TempDir(), "missing.yaml"),
	}))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Server.Port != "8080" || cfg.Catalog.Source != "builtin" {
		t.Errorf("unexpected defaults: %+v %+v", cfg.Server, cfg.Catalog)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "bad cache size", env: map[string]string{"SESSION_CACHE_SIZE": "lots"}},
		{name: "unknown source", env: map[string]string{"CATALOG_SOURCE": "ftp"}},
		{name: "s3 without bucket", env: map[string]string{"CATALOG_SOURCE": "s3"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.env["CROPWISE_CONFIG"] = filepath.Join(t.TempDir(), "missing.yaml")
			if _, err := loadConfig(envMap(tc.env)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
