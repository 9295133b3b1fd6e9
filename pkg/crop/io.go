package crop

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is a catalog file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the encoding from a file name or object key.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// CatalogFile is the on-disk shape of a crop catalog.
type CatalogFile struct {
	Version int           `json:"version" yaml:"version"`
	Crops   []CropProfile `json:"crops" yaml:"crops"`
}

// DecodeCatalog parses catalog bytes in the given format.
func DecodeCatalog(data []byte, format Format) ([]CropProfile, error) {
	var f CatalogFile
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("unmarshaling catalog yaml: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("unmarshaling catalog json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", format)
	}
	return f.Crops, nil
}

// EncodeCatalog serializes profiles in the given format.
func EncodeCatalog(profiles []CropProfile, format Format) ([]byte, error) {
	f := CatalogFile{Version: 1, Crops: profiles}
	switch format {
	case FormatYAML:
		data, err := yaml.Marshal(&f)
		if err != nil {
			return nil, fmt.Errorf("marshaling catalog yaml: %w", err)
		}
		return data, nil
	case FormatJSON:
		data, err := json.MarshalIndent(&f, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling catalog json: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", format)
	}
}

// LoadCatalogFile reads a catalog from disk.
func LoadCatalogFile(path string) ([]CropProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return DecodeCatalog(data, FormatForPath(path))
}

// SaveCatalogFile writes a catalog to disk, creating parent directories.
func SaveCatalogFile(path string, profiles []CropProfile) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for catalog: %w", err)
	}

	data, err := EncodeCatalog(profiles, FormatForPath(path))
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}

	return nil
}
