package catalogstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/cropwise/cropwise/pkg/catalog"
	"github.com/cropwise/cropwise/pkg/config"
	"github.com/cropwise/cropwise/pkg/crop"
)

// ErrNotFound is wrapped by blob stores when a catalog key does not exist.
var ErrNotFound = errors.New("catalog not found")

// Source yields the crop profiles the engine ranks, in catalog order.
type Source interface {
	Load(ctx context.Context) ([]crop.CropProfile, error)
}

// BuiltinSource serves the compiled-in default catalog.
type BuiltinSource struct{}

func (BuiltinSource) Load(ctx context.Context) ([]crop.CropProfile, error) {
	return catalog.DefaultProfiles(), nil
}

// BlobSource reads a catalog file from a BlobStore. The key's extension picks
// JSON or YAML decoding.
type BlobSource struct {
	Store BlobStore
	Key   string
}

func (s BlobSource) Load(ctx context.Context) ([]crop.CropProfile, error) {
	data, err := s.Store.GetCatalog(ctx, s.Key)
	if err != nil {
		return nil, err
	}
	profiles, err := crop.DecodeCatalog(data, crop.FormatForPath(s.Key))
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", s.Key, err)
	}
	return profiles, nil
}

// Close releases the underlying store's client, if it holds one.
func (s BlobSource) Close() error {
	return Close(s.Store)
}

// Close closes v if it implements io.Closer. Sources and stores that hold no
// client are left alone.
func Close(v any) error {
	if c, ok := v.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Publish encodes profiles and writes them to a BlobStore under key.
func Publish(ctx context.Context, store BlobStore, key string, profiles []crop.CropProfile) error {
	if err := catalog.Validate(profiles); err != nil {
		return fmt.Errorf("invalid catalog: %w", err)
	}
	data, err := crop.EncodeCatalog(profiles, crop.FormatForPath(key))
	if err != nil {
		return err
	}
	return store.PutCatalog(ctx, key, data)
}

// OpenBlobStore returns the blob backend for an s3, gcs or file source.
func OpenBlobStore(ctx context.Context, cfg config.CatalogConfig) (BlobStore, error) {
	switch cfg.Source {
	case config.SourceS3:
		return NewS3Storage(ctx, S3Config{
			Bucket:   cfg.Bucket,
			Region:   cfg.Region,
			Endpoint: cfg.Endpoint,
		})
	case config.SourceGCS:
		return NewGCSStorage(ctx, cfg.Bucket)
	case config.SourceFile:
		return NewLocalStorage(filepath.Dir(cfg.Path)), nil
	default:
		return nil, fmt.Errorf("catalog source %q has no blob store", cfg.Source)
	}
}

// Open picks the catalog backend named by cfg.Source. db is only used for
// the postgres source.
func Open(ctx context.Context, cfg config.CatalogConfig, db *sql.DB) (Source, error) {
	switch cfg.Source {
	case "", config.SourceBuiltin:
		return BuiltinSource{}, nil
	case config.SourcePostgres:
		if db == nil {
			return nil, fmt.Errorf("catalog source postgres requires DATABASE_URL")
		}
		return NewPostgresStore(db), nil
	case config.SourceFile:
		store, err := OpenBlobStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return BlobSource{Store: store, Key: filepath.Base(cfg.Path)}, nil
	case config.SourceS3, config.SourceGCS:
		store, err := OpenBlobStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return BlobSource{Store: store, Key: cfg.Key}, nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Source)
	}
}

// LoadCatalog loads profiles from src and builds a validated Catalog.
func LoadCatalog(ctx context.Context, src Source) (*catalog.Catalog, error) {
	profiles, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if err := catalog.Validate(profiles); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return catalog.New(profiles)
}

func contentTypeFor(key string) string {
	if crop.FormatForPath(key) == crop.FormatYAML {
		return "application/yaml"
	}
	return "application/json"
}
