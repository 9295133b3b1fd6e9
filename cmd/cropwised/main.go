// Command cropwised is the Cropwise API service.
// It serves recommendations, reports and comparison table sessions over the
// configured crop catalog, plus a health check.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/cropwise/cropwise/internal/api"
	"github.com/cropwise/cropwise/internal/catalogstore"
	"github.com/cropwise/cropwise/internal/platform"
	"github.com/cropwise/cropwise/pkg/config"
	"github.com/cropwise/cropwise/pkg/ranking"
	"github.com/cropwise/cropwise/pkg/scoring"
)

type daemonConfig struct {
	*config.Config
	DatabaseURL string
}

// loadConfig reads the config file named by CROPWISE_CONFIG (or the nearest
// .cropwise/config.*), then applies environment overrides.
func loadConfig(getenv func(string) string) (daemonConfig, error) {
	path := getenv("CROPWISE_CONFIG")
	if path == "" {
		if wd, err := os.Getwd(); err == nil {
			path = config.FindConfigFile(wd)
		}
	}

	cfg := config.DefaultConfig()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return daemonConfig{}, err
		}
		cfg = loaded
	}

	get := func(k, def string) string {
		if v := getenv(k); v != "" {
			return v
		}
		return def
	}
	cfg.Server.Port = get("PORT", cfg.Server.Port)
	cfg.Server.AllowedOrigin = get("ALLOWED_ORIGIN", cfg.Server.AllowedOrigin)
	cfg.Catalog.Source = get("CATALOG_SOURCE", cfg.Catalog.Source)
	cfg.Catalog.Path = get("CATALOG_PATH", cfg.Catalog.Path)
	cfg.Catalog.Bucket = get("CATALOG_BUCKET", cfg.Catalog.Bucket)
	cfg.Catalog.Key = get("CATALOG_KEY", cfg.Catalog.Key)
	cfg.Catalog.Region = get("AWS_REGION", cfg.Catalog.Region)
	cfg.Catalog.Endpoint = get("S3_ENDPOINT", cfg.Catalog.Endpoint)
	if v := getenv("SESSION_CACHE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return daemonConfig{}, fmt.Errorf("SESSION_CACHE_SIZE: %w", err)
		}
		cfg.Server.SessionCacheSize = n
	}

	if err := cfg.Validate(); err != nil {
		return daemonConfig{}, err
	}
	return daemonConfig{Config: cfg, DatabaseURL: getenv("DATABASE_URL")}, nil
}

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("load .env: %v", err)
	}

	cfg, err := loadConfig(os.Getenv)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var db *sql.DB
	if cfg.DatabaseURL != "" {
		db, err = platform.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer db.Close()

		if err := platform.AutoMigrate(db); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	src, err := catalogstore.Open(ctx, cfg.Catalog, db)
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}
	cat, err := catalogstore.LoadCatalog(ctx, src)
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}
	// Only the Postgres source is read again, for catalog editing.
	if err := catalogstore.Close(src); err != nil {
		log.Printf("close catalog store: %v", err)
	}
	log.Printf("catalog: source %s, %d crops", cfg.Catalog.Source, cat.Len())

	weights, err := cfg.Scoring.Resolve()
	if err != nil {
		log.Fatalf("scoring weights: %v", err)
	}
	ranker := ranking.NewRanker(scoring.NewEngineWithWeights(weights))

	handler := api.NewHandler(cat, ranker, api.NewSessionCache(cfg.Server.SessionCacheSize))
	if store, ok := src.(*catalogstore.PostgresStore); ok {
		handler.EnableCatalogAdmin(store)
		log.Printf("catalog editing enabled")
	}

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           api.CORS(cfg.Server.AllowedOrigin)(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("starting cropwised on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
