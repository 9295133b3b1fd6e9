// Package api implements the Cropwise REST API: catalog and location reads,
// stateless recommendations and reports, and server-side comparison table
// sessions.
package api

import (
	"compress/gzip"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/cropwise/cropwise/pkg/catalog"
	"github.com/cropwise/cropwise/pkg/crop"
	"github.com/cropwise/cropwise/pkg/location"
	"github.com/cropwise/cropwise/pkg/ranking"
	"github.com/cropwise/cropwise/pkg/scoring"
)

// maxBodyBytes caps request bodies, before and after gzip decompression.
const maxBodyBytes = 1 << 20

// Handler is the top-level API handler for the Cropwise service.
type Handler struct {
	mu      sync.RWMutex
	catalog *catalog.Catalog

	ranker    *ranking.Ranker
	gazetteer *location.Gazetteer
	sessions  *SessionCache
	admin     CatalogAdmin
	now       func() time.Time
}

// NewHandler creates a new API handler. A nil ranker uses the default
// weights and a nil cache is sized from SESSION_CACHE_SIZE.
func NewHandler(cat *catalog.Catalog, ranker *ranking.Ranker, sessions *SessionCache) *Handler {
	if ranker == nil {
		ranker = ranking.NewRanker(nil)
	}
	if sessions == nil {
		sessions = NewSessionCacheFromEnv()
	}
	return &Handler{
		catalog:   cat,
		ranker:    ranker,
		gazetteer: location.India(),
		sessions:  sessions,
		now:       time.Now,
	}
}

// RegisterRoutes registers all API routes on the given ServeMux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.handleHealth)

	// Reference data
	mux.HandleFunc("GET /api/v1/crops", h.handleListCrops)
	mux.HandleFunc("GET /api/v1/crops/{id}", h.handleGetCrop)
	mux.HandleFunc("GET /api/v1/locations", h.handleLocations)

	// Recommendations
	mux.HandleFunc("POST /api/v1/recommendations", h.handleRecommend)
	mux.HandleFunc("POST /api/v1/reports", h.handleReport)

	// Comparison table sessions
	mux.HandleFunc("POST /api/v1/tables", h.handleCreateTable)
	mux.HandleFunc("GET /api/v1/tables/{id}", h.handleGetTable)
	mux.HandleFunc("DELETE /api/v1/tables/{id}", h.handleDeleteTable)
	mux.HandleFunc("POST /api/v1/tables/{id}/sort", h.handleSortTable)
	mux.HandleFunc("POST /api/v1/tables/{id}/expand/{cropID}", h.handleExpandRow)

	// Catalog editing, only with a writable store
	if h.admin != nil {
		mux.HandleFunc("PUT /api/v1/crops/{id}", h.handlePutCrop)
		mux.HandleFunc("DELETE /api/v1/crops/{id}", h.handleDeleteCrop)
		mux.HandleFunc("POST /api/v1/catalog/reload", h.handleReloadCatalog)
	}
}

// Catalog returns the catalog currently served.
func (h *Handler) Catalog() *catalog.Catalog {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.catalog
}

func (h *Handler) setCatalog(cat *catalog.Catalog) {
	h.mu.Lock()
	h.catalog = cat
	h.mu.Unlock()
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"crops":  h.Catalog().Len(),
	})
}

// decodeBody reads an optional JSON body, gzip-compressed or not, into v.
// An empty body leaves v untouched.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	var body io.Reader = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if r.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(body)
		if err != nil {
			return err
		}
		defer gz.Close()
		body = io.LimitReader(gz, maxBodyBytes)
	}
	err := json.NewDecoder(body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// statusFor maps engine errors to HTTP status codes.
func statusFor(err error) int {
	var oor *crop.InputOutOfRangeError
	var de *scoring.DomainError
	switch {
	case errors.As(err, &oor):
		return http.StatusBadRequest
	case catalog.IsNotFound(err):
		return http.StatusNotFound
	case errors.As(err, &de):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
