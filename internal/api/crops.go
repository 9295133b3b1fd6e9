package api

import (
	"context"
	"log"
	"net/http"

	"github.com/cropwise/cropwise/internal/catalogstore"
	"github.com/cropwise/cropwise/pkg/catalog"
	"github.com/cropwise/cropwise/pkg/crop"
	"github.com/cropwise/cropwise/pkg/location"
)

// CatalogAdmin is a writable catalog backend, such as
// *catalogstore.PostgresStore.
type CatalogAdmin interface {
	catalogstore.Source
	GetProfile(ctx context.Context, id string) (*catalogstore.StoredProfile, error)
	UpsertProfile(ctx context.Context, p crop.CropProfile, position int) error
	DeleteProfile(ctx context.Context, id string) error
}

// EnableCatalogAdmin turns on the catalog editing routes. Call it before
// RegisterRoutes.
func (h *Handler) EnableCatalogAdmin(admin CatalogAdmin) {
	h.admin = admin
}

func (h *Handler) handleListCrops(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Catalog().All())
}

func (h *Handler) handleGetCrop(w http.ResponseWriter, r *http.Request) {
	p, err := h.Catalog().ByID(r.PathValue("id"))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) handleLocations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusOK, h.gazetteer.States())
		return
	}
	states := h.gazetteer.Search(q)
	if states == nil {
		states = []location.State{}
	}
	writeJSON(w, http.StatusOK, states)
}

func (h *Handler) handlePutCrop(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var p crop.CropProfile
	if err := decodeBody(w, r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if p.ID == "" {
		p.ID = id
	}
	if p.ID != id {
		writeError(w, http.StatusBadRequest, "profile id does not match path")
		return
	}
	if err := catalog.Validate([]crop.CropProfile{p}); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Existing profiles keep their stored position; new ones go last.
	position := h.Catalog().Len()
	existing, err := h.admin.GetProfile(r.Context(), id)
	switch {
	case err == nil:
		position = existing.Position
	case !catalog.IsNotFound(err):
		writeError(w, http.StatusInternalServerError, "failed to look up crop: "+err.Error())
		return
	}

	if err := h.admin.UpsertProfile(r.Context(), p, position); err != nil {
		writeError(w, statusFor(err), "failed to save crop: "+err.Error())
		return
	}
	if err := h.reload(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) handleDeleteCrop(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.admin.DeleteProfile(r.Context(), id); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	if err := h.reload(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) handleReloadCatalog(w http.ResponseWriter, r *http.Request) {
	if err := h.reload(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "reloaded", "crops": h.Catalog().Len()})
}

// reload replaces the served catalog with the admin store's contents.
// Existing table sessions keep the rows they were created with.
func (h *Handler) reload(ctx context.Context) error {
	cat, err := catalogstore.LoadCatalog(ctx, h.admin)
	if err != nil {
		return err
	}
	h.setCatalog(cat)
	log.Printf("catalog reloaded: %d crops", cat.Len())
	return nil
}
