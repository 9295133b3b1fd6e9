package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/cropwise/cropwise/pkg/table"
)

type sortRequest struct {
	Field string `json:"field"`
}

// handleCreateTable handles POST /api/v1/tables. The table holds the catalog
// ranked against the request environment and starts in the initial state.
func (h *Handler) handleCreateTable(w http.ResponseWriter, r *http.Request) {
	loc, env, result, ok := h.rank(w, r)
	if !ok {
		return
	}

	s := NewTableSession(uuid.NewString(), loc, env, result, h.now())
	h.sessions.Put(s)
	writeJSON(w, http.StatusCreated, s.View())
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) *TableSession {
	s := h.sessions.Get(r.PathValue("id"))
	if s == nil {
		writeError(w, http.StatusNotFound, "table not found")
	}
	return s
}

func (h *Handler) handleGetTable(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	if s == nil {
		return
	}
	writeJSON(w, http.StatusOK, s.View())
}

func (h *Handler) handleDeleteTable(w http.ResponseWriter, r *http.Request) {
	if !h.sessions.Delete(r.PathValue("id")) {
		writeError(w, http.StatusNotFound, "table not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSortTable handles POST /api/v1/tables/{id}/sort. Selecting the
// current column flips its direction; a new column starts descending.
func (h *Handler) handleSortTable(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	if s == nil {
		return
	}

	var req sortRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	field, err := table.ParseField(req.Field)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := s.ToggleSort(field)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) handleExpandRow(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	if s == nil {
		return
	}

	view, ok := s.ToggleExpansion(r.PathValue("cropID"))
	if !ok {
		writeError(w, http.StatusNotFound, "crop not in table")
		return
	}
	writeJSON(w, http.StatusOK, view)
}
