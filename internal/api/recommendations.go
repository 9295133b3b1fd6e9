package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/cropwise/cropwise/pkg/crop"
	"github.com/cropwise/cropwise/pkg/ranking"
	"github.com/cropwise/cropwise/pkg/report"
	"github.com/cropwise/cropwise/pkg/surface"
)

// recommendRequest is the JSON body shared by recommendations, reports and
// table creation. Environment fields left out keep their defaults.
type recommendRequest struct {
	State       string             `json:"state,omitempty"`
	Location    *crop.LocationData `json:"location,omitempty"`
	Environment json.RawMessage    `json:"environment,omitempty"`
}

// resolve turns a request into a validated location and environment.
func (h *Handler) resolve(req recommendRequest) (crop.LocationData, crop.EnvironmentalData, error) {
	var loc crop.LocationData
	switch {
	case req.State != "":
		l, err := h.gazetteer.Lookup(req.State)
		if err != nil {
			return loc, crop.EnvironmentalData{}, &crop.InputOutOfRangeError{Field: "state", Text: req.State}
		}
		loc = l
	case req.Location != nil:
		if err := req.Location.Coordinates.Validate(); err != nil {
			return loc, crop.EnvironmentalData{}, err
		}
		loc = *req.Location
	}

	env := crop.DefaultEnvironment()
	if len(req.Environment) > 0 && string(req.Environment) != "null" {
		if err := json.Unmarshal(req.Environment, &env); err != nil {
			return loc, env, fmt.Errorf("invalid environment: %w", err)
		}
	}
	if err := env.Validate(); err != nil {
		return loc, env, err
	}
	return loc, env, nil
}

// rank resolves the request and ranks the current catalog. On failure it
// writes the error response and returns ok=false.
func (h *Handler) rank(w http.ResponseWriter, r *http.Request) (crop.LocationData, crop.EnvironmentalData, *ranking.Result, bool) {
	var req recommendRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return crop.LocationData{}, crop.EnvironmentalData{}, nil, false
	}

	loc, env, err := h.resolve(req)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return loc, env, nil, false
	}

	result, err := h.ranker.Rank(h.Catalog().All(), env)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return loc, env, nil, false
	}
	for _, s := range result.Skipped {
		log.Printf("ranking: skipped crop %s: %s", s.ProfileID, s.Reason)
	}
	return loc, env, result, true
}

// handleRecommend handles POST /api/v1/recommendations and returns the full
// report as JSON.
func (h *Handler) handleRecommend(w http.ResponseWriter, r *http.Request) {
	loc, env, result, ok := h.rank(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, report.Build(loc, env, result, nil, h.now()))
}

// handleReport handles POST /api/v1/reports?format=... and returns the
// rendered report as a download.
func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "json"
	}
	renderer, err := surface.ForFormat(format)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	loc, env, result, ok := h.rank(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := renderer.Render(&buf, report.Build(loc, env, result, nil, h.now())); err != nil {
		writeError(w, http.StatusInternalServerError, "render report: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", surface.ContentType(format))
	if ext := downloadExt(format); ext != "" {
		w.Header().Set("Content-Disposition", `attachment; filename="crop-recommendations.`+ext+`"`)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func downloadExt(format string) string {
	switch format {
	case "markdown", "md":
		return "md"
	case "html":
		return "html"
	case "xlsx", "excel":
		return "xlsx"
	case "text", "terminal":
		return "txt"
	default:
		return ""
	}
}
