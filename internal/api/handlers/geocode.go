package handlers

import (
	"net/http"
	"strings"

	"eld-trip-planner/internal/api/dto"
	"eld-trip-planner/internal/domain"
	"eld-trip-planner/internal/ports"

	"go.uber.org/zap"
)

type GeocodeHandler struct {
	Geocoder ports.Geocoder
	Log      *zap.Logger
}

// Search answers one suggestion query. It is stateless: debouncing is the
// caller's concern. A geocoder failure yields an empty list, not an error.
func (h *GeocodeHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(h.Log, w, r, http.StatusBadRequest, "q is required")
		return
	}

	found, err := h.Geocoder.Search(r.Context(), q)
	if err != nil {
		h.Log.Warn("geocode failed", zap.String("query", q), zap.Error(err))
		found = nil
	}
	if found == nil {
		found = []domain.Suggestion{}
	}

	writeJSON(h.Log, w, r, http.StatusOK, dto.SuggestionsResponse{Query: q, Suggestions: found})
}
