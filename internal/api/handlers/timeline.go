package handlers

import (
	"fmt"
	"net/http"

	"eld-trip-planner/internal/api/dto"
	"eld-trip-planner/internal/domain"
	"eld-trip-planner/internal/services"

	"go.uber.org/zap"
)

type TimelineHandler struct {
	Log *zap.Logger
}

// Build renders segments as timeline JSON, or as a log sheet SVG with ?format=svg.
func (h *TimelineHandler) Build(w http.ResponseWriter, r *http.Request) {
	var req dto.TimelineRequest
	if !decodeJSON(h.Log, w, r, &req) {
		return
	}

	if req.Width < 0 || req.Height < 0 {
		writeServiceError(h.Log, w, r, fmt.Errorf("%w: width and height must not be negative", domain.ErrValidation))
		return
	}
	for i, s := range req.Segments {
		if err := s.Validate(); err != nil {
			writeServiceError(h.Log, w, r, fmt.Errorf("segment %d: %w", i, err))
			return
		}
	}

	tl := services.BuildTimeline(req.Segments, services.ChartDimensions{Width: req.Width, Height: req.Height})

	switch r.URL.Query().Get("format") {
	case "", "json":
		writeJSON(h.Log, w, r, http.StatusOK, struct {
			services.Timeline
			D      string                     `json:"d"`
			Issues []services.ContiguityIssue `json:"issues,omitempty"`
		}{tl, tl.D(), services.CheckContiguity(req.Segments)})
	case "svg":
		w.Header().Set("Content-Type", "image/svg+xml")
		if err := services.RenderLogSheetSVG(w, req.Title, tl, services.DefaultSheetOptions); err != nil {
			h.Log.Warn("render log sheet failed", zap.Error(err))
		}
	default:
		writeError(h.Log, w, r, http.StatusBadRequest, "format must be json or svg")
	}
}
