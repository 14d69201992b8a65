package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"eld-trip-planner/internal/adapters/httpclient"
	"eld-trip-planner/internal/domain"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

func writeJSON(log *zap.Logger, w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn("encode failed", zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Error(err))
	}
}

func writeError(log *zap.Logger, w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(log, w, r, status, map[string]string{"error": msg})
}

// writeServiceError maps core errors onto HTTP statuses.
func writeServiceError(log *zap.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var se *httpclient.StatusError

	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(log, w, r, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(log, w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, context.Canceled):
		log.Debug("request canceled", zap.String("path", r.URL.Path))
	case errors.As(err, &se):
		log.Warn("upstream error", zap.String("path", r.URL.Path), zap.Int("upstream_status", se.Code), zap.Error(err))
		writeError(log, w, r, http.StatusBadGateway, "upstream service error")
	default:
		log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		writeError(log, w, r, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON reads exactly one JSON object into dst. On failure it has
// already written the 400 response.
func decodeJSON(log *zap.Logger, w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer body.Close()

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(log, w, r, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(log, w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(log, w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}

	return true
}
