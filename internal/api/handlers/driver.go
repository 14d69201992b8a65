package handlers

import (
	"net/http"

	"eld-trip-planner/internal/api/dto"
	"eld-trip-planner/internal/ports"
	"eld-trip-planner/internal/services"

	"go.uber.org/zap"
)

// DriverHandler exposes the client-local driver identity. Presence of a
// name tells the front end whether to prompt for one.
type DriverHandler struct {
	Identity ports.IdentityStore
	Log      *zap.Logger
}

func (h *DriverHandler) Get(w http.ResponseWriter, r *http.Request) {
	name, ok, err := h.Identity.DriverName(r.Context())
	if err != nil {
		writeServiceError(h.Log, w, r, err)
		return
	}
	writeJSON(h.Log, w, r, http.StatusOK, dto.DriverResponse{Name: name, Present: ok})
}

func (h *DriverHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req dto.DriverRequest
	if !decodeJSON(h.Log, w, r, &req) {
		return
	}
	h.store(w, r, req.Name)
}

// Guest stores a generated guest name.
func (h *DriverHandler) Guest(w http.ResponseWriter, r *http.Request) {
	h.store(w, r, services.GuestName(nil))
}

func (h *DriverHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.Identity.ClearDriverName(r.Context()); err != nil {
		writeServiceError(h.Log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *DriverHandler) store(w http.ResponseWriter, r *http.Request, name string) {
	if err := h.Identity.SetDriverName(r.Context(), name); err != nil {
		writeServiceError(h.Log, w, r, err)
		return
	}

	stored, ok, err := h.Identity.DriverName(r.Context())
	if err != nil {
		writeServiceError(h.Log, w, r, err)
		return
	}
	writeJSON(h.Log, w, r, http.StatusOK, dto.DriverResponse{Name: stored, Present: ok})
}
