package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"eld-trip-planner/internal/api/dto"
	"eld-trip-planner/internal/domain"
	"eld-trip-planner/internal/ports"
	"eld-trip-planner/internal/services"

	"go.uber.org/zap"
)

type TripHandler struct {
	Planner  *services.TripPlanner
	Identity ports.IdentityStore
	Log      *zap.Logger
}

// Submit runs one trip submission and returns the rendered result.
func (h *TripHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req dto.TripRequest
	if !decodeJSON(h.Log, w, r, &req) {
		return
	}

	if req.CycleHoursUsed == nil {
		writeServiceError(h.Log, w, r, fmt.Errorf("%w: cycle_hours_used is required", domain.ErrValidation))
		return
	}

	driver, err := driverName(r.Context(), req.DriverName, h.Identity)
	if err != nil {
		writeServiceError(h.Log, w, r, err)
		return
	}

	form := services.TripForm{
		Current:        req.Current,
		Pickup:         req.Pickup,
		Dropoff:        req.Dropoff,
		CycleHoursUsed: *req.CycleHoursUsed,
	}

	result, err := h.Planner.Submit(r.Context(), form, driver)
	if err != nil {
		writeServiceError(h.Log, w, r, err)
		return
	}

	// Errors were ruled out by Submit.
	tripReq, _ := services.BuildTripRequest(form, driver)
	writeJSON(h.Log, w, r, http.StatusOK, dto.NewTripResponse(tripReq, result))
}

// Latest returns the trip currently on display.
func (h *TripHandler) Latest(w http.ResponseWriter, r *http.Request) {
	trip, ok := h.Planner.LatestTrip()
	if !ok {
		writeServiceError(h.Log, w, r, fmt.Errorf("latest trip: %w", domain.ErrNotFound))
		return
	}

	writeJSON(h.Log, w, r, http.StatusOK, dto.NewTripResponse(trip.Request, trip.Result))
}

// driverName prefers the explicit name and falls back to the identity store.
func driverName(ctx context.Context, explicit string, store ports.IdentityStore) (string, error) {
	if name := strings.TrimSpace(explicit); name != "" {
		return name, nil
	}
	if store == nil {
		return "", nil
	}

	name, _, err := store.DriverName(ctx)
	if err != nil {
		return "", fmt.Errorf("read driver name: %w", err)
	}
	return name, nil
}
