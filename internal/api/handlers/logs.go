package handlers

import (
	"net/http"

	"eld-trip-planner/internal/api/dto"
	"eld-trip-planner/internal/ports"
	"eld-trip-planner/internal/services"

	"go.uber.org/zap"
)

type LogsHandler struct {
	Backend  ports.TripBackend
	Identity ports.IdentityStore
	Log      *zap.Logger
}

// List returns a driver's persisted logs split into days, each with its timeline.
func (h *LogsHandler) List(w http.ResponseWriter, r *http.Request) {
	driver, err := driverName(r.Context(), r.URL.Query().Get("driver_name"), h.Identity)
	if err != nil {
		writeServiceError(h.Log, w, r, err)
		return
	}

	days, err := services.FetchDailyLogs(r.Context(), h.Backend, driver)
	if err != nil {
		writeServiceError(h.Log, w, r, err)
		return
	}

	writeJSON(h.Log, w, r, http.StatusOK, dto.LogsResponse{
		Driver:    driver,
		DailyLogs: dto.NewDayResponses(days),
	})
}
