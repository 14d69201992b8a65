package api

import (
	"net/http"

	"eld-trip-planner/internal/api/handlers"
	"eld-trip-planner/internal/ports"
	"eld-trip-planner/internal/services"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Deps are the collaborators the HTTP surface needs. Identity may be nil,
// in which case driver endpoints are not mounted and trips must carry a
// driver_name.
type Deps struct {
	Geocoder    ports.Geocoder
	Backend     ports.TripBackend
	Planner     *services.TripPlanner
	Identity    ports.IdentityStore
	Log         *zap.Logger
	CORSOrigins []string
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// Handlers stay unaware of concrete adapters.
func NewRouter(d Deps) http.Handler {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(chimiddleware.Recoverer)
	if len(d.CORSOrigins) > 0 {
		r.Use(corsHandler(d.CORSOrigins))
	}

	geocodeHandler := &handlers.GeocodeHandler{Geocoder: d.Geocoder, Log: log}
	tripHandler := &handlers.TripHandler{Planner: d.Planner, Identity: d.Identity, Log: log}
	logsHandler := &handlers.LogsHandler{Backend: d.Backend, Identity: d.Identity, Log: log}
	timelineHandler := &handlers.TimelineHandler{Log: log}

	r.Get("/health", handlers.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/geocode", geocodeHandler.Search)
		r.Post("/trips", tripHandler.Submit)
		r.Get("/trips/latest", tripHandler.Latest)
		r.Get("/logs", logsHandler.List)
		r.Post("/timeline", timelineHandler.Build)

		if d.Identity != nil {
			driverHandler := &handlers.DriverHandler{Identity: d.Identity, Log: log}
			r.Get("/driver", driverHandler.Get)
			r.Put("/driver", driverHandler.Set)
			r.Delete("/driver", driverHandler.Clear)
			r.Post("/driver/guest", driverHandler.Guest)
		}
	})

	return r
}
