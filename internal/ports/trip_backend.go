package ports

import (
	"context"
	"eld-trip-planner/internal/domain"
)

// Raw decoded trip response before route decoding and day normalization.
type TripResponse struct {
	Geometry  string
	Summary   domain.RouteSummary
	DailyLogs []RawDailyLog
	Stops     []domain.Stop
}

// One backend day as received. Day is already normalized to an integer.
type RawDailyLog struct {
	Day     int
	Entries []RawDutyEntry
}

// Status is kept as the backend string so unknown values can be reported
// per entry rather than failing the whole response.
type RawDutyEntry struct {
	StartHour float64
	EndHour   float64
	Status    string
}

// Contract for the routing backend.
type TripBackend interface {
	// Submit one trip plan request. Implementations must not retry.
	PlanTrip(ctx context.Context, req domain.TripRequest) (TripResponse, error)
	// Return persisted log sheets for a driver.
	ListLogSheets(ctx context.Context, driverName string) ([]domain.LogSheet, error)
}
