package domain

// StopKind classifies a planned stop on the route.
type StopKind string

const (
	StopFuel    StopKind = "fuel"
	StopRest    StopKind = "rest"
	StopPickup  StopKind = "pickup"
	StopDropoff StopKind = "dropoff"
)

// Represents a planned or recorded stop along the route.
type Stop struct {
	Point         GeoPoint `json:"point"`
	Kind          StopKind `json:"kind"`
	DurationHours *float64 `json:"duration_hours,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
}

// One calendar day of duty segments.
// DayIndex is 1-based relative to the trip start. SheetID is set only for
// days read back from persisted log sheets.
type DailyLog struct {
	DayIndex int           `json:"day"`
	SheetID  int           `json:"sheet_id,omitempty"`
	Date     string        `json:"date,omitempty"`
	Segments []DutySegment `json:"segments"`
	Stops    []Stop        `json:"stops,omitempty"`
}

// Inputs for one trip submission. Built once per submission and never mutated.
type TripRequest struct {
	Current        *GeoPoint
	Pickup         *GeoPoint
	Dropoff        *GeoPoint
	CycleHoursUsed float64
	DriverName     string
}

type RouteSummary struct {
	DistanceMeters  float64 `json:"distance_meters"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// Represents the complete outcome of a successful submission.
// A new TripResult always replaces the previous one wholesale.
type TripResult struct {
	Route     []GeoPoint   `json:"route"`
	Summary   RouteSummary `json:"summary"`
	DailyLogs []DailyLog   `json:"daily_logs"`
	Stops     []Stop       `json:"stops,omitempty"`
}

// A persisted log sheet as returned by the log retrieval endpoint.
// Entries span one or more days; segmentation into DailyLogs happens client side.
type LogSheet struct {
	ID            int        `json:"id"`
	Driver        string     `json:"driver"`
	Date          string     `json:"date"`
	StartLocation string     `json:"start_location"`
	EndLocation   string     `json:"end_location,omitempty"`
	Entries       []LogEntry `json:"entries"`
	Stops         []Stop     `json:"stops"`
}

// A persisted duty entry with its day index.
type LogEntry struct {
	Day     int
	Segment DutySegment
	Notes   string
}
