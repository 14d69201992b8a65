package dto

import (
	"eld-trip-planner/internal/domain"
	"eld-trip-planner/internal/services"

	"github.com/paulmach/orb/geojson"
)

// Body of POST /api/trips. CycleHoursUsed is required.
type TripRequest struct {
	Current        domain.LocationField `json:"current"`
	Pickup         domain.LocationField `json:"pickup"`
	Dropoff        domain.LocationField `json:"dropoff"`
	CycleHoursUsed *float64             `json:"cycle_hours_used"`
	DriverName     string               `json:"driver_name,omitempty"`
}

type DayResponse struct {
	domain.DailyLog
	Timeline services.Timeline          `json:"timeline"`
	Issues   []services.ContiguityIssue `json:"issues,omitempty"`
}

type MapResponse struct {
	Center     domain.GeoPoint            `json:"center"`
	Zoom       int                        `json:"zoom"`
	FitBounds  *[2][2]float64             `json:"fit_bounds,omitempty"`
	FitPadding int                        `json:"fit_padding"`
	Features   *geojson.FeatureCollection `json:"features"`
}

type TripResponse struct {
	Route     []domain.GeoPoint   `json:"route"`
	Summary   domain.RouteSummary `json:"summary"`
	DailyLogs []DayResponse       `json:"daily_logs"`
	Stops     []domain.Stop       `json:"stops"`
	Map       MapResponse         `json:"map"`
}

type LogsResponse struct {
	Driver    string        `json:"driver"`
	DailyLogs []DayResponse `json:"daily_logs"`
}

// Body of POST /api/timeline. Zero dimensions mean the default 720x200.
type TimelineRequest struct {
	Segments []domain.DutySegment `json:"segments"`
	Width    float64              `json:"width,omitempty"`
	Height   float64              `json:"height,omitempty"`
	Title    string               `json:"title,omitempty"`
}

type DriverRequest struct {
	Name string `json:"name"`
}

type DriverResponse struct {
	Name    string `json:"name,omitempty"`
	Present bool   `json:"present"`
}

type SuggestionsResponse struct {
	Query       string              `json:"query"`
	Suggestions []domain.Suggestion `json:"suggestions"`
}

// NewDayResponse attaches the drawable timeline and any contiguity warnings.
func NewDayResponse(day domain.DailyLog) DayResponse {
	if day.Segments == nil {
		day.Segments = []domain.DutySegment{}
	}
	return DayResponse{
		DailyLog: day,
		Timeline: services.BuildTimeline(day.Segments, services.DefaultChartDimensions),
		Issues:   services.CheckContiguity(day.Segments),
	}
}

func NewDayResponses(days []domain.DailyLog) []DayResponse {
	out := make([]DayResponse, 0, len(days))
	for _, d := range days {
		out = append(out, NewDayResponse(d))
	}
	return out
}

func NewMapResponse(mv services.MapView) MapResponse {
	res := MapResponse{
		Center:     mv.Center,
		Zoom:       mv.Zoom,
		FitPadding: mv.FitPadding,
		Features:   mv.FeatureCollection(),
	}
	if corners, ok := mv.FitBounds(); ok {
		res.FitBounds = &corners
	}
	return res
}

// NewTripResponse renders a TripResult for the presentation layer. The map
// view is projected from the request's resolved points and the decoded route.
func NewTripResponse(req domain.TripRequest, res domain.TripResult) TripResponse {
	route := res.Route
	if route == nil {
		route = []domain.GeoPoint{}
	}
	stops := res.Stops
	if stops == nil {
		stops = []domain.Stop{}
	}
	return TripResponse{
		Route:     route,
		Summary:   res.Summary,
		DailyLogs: NewDayResponses(res.DailyLogs),
		Stops:     stops,
		Map:       NewMapResponse(services.ProjectMap(req.Current, req.Pickup, req.Dropoff, route)),
	}
}
