package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"eld-trip-planner/internal/domain"
)

type latLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func toLatLon(p *domain.GeoPoint) *latLon {
	if p == nil {
		return nil
	}
	return &latLon{Lat: p.Latitude, Lon: p.Longitude}
}

// Body of POST /trip/logs/. Unresolved locations are sent as null.
type tripRequestBody struct {
	CurrentLocation   *latLon `json:"current_location"`
	PickupLocation    *latLon `json:"pickup_location"`
	DropoffLocation   *latLon `json:"dropoff_location"`
	CurrentCycleHours float64 `json:"current_cycle_hours"`
	DriverName        string  `json:"driver_name"`
}

type tripResponseBody struct {
	Geometry  string         `json:"geometry"`
	Route     routeBody      `json:"route"`
	DailyLogs []dailyLogBody `json:"dailyLogs"`
	Stops     []stopBody     `json:"stops"`
}

type routeBody struct {
	Summary  summaryBody `json:"summary"`
	Geometry string      `json:"geometry"`
}

type summaryBody struct {
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
}

type dailyLogBody struct {
	Day     flexInt     `json:"day"`
	Entries []entryBody `json:"entries"`
}

type entryBody struct {
	StartHour float64 `json:"startHour"`
	EndHour   float64 `json:"endHour"`
	Status    string  `json:"status"`
}

type stopBody struct {
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	Type          string   `json:"type"`
	DurationHours *float64 `json:"duration_hours"`
	Notes         *string  `json:"notes"`
}

func (s stopBody) toDomain() domain.Stop {
	return domain.Stop{
		Point:         domain.GeoPoint{Latitude: s.Latitude, Longitude: s.Longitude},
		Kind:          domain.StopKind(s.Type),
		DurationHours: s.DurationHours,
		Notes:         s.Notes,
	}
}

type logSheetBody struct {
	ID            int            `json:"id"`
	Driver        flexString     `json:"driver"`
	Date          string         `json:"date"`
	StartLocation string         `json:"start_location"`
	EndLocation   *string        `json:"end_location"`
	Entries       []logEntryBody `json:"entries"`
	Stops         []stopBody     `json:"stops"`
}

type logEntryBody struct {
	Day          flexInt `json:"day"`
	StartHour    float64 `json:"start_hour"`
	EndHour      float64 `json:"end_hour"`
	ActivityType string  `json:"activity_type"`
	Notes        *string `json:"notes"`
}

// flexInt accepts a JSON number or a numeric string ("2").
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}

	raw := string(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}

	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("day index %s: %w", string(b), err)
	}
	*f = flexInt(n)
	return nil
}

// flexString accepts a JSON string or number (a foreign key id).
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	*f = flexString(b)
	return nil
}
