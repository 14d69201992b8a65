package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"eld-trip-planner/internal/adapters/httpclient"
	"eld-trip-planner/internal/domain"
	"eld-trip-planner/internal/ports"
	"eld-trip-planner/internal/platform/obs"

	"go.uber.org/zap"
)

const listMaxAttempts = 4

// Client talks to the routing backend that plans trips and persists log sheets.
type Client struct {
	baseURL string
	http    *httpclient.Client
	log     *zap.Logger
}

func NewClient(baseURL string, hc *httpclient.Client, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
		log:     log,
	}
}

// PlanTrip submits one trip request. Submissions are not idempotent on the
// backend (each one persists a log sheet), so there is exactly one attempt.
func (c *Client) PlanTrip(ctx context.Context, req domain.TripRequest) (_ ports.TripResponse, err error) {
	defer obs.Time(ctx, c.log, "backend.PlanTrip")(&err)

	body, err := json.Marshal(tripRequestBody{
		CurrentLocation:   toLatLon(req.Current),
		PickupLocation:    toLatLon(req.Pickup),
		DropoffLocation:   toLatLon(req.Dropoff),
		CurrentCycleHours: req.CycleHoursUsed,
		DriverName:        req.DriverName,
	})
	if err != nil {
		return ports.TripResponse{}, fmt.Errorf("plan trip: encode request: %w", err)
	}

	httpReq, err := c.http.NewRequest(ctx, http.MethodPost, c.baseURL+"/trip/logs/", bytes.NewReader(body))
	if err != nil {
		return ports.TripResponse{}, fmt.Errorf("plan trip: %w", err)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return ports.TripResponse{}, fmt.Errorf("plan trip: %w", err)
	}
	defer resp.Body.Close()

	var out tripResponseBody
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return ports.TripResponse{}, fmt.Errorf("plan trip: decode response: %w", err)
	}

	return out.toPort(), nil
}

func (b tripResponseBody) toPort() ports.TripResponse {
	geometry := b.Geometry
	if geometry == "" {
		geometry = b.Route.Geometry
	}

	logs := make([]ports.RawDailyLog, 0, len(b.DailyLogs))
	for _, d := range b.DailyLogs {
		entries := make([]ports.RawDutyEntry, 0, len(d.Entries))
		for _, e := range d.Entries {
			entries = append(entries, ports.RawDutyEntry{
				StartHour: e.StartHour,
				EndHour:   e.EndHour,
				Status:    e.Status,
			})
		}
		logs = append(logs, ports.RawDailyLog{Day: int(d.Day), Entries: entries})
	}

	stops := make([]domain.Stop, 0, len(b.Stops))
	for _, s := range b.Stops {
		stops = append(stops, s.toDomain())
	}

	return ports.TripResponse{
		Geometry: geometry,
		Summary: domain.RouteSummary{
			DistanceMeters:  b.Route.Summary.Distance,
			DurationSeconds: b.Route.Summary.Duration,
		},
		DailyLogs: logs,
		Stops:     stops,
	}
}

// ListLogSheets returns the persisted log sheets for driverName.
// Reads are idempotent and retried on transient failures.
func (c *Client) ListLogSheets(ctx context.Context, driverName string) (_ []domain.LogSheet, err error) {
	defer obs.Time(ctx, c.log, "backend.ListLogSheets")(&err)

	q := url.Values{}
	q.Set("driver_name", driverName)
	endpoint := c.baseURL + "/logsheets/by-driver/?" + q.Encode()

	resp, err := c.http.DoWithRetry(ctx, listMaxAttempts, func() (*http.Request, error) {
		return c.http.NewRequest(ctx, http.MethodGet, endpoint, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("list log sheets driver=%q: %w", driverName, err)
	}
	defer resp.Body.Close()

	var sheets []logSheetBody
	if err := json.NewDecoder(resp.Body).Decode(&sheets); err != nil {
		return nil, fmt.Errorf("list log sheets: decode response: %w", err)
	}

	out := make([]domain.LogSheet, 0, len(sheets))
	for _, s := range sheets {
		sheet, err := s.toDomain()
		if err != nil {
			return nil, fmt.Errorf("list log sheets: sheet %d: %w", s.ID, err)
		}
		out = append(out, sheet)
	}

	return out, nil
}

func (s logSheetBody) toDomain() (domain.LogSheet, error) {
	sheet := domain.LogSheet{
		ID:            s.ID,
		Driver:        string(s.Driver),
		Date:          s.Date,
		StartLocation: s.StartLocation,
		Entries:       make([]domain.LogEntry, 0, len(s.Entries)),
		Stops:         make([]domain.Stop, 0, len(s.Stops)),
	}
	if s.EndLocation != nil {
		sheet.EndLocation = *s.EndLocation
	}

	for _, e := range s.Entries {
		status, err := domain.ParseDutyStatus(e.ActivityType)
		if err != nil {
			return domain.LogSheet{}, err
		}
		entry := domain.LogEntry{
			Day: int(e.Day),
			Segment: domain.DutySegment{
				StartHour: e.StartHour,
				EndHour:   e.EndHour,
				Status:    status,
			},
		}
		if e.Notes != nil {
			entry.Notes = *e.Notes
		}
		sheet.Entries = append(sheet.Entries, entry)
	}

	for _, st := range s.Stops {
		sheet.Stops = append(sheet.Stops, st.toDomain())
	}

	return sheet, nil
}
