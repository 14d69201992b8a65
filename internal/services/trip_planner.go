package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"eld-trip-planner/internal/domain"
	"eld-trip-planner/internal/ports"
	"eld-trip-planner/internal/platform/obs"

	"go.uber.org/zap"
)

const MaxCycleHours = 70.0

// TripForm is the user-facing input for one submission.
type TripForm struct {
	Current        domain.LocationField `json:"current"`
	Pickup         domain.LocationField `json:"pickup"`
	Dropoff        domain.LocationField `json:"dropoff"`
	CycleHoursUsed float64              `json:"cycle_hours_used"`
}

// BuildTripRequest uses each field's resolved point, or nil when the field
// was never resolved. Only the cycle hours are validated here; rejecting
// incomplete trips is the backend's job.
func BuildTripRequest(form TripForm, driverName string) (domain.TripRequest, error) {
	h := form.CycleHoursUsed
	if !(h >= 0 && h <= MaxCycleHours) {
		return domain.TripRequest{}, fmt.Errorf("%w: cycle hours used %g outside [0,%g]", domain.ErrValidation, h, MaxCycleHours)
	}

	return domain.TripRequest{
		Current:        copyPoint(form.Current.Resolved),
		Pickup:         copyPoint(form.Pickup.Resolved),
		Dropoff:        copyPoint(form.Dropoff.Resolved),
		CycleHoursUsed: h,
		DriverName:     strings.TrimSpace(driverName),
	}, nil
}

func copyPoint(p *domain.GeoPoint) *domain.GeoPoint {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

type PlannerOption func(*TripPlanner)

func WithPlannerLogger(l *zap.Logger) PlannerOption {
	return func(p *TripPlanner) {
		if l != nil {
			p.log = l
		}
	}
}

// WithLatestOnly keeps only the result of the most recently started
// submission. Without it the last submission to complete wins.
func WithLatestOnly() PlannerOption {
	return func(p *TripPlanner) { p.latestOnly = true }
}

// TripPlanner submits trips and holds the result currently on display.
type TripPlanner struct {
	backend    ports.TripBackend
	log        *zap.Logger
	latestOnly bool

	mu     sync.Mutex
	issued uint64
	latest *SubmittedTrip
}

// SubmittedTrip pairs a stored result with the request that produced it.
type SubmittedTrip struct {
	Request domain.TripRequest
	Result  domain.TripResult
}

func NewTripPlanner(backend ports.TripBackend, opts ...PlannerOption) *TripPlanner {
	p := &TripPlanner{backend: backend, log: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Submit sends one request, with no retry. On success the stored result is
// replaced as a whole; on failure it is left as it was.
func (p *TripPlanner) Submit(ctx context.Context, form TripForm, driverName string) (_ domain.TripResult, err error) {
	defer obs.Time(ctx, p.log, "trip.Submit")(&err)

	req, err := BuildTripRequest(form, driverName)
	if err != nil {
		return domain.TripResult{}, fmt.Errorf("submit trip: %w", err)
	}

	p.mu.Lock()
	p.issued++
	token := p.issued
	p.mu.Unlock()

	resp, err := p.backend.PlanTrip(ctx, req)
	if err != nil {
		return domain.TripResult{}, fmt.Errorf("submit trip: %w", err)
	}

	result := BuildTripResult(resp, p.log)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.latestOnly && token != p.issued {
		p.log.Debug("discard superseded trip result", zap.Uint64("token", token), zap.Uint64("latest", p.issued))
		return result, nil
	}
	p.latest = &SubmittedTrip{Request: req, Result: result}

	return result, nil
}

// Latest returns the result on display, if any.
func (p *TripPlanner) Latest() (domain.TripResult, bool) {
	trip, ok := p.LatestTrip()
	return trip.Result, ok
}

func (p *TripPlanner) LatestTrip() (SubmittedTrip, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.latest == nil {
		return SubmittedTrip{}, false
	}
	return *p.latest, true
}

// BuildTripResult decodes the route geometry and converts backend days into
// DailyLogs. Malformed geometry yields an empty route; entries with an
// unknown status are dropped and logged.
func BuildTripResult(resp ports.TripResponse, log *zap.Logger) domain.TripResult {
	if log == nil {
		log = zap.NewNop()
	}

	logs := make([]domain.DailyLog, 0, len(resp.DailyLogs))
	for _, d := range resp.DailyLogs {
		day := domain.DailyLog{DayIndex: d.Day, Segments: make([]domain.DutySegment, 0, len(d.Entries))}
		for _, e := range d.Entries {
			status, err := domain.ParseDutyStatus(e.Status)
			if err != nil {
				log.Warn("drop duty entry", zap.Int("day", d.Day), zap.Error(err))
				continue
			}
			day.Segments = append(day.Segments, domain.DutySegment{
				StartHour: e.StartHour,
				EndHour:   e.EndHour,
				Status:    status,
			})
		}
		logs = append(logs, day)
	}

	stops := resp.Stops
	if stops == nil {
		stops = []domain.Stop{}
	}

	return domain.TripResult{
		Route:     DecodeRoute(resp.Geometry),
		Summary:   resp.Summary,
		DailyLogs: logs,
		Stops:     stops,
	}
}
