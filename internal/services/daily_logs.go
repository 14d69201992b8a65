package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"eld-trip-planner/internal/domain"
	"eld-trip-planner/internal/ports"
)

// FetchDailyLogs reads a driver's persisted log sheets and splits them into days.
func FetchDailyLogs(ctx context.Context, backend ports.TripBackend, driverName string) ([]domain.DailyLog, error) {
	driverName = strings.TrimSpace(driverName)
	if driverName == "" {
		return nil, fmt.Errorf("fetch daily logs: %w: driver name is required", domain.ErrValidation)
	}

	sheets, err := backend.ListLogSheets(ctx, driverName)
	if err != nil {
		return nil, fmt.Errorf("fetch daily logs: %w", err)
	}

	return DailyLogsFromSheets(sheets), nil
}

// DailyLogsFromSheets splits persisted log sheets into one DailyLog per day
// index, in sheet order then day order, with segments ordered by start hour.
// When the sheet date parses as YYYY-MM-DD each day gets its calendar date.
// Every day of a sheet carries that sheet's stops.
func DailyLogsFromSheets(sheets []domain.LogSheet) []domain.DailyLog {
	out := make([]domain.DailyLog, 0, len(sheets))

	for _, sheet := range sheets {
		byDay := make(map[int][]domain.DutySegment)
		for _, e := range sheet.Entries {
			byDay[e.Day] = append(byDay[e.Day], e.Segment)
		}

		days := make([]int, 0, len(byDay))
		for d := range byDay {
			days = append(days, d)
		}
		slices.Sort(days)

		start, dateErr := time.Parse(time.DateOnly, sheet.Date)

		for _, d := range days {
			segs := byDay[d]
			slices.SortStableFunc(segs, func(a, b domain.DutySegment) int {
				switch {
				case a.StartHour < b.StartHour:
					return -1
				case a.StartHour > b.StartHour:
					return 1
				}
				return 0
			})

			day := domain.DailyLog{
				DayIndex: d,
				SheetID:  sheet.ID,
				Date:     sheet.Date,
				Segments: segs,
				Stops:    sheet.Stops,
			}
			if dateErr == nil && d >= 1 {
				day.Date = start.AddDate(0, 0, d-1).Format(time.DateOnly)
			}
			out = append(out, day)
		}
	}

	return out
}

type IssueKind string

const (
	IssueInvalid IssueKind = "invalid"
	IssueGap     IssueKind = "gap"
	IssueOverlap IssueKind = "overlap"
)

// ContiguityIssue describes one structural problem in a day of segments.
type ContiguityIssue struct {
	Kind      IssueKind `json:"kind"`
	StartHour float64   `json:"start_hour"`
	EndHour   float64   `json:"end_hour"`
}

func (i ContiguityIssue) String() string {
	return fmt.Sprintf("%s [%g,%g]", i.Kind, i.StartHour, i.EndHour)
}

// CheckContiguity reports segments that do not tile [0,24] exactly:
// malformed segments, uncovered spans (including before the first and after
// the last segment) and overlaps. It never changes the data; callers use it
// to warn, not to reject.
func CheckContiguity(segments []domain.DutySegment) []ContiguityIssue {
	var issues []ContiguityIssue
	if len(segments) == 0 {
		return issues
	}

	cursor := 0.0
	for _, s := range segments {
		if err := s.Validate(); err != nil {
			issues = append(issues, ContiguityIssue{Kind: IssueInvalid, StartHour: s.StartHour, EndHour: s.EndHour})
			continue
		}
		switch {
		case s.StartHour > cursor:
			issues = append(issues, ContiguityIssue{Kind: IssueGap, StartHour: cursor, EndHour: s.StartHour})
		case s.StartHour < cursor:
			issues = append(issues, ContiguityIssue{Kind: IssueOverlap, StartHour: s.StartHour, EndHour: cursor})
		}
		cursor = max(cursor, s.EndHour)
	}

	if cursor < 24 {
		issues = append(issues, ContiguityIssue{Kind: IssueGap, StartHour: cursor, EndHour: 24})
	}

	return issues
}
