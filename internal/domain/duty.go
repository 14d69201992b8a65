package domain

import (
	"fmt"
	"strings"
)

// DutyStatus is one of the four mutually exclusive ELD duty states.
// The numeric value is the lane index on a log sheet grid.
type DutyStatus int

const (
	OffDuty DutyStatus = iota
	SleeperBerth
	Driving
	OnDuty
)

// DutyStatuses lists every status in lane order.
var DutyStatuses = []DutyStatus{OffDuty, SleeperBerth, Driving, OnDuty}

func (s DutyStatus) String() string {
	switch s {
	case OffDuty:
		return "off"
	case SleeperBerth:
		return "sleeper"
	case Driving:
		return "driving"
	case OnDuty:
		return "onduty"
	default:
		return fmt.Sprintf("DutyStatus(%d)", int(s))
	}
}

// Label is the row title printed on a daily log sheet.
func (s DutyStatus) Label() string {
	switch s {
	case OffDuty:
		return "Off Duty"
	case SleeperBerth:
		return "Sleeper Berth"
	case Driving:
		return "Driving"
	case OnDuty:
		return "On Duty"
	default:
		return s.String()
	}
}

// Lane returns the fixed grid row for the status, top to bottom.
func (s DutyStatus) Lane() int { return int(s) }

// ParseDutyStatus accepts both the trip-planning spelling ("off", "onduty")
// and the persisted log entry activity types ("off_duty", "on_duty", "rest").
func ParseDutyStatus(raw string) (DutyStatus, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "off", "off_duty", "offduty", "rest":
		return OffDuty, nil
	case "sleeper", "sleeper_berth", "sleeperberth":
		return SleeperBerth, nil
	case "driving":
		return Driving, nil
	case "onduty", "on_duty":
		return OnDuty, nil
	default:
		return 0, fmt.Errorf("%w: unknown duty status %q", ErrValidation, raw)
	}
}

func (s DutyStatus) MarshalText() ([]byte, error) {
	if s < OffDuty || s > OnDuty {
		return nil, fmt.Errorf("marshal duty status: %d out of range", int(s))
	}
	return []byte(s.String()), nil
}

func (s *DutyStatus) UnmarshalText(b []byte) error {
	parsed, err := ParseDutyStatus(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// One contiguous span of a single duty status within a day, in hours [0,24].
type DutySegment struct {
	StartHour float64    `json:"startHour"`
	EndHour   float64    `json:"endHour"`
	Status    DutyStatus `json:"status"`
}

// Validate checks 0 <= start < end <= 24.
func (s DutySegment) Validate() error {
	if s.StartHour < 0 || s.EndHour > 24 || s.StartHour >= s.EndHour {
		return fmt.Errorf("%w: segment [%g,%g] outside 0 <= start < end <= 24", ErrValidation, s.StartHour, s.EndHour)
	}
	return nil
}

// Duration in hours.
func (s DutySegment) Hours() float64 { return s.EndHour - s.StartHour }
