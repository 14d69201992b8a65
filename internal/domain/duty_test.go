package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseDutyStatus(t *testing.T) {
	cases := map[string]DutyStatus{
		"off":      OffDuty,
		"off_duty": OffDuty,
		"rest":     OffDuty,
		"sleeper":  SleeperBerth,
		"Driving":  Driving,
		"onduty":   OnDuty,
		"on_duty":  OnDuty,
	}

	for raw, want := range cases {
		got, err := ParseDutyStatus(raw)
		if err != nil {
			t.Fatalf("ParseDutyStatus(%q) unexpected error: %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseDutyStatus(%q) = %v, want %v", raw, got, want)
		}
	}

	if _, err := ParseDutyStatus("yard_move"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown status, got %v", err)
	}
}

func TestDutySegmentJSON(t *testing.T) {
	var seg DutySegment
	if err := json.Unmarshal([]byte(`{"startHour":6,"endHour":12,"status":"driving"}`), &seg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if seg.Status != Driving || seg.StartHour != 6 || seg.EndHour != 12 {
		t.Fatalf("unexpected segment: %+v", seg)
	}

	b, err := json.Marshal(DutySegment{StartHour: 0, EndHour: 6, Status: SleeperBerth})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"startHour":0,"endHour":6,"status":"sleeper"}` {
		t.Fatalf("marshal = %s", b)
	}
}

func TestDutySegmentValidate(t *testing.T) {
	valid := DutySegment{StartHour: 0, EndHour: 24, Status: OffDuty}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, seg := range []DutySegment{
		{StartHour: -1, EndHour: 2},
		{StartHour: 3, EndHour: 3},
		{StartHour: 20, EndHour: 25},
	} {
		if err := seg.Validate(); !errors.Is(err, ErrValidation) {
			t.Errorf("segment %+v: expected ErrValidation, got %v", seg, err)
		}
	}
}
