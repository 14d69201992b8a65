package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"eld-trip-planner/internal/domain"
)

// Lanes is the fixed number of duty status rows on a log sheet.
const Lanes = 4

// ChartDimensions is the drawing area of the duty strip, excluding label margins.
type ChartDimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

var DefaultChartDimensions = ChartDimensions{Width: 720, Height: 200}

func (d ChartDimensions) laneHeight() float64 { return d.Height / Lanes }

// X maps an hour in [0,24] onto the chart width.
func (d ChartDimensions) X(hour float64) float64 { return hour * d.Width / 24 }

// Y is the vertical center of the status lane.
func (d ChartDimensions) Y(status domain.DutyStatus) float64 {
	lh := d.laneHeight()
	return float64(status.Lane())*lh + lh/2
}

type StepKind int

const (
	StepHorizontal StepKind = iota
	StepVertical
)

func (k StepKind) String() string {
	if k == StepVertical {
		return "vertical"
	}
	return "horizontal"
}

func (k StepKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *StepKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "horizontal":
		*k = StepHorizontal
	case "vertical":
		*k = StepVertical
	default:
		return fmt.Errorf("unknown step kind %q", string(b))
	}
	return nil
}

// PathStep is one straight stroke of the duty line.
type PathStep struct {
	Kind StepKind `json:"kind"`
	X1   float64  `json:"x1"`
	Y1   float64  `json:"y1"`
	X2   float64  `json:"x2"`
	Y2   float64  `json:"y2"`
}

type HourLabel struct {
	Hour int     `json:"hour"`
	X    float64 `json:"x"`
	Text string  `json:"text"`
}

type LaneLabel struct {
	Status domain.DutyStatus `json:"status"`
	Y      float64           `json:"y"`
	Text   string            `json:"text"`
}

// Timeline is the drawable form of one day of duty segments.
// Grid holds the x position of every whole hour 0..24.
type Timeline struct {
	Dims       ChartDimensions `json:"dims"`
	Steps      []PathStep      `json:"steps"`
	Connectors int             `json:"connectors"`
	HourLabels []HourLabel     `json:"hour_labels"`
	LaneLabels []LaneLabel     `json:"lane_labels"`
	Grid       []float64       `json:"grid"`
}

var laneLabelText = [Lanes]string{"Off Duty", "Slp Berth", "Driving", "On Duty"}

// BuildTimeline turns an ordered day of segments into a step path.
//
// Segment 0 contributes a horizontal run. Every later segment contributes a
// vertical connector at its start hour when its status differs from the
// previous segment, then its own horizontal run. Same-status neighbours get
// no connector so they draw as one continuous line. An empty day yields no
// steps; labels and grid are always present.
func BuildTimeline(segments []domain.DutySegment, dims ChartDimensions) Timeline {
	if dims.Width <= 0 || dims.Height <= 0 {
		dims = DefaultChartDimensions
	}

	tl := Timeline{
		Dims:       dims,
		Steps:      make([]PathStep, 0, 2*len(segments)),
		HourLabels: make([]HourLabel, 0, 12),
		LaneLabels: make([]LaneLabel, 0, Lanes),
		Grid:       make([]float64, 0, 25),
	}

	for i, seg := range segments {
		y := dims.Y(seg.Status)
		x1, x2 := dims.X(seg.StartHour), dims.X(seg.EndHour)

		if i > 0 && segments[i-1].Status != seg.Status {
			prevY := dims.Y(segments[i-1].Status)
			tl.Steps = append(tl.Steps, PathStep{Kind: StepVertical, X1: x1, Y1: prevY, X2: x1, Y2: y})
			tl.Connectors++
		}

		tl.Steps = append(tl.Steps, PathStep{Kind: StepHorizontal, X1: x1, Y1: y, X2: x2, Y2: y})
	}

	for h := 0; h <= 24; h++ {
		x := dims.X(float64(h))
		tl.Grid = append(tl.Grid, x)
		if h%2 == 0 && h < 24 {
			tl.HourLabels = append(tl.HourLabels, HourLabel{Hour: h, X: x, Text: strconv.Itoa(h)})
		}
	}

	for _, s := range domain.DutyStatuses {
		tl.LaneLabels = append(tl.LaneLabels, LaneLabel{Status: s, Y: dims.Y(s), Text: laneLabelText[s.Lane()]})
	}

	return tl
}

type point struct{ X, Y float64 }

// D renders the steps as SVG path data. Steps that do not start at the pen
// position (a gap between segments) are bridged with a line to their start.
func (t Timeline) D() string {
	if len(t.Steps) == 0 {
		return ""
	}

	var b strings.Builder
	first := t.Steps[0]
	fmt.Fprintf(&b, "M %s,%s L %s,%s", num(first.X1), num(first.Y1), num(first.X2), num(first.Y2))
	pen := point{first.X2, first.Y2}

	for _, s := range t.Steps[1:] {
		if (point{s.X1, s.Y1}) != pen {
			fmt.Fprintf(&b, " L %s,%s", num(s.X1), num(s.Y1))
		}
		fmt.Fprintf(&b, " L %s,%s", num(s.X2), num(s.Y2))
		pen = point{s.X2, s.Y2}
	}

	return b.String()
}

// Vertices returns the corner points of the drawn line. Consecutive strokes
// along the same axis collapse into one, so two drawings compare equal
// exactly when they look the same.
func (t Timeline) Vertices() [][2]float64 {
	var pts []point
	add := func(p point) {
		n := len(pts)
		if n > 0 && pts[n-1] == p {
			return
		}
		if n >= 2 && collinear(pts[n-2], pts[n-1], p) {
			pts[n-1] = p
			return
		}
		pts = append(pts, p)
	}

	for _, s := range t.Steps {
		add(point{s.X1, s.Y1})
		add(point{s.X2, s.Y2})
	}

	out := make([][2]float64, 0, len(pts))
	for _, p := range pts {
		out = append(out, [2]float64{p.X, p.Y})
	}
	return out
}

// collinear reports whether c continues the axis-aligned stroke a->b in the
// same direction.
func collinear(a, b, c point) bool {
	switch {
	case a.Y == b.Y && b.Y == c.Y:
		return math.Signbit(b.X-a.X) == math.Signbit(c.X-b.X)
	case a.X == b.X && b.X == c.X:
		return math.Signbit(b.Y-a.Y) == math.Signbit(c.Y-b.Y)
	}
	return false
}

func num(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
