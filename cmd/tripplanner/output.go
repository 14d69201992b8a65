package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"eld-trip-planner/internal/domain"
	"eld-trip-planner/internal/services"
)

const metersPerMile = 1609.344

func printSummary(w io.Writer, res domain.TripResult) {
	fmt.Fprintf(w, "distance: %.1f mi\n", res.Summary.DistanceMeters/metersPerMile)
	fmt.Fprintf(w, "duration: %.1f h\n", res.Summary.DurationSeconds/3600)
	fmt.Fprintf(w, "route points: %d\n", len(res.Route))
	for _, s := range res.Stops {
		fmt.Fprintf(w, "stop: %-8s %.5f,%.5f\n", s.Kind, s.Point.Latitude, s.Point.Longitude)
	}
}

// printDays lists every day with its segments, per-status totals and any
// contiguity warnings.
func printDays(w io.Writer, days []domain.DailyLog) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	for _, d := range days {
		header := fmt.Sprintf("day %d", d.DayIndex)
		if d.Date != "" {
			header += " (" + d.Date + ")"
		}
		fmt.Fprintln(tw, header)

		totals := make(map[domain.DutyStatus]float64, len(domain.DutyStatuses))
		for _, s := range d.Segments {
			fmt.Fprintf(tw, "  %g\t%g\t%s\n", s.StartHour, s.EndHour, s.Status.Label())
			totals[s.Status] += s.Hours()
		}
		for _, st := range domain.DutyStatuses {
			fmt.Fprintf(tw, "  total\t%s\t%g h\n", st.Label(), totals[st])
		}
		for _, issue := range services.CheckContiguity(d.Segments) {
			fmt.Fprintf(tw, "  warning\t%s\t\n", issue)
		}
	}

	return tw.Flush()
}

// writeSheets renders one SVG log sheet per day into dir.
func writeSheets(dir string, days []domain.DailyLog) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("write sheets: %w", err)
	}

	paths := make([]string, 0, len(days))
	for i, d := range days {
		name := fmt.Sprintf("day-%02d.svg", d.DayIndex)
		if d.SheetID != 0 {
			name = fmt.Sprintf("sheet-%d-day-%02d.svg", d.SheetID, d.DayIndex)
		}
		path := filepath.Join(dir, name)

		title := fmt.Sprintf("Day %d", d.DayIndex)
		if d.Date != "" {
			title += " " + d.Date
		}

		if err := writeSheet(path, title, d.Segments); err != nil {
			return paths, fmt.Errorf("write sheets: day %d (#%d): %w", d.DayIndex, i, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeSheet(path, title string, segments []domain.DutySegment) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	tl := services.BuildTimeline(segments, services.DefaultChartDimensions)
	return services.RenderLogSheetSVG(f, title, tl, services.DefaultSheetOptions)
}
