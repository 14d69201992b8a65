package services

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
)

// SheetOptions controls the log sheet frame around a Timeline.
type SheetOptions struct {
	LeftMargin float64
	AxisStrip  float64
	LineColor  string
}

var DefaultSheetOptions = SheetOptions{LeftMargin: 60, AxisStrip: 20, LineColor: "blue"}

func (o SheetOptions) withDefaults() SheetOptions {
	if o.LeftMargin <= 0 {
		o.LeftMargin = DefaultSheetOptions.LeftMargin
	}
	if o.AxisStrip <= 0 {
		o.AxisStrip = DefaultSheetOptions.AxisStrip
	}
	if o.LineColor == "" {
		o.LineColor = DefaultSheetOptions.LineColor
	}
	return o
}

// RenderLogSheetSVG writes a standalone daily log sheet: lane rules and
// labels on the left, hour grid with even-hour labels below, and the duty
// line on top. An empty timeline still renders the grid.
func RenderLogSheetSVG(w io.Writer, title string, tl Timeline, opts SheetOptions) error {
	opts = opts.withDefaults()
	d := tl.Dims
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		num(d.Width+opts.LeftMargin), num(d.Height+opts.AxisStrip),
		num(d.Width+opts.LeftMargin), num(d.Height+opts.AxisStrip))

	if title != "" {
		bw.WriteString("<title>")
		if err := xml.EscapeText(bw, []byte(title)); err != nil {
			return fmt.Errorf("render log sheet: %w", err)
		}
		bw.WriteString("</title>\n")
	}

	bw.WriteString(`<rect x="0" y="0" width="100%" height="100%" fill="white"/>` + "\n")

	for _, l := range tl.LaneLabels {
		fmt.Fprintf(bw, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="#ccc" stroke-width="1"/>`+"\n",
			num(opts.LeftMargin), num(l.Y), num(opts.LeftMargin+d.Width), num(l.Y))
		fmt.Fprintf(bw, `<text x="%s" y="%s" font-size="12" text-anchor="end" fill="#333" font-weight="500">%s</text>`+"\n",
			num(opts.LeftMargin-10), num(l.Y+4), l.Text)
	}

	for _, x := range tl.Grid {
		fmt.Fprintf(bw, `<line x1="%s" y1="0" x2="%s" y2="%s" stroke="#ddd" stroke-width="1"/>`+"\n",
			num(opts.LeftMargin+x), num(opts.LeftMargin+x), num(d.Height))
	}

	for _, h := range tl.HourLabels {
		fmt.Fprintf(bw, `<text x="%s" y="%s" font-size="10" text-anchor="middle" fill="#333">%s</text>`+"\n",
			num(opts.LeftMargin+h.X), num(d.Height+12), h.Text)
	}

	if path := tl.D(); path != "" {
		fmt.Fprintf(bw, `<path transform="translate(%s,0)" d="%s" stroke="%s" stroke-width="2" fill="none"/>`+"\n",
			num(opts.LeftMargin), path, opts.LineColor)
	}

	bw.WriteString("</svg>\n")

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("render log sheet: %w", err)
	}
	return nil
}
