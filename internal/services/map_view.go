package services

import (
	"eld-trip-planner/internal/domain"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// DefaultMapCenter is shown when there is nothing to fit.
var DefaultMapCenter = domain.GeoPoint{Latitude: 5.6596423, Longitude: -0.0096622}

const (
	DefaultMapZoom   = 6
	FitPaddingPixels = 50
)

type MarkerKind string

const (
	MarkerCurrent MarkerKind = "current"
	MarkerPickup  MarkerKind = "pickup"
	MarkerDropoff MarkerKind = "dropoff"
)

type Marker struct {
	Kind  MarkerKind      `json:"kind"`
	Label string          `json:"label"`
	Point domain.GeoPoint `json:"point"`
}

// MapView is everything a map widget needs to draw a trip. It is plain data;
// the widget decides how to render it.
type MapView struct {
	Center     domain.GeoPoint   `json:"center"`
	Zoom       int               `json:"zoom"`
	Markers    []Marker          `json:"markers"`
	Route      []domain.GeoPoint `json:"route"`
	FitPadding int               `json:"fit_padding"`
	// Bounds covers every marker and route point; nil when there are none.
	Bounds *orb.Bound `json:"-"`
}

// ProjectMap places markers for the locations that are present, the route
// line, and a viewport that fits all of them. The initial center is the
// current location when known, otherwise DefaultMapCenter.
func ProjectMap(current, pickup, dropoff *domain.GeoPoint, route []domain.GeoPoint) MapView {
	mv := MapView{
		Center:     DefaultMapCenter,
		Zoom:       DefaultMapZoom,
		Markers:    make([]Marker, 0, 3),
		Route:      append([]domain.GeoPoint{}, route...),
		FitPadding: FitPaddingPixels,
	}

	addMarker := func(kind MarkerKind, label string, p *domain.GeoPoint) {
		if p != nil {
			mv.Markers = append(mv.Markers, Marker{Kind: kind, Label: label, Point: *p})
		}
	}
	addMarker(MarkerCurrent, "Current Location", current)
	addMarker(MarkerPickup, "Pickup", pickup)
	addMarker(MarkerDropoff, "Dropoff", dropoff)

	if current != nil {
		mv.Center = *current
	}

	var all orb.MultiPoint
	for _, m := range mv.Markers {
		all = append(all, toOrb(m.Point))
	}
	for _, p := range mv.Route {
		all = append(all, toOrb(p))
	}
	if len(all) > 0 {
		b := all.Bound()
		mv.Bounds = &b
	}

	return mv
}

// FitBounds returns the viewport as [[south, west], [north, east]], the
// lat/lon corner order map widgets expect. ok is false when there is
// nothing to fit.
func (mv MapView) FitBounds() (corners [2][2]float64, ok bool) {
	if mv.Bounds == nil {
		return corners, false
	}
	b := *mv.Bounds
	return [2][2]float64{{b.Bottom(), b.Left()}, {b.Top(), b.Right()}}, true
}

// FeatureCollection renders the markers as Point features and the route as
// a LineString feature, with a bbox when there is anything to show.
func (mv MapView) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, m := range mv.Markers {
		f := geojson.NewFeature(toOrb(m.Point))
		f.Properties["kind"] = string(m.Kind)
		f.Properties["label"] = m.Label
		fc.Append(f)
	}

	if len(mv.Route) > 0 {
		line := make(orb.LineString, 0, len(mv.Route))
		for _, p := range mv.Route {
			line = append(line, toOrb(p))
		}
		f := geojson.NewFeature(line)
		f.Properties["kind"] = "route"
		fc.Append(f)
	}

	if mv.Bounds != nil {
		fc.BBox = geojson.NewBBox(*mv.Bounds)
	}

	return fc
}

func toOrb(p domain.GeoPoint) orb.Point { return orb.Point{p.Longitude, p.Latitude} }
