package services

import (
	"eld-trip-planner/internal/domain"

	"github.com/twpayne/go-polyline"
)

// DecodeRoute decodes a precision-5 encoded polyline into points from trip
// start to end. Empty, truncated or otherwise malformed input yields an
// empty slice so the map can still show its markers.
func DecodeRoute(encoded string) []domain.GeoPoint {
	if encoded == "" {
		return []domain.GeoPoint{}
	}

	coords, rest, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil || len(rest) > 0 {
		return []domain.GeoPoint{}
	}

	out := make([]domain.GeoPoint, 0, len(coords))
	for _, c := range coords {
		out = append(out, domain.GeoPoint{Latitude: c[0], Longitude: c[1]})
	}
	return out
}

// EncodeRoute is the inverse of DecodeRoute.
func EncodeRoute(points []domain.GeoPoint) string {
	coords := make([][]float64, 0, len(points))
	for _, p := range points {
		coords = append(coords, []float64{p.Latitude, p.Longitude})
	}
	return string(polyline.EncodeCoords(coords))
}
