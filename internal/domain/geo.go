package domain

// Immutable geographic point (latitude, longitude) in decimal degrees.
type GeoPoint struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// Return the point as [lon, lat] for GeoJSON and routing API compatibility.
func (p GeoPoint) LonLat() [2]float64 { return [2]float64{p.Longitude, p.Latitude} }

// A geocoded candidate returned for a free-text query.
type Suggestion struct {
	Label string   `json:"label"`
	Point GeoPoint `json:"point"`
}

// Current state of one location input.
//
// Resolved is non-nil only while DisplayName equals the label of the
// suggestion that produced it. Any edit clears it.
type LocationField struct {
	DisplayName string    `json:"display_name"`
	Resolved    *GeoPoint `json:"resolved,omitempty"`
}
