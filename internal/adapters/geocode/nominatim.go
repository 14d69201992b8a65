package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"eld-trip-planner/internal/adapters/httpclient"
	"eld-trip-planner/internal/domain"
	"eld-trip-planner/internal/platform/obs"

	"go.uber.org/zap"
)

// NominatimGeocoder resolves free-text queries against a Nominatim-style
// search endpoint.
type NominatimGeocoder struct {
	baseURL string
	limit   int
	client  *httpclient.Client
	log     *zap.Logger
}

func NewNominatimGeocoder(
	baseURL string,
	limit int,
	client *httpclient.Client,
	log *zap.Logger,
) *NominatimGeocoder {
	if log == nil {
		log = zap.NewNop()
	}
	if limit <= 0 {
		limit = 5
	}
	return &NominatimGeocoder{
		baseURL: strings.TrimRight(baseURL, "/"),
		limit:   limit,
		client:  client,
		log:     log,
	}
}

type searchResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Return suggestions for query in upstream relevance order.
// Records with unparsable coordinates are skipped.
func (g *NominatimGeocoder) Search(ctx context.Context, query string) (_ []domain.Suggestion, err error) {
	defer obs.Time(ctx, g.log, "geocode.nominatim.Search")(&err)

	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("addressdetails", "1")
	q.Set("limit", strconv.Itoa(g.limit))

	req, err := g.client.NewRequest(ctx, http.MethodGet, g.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("geocode search: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode search %q: %w", query, err)
	}
	defer resp.Body.Close()

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("geocode search: decode response: %w", err)
	}

	out := make([]domain.Suggestion, 0, len(results))
	for _, r := range results {
		lat, errLat := strconv.ParseFloat(strings.TrimSpace(r.Lat), 64)
		lon, errLon := strconv.ParseFloat(strings.TrimSpace(r.Lon), 64)
		if errLat != nil || errLon != nil {
			g.log.Debug("skip geocode record with bad coordinates",
				zap.String("label", r.DisplayName),
				zap.String("lat", r.Lat),
				zap.String("lon", r.Lon),
			)
			continue
		}
		out = append(out, domain.Suggestion{
			Label: r.DisplayName,
			Point: domain.GeoPoint{Latitude: lat, Longitude: lon},
		})
	}

	return out, nil
}
