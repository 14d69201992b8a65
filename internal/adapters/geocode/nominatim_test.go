package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eld-trip-planner/internal/adapters/httpclient"
	"eld-trip-planner/internal/domain"
	"eld-trip-planner/internal/ports"
)

var _ ports.Geocoder = (*NominatimGeocoder)(nil)

func TestSearch_parsesResultsInOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Accra", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("addressdetails"))
		assert.Equal(t, "3", r.URL.Query().Get("limit"))
		assert.Equal(t, "eld-test/1.0", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"display_name":"Accra, Greater Accra, Ghana","lat":"5.5600141","lon":"-0.2057437"},
			{"display_name":"broken","lat":"n/a","lon":"1"},
			{"display_name":"Accra Mall","lat":"5.6216","lon":"-0.1737"}
		]`))
	}))
	defer srv.Close()

	client := httpclient.New(time.Second, map[string]string{"User-Agent": "eld-test/1.0"})
	g := NewNominatimGeocoder(srv.URL+"/", 3, client, nil)

	got, err := g.Search(context.Background(), "Accra")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.Suggestion{
		Label: "Accra, Greater Accra, Ghana",
		Point: domain.GeoPoint{Latitude: 5.5600141, Longitude: -0.2057437},
	}, got[0])
	assert.Equal(t, "Accra Mall", got[1].Label)
}

func TestSearch_emptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	g := NewNominatimGeocoder(srv.URL, 5, httpclient.New(time.Second, nil), nil)

	got, err := g.Search(context.Background(), "zzzz")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearch_upstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g := NewNominatimGeocoder(srv.URL, 5, httpclient.New(time.Second, nil), nil)

	_, err := g.Search(context.Background(), "Accra")
	var se *httpclient.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusTooManyRequests, se.Code)
}

func TestSearch_canceled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	g := NewNominatimGeocoder(srv.URL, 5, httpclient.New(5*time.Second, nil), nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := g.Search(ctx, "Accra")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
