package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eld-trip-planner/internal/platform/obs"
)

func TestDoWithRetry_retriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(time.Second, nil).WithBackoff(time.Millisecond)
	ctx := context.Background()

	resp, err := c.DoWithRetry(ctx, 4, func() (*http.Request, error) {
		return c.NewRequest(ctx, http.MethodGet, srv.URL, nil)
	})
	require.NoError(t, err)
	resp.Body.Close()
	assert.EqualValues(t, 3, calls.Load())
}

func TestDoWithRetry_stopsOnClientError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad input", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := New(time.Second, nil).WithBackoff(time.Millisecond)
	ctx := context.Background()

	_, err := c.DoWithRetry(ctx, 4, func() (*http.Request, error) {
		return c.NewRequest(ctx, http.MethodGet, srv.URL, nil)
	})

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadRequest, se.Code)
	assert.Equal(t, "bad input", se.Body)
	assert.EqualValues(t, 1, calls.Load())
}

func TestNewRequest_headers(t *testing.T) {
	c := New(time.Second, map[string]string{"User-Agent": "eld-test"})
	ctx := obs.WithRequestID(context.Background(), "req-1")

	req, err := c.NewRequest(ctx, http.MethodGet, "http://example.com", nil)
	require.NoError(t, err)
	assert.Equal(t, "eld-test", req.Header.Get("User-Agent"))
	assert.Equal(t, "req-1", req.Header.Get("X-Request-ID"))
	assert.Empty(t, req.Header.Get("Content-Type"))

	req, err = c.NewRequest(context.Background(), http.MethodGet, "http://example.com", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, req.Header.Get("X-Request-ID"))
}

func TestRetryable(t *testing.T) {
	assert.True(t, Retryable(&StatusError{Code: 429}))
	assert.True(t, Retryable(&StatusError{Code: 502}))
	assert.False(t, Retryable(&StatusError{Code: 404}))
	assert.False(t, Retryable(context.Canceled))
	assert.False(t, Retryable(errors.New("decode failure")))
}
