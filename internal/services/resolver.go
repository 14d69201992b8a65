package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"eld-trip-planner/internal/domain"
	"eld-trip-planner/internal/ports"

	"go.uber.org/zap"
)

const (
	DefaultDebounce = 300 * time.Millisecond
	DefaultMinChars = 3
)

// ResolverState is a snapshot of one location input and its suggestions.
type ResolverState struct {
	Field       domain.LocationField `json:"field"`
	Suggestions []domain.Suggestion  `json:"suggestions"`
	Pending     bool                 `json:"pending"`
}

type ResolverOption func(*Resolver)

func WithDebounce(d time.Duration) ResolverOption {
	return func(r *Resolver) {
		if d > 0 {
			r.debounce = d
		}
	}
}

func WithMinChars(n int) ResolverOption {
	return func(r *Resolver) {
		if n > 0 {
			r.minChars = n
		}
	}
}

func WithLogger(l *zap.Logger) ResolverOption {
	return func(r *Resolver) {
		if l != nil {
			r.log = l
		}
	}
}

// WithOnChange registers a callback that receives every state change in
// order. The callback must not call back into the Resolver; everything it
// needs is in the snapshot.
func WithOnChange(fn func(ResolverState)) ResolverOption {
	return func(r *Resolver) { r.onChange = fn }
}

// Resolver turns typed text for one location field into geocoding
// suggestions.
//
// Each edit cancels the pending lookup and starts a fresh debounce window,
// so a burst of typing costs at most one geocoder call. Every lookup carries
// a sequence token; a result whose token is no longer current is dropped,
// which keeps a slow response for an old query from overwriting a newer one.
type Resolver struct {
	geocoder ports.Geocoder
	debounce time.Duration
	minChars int
	log      *zap.Logger
	onChange func(ResolverState)

	mu          sync.Mutex
	notifyMu    sync.Mutex
	field       domain.LocationField
	suggestions []domain.Suggestion
	pending     bool
	seq         uint64
	cancel      context.CancelFunc
	closed      bool
	wg          sync.WaitGroup
}

func NewResolver(geocoder ports.Geocoder, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		geocoder: geocoder,
		debounce: DefaultDebounce,
		minChars: DefaultMinChars,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetText records an edit. Any selected point is discarded.
func (r *Resolver) SetText(text string) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}

	r.field = domain.LocationField{DisplayName: text}
	r.stopLocked()
	token := r.seq

	query := strings.TrimSpace(text)
	if utf8.RuneCountInString(query) < r.minChars {
		r.suggestions = nil
		r.pending = false
		r.unlockAndNotify()
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.pending = true
	r.wg.Add(1)
	go r.lookup(ctx, token, query)

	r.unlockAndNotify()
}

// Select commits a suggestion as the field's value.
func (r *Resolver) Select(s domain.Suggestion) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}

	r.stopLocked()
	p := s.Point
	r.field = domain.LocationField{DisplayName: s.Label, Resolved: &p}
	r.suggestions = nil
	r.pending = false
	r.unlockAndNotify()
}

func (r *Resolver) State() ResolverState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

// Close cancels outstanding work and waits for it to finish. Safe to call
// more than once.
func (r *Resolver) Close() {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		r.stopLocked()
		r.pending = false
	}
	r.mu.Unlock()
	r.wg.Wait()
}

func (r *Resolver) lookup(ctx context.Context, token uint64, query string) {
	defer r.wg.Done()

	timer := time.NewTimer(r.debounce)
	select {
	case <-ctx.Done():
		timer.Stop()
		return
	case <-timer.C:
	}

	found, err := r.geocoder.Search(ctx, query)

	r.mu.Lock()
	if token != r.seq || r.closed {
		r.mu.Unlock()
		r.log.Debug("discard superseded suggestions", zap.String("query", query))
		return
	}

	r.stopLocked()
	r.pending = false

	switch {
	case errors.Is(err, context.Canceled):
		r.suggestions = nil
	case err != nil:
		r.log.Warn("geocode lookup failed", zap.String("query", query), zap.Error(err))
		r.suggestions = nil
	default:
		r.suggestions = found
	}

	r.unlockAndNotify()
}

// stopLocked cancels the current lookup and invalidates its token.
func (r *Resolver) stopLocked() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.seq++
}

func (r *Resolver) snapshotLocked() ResolverState {
	st := ResolverState{
		Field:       r.field,
		Suggestions: append([]domain.Suggestion(nil), r.suggestions...),
		Pending:     r.pending,
	}
	if r.field.Resolved != nil {
		p := *r.field.Resolved
		st.Field.Resolved = &p
	}
	return st
}

// unlockAndNotify releases mu and delivers the snapshot taken under it.
// notifyMu is taken before mu is released so callbacks observe changes in
// the order they happened.
func (r *Resolver) unlockAndNotify() {
	if r.onChange == nil {
		r.mu.Unlock()
		return
	}
	snap := r.snapshotLocked()
	r.notifyMu.Lock()
	r.mu.Unlock()
	defer r.notifyMu.Unlock()
	r.onChange(snap)
}
