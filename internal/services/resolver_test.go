package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eld-trip-planner/internal/domain"
	"eld-trip-planner/internal/ports"
)

// scriptedGeocoder answers from a table and records every query it sees.
// A query listed in hold blocks, ignoring cancellation, until its channel is
// closed, which simulates a response that arrives late anyway.
type scriptedGeocoder struct {
	mu      sync.Mutex
	queries []string
	answers map[string][]domain.Suggestion
	errs    map[string]error
	hold    map[string]chan struct{}
	started chan string
}

var _ ports.Geocoder = (*scriptedGeocoder)(nil)

func newScriptedGeocoder() *scriptedGeocoder {
	return &scriptedGeocoder{
		answers: map[string][]domain.Suggestion{},
		errs:    map[string]error{},
		hold:    map[string]chan struct{}{},
		started: make(chan string, 16),
	}
}

func (g *scriptedGeocoder) Search(ctx context.Context, query string) ([]domain.Suggestion, error) {
	g.mu.Lock()
	g.queries = append(g.queries, query)
	hold := g.hold[query]
	g.mu.Unlock()

	g.started <- query

	if hold != nil {
		<-hold
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := g.errs[query]; err != nil {
		return nil, err
	}
	return g.answers[query], nil
}

func (g *scriptedGeocoder) seen() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.queries...)
}

func suggestion(label string, lat, lon float64) domain.Suggestion {
	return domain.Suggestion{Label: label, Point: domain.GeoPoint{Latitude: lat, Longitude: lon}}
}

func TestResolver_shortInputClearsWithoutLookup(t *testing.T) {
	g := newScriptedGeocoder()
	g.answers["Accra"] = []domain.Suggestion{suggestion("Accra", 5.56, -0.2)}
	r := NewResolver(g, WithDebounce(5*time.Millisecond))
	defer r.Close()

	r.SetText("Accra")
	require.Eventually(t, func() bool { return len(r.State().Suggestions) == 1 }, time.Second, 5*time.Millisecond)

	r.SetText("Ac")
	st := r.State()
	assert.Empty(t, st.Suggestions)
	assert.False(t, st.Pending)
	assert.Equal(t, "Ac", st.Field.DisplayName)

	r.SetText(" é ")
	assert.Empty(t, r.State().Suggestions)

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, []string{"Accra"}, g.seen())
}

func TestResolver_burstIssuesOneLookup(t *testing.T) {
	g := newScriptedGeocoder()
	g.answers["ABC"] = []domain.Suggestion{suggestion("ABC Junction", 5.6, -0.1)}
	r := NewResolver(g, WithDebounce(50*time.Millisecond), WithMinChars(1))
	defer r.Close()

	r.SetText("A")
	r.SetText("AB")
	r.SetText("ABC")
	assert.True(t, r.State().Pending)

	require.Eventually(t, func() bool { return !r.State().Pending }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"ABC"}, g.seen())
	assert.Equal(t, g.answers["ABC"], r.State().Suggestions)
}

func TestResolver_lateStaleResponseIsDiscarded(t *testing.T) {
	g := newScriptedGeocoder()
	releaseA := make(chan struct{})
	g.hold["A"] = releaseA
	g.answers["A"] = []domain.Suggestion{suggestion("Aflao", 6.11, 1.19)}
	g.answers["ABC"] = []domain.Suggestion{suggestion("ABC Junction", 5.6, -0.1)}

	r := NewResolver(g, WithDebounce(time.Millisecond), WithMinChars(1))

	r.SetText("A")
	require.Equal(t, "A", <-g.started)

	r.SetText("ABC")
	require.Equal(t, "ABC", <-g.started)
	require.Eventually(t, func() bool { return !r.State().Pending }, time.Second, time.Millisecond)
	assert.Equal(t, g.answers["ABC"], r.State().Suggestions)

	close(releaseA)
	r.Close() // waits for the "A" lookup to return and be discarded

	assert.Equal(t, g.answers["ABC"], r.State().Suggestions)
	assert.Equal(t, "ABC", r.State().Field.DisplayName)
}

func TestResolver_selectThenEdit(t *testing.T) {
	g := newScriptedGeocoder()
	kumasi := suggestion("Kumasi, Ashanti, Ghana", 6.6885, -1.6244)
	g.answers["Kumasi"] = []domain.Suggestion{kumasi}
	r := NewResolver(g, WithDebounce(time.Millisecond))
	defer r.Close()

	r.SetText("Kumasi")
	require.Eventually(t, func() bool { return len(r.State().Suggestions) == 1 }, time.Second, time.Millisecond)

	r.Select(kumasi)
	st := r.State()
	assert.Empty(t, st.Suggestions)
	assert.Equal(t, kumasi.Label, st.Field.DisplayName)
	require.NotNil(t, st.Field.Resolved)
	assert.Equal(t, kumasi.Point, *st.Field.Resolved)

	r.SetText("Kumasi, Ashanti")
	st = r.State()
	assert.Nil(t, st.Field.Resolved)
	assert.True(t, st.Pending)
}

func TestResolver_selectCancelsPendingLookup(t *testing.T) {
	g := newScriptedGeocoder()
	r := NewResolver(g, WithDebounce(30*time.Millisecond))
	defer r.Close()

	r.SetText("Tamale")
	r.Select(suggestion("Tamale", 9.4, -0.84))

	assert.Never(t, func() bool { return len(g.seen()) > 0 }, 80*time.Millisecond, 5*time.Millisecond)
	assert.NotNil(t, r.State().Field.Resolved)
}

func TestResolver_failureClearsSuggestions(t *testing.T) {
	g := newScriptedGeocoder()
	g.answers["Accra"] = []domain.Suggestion{suggestion("Accra", 5.56, -0.2)}
	g.errs["Accrx"] = errors.New("upstream 503")
	r := NewResolver(g, WithDebounce(time.Millisecond))
	defer r.Close()

	r.SetText("Accra")
	require.Eventually(t, func() bool { return len(r.State().Suggestions) == 1 }, time.Second, time.Millisecond)

	r.SetText("Accrx")
	require.Eventually(t, func() bool {
		st := r.State()
		return !st.Pending && len(st.Suggestions) == 0
	}, time.Second, time.Millisecond)
}

func TestResolver_onChangeSeesFinalState(t *testing.T) {
	g := newScriptedGeocoder()
	g.answers["Cape Coast"] = []domain.Suggestion{suggestion("Cape Coast", 5.1, -1.25)}

	var mu sync.Mutex
	var last ResolverState
	var count int
	r := NewResolver(g, WithDebounce(time.Millisecond), WithOnChange(func(s ResolverState) {
		mu.Lock()
		defer mu.Unlock()
		last = s
		count++
	}))

	r.SetText("Cape Coast")
	require.Eventually(t, func() bool { return !r.State().Pending }, time.Second, time.Millisecond)
	r.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, count)
	assert.Equal(t, r.State(), last)
}

func TestResolver_closeIsIdempotent(t *testing.T) {
	r := NewResolver(newScriptedGeocoder(), WithDebounce(time.Hour))
	r.SetText("Takoradi")
	r.Close()
	r.Close()

	st := r.State()
	assert.False(t, st.Pending)

	r.SetText("Ho")
	assert.Equal(t, "Takoradi", r.State().Field.DisplayName)
}
