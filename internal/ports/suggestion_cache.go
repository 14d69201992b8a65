package ports

import (
	"context"
	"eld-trip-planner/internal/domain"
)

// Port: persistent query -> suggestions storage used in front of a Geocoder.
type SuggestionCache interface {
	// Return cached suggestions and whether the query was present.
	Get(ctx context.Context, query string) ([]domain.Suggestion, bool, error)
	// Store suggestions for query, replacing any previous entry.
	Put(ctx context.Context, query string, suggestions []domain.Suggestion) error
}
