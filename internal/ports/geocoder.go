package ports

import (
	"context"
	"eld-trip-planner/internal/domain"
)

// Contract for turning a free-text query into ranked candidates.
type Geocoder interface {
	// Return candidates in the upstream relevance order. Implementations must
	// honour ctx cancellation so superseded lookups can be aborted.
	Search(ctx context.Context, query string) ([]domain.Suggestion, error)
}
