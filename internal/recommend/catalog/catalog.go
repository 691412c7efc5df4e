// Package catalog provides the place collection used by content-based
// recommendations: places carrying a rating and free-text reviews.
package catalog

import (
	"context"

	"github.com/FACorreiaa/go-itinerary-recommender/internal/types"
)

// Catalog lists every reviewable place. Implementations are read once at
// startup.
type Catalog interface {
	Places(ctx context.Context) ([]types.Place, error)
}
