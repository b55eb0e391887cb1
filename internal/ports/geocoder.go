package ports

import (
	"context"
	"delivery-route-planner/internal/domain"
)

// Contract for turning free text (an address or a place name) into coordinates.
//
// Implementations return domain.ErrNoResult when the service answered without a
// match and wrap domain.ErrLookupFailed for transport or status failures.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (domain.Coordinates, error)
}
