package geocoding

import (
	"context"
	"delivery-route-planner/internal/domain"
	"delivery-route-planner/internal/ports"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// Throttled spaces calls to the wrapped geocoder at least interval apart.
//
// Only calls that reach the network wait, so stops resolved from local data
// (manual coordinates, gazetteer anchors) are never delayed. This is a fixed
// pacing suited to tens of lookups per run, not a backoff scheme.
type Throttled struct {
	next    ports.Geocoder
	limiter *rate.Limiter
}

func NewThrottled(next ports.Geocoder, interval time.Duration) *Throttled {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Throttled{next: next, limiter: rate.NewLimiter(limit, 1)}
}

func (t *Throttled) Geocode(ctx context.Context, query string) (domain.Coordinates, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode throttle: %w: %v", domain.ErrLookupFailed, err)
	}
	return t.next.Geocode(ctx, query)
}
