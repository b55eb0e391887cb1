package ports

import (
	"context"
	"delivery-route-planner/internal/domain"
)

// Contract for annotating an already ordered sequence with road geometry,
// distance and duration.
type RouteMetricsProvider interface {
	FetchRouteMetrics(ctx context.Context, points []domain.Coordinates) (domain.RouteMetrics, error)
}
