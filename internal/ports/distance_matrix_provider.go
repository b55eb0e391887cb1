package ports

import (
	"context"
	"delivery-route-planner/internal/domain"
)

// Contract for retrieving a full pairwise travel cost matrix in one call.
type DistanceMatrixProvider interface {
	// Return an n x n matrix indexed like points. Failures wrap domain.ErrLookupFailed.
	FetchMatrix(ctx context.Context, points []domain.Coordinates, metric domain.Metric) (domain.Matrix, error)
}
