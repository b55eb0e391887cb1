package distance

import (
	"context"
	"delivery-route-planner/internal/domain"
	"fmt"
	"sync"
)

// MockProvider serves a fixed matrix and fixed route metrics.
// Setting MatrixErr or MetricsErr simulates an unreachable routing service.
type MockProvider struct {
	mu          sync.Mutex
	matrix      domain.Matrix
	metrics     domain.RouteMetrics
	matrixCalls int
	routeCalls  int

	MatrixErr  error
	MetricsErr error
}

func NewMockProvider(values [][]float64, metrics domain.RouteMetrics) *MockProvider {
	var m domain.Matrix
	if values != nil {
		m = domain.NewMatrix(values)
	}
	return &MockProvider{matrix: m, metrics: metrics}
}

func (p *MockProvider) FetchMatrix(ctx context.Context, points []domain.Coordinates, metric domain.Metric) (domain.Matrix, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.matrixCalls++

	if p.MatrixErr != nil {
		return nil, p.MatrixErr
	}
	if p.matrix == nil {
		return nil, fmt.Errorf("mock matrix for %d points: %w", len(points), domain.ErrLookupFailed)
	}
	return p.matrix, nil
}

func (p *MockProvider) FetchRouteMetrics(ctx context.Context, points []domain.Coordinates) (domain.RouteMetrics, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.routeCalls++

	if p.MetricsErr != nil {
		return domain.RouteMetrics{}, p.MetricsErr
	}
	return p.metrics, nil
}

func (p *MockProvider) MatrixCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.matrixCalls
}

func (p *MockProvider) RouteCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.routeCalls
}
