package services

import (
	"context"
	"delivery-route-planner/internal/domain"
	"delivery-route-planner/internal/platform/obs"
	"delivery-route-planner/internal/ports"
	"errors"
	"fmt"
	"log"
)

type PlanRouteRequest struct {
	Records     []domain.StopRecord
	Metric      domain.Metric
	CostPerKm   float64
	CostPerHour float64
	// Optional per-record callback, used by the CLI progress bar.
	OnProgress func(done int, stop domain.ResolvedStop)
}

// Planner runs one route calculation end to end.
// Matrix and Metrics are optional; nil providers take the documented fallbacks.
type Planner struct {
	Resolver *Resolver
	Matrix   ports.DistanceMatrixProvider
	Metrics  ports.RouteMetricsProvider
}

// Plan resolves, sequences and annotates the records of one request.
//
// Per-record and provider failures degrade (unresolved labels, geodesic costs,
// empty geometry). The only hard failure is domain.ErrInsufficientPoints.
func (p *Planner) Plan(ctx context.Context, req PlanRouteRequest) (_ *domain.RoutePlan, err error) {
	defer obs.Time(ctx, "planner.Plan")(&err)

	if p.Resolver == nil {
		return nil, errors.New("plan route: resolver is nil")
	}

	metric := req.Metric
	if metric == "" {
		metric = domain.MetricDuration
	}

	all, err := p.Resolver.ResolveAll(ctx, req.Records, req.OnProgress)
	if err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}

	resolved := make([]domain.ResolvedStop, 0, len(all))
	unresolved := make([]string, 0)
	for _, s := range all {
		if s.Resolved() {
			resolved = append(resolved, s)
			continue
		}
		log.Printf("plan route: unresolved label=%q err=%v", s.Label, s.Err)
		unresolved = append(unresolved, s.Label)
	}

	if len(resolved) < 2 {
		return nil, fmt.Errorf("plan route: %d of %d records resolved: %w", len(resolved), len(all), domain.ErrInsufficientPoints)
	}

	points := make([]domain.Coordinates, 0, len(resolved))
	for _, s := range resolved {
		points = append(points, s.Coordinates)
	}

	matrix := p.fetchMatrix(ctx, points, metric)

	seq, err := SequenceStops(resolved, matrix)
	if err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}

	metrics := p.fetchMetrics(ctx, seq.Points())
	metrics.UsedTrafficModel = seq.UsedTrafficModel

	return &domain.RoutePlan{
		Resolved:   all,
		Sequence:   seq,
		Unresolved: unresolved,
		Metrics:    metrics,
		Cost:       EstimateCost(metrics, seq.Points(), req.CostPerKm, req.CostPerHour),
	}, nil
}

// fetchMatrix returns nil whenever the provider is missing, fails or returns a
// matrix of the wrong shape, which makes the sequencer fall back to geodesic costs.
func (p *Planner) fetchMatrix(ctx context.Context, points []domain.Coordinates, metric domain.Metric) domain.Matrix {
	if p.Matrix == nil {
		return nil
	}

	m, err := p.Matrix.FetchMatrix(ctx, points, metric)
	if err != nil {
		log.Printf("plan route: matrix unavailable, using straight-line distances: %v", err)
		return nil
	}
	if err := m.Validate(len(points)); err != nil {
		log.Printf("plan route: discarding matrix: %v", err)
		return nil
	}

	return m
}

func (p *Planner) fetchMetrics(ctx context.Context, points []domain.Coordinates) domain.RouteMetrics {
	if p.Metrics == nil {
		return domain.RouteMetrics{}
	}

	m, err := p.Metrics.FetchRouteMetrics(ctx, points)
	if err != nil {
		log.Printf("plan route: route metrics unavailable: %v", err)
		return domain.RouteMetrics{}
	}

	m.Available = true
	return m
}
