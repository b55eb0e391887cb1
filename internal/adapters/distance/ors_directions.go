package distance

import (
	"bytes"
	"context"
	"delivery-route-planner/internal/domain"
	"delivery-route-planner/internal/platform/httpx"
	"delivery-route-planner/internal/platform/obs"
	"encoding/json"
	"fmt"
	"net/http"
)

type directionsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
}

type directionsResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Summary struct {
				Distance float64 `json:"distance"`
				Duration float64 `json:"duration"`
			} `json:"summary"`
		} `json:"properties"`
	} `json:"features"`
}

// FetchRouteMetrics asks ORS for the road route through points in the given order.
func (o *ORSProvider) FetchRouteMetrics(
	ctx context.Context,
	points []domain.Coordinates,
) (_ domain.RouteMetrics, err error) {
	defer obs.Time(ctx, "ors.FetchRouteMetrics")(&err)

	if len(points) < 2 {
		return domain.RouteMetrics{}, fmt.Errorf("ors directions: %w", domain.ErrInsufficientPoints)
	}

	ctx, cancel := withTimeout(ctx, o.routeTimeout)
	defer cancel()

	coords := make([][]float64, 0, len(points))
	for _, p := range points {
		coords = append(coords, p.CoordsToList())
	}

	payload, err := json.Marshal(directionsRequest{Coordinates: coords})
	if err != nil {
		return domain.RouteMetrics{}, fmt.Errorf("marshal directions request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v2/directions/%s/geojson", o.baseURL, o.profile)
	req, err := httpx.NewRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload), o.headers())
	if err != nil {
		return domain.RouteMetrics{}, fmt.Errorf("ors directions: %w", err)
	}

	var dr directionsResponse
	if err := httpx.DoJSON(o.session, req, &dr); err != nil {
		return domain.RouteMetrics{}, fmt.Errorf("ors directions: %w", err)
	}

	if len(dr.Features) == 0 {
		return domain.RouteMetrics{}, fmt.Errorf("ors directions: no route: %w", domain.ErrLookupFailed)
	}

	f := dr.Features[0]
	return domain.RouteMetrics{
		TotalDistanceKm:  f.Properties.Summary.Distance / 1000,
		TotalDurationMin: f.Properties.Summary.Duration / 60,
		Path:             geometryPath(f.Geometry.Coordinates),
		Available:        true,
	}, nil
}
