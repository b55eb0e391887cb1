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

type matrixRequest struct {
	Locations [][]float64 `json:"locations"`
	Metrics   []string    `json:"metrics"`
}

type matrixResponse struct {
	Distances [][]*float64 `json:"distances"`
	Durations [][]*float64 `json:"durations"`
}

// FetchMatrix retrieves the full NxN matrix for points. With no sources or
// destinations in the request ORS treats every location as both.
func (o *ORSProvider) FetchMatrix(
	ctx context.Context,
	points []domain.Coordinates,
	metric domain.Metric,
) (_ domain.Matrix, err error) {
	defer obs.Time(ctx, "ors.FetchMatrix")(&err)

	if len(points) < 2 {
		return nil, fmt.Errorf("ors matrix: %w", domain.ErrInsufficientPoints)
	}

	ctx, cancel := withTimeout(ctx, o.matrixTimeout)
	defer cancel()

	locations := make([][]float64, 0, len(points))
	for _, p := range points {
		locations = append(locations, p.CoordsToList())
	}

	payload, err := json.Marshal(matrixRequest{
		Locations: locations,
		Metrics:   []string{string(metric)},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal matrix request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v2/matrix/%s", o.baseURL, o.profile)
	req, err := httpx.NewRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload), o.headers())
	if err != nil {
		return nil, fmt.Errorf("ors matrix: %w", err)
	}

	var mr matrixResponse
	if err := httpx.DoJSON(o.session, req, &mr); err != nil {
		return nil, fmt.Errorf("ors matrix: %w", err)
	}

	m := domain.Matrix(mr.Durations)
	if metric == domain.MetricDistance {
		m = domain.Matrix(mr.Distances)
	}

	if err := m.Validate(len(points)); err != nil {
		return nil, fmt.Errorf("ors matrix: %v: %w", err, domain.ErrLookupFailed)
	}

	return m, nil
}
