package distance

import (
	"context"
	"delivery-route-planner/internal/domain"
	"delivery-route-planner/internal/platform/httpx"
	"delivery-route-planner/internal/platform/obs"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const DefaultOSRMURL = "https://router.project-osrm.org"

// OSRMProvider implements DistanceMatrixProvider and RouteMetricsProvider
// against an OSRM HTTP server using the driving profile.
//
// Every call is a single attempt bounded by its own timeout; callers fall back
// to geodesic figures when it fails.
type OSRMProvider struct {
	session       *http.Client
	baseURL       string
	matrixTimeout time.Duration
	routeTimeout  time.Duration
}

type osrmTableResponse struct {
	Code      string       `json:"code"`
	Message   string       `json:"message"`
	Durations [][]*float64 `json:"durations"`
	Distances [][]*float64 `json:"distances"`
}

type osrmRouteResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

func NewOSRMProvider(baseURL string, matrixTimeout, routeTimeout time.Duration) *OSRMProvider {
	if baseURL == "" {
		baseURL = DefaultOSRMURL
	}
	return &OSRMProvider{
		session:       &http.Client{},
		baseURL:       strings.TrimRight(baseURL, "/"),
		matrixTimeout: matrixTimeout,
		routeTimeout:  routeTimeout,
	}
}

// coordPath renders points as OSRM's "lon,lat;lon,lat" path segment.
func coordPath(points []domain.Coordinates) string {
	parts := make([]string, 0, len(points))
	for _, p := range points {
		parts = append(parts,
			strconv.FormatFloat(p.Lon, 'f', 6, 64)+","+strconv.FormatFloat(p.Lat, 'f', 6, 64))
	}
	return strings.Join(parts, ";")
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func (o *OSRMProvider) FetchMatrix(
	ctx context.Context,
	points []domain.Coordinates,
	metric domain.Metric,
) (_ domain.Matrix, err error) {
	defer obs.Time(ctx, "osrm.FetchMatrix")(&err)

	if len(points) < 2 {
		return nil, fmt.Errorf("osrm table: %w", domain.ErrInsufficientPoints)
	}

	ctx, cancel := withTimeout(ctx, o.matrixTimeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/table/v1/driving/%s", o.baseURL, coordPath(points))
	req, err := httpx.NewRequest(ctx, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("osrm table: %w", err)
	}

	q := req.URL.Query()
	q.Set("annotations", string(metric))
	req.URL.RawQuery = q.Encode()

	var tr osrmTableResponse
	if err := httpx.DoJSON(o.session, req, &tr); err != nil {
		return nil, fmt.Errorf("osrm table: %w", err)
	}

	if tr.Code != "Ok" {
		return nil, fmt.Errorf("osrm table: code %q: %s: %w", tr.Code, tr.Message, domain.ErrLookupFailed)
	}

	m := domain.Matrix(tr.Durations)
	if metric == domain.MetricDistance {
		m = domain.Matrix(tr.Distances)
	}

	if err := m.Validate(len(points)); err != nil {
		return nil, fmt.Errorf("osrm table: %v: %w", err, domain.ErrLookupFailed)
	}

	return m, nil
}

func (o *OSRMProvider) FetchRouteMetrics(
	ctx context.Context,
	points []domain.Coordinates,
) (_ domain.RouteMetrics, err error) {
	defer obs.Time(ctx, "osrm.FetchRouteMetrics")(&err)

	if len(points) < 2 {
		return domain.RouteMetrics{}, fmt.Errorf("osrm route: %w", domain.ErrInsufficientPoints)
	}

	ctx, cancel := withTimeout(ctx, o.routeTimeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/route/v1/driving/%s", o.baseURL, coordPath(points))
	req, err := httpx.NewRequest(ctx, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		return domain.RouteMetrics{}, fmt.Errorf("osrm route: %w", err)
	}

	q := req.URL.Query()
	q.Set("overview", "full")
	q.Set("geometries", "geojson")
	req.URL.RawQuery = q.Encode()

	var rr osrmRouteResponse
	if err := httpx.DoJSON(o.session, req, &rr); err != nil {
		return domain.RouteMetrics{}, fmt.Errorf("osrm route: %w", err)
	}

	if rr.Code != "Ok" || len(rr.Routes) == 0 {
		return domain.RouteMetrics{}, fmt.Errorf("osrm route: code %q: %s: %w", rr.Code, rr.Message, domain.ErrLookupFailed)
	}

	route := rr.Routes[0]
	return domain.RouteMetrics{
		TotalDistanceKm:  route.Distance / 1000,
		TotalDurationMin: route.Duration / 60,
		Path:             geometryPath(route.Geometry.Coordinates),
		Available:        true,
	}, nil
}

// geometryPath converts GeoJSON [lon, lat] pairs, skipping malformed entries.
func geometryPath(coords [][]float64) []domain.Coordinates {
	out := make([]domain.Coordinates, 0, len(coords))
	for _, c := range coords {
		if len(c) < 2 {
			continue
		}
		out = append(out, domain.Coordinates{Lon: c[0], Lat: c[1]})
	}
	return out
}
