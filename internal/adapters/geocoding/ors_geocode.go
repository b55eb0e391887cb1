package geocoding

import (
	"context"
	"delivery-route-planner/internal/domain"
	"delivery-route-planner/internal/platform/httpx"
	"delivery-route-planner/internal/platform/obs"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const DefaultORSURL = "https://api.openrouteservice.org"

// ORSGeocoder implements ports.Geocoder using OpenRouteService (/geocode/search).
type ORSGeocoder struct {
	session *http.Client
	apiKey  string
	baseURL string
	country string
}

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// NewORSGeocoder builds a geocoder restricted to boundaryCountry (ISO alpha-2, e.g. "ES").
func NewORSGeocoder(apiKey, baseURL, boundaryCountry string, timeout time.Duration) (*ORSGeocoder, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}
	if baseURL == "" {
		baseURL = DefaultORSURL
	}

	return &ORSGeocoder{
		session: &http.Client{Timeout: timeout},
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		country: boundaryCountry,
	}, nil
}

func (o *ORSGeocoder) Geocode(ctx context.Context, query string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "ors.Geocode")(&err)

	norm := strings.Join(strings.Fields(query), " ")
	if norm == "" {
		return domain.Coordinates{}, fmt.Errorf("ors geocode: empty query: %w", domain.ErrNoResult)
	}

	req, err := httpx.NewRequest(ctx, http.MethodGet, o.baseURL+"/geocode/search", nil, map[string]string{
		"Authorization": o.apiKey,
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("ors geocode: %w", err)
	}

	q := req.URL.Query()
	q.Set("text", norm)
	if o.country != "" {
		q.Set("boundary.country", o.country)
	}
	q.Set("size", "1")
	req.URL.RawQuery = q.Encode()

	var decoded geocodeResponse
	if err := httpx.DoJSON(o.session, req, &decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("ors geocode %q: %w", norm, err)
	}

	if len(decoded.Features) == 0 {
		return domain.Coordinates{}, fmt.Errorf("ors geocode %q: %w", norm, domain.ErrNoResult)
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Coordinates{}, fmt.Errorf("ors geocode %q: invalid coordinate format: %w", norm, domain.ErrLookupFailed)
	}

	return domain.Coordinates{Lon: coords[0], Lat: coords[1]}, nil
}
