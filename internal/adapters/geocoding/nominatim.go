package geocoding

import (
	"context"
	"delivery-route-planner/internal/domain"
	"delivery-route-planner/internal/platform/httpx"
	"delivery-route-planner/internal/platform/obs"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const DefaultNominatimURL = "https://nominatim.openstreetmap.org"

// NominatimGeocoder implements ports.Geocoder against an OpenStreetMap Nominatim
// instance. It performs a single attempt per query and keeps no cache.
type NominatimGeocoder struct {
	session      *http.Client
	baseURL      string
	userAgent    string
	countryCodes string
}

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// NewNominatimGeocoder requires a User-Agent, as mandated by the Nominatim usage policy.
// countryCodes (e.g. "es") optionally restricts results.
func NewNominatimGeocoder(baseURL, userAgent, countryCodes string, timeout time.Duration) (*NominatimGeocoder, error) {
	if strings.TrimSpace(userAgent) == "" {
		return nil, errors.New("nominatim user agent is empty")
	}
	if baseURL == "" {
		baseURL = DefaultNominatimURL
	}

	return &NominatimGeocoder{
		session:      &http.Client{Timeout: timeout},
		baseURL:      strings.TrimRight(baseURL, "/"),
		userAgent:    userAgent,
		countryCodes: countryCodes,
	}, nil
}

func (n *NominatimGeocoder) Geocode(ctx context.Context, query string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "nominatim.Geocode")(&err)

	query = strings.Join(strings.Fields(query), " ")
	if query == "" {
		return domain.Coordinates{}, fmt.Errorf("nominatim geocode: empty query: %w", domain.ErrNoResult)
	}

	req, err := httpx.NewRequest(ctx, http.MethodGet, n.baseURL+"/search", nil, map[string]string{
		"User-Agent": n.userAgent,
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("nominatim geocode: %w", err)
	}

	q := req.URL.Query()
	q.Set("q", query)
	q.Set("format", "jsonv2")
	q.Set("limit", "1")
	if n.countryCodes != "" {
		q.Set("countrycodes", n.countryCodes)
	}
	req.URL.RawQuery = q.Encode()

	var places []nominatimPlace
	if err := httpx.DoJSON(n.session, req, &places); err != nil {
		return domain.Coordinates{}, fmt.Errorf("nominatim geocode %q: %w", query, err)
	}

	if len(places) == 0 {
		return domain.Coordinates{}, fmt.Errorf("nominatim geocode %q: %w", query, domain.ErrNoResult)
	}

	lat, errLat := strconv.ParseFloat(places[0].Lat, 64)
	lon, errLon := strconv.ParseFloat(places[0].Lon, 64)
	if errLat != nil || errLon != nil {
		return domain.Coordinates{}, fmt.Errorf("nominatim geocode %q: invalid coordinate %q,%q: %w",
			query, places[0].Lat, places[0].Lon, domain.ErrLookupFailed)
	}

	return domain.Coordinates{Lat: lat, Lon: lon}, nil
}
