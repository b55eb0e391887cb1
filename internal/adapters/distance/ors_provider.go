package distance

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

const DefaultORSURL = "https://api.openrouteservice.org"

// ORSProvider implements DistanceMatrixProvider and RouteMetricsProvider using
// OpenRouteService (/v2/matrix and /v2/directions).
//
// Requests are made once; there is no retry or backoff. The provider is safe
// for concurrent use.
type ORSProvider struct {
	session       *http.Client
	apiKey        string
	baseURL       string
	profile       string
	matrixTimeout time.Duration
	routeTimeout  time.Duration
}

func NewORSProvider(apiKey, baseURL string, matrixTimeout, routeTimeout time.Duration) (*ORSProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}
	if baseURL == "" {
		baseURL = DefaultORSURL
	}

	provider := &ORSProvider{
		session:       &http.Client{},
		apiKey:        apiKey,
		baseURL:       strings.TrimRight(baseURL, "/"),
		profile:       "driving-car",
		matrixTimeout: matrixTimeout,
		routeTimeout:  routeTimeout,
	}

	return provider, nil
}

func (o *ORSProvider) headers() map[string]string {
	return map[string]string{"Authorization": o.apiKey}
}
