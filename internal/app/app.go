// Package app assembles the planner from configuration. It is shared by the
// HTTP server and the command-line tool.
package app

import (
	"delivery-route-planner/internal/adapters/distance"
	"delivery-route-planner/internal/adapters/geocoding"
	"delivery-route-planner/internal/compactcode"
	"delivery-route-planner/internal/config"
	"delivery-route-planner/internal/ports"
	"delivery-route-planner/internal/refdata"
	"delivery-route-planner/internal/services"
	"fmt"
	"strings"
)

type App struct {
	Tables   *refdata.Tables
	Decoder  *compactcode.Decoder
	Resolver *services.Resolver
	Planner  *services.Planner
}

// New wires concrete adapters behind ports. Only the geocoder is throttled;
// the routing provider is called at most twice per plan.
func New(cfg *config.Config) (*App, error) {
	tables, err := refdata.Load(cfg.RefDataPath)
	if err != nil {
		return nil, fmt.Errorf("build app: %w", err)
	}

	geo, err := newGeocoder(cfg)
	if err != nil {
		return nil, fmt.Errorf("build app: %w", err)
	}
	throttled := geocoding.NewThrottled(geo, cfg.GeocodeMinInterval)

	matrix, metrics, err := newRouting(cfg)
	if err != nil {
		return nil, fmt.Errorf("build app: %w", err)
	}

	decoder := &compactcode.Decoder{
		Anchors: tables.Gazetteer,
		Online:  throttled,
		Region:  cfg.Region,
		Country: cfg.Country,
	}
	resolver := &services.Resolver{
		Whitelist: tables.Whitelist,
		Decoder:   decoder,
		Geocoder:  throttled,
		Country:   cfg.Country,
	}

	return &App{
		Tables:   tables,
		Decoder:  decoder,
		Resolver: resolver,
		Planner: &services.Planner{
			Resolver: resolver,
			Matrix:   matrix,
			Metrics:  metrics,
		},
	}, nil
}

func newGeocoder(cfg *config.Config) (ports.Geocoder, error) {
	switch cfg.Geocoder {
	case config.GeocoderORS:
		return geocoding.NewORSGeocoder(cfg.ORSAPIKey, cfg.ORSURL, cfg.CountryCode, cfg.GeocodeTimeout)
	default:
		return geocoding.NewNominatimGeocoder(
			cfg.NominatimURL,
			cfg.NominatimUserAgent,
			strings.ToLower(cfg.CountryCode),
			cfg.GeocodeTimeout,
		)
	}
}

func newRouting(cfg *config.Config) (ports.DistanceMatrixProvider, ports.RouteMetricsProvider, error) {
	switch cfg.RoutingProvider {
	case config.RoutingORS:
		p, err := distance.NewORSProvider(cfg.ORSAPIKey, cfg.ORSURL, cfg.MatrixTimeout, cfg.RouteTimeout)
		if err != nil {
			return nil, nil, err
		}
		return p, p, nil
	default:
		p := distance.NewOSRMProvider(cfg.OSRMURL, cfg.MatrixTimeout, cfg.RouteTimeout)
		return p, p, nil
	}
}
