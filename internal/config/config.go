// Package config reads process settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	GeocoderNominatim = "nominatim"
	GeocoderORS       = "ors"

	RoutingOSRM = "osrm"
	RoutingORS  = "ors"
)

type Config struct {
	Port string

	// Appended to address queries and used for online anchor lookups.
	Country string
	Region  string
	// ISO 3166-1 alpha-2, passed to the geocoders as a result filter.
	CountryCode string

	RefDataPath string

	Geocoder           string
	NominatimURL       string
	NominatimUserAgent string
	GeocodeMinInterval time.Duration
	GeocodeTimeout     time.Duration

	RoutingProvider string
	OSRMURL         string
	ORSAPIKey       string
	ORSURL          string
	MatrixTimeout   time.Duration
	RouteTimeout    time.Duration
}

// Load reads .env when present and then builds the Config from the process
// environment. Variables already set in the environment take precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, applying defaults for unset keys.
func FromEnv(getenv func(string) string) (*Config, error) {
	e := env{getenv: getenv}

	cfg := &Config{
		Port:               e.str("PORT", "8080"),
		Country:            e.str("COUNTRY", "España"),
		Region:             e.str("REGION", "Aragón"),
		CountryCode:        strings.ToUpper(e.str("COUNTRY_CODE", "ES")),
		RefDataPath:        e.str("REFDATA_PATH", ""),
		Geocoder:           strings.ToLower(e.str("GEOCODER", GeocoderNominatim)),
		NominatimURL:       e.str("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
		NominatimUserAgent: e.str("NOMINATIM_USER_AGENT", "delivery-route-planner/1.0"),
		GeocodeMinInterval: e.duration("GEOCODE_MIN_INTERVAL", time.Second),
		GeocodeTimeout:     e.duration("GEOCODE_TIMEOUT", 5*time.Second),
		RoutingProvider:    strings.ToLower(e.str("ROUTING_PROVIDER", RoutingOSRM)),
		OSRMURL:            e.str("OSRM_URL", "https://router.project-osrm.org"),
		ORSAPIKey:          e.str("ORS_API_KEY", ""),
		ORSURL:             e.str("ORS_URL", "https://api.openrouteservice.org"),
		MatrixTimeout:      e.duration("MATRIX_TIMEOUT", 4*time.Second),
		RouteTimeout:       e.duration("ROUTE_TIMEOUT", 15*time.Second),
	}

	if err := errors.Join(append(e.errs, cfg.validate())...); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error

	switch c.Geocoder {
	case GeocoderNominatim:
		if c.NominatimUserAgent == "" {
			errs = append(errs, errors.New("NOMINATIM_USER_AGENT is required"))
		}
	case GeocoderORS:
		if c.ORSAPIKey == "" {
			errs = append(errs, errors.New("ORS_API_KEY is required when GEOCODER=ors"))
		}
	default:
		errs = append(errs, fmt.Errorf("GEOCODER must be nominatim or ors, got %q", c.Geocoder))
	}

	switch c.RoutingProvider {
	case RoutingOSRM:
	case RoutingORS:
		if c.ORSAPIKey == "" {
			errs = append(errs, errors.New("ORS_API_KEY is required when ROUTING_PROVIDER=ors"))
		}
	default:
		errs = append(errs, fmt.Errorf("ROUTING_PROVIDER must be osrm or ors, got %q", c.RoutingProvider))
	}

	return errors.Join(errs...)
}

type env struct {
	getenv func(string) string
	errs   []error
}

func (e *env) str(key, fallback string) string {
	if v := strings.TrimSpace(e.getenv(key)); v != "" {
		return v
	}
	return fallback
}

func (e *env) duration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(e.getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		e.errs = append(e.errs, fmt.Errorf("%s: invalid duration %q", key, v))
		return fallback
	}
	return d
}
