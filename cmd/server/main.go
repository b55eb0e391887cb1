package main

import (
	"delivery-route-planner/internal/api"
	"delivery-route-planner/internal/app"
	"delivery-route-planner/internal/config"
	"log"
	"net/http"
	"time"
)

// main is the application composition root.
// It wires concrete adapters (Nominatim/ORS, OSRM/ORS) behind ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf(
		"reference data loaded gazetteer=%d whitelist=%d geocoder=%s routing=%s",
		a.Tables.Gazetteer.Len(), len(a.Tables.Whitelist.Entries()), cfg.Geocoder, cfg.RoutingProvider,
	)

	router := api.NewRouter(a.Planner, a.Tables)

	// Geocoding is throttled to one call per GEOCODE_MIN_INTERVAL, so a large
	// sheet of address-only rows can take minutes to plan.
	log.Printf("Server listening addr=:%s", cfg.Port)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
