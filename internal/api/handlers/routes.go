package handlers

import (
	"context"
	"delivery-route-planner/internal/api/dto"
	"delivery-route-planner/internal/domain"
	"delivery-route-planner/internal/links"
	"delivery-route-planner/internal/services"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
)

const maxRecords = 500

type RoutePlanner interface {
	Plan(ctx context.Context, req services.PlanRouteRequest) (*domain.RoutePlan, error)
}

type RouteHandler struct {
	Planner RoutePlanner
}

// Plan resolves the posted records, orders them and returns the route with its
// share links. Unresolvable stops are reported, not fatal.
func (h *RouteHandler) Plan(w http.ResponseWriter, r *http.Request) {
	var req dto.RouteRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if len(req.Records) == 0 {
		writeError(w, r, http.StatusBadRequest, "records are required")
		return
	}
	if len(req.Records) > maxRecords {
		writeError(w, r, http.StatusBadRequest, "too many records")
		return
	}

	metric, err := domain.ParseMetric(strings.TrimSpace(req.Metric))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if req.CostPerKm < 0 || req.CostPerHour < 0 {
		writeError(w, r, http.StatusBadRequest, "cost rates cannot be negative")
		return
	}

	records := make([]domain.StopRecord, 0, len(req.Records))
	for _, rec := range req.Records {
		records = append(records, domain.StopRecord{
			Label:           strings.TrimSpace(rec.Cliente),
			ManualLatitude:  string(rec.LatitudManual),
			ManualLongitude: string(rec.LongitudManual),
			CompactCode:     rec.PlusCode,
			Address:         rec.Direccion,
		})
	}

	plan, err := h.Planner.Plan(r.Context(), services.PlanRouteRequest{
		Records:     records,
		Metric:      metric,
		CostPerKm:   req.CostPerKm,
		CostPerHour: req.CostPerHour,
	})
	if errors.Is(err, domain.ErrInsufficientPoints) {
		writeError(w, r, http.StatusUnprocessableEntity, "insufficient points: at least two stops must resolve")
		return
	}
	if errors.Is(err, context.Canceled) {
		// Client went away; nothing useful to send.
		return
	}
	if err != nil {
		log.Printf("plan route failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, routeResponse(plan))
}

func routeResponse(plan *domain.RoutePlan) dto.RouteResponse {
	points := plan.Sequence.Points()

	res := dto.RouteResponse{
		Stops:            make([]dto.RouteStopResponse, 0, len(plan.Sequence.Stops)),
		Unresolved:       make([]dto.UnresolvedResponse, 0, len(plan.Unresolved)),
		UsedTrafficModel: plan.Sequence.UsedTrafficModel,
		MetricsAvailable: plan.Metrics.Available,
		DistanceKm:       plan.Metrics.TotalDistanceKm,
		DurationMin:      plan.Metrics.TotalDurationMin,
		Path:             make([][2]float64, 0, len(plan.Metrics.Path)),
	}

	for i, s := range plan.Sequence.Stops {
		res.Stops = append(res.Stops, dto.RouteStopResponse{
			Position: i + 1,
			Label:    s.Label,
			Lat:      s.Coordinates.Lat,
			Lon:      s.Coordinates.Lon,
			Tier:     s.Tier.String(),
			Anchor:   s.Anchor,
		})
	}

	for _, s := range plan.Resolved {
		if s.Resolved() {
			continue
		}
		msg := "unresolved"
		if s.Err != nil {
			msg = s.Err.Error()
		}
		res.Unresolved = append(res.Unresolved, dto.UnresolvedResponse{Label: s.Label, Error: msg})
	}

	for _, p := range plan.Metrics.Path {
		res.Path = append(res.Path, [2]float64{p.Lat, p.Lon})
	}

	km := plan.Metrics.TotalDistanceKm
	if !plan.Metrics.Available {
		km = services.StraightLineKm(points)
		res.DistanceKm = km
	}

	res.GoogleMapsURL = links.GoogleMapsDirections(points)
	res.WhatsAppURL = links.WhatsAppShare(links.RouteSummary(km, res.GoogleMapsURL))

	if plan.Cost != nil {
		res.Cost = &dto.CostResponse{
			FuelCost:   plan.Cost.FuelCost,
			DriverCost: plan.Cost.DriverCost,
			Total:      plan.Cost.Total,
		}
	}

	return res
}
