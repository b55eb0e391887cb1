package services

import "delivery-route-planner/internal/domain"

// EstimateCost prices a route at costPerKm for distance and costPerHour for
// driving time. It returns nil when both rates are zero.
//
// Without road metrics the distance falls back to straight-line legs and no
// driver time is charged, since there is no duration to price.
func EstimateCost(m domain.RouteMetrics, points []domain.Coordinates, costPerKm, costPerHour float64) *domain.CostEstimate {
	if costPerKm <= 0 && costPerHour <= 0 {
		return nil
	}

	km := m.TotalDistanceKm
	minutes := m.TotalDurationMin
	if !m.Available {
		km = StraightLineKm(points)
		minutes = 0
	}

	est := &domain.CostEstimate{}
	if costPerKm > 0 {
		est.FuelCost = km * costPerKm
	}
	if costPerHour > 0 {
		est.DriverCost = minutes / 60 * costPerHour
	}
	est.Total = est.FuelCost + est.DriverCost

	return est
}
