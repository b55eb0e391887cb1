package services

import (
	"delivery-route-planner/internal/domain"
	"fmt"
	"math"
)

// NearestNeighborOrder returns a visiting order over n points using a greedy
// nearest-neighbor walk that starts at index 0.
//
// At each step the unvisited point with the lowest cost from the current one is
// chosen; equal costs go to the lowest index. This is an O(n^2) approximation
// suited to a day's list of tens of stops, not a TSP solver: it makes no attempt
// at global optimality.
func NearestNeighborOrder(n int, cost func(from, to int) float64) ([]int, error) {
	if n < 2 {
		return nil, fmt.Errorf("nearest neighbor: %d point(s): %w", n, domain.ErrInsufficientPoints)
	}

	order := make([]int, 0, n)
	order = append(order, 0)
	visited := make([]bool, n)
	visited[0] = true

	for len(order) < n {
		last := order[len(order)-1]
		best := -1
		bestCost := math.Inf(1)

		for i := 0; i < n; i++ {
			if visited[i] {
				continue
			}
			c := cost(last, i)
			// Strict comparison keeps the lowest index on ties; an all-unreachable
			// row still takes the first unvisited point.
			if best == -1 || c < bestCost {
				best = i
				bestCost = c
			}
		}

		order = append(order, best)
		visited[best] = true
	}

	return order, nil
}

// SequenceStops orders resolved stops with NearestNeighborOrder.
//
// With a matrix the cost is matrix[last][candidate] (missing cells are
// unreachable); without one it is the great-circle distance in kilometers.
// The first stop is the fixed anchor of the route.
func SequenceStops(stops []domain.ResolvedStop, matrix domain.Matrix) (domain.RouteSequence, error) {
	useMatrix := matrix != nil
	if useMatrix {
		if err := matrix.Validate(len(stops)); err != nil {
			return domain.RouteSequence{}, fmt.Errorf("sequence stops: %w", err)
		}
	}

	cost := func(from, to int) float64 {
		if useMatrix {
			return matrix.Cost(from, to)
		}
		return domain.HaversineKm(stops[from].Coordinates, stops[to].Coordinates)
	}

	order, err := NearestNeighborOrder(len(stops), cost)
	if err != nil {
		return domain.RouteSequence{}, fmt.Errorf("sequence stops: %w", err)
	}

	seq := domain.RouteSequence{
		Stops:            make([]domain.ResolvedStop, 0, len(order)),
		Order:            order,
		UsedTrafficModel: useMatrix,
	}
	for _, i := range order {
		seq.Stops = append(seq.Stops, stops[i])
	}

	return seq, nil
}

// GeodesicMatrix builds the great-circle fallback as an explicit matrix.
func GeodesicMatrix(points []domain.Coordinates) domain.Matrix {
	values := make([][]float64, len(points))
	for i := range points {
		values[i] = make([]float64, len(points))
		for j := range points {
			values[i][j] = domain.HaversineKm(points[i], points[j])
		}
	}
	return domain.NewMatrix(values)
}

// StraightLineKm sums great-circle legs along points.
func StraightLineKm(points []domain.Coordinates) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += domain.HaversineKm(points[i-1], points[i])
	}
	return total
}
