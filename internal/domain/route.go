package domain

// RouteSequence is the visiting order of the resolved stops.
// Order[k] indexes the resolved stop list it was built from; Order[0] is always 0.
type RouteSequence struct {
	Stops            []ResolvedStop
	Order            []int
	UsedTrafficModel bool
}

// Points returns the stop coordinates in visiting order.
func (s RouteSequence) Points() []Coordinates {
	out := make([]Coordinates, 0, len(s.Stops))
	for _, st := range s.Stops {
		out = append(out, st.Coordinates)
	}
	return out
}

// RouteMetrics are best-effort road annotations for a fixed sequence.
// Available is false when the routing service could not be reached.
type RouteMetrics struct {
	TotalDistanceKm  float64
	TotalDurationMin float64
	Path             []Coordinates
	UsedTrafficModel bool
	Available        bool
}

// CostEstimate is the optional money figure attached to a plan.
type CostEstimate struct {
	FuelCost   float64
	DriverCost float64
	Total      float64
}

// Represents the planned delivery route for one dispatcher run.
// It is immutable planning data and contains no side effects.
type RoutePlan struct {
	Resolved   []ResolvedStop
	Sequence   RouteSequence
	Unresolved []string
	Metrics    RouteMetrics
	Cost       *CostEstimate
}
