package geocoding

import (
	"context"
	"delivery-route-planner/internal/domain"
	"fmt"
	"sync"
)

// MockGeocoder answers from a fixed table and counts calls.
// Queries missing from the table yield domain.ErrNoResult, or Err when set.
type MockGeocoder struct {
	mu      sync.Mutex
	results map[string]domain.Coordinates
	queries []string

	Err error
}

func NewMockGeocoder(results map[string]domain.Coordinates) *MockGeocoder {
	m := make(map[string]domain.Coordinates, len(results))
	for k, v := range results {
		m[k] = v
	}
	return &MockGeocoder{results: m}
}

func (g *MockGeocoder) Geocode(ctx context.Context, query string) (domain.Coordinates, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.queries = append(g.queries, query)

	if c, ok := g.results[query]; ok {
		return c, nil
	}
	if g.Err != nil {
		return domain.Coordinates{}, g.Err
	}
	return domain.Coordinates{}, fmt.Errorf("mock geocode %q: %w", query, domain.ErrNoResult)
}

// Calls returns how many lookups were made.
func (g *MockGeocoder) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.queries)
}

// Queries returns the lookups in call order.
func (g *MockGeocoder) Queries() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.queries...)
}
