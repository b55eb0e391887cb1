package domain

import (
	"fmt"
	"math"
)

// Metric selects what a cost matrix measures.
type Metric string

const (
	MetricDuration Metric = "duration"
	MetricDistance Metric = "distance"
)

func ParseMetric(s string) (Metric, error) {
	switch Metric(s) {
	case "", MetricDuration:
		return MetricDuration, nil
	case MetricDistance:
		return MetricDistance, nil
	}
	return "", fmt.Errorf("unknown metric %q (want duration or distance)", s)
}

// Matrix holds pairwise travel costs indexed like the points it was fetched for.
// A nil cell means the service found no route for that pair.
type Matrix [][]*float64

// Cost returns the cost from i to j; missing cells are +Inf.
func (m Matrix) Cost(i, j int) float64 {
	if v := m[i][j]; v != nil {
		return *v
	}
	return math.Inf(1)
}

// Validate checks the matrix is n x n.
func (m Matrix) Validate(n int) error {
	if len(m) != n {
		return fmt.Errorf("matrix has %d rows, want %d", len(m), n)
	}
	for i, row := range m {
		if len(row) != n {
			return fmt.Errorf("matrix row %d has %d columns, want %d", i, len(row), n)
		}
	}
	return nil
}

// NewMatrix builds a Matrix from dense values, mostly for tests and fallbacks.
func NewMatrix(values [][]float64) Matrix {
	m := make(Matrix, len(values))
	for i, row := range values {
		m[i] = make([]*float64, len(row))
		for j := range row {
			v := row[j]
			m[i][j] = &v
		}
	}
	return m
}
