package records

import (
	"delivery-route-planner/internal/domain"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

var exportHeader = []string{"Orden", "Cliente", "Latitud", "Longitud", "Metodo"}

// WriteCSV exports the visiting order of plan, one stop per row.
func WriteCSV(w io.Writer, plan *domain.RoutePlan) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("write route csv: %w", err)
	}

	for i, s := range plan.Sequence.Stops {
		row := []string{
			strconv.Itoa(i + 1),
			s.Label,
			strconv.FormatFloat(s.Coordinates.Lat, 'f', 6, 64),
			strconv.FormatFloat(s.Coordinates.Lon, 'f', 6, 64),
			s.Tier.String(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write route csv: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write route csv: %w", err)
	}
	return nil
}
