package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// CellText accepts a JSON string, number or null, mirroring spreadsheet cells
// that may hold either.
type CellText string

func (c *CellText) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*c = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = CellText(s)
	default:
		if _, err := strconv.ParseFloat(string(b), 64); err != nil {
			return fmt.Errorf("cell must be a string or number, got %s", b)
		}
		*c = CellText(b)
	}
	return nil
}

type RecordRequest struct {
	Cliente        string   `json:"cliente"`
	LatitudManual  CellText `json:"latitud_manual"`
	LongitudManual CellText `json:"longitud_manual"`
	PlusCode       string   `json:"plus_code"`
	Direccion      string   `json:"direccion"`
}

type RouteRequest struct {
	Records     []RecordRequest `json:"records"`
	Metric      string          `json:"metric"`
	CostPerKm   float64         `json:"cost_per_km"`
	CostPerHour float64         `json:"cost_per_hour"`
}

type RouteStopResponse struct {
	Position int     `json:"position"`
	Label    string  `json:"label"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Tier     string  `json:"tier"`
	Anchor   string  `json:"anchor,omitempty"`
}

type UnresolvedResponse struct {
	Label string `json:"label"`
	Error string `json:"error"`
}

type CostResponse struct {
	FuelCost   float64 `json:"fuel_cost"`
	DriverCost float64 `json:"driver_cost"`
	Total      float64 `json:"total"`
}

type RouteResponse struct {
	Stops            []RouteStopResponse  `json:"stops"`
	Unresolved       []UnresolvedResponse `json:"unresolved"`
	UsedTrafficModel bool                 `json:"used_traffic_model"`
	MetricsAvailable bool                 `json:"metrics_available"`
	DistanceKm       float64              `json:"distance_km"`
	DurationMin      float64              `json:"duration_min"`
	Path             [][2]float64         `json:"path"`
	GoogleMapsURL    string               `json:"google_maps_url"`
	WhatsAppURL      string               `json:"whatsapp_url"`
	Cost             *CostResponse        `json:"cost"`
}
