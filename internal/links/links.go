// Package links builds the shareable URLs handed to the driver.
package links

import (
	"delivery-route-planner/internal/domain"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	googleMapsDirBase = "https://www.google.com/maps/dir/"
	whatsAppBase      = "https://wa.me/?text="
)

// GoogleMapsDirections returns a multi-stop directions link visiting points in order.
func GoogleMapsDirections(points []domain.Coordinates) string {
	var b strings.Builder
	b.WriteString(googleMapsDirBase)
	for _, p := range points {
		b.WriteString(strconv.FormatFloat(p.Lat, 'f', -1, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(p.Lon, 'f', -1, 64))
		b.WriteByte('/')
	}
	return b.String()
}

// WhatsAppShare returns a wa.me link that opens WhatsApp with text prefilled.
func WhatsAppShare(text string) string {
	return whatsAppBase + url.QueryEscape(text)
}

// RouteSummary is the message shared with the driver.
func RouteSummary(km float64, mapsURL string) string {
	return fmt.Sprintf("Ruta (%.1fkm): %s", km, mapsURL)
}
