package links

import (
	"delivery-route-planner/internal/domain"
	"net/url"
	"testing"
)

func TestGoogleMapsDirections(t *testing.T) {
	got := GoogleMapsDirections([]domain.Coordinates{
		{Lat: 41.65, Lon: -0.89},
		{Lat: 41.9001875, Lon: 0.2074375},
	})
	want := "https://www.google.com/maps/dir/41.65,-0.89/41.9001875,0.2074375/"
	if got != want {
		t.Fatalf("GoogleMapsDirections() = %q, want %q", got, want)
	}

	if got := GoogleMapsDirections(nil); got != googleMapsDirBase {
		t.Fatalf("empty route = %q", got)
	}
}

func TestWhatsAppShareRoundTrip(t *testing.T) {
	msg := RouteSummary(67.24, "https://www.google.com/maps/dir/41.65,-0.89/42.14,-0.41/")
	if msg != "Ruta (67.2km): https://www.google.com/maps/dir/41.65,-0.89/42.14,-0.41/" {
		t.Fatalf("RouteSummary() = %q", msg)
	}

	link := WhatsAppShare(msg)
	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("parse %q: %v", link, err)
	}
	if u.Host != "wa.me" {
		t.Fatalf("host = %q", u.Host)
	}
	if got := u.Query().Get("text"); got != msg {
		t.Fatalf("text = %q, want %q", got, msg)
	}
}
