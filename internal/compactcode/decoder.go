// Package compactcode decodes Open Location Codes ("plus codes") as typed by
// dispatchers: either a full global code or a short code followed by a place name.
package compactcode

import (
	"context"
	"delivery-route-planner/internal/domain"
	"delivery-route-planner/internal/ports"
	"errors"
	"fmt"
	"strings"
	"unicode"

	olc "github.com/google/open-location-code/go"
)

const separator = "+"

// AnchorLookup resolves a place name against offline reference data.
type AnchorLookup interface {
	Lookup(freeText string) (domain.ReferencePoint, bool)
}

// Decoded is a successfully decoded compact code.
type Decoded struct {
	Coordinates domain.Coordinates
	Tier        domain.ResolutionTier
	Anchor      string
}

// Decoder turns raw compact codes into area centers.
//
// Local codes are anchored first against Anchors and only then, if Online is
// set, against the geocoding service with "<place>, <Region>, <Country>".
type Decoder struct {
	Anchors AnchorLookup
	Online  ports.Geocoder
	Region  string
	Country string
}

// Decode classifies raw as a global or local code and decodes it.
// Failures wrap domain.ErrMalformedCode or domain.ErrNoAnchor.
func (d *Decoder) Decode(ctx context.Context, raw string) (Decoded, error) {
	code := strings.TrimSpace(raw)

	if isGlobal(code) {
		c, err := center(code)
		if err != nil {
			return Decoded{}, err
		}
		return Decoded{Coordinates: c, Tier: domain.TierCompactGlobal}, nil
	}

	i := strings.IndexFunc(code, unicode.IsSpace)
	if i < 0 {
		return Decoded{}, fmt.Errorf("decode %q: %w", code, domain.ErrMalformedCode)
	}

	short := strings.ToUpper(code[:i])
	place := strings.TrimSpace(code[i:])

	ref, tier, err := d.anchor(ctx, place)
	if err != nil {
		return Decoded{}, fmt.Errorf("decode %q: %w", code, err)
	}

	full, err := olc.RecoverNearest(short, ref.Lat, ref.Lon)
	if err != nil {
		return Decoded{}, fmt.Errorf("decode %q: recover near %s: %w: %v", code, ref.Name, domain.ErrMalformedCode, err)
	}

	c, err := center(full)
	if err != nil {
		return Decoded{}, err
	}

	return Decoded{Coordinates: c, Tier: tier, Anchor: ref.Name}, nil
}

// anchor finds the reference coordinate for the place part of a local code.
func (d *Decoder) anchor(ctx context.Context, place string) (domain.ReferencePoint, domain.ResolutionTier, error) {
	if d.Anchors != nil {
		if ref, ok := d.Anchors.Lookup(strings.ToUpper(place)); ok {
			return ref, domain.TierCompactLocalGazetteer, nil
		}
	}

	if d.Online == nil {
		return domain.ReferencePoint{}, domain.TierUnresolved, fmt.Errorf("anchor %q: not in gazetteer: %w", place, domain.ErrNoAnchor)
	}

	query := d.onlineQuery(place)
	c, err := d.Online.Geocode(ctx, query)
	if err != nil {
		return domain.ReferencePoint{}, domain.TierUnresolved, fmt.Errorf("anchor %q: %w", place, errors.Join(domain.ErrNoAnchor, err))
	}

	return domain.ReferencePoint{Name: query, Coordinates: c}, domain.TierCompactLocalOnline, nil
}

func (d *Decoder) onlineQuery(place string) string {
	parts := []string{place}
	for _, p := range []string{d.Region, d.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// isGlobal: separator present, at least four characters before it, no whitespace.
func isGlobal(code string) bool {
	i := strings.Index(code, separator)
	if i < 4 {
		return false
	}
	return strings.IndexFunc(code, unicode.IsSpace) < 0
}

func center(full string) (domain.Coordinates, error) {
	area, err := olc.Decode(strings.ToUpper(full))
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("decode %q: %w: %v", full, domain.ErrMalformedCode, err)
	}
	lat, lng := area.Center()
	return domain.Coordinates{Lat: lat, Lon: lng}, nil
}
