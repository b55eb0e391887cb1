package services

import (
	"context"
	"delivery-route-planner/internal/compactcode"
	"delivery-route-planner/internal/domain"
	"delivery-route-planner/internal/platform/obs"
	"delivery-route-planner/internal/ports"
	"delivery-route-planner/internal/refdata"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
)

// Resolver turns spreadsheet records into coordinates using a strict tier order:
// whitelist, manual coordinates, compact code, free-text address.
//
// A whitelisted label whose code fails to decode falls through to the remaining
// tiers so a stale whitelist entry cannot strand an otherwise resolvable record.
type Resolver struct {
	Whitelist *refdata.Whitelist
	Decoder   *compactcode.Decoder
	Geocoder  ports.Geocoder
	// Appended to addresses that do not already mention it.
	Country string
}

// Resolve runs the tiers for a single record and never fails; a record with no
// successful tier comes back as TierUnresolved with the last failure in Err.
func (r *Resolver) Resolve(ctx context.Context, rec domain.StopRecord) domain.ResolvedStop {
	label := strings.TrimSpace(rec.Label)
	out := domain.ResolvedStop{Label: label, Tier: domain.TierUnresolved}
	var lastErr error

	if e, ok := r.Whitelist.Match(label); ok && r.Decoder != nil {
		d, err := r.Decoder.Decode(ctx, e.Code)
		if err == nil {
			out.Coordinates = d.Coordinates
			out.Tier = domain.TierWhitelist
			out.Anchor = d.Anchor
			return out
		}
		log.Printf("resolve: label=%q whitelist code=%s failed, falling through: %v", label, e.Code, err)
		lastErr = fmt.Errorf("whitelist %s: %w", e.Code, err)
	}

	if c, ok := parseManual(rec.ManualLatitude, rec.ManualLongitude); ok {
		out.Coordinates = c
		out.Tier = domain.TierManual
		return out
	}

	if code := strings.TrimSpace(rec.CompactCode); code != "" && r.Decoder != nil {
		d, err := r.Decoder.Decode(ctx, code)
		if err == nil {
			out.Coordinates = d.Coordinates
			out.Tier = d.Tier
			out.Anchor = d.Anchor
			return out
		}
		lastErr = fmt.Errorf("compact code: %w", err)
	}

	if addr := strings.TrimSpace(rec.Address); addr != "" && r.Geocoder != nil {
		query := r.addressQuery(addr)
		c, err := r.Geocoder.Geocode(ctx, query)
		if err == nil {
			out.Coordinates = c
			out.Tier = domain.TierAddress
			out.Anchor = query
			return out
		}
		lastErr = fmt.Errorf("address %q: %w", query, err)
	}

	if lastErr == nil {
		lastErr = domain.ErrUnresolved
	} else {
		lastErr = errors.Join(domain.ErrUnresolved, lastErr)
	}
	out.Err = lastErr
	return out
}

// ResolveAll resolves records strictly in input order. onProgress, when set, is
// called after every record with the number done so far.
func (r *Resolver) ResolveAll(
	ctx context.Context,
	records []domain.StopRecord,
	onProgress func(done int, stop domain.ResolvedStop),
) (_ []domain.ResolvedStop, err error) {
	defer obs.Time(ctx, "resolver.ResolveAll")(&err)

	out := make([]domain.ResolvedStop, 0, len(records))
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("resolve records: aborted at record %d: %w", i+1, err)
		}

		stop := r.Resolve(ctx, rec)
		out = append(out, stop)

		if onProgress != nil {
			onProgress(i+1, stop)
		}
	}

	return out, nil
}

func (r *Resolver) addressQuery(addr string) string {
	country := strings.TrimSpace(r.Country)
	if country == "" || refdata.ContainsFold(addr, country) {
		return addr
	}
	return addr + ", " + country
}

// parseManual accepts a decimal point or a decimal comma. Blank, unparsable or
// out of range values count as absent.
func parseManual(latText, lonText string) (domain.Coordinates, bool) {
	lat, ok := parseFloat(latText)
	if !ok {
		return domain.Coordinates{}, false
	}
	lon, ok := parseFloat(lonText)
	if !ok {
		return domain.Coordinates{}, false
	}

	c := domain.Coordinates{Lat: lat, Lon: lon}
	if !c.Valid() {
		return domain.Coordinates{}, false
	}
	return c, true
}

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
