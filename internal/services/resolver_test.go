package services

import (
	"context"
	"delivery-route-planner/internal/adapters/geocoding"
	"delivery-route-planner/internal/compactcode"
	"delivery-route-planner/internal/domain"
	"delivery-route-planner/internal/refdata"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const delta = 1e-6

func newTestResolver(geo *geocoding.MockGeocoder, whitelist ...refdata.WhitelistEntry) *Resolver {
	gaz := refdata.NewGazetteer([]refdata.GazetteerEntry{
		{Name: "ZARAGOZA", Lat: 41.6488, Lon: -0.8891},
		{Name: "MONZON", Lat: 41.9125, Lon: 0.1936},
		{Name: "HUESCA", Lat: 42.1361, Lon: -0.4087},
	})
	return &Resolver{
		Whitelist: refdata.NewWhitelist(whitelist),
		Decoder: &compactcode.Decoder{
			Anchors: gaz,
			Online:  geo,
			Region:  "Aragón",
			Country: "España",
		},
		Geocoder: geo,
		Country:  "España",
	}
}

func TestResolveManualWinsOverOtherFields(t *testing.T) {
	geo := geocoding.NewMockGeocoder(map[string]domain.Coordinates{
		"Calle Alfonso I, Zaragoza, España": {Lat: 1, Lon: 1},
	})
	r := newTestResolver(geo)

	cases := []struct {
		lat, lon string
		want     domain.Coordinates
	}{
		{"41.65", "-0.89", domain.Coordinates{Lat: 41.65, Lon: -0.89}},
		{" 41.65 ", "-0.89", domain.Coordinates{Lat: 41.65, Lon: -0.89}},
		{"41,65", "-0,89", domain.Coordinates{Lat: 41.65, Lon: -0.89}},
		{"42.1361", "-0.4087", domain.Coordinates{Lat: 42.1361, Lon: -0.4087}},
	}

	for _, tc := range cases {
		got := r.Resolve(context.Background(), domain.StopRecord{
			Label:           "Bar Central",
			ManualLatitude:  tc.lat,
			ManualLongitude: tc.lon,
			CompactCode:     "W624+3X Monzón",
			Address:         "Calle Alfonso I, Zaragoza",
		})
		require.Equal(t, domain.TierManual, got.Tier, "lat=%q lon=%q", tc.lat, tc.lon)
		assert.Equal(t, tc.want, got.Coordinates)
		assert.NoError(t, got.Err)
	}

	assert.Zero(t, geo.Calls())
}

func TestResolveManualInvalidFallsThrough(t *testing.T) {
	geo := geocoding.NewMockGeocoder(nil)
	r := newTestResolver(geo)

	for _, m := range [][2]string{{"abc", "-0.89"}, {"41.65", ""}, {"", ""}, {"95", "0"}, {"NaN", "1"}} {
		got := r.Resolve(context.Background(), domain.StopRecord{
			Label:           "Ferretería",
			ManualLatitude:  m[0],
			ManualLongitude: m[1],
			CompactCode:     "W624+3X Monzón",
		})
		require.Equal(t, domain.TierCompactLocalGazetteer, got.Tier, "manual=%v", m)
		assert.Equal(t, "MONZON", got.Anchor)
	}
}

func TestResolveWhitelist(t *testing.T) {
	geo := geocoding.NewMockGeocoder(nil)
	r := newTestResolver(geo, refdata.WhitelistEntry{Label: "Almacenes Monzón", Code: "8FH2W624+3X"})

	got := r.Resolve(context.Background(), domain.StopRecord{
		Label:           "ALMACENES MONZÓN S.L.",
		ManualLatitude:  "41.0",
		ManualLongitude: "-1.0",
	})

	require.Equal(t, domain.TierWhitelist, got.Tier)
	assert.InDelta(t, 41.9001875, got.Coordinates.Lat, delta)
	assert.InDelta(t, 0.2074375, got.Coordinates.Lon, delta)
	assert.Zero(t, geo.Calls())
}

func TestResolveWhitelistDecodeFailureFallsThrough(t *testing.T) {
	geo := geocoding.NewMockGeocoder(nil)
	// 'B' is not part of the plus code alphabet, so this entry can never decode.
	r := newTestResolver(geo, refdata.WhitelistEntry{Label: "MERCAZARAGOZA", Code: "8FBRMJWC+55"})

	got := r.Resolve(context.Background(), domain.StopRecord{
		Label:           "Mercazaragoza nave 12",
		ManualLatitude:  "41.65",
		ManualLongitude: "-0.89",
	})

	require.Equal(t, domain.TierManual, got.Tier)
	assert.Equal(t, domain.Coordinates{Lat: 41.65, Lon: -0.89}, got.Coordinates)

	got = r.Resolve(context.Background(), domain.StopRecord{Label: "Mercazaragoza nave 12"})
	require.Equal(t, domain.TierUnresolved, got.Tier)
	assert.ErrorIs(t, got.Err, domain.ErrUnresolved)
	assert.ErrorIs(t, got.Err, domain.ErrMalformedCode)
}

func TestResolveCompactCodeTiers(t *testing.T) {
	geo := geocoding.NewMockGeocoder(map[string]domain.Coordinates{
		"Binaced, Aragón, España": {Lat: 41.83, Lon: 0.20},
	})
	r := newTestResolver(geo)

	got := r.Resolve(context.Background(), domain.StopRecord{Label: "A", CompactCode: "8FH2W624+3X"})
	assert.Equal(t, domain.TierCompactGlobal, got.Tier)

	got = r.Resolve(context.Background(), domain.StopRecord{Label: "B", CompactCode: "W624+3X Monzón"})
	assert.Equal(t, domain.TierCompactLocalGazetteer, got.Tier)
	assert.Zero(t, geo.Calls())

	got = r.Resolve(context.Background(), domain.StopRecord{Label: "C", CompactCode: "W624+3X Binaced"})
	assert.Equal(t, domain.TierCompactLocalOnline, got.Tier)
	assert.Equal(t, 1, geo.Calls())
}

func TestResolveAddress(t *testing.T) {
	geo := geocoding.NewMockGeocoder(map[string]domain.Coordinates{
		"Calle Mayor 3, Utebo, España": {Lat: 41.71, Lon: -0.99},
		"Avenida Navarra 1, Espana":    {Lat: 41.66, Lon: -0.91},
		"Plaza España 1, Huesca":       {Lat: 42.13, Lon: -0.41},
	})
	r := newTestResolver(geo)

	got := r.Resolve(context.Background(), domain.StopRecord{Label: "A", Address: "Calle Mayor 3, Utebo"})
	require.Equal(t, domain.TierAddress, got.Tier)
	assert.Equal(t, domain.Coordinates{Lat: 41.71, Lon: -0.99}, got.Coordinates)

	got = r.Resolve(context.Background(), domain.StopRecord{Label: "B", Address: "Avenida Navarra 1, Espana"})
	require.Equal(t, domain.TierAddress, got.Tier)

	got = r.Resolve(context.Background(), domain.StopRecord{Label: "C", Address: "Plaza España 1, Huesca"})
	require.Equal(t, domain.TierAddress, got.Tier)

	assert.Equal(t, []string{
		"Calle Mayor 3, Utebo, España",
		"Avenida Navarra 1, Espana",
		"Plaza España 1, Huesca",
	}, geo.Queries())
}

func TestResolveUnresolved(t *testing.T) {
	geo := geocoding.NewMockGeocoder(nil)
	geo.Err = domain.ErrLookupFailed
	r := newTestResolver(geo)

	got := r.Resolve(context.Background(), domain.StopRecord{Label: "  Nowhere  ", Address: "Calle Falsa 123"})
	assert.Equal(t, "Nowhere", got.Label)
	assert.Equal(t, domain.TierUnresolved, got.Tier)
	assert.False(t, got.Resolved())
	assert.ErrorIs(t, got.Err, domain.ErrUnresolved)
	assert.ErrorIs(t, got.Err, domain.ErrLookupFailed)

	got = r.Resolve(context.Background(), domain.StopRecord{Label: "Empty"})
	assert.Equal(t, domain.TierUnresolved, got.Tier)
	assert.ErrorIs(t, got.Err, domain.ErrUnresolved)
}

func TestResolveAllKeepsInputOrder(t *testing.T) {
	r := newTestResolver(geocoding.NewMockGeocoder(nil))

	records := []domain.StopRecord{
		{Label: "first", ManualLatitude: "41.1", ManualLongitude: "-1.1"},
		{Label: "second"},
		{Label: "third", CompactCode: "8FH2W624+3X"},
	}

	var progress []int
	stops, err := r.ResolveAll(context.Background(), records, func(done int, _ domain.ResolvedStop) {
		progress = append(progress, done)
	})
	require.NoError(t, err)

	require.Len(t, stops, 3)
	assert.Equal(t, "first", stops[0].Label)
	assert.Equal(t, domain.TierUnresolved, stops[1].Tier)
	assert.Equal(t, domain.TierCompactGlobal, stops[2].Tier)
	assert.Equal(t, []int{1, 2, 3}, progress)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.ResolveAll(ctx, records, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
