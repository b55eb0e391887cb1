package compactcode

import (
	"context"
	"delivery-route-planner/internal/adapters/geocoding"
	"delivery-route-planner/internal/domain"
	"delivery-route-planner/internal/refdata"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const delta = 1e-6

func testGazetteer() *refdata.Gazetteer {
	return refdata.NewGazetteer([]refdata.GazetteerEntry{
		{Name: "HUESCA", Lat: 42.1361, Lon: -0.4087},
		{Name: "MONZON", Lat: 41.9125, Lon: 0.1936},
	})
}

func TestDecodeGlobal(t *testing.T) {
	online := geocoding.NewMockGeocoder(nil)
	d := &Decoder{Anchors: testGazetteer(), Online: online, Region: "Aragón", Country: "España"}

	first, err := d.Decode(context.Background(), "8FH2W624+3X")
	require.NoError(t, err)
	assert.Equal(t, domain.TierCompactGlobal, first.Tier)
	assert.InDelta(t, 41.9001875, first.Coordinates.Lat, delta)
	assert.InDelta(t, 0.2074375, first.Coordinates.Lon, delta)

	// Anchor independent and deterministic.
	d2 := &Decoder{}
	for i := 0; i < 3; i++ {
		again, err := d2.Decode(context.Background(), "  8fh2w624+3x ")
		require.NoError(t, err)
		assert.Equal(t, first.Coordinates, again.Coordinates)
	}

	assert.Zero(t, online.Calls())
}

func TestDecodeLocalGazetteerAnchor(t *testing.T) {
	online := geocoding.NewMockGeocoder(nil)
	d := &Decoder{Anchors: testGazetteer(), Online: online, Region: "Aragón", Country: "España"}

	got, err := d.Decode(context.Background(), "W624+3X Monzón")
	require.NoError(t, err)

	assert.Equal(t, domain.TierCompactLocalGazetteer, got.Tier)
	assert.Equal(t, "MONZON", got.Anchor)
	assert.InDelta(t, 41.9001875, got.Coordinates.Lat, delta)
	assert.InDelta(t, 0.2074375, got.Coordinates.Lon, delta)
	assert.Zero(t, online.Calls(), "gazetteer anchors must not hit the geocoding service")

	got, err = d.Decode(context.Background(), "4HPR+CG Huesca capital")
	require.NoError(t, err)
	assert.Equal(t, "HUESCA", got.Anchor)
	assert.InDelta(t, 42.1360625, got.Coordinates.Lat, delta)
	assert.InDelta(t, -0.4086875, got.Coordinates.Lon, delta)
}

func TestDecodeLocalOnlineAnchor(t *testing.T) {
	online := geocoding.NewMockGeocoder(map[string]domain.Coordinates{
		"Polígono Paules, Aragón, España": {Lat: 41.91, Lon: 0.20},
	})
	d := &Decoder{Anchors: testGazetteer(), Online: online, Region: "Aragón", Country: "España"}

	got, err := d.Decode(context.Background(), "W624+3X Polígono Paules")
	require.NoError(t, err)

	assert.Equal(t, domain.TierCompactLocalOnline, got.Tier)
	assert.Equal(t, "Polígono Paules, Aragón, España", got.Anchor)
	assert.InDelta(t, 41.9001875, got.Coordinates.Lat, delta)
	assert.Equal(t, []string{"Polígono Paules, Aragón, España"}, online.Queries())
}

func TestDecodeFailures(t *testing.T) {
	online := geocoding.NewMockGeocoder(nil)
	d := &Decoder{Anchors: testGazetteer(), Online: online, Region: "Aragón", Country: "España"}

	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"empty", "", domain.ErrMalformedCode},
		{"no separator no space", "W6243X", domain.ErrMalformedCode},
		{"short code without place", "W624+3X", domain.ErrMalformedCode},
		{"invalid alphabet", "8FBRW624+3X", domain.ErrMalformedCode},
		{"prefix too short", "W62+3X", domain.ErrMalformedCode},
		{"unknown place", "W624+3X Atlantis", domain.ErrNoAnchor},
		{"garbage short code with known place", "ZZZZ+ZZ Monzón", domain.ErrMalformedCode},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := d.Decode(context.Background(), tc.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestDecodeNoAnchorWithoutOnline(t *testing.T) {
	d := &Decoder{Anchors: testGazetteer()}

	_, err := d.Decode(context.Background(), "W624+3X Atlantis")
	assert.ErrorIs(t, err, domain.ErrNoAnchor)
}

func TestDecodeOnlineFailureKeepsCause(t *testing.T) {
	online := geocoding.NewMockGeocoder(nil)
	online.Err = domain.ErrLookupFailed
	d := &Decoder{Online: online, Country: "España"}

	_, err := d.Decode(context.Background(), "W624+3X Atlantis")
	assert.ErrorIs(t, err, domain.ErrNoAnchor)
	assert.ErrorIs(t, err, domain.ErrLookupFailed)
	assert.Equal(t, []string{"Atlantis, España"}, online.Queries())
}
