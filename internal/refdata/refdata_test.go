package refdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTables(t *testing.T) {
	tables, err := Default()
	require.NoError(t, err)

	assert.Greater(t, tables.Gazetteer.Len(), 50)
	assert.Len(t, tables.Whitelist.Entries(), 5)

	// Accented and unaccented spellings must map to the same coordinate.
	byName := map[string]GazetteerEntry{}
	for _, e := range tables.Gazetteer.Entries() {
		byName[e.Name] = e
	}
	pairs := [][2]string{
		{"MONZON", "MONZÓN"},
		{"CARIÑENA", "CARINENA"},
		{"ALCAÑIZ", "ALCANIZ"},
		{"SABIÑANIGO", "SABINANIGO"},
	}
	for _, p := range pairs {
		a, okA := byName[p[0]]
		b, okB := byName[p[1]]
		require.True(t, okA, p[0])
		require.True(t, okB, p[1])
		assert.Equal(t, a.Lat, b.Lat, p[0])
		assert.Equal(t, a.Lon, b.Lon, p[0])
	}
}

func TestGazetteerLookup(t *testing.T) {
	g := NewGazetteer([]GazetteerEntry{
		{Name: "CUARTE", Lat: 1, Lon: 1},
		{Name: "CUARTE DE HUERVA", Lat: 2, Lon: 2},
		{Name: "MONZON", Lat: 41.9125, Lon: 0.1936},
		{Name: "CARIÑENA", Lat: 41.3383, Lon: -1.2242},
	})

	tests := []struct {
		name  string
		input string
		want  string
		found bool
	}{
		{"accented input, unaccented key", "Monzón", "MONZON", true},
		{"lowercase with padding", "  monzon centro ", "MONZON", true},
		{"accented key, accented input", "Cariñena", "CARIÑENA", true},
		{"accented key, unaccented input", "CARINENA", "CARIÑENA", true},
		{"table order wins over longer token", "Cuarte de Huerva", "CUARTE", true},
		{"no match", "Madrid", "", false},
		{"empty", "", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ref, ok := g.Lookup(tc.input)
			assert.Equal(t, tc.found, ok)
			assert.Equal(t, tc.want, ref.Name)
		})
	}

	ref, ok := g.Lookup("W624 MONZÓN")
	require.True(t, ok)
	assert.Equal(t, 41.9125, ref.Lat)
	assert.Equal(t, 0.1936, ref.Lon)
}

func TestNilTablesAreEmpty(t *testing.T) {
	var g *Gazetteer
	_, ok := g.Lookup("ZARAGOZA")
	assert.False(t, ok)
	assert.Zero(t, g.Len())

	var w *Whitelist
	_, ok = w.Match("MERCAZARAGOZA")
	assert.False(t, ok)
}

func TestWhitelistMatch(t *testing.T) {
	w := NewWhitelist([]WhitelistEntry{
		{Label: "MERCAZARAGOZA", Code: "8FBRMJWC+55"},
		{Label: "Coferdroza", Code: "8FBRV6PP+WR"},
	})

	e, ok := w.Match("Pedido mercazaragoza nave 3")
	require.True(t, ok)
	assert.Equal(t, "8FBRMJWC+55", e.Code)

	e, ok = w.Match("COFERDROZA S.A.")
	require.True(t, ok)
	assert.Equal(t, "8FBRV6PP+WR", e.Code)

	_, ok = w.Match("Panadería López")
	assert.False(t, ok)

	_, ok = w.Match("   ")
	assert.False(t, ok)
}

func TestParseValidation(t *testing.T) {
	_, err := Parse([]byte("gazetteer:\n  - {name: \"\", lat: 1, lon: 1}\n"))
	assert.ErrorContains(t, err, "name cannot be empty")

	_, err = Parse([]byte("gazetteer:\n  - {name: X, lat: 95, lon: 1}\n"))
	assert.ErrorContains(t, err, "out of range")

	_, err = Parse([]byte("whitelist:\n  - {label: ACME, code: \"\"}\n"))
	assert.ErrorContains(t, err, "code cannot be empty")

	_, err = Parse([]byte("unknown: 1\n"))
	assert.Error(t, err)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refs.yaml")
	doc := "gazetteer:\n  - {name: TERUEL, lat: 40.3456, lon: -1.1065}\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	tables, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, tables.Gazetteer.Len())
	assert.Empty(t, tables.Whitelist.Entries())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	tables, err = Load("")
	require.NoError(t, err)
	assert.Greater(t, tables.Gazetteer.Len(), 1)
}
