package refdata

import (
	"delivery-route-planner/internal/domain"
)

// GazetteerEntry maps a place-name token to its reference coordinate.
type GazetteerEntry struct {
	Name string  `yaml:"name" json:"name"`
	Lat  float64 `yaml:"lat" json:"lat"`
	Lon  float64 `yaml:"lon" json:"lon"`
}

// Gazetteer is an ordered, read-only table of regional place names.
//
// Lookups scan the table in order and return the first token contained in
// the input. Callers must not assume alphabetical or geographic ordering:
// "CUARTE" listed before "CUARTE DE HUERVA" wins for both inputs.
type Gazetteer struct {
	entries []GazetteerEntry
}

func NewGazetteer(entries []GazetteerEntry) *Gazetteer {
	cp := make([]GazetteerEntry, len(entries))
	copy(cp, entries)
	return &Gazetteer{entries: cp}
}

// Lookup returns the reference point of the first entry whose token appears in
// freeText. Matching ignores case, surrounding whitespace and diacritics.
func (g *Gazetteer) Lookup(freeText string) (domain.ReferencePoint, bool) {
	if g == nil {
		return domain.ReferencePoint{}, false
	}

	for _, e := range g.entries {
		if ContainsFold(freeText, e.Name) {
			return domain.ReferencePoint{
				Name:        e.Name,
				Coordinates: domain.Coordinates{Lat: e.Lat, Lon: e.Lon},
			}, true
		}
	}

	return domain.ReferencePoint{}, false
}

// Entries returns a copy of the table in lookup order.
func (g *Gazetteer) Entries() []GazetteerEntry {
	if g == nil {
		return nil
	}
	cp := make([]GazetteerEntry, len(g.entries))
	copy(cp, g.entries)
	return cp
}

func (g *Gazetteer) Len() int {
	if g == nil {
		return 0
	}
	return len(g.entries)
}
