package domain

import (
	"fmt"
	"strings"
)

// StopRecord is one row of the dispatcher's spreadsheet.
// Manual coordinates are kept as the raw cell text; parsing belongs to the resolver.
type StopRecord struct {
	Label           string
	ManualLatitude  string
	ManualLongitude string
	CompactCode     string
	Address         string
}

// ReferencePoint anchors a local compact code. It is never a stop itself.
type ReferencePoint struct {
	Name string
	Coordinates
}

// ResolutionTier records how a stop obtained its coordinates.
type ResolutionTier int

const (
	TierUnresolved ResolutionTier = iota
	TierWhitelist
	TierManual
	TierCompactGlobal
	TierCompactLocalGazetteer
	TierCompactLocalOnline
	TierAddress
)

var tierNames = map[ResolutionTier]string{
	TierUnresolved:            "unresolved",
	TierWhitelist:             "whitelist",
	TierManual:                "manual",
	TierCompactGlobal:         "compact_global",
	TierCompactLocalGazetteer: "compact_local_gazetteer",
	TierCompactLocalOnline:    "compact_local_online",
	TierAddress:               "address",
}

func (t ResolutionTier) String() string {
	if s, ok := tierNames[t]; ok {
		return s
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// Online reports whether the tier needed a call to the geocoding service.
func (t ResolutionTier) Online() bool {
	return t == TierCompactLocalOnline || t == TierAddress
}

func (t ResolutionTier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *ResolutionTier) UnmarshalText(b []byte) error {
	s := strings.TrimSpace(string(b))
	for tier, name := range tierNames {
		if name == s {
			*t = tier
			return nil
		}
	}
	return fmt.Errorf("unknown resolution tier %q", s)
}

// ResolvedStop is the outcome of resolving a single StopRecord.
// Coordinates are meaningful only when Tier is not TierUnresolved.
type ResolvedStop struct {
	Label       string
	Coordinates Coordinates
	Tier        ResolutionTier
	// Gazetteer token or online query that anchored a local compact code.
	Anchor string
	// Last tier failure for unresolved stops.
	Err error
}

func (s ResolvedStop) Resolved() bool { return s.Tier != TierUnresolved }
