package refdata

import "strings"

// WhitelistEntry pins a known customer to a maintained compact code.
type WhitelistEntry struct {
	Label string `yaml:"label" json:"label"`
	Code  string `yaml:"code" json:"code"`
}

// Whitelist is an ordered table of label fragments; first match in table order wins.
type Whitelist struct {
	entries []WhitelistEntry
}

func NewWhitelist(entries []WhitelistEntry) *Whitelist {
	cp := make([]WhitelistEntry, len(entries))
	copy(cp, entries)
	return &Whitelist{entries: cp}
}

// Match returns the first entry whose label is contained, case-insensitively, in label.
func (w *Whitelist) Match(label string) (WhitelistEntry, bool) {
	if w == nil {
		return WhitelistEntry{}, false
	}

	l := strings.ToLower(strings.TrimSpace(label))
	if l == "" {
		return WhitelistEntry{}, false
	}

	for _, e := range w.entries {
		key := strings.ToLower(strings.TrimSpace(e.Label))
		if key != "" && strings.Contains(l, key) {
			return e, true
		}
	}

	return WhitelistEntry{}, false
}

// Entries returns a copy of the table in match order.
func (w *Whitelist) Entries() []WhitelistEntry {
	if w == nil {
		return nil
	}
	cp := make([]WhitelistEntry, len(w.entries))
	copy(cp, w.entries)
	return cp
}
