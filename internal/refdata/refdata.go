// Package refdata holds the immutable lookup tables used by stop resolution:
// the regional gazetteer and the customer whitelist.
//
// Tables are loaded once at startup and passed explicitly to the decoder and
// resolver. Nothing in this package keeps process-wide state.
package refdata

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed aragon.yaml
var defaultData []byte

// Tables bundles the gazetteer and whitelist loaded from one document.
type Tables struct {
	Gazetteer *Gazetteer
	Whitelist *Whitelist
}

type document struct {
	Gazetteer []GazetteerEntry `yaml:"gazetteer"`
	Whitelist []WhitelistEntry `yaml:"whitelist"`
}

// Default returns the embedded Aragón tables.
func Default() (*Tables, error) {
	t, err := Parse(defaultData)
	if err != nil {
		return nil, fmt.Errorf("load default reference data: %w", err)
	}
	return t, nil
}

// Load reads tables from a YAML file; an empty path yields the defaults.
func Load(path string) (*Tables, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load reference data: read %q: %w", path, err)
	}

	t, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("load reference data %q: %w", path, err)
	}
	return t, nil
}

// Parse decodes and validates a reference data document.
func Parse(b []byte) (*Tables, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	for i, e := range doc.Gazetteer {
		if strings.TrimSpace(e.Name) == "" {
			return nil, fmt.Errorf("gazetteer entry %d: name cannot be empty", i+1)
		}
		if e.Lat < -90 || e.Lat > 90 || e.Lon < -180 || e.Lon > 180 {
			return nil, fmt.Errorf("gazetteer entry %d (%s): coordinate out of range", i+1, e.Name)
		}
	}

	for i, e := range doc.Whitelist {
		if strings.TrimSpace(e.Label) == "" {
			return nil, fmt.Errorf("whitelist entry %d: label cannot be empty", i+1)
		}
		if strings.TrimSpace(e.Code) == "" {
			return nil, fmt.Errorf("whitelist entry %d (%s): code cannot be empty", i+1, e.Label)
		}
	}

	if len(doc.Gazetteer) == 0 && len(doc.Whitelist) == 0 {
		return nil, errors.New("reference data is empty")
	}

	return &Tables{
		Gazetteer: NewGazetteer(doc.Gazetteer),
		Whitelist: NewWhitelist(doc.Whitelist),
	}, nil
}
