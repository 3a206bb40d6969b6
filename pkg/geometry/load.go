package geometry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// toolpathFile is the on-disk document shape shared by the YAML and JSON
// loaders. Each path is a flat list of [x, y, z] triples.
type toolpathFile struct {
	Paths [][][]float64 `json:"paths" yaml:"paths"`
}

// LoadFile reads an ordered collection of toolpaths from a YAML or JSON
// file, selected by extension (.yaml/.yml/.json). Path order in the file
// is preserved; the generator never re-sorts it.
func LoadFile(path string) ([]Polyline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("geometry: unable to read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".json":
		return ParseJSON(data)
	default:
		return nil, fmt.Errorf("geometry: unsupported file extension %q (want .yaml, .yml or .json)", filepath.Ext(path))
	}
}

// ParseYAML parses a toolpath document from YAML.
func ParseYAML(data []byte) ([]Polyline, error) {
	var doc toolpathFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("geometry: invalid YAML: %w", err)
	}
	return FromTriples(doc.Paths)
}

// ParseJSON parses a toolpath document from JSON.
func ParseJSON(data []byte) ([]Polyline, error) {
	var doc toolpathFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("geometry: invalid JSON: %w", err)
	}
	return FromTriples(doc.Paths)
}

// FromTriples converts raw [x, y, z] triples, as carried by toolpath
// files and API requests, into polylines.
func FromTriples(paths [][][]float64) ([]Polyline, error) {
	out := make([]Polyline, 0, len(paths))
	for i, raw := range paths {
		pl := make(Polyline, 0, len(raw))
		for j, triple := range raw {
			if len(triple) != 3 {
				return nil, fmt.Errorf("geometry: path %d point %d has %d coordinates, want 3", i, j, len(triple))
			}
			p := Point{X: triple[0], Y: triple[1], Z: triple[2]}
			if !p.IsFinite() {
				return nil, fmt.Errorf("geometry: path %d point %d has non-finite coordinates", i, j)
			}
			pl = append(pl, p)
		}
		out = append(out, pl)
	}
	return out, nil
}
