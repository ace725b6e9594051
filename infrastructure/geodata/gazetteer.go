// Package geodata provides the built-in city gazetteer used to resolve
// birth location names to coordinates.
package geodata

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"astrotune-backend/domain/core/valueobjects"
)

//go:embed cities.yaml
var citiesYAML []byte

// defaultCity is the fallback location used when a name cannot be
// resolved; charts built on it are marked approximate.
const defaultCity = "New York"

type cityRecord struct {
	Name      string  `yaml:"name"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}

type cityFile struct {
	Cities []cityRecord `yaml:"cities"`
}

// Gazetteer resolves location names against the embedded city table.
// Matching is case-insensitive and tolerates the city name appearing
// anywhere in the query ("New York, NY" resolves to New York).
type Gazetteer struct {
	cities   []cityRecord
	byName   map[string]valueobjects.Coordinates
	fallback valueobjects.Coordinates
}

// NewGazetteer parses the embedded city table.
func NewGazetteer() (*Gazetteer, error) {
	var file cityFile
	if err := yaml.Unmarshal(citiesYAML, &file); err != nil {
		return nil, fmt.Errorf("failed to parse embedded city table: %w", err)
	}
	if len(file.Cities) == 0 {
		return nil, fmt.Errorf("embedded city table is empty")
	}

	g := &Gazetteer{
		cities: file.Cities,
		byName: make(map[string]valueobjects.Coordinates, len(file.Cities)),
	}
	for _, c := range file.Cities {
		coords, err := valueobjects.NewCoordinates(c.Latitude, c.Longitude)
		if err != nil {
			return nil, fmt.Errorf("invalid coordinates for %s: %w", c.Name, err)
		}
		g.byName[strings.ToLower(c.Name)] = coords
	}

	fallback, ok := g.byName[strings.ToLower(defaultCity)]
	if !ok {
		return nil, fmt.Errorf("city table is missing the default city %q", defaultCity)
	}
	g.fallback = fallback

	return g, nil
}

// Lookup resolves a location name to coordinates. The second return
// value reports whether the name was recognized.
func (g *Gazetteer) Lookup(name string) (valueobjects.Coordinates, bool) {
	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" {
		return valueobjects.Coordinates{}, false
	}

	if coords, ok := g.byName[query]; ok {
		return coords, true
	}

	// Tolerate queries that carry extra qualifiers around a known city.
	// Only the query may contain the city name, never the reverse: a
	// fragment like "a" must fall back instead of resolving to whichever
	// city happens to contain it.
	for _, c := range g.cities {
		lower := strings.ToLower(c.Name)
		if strings.Contains(query, lower) {
			return g.byName[lower], true
		}
	}

	return valueobjects.Coordinates{}, false
}

// Default returns the fallback coordinates for unresolvable locations.
func (g *Gazetteer) Default() valueobjects.Coordinates {
	return g.fallback
}

// Count returns the number of cities in the table.
func (g *Gazetteer) Count() int {
	return len(g.cities)
}
