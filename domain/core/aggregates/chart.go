package aggregates

import (
	"astrotune-backend/domain/core/entities"
	"astrotune-backend/domain/core/valueobjects"
	pkgerrors "astrotune-backend/pkg/errors"
)

// ChartSource identifies which calculation path produced the positions
// and houses of a chart. The fallback and precise paths are known to
// disagree; consumers can tell them apart instead of silently mixing.
type ChartSource string

const (
	SourceApproximate ChartSource = "approximate"
	SourcePrecise     ChartSource = "precise"
)

// Chart is the aggregate root of a computed birth chart. It is a pure
// value: identical birth moments produce field-for-field identical
// charts, so the birth moment doubles as a cache key. A chart has no
// independent identity.
type Chart struct {
	moment    valueobjects.BirthMoment
	bodies    []entities.BodyPosition
	northNode entities.BodyPosition
	southNode entities.BodyPosition
	ascendant valueobjects.Longitude
	houses    [12]entities.House
	aspects   []entities.Aspect

	elementBalance  valueobjects.ElementBalance
	modalityBalance valueobjects.ModalityBalance
	dominantBody    entities.Body
	pattern         entities.ChartPattern
	lifeThemes      []string

	source ChartSource
}

// NewChart assembles a chart and enforces its structural invariants:
// exactly one position per tracked body, twelve houses, opposite lunar
// nodes, and a recognized pattern.
func NewChart(
	moment valueobjects.BirthMoment,
	bodies []entities.BodyPosition,
	northNode, southNode entities.BodyPosition,
	ascendant valueobjects.Longitude,
	houses [12]entities.House,
	aspects []entities.Aspect,
	elementBalance valueobjects.ElementBalance,
	modalityBalance valueobjects.ModalityBalance,
	dominantBody entities.Body,
	pattern entities.ChartPattern,
	lifeThemes []string,
	source ChartSource,
) (*Chart, error) {
	tracked := entities.TrackedBodies()
	if len(bodies) != len(tracked) {
		return nil, pkgerrors.NewValidation("chart requires exactly one position per tracked body")
	}
	seen := make(map[entities.Body]bool, len(tracked))
	for _, p := range bodies {
		if seen[p.Body()] {
			return nil, pkgerrors.NewValidation("duplicate body position")
		}
		seen[p.Body()] = true
	}
	for _, b := range tracked {
		if !seen[b] {
			return nil, pkgerrors.NewValidation("missing position for tracked body")
		}
	}
	if northNode.Body() != entities.NorthNode || southNode.Body() != entities.SouthNode {
		return nil, pkgerrors.NewValidation("lunar node positions mislabeled")
	}
	if !northNode.Longitude().Opposite().Equals(southNode.Longitude()) {
		return nil, pkgerrors.NewValidation("south node must oppose the north node")
	}
	for i, h := range houses {
		if h.Number() != i+1 {
			return nil, pkgerrors.NewValidation("houses must be numbered 1-12 in order")
		}
	}
	if !pattern.IsValid() {
		return nil, pkgerrors.NewValidation("unrecognized chart pattern")
	}
	if source != SourceApproximate && source != SourcePrecise {
		return nil, pkgerrors.NewValidation("unrecognized chart source")
	}

	return &Chart{
		moment:          moment,
		bodies:          bodies,
		northNode:       northNode,
		southNode:       southNode,
		ascendant:       ascendant,
		houses:          houses,
		aspects:         aspects,
		elementBalance:  elementBalance,
		modalityBalance: modalityBalance,
		dominantBody:    dominantBody,
		pattern:         pattern,
		lifeThemes:      lifeThemes,
		source:          source,
	}, nil
}

// BirthMoment returns the resolved birth moment
func (c *Chart) BirthMoment() valueobjects.BirthMoment {
	return c.moment
}

// Bodies returns the tracked body positions
func (c *Chart) Bodies() []entities.BodyPosition {
	out := make([]entities.BodyPosition, len(c.bodies))
	copy(out, c.bodies)
	return out
}

// Body returns the position for one tracked body
func (c *Chart) Body(body entities.Body) (entities.BodyPosition, bool) {
	for _, p := range c.bodies {
		if p.Body() == body {
			return p, true
		}
	}
	return entities.BodyPosition{}, false
}

// NorthNode returns the mean ascending lunar node position
func (c *Chart) NorthNode() entities.BodyPosition {
	return c.northNode
}

// SouthNode returns the descending lunar node position
func (c *Chart) SouthNode() entities.BodyPosition {
	return c.southNode
}

// Ascendant returns the rising degree of the chart
func (c *Chart) Ascendant() valueobjects.Longitude {
	return c.ascendant
}

// Houses returns the twelve whole-sign houses
func (c *Chart) Houses() [12]entities.House {
	return c.houses
}

// Aspects returns the classified aspects between tracked bodies
func (c *Chart) Aspects() []entities.Aspect {
	out := make([]entities.Aspect, len(c.aspects))
	copy(out, c.aspects)
	return out
}

// ElementBalance returns the element tallies
func (c *Chart) ElementBalance() valueobjects.ElementBalance {
	return c.elementBalance
}

// ModalityBalance returns the modality tallies
func (c *Chart) ModalityBalance() valueobjects.ModalityBalance {
	return c.modalityBalance
}

// DominantBody returns the aspect-weighted dominant body
func (c *Chart) DominantBody() entities.Body {
	return c.dominantBody
}

// Pattern returns the classified chart shape
func (c *Chart) Pattern() entities.ChartPattern {
	return c.pattern
}

// LifeThemes returns the synthesized life-theme tags, at most eight
func (c *Chart) LifeThemes() []string {
	out := make([]string, len(c.lifeThemes))
	copy(out, c.lifeThemes)
	return out
}

// Source reports which calculation path produced the chart
func (c *Chart) Source() ChartSource {
	return c.source
}

// Approximate reports whether the fallback path produced the chart
func (c *Chart) Approximate() bool {
	return c.source == SourceApproximate
}

// SunSign returns the Sun's sign, first of the big three
func (c *Chart) SunSign() valueobjects.Sign {
	p, _ := c.Body(entities.Sun)
	return p.Sign()
}

// MoonSign returns the Moon's sign, second of the big three
func (c *Chart) MoonSign() valueobjects.Sign {
	p, _ := c.Body(entities.Moon)
	return p.Sign()
}

// RisingSign returns the ascendant sign, third of the big three
func (c *Chart) RisingSign() valueobjects.Sign {
	return c.ascendant.Sign()
}

// CacheKey returns the (date, time, location) key identifying every
// chart computed from the same birth moment
func (c *Chart) CacheKey() string {
	return c.moment.CacheKey()
}
