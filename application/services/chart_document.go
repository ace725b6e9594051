package services

import (
	"fmt"

	"astrotune-backend/domain/core/aggregates"
	"astrotune-backend/domain/core/entities"
	"astrotune-backend/domain/core/valueobjects"
)

// ChartDocument is the serializable chart representation handed to
// consumers. Field names follow the established chart JSON contract.
type ChartDocument struct {
	BigThree        BigThreeDocument            `json:"bigThree"`
	LunarNodes      LunarNodesDocument          `json:"lunarNodes"`
	Planets         map[string]PlanetDocument   `json:"planets"`
	Houses          map[string]HouseDocument    `json:"houses"`
	Aspects         []AspectDocument            `json:"aspects"`
	ElementBalance  map[string]int              `json:"elementBalance"`
	ModalityBalance map[string]int              `json:"modalityBalance"`
	DominantPlanet  string                      `json:"dominantPlanet"`
	Pattern         string                      `json:"pattern"`
	LifeThemes      []string                    `json:"lifeThemes"`
	ChartInfo       ChartInfoDocument           `json:"chartInfo"`
	Source          string                      `json:"source"`
	Approximate     bool                        `json:"approximate"`
	Resonance       *ResonanceReportDocument    `json:"resonance,omitempty"`
}

// BigThreeDocument carries the Sun, Moon and rising signs
type BigThreeDocument struct {
	SunSign    string `json:"sunSign"`
	MoonSign   string `json:"moonSign"`
	RisingSign string `json:"risingSign"`
}

// LunarNodesDocument carries the node signs
type LunarNodesDocument struct {
	NorthNode string `json:"northNode"`
	SouthNode string `json:"southNode"`
}

// PlanetDocument is one body entry
type PlanetDocument struct {
	Sign       string  `json:"sign"`
	House      int     `json:"house"`
	Degree     int     `json:"degree"`
	Minute     int     `json:"minute"`
	Formatted  string  `json:"formatted"`
	Retrograde bool    `json:"retrograde"`
	Longitude  float64 `json:"longitude"`
}

// HouseDocument is one house entry
type HouseDocument struct {
	Sign   string  `json:"sign"`
	Degree float64 `json:"degree"`
}

// AspectDocument is one aspect entry
type AspectDocument struct {
	Planet1        string  `json:"planet1"`
	Planet2        string  `json:"planet2"`
	Aspect         string  `json:"aspect"`
	Orb            float64 `json:"orb"`
	Exact          bool    `json:"exact"`
	Strength       string  `json:"strength"`
	Interpretation string  `json:"interpretation,omitempty"`
}

// ChartInfoDocument echoes the resolved birth input
type ChartInfoDocument struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Location string `json:"location"`
}

// ResonanceReportDocument is the serialized resonance report
type ResonanceReportDocument struct {
	Correlations []CorrelationDocument `json:"correlations"`
	Score        float64               `json:"score"`
}

// CorrelationDocument is one aspect/partial match
type CorrelationDocument struct {
	Planet1        string  `json:"planet1"`
	Planet2        string  `json:"planet2"`
	Aspect         string  `json:"aspect"`
	RatioLabel     string  `json:"ratioLabel"`
	IntervalName   string  `json:"intervalName"`
	HarmonicNumber int     `json:"harmonicNumber"`
	Consonance     string  `json:"consonance"`
	Energy         string  `json:"energy"`
	PartialNumber  int     `json:"partialNumber"`
	MatchStrength  float64 `json:"matchStrength"`
	ResonanceType  string  `json:"resonanceType"`
}

// NewChartDocument flattens a chart aggregate into its document form
func NewChartDocument(chart *aggregates.Chart) ChartDocument {
	moment := chart.BirthMoment()
	risingSign := chart.RisingSign()

	doc := ChartDocument{
		BigThree: BigThreeDocument{
			SunSign:    chart.SunSign().String(),
			MoonSign:   chart.MoonSign().String(),
			RisingSign: risingSign.String(),
		},
		LunarNodes: LunarNodesDocument{
			NorthNode: chart.NorthNode().Sign().String(),
			SouthNode: chart.SouthNode().Sign().String(),
		},
		Planets:         make(map[string]PlanetDocument, 12),
		Houses:          make(map[string]HouseDocument, 12),
		Aspects:         make([]AspectDocument, 0, len(chart.Aspects())),
		ElementBalance:  elementBalanceDocument(chart.ElementBalance()),
		ModalityBalance: modalityBalanceDocument(chart.ModalityBalance()),
		DominantPlanet:  chart.DominantBody().String(),
		Pattern:         string(chart.Pattern()),
		LifeThemes:      chart.LifeThemes(),
		ChartInfo: ChartInfoDocument{
			Date:     moment.DateString(),
			Time:     moment.TimeString(),
			Location: moment.LocationName(),
		},
		Source:      string(chart.Source()),
		Approximate: chart.Approximate(),
	}

	for _, position := range chart.Bodies() {
		doc.Planets[position.Body().String()] = planetDocument(position, risingSign)
	}
	doc.Planets[entities.NorthNode.String()] = planetDocument(chart.NorthNode(), risingSign)
	doc.Planets[entities.SouthNode.String()] = planetDocument(chart.SouthNode(), risingSign)

	for _, house := range chart.Houses() {
		doc.Houses[fmt.Sprintf("%d", house.Number())] = HouseDocument{
			Sign:   house.Sign().String(),
			Degree: house.CuspDegree(),
		}
	}

	for _, aspect := range chart.Aspects() {
		doc.Aspects = append(doc.Aspects, AspectDocument{
			Planet1:        aspect.BodyA().String(),
			Planet2:        aspect.BodyB().String(),
			Aspect:         string(aspect.Kind()),
			Orb:            aspect.Orb(),
			Exact:          aspect.Exact(),
			Strength:       string(aspect.Strength()),
			Interpretation: aspect.Interpretation(),
		})
	}

	return doc
}

// NewResonanceReportDocument serializes a resonance report
func NewResonanceReportDocument(report entities.ResonanceReport) *ResonanceReportDocument {
	doc := &ResonanceReportDocument{
		Correlations: make([]CorrelationDocument, 0, len(report.Correlations)),
		Score:        report.Score,
	}
	for _, c := range report.Correlations {
		doc.Correlations = append(doc.Correlations, CorrelationDocument{
			Planet1:        c.Aspect.BodyA().String(),
			Planet2:        c.Aspect.BodyB().String(),
			Aspect:         string(c.Aspect.Kind()),
			RatioLabel:     c.Ratio.RatioLabel,
			IntervalName:   c.Ratio.IntervalName,
			HarmonicNumber: c.Ratio.HarmonicNumber,
			Consonance:     string(c.Ratio.Consonance),
			Energy:         string(c.Ratio.Energy),
			PartialNumber:  c.Partial.HarmonicNumber,
			MatchStrength:  c.MatchStrength,
			ResonanceType:  string(c.ResonanceType),
		})
	}
	return doc
}

// planetDocument flattens one body position. The house number follows
// the whole-sign system: count signs from the rising sign.
func planetDocument(position entities.BodyPosition, risingSign valueobjects.Sign) PlanetDocument {
	degree := int(position.DegreeInSign())
	minute := int((position.DegreeInSign() - float64(degree)) * 60)
	houseNumber := (int(position.Sign())-int(risingSign)+12)%12 + 1

	return PlanetDocument{
		Sign:       position.Sign().String(),
		House:      houseNumber,
		Degree:     degree,
		Minute:     minute,
		Formatted:  position.Formatted(),
		Retrograde: position.Retrograde(),
		Longitude:  position.Longitude().Degrees(),
	}
}

func elementBalanceDocument(balance valueobjects.ElementBalance) map[string]int {
	return map[string]int{
		"fire":  balance.Count(valueobjects.ElementFire),
		"earth": balance.Count(valueobjects.ElementEarth),
		"air":   balance.Count(valueobjects.ElementAir),
		"water": balance.Count(valueobjects.ElementWater),
	}
}

func modalityBalanceDocument(balance valueobjects.ModalityBalance) map[string]int {
	return map[string]int{
		"cardinal": balance.Count(valueobjects.ModalityCardinal),
		"fixed":    balance.Count(valueobjects.ModalityFixed),
		"mutable":  balance.Count(valueobjects.ModalityMutable),
	}
}
