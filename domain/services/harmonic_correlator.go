package services

import (
	"math"
	"sort"
	"sync"

	"astrotune-backend/domain/core/entities"
)

// harmonicRatios is the static aspect-to-interval table, built once and
// never rebuilt per call
var harmonicRatios = map[entities.AspectKind]entities.HarmonicRatio{
	entities.Conjunction: {
		Kind: entities.Conjunction, AngleDegrees: 0, Ratio: 1.0,
		RatioLabel: "1:1", IntervalName: "Unison", HarmonicNumber: 1,
		Consonance: entities.ConsonanceConsonant, Energy: entities.EnergyStable,
	},
	entities.Opposition: {
		Kind: entities.Opposition, AngleDegrees: 180, Ratio: 2.0,
		RatioLabel: "2:1", IntervalName: "Octave", HarmonicNumber: 2,
		Consonance: entities.ConsonanceNeutral, Energy: entities.EnergyTense,
	},
	entities.Trine: {
		Kind: entities.Trine, AngleDegrees: 120, Ratio: 1.5,
		RatioLabel: "3:2", IntervalName: "Perfect Fifth", HarmonicNumber: 3,
		Consonance: entities.ConsonanceConsonant, Energy: entities.EnergyFlowing,
	},
	entities.Square: {
		Kind: entities.Square, AngleDegrees: 90, Ratio: 4.0 / 3.0,
		RatioLabel: "4:3", IntervalName: "Perfect Fourth", HarmonicNumber: 4,
		Consonance: entities.ConsonanceDissonant, Energy: entities.EnergyDynamic,
	},
	entities.Sextile: {
		Kind: entities.Sextile, AngleDegrees: 60, Ratio: 5.0 / 3.0,
		RatioLabel: "5:3", IntervalName: "Major Sixth", HarmonicNumber: 5,
		Consonance: entities.ConsonanceConsonant, Energy: entities.EnergyFlowing,
	},
	entities.Quincunx: {
		Kind: entities.Quincunx, AngleDegrees: 150, Ratio: 15.0 / 8.0,
		RatioLabel: "15:8", IntervalName: "Major Seventh", HarmonicNumber: 15,
		Consonance: entities.ConsonanceDissonant, Energy: entities.EnergyTense,
	},
}

// HarmonicCorrelatorConfig configures the correlation tolerances
type HarmonicCorrelatorConfig struct {
	// MatchTolerance is the match window as a fraction of the aspect
	// ratio. A partial within it produces a correlation.
	MatchTolerance float64
	// ExactThreshold is the fraction of the aspect ratio under which a
	// match counts as exact resonance.
	ExactThreshold float64
}

// DefaultHarmonicCorrelatorConfig returns the standard 5% window with a
// 1% exactness threshold
func DefaultHarmonicCorrelatorConfig() *HarmonicCorrelatorConfig {
	return &HarmonicCorrelatorConfig{
		MatchTolerance: 0.05,
		ExactThreshold: 0.01,
	}
}

// HarmonicCorrelator scores how strongly a song's harmonic series
// resonates with a chart's aspects. Pure computation over the static
// ratio table; it performs no I/O and never extracts a series itself.
type HarmonicCorrelator struct {
	mu     sync.RWMutex
	config *HarmonicCorrelatorConfig
}

// NewHarmonicCorrelator creates a correlator
func NewHarmonicCorrelator(config *HarmonicCorrelatorConfig) *HarmonicCorrelator {
	if config == nil {
		config = DefaultHarmonicCorrelatorConfig()
	}
	return &HarmonicCorrelator{config: config}
}

// UpdateMatchTolerance replaces the match window at runtime. Used by
// the dynamic configuration watcher; out-of-range values are ignored.
func (c *HarmonicCorrelator) UpdateMatchTolerance(tolerance float64) {
	if tolerance <= 0 || tolerance > 0.5 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.config = &HarmonicCorrelatorConfig{
		MatchTolerance: tolerance,
		ExactThreshold: c.config.ExactThreshold,
	}
}

// RatioTable returns the static aspect-to-interval rows
func (c *HarmonicCorrelator) RatioTable() []entities.HarmonicRatio {
	out := make([]entities.HarmonicRatio, 0, len(harmonicRatios))
	for _, kind := range []entities.AspectKind{
		entities.Conjunction, entities.Sextile, entities.Square,
		entities.Trine, entities.Quincunx, entities.Opposition,
	} {
		out = append(out, harmonicRatios[kind])
	}
	return out
}

// RatioFor returns the interval row for one aspect kind
func (c *HarmonicCorrelator) RatioFor(kind entities.AspectKind) (entities.HarmonicRatio, bool) {
	ratio, ok := harmonicRatios[kind]
	return ratio, ok
}

// Correlate matches every (aspect, partial) pair and aggregates the
// resonance score: the mean match strength, or zero when nothing is
// within tolerance. A zero score is a valid, common outcome, not an
// error. Output is sorted descending by match strength.
func (c *HarmonicCorrelator) Correlate(aspects []entities.Aspect, series entities.SongHarmonicSeries) entities.ResonanceReport {
	c.mu.RLock()
	config := c.config
	c.mu.RUnlock()

	var correlations []entities.HarmonicCorrelation

	for _, aspect := range aspects {
		ratio, ok := harmonicRatios[aspect.Kind()]
		if !ok {
			continue
		}
		tolerance := ratio.Ratio * config.MatchTolerance

		for _, partial := range series.Partials {
			diff := math.Abs(ratio.Ratio - partial.RatioToFundamental)
			if diff > tolerance {
				continue
			}

			correlations = append(correlations, entities.HarmonicCorrelation{
				Aspect:        aspect,
				Ratio:         ratio,
				Partial:       partial,
				MatchStrength: 1 - diff/tolerance,
				ResonanceType: resonanceTypeFor(config, diff, ratio.Ratio, partial),
			})
		}
	}

	if len(correlations) == 0 {
		return entities.ResonanceReport{Score: 0}
	}

	total := 0.0
	for _, corr := range correlations {
		total += corr.MatchStrength
	}

	sort.SliceStable(correlations, func(i, j int) bool {
		return correlations[i].MatchStrength > correlations[j].MatchStrength
	})

	return entities.ResonanceReport{
		Correlations: correlations,
		Score:        total / float64(len(correlations)),
	}
}

// resonanceTypeFor classifies a match: exact under the exactness
// threshold, otherwise overtone for low partials, composite for high
// ones, undertone between
func resonanceTypeFor(config *HarmonicCorrelatorConfig, diff, aspectRatio float64, partial entities.Partial) entities.ResonanceType {
	switch {
	case diff < aspectRatio*config.ExactThreshold:
		return entities.ResonanceExact
	case partial.HarmonicNumber <= 4:
		return entities.ResonanceOvertone
	case partial.HarmonicNumber > 8:
		return entities.ResonanceComposite
	default:
		return entities.ResonanceUndertone
	}
}
