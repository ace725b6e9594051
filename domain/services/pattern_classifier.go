package services

import (
	"sort"

	"astrotune-backend/domain/core/entities"
)

// PatternClassifier names the overall chart shape from the distribution
// of body longitudes around the wheel. Classification is total and
// deterministic: every input maps to exactly one of the seven shapes.
type PatternClassifier struct{}

// NewPatternClassifier creates the classifier
func NewPatternClassifier() *PatternClassifier {
	return &PatternClassifier{}
}

// Classify applies the shape rules in fixed priority order, first match
// wins, with Splay as the default
func (c *PatternClassifier) Classify(positions []entities.BodyPosition) entities.ChartPattern {
	if len(positions) < 2 {
		return entities.PatternSplay
	}

	longitudes := make([]float64, len(positions))
	for i, p := range positions {
		longitudes[i] = p.Longitude().Degrees()
	}
	sort.Float64s(longitudes)

	gaps := circularGaps(longitudes)

	largestGap := 0.0
	for _, g := range gaps {
		if g > largestGap {
			largestGap = g
		}
	}
	spread := 360 - largestGap

	smallRemaining := 0
	gapsOver40 := 0
	gapsOver60 := 0
	for _, g := range gaps {
		if g != largestGap && g < 30 {
			smallRemaining++
		}
		if g > 40 {
			gapsOver40++
		}
		if g > 60 {
			gapsOver60++
		}
	}

	switch {
	case largestGap > 120 && smallRemaining >= 7:
		return entities.PatternBucket
	case spread <= 120:
		return entities.PatternBundle
	case spread <= 180:
		return entities.PatternBowl
	case gapsOver60 == 2:
		return entities.PatternSeeSaw
	case gapsOver40 >= 4:
		return entities.PatternSplash
	case largestGap > 90:
		return entities.PatternLocomotive
	default:
		return entities.PatternSplay
	}
}

// circularGaps computes successive gaps between sorted longitudes,
// including the wrap-around gap from the last body back to the first
func circularGaps(sorted []float64) []float64 {
	gaps := make([]float64, len(sorted))
	for i := 0; i < len(sorted)-1; i++ {
		gaps[i] = sorted[i+1] - sorted[i]
	}
	gaps[len(sorted)-1] = 360 - sorted[len(sorted)-1] + sorted[0]
	return gaps
}
