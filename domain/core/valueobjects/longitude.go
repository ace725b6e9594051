package valueobjects

import (
	"math"

	pkgerrors "astrotune-backend/pkg/errors"
)

// Longitude is a value object representing an ecliptic longitude,
// normalized to [0, 360)
type Longitude struct {
	degrees float64
}

// NewLongitude creates a longitude, normalizing any finite degree value
// into [0, 360)
func NewLongitude(degrees float64) (Longitude, error) {
	if math.IsNaN(degrees) || math.IsInf(degrees, 0) {
		return Longitude{}, pkgerrors.NewValidation("longitude must be a finite number")
	}
	return Longitude{degrees: normalizeDegrees(degrees)}, nil
}

// Degrees returns the normalized degree value in [0, 360)
func (l Longitude) Degrees() float64 {
	return l.degrees
}

// Sign returns the zodiac sign containing this longitude
func (l Longitude) Sign() Sign {
	return Sign(int(l.degrees/30) % 12)
}

// DegreeInSign returns the position within the sign, in [0, 30)
func (l Longitude) DegreeInSign() float64 {
	return math.Mod(l.degrees, 30)
}

// SeparationTo returns the shortest angular separation to another
// longitude, folded into [0, 180]
func (l Longitude) SeparationTo(other Longitude) float64 {
	diff := math.Abs(l.degrees - other.degrees)
	if diff > 180 {
		diff = 360 - diff
	}
	return diff
}

// Add returns the longitude advanced by the given degrees, normalized
func (l Longitude) Add(degrees float64) Longitude {
	return Longitude{degrees: normalizeDegrees(l.degrees + degrees)}
}

// Opposite returns the longitude exactly 180 degrees away
func (l Longitude) Opposite() Longitude {
	return l.Add(180)
}

// Equals checks longitude equality within a small tolerance
func (l Longitude) Equals(other Longitude) bool {
	const epsilon = 1e-9
	return math.Abs(l.degrees-other.degrees) < epsilon
}

// normalizeDegrees folds any finite degree value into [0, 360)
func normalizeDegrees(degrees float64) float64 {
	d := math.Mod(degrees, 360)
	if d < 0 {
		d += 360
	}
	return d
}
