package valueobjects

import (
	"math"

	pkgerrors "astrotune-backend/pkg/errors"
)

// Coordinates is a value object for a geographic birth location
type Coordinates struct {
	latitude  float64
	longitude float64
}

// NewCoordinates creates coordinates with range validation
func NewCoordinates(latitude, longitude float64) (Coordinates, error) {
	if math.IsNaN(latitude) || math.IsInf(latitude, 0) ||
		math.IsNaN(longitude) || math.IsInf(longitude, 0) {
		return Coordinates{}, pkgerrors.NewValidation("coordinates must be finite numbers")
	}
	if latitude < -90 || latitude > 90 {
		return Coordinates{}, pkgerrors.NewValidation("latitude must be within [-90, 90]")
	}
	if longitude < -180 || longitude > 180 {
		return Coordinates{}, pkgerrors.NewValidation("longitude must be within [-180, 180]")
	}
	return Coordinates{latitude: latitude, longitude: longitude}, nil
}

// Latitude returns the latitude in degrees, north positive
func (c Coordinates) Latitude() float64 {
	return c.latitude
}

// Longitude returns the longitude in degrees, east positive
func (c Coordinates) Longitude() float64 {
	return c.longitude
}

// Equals checks coordinate equality within a small tolerance
func (c Coordinates) Equals(other Coordinates) bool {
	const epsilon = 1e-9
	return math.Abs(c.latitude-other.latitude) < epsilon &&
		math.Abs(c.longitude-other.longitude) < epsilon
}
