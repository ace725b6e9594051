package services

import (
	"math"

	"astrotune-backend/domain/core/entities"
	"astrotune-backend/domain/core/valueobjects"
	pkgerrors "astrotune-backend/pkg/errors"
)

// meanElement holds a body's J2000 epoch mean longitude and mean daily
// motion. The fallback path advances every planet at its mean rate with
// no perturbation terms.
type meanElement struct {
	epochLongitude float64 // degrees at J2000.0
	dailyMotion    float64 // degrees per day
}

var planetElements = map[entities.Body]meanElement{
	entities.Sun:     {epochLongitude: 280.460, dailyMotion: 0.9856474},
	entities.Mercury: {epochLongitude: 252.25084, dailyMotion: 4.09233445},
	entities.Venus:   {epochLongitude: 181.97973, dailyMotion: 1.60213034},
	entities.Mars:    {epochLongitude: 355.45332, dailyMotion: 0.52403304},
	entities.Jupiter: {epochLongitude: 34.40438, dailyMotion: 0.08308529},
	entities.Saturn:  {epochLongitude: 49.94432, dailyMotion: 0.03346063},
	entities.Uranus:  {epochLongitude: 313.23218, dailyMotion: 0.01173129},
	entities.Neptune: {epochLongitude: 304.88003, dailyMotion: 0.00598103},
	entities.Pluto:   {epochLongitude: 238.92881, dailyMotion: 0.00397557},
}

// EphemerisCalculator is the in-process fallback ephemeris. Its output
// is an explicit statistical approximation of the sky, marked as such on
// every position; the external precision calculator replaces it when
// configured and reachable.
type EphemerisCalculator struct{}

// NewEphemerisCalculator creates the fallback ephemeris
func NewEphemerisCalculator() *EphemerisCalculator {
	return &EphemerisCalculator{}
}

// Positions computes one position for each tracked body
func (c *EphemerisCalculator) Positions(moment valueobjects.BirthMoment) ([]entities.BodyPosition, error) {
	tracked := entities.TrackedBodies()
	positions := make([]entities.BodyPosition, 0, len(tracked))

	for _, body := range tracked {
		lon, err := c.bodyLongitude(body, moment.JulianDay())
		if err != nil {
			return nil, err
		}
		pos, err := entities.NewBodyPosition(body, lon, c.retrogradeApprox(body, moment), true)
		if err != nil {
			return nil, err
		}
		positions = append(positions, pos)
	}
	return positions, nil
}

// LunarNodes computes the mean ascending node and its opposite
func (c *EphemerisCalculator) LunarNodes(moment valueobjects.BirthMoment) (north, south entities.BodyPosition, err error) {
	t := moment.JulianDay().Centuries()

	// Mean ascending node polynomial in Julian centuries
	omega := 125.0445479 - 1934.1362891*t + 0.0020754*t*t

	northLon, err := valueobjects.NewLongitude(omega)
	if err != nil {
		return entities.BodyPosition{}, entities.BodyPosition{}, err
	}

	north, err = entities.NewBodyPosition(entities.NorthNode, northLon, false, true)
	if err != nil {
		return entities.BodyPosition{}, entities.BodyPosition{}, err
	}

	// The south node is always exactly opposite the north node
	south, err = entities.NewBodyPosition(entities.SouthNode, northLon.Opposite(), false, true)
	if err != nil {
		return entities.BodyPosition{}, entities.BodyPosition{}, err
	}
	return north, south, nil
}

// bodyLongitude computes the ecliptic longitude of one body
func (c *EphemerisCalculator) bodyLongitude(body entities.Body, jd valueobjects.JulianDay) (valueobjects.Longitude, error) {
	if body == entities.Moon {
		return c.moonLongitude(jd)
	}
	elem, ok := planetElements[body]
	if !ok {
		return valueobjects.Longitude{}, pkgerrors.NewValidation("no mean elements for body")
	}
	return valueobjects.NewLongitude(elem.epochLongitude + elem.dailyMotion*jd.DaysSinceJ2000())
}

// moonLongitude computes the Moon's longitude from its mean elements as
// polynomials in Julian centuries, corrected by two evection/variation
// terms. The element names follow the conventional symbols: L' mean
// longitude, M' mean anomaly, F argument of latitude.
func (c *EphemerisCalculator) moonLongitude(jd valueobjects.JulianDay) (valueobjects.Longitude, error) {
	t := jd.Centuries()

	meanLongitude := 218.3164477 + 481267.88123421*t - 0.0015786*t*t
	meanAnomaly := 134.9633964 + 477198.8675055*t
	argumentLatitude := 93.2720950 + 483202.0175233*t

	mRad := meanAnomaly * math.Pi / 180
	fRad := argumentLatitude * math.Pi / 180

	evection := 1.274 * math.Sin(2*fRad-mRad)
	variation := 0.658 * math.Sin(2*fRad)

	return valueobjects.NewLongitude(meanLongitude + evection + variation)
}

// retrogradeApprox decides apparent retrograde motion without a true
// direction check: a deterministic spread over the day of year weighted
// by the body's historical retrograde frequency. Luminaries are never
// retrograde.
func (c *EphemerisCalculator) retrogradeApprox(body entities.Body, moment valueobjects.BirthMoment) bool {
	freq := body.RetrogradeFrequency()
	if freq == 0 {
		return false
	}
	phase := (moment.DayOfYear()*7 + int(body)*53) % 100
	return float64(phase) < freq*100
}
