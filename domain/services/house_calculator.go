package services

import (
	"math"

	"astrotune-backend/domain/core/entities"
	"astrotune-backend/domain/core/valueobjects"
)

// meanObliquity is the J2000 obliquity of the ecliptic in degrees. The
// simplified ascendant formula treats it as constant.
const meanObliquity = 23.4392911

// HouseCalculator derives the ascendant and the twelve whole-sign houses
// from sidereal time and the birth coordinates. Like the ephemeris
// fallback it is a documented simplification: houses are equal 30-degree
// sign divisions, not true unequal cusps.
type HouseCalculator struct{}

// NewHouseCalculator creates the house calculator
func NewHouseCalculator() *HouseCalculator {
	return &HouseCalculator{}
}

// Ascendant computes the rising degree for the moment and place
func (c *HouseCalculator) Ascendant(moment valueobjects.BirthMoment) (valueobjects.Longitude, error) {
	lst := c.localSiderealTime(moment)

	lstRad := lst * math.Pi / 180
	latRad := moment.Coordinates().Latitude() * math.Pi / 180
	oblRad := meanObliquity * math.Pi / 180

	// Simplified rising-degree formula from LST and latitude only;
	// no nutation or topocentric correction.
	y := -math.Cos(lstRad)
	x := math.Sin(lstRad)*math.Cos(oblRad) + math.Tan(latRad)*math.Sin(oblRad)
	asc := math.Atan2(y, x) * 180 / math.Pi

	return valueobjects.NewLongitude(asc)
}

// Houses returns the twelve whole-sign houses seeded by the ascendant
// sign, with cusps at even 30-degree multiples
func (c *HouseCalculator) Houses(ascendant valueobjects.Longitude) ([12]entities.House, error) {
	var houses [12]entities.House
	rising := ascendant.Sign()

	for i := 0; i < 12; i++ {
		sign := rising.Offset(i)
		house, err := entities.NewHouse(i+1, sign, float64(int(sign))*30)
		if err != nil {
			return houses, err
		}
		houses[i] = house
	}
	return houses, nil
}

// localSiderealTime computes LST in degrees: the standard GMST
// polynomial plus the geographic longitude, east positive
func (c *HouseCalculator) localSiderealTime(moment valueobjects.BirthMoment) float64 {
	jd := moment.JulianDay()
	d := jd.DaysSinceJ2000()
	t := jd.Centuries()

	gmst := 280.46061837 + 360.98564736629*d + 0.000387933*t*t - t*t*t/38710000

	lst := math.Mod(gmst+moment.Coordinates().Longitude(), 360)
	if lst < 0 {
		lst += 360
	}
	return lst
}
