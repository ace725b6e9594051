package valueobjects

import (
	"fmt"
)

// BirthMoment is the fully resolved birth instant and place. It is built
// once by the temporal resolver and immutable afterwards; identical raw
// inputs always resolve to an identical moment, so it doubles as a cache
// key for chart consumers.
type BirthMoment struct {
	year   int
	month  int
	day    int
	hour   int // 24-hour clock
	minute int

	locationName string
	coordinates  Coordinates
	julianDay    JulianDay

	// locationApproximate marks the documented fallback coordinate used
	// when the location name was not recognized. A data-quality signal,
	// not a failure.
	locationApproximate bool
}

// NewBirthMoment assembles a resolved birth moment
func NewBirthMoment(year, month, day, hour, minute int, locationName string, coords Coordinates, locationApproximate bool) BirthMoment {
	return BirthMoment{
		year:                year,
		month:               month,
		day:                 day,
		hour:                hour,
		minute:              minute,
		locationName:        locationName,
		coordinates:         coords,
		julianDay:           JulianDayFromCivil(year, month, day, hour, minute),
		locationApproximate: locationApproximate,
	}
}

// Year returns the civil year
func (m BirthMoment) Year() int { return m.year }

// Month returns the civil month (1-12)
func (m BirthMoment) Month() int { return m.month }

// Day returns the civil day of month
func (m BirthMoment) Day() int { return m.day }

// Hour returns the 24-hour clock hour
func (m BirthMoment) Hour() int { return m.hour }

// Minute returns the minute of the hour
func (m BirthMoment) Minute() int { return m.minute }

// LocationName returns the place name as supplied by the caller
func (m BirthMoment) LocationName() string { return m.locationName }

// Coordinates returns the resolved geographic coordinates
func (m BirthMoment) Coordinates() Coordinates { return m.coordinates }

// JulianDay returns the resolved Julian Day
func (m BirthMoment) JulianDay() JulianDay { return m.julianDay }

// LocationApproximate reports whether the fallback coordinate was used
func (m BirthMoment) LocationApproximate() bool { return m.locationApproximate }

// DateString returns the civil date in YYYY-MM-DD form
func (m BirthMoment) DateString() string {
	return fmt.Sprintf("%04d-%02d-%02d", m.year, m.month, m.day)
}

// TimeString returns the resolved time in 24-hour HH:MM form
func (m BirthMoment) TimeString() string {
	return fmt.Sprintf("%02d:%02d", m.hour, m.minute)
}

// DayOfYear returns the ordinal day within the year, leap-aware
func (m BirthMoment) DayOfYear() int {
	daysInMonth := [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	if isLeapYear(m.year) {
		daysInMonth[1] = 29
	}
	doy := m.day
	for i := 0; i < m.month-1; i++ {
		doy += daysInMonth[i]
	}
	return doy
}

// CacheKey returns the (date, time, location) triple as a stable key.
// Two moments with equal keys produce field-for-field identical charts.
func (m BirthMoment) CacheKey() string {
	return fmt.Sprintf("%s|%s|%s", m.DateString(), m.TimeString(), m.locationName)
}

func isLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}
