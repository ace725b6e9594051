package valueobjects

// J2000 is the Julian Day of the J2000.0 epoch (2000-01-01 12:00)
const J2000 = 2451545.0

// DaysPerJulianCentury converts day offsets into Julian centuries
const DaysPerJulianCentury = 36525.0

// JulianDay is a value object for a continuous astronomical day count
type JulianDay struct {
	value float64
}

// NewJulianDay wraps a raw Julian Day value
func NewJulianDay(value float64) JulianDay {
	return JulianDay{value: value}
}

// JulianDayFromCivil computes the Julian Day for a civil calendar date and
// a 24-hour clock time, using the standard floor-based formula. The day
// number anchors at noon; the time of day contributes a fractional offset
// relative to it.
func JulianDayFromCivil(year, month, day, hour, minute int) JulianDay {
	a := (14 - month) / 12
	y := year + 4800 - a
	m := month + 12*a - 3

	jdn := day + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045

	fraction := (float64(hour)-12)/24 + float64(minute)/1440
	return JulianDay{value: float64(jdn) + fraction}
}

// Value returns the raw Julian Day number
func (jd JulianDay) Value() float64 {
	return jd.value
}

// DaysSinceJ2000 returns the day offset from the J2000.0 epoch
func (jd JulianDay) DaysSinceJ2000() float64 {
	return jd.value - J2000
}

// Centuries returns Julian centuries elapsed since J2000.0, the T variable
// of the ephemeris polynomials
func (jd JulianDay) Centuries() float64 {
	return jd.DaysSinceJ2000() / DaysPerJulianCentury
}
