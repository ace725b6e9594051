package services

import (
	"strconv"
	"strings"

	"astrotune-backend/domain/core/valueobjects"
	pkgerrors "astrotune-backend/pkg/errors"
)

// LocationGazetteer resolves place names to geographic coordinates.
// Implementations return ok=false for unknown names; the resolver then
// falls back to the default coordinate rather than failing.
type LocationGazetteer interface {
	Lookup(name string) (valueobjects.Coordinates, bool)
	Default() valueobjects.Coordinates
}

// TemporalResolver converts raw birth date/time/place input into a
// resolved BirthMoment. Resolution is deterministic: the same input
// always yields the same moment.
type TemporalResolver struct {
	gazetteer LocationGazetteer
}

// NewTemporalResolver creates a resolver backed by the given gazetteer
func NewTemporalResolver(gazetteer LocationGazetteer) *TemporalResolver {
	return &TemporalResolver{gazetteer: gazetteer}
}

// Resolve parses a YYYY-MM-DD date, a 12-hour clock time with meridiem
// (24-hour input is also accepted, as the precision path supplies it),
// and a free-form location name. An unparseable date or time is fatal;
// an unknown location resolves to the documented fallback coordinate.
func (r *TemporalResolver) Resolve(date, localTime, locationName string) (valueobjects.BirthMoment, error) {
	year, month, day, err := parseCivilDate(date)
	if err != nil {
		return valueobjects.BirthMoment{}, err
	}

	hour, minute, err := parseClockTime(localTime)
	if err != nil {
		return valueobjects.BirthMoment{}, err
	}

	coords, known := r.gazetteer.Lookup(locationName)
	if !known {
		coords = r.gazetteer.Default()
	}

	return valueobjects.NewBirthMoment(year, month, day, hour, minute, locationName, coords, !known), nil
}

// parseCivilDate parses a strict YYYY-MM-DD calendar date
func parseCivilDate(date string) (year, month, day int, err error) {
	parts := strings.Split(strings.TrimSpace(date), "-")
	if len(parts) != 3 {
		return 0, 0, 0, pkgerrors.NewFormat("date must be in YYYY-MM-DD form")
	}

	year, errY := strconv.Atoi(parts[0])
	month, errM := strconv.Atoi(parts[1])
	day, errD := strconv.Atoi(parts[2])
	if errY != nil || errM != nil || errD != nil {
		return 0, 0, 0, pkgerrors.NewFormat("date must be numeric YYYY-MM-DD")
	}
	if year < 1 || month < 1 || month > 12 || day < 1 || day > daysInCivilMonth(year, month) {
		return 0, 0, 0, pkgerrors.NewFormat("date is not a valid calendar date")
	}
	return year, month, day, nil
}

// parseClockTime parses "H:MM am|pm" (case-insensitive) or a plain
// 24-hour "HH:MM". Meridiem conversion: 12 am is hour 0, 12 pm stays
// 12, any other pm hour adds 12.
func parseClockTime(localTime string) (hour, minute int, err error) {
	raw := strings.ToLower(strings.TrimSpace(localTime))

	meridiem := ""
	switch {
	case strings.HasSuffix(raw, "am"):
		meridiem = "am"
		raw = strings.TrimSpace(strings.TrimSuffix(raw, "am"))
	case strings.HasSuffix(raw, "pm"):
		meridiem = "pm"
		raw = strings.TrimSpace(strings.TrimSuffix(raw, "pm"))
	}

	parts := strings.Split(raw, ":")
	if len(parts) != 2 {
		return 0, 0, pkgerrors.NewFormat("time must be in H:MM form")
	}
	hour, errH := strconv.Atoi(parts[0])
	minute, errM := strconv.Atoi(parts[1])
	if errH != nil || errM != nil {
		return 0, 0, pkgerrors.NewFormat("time must be numeric H:MM")
	}
	if minute < 0 || minute > 59 {
		return 0, 0, pkgerrors.NewFormat("minute out of range")
	}

	switch meridiem {
	case "am":
		if hour < 1 || hour > 12 {
			return 0, 0, pkgerrors.NewFormat("hour out of range for 12-hour clock")
		}
		if hour == 12 {
			hour = 0
		}
	case "pm":
		if hour < 1 || hour > 12 {
			return 0, 0, pkgerrors.NewFormat("hour out of range for 12-hour clock")
		}
		if hour != 12 {
			hour += 12
		}
	default:
		if hour < 0 || hour > 23 {
			return 0, 0, pkgerrors.NewFormat("hour out of range for 24-hour clock")
		}
	}

	return hour, minute, nil
}

func daysInCivilMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	default:
		if (year%4 == 0 && year%100 != 0) || year%400 == 0 {
			return 29
		}
		return 28
	}
}
