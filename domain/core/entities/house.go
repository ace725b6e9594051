package entities

import (
	"astrotune-backend/domain/core/valueobjects"
	pkgerrors "astrotune-backend/pkg/errors"
)

// House is one of the twelve whole-sign houses of a chart. House 1 is
// seeded by the ascendant sign; the rest follow in zodiacal order with
// cusps at even 30-degree multiples.
type House struct {
	number     int
	sign       valueobjects.Sign
	cuspDegree float64
}

// NewHouse creates a house with validation
func NewHouse(number int, sign valueobjects.Sign, cuspDegree float64) (House, error) {
	if number < 1 || number > 12 {
		return House{}, pkgerrors.NewValidation("house number must be within 1-12")
	}
	if !sign.IsValid() {
		return House{}, pkgerrors.NewValidation("invalid house sign")
	}
	if cuspDegree < 0 || cuspDegree >= 360 {
		return House{}, pkgerrors.NewValidation("cusp degree must be within [0, 360)")
	}
	return House{number: number, sign: sign, cuspDegree: cuspDegree}, nil
}

// Number returns the house number, 1-12
func (h House) Number() int {
	return h.number
}

// Sign returns the sign occupying the house
func (h House) Sign() valueobjects.Sign {
	return h.sign
}

// CuspDegree returns the absolute ecliptic degree of the house cusp
func (h House) CuspDegree() float64 {
	return h.cuspDegree
}
