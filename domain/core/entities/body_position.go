package entities

import (
	"fmt"

	"astrotune-backend/domain/core/valueobjects"
	pkgerrors "astrotune-backend/pkg/errors"
)

// BodyPosition is a celestial body's resolved place on the ecliptic.
// Exactly one exists per tracked body per chart.
type BodyPosition struct {
	body       Body
	longitude  valueobjects.Longitude
	retrograde bool

	// approximate marks positions produced by the in-process fallback
	// ephemeris rather than the external precision calculator
	approximate bool
}

// NewBodyPosition creates a position for a body
func NewBodyPosition(body Body, longitude valueobjects.Longitude, retrograde, approximate bool) (BodyPosition, error) {
	if !body.IsValid() {
		return BodyPosition{}, pkgerrors.NewValidation("unknown celestial body")
	}
	if body.IsLuminary() && retrograde {
		return BodyPosition{}, pkgerrors.NewValidation("luminaries are never retrograde")
	}
	return BodyPosition{
		body:        body,
		longitude:   longitude,
		retrograde:  retrograde,
		approximate: approximate,
	}, nil
}

// Body returns the celestial body
func (p BodyPosition) Body() Body {
	return p.body
}

// Longitude returns the ecliptic longitude
func (p BodyPosition) Longitude() valueobjects.Longitude {
	return p.longitude
}

// Sign returns the zodiac sign containing the body
func (p BodyPosition) Sign() valueobjects.Sign {
	return p.longitude.Sign()
}

// DegreeInSign returns the degree within the sign, in [0, 30)
func (p BodyPosition) DegreeInSign() float64 {
	return p.longitude.DegreeInSign()
}

// Retrograde reports apparent retrograde motion
func (p BodyPosition) Retrograde() bool {
	return p.retrograde
}

// Approximate reports whether the fallback ephemeris produced this position
func (p BodyPosition) Approximate() bool {
	return p.approximate
}

// Formatted renders the position as e.g. `24°07' Pisces`
func (p BodyPosition) Formatted() string {
	degree := int(p.DegreeInSign())
	minute := int((p.DegreeInSign() - float64(degree)) * 60)
	return fmt.Sprintf("%d°%02d' %s", degree, minute, p.Sign())
}
