package entities

import (
	pkgerrors "astrotune-backend/pkg/errors"
)

// AspectKind names an angular relationship between two bodies
type AspectKind string

const (
	Conjunction AspectKind = "conjunction"
	Sextile     AspectKind = "sextile"
	Square      AspectKind = "square"
	Trine       AspectKind = "trine"
	Opposition  AspectKind = "opposition"
	Quincunx    AspectKind = "quincunx"
)

// AspectAngle holds the exact angle and allowed orb for an aspect kind
type AspectAngle struct {
	Kind    AspectKind
	Degrees float64
	MaxOrb  float64
}

// aspectAngles lists every recognized aspect kind with its anchor angle
// and allowed orb. Order is by anchor angle; the engine resolves
// degenerate multi-matches to the smaller-orb kind.
var aspectAngles = []AspectAngle{
	{Kind: Conjunction, Degrees: 0, MaxOrb: 8},
	{Kind: Sextile, Degrees: 60, MaxOrb: 4},
	{Kind: Square, Degrees: 90, MaxOrb: 6},
	{Kind: Trine, Degrees: 120, MaxOrb: 6},
	{Kind: Quincunx, Degrees: 150, MaxOrb: 3},
	{Kind: Opposition, Degrees: 180, MaxOrb: 8},
}

// AspectAngles returns the recognized aspect kinds and their orbs
func AspectAngles() []AspectAngle {
	out := make([]AspectAngle, len(aspectAngles))
	copy(out, aspectAngles)
	return out
}

// IsValid checks if the aspect kind is recognized
func (k AspectKind) IsValid() bool {
	for _, a := range aspectAngles {
		if a.Kind == k {
			return true
		}
	}
	return false
}

// String returns the aspect kind name
func (k AspectKind) String() string {
	return string(k)
}

// Angle returns the anchor angle and allowed orb for the kind
func (k AspectKind) Angle() (AspectAngle, bool) {
	for _, a := range aspectAngles {
		if a.Kind == k {
			return a, true
		}
	}
	return AspectAngle{}, false
}

// AspectStrength grades how tight an aspect is
type AspectStrength string

const (
	StrengthStrong   AspectStrength = "strong"
	StrengthModerate AspectStrength = "moderate"
	StrengthWeak     AspectStrength = "weak"
)

// StrengthForOrb grades an orb: strong within 2 degrees, moderate within
// 4, weak beyond
func StrengthForOrb(orb float64) AspectStrength {
	switch {
	case orb <= 2:
		return StrengthStrong
	case orb <= 4:
		return StrengthModerate
	default:
		return StrengthWeak
	}
}

// Aspect is a classified angular relationship between two tracked bodies.
// It is symmetric over the unordered body pair; at most one aspect exists
// per pair.
type Aspect struct {
	bodyA          Body
	bodyB          Body
	kind           AspectKind
	orb            float64
	exact          bool
	strength       AspectStrength
	interpretation string
}

// NewAspect creates a classified aspect. Exactness and strength derive
// from the orb; both are fixed at construction.
func NewAspect(bodyA, bodyB Body, kind AspectKind, orb float64, interpretation string) (Aspect, error) {
	if !bodyA.IsValid() || !bodyB.IsValid() {
		return Aspect{}, pkgerrors.NewValidation("unknown celestial body")
	}
	if bodyA == bodyB {
		return Aspect{}, pkgerrors.NewValidation("aspect requires two distinct bodies")
	}
	angle, ok := kind.Angle()
	if !ok {
		return Aspect{}, pkgerrors.NewValidation("unknown aspect kind")
	}
	if orb < 0 || orb > angle.MaxOrb {
		return Aspect{}, pkgerrors.NewValidation("orb outside the allowed range for the aspect kind")
	}
	return Aspect{
		bodyA:          bodyA,
		bodyB:          bodyB,
		kind:           kind,
		orb:            orb,
		exact:          orb <= 1,
		strength:       StrengthForOrb(orb),
		interpretation: interpretation,
	}, nil
}

// BodyA returns the first body of the pair
func (a Aspect) BodyA() Body {
	return a.bodyA
}

// BodyB returns the second body of the pair
func (a Aspect) BodyB() Body {
	return a.bodyB
}

// Kind returns the classified aspect kind
func (a Aspect) Kind() AspectKind {
	return a.kind
}

// Orb returns the deviation from the exact aspect angle
func (a Aspect) Orb() float64 {
	return a.orb
}

// Exact reports an orb of at most one degree
func (a Aspect) Exact() bool {
	return a.exact
}

// Strength returns the graded strength of the aspect
func (a Aspect) Strength() AspectStrength {
	return a.strength
}

// Interpretation returns the short descriptive text for the aspect
func (a Aspect) Interpretation() string {
	return a.interpretation
}

// Involves reports whether the aspect touches the given body
func (a Aspect) Involves(body Body) bool {
	return a.bodyA == body || a.bodyB == body
}

// StrengthScore returns the aspect weight used for dominance scoring:
// strong 3, moderate 2, weak 1
func (a Aspect) StrengthScore() int {
	switch a.strength {
	case StrengthStrong:
		return 3
	case StrengthModerate:
		return 2
	default:
		return 1
	}
}
