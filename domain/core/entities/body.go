package entities

// Body identifies a tracked celestial body
type Body int

const (
	Sun Body = iota
	Moon
	Mercury
	Venus
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
	Pluto
	NorthNode
	SouthNode
)

var bodyNames = map[Body]string{
	Sun:       "Sun",
	Moon:      "Moon",
	Mercury:   "Mercury",
	Venus:     "Venus",
	Mars:      "Mars",
	Jupiter:   "Jupiter",
	Saturn:    "Saturn",
	Uranus:    "Uranus",
	Neptune:   "Neptune",
	Pluto:     "Pluto",
	NorthNode: "North Node",
	SouthNode: "South Node",
}

// retrogradeFrequency is the historical fraction of days each body spends
// in apparent retrograde motion. Used only by the fallback retrograde
// approximation; the luminaries are never retrograde.
var retrogradeFrequency = map[Body]float64{
	Sun:     0,
	Moon:    0,
	Mercury: 0.19,
	Venus:   0.07,
	Mars:    0.09,
	Jupiter: 0.33,
	Saturn:  0.36,
	Uranus:  0.41,
	Neptune: 0.43,
	Pluto:   0.44,
}

// TrackedBodies returns the ten planets in enumeration order. The lunar
// nodes are carried separately on the chart and take part in neither
// aspects nor balances.
func TrackedBodies() []Body {
	return []Body{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto}
}

// BodyFromName resolves a body from its English name
func BodyFromName(name string) (Body, bool) {
	for b, n := range bodyNames {
		if n == name {
			return b, true
		}
	}
	return 0, false
}

// IsValid checks if the body is a known celestial body
func (b Body) IsValid() bool {
	_, ok := bodyNames[b]
	return ok
}

// String returns the English body name
func (b Body) String() string {
	if name, ok := bodyNames[b]; ok {
		return name
	}
	return "Unknown"
}

// IsLuminary reports whether the body is the Sun or the Moon
func (b Body) IsLuminary() bool {
	return b == Sun || b == Moon
}

// IsNode reports whether the body is one of the lunar nodes
func (b Body) IsNode() bool {
	return b == NorthNode || b == SouthNode
}

// RetrogradeFrequency returns the historical retrograde-day fraction
func (b Body) RetrogradeFrequency() float64 {
	return retrogradeFrequency[b]
}
