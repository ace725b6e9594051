package valueobjects

// Sign is a value object identifying one of the twelve zodiac signs
type Sign int

const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

// Element is the classical element a sign belongs to
type Element string

const (
	ElementFire  Element = "fire"
	ElementEarth Element = "earth"
	ElementAir   Element = "air"
	ElementWater Element = "water"
)

// Modality is the quality grouping a sign belongs to
type Modality string

const (
	ModalityCardinal Modality = "cardinal"
	ModalityFixed    Modality = "fixed"
	ModalityMutable  Modality = "mutable"
)

var signNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// Elements follow the fire-earth-air-water cycle, modalities the
// cardinal-fixed-mutable cycle, so both derive from the sign index.
var elementCycle = [4]Element{ElementFire, ElementEarth, ElementAir, ElementWater}

var modalityCycle = [3]Modality{ModalityCardinal, ModalityFixed, ModalityMutable}

// AllSigns returns the twelve signs in zodiacal order
func AllSigns() [12]Sign {
	var signs [12]Sign
	for i := range signs {
		signs[i] = Sign(i)
	}
	return signs
}

// SignFromName resolves a sign from its English name
func SignFromName(name string) (Sign, bool) {
	for i, n := range signNames {
		if n == name {
			return Sign(i), true
		}
	}
	return 0, false
}

// IsValid reports whether the sign index is within the zodiac
func (s Sign) IsValid() bool {
	return s >= Aries && s <= Pisces
}

// String returns the English sign name
func (s Sign) String() string {
	if !s.IsValid() {
		return "Unknown"
	}
	return signNames[s]
}

// Element returns the classical element of the sign
func (s Sign) Element() Element {
	return elementCycle[int(s)%4]
}

// Modality returns the quality of the sign
func (s Sign) Modality() Modality {
	return modalityCycle[int(s)%3]
}

// Offset returns the sign a given number of signs forward on the wheel
func (s Sign) Offset(signs int) Sign {
	return Sign(((int(s)+signs)%12 + 12) % 12)
}

// Opposite returns the sign 180 degrees across the wheel
func (s Sign) Opposite() Sign {
	return s.Offset(6)
}
