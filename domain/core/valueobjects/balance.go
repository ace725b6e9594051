package valueobjects

// ElementBalance tallies tracked bodies per classical element
type ElementBalance struct {
	Fire  int `json:"fire"`
	Earth int `json:"earth"`
	Air   int `json:"air"`
	Water int `json:"water"`
}

// Count returns the tally for one element
func (b ElementBalance) Count(e Element) int {
	switch e {
	case ElementFire:
		return b.Fire
	case ElementEarth:
		return b.Earth
	case ElementAir:
		return b.Air
	default:
		return b.Water
	}
}

// Total returns the sum across all elements
func (b ElementBalance) Total() int {
	return b.Fire + b.Earth + b.Air + b.Water
}

// ModalityBalance tallies tracked bodies per modality
type ModalityBalance struct {
	Cardinal int `json:"cardinal"`
	Fixed    int `json:"fixed"`
	Mutable  int `json:"mutable"`
}

// Count returns the tally for one modality
func (b ModalityBalance) Count(m Modality) int {
	switch m {
	case ModalityCardinal:
		return b.Cardinal
	case ModalityFixed:
		return b.Fixed
	default:
		return b.Mutable
	}
}

// Total returns the sum across all modalities
func (b ModalityBalance) Total() int {
	return b.Cardinal + b.Fixed + b.Mutable
}
