package services

import (
	"fmt"

	"astrotune-backend/domain/core/entities"
	"astrotune-backend/domain/core/valueobjects"
)

// maxLifeThemes caps the synthesized theme list
const maxLifeThemes = 8

// sunThemes holds the three fixed keyword tags per Sun sign
var sunThemes = map[valueobjects.Sign][3]string{
	valueobjects.Aries:       {"Leadership", "Initiative", "Independence"},
	valueobjects.Taurus:      {"Stability", "Sensuality", "Persistence"},
	valueobjects.Gemini:      {"Communication", "Adaptability", "Learning"},
	valueobjects.Cancer:      {"Nurturing", "Emotional depth", "Protection"},
	valueobjects.Leo:         {"Creativity", "Self-expression", "Recognition"},
	valueobjects.Virgo:       {"Service", "Perfectionism", "Analysis"},
	valueobjects.Libra:       {"Balance", "Relationships", "Harmony"},
	valueobjects.Scorpio:     {"Transformation", "Intensity", "Depth"},
	valueobjects.Sagittarius: {"Philosophy", "Adventure", "Growth"},
	valueobjects.Capricorn:   {"Achievement", "Structure", "Authority"},
	valueobjects.Aquarius:    {"Innovation", "Humanitarianism", "Independence"},
	valueobjects.Pisces:      {"Spirituality", "Compassion", "Intuition"},
}

// moonDescriptors and risingDescriptors supply the optional descriptive
// tags when those signs differ from the Sun sign
var moonDescriptors = map[valueobjects.Sign]string{
	valueobjects.Aries:       "Emotionally bold",
	valueobjects.Taurus:      "Emotionally grounded",
	valueobjects.Gemini:      "Emotionally curious",
	valueobjects.Cancer:      "Emotionally attuned",
	valueobjects.Leo:         "Emotionally expressive",
	valueobjects.Virgo:       "Emotionally discerning",
	valueobjects.Libra:       "Emotionally harmonizing",
	valueobjects.Scorpio:     "Emotionally intense",
	valueobjects.Sagittarius: "Emotionally adventurous",
	valueobjects.Capricorn:   "Emotionally reserved",
	valueobjects.Aquarius:    "Emotionally detached",
	valueobjects.Pisces:      "Emotionally empathic",
}

var risingDescriptors = map[valueobjects.Sign]string{
	valueobjects.Aries:       "Projects confidence",
	valueobjects.Taurus:      "Projects calm",
	valueobjects.Gemini:      "Projects wit",
	valueobjects.Cancer:      "Projects warmth",
	valueobjects.Leo:         "Projects presence",
	valueobjects.Virgo:       "Projects precision",
	valueobjects.Libra:       "Projects grace",
	valueobjects.Scorpio:     "Projects magnetism",
	valueobjects.Sagittarius: "Projects enthusiasm",
	valueobjects.Capricorn:   "Projects authority",
	valueobjects.Aquarius:    "Projects originality",
	valueobjects.Pisces:      "Projects sensitivity",
}

// bodyKeywords supplies the single dominant-body keyword tag
var bodyKeywords = map[entities.Body]string{
	entities.Sun:     "Vitality",
	entities.Moon:    "Instinct",
	entities.Mercury: "Intellect",
	entities.Venus:   "Affection",
	entities.Mars:    "Drive",
	entities.Jupiter: "Expansion",
	entities.Saturn:  "Discipline",
	entities.Uranus:  "Rebellion",
	entities.Neptune: "Imagination",
	entities.Pluto:   "Regeneration",
}

// BalanceSynthesizer derives the qualitative summary of a chart: the
// element and modality tallies, the aspect-weighted dominant body, and
// the life-theme tags.
type BalanceSynthesizer struct{}

// NewBalanceSynthesizer creates the synthesizer
func NewBalanceSynthesizer() *BalanceSynthesizer {
	return &BalanceSynthesizer{}
}

// ElementBalance tallies tracked bodies per classical element
func (s *BalanceSynthesizer) ElementBalance(positions []entities.BodyPosition) valueobjects.ElementBalance {
	var balance valueobjects.ElementBalance
	for _, p := range positions {
		switch p.Sign().Element() {
		case valueobjects.ElementFire:
			balance.Fire++
		case valueobjects.ElementEarth:
			balance.Earth++
		case valueobjects.ElementAir:
			balance.Air++
		case valueobjects.ElementWater:
			balance.Water++
		}
	}
	return balance
}

// ModalityBalance tallies tracked bodies per modality
func (s *BalanceSynthesizer) ModalityBalance(positions []entities.BodyPosition) valueobjects.ModalityBalance {
	var balance valueobjects.ModalityBalance
	for _, p := range positions {
		switch p.Sign().Modality() {
		case valueobjects.ModalityCardinal:
			balance.Cardinal++
		case valueobjects.ModalityFixed:
			balance.Fixed++
		case valueobjects.ModalityMutable:
			balance.Mutable++
		}
	}
	return balance
}

// DominantBody scores every tracked body by its aspect strengths
// (strong 3, moderate 2, weak 1) and returns the highest scorer. Ties
// resolve to the first body in enumeration order; a chart with no
// aspects defaults to the Sun.
func (s *BalanceSynthesizer) DominantBody(aspects []entities.Aspect) entities.Body {
	if len(aspects) == 0 {
		return entities.Sun
	}

	scores := make(map[entities.Body]int)
	for _, a := range aspects {
		scores[a.BodyA()] += a.StrengthScore()
		scores[a.BodyB()] += a.StrengthScore()
	}

	dominant := entities.Sun
	best := -1
	for _, body := range entities.TrackedBodies() {
		if score := scores[body]; score > best {
			dominant = body
			best = score
		}
	}
	return dominant
}

// LifeThemes concatenates the three Sun-sign keywords, the Moon and
// Rising descriptors when those signs differ from the Sun sign, and the
// dominant-body keyword, truncated to eight tags
func (s *BalanceSynthesizer) LifeThemes(sunSign, moonSign, risingSign valueobjects.Sign, dominant entities.Body) []string {
	themes := make([]string, 0, maxLifeThemes)

	for _, tag := range sunThemes[sunSign] {
		themes = append(themes, tag)
	}
	if moonSign != sunSign {
		themes = append(themes, fmt.Sprintf("%s (%s Moon)", moonDescriptors[moonSign], moonSign))
	}
	if risingSign != sunSign {
		themes = append(themes, fmt.Sprintf("%s (%s Rising)", risingDescriptors[risingSign], risingSign))
	}
	themes = append(themes, bodyKeywords[dominant])

	if len(themes) > maxLifeThemes {
		themes = themes[:maxLifeThemes]
	}
	return themes
}
