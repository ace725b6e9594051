package services

import (
	"fmt"

	"astrotune-backend/domain/core/entities"
)

// pairKey builds the ordered lookup key for a body pair and kind
func pairKey(a, b entities.Body, kind entities.AspectKind) string {
	return fmt.Sprintf("%s|%s|%s", a, b, kind)
}

// pairInterpretations carries the specific readings for notable body
// pairs, keyed by the ordered pair and aspect kind. Built once at
// startup; pairs without an entry fall back to the generic kind text.
var pairInterpretations = map[string]string{
	pairKey(entities.Sun, entities.Moon, entities.Conjunction):  "Conscious will and emotional instinct act as one; a new-moon temperament of single-minded drive.",
	pairKey(entities.Sun, entities.Moon, entities.Opposition):   "Will and feeling pull against each other; a full-moon temperament torn between self and others.",
	pairKey(entities.Sun, entities.Moon, entities.Trine):        "Purpose and emotion flow together, lending natural ease and self-acceptance.",
	pairKey(entities.Sun, entities.Mercury, entities.Conjunction): "Identity and intellect fuse; thoughts carry the force of personality.",
	pairKey(entities.Sun, entities.Mars, entities.Square):       "Ego and drive clash, producing friction that fuels ambition once harnessed.",
	pairKey(entities.Sun, entities.Jupiter, entities.Trine):     "Confidence and opportunity reinforce each other; optimism comes easily.",
	pairKey(entities.Moon, entities.Venus, entities.Sextile):    "Affection and feeling cooperate; warmth is expressed without effort.",
	pairKey(entities.Moon, entities.Saturn, entities.Square):    "Emotional needs meet inner restraint; security is earned through discipline.",
	pairKey(entities.Mercury, entities.Venus, entities.Conjunction): "Thought and taste blend into a charming, diplomatic voice.",
	pairKey(entities.Venus, entities.Mars, entities.Conjunction): "Desire and affection merge into magnetic, impulsive attraction.",
	pairKey(entities.Mars, entities.Saturn, entities.Opposition): "Drive strains against restraint; patience turns raw force into endurance.",
	pairKey(entities.Jupiter, entities.Saturn, entities.Square):  "Expansion wrestles structure; growth arrives through tested limits.",
}

// kindInterpretations carries the generic reading per aspect kind
var kindInterpretations = map[entities.AspectKind]string{
	entities.Conjunction: "The two energies merge and amplify each other.",
	entities.Sextile:     "The two energies cooperate when given an opening.",
	entities.Square:      "The two energies clash, demanding adjustment and effort.",
	entities.Trine:       "The two energies flow together with natural ease.",
	entities.Opposition:  "The two energies face off, seeking balance across a polarity.",
	entities.Quincunx:    "The two energies sit at odd angles, requiring constant fine-tuning.",
}

// interpretationFor returns the reading for a body pair and kind, trying
// both orderings of the pair before falling back to the generic text
func interpretationFor(a, b entities.Body, kind entities.AspectKind) string {
	if text, ok := pairInterpretations[pairKey(a, b, kind)]; ok {
		return text
	}
	if text, ok := pairInterpretations[pairKey(b, a, kind)]; ok {
		return text
	}
	return kindInterpretations[kind]
}
