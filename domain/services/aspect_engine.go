package services

import (
	"sync"

	"astrotune-backend/domain/core/entities"
)

// AspectEngineConfig configures aspect detection
type AspectEngineConfig struct {
	// OrbOverrides replaces the allowed orb for specific aspect kinds.
	// Missing kinds keep their defaults; overrides can only tighten a
	// window, never widen it past the kind's canonical orb.
	OrbOverrides map[entities.AspectKind]float64
}

// DefaultAspectEngineConfig returns the standard orb table
func DefaultAspectEngineConfig() *AspectEngineConfig {
	return &AspectEngineConfig{OrbOverrides: nil}
}

// AspectEngine classifies the angular relationships between every
// unordered pair of tracked bodies. At most one aspect is emitted per
// pair; a pair within no orb produces nothing.
type AspectEngine struct {
	mu     sync.RWMutex
	config *AspectEngineConfig
}

// NewAspectEngine creates an aspect engine
func NewAspectEngine(config *AspectEngineConfig) *AspectEngine {
	if config == nil {
		config = DefaultAspectEngineConfig()
	}
	return &AspectEngine{config: config}
}

// UpdateOrbOverrides replaces the orb override table at runtime. Used
// by the dynamic configuration watcher; a nil map restores defaults.
func (e *AspectEngine) UpdateOrbOverrides(overrides map[entities.AspectKind]float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.config = &AspectEngineConfig{OrbOverrides: overrides}
}

// Aspects classifies every unordered pair of the given positions
func (e *AspectEngine) Aspects(positions []entities.BodyPosition) ([]entities.Aspect, error) {
	var aspects []entities.Aspect

	for i := 0; i < len(positions); i++ {
		for j := i + 1; j < len(positions); j++ {
			aspect, found, err := e.classify(positions[i], positions[j])
			if err != nil {
				return nil, err
			}
			if found {
				aspects = append(aspects, aspect)
			}
		}
	}
	return aspects, nil
}

// Between classifies a single body pair. The result is symmetric: the
// order of the two positions never changes the outcome.
func (e *AspectEngine) Between(a, b entities.BodyPosition) (entities.Aspect, bool, error) {
	return e.classify(a, b)
}

// classify folds the pair separation into [0, 180] and matches it
// against the aspect table. When orb overrides make several kinds
// qualify at a degenerate boundary, the kind with the smaller allowed
// orb wins.
func (e *AspectEngine) classify(a, b entities.BodyPosition) (entities.Aspect, bool, error) {
	separation := a.Longitude().SeparationTo(b.Longitude())

	matched := false
	var bestKind entities.AspectKind
	var bestOrb, bestAllowed float64

	for _, angle := range entities.AspectAngles() {
		allowed := e.allowedOrb(angle)
		orb := separation - angle.Degrees
		if orb < 0 {
			orb = -orb
		}
		if orb > allowed {
			continue
		}
		if !matched || allowed < bestAllowed || (allowed == bestAllowed && orb < bestOrb) {
			matched = true
			bestKind = angle.Kind
			bestOrb = orb
			bestAllowed = allowed
		}
	}

	if !matched {
		return entities.Aspect{}, false, nil
	}

	aspect, err := entities.NewAspect(
		a.Body(), b.Body(), bestKind, bestOrb,
		interpretationFor(a.Body(), b.Body(), bestKind),
	)
	if err != nil {
		return entities.Aspect{}, false, err
	}
	return aspect, true, nil
}

// allowedOrb applies any configured override for the kind. An override
// wider than the kind's canonical orb is capped there: widening the
// window would admit pairs whose true deviation exceeds the canonical
// orb, and the recorded orb must stay the actual deviation.
func (e *AspectEngine) allowedOrb(angle entities.AspectAngle) float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.config.OrbOverrides == nil {
		return angle.MaxOrb
	}
	override, ok := e.config.OrbOverrides[angle.Kind]
	if !ok || override <= 0 {
		return angle.MaxOrb
	}
	if override > angle.MaxOrb {
		return angle.MaxOrb
	}
	return override
}
