package services

import (
	"context"

	"astrotune-backend/application/ports"
	"astrotune-backend/domain/core/aggregates"
	"astrotune-backend/domain/core/valueobjects"
	"astrotune-backend/domain/services"
)

// ApproximateSource is the in-process calculation path: the fallback
// ephemeris plus the whole-sign house calculator. It is always
// available, deterministic, and sub-millisecond.
type ApproximateSource struct {
	ephemeris *services.EphemerisCalculator
	houses    *services.HouseCalculator
}

// NewApproximateSource creates the fallback position source
func NewApproximateSource(ephemeris *services.EphemerisCalculator, houses *services.HouseCalculator) *ApproximateSource {
	return &ApproximateSource{ephemeris: ephemeris, houses: houses}
}

// Name identifies the source
func (s *ApproximateSource) Name() string {
	return string(aggregates.SourceApproximate)
}

// Compute runs the fallback ephemeris and house calculators
func (s *ApproximateSource) Compute(_ context.Context, moment valueobjects.BirthMoment) (*ports.PositionSet, error) {
	bodies, err := s.ephemeris.Positions(moment)
	if err != nil {
		return nil, err
	}

	north, south, err := s.ephemeris.LunarNodes(moment)
	if err != nil {
		return nil, err
	}

	ascendant, err := s.houses.Ascendant(moment)
	if err != nil {
		return nil, err
	}

	houses, err := s.houses.Houses(ascendant)
	if err != nil {
		return nil, err
	}

	return &ports.PositionSet{
		Bodies:    bodies,
		NorthNode: north,
		SouthNode: south,
		Ascendant: ascendant,
		Houses:    houses,
		Source:    aggregates.SourceApproximate,
	}, nil
}
