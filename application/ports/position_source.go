package ports

import (
	"context"

	"astrotune-backend/domain/core/aggregates"
	"astrotune-backend/domain/core/entities"
	"astrotune-backend/domain/core/valueobjects"
)

// PositionSet is the position-and-house subset of a chart that a
// calculation path produces. Downstream components are agnostic to
// which path built it.
type PositionSet struct {
	Bodies    []entities.BodyPosition
	NorthNode entities.BodyPosition
	SouthNode entities.BodyPosition
	Ascendant valueobjects.Longitude
	Houses    [12]entities.House
	Source    aggregates.ChartSource
}

// PositionSource is the strategy interface over the two calculation
// paths: the in-process approximation and the external precision
// calculator. Implementations must be deterministic for a given moment.
type PositionSource interface {
	// Name identifies the source for logs and metrics
	Name() string

	// Compute produces the positions and houses for a birth moment.
	// Blocking implementations must honor context cancellation.
	Compute(ctx context.Context, moment valueobjects.BirthMoment) (*PositionSet, error)
}
