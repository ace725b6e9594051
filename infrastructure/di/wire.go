//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"astrotune-backend/infrastructure/config"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideCollector,
	ProvideTracerProvider,
	ProvideGazetteer,
	ProvideTemporalResolver,
	ProvideEphemerisCalculator,
	ProvideHouseCalculator,
	ProvideConfigWatcher,
	ProvideAspectEngine,
	ProvidePatternClassifier,
	ProvideBalanceSynthesizer,
	ProvideHarmonicCorrelator,
	ProvideApproximateSource,
	ProvidePreciseSource,
	ProvideChartService,
	ProvideResonanceService,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
