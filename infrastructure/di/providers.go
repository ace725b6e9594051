// Package di wires the engine together. Providers are plain functions
// so the container can also be assembled by hand in tests.
package di

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"astrotune-backend/application/ports"
	appservices "astrotune-backend/application/services"
	"astrotune-backend/domain/core/entities"
	"astrotune-backend/domain/services"
	"astrotune-backend/infrastructure/acl"
	"astrotune-backend/infrastructure/config"
	"astrotune-backend/infrastructure/geodata"
	"astrotune-backend/pkg/observability"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.Environment == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err == nil {
		zapConfig.Level = zap.NewAtomicLevelAt(level)
	}

	return zapConfig.Build()
}

// ProvideCollector creates the Prometheus metrics collector. A nil
// collector disables metrics; every consumer tolerates that.
func ProvideCollector(cfg *config.Config) *observability.Collector {
	if !cfg.EnableMetrics {
		return nil
	}
	return observability.NewCollector(cfg.MetricsNamespace)
}

// ProvideTracerProvider initializes OpenTelemetry tracing when enabled
func ProvideTracerProvider(cfg *config.Config) (*observability.TracerProvider, error) {
	if !cfg.EnableTracing {
		return nil, nil
	}
	return observability.InitTracing(observability.TracingConfig{
		Environment: cfg.Environment,
		Endpoint:    cfg.TracingEndpoint,
	})
}

// ProvideGazetteer parses the embedded city table
func ProvideGazetteer() (*geodata.Gazetteer, error) {
	return geodata.NewGazetteer()
}

// ProvideTemporalResolver creates the birth input resolver
func ProvideTemporalResolver(gazetteer *geodata.Gazetteer) *services.TemporalResolver {
	return services.NewTemporalResolver(gazetteer)
}

// ProvideEphemerisCalculator creates the fallback ephemeris
func ProvideEphemerisCalculator() *services.EphemerisCalculator {
	return services.NewEphemerisCalculator()
}

// ProvideHouseCalculator creates the house and ascendant calculator
func ProvideHouseCalculator() *services.HouseCalculator {
	return services.NewHouseCalculator()
}

// ProvideAspectEngine creates the aspect engine, seeded with any orb
// overrides from the dynamic tuning file
func ProvideAspectEngine(watcher *config.ConfigWatcher) *services.AspectEngine {
	engine := services.NewAspectEngine(nil)
	if watcher != nil {
		engine.UpdateOrbOverrides(orbOverrides(watcher.GetOrbs()))
		watcher.OnChange(func(dynamic *config.DynamicConfig) {
			engine.UpdateOrbOverrides(orbOverrides(dynamic.Orbs))
		})
	}
	return engine
}

// ProvidePatternClassifier creates the chart shape classifier
func ProvidePatternClassifier() *services.PatternClassifier {
	return services.NewPatternClassifier()
}

// ProvideBalanceSynthesizer creates the balance and theme synthesizer
func ProvideBalanceSynthesizer() *services.BalanceSynthesizer {
	return services.NewBalanceSynthesizer()
}

// ProvideHarmonicCorrelator creates the correlator with the configured
// match tolerance, kept current by the dynamic tuning file
func ProvideHarmonicCorrelator(cfg *config.Config, watcher *config.ConfigWatcher) *services.HarmonicCorrelator {
	correlatorConfig := services.DefaultHarmonicCorrelatorConfig()
	correlatorConfig.MatchTolerance = cfg.HarmonicMatchTolerance
	correlator := services.NewHarmonicCorrelator(correlatorConfig)

	if watcher != nil {
		if tolerance := watcher.GetCurrent().Harmonic.MatchTolerance; tolerance > 0 {
			correlator.UpdateMatchTolerance(tolerance)
		}
		watcher.OnChange(func(dynamic *config.DynamicConfig) {
			if dynamic.Harmonic.MatchTolerance > 0 {
				correlator.UpdateMatchTolerance(dynamic.Harmonic.MatchTolerance)
			}
		})
	}
	return correlator
}

// ProvideConfigWatcher starts the dynamic tuning watcher when a path is
// configured; a nil watcher means static configuration only
func ProvideConfigWatcher(cfg *config.Config, logger *zap.Logger) (*config.ConfigWatcher, error) {
	if cfg.DynamicConfigPath == "" {
		return nil, nil
	}
	watcher, err := config.NewConfigWatcher(cfg.DynamicConfigPath, logger)
	if err != nil {
		return nil, err
	}
	watcher.Start()
	return watcher, nil
}

// ProvideApproximateSource creates the in-process calculation path
func ProvideApproximateSource(ephemeris *services.EphemerisCalculator, houses *services.HouseCalculator) *appservices.ApproximateSource {
	return appservices.NewApproximateSource(ephemeris, houses)
}

// ProvidePreciseSource creates the external precision path, or nil when
// it is disabled. The dynamic tuning flag can also switch it off.
func ProvidePreciseSource(cfg *config.Config, watcher *config.ConfigWatcher, logger *zap.Logger) *acl.PreciseEphemerisAdapter {
	enabled := cfg.Precise.Enabled
	if watcher != nil {
		enabled = enabled && watcher.GetFeatures().UsePreciseEphemeris
	}
	if !enabled {
		return nil
	}
	return acl.NewPreciseEphemerisAdapter(
		cfg.Precise.Command,
		cfg.Precise.Script,
		cfg.Precise.Timeout,
		acl.DefaultCircuitBreakerConfig("precise-ephemeris"),
		logger,
	)
}

// ProvideChartService assembles the chart pipeline
func ProvideChartService(
	resolver *services.TemporalResolver,
	approximate *appservices.ApproximateSource,
	precise *acl.PreciseEphemerisAdapter,
	aspects *services.AspectEngine,
	classifier *services.PatternClassifier,
	synthesizer *services.BalanceSynthesizer,
	metrics *observability.Collector,
	tracer *observability.TracerProvider,
	logger *zap.Logger,
) *appservices.ChartService {
	// A typed nil adapter must become an untyped nil interface, or the
	// service would try to call through it.
	var preciseSource ports.PositionSource
	if precise != nil {
		preciseSource = precise
	}
	return appservices.NewChartService(
		resolver, approximate, preciseSource,
		aspects, classifier, synthesizer,
		metrics, tracer, logger,
	)
}

// ProvideResonanceService assembles the resonance scorer
func ProvideResonanceService(correlator *services.HarmonicCorrelator, metrics *observability.Collector, logger *zap.Logger) *appservices.ResonanceService {
	return appservices.NewResonanceService(correlator, metrics, logger)
}

// orbOverrides converts the tuning file's orb table to engine overrides,
// skipping unset entries
func orbOverrides(orbs config.Orbs) map[entities.AspectKind]float64 {
	overrides := make(map[entities.AspectKind]float64)
	set := func(kind entities.AspectKind, value float64) {
		if value > 0 {
			overrides[kind] = value
		}
	}
	set(entities.Conjunction, orbs.Conjunction)
	set(entities.Sextile, orbs.Sextile)
	set(entities.Square, orbs.Square)
	set(entities.Trine, orbs.Trine)
	set(entities.Quincunx, orbs.Quincunx)
	set(entities.Opposition, orbs.Opposition)
	if len(overrides) == 0 {
		return nil
	}
	return overrides
}
