package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"astrotune-backend/application/ports"
	"astrotune-backend/domain/core/aggregates"
	"astrotune-backend/domain/core/entities"
	"astrotune-backend/domain/core/valueobjects"
	"astrotune-backend/domain/services"
	"astrotune-backend/pkg/observability"
)

// ChartService orchestrates the full chart computation pipeline: input
// resolution, position calculation with precision fallback, aspect
// detection, pattern classification and theme synthesis. The result is
// a pure function of the raw input; computing the same birth data twice
// yields field-for-field identical charts.
type ChartService struct {
	resolver    *services.TemporalResolver
	approximate ports.PositionSource
	precise     ports.PositionSource // nil when the precision path is disabled
	aspects     *services.AspectEngine
	classifier  *services.PatternClassifier
	synthesizer *services.BalanceSynthesizer
	metrics     *observability.Collector
	tracer      *observability.TracerProvider
	logger      *zap.Logger
}

// NewChartService creates the chart orchestrator. precise and tracer
// may be nil; the service then runs on the in-process path alone and
// without spans.
func NewChartService(
	resolver *services.TemporalResolver,
	approximate ports.PositionSource,
	precise ports.PositionSource,
	aspects *services.AspectEngine,
	classifier *services.PatternClassifier,
	synthesizer *services.BalanceSynthesizer,
	metrics *observability.Collector,
	tracer *observability.TracerProvider,
	logger *zap.Logger,
) *ChartService {
	return &ChartService{
		resolver:    resolver,
		approximate: approximate,
		precise:     precise,
		aspects:     aspects,
		classifier:  classifier,
		synthesizer: synthesizer,
		metrics:     metrics,
		tracer:      tracer,
		logger:      logger,
	}
}

// ComputeChart builds a complete natal chart from raw birth input.
// Only an unparseable date or time is an error; every downstream
// degradation (unknown location, precision calculator failure) resolves
// to an approximate chart instead.
func (s *ChartService) ComputeChart(ctx context.Context, date, localTime, location string) (*aggregates.Chart, error) {
	computationID := uuid.New().String()
	start := time.Now()

	ctx, endSpan := s.startSpan(ctx, "chart.compute")
	defer endSpan()

	moment, err := s.resolver.Resolve(date, localTime, location)
	if err != nil {
		s.logger.Warn("Birth input rejected",
			zap.String("computation_id", computationID),
			zap.String("date", date),
			zap.String("time", localTime),
			zap.Error(err),
		)
		return nil, err
	}

	positions, err := s.resolvePositions(ctx, computationID, moment)
	if err != nil {
		return nil, err
	}

	aspects, err := s.aspects.Aspects(positions.Bodies)
	if err != nil {
		return nil, err
	}

	pattern := s.classifier.Classify(positions.Bodies)
	elements := s.synthesizer.ElementBalance(positions.Bodies)
	modalities := s.synthesizer.ModalityBalance(positions.Bodies)
	dominant := s.synthesizer.DominantBody(aspects)

	sunSign, moonSign := luminarySigns(positions.Bodies)
	risingSign := positions.Ascendant.Sign()
	themes := s.synthesizer.LifeThemes(sunSign, moonSign, risingSign, dominant)

	chart, err := aggregates.NewChart(
		moment,
		positions.Bodies,
		positions.NorthNode,
		positions.SouthNode,
		positions.Ascendant,
		positions.Houses,
		aspects,
		elements,
		modalities,
		dominant,
		pattern,
		themes,
		positions.Source,
	)
	if err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	if s.metrics != nil {
		s.metrics.ObserveChart(string(positions.Source), elapsed)
	}

	s.logger.Info("Chart computed",
		zap.String("computation_id", computationID),
		zap.String("cache_key", chart.CacheKey()),
		zap.String("source", string(chart.Source())),
		zap.String("sun_sign", chart.SunSign().String()),
		zap.String("pattern", string(chart.Pattern())),
		zap.Int("aspects", len(chart.Aspects())),
		zap.Duration("elapsed", elapsed),
	)

	return chart, nil
}

// resolvePositions picks the calculation path. The precision path is
// tried first when configured; any failure there falls back to the
// in-process approximation and is never surfaced to the caller.
func (s *ChartService) resolvePositions(ctx context.Context, computationID string, moment valueobjects.BirthMoment) (*ports.PositionSet, error) {
	if s.precise != nil {
		spanCtx, endSpan := s.startSpan(ctx, "chart.positions.precise")
		set, err := s.precise.Compute(spanCtx, moment)
		endSpan()
		if err == nil {
			return set, nil
		}

		if s.metrics != nil {
			s.metrics.PreciseFailures.Inc()
			s.metrics.PreciseFallbacks.Inc()
		}
		s.logger.Warn("Precision path failed, falling back to approximation",
			zap.String("computation_id", computationID),
			zap.String("source", s.precise.Name()),
			zap.Error(err),
		)
	}

	return s.approximate.Compute(ctx, moment)
}

// startSpan opens a tracing span when a tracer is configured. The
// returned func ends the span and is a no-op otherwise.
func (s *ChartService) startSpan(ctx context.Context, name string) (context.Context, func()) {
	if s.tracer == nil {
		return ctx, func() {}
	}
	spanCtx, span := s.tracer.StartSpan(ctx, name)
	return spanCtx, func() { span.End() }
}

// luminarySigns extracts the Sun and Moon signs from a position list
func luminarySigns(bodies []entities.BodyPosition) (valueobjects.Sign, valueobjects.Sign) {
	var sun, moon valueobjects.Sign
	for _, p := range bodies {
		switch p.Body() {
		case entities.Sun:
			sun = p.Sign()
		case entities.Moon:
			moon = p.Sign()
		}
	}
	return sun, moon
}
