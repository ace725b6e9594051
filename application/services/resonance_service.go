package services

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"astrotune-backend/domain/core/aggregates"
	"astrotune-backend/domain/core/entities"
	"astrotune-backend/domain/services"
	"astrotune-backend/pkg/errors"
	"astrotune-backend/pkg/observability"
)

// ResonanceService scores a chart's aspects against a song's harmonic
// series. The series arrives from an external audio-analysis
// collaborator and is validated before any correlation runs.
type ResonanceService struct {
	correlator *services.HarmonicCorrelator
	validate   *validator.Validate
	metrics    *observability.Collector
	logger     *zap.Logger
}

// NewResonanceService creates the resonance scorer
func NewResonanceService(correlator *services.HarmonicCorrelator, metrics *observability.Collector, logger *zap.Logger) *ResonanceService {
	return &ResonanceService{
		correlator: correlator,
		validate:   validator.New(),
		metrics:    metrics,
		logger:     logger,
	}
}

// Score validates the supplied harmonic series and correlates it with
// the chart's aspects. A chart with no matching aspects yields an empty
// report with score zero, not an error.
func (s *ResonanceService) Score(_ context.Context, chart *aggregates.Chart, series entities.SongHarmonicSeries) (entities.ResonanceReport, error) {
	if chart == nil {
		return entities.ResonanceReport{}, errors.NewValidation("chart is required")
	}
	if err := s.validate.Struct(series); err != nil {
		s.logger.Warn("Harmonic series rejected", zap.Error(err))
		return entities.ResonanceReport{}, errors.NewValidation("invalid harmonic series: " + err.Error())
	}

	start := time.Now()
	report := s.correlator.Correlate(chart.Aspects(), series)
	elapsed := time.Since(start)

	if s.metrics != nil {
		s.metrics.ObserveCorrelation(report.Score, elapsed)
	}

	s.logger.Info("Resonance scored",
		zap.String("cache_key", chart.CacheKey()),
		zap.Float64("fundamental_hz", series.FundamentalHz),
		zap.Int("partials", len(series.Partials)),
		zap.Int("correlations", len(report.Correlations)),
		zap.Float64("score", report.Score),
		zap.Duration("elapsed", elapsed),
	)

	return report, nil
}
