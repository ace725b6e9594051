package di

import (
	"context"

	"go.uber.org/zap"

	appservices "astrotune-backend/application/services"
	"astrotune-backend/infrastructure/config"
	"astrotune-backend/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config           *config.Config
	Logger           *zap.Logger
	Metrics          *observability.Collector
	Tracer           *observability.TracerProvider
	ConfigWatcher    *config.ConfigWatcher
	ChartService     *appservices.ChartService
	ResonanceService *appservices.ResonanceService
}

// Shutdown releases the container's long-lived resources
func (c *Container) Shutdown(ctx context.Context) error {
	if c.ConfigWatcher != nil {
		c.ConfigWatcher.Stop()
	}
	if c.Tracer != nil {
		if err := c.Tracer.Shutdown(ctx); err != nil {
			return err
		}
	}
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
	return nil
}
