package middlewares

import (
	"patient-service/internal/app/config"
	"patient-service/internal/app/services/shared/ratelimiter"

	"go.uber.org/zap"
)

type Middlewares struct {
	Log            *zap.Logger
	InternalConfig *config.InternalConfig
	RequestMetrics *RequestMetrics

	// nil when Redis is disabled
	ResourceLimiter *ratelimiter.ResourceLimiter
}

func NewMiddlewares(
	logger *zap.Logger,
	internalConfig *config.InternalConfig,
	resourceLimiter *ratelimiter.ResourceLimiter,
	metrics *RequestMetrics,
) *Middlewares {
	return &Middlewares{
		Log:             logger,
		InternalConfig:  internalConfig,
		RequestMetrics:  metrics,
		ResourceLimiter: resourceLimiter,
	}
}
