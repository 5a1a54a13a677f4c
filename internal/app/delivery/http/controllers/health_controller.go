package controllers

import (
	"context"
	"net/http"
	"patient-service/internal/app/contracts"
	"patient-service/internal/pkg/constvars"
	"patient-service/internal/pkg/dto/responses"
	"patient-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

const healthCheckTimeout = 2 * time.Second

// HealthController reports the reachability of every backing service. A nil
// Redis or RabbitMQ pinger means the dependency is disabled.
type HealthController struct {
	Log      *zap.Logger
	MongoDB  contracts.Pinger
	Redis    contracts.Pinger
	RabbitMQ contracts.Pinger
}

func NewHealthController(logger *zap.Logger, mongoDB, redis, rabbitMQ contracts.Pinger) *HealthController {
	return &HealthController{
		Log:      logger,
		MongoDB:  mongoDB,
		Redis:    redis,
		RabbitMQ: rabbitMQ,
	}
}

func (ctrl *HealthController) Check(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	healthy := true
	status := func(name string, pinger contracts.Pinger) string {
		if pinger == nil {
			return constvars.HealthStatusDisabled
		}
		err := pinger.Ping(ctx)
		if err != nil {
			healthy = false
			ctrl.Log.Warn("HealthController.Check dependency unreachable",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String("dependency", name),
				zap.Error(err),
			)
			return constvars.HealthStatusDown
		}
		return constvars.HealthStatusUp
	}

	result := responses.HealthCheck{
		MongoDB:  status("mongodb", ctrl.MongoDB),
		Redis:    status("redis", ctrl.Redis),
		RabbitMQ: status("rabbitmq", ctrl.RabbitMQ),
	}

	if !healthy {
		utils.BuildFailedResponse(w, constvars.StatusServiceUnavailable, constvars.HealthCheckFailedMessage, result)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.HealthCheckSuccessMessage, result)
}
