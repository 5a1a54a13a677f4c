package routers

import (
	"net/http"
	"patient-service/internal/app/config"
	"patient-service/internal/app/delivery/http/controllers"
	"patient-service/internal/app/delivery/http/middlewares"
	"patient-service/internal/pkg/constvars"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	patientController *controllers.PatientController,
	healthController *controllers.HealthController,
	metricsHandler http.Handler,
) {
	router.Use(middlewares.RequestIDMiddleware)
	router.Use(chiMiddleware.RealIP)
	router.Use(middlewares.Logging(middlewares.Log))
	router.Use(middlewares.Metrics)
	router.Use(middlewares.ErrorHandler)

	corsOptions := cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{
			constvars.HeaderAccept,
			constvars.HeaderContentType,
			constvars.HeaderXRequestID,
		},
		ExposedHeaders: []string{constvars.HeaderXRequestID, constvars.HeaderRetryAfter},
		MaxAge:         300,
	}
	router.Use(cors.Handler(corsOptions))

	if internalConfig.App.MaxRequests > 0 {
		router.Use(httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second))
	}

	router.Use(middlewares.BodyLimit)

	attachRoutes := func(r chi.Router) {
		r.Get("/health", healthController.Check)
		if metricsHandler != nil {
			r.Method(http.MethodGet, "/metrics", metricsHandler)
		}

		r.Route("/"+constvars.ResourcePatient, func(r chi.Router) {
			attachPatientRoutes(r, middlewares, patientController)
		})
	}

	endpointPrefix := normalizePrefix(internalConfig.App.EndpointPrefix)
	if endpointPrefix == "" {
		attachRoutes(router)
		return
	}
	router.Route(endpointPrefix, attachRoutes)
}

// normalizePrefix turns "v1", "/v1/" and "/v1" into "/v1", and "" or "/"
// into "".
func normalizePrefix(prefix string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return ""
	}
	return "/" + prefix
}
