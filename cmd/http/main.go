package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"patient-service/internal/app/config"
	"patient-service/internal/app/contracts"
	"patient-service/internal/app/delivery/http/controllers"
	"patient-service/internal/app/delivery/http/middlewares"
	"patient-service/internal/app/delivery/http/routers"
	"patient-service/internal/app/drivers/database"
	"patient-service/internal/app/drivers/logger"
	"patient-service/internal/app/drivers/messaging"
	"patient-service/internal/app/services/core/patients"
	"patient-service/internal/app/services/shared/events"
	"patient-service/internal/app/services/shared/ratelimiter"
	"patient-service/internal/app/services/shared/redis"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		MongoDB:        database.NewMongoDB(driverConfig),
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	if driverConfig.Redis.Enabled {
		bootstrap.Redis = database.NewRedisClient(driverConfig)
	}
	if driverConfig.RabbitMQ.Enabled {
		bootstrap.RabbitMQ = messaging.NewRabbitMQ(driverConfig)
	}

	err := bootstrapingTheApp(bootstrap)
	if err != nil {
		log.Fatalf("Error while bootstraping the app: %v", err)
	}

	server := &http.Server{
		Addr:              internalConfig.App.Port,
		Handler:           bootstrap.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLogger.Info("Server started", zap.String("address", internalConfig.App.Port))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Error while releasing resources: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)

	// Redis
	var resourceLimiter *ratelimiter.ResourceLimiter
	var redisPinger contracts.Pinger
	if bootstrap.Redis != nil {
		redisRepository := redis.NewRedisRepository(bootstrap.Redis)
		resourceLimiter = ratelimiter.NewResourceLimiter(redisRepository, bootstrap.Logger)
		redisPinger = redisRepository
	}

	// Patient events
	var eventPublisher contracts.PatientEventPublisher = events.NewNoopPatientEventPublisher()
	var rabbitMQPinger contracts.Pinger
	if bootstrap.RabbitMQ != nil {
		rabbitMQPublisher, err := events.NewRabbitMQPatientEventPublisher(
			bootstrap.RabbitMQ,
			bootstrap.InternalConfig.App.RabbitMQPatientEventQueue,
			bootstrap.Logger,
		)
		if err != nil {
			return err
		}
		eventPublisher = rabbitMQPublisher
		rabbitMQPinger = rabbitMQPublisher
	}

	// Middlewares
	middlewareInstance := middlewares.NewMiddlewares(
		bootstrap.Logger,
		bootstrap.InternalConfig,
		resourceLimiter,
		middlewares.NewRequestMetrics(registry),
	)

	// Patient
	patientMongoRepository := patients.NewPatientMongoRepository(
		bootstrap.MongoDB,
		bootstrap.DriverConfig.MongoDB.DbName,
	)
	patientUsecase := patients.NewPatientUsecase(patientMongoRepository, eventPublisher, bootstrap.Logger)
	patientController := controllers.NewPatientController(bootstrap.Logger, patientUsecase)

	// Health
	healthController := controllers.NewHealthController(
		bootstrap.Logger,
		database.NewMongoPinger(bootstrap.MongoDB),
		redisPinger,
		rabbitMQPinger,
	)

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		middlewareInstance,
		patientController,
		healthController,
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	)
	return nil
}
