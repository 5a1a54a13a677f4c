package config

import (
	"patient-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			URI:      utils.GetEnvString("MONGODB_URI", ""),
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "patients"),
			Username: utils.GetEnvString("MONGODB_USERNAME", ""),
			Password: utils.GetEnvString("MONGODB_PASSWORD", ""),
		},
		Redis: Redis{
			Enabled:  utils.GetEnvBool("REDIS_ENABLED", false),
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Enabled:  utils.GetEnvBool("RABBITMQ_ENABLED", false),
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", "development"),
			Port:                       utils.GetEnvString("APP_PORT", ":8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1.0"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", ""),
			RabbitMQPatientEventQueue:  utils.GetEnvString("APP_RABBITMQ_PATIENT_EVENT_QUEUE", "patient-events"),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUESTS", 100),
			WriteRateLimit:             utils.GetEnvInt("APP_WRITE_RATE_LIMIT", 0),
			ShutdownTimeout:            utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 1),
		},
	}
}
