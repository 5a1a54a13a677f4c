package logger

import (
	"log"
	"patient-service/internal/app/config"
	"patient-service/internal/pkg/constvars"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func NewZapLogger(driverConfig *config.DriverConfig, internalConfig *config.InternalConfig) *zap.Logger {
	cfg := newZapConfig(driverConfig, internalConfig)

	zapLogger, err := cfg.Build()
	if err != nil {
		log.Fatalf("Error while initializing zap logger: %v", err)
	}
	return zapLogger.With(
		zap.String("service", "patient-service"),
		zap.String("version", internalConfig.App.Version),
	)
}

func newZapConfig(driverConfig *config.DriverConfig, internalConfig *config.InternalConfig) zap.Config {
	var outputPaths []string
	var errorOutputPaths []string

	switch internalConfig.App.Env {
	case constvars.AppEnvProduction:
		outputPaths = []string{driverConfig.Logger.OutputFileName}
		errorOutputPaths = []string{"stderr", driverConfig.Logger.OutputErrorFileName}
	default:
		outputPaths = []string{"stdout"}
		errorOutputPaths = []string{"stderr"}
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	return zap.Config{
		Level:            zap.NewAtomicLevelAt(parseLevel(driverConfig.Logger.Level)),
		Development:      internalConfig.App.Env == constvars.AppEnvDevelopment,
		Encoding:         "json",
		EncoderConfig:    encoderConfig,
		OutputPaths:      outputPaths,
		ErrorOutputPaths: errorOutputPaths,
	}
}

// parseLevel falls back to info for anything zap does not recognise.
func parseLevel(level string) zapcore.Level {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return zap.InfoLevel
	}
	return parsed
}
