package config

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/go-chi/chi/v5"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Bootstrap holds everything main wires together. Redis and RabbitMQ are nil
// when disabled.
type Bootstrap struct {
	Router         *chi.Mux
	MongoDB        *mongo.Client
	Redis          *redis.Client
	RabbitMQ       *amqp091.Connection
	Logger         *zap.Logger
	InternalConfig *InternalConfig
	DriverConfig   *DriverConfig
}

// Shutdown releases every driver even when an earlier one fails, and returns
// the joined errors.
func (b *Bootstrap) Shutdown(ctx context.Context) error {
	var errs []error

	if b.MongoDB != nil {
		err := b.MongoDB.Disconnect(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("disconnecting MongoDB: %w", err))
		} else {
			log.Println("Successfully disconnecting MongoDB")
		}
	}

	if b.Redis != nil {
		err := b.Redis.Close()
		if err != nil {
			errs = append(errs, fmt.Errorf("closing Redis: %w", err))
		} else {
			log.Println("Successfully closing Redis")
		}
	}

	if b.RabbitMQ != nil && !b.RabbitMQ.IsClosed() {
		err := b.RabbitMQ.Close()
		if err != nil {
			errs = append(errs, fmt.Errorf("closing RabbitMQ: %w", err))
		} else {
			log.Println("Successfully closing RabbitMQ")
		}
	}

	if b.Logger != nil {
		// Sync on stdout returns EINVAL on some platforms; it is not fatal.
		_ = b.Logger.Sync()
		log.Println("Successfully closing Logger")
	}

	return errors.Join(errs...)
}
