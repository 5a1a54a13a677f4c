package exceptions

import (
	"fmt"
	"patient-service/internal/pkg/constvars"
)

var (
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON)
	}
	ErrCannotStringifyField = func(err error, field string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevCannotStringifyField, field))
	}
	ErrRequestBodyTooLarge = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusRequestTooLarge, constvars.ErrClientRequestBodyTooLarge, constvars.ErrDevRequestBodyTooLarge)
	}
	ErrTooManyRequests = func(err error, resource string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusTooManyRequests, constvars.ErrClientTooManyRequests, fmt.Sprintf(constvars.ErrDevRateLimitExceeded, resource))
	}
	ErrDependencyUnreachable = func(err error, dependency string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientServiceUnavailable, fmt.Sprintf(constvars.ErrDevDependencyUnreachable, dependency))
	}

	// Mongo DB
	ErrMongoDBFindDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToFindDocument)
	}
	ErrMongoDBIterateDocuments = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToIterateDocuments)
	}
	ErrMongoDBUpdateDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToUpdateDocument)
	}
	ErrMongoDBInsertDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToInsertDocument)
	}

	// Redis
	ErrRedisIncrement = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisIncrementValue)
	}

	// RabbitMQ
	ErrRabbitMQPublishMessage = func(err error, queueName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRabbitMQPublishMessage, queueName))
	}

	// Default Server
	ErrServerProcess = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevServerProcess)
	}
)
