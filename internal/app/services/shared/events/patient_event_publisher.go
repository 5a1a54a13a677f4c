package events

import (
	"context"
	"errors"
	"patient-service/internal/app/models"
	"patient-service/internal/pkg/constvars"
	"patient-service/internal/pkg/exceptions"
	"patient-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

var (
	errMessageNotConfirmed = errors.New("message not confirmed")
	errChannelClosed       = errors.New("channel closed")
	errConfirmModeDisabled = errors.New("channel is not in confirm mode")
)

// publishConfirmation resolves to the broker's ack or nack of one message.
type publishConfirmation interface {
	WaitContext(ctx context.Context) (bool, error)
}

type publishChannel interface {
	PublishWithDeferredConfirm(ctx context.Context, key string, msg amqp.Publishing) (publishConfirmation, error)
	IsClosed() bool
}

// amqpPublishChannel publishes to the default exchange of a channel in
// confirm mode. Each message gets its own confirmation keyed by delivery tag.
type amqpPublishChannel struct {
	channel *amqp.Channel
}

func (c amqpPublishChannel) PublishWithDeferredConfirm(ctx context.Context, key string, msg amqp.Publishing) (publishConfirmation, error) {
	confirmation, err := c.channel.PublishWithDeferredConfirmWithContext(ctx, "", key, false, false, msg)
	if err != nil {
		return nil, err
	}
	if confirmation == nil {
		return nil, errConfirmModeDisabled
	}
	return confirmation, nil
}

func (c amqpPublishChannel) IsClosed() bool {
	return c.channel.IsClosed()
}

// RabbitMQPatientEventPublisher writes patient events to a durable queue and
// waits for the broker to confirm each one.
type RabbitMQPatientEventPublisher struct {
	channel publishChannel
	queue   string
	log     *zap.Logger
}

func NewRabbitMQPatientEventPublisher(conn *amqp.Connection, queue string, log *zap.Logger) (*RabbitMQPatientEventPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	)
	if err != nil {
		return nil, err
	}

	err = ch.Confirm(false)
	if err != nil {
		return nil, err
	}

	return newRabbitMQPatientEventPublisher(amqpPublishChannel{channel: ch}, queue, log), nil
}

func newRabbitMQPatientEventPublisher(channel publishChannel, queue string, log *zap.Logger) *RabbitMQPatientEventPublisher {
	return &RabbitMQPatientEventPublisher{
		channel: channel,
		queue:   queue,
		log:     log,
	}
}

func (p *RabbitMQPatientEventPublisher) Publish(ctx context.Context, event *models.PatientEvent) error {
	p.log.Info("RabbitMQPatientEventPublisher.Publish called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingEventTypeKey, event.Type),
		zap.String(constvars.LoggingQueueKey, p.queue),
	)

	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		MessageId:    event.ID,
		Type:         event.Type,
		Timestamp:    event.OccurredAt,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}

	confirmation, err := p.channel.PublishWithDeferredConfirm(ctx, p.queue, msg)
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, p.queue)
	}

	acked, err := confirmation.WaitContext(ctx)
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, p.queue)
	}
	if !acked {
		return exceptions.ErrRabbitMQPublishMessage(errMessageNotConfirmed, p.queue)
	}

	return nil
}

func (p *RabbitMQPatientEventPublisher) Ping(ctx context.Context) error {
	if p.channel.IsClosed() {
		return exceptions.ErrDependencyUnreachable(errChannelClosed, "rabbitmq")
	}
	return nil
}

// NoopPatientEventPublisher is used when RabbitMQ is disabled.
type NoopPatientEventPublisher struct{}

func NewNoopPatientEventPublisher() *NoopPatientEventPublisher {
	return &NoopPatientEventPublisher{}
}

func (NoopPatientEventPublisher) Publish(ctx context.Context, event *models.PatientEvent) error {
	return nil
}
