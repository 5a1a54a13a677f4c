package messaging

import (
	"fmt"
	"log"
	"patient-service/internal/app/config"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

const connectionName = "patient-service"

func NewRabbitMQ(driverConfig *config.DriverConfig) *amqp091.Connection {
	properties := amqp091.NewConnectionProperties()
	properties.SetClientConnectionName(connectionName)

	conn, err := amqp091.DialConfig(RabbitMQConnectionString(driverConfig), amqp091.Config{
		Heartbeat:  10 * time.Second,
		Properties: properties,
	})
	if err != nil {
		log.Fatalf("Failed to connect to rabbitMQ: %s", err.Error())
	}
	log.Println("Successfully connected to rabbitMQ")
	return conn
}

func RabbitMQConnectionString(driverConfig *config.DriverConfig) string {
	return fmt.Sprintf(
		"amqp://%s:%s@%s:%s/",
		driverConfig.RabbitMQ.Username,
		driverConfig.RabbitMQ.Password,
		driverConfig.RabbitMQ.Host,
		driverConfig.RabbitMQ.Port,
	)
}
