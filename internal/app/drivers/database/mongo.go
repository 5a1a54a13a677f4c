package database

import (
	"context"
	"fmt"
	"log"
	"patient-service/internal/app/config"
	"patient-service/internal/app/contracts"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func NewMongoDB(driverConfig *config.DriverConfig) *mongo.Client {
	dbOptions := options.Client().ApplyURI(MongoConnectionString(driverConfig))
	client, err := mongo.Connect(context.TODO(), dbOptions)
	if err != nil {
		log.Fatalf("Failed to connect to mongo database: %s", err.Error())
	}
	err = client.Ping(context.TODO(), nil)
	if err != nil {
		log.Fatalf("Failed to ping or test the connection to mongo database: %s", err.Error())
	}
	log.Println("Successfully connected to mongo database")
	return client
}

// MongoConnectionString prefers MONGODB_URI and otherwise assembles one from
// host, port and optional credentials.
func MongoConnectionString(driverConfig *config.DriverConfig) string {
	if driverConfig.MongoDB.URI != "" {
		return driverConfig.MongoDB.URI
	}
	if driverConfig.MongoDB.Username == "" {
		return fmt.Sprintf(
			"mongodb://%s:%s",
			driverConfig.MongoDB.Host,
			driverConfig.MongoDB.Port,
		)
	}
	return fmt.Sprintf(
		"mongodb://%s:%s@%s:%s",
		driverConfig.MongoDB.Username,
		driverConfig.MongoDB.Password,
		driverConfig.MongoDB.Host,
		driverConfig.MongoDB.Port,
	)
}

type mongoPinger struct {
	client *mongo.Client
}

// NewMongoPinger adapts the client to the health check.
func NewMongoPinger(client *mongo.Client) contracts.Pinger {
	return &mongoPinger{client: client}
}

func (p *mongoPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx, nil)
}
