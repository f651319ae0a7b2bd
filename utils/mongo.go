package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var Client *mongo.Client

// ConnectMongo initializes the MongoDB connection
func ConnectMongo(ctx context.Context, uri string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping mongodb: %w", err)
	}

	Client = client
	log.Info().Msg("Connected to MongoDB")
	return nil
}

// DisconnectMongo closes the MongoDB connection if one is open
func DisconnectMongo(ctx context.Context) {
	if Client == nil {
		return
	}
	if err := Client.Disconnect(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to disconnect from MongoDB")
	}
	Client = nil
}

// GetCollection returns a handle to a MongoDB collection
func GetCollection(databaseName, collectionName string) (*mongo.Collection, error) {
	if Client == nil {
		return nil, fmt.Errorf("mongodb client is not initialized")
	}
	return Client.Database(databaseName).Collection(collectionName), nil
}
