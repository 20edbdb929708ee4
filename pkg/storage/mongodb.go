package storage

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/evenup-app/evenup/pkg/config"
)

const connectTimeout = 10 * time.Second

// NewMongoDB connects to the document store and returns the events
// collection. The caller owns the client and should disconnect it on
// shutdown.
func NewMongoDB(ctx context.Context, c config.MongoDB) (*mongo.Client, *mongo.Collection, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(c.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongodb: %v", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, fmt.Errorf("failed to ping mongodb: %v", err)
	}

	collection := client.Database(c.DatabaseName).Collection(c.Collection)
	return client, collection, nil
}
