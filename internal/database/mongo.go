package database

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ConnectMongo dials MongoDB and verifies the connection with a ping,
// retrying with exponential backoff so a slow-starting database does not
// kill the process.
func ConnectMongo(uri, dbName string, logger *zap.SugaredLogger) (*mongo.Database, *mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var client *mongo.Client
	operation := func() error {
		c, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err != nil {
			logger.Warnf("mongo connect attempt failed: %v", err)
			return err
		}
		if err := c.Ping(ctx, nil); err != nil {
			logger.Warnf("mongo ping attempt failed: %v", err)
			_ = c.Disconnect(ctx)
			return err
		}
		client = c
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = 25 * time.Second
	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, nil, err
	}

	logger.Info("MongoDB connected")
	return client.Database(dbName), client, nil
}
