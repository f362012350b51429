package persistence

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/khoavn/devfolio/internal/config"
	"github.com/khoavn/devfolio/pkg/logger"
)

func NewMongoClient(cfg config.Config, log logger.Logger) (*mongo.Client, error) {
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("do not create mongo client: %w", err)
	}

	if err := client.Ping(context.Background(), readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo failed: %w", err)
	}

	log.Info("Connect MongoDB successfully.")
	return client, nil
}
