package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/khoavn/devfolio/adapters/event"
	"github.com/khoavn/devfolio/adapters/persistence"
	"github.com/khoavn/devfolio/internal/config"
	"github.com/khoavn/devfolio/pkg/logger"
)

// The worker drains profile change events and drops stale cache entries, so
// every API replica observes fresh data even when another replica wrote.
func main() {
	fmt.Println("Starting Devfolio Worker...")

	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Redis: %v", err)
	}
	defer redisClient.Close()

	// Kafka Consumer
	profileConsumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicProfileEvents,
		GroupID:  "profile-cache-invalidator",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer profileConsumer.Close()

	log.Printf("Worker listening on topic '%s'...", event.TopicProfileEvents)

	ctx := context.Background()
	for {
		msg, err := profileConsumer.ReadMessage(ctx)
		if err != nil {
			log.Printf("ERROR: Failed to read message from Kafka: %v", err)
			continue
		}

		var payload event.ProfileEvent
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			log.Printf("ERROR: Failed to unmarshal event: %v. Skipping.", err)
			commitMessage(profileConsumer, msg)
			continue
		}

		profileID, err := uuid.Parse(payload.ProfileID)
		if err != nil {
			log.Printf("ERROR: Event carries invalid profile ID %q: %v. Skipping.", payload.ProfileID, err)
			commitMessage(profileConsumer, msg)
			continue
		}

		log.Printf("Processing event: [%s] for ProfileID: %s", payload.Type, payload.ProfileID)

		key := persistence.ProfileCacheKey(profileID)
		if err := redisClient.Del(ctx, key).Err(); err != nil {
			log.Printf("ERROR: Failed to invalidate cache for ProfileID %s: %v", payload.ProfileID, err)
			continue
		}

		commitMessage(profileConsumer, msg)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		log.Printf("ERROR: Failed to commit message: %v", err)
	}
}
