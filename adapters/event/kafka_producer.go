package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/khoavn/devfolio/internal/config"
)

const TopicProfileEvents = "profile.events"

type ProfileEventType string

const (
	ProfileCreated ProfileEventType = "profile.created"
	ProfileUpdated ProfileEventType = "profile.updated"
	ProfileDeleted ProfileEventType = "profile.deleted"
)

// ProfileEvent is the envelope published after every successful write.
// Consumers (the cache-invalidation worker) key on the profile id.
type ProfileEvent struct {
	Type       ProfileEventType `json:"type"`
	ProfileID  string           `json:"profile_id"`
	OccurredAt time.Time        `json:"occurred_at"`
}

type KafkaProducerClient struct {
	ProfileEventsWriter *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicProfileEvents,
		Balancer: &kafka.LeastBytes{},
	}

	return &KafkaProducerClient{ProfileEventsWriter: writer}, nil
}

func (c *KafkaProducerClient) PublishProfileEvent(ctx context.Context, evt ProfileEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal profile event: %w", err)
	}
	return c.ProfileEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(evt.ProfileID),
		Value: payload,
	})
}

func (c *KafkaProducerClient) Close() {
	if c.ProfileEventsWriter != nil {
		c.ProfileEventsWriter.Close()
	}
}
