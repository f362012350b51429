package profile

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoavn/devfolio/adapters/event"
	"github.com/khoavn/devfolio/pkg/logger"
)

// EventPublisher is what the use cases need from the messaging adapter.
// A nil publisher disables eventing (single-instance deployments).
type EventPublisher interface {
	PublishProfileEvent(ctx context.Context, evt event.ProfileEvent) error
}

// publishProfileEvent emits best-effort: a broker failure is logged, never
// turned into a request failure.
func publishProfileEvent(ctx context.Context, events EventPublisher, log logger.Logger, typ event.ProfileEventType, id uuid.UUID) {
	if events == nil {
		return
	}
	evt := event.ProfileEvent{
		Type:       typ,
		ProfileID:  id.String(),
		OccurredAt: time.Now().UTC(),
	}
	if err := events.PublishProfileEvent(ctx, evt); err != nil {
		log.Warn("failed to publish profile event",
			zap.String("type", string(typ)),
			zap.String("profile_id", id.String()),
			zap.Error(err),
		)
	}
}
