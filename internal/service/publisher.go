package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/pawup/shelter-api/internal/auth"
	"github.com/pawup/shelter-api/internal/events"
)

type publisher struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

func newPublisher(dispatcher events.Dispatcher, logger *zap.Logger) publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return publisher{dispatcher: dispatcher, logger: logger}
}

// publish emits an event attributed to the identity stored in ctx. Handler
// failures are logged and never fail the originating operation.
func (p publisher) publish(ctx context.Context, eventType events.EventType, subjectID string, payload any) {
	if p.dispatcher == nil {
		return
	}
	event := events.New(eventType, subjectID, actorFrom(ctx), payload)
	if err := p.dispatcher.Publish(ctx, event); err != nil {
		p.logger.Warn("event handler failed",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(eventType)),
			zap.Error(err))
	}
}

func actorFrom(ctx context.Context) events.Actor {
	identity, ok := auth.IdentityFrom(ctx)
	if !ok {
		return events.Actor{}
	}
	return events.Actor{UserID: identity.ID, Access: identity.Access}
}
