package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/pawup/shelter-api/internal/config"
	"github.com/pawup/shelter-api/internal/events"
)

// CacheInvalidator drops derived data after catalogue writes.
type CacheInvalidator interface {
	InvalidateNewest(ctx context.Context) error
}

// NotificationService reacts to domain events: it keeps the newest-animals
// cache coherent and emits notification stubs.
type NotificationService struct {
	dispatcher events.Dispatcher
	cache      CacheInvalidator
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, cache CacheInvalidator, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		cache:      cache,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserSignedUp, n.handleUserSignedUp)
	n.dispatcher.Subscribe(events.EventUserAccessChanged, n.handleAudit)
	n.dispatcher.Subscribe(events.EventUserDeleted, n.handleAudit)
	n.dispatcher.Subscribe(events.EventAnimalAdded, n.handleAnimalChanged)
	n.dispatcher.Subscribe(events.EventAnimalUpdated, n.handleAnimalChanged)
	n.dispatcher.Subscribe(events.EventAnimalDeleted, n.handleAnimalChanged)
	n.dispatcher.Subscribe(events.EventAssociationAdded, n.handleAssociationAdded)
}

func (n *NotificationService) handleUserSignedUp(ctx context.Context, event events.Event) error {
	n.logger.Info("UserSignedUp", zap.String("user_id", event.SubjectID))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleAudit(_ context.Context, event events.Event) error {
	n.logger.Info("UserChanged",
		zap.String("event_type", string(event.Type)),
		zap.String("user_id", event.SubjectID),
		zap.String("actor_id", event.Actor.UserID),
		zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleAnimalChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("AnimalChanged",
		zap.String("event_type", string(event.Type)),
		zap.String("animal_id", event.SubjectID),
		zap.Any("payload", event.Payload))
	if n.cache != nil {
		if err := n.cache.InvalidateNewest(ctx); err != nil {
			return err
		}
	}
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleAssociationAdded(ctx context.Context, event events.Event) error {
	n.logger.Info("AssociationAdded", zap.String("association_id", event.SubjectID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("subject_id", event.SubjectID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("subject_id", event.SubjectID),
		zap.String("event_type", string(event.Type)))
}
