package worker

import (
	"go.uber.org/zap"

	"github.com/pawup/shelter-api/internal/config"
	"github.com/pawup/shelter-api/internal/events"
	"github.com/pawup/shelter-api/internal/service"
)

// StartNotificationWorker subscribes the notification handlers to dispatcher.
// With no dispatcher there is nothing to listen to and nil is returned.
func StartNotificationWorker(dispatcher events.Dispatcher, cache service.CacheInvalidator, logger *zap.Logger, cfg config.NotificationConfig) *service.NotificationService {
	if dispatcher == nil {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	notifications := service.NewNotificationService(dispatcher, cache, logger.Named("notifications"), cfg)
	notifications.RegisterHandlers()
	return notifications
}
