package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/travel-order-service/internal/config"
	"github.com/spec-kit/travel-order-service/internal/domain"
	"github.com/spec-kit/travel-order-service/internal/events"
	"github.com/spec-kit/travel-order-service/internal/repository"
)

// NotificationService manages user notifications and turns order events
// into notifications for the order owner.
type NotificationService struct {
	notifications repository.UserNotificationRepository
	dispatcher    events.Dispatcher
	logger        *zap.Logger
	cfg           config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(notifications repository.UserNotificationRepository, dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		notifications: notifications,
		dispatcher:    dispatcher,
		logger:        logger,
		cfg:           cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTravelOrderCreated, n.handleOrderCreated)
	n.dispatcher.Subscribe(events.EventTravelOrderStatusChanged, n.handleOrderStatusChanged)
}

// List returns every notification.
func (n *NotificationService) List(ctx context.Context) ([]domain.UserNotification, error) {
	return n.notifications.List(ctx)
}

// Create stores a notification for a user.
func (n *NotificationService) Create(ctx context.Context, userID int64, message string) (*domain.UserNotification, error) {
	notification := &domain.UserNotification{UserID: userID, Message: message}
	if err := n.notifications.Create(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

// Get returns a single notification.
func (n *NotificationService) Get(ctx context.Context, id int64) (*domain.UserNotification, error) {
	return n.notifications.GetByID(ctx, id)
}

// Delete removes a notification.
func (n *NotificationService) Delete(ctx context.Context, id int64) error {
	return n.notifications.Delete(ctx, id)
}

// ListByUser returns the notifications addressed to a user.
func (n *NotificationService) ListByUser(ctx context.Context, userID int64) ([]domain.UserNotification, error) {
	return n.notifications.ListByUser(ctx, userID)
}

func (n *NotificationService) handleOrderCreated(_ context.Context, event events.Event) error {
	n.logger.Info("TravelOrderCreated", zap.Int64("order_id", event.OrderID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleOrderStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("TravelOrderStatusChanged", zap.Int64("order_id", event.OrderID), zap.Any("payload", event.Payload))
	if !n.cfg.OnStatusChange {
		return nil
	}
	payload, ok := event.Payload.(events.TravelOrderStatusChangedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	_, err := n.Create(ctx, event.UserID, StatusChangeMessage(payload.Destiny, payload.NewStatus))
	return err
}

// StatusChangeMessage renders the notification text for a status change.
func StatusChangeMessage(destiny string, status domain.OrderStatus) string {
	return fmt.Sprintf("Your travel order to %s is now %s.", destiny, status)
}
