package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/cookfarm/pantry-service/internal/events"
)

// NotificationService reports domain events. Delivery is log-only.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventIngredientAdded, n.handleIngredientChange)
	n.dispatcher.Subscribe(events.EventIngredientUpdated, n.handleIngredientChange)
	n.dispatcher.Subscribe(events.EventIngredientDeleted, n.handleIngredientChange)
	n.dispatcher.Subscribe(events.EventIngredientsExpired, n.handleIngredientsExpired)
}

func (n *NotificationService) handleIngredientChange(_ context.Context, event events.Event) error {
	payload, _ := event.Payload.(events.IngredientPayload)
	n.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.String("ingredient_id", payload.IngredientID),
		zap.String("user_id", payload.UserID),
		zap.String("expiry_date", payload.ExpiryDate.String()))
	return nil
}

func (n *NotificationService) handleIngredientsExpired(_ context.Context, event events.Event) error {
	payload, _ := event.Payload.(events.IngredientsExpiredPayload)
	if payload.Count == 0 {
		n.logger.Debug("no expired ingredients", zap.String("as_of", payload.AsOf.String()))
		return nil
	}
	n.logger.Warn("ingredients expired",
		zap.String("as_of", payload.AsOf.String()),
		zap.Int("count", payload.Count))
	return nil
}
