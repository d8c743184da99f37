package service

import (
	"context"
	"fmt"

	"learnloop-be/internal/dto"
	"learnloop-be/internal/pkg/logger"
	"learnloop-be/pkg/events"
	pktNats "learnloop-be/pkg/nats"

	"github.com/google/uuid"
)

// EventSubscriber is satisfied by the NATS JetStream subscriber.
type EventSubscriber interface {
	Subscribe(ctx context.Context, eventType, durableName string, handler pktNats.EventHandler) error
}

// NotificationService forwards domain events from the bus to connected websocket clients.
type NotificationService struct {
	subscriber EventSubscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(sub EventSubscriber, delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start attaches durable consumers for every event type that produces a notification.
func (s *NotificationService) Start(ctx context.Context) error {
	subscriptions := []struct {
		eventType string
		durable   string
	}{
		{events.TypeBadgeAwarded, "notification-badge-worker"},
		{events.TypePlaylistCompleted, "notification-playlist-worker"},
	}

	for _, sub := range subscriptions {
		if err := s.subscriber.Subscribe(ctx, sub.eventType, sub.durable, s.HandleEvent); err != nil {
			s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{
				"event": sub.eventType,
				"error": err.Error(),
			})
			return err
		}
	}
	s.logger.Info("NotificationService", "Notification service started", nil)
	return nil
}

func (s *NotificationService) HandleEvent(ctx context.Context, event events.Event) error {
	userId, ok := events.UserID(event)
	if !ok {
		s.logger.Warn("NotificationService", fmt.Sprintf("Event %s has no user_id", event.EventType()), nil)
		return nil
	}

	notification, ok := notificationFromEvent(event)
	if !ok {
		return nil
	}

	s.delivery.Send(userId, notification)
	s.logger.Info("NotificationService", "Notification delivered", map[string]interface{}{
		"type":    notification.Type,
		"user_id": userId,
	})
	return nil
}

func notificationFromEvent(event events.Event) (dto.Notification, bool) {
	payload := event.Payload()

	switch event.EventType() {
	case events.TypeBadgeAwarded:
		title, _ := payload["title"].(string)
		description, _ := payload["description"].(string)
		icon, _ := payload["icon"].(string)
		return dto.Notification{
			Type:      dto.NotificationBadgeEarned,
			Title:     title,
			Message:   description,
			IconUrl:   icon,
			Data:      payload,
			CreatedAt: event.Timestamp(),
		}, true

	case events.TypePlaylistCompleted:
		name, _ := payload["name"].(string)
		return dto.Notification{
			Type:      dto.NotificationPlaylistCompleted,
			Title:     "Playlist completed",
			Message:   fmt.Sprintf("You completed every video in \"%s\"", name),
			Data:      payload,
			CreatedAt: event.Timestamp(),
		}, true
	}

	return dto.Notification{}, false
}

// dispatchEvent publishes the event to the bus. Without a bus, or when
// publishing fails, the notification goes straight to the local delivery.
func dispatchEvent(ctx context.Context, publisher events.Publisher, delivery NotificationDelivery, log logger.ILogger, userId uuid.UUID, event events.Event) {
	if publisher != nil {
		err := publisher.Publish(ctx, event)
		if err == nil {
			return
		}
		log.Warn("EVENTS", "Failed to publish event, delivering directly", map[string]interface{}{
			"type":    event.EventType(),
			"user_id": userId,
			"error":   err.Error(),
		})
	}

	if delivery == nil {
		return
	}
	if n, ok := notificationFromEvent(event); ok {
		delivery.Send(userId, n)
	}
}
