// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"

	"learnloop-be/internal/dto"
	"learnloop-be/internal/pkg/logger"
	"learnloop-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService folds activity messages into the per-day counters used for streaks.
type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	cs.logger.Info("CONSUMER", "Activity consumer started", map[string]interface{}{"topic": cs.topicName})
	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.ActivityMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Warn("CONSUMER", "Dropping malformed activity message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack()
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.UserActivityRepository().Increment(ctx, payload.UserId, activityDay(payload.OccurredAt)); err != nil {
		// gochannel redelivers a nack immediately, so a broken database would spin here
		cs.logger.Error("CONSUMER", "Failed to record activity", map[string]interface{}{
			"user_id": payload.UserId,
			"kind":    payload.Kind,
			"error":   err.Error(),
		})
		msg.Ack()
		return
	}

	msg.Ack()
}
