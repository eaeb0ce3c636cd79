// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"

	"habit-tracker-be/internal/dto"
	"habit-tracker-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
)

// CacheInvalidator drops cached flag state
type CacheInvalidator interface {
	InvalidateCache(ctx context.Context) error
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService invalidates the enabled-keys cache for every flag change
// delivered on the in-process topic.
type consumerService struct {
	subscriber  message.Subscriber
	topicName   string
	invalidator CacheInvalidator
	logger      logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	invalidator CacheInvalidator,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:  subscriber,
		topicName:   topicName,
		invalidator: invalidator,
		logger:      logger,
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

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.FlagChangedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Warn("FEATURE_CACHE", "Dropping malformed flag change message", map[string]interface{}{"message_id": msg.UUID, "error": err.Error()})
		// Ack invalid messages to prevent infinite redelivery
		msg.Ack()
		return
	}

	if err := cs.invalidator.InvalidateCache(ctx); err != nil {
		// Entries expire with the cache TTL, so a failed invalidation is not redelivered
		cs.logger.Error("FEATURE_CACHE", "Failed to invalidate enabled keys cache", map[string]interface{}{"flag_key": payload.FlagKey, "error": err.Error()})
		msg.Ack()
		return
	}

	cs.logger.Debug("FEATURE_CACHE", "Enabled keys cache invalidated", map[string]interface{}{
		"flag_key": payload.FlagKey,
		"action":   payload.Action,
		"source":   payload.Source,
	})
	msg.Ack()
}
