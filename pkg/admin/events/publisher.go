package events

import (
	"context"
	"time"

	"habit-tracker-be/internal/pkg/logger"
	pkgEvents "habit-tracker-be/pkg/events"

	"github.com/google/uuid"
)

// Publisher abstracts event publishing for admin operations
type Publisher interface {
	PublishFeatureFlagChanged(ctx context.Context, key, action string, actorId uuid.UUID)
	PublishUserRoleUpdated(ctx context.Context, userId uuid.UUID, email string, isAdmin bool, actorId uuid.UUID)
	PublishSessionsRevoked(ctx context.Context, userId uuid.UUID, sessionId *uuid.UUID, count int64, actorId uuid.UUID)
}

// EventSink is the transport used by NatsPublisher (*nats.Publisher in production).
type EventSink interface {
	Publish(ctx context.Context, event pkgEvents.Event) error
}

// NatsPublisher implements Publisher using NATS. A nil sink disables publishing.
type NatsPublisher struct {
	sink   EventSink
	logger logger.ILogger
}

func NewNatsPublisher(sink EventSink, logger logger.ILogger) *NatsPublisher {
	return &NatsPublisher{
		sink:   sink,
		logger: logger,
	}
}

func (p *NatsPublisher) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if p.sink == nil {
		return
	}

	now := time.Now().UTC()
	data["occurred_at"] = now
	evt := pkgEvents.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: now,
	}

	if err := p.sink.Publish(ctx, evt); err != nil {
		p.logger.Error("ADMIN", "Failed to publish "+eventType+" event", map[string]interface{}{"error": err.Error()})
	}
}

// PublishFeatureFlagChanged emits FEATURE_FLAG_CHANGED
func (p *NatsPublisher) PublishFeatureFlagChanged(ctx context.Context, key, action string, actorId uuid.UUID) {
	p.publish(ctx, pkgEvents.FeatureFlagChanged, map[string]interface{}{
		"flag_key":     key,
		"action":       action,
		"performed_by": actorId.String(),
		"entity_type":  "feature_flag",
		"entity_id":    key,
	})
}

// PublishUserRoleUpdated emits USER_ROLE_UPDATED
func (p *NatsPublisher) PublishUserRoleUpdated(ctx context.Context, userId uuid.UUID, email string, isAdmin bool, actorId uuid.UUID) {
	p.publish(ctx, pkgEvents.UserRoleUpdated, map[string]interface{}{
		"user_id":      userId.String(),
		"email":        email,
		"is_admin":     isAdmin,
		"performed_by": actorId.String(),
		"entity_type":  "user",
		"entity_id":    userId.String(),
	})
}

// PublishSessionsRevoked emits SESSIONS_REVOKED; sessionId is set for single revocations.
func (p *NatsPublisher) PublishSessionsRevoked(ctx context.Context, userId uuid.UUID, sessionId *uuid.UUID, count int64, actorId uuid.UUID) {
	data := map[string]interface{}{
		"user_id":       userId.String(),
		"revoked_count": count,
		"performed_by":  actorId.String(),
		"entity_type":   "session",
		"entity_id":     userId.String(),
	}
	if sessionId != nil {
		data["session_id"] = sessionId.String()
		data["entity_id"] = sessionId.String()
	}
	p.publish(ctx, pkgEvents.SessionsRevoked, data)
}
