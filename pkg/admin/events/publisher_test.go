package events

import (
	"context"
	"errors"
	"testing"

	"habit-tracker-be/internal/pkg/logger"
	pkgEvents "habit-tracker-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	events []pkgEvents.Event
	err    error
}

func (s *recordingSink) Publish(ctx context.Context, event pkgEvents.Event) error {
	s.events = append(s.events, event)
	return s.err
}

func TestNatsPublisher_FeatureFlagChanged(t *testing.T) {
	sink := &recordingSink{}
	p := NewNatsPublisher(sink, logger.NewNopLogger())
	actor := uuid.New()

	p.PublishFeatureFlagChanged(context.Background(), "dark_mode", "TOGGLED", actor)

	require.Len(t, sink.events, 1)
	evt := sink.events[0]
	assert.Equal(t, pkgEvents.FeatureFlagChanged, evt.EventType())
	assert.Equal(t, "dark_mode", evt.Payload()["flag_key"])
	assert.Equal(t, "TOGGLED", evt.Payload()["action"])
	assert.Equal(t, actor.String(), evt.Payload()["performed_by"])
	assert.False(t, evt.Timestamp().IsZero())
}

func TestNatsPublisher_SessionsRevoked(t *testing.T) {
	sink := &recordingSink{}
	p := NewNatsPublisher(sink, logger.NewNopLogger())
	userId, sessionId := uuid.New(), uuid.New()

	p.PublishSessionsRevoked(context.Background(), userId, nil, 3, uuid.New())
	p.PublishSessionsRevoked(context.Background(), userId, &sessionId, 1, uuid.New())

	require.Len(t, sink.events, 2)
	assert.EqualValues(t, 3, sink.events[0].Payload()["revoked_count"])
	assert.NotContains(t, sink.events[0].Payload(), "session_id")
	assert.Equal(t, sessionId.String(), sink.events[1].Payload()["session_id"])
}

func TestNatsPublisher_NilSinkAndErrors(t *testing.T) {
	p := NewNatsPublisher(nil, logger.NewNopLogger())
	assert.NotPanics(t, func() {
		p.PublishUserRoleUpdated(context.Background(), uuid.New(), "a@b.c", true, uuid.New())
	})

	failing := &recordingSink{err: errors.New("nats down")}
	p = NewNatsPublisher(failing, logger.NewNopLogger())
	assert.NotPanics(t, func() {
		p.PublishUserRoleUpdated(context.Background(), uuid.New(), "a@b.c", false, uuid.New())
	})
	assert.Len(t, failing.events, 1)
}
