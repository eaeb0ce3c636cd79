package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"habit-tracker-be/internal/config"
	"habit-tracker-be/internal/dto"
	"habit-tracker-be/internal/entity"
	"habit-tracker-be/internal/pkg/apperror"
	"habit-tracker-be/internal/pkg/logger"
	"habit-tracker-be/internal/pkg/testdb"
	"habit-tracker-be/internal/repository/memory"
	"habit-tracker-be/internal/repository/unitofwork"
	"habit-tracker-be/pkg/admin/dashboard"
	"habit-tracker-be/pkg/admin/export"
	"habit-tracker-be/pkg/admin/feature"
	"habit-tracker-be/pkg/admin/session"
	"habit-tracker-be/pkg/admin/user"
	"habit-tracker-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type publishedEvent struct {
	kind   string
	key    string
	action string
	count  int64
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) record(e publishedEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) PublishFeatureFlagChanged(ctx context.Context, key, action string, actorId uuid.UUID) {
	p.record(publishedEvent{kind: events.FeatureFlagChanged, key: key, action: action})
}

func (p *recordingPublisher) PublishUserRoleUpdated(ctx context.Context, userId uuid.UUID, email string, isAdmin bool, actorId uuid.UUID) {
	p.record(publishedEvent{kind: events.UserRoleUpdated, key: email})
}

func (p *recordingPublisher) PublishSessionsRevoked(ctx context.Context, userId uuid.UUID, sessionId *uuid.UUID, count int64, actorId uuid.UUID) {
	p.record(publishedEvent{kind: events.SessionsRevoked, count: count})
}

func newFeatureService(t *testing.T) (IFeatureFlagService, *recordingPublisher, *gorm.DB) {
	t.Helper()
	db := testdb.New(t)
	pub := &recordingPublisher{}
	svc := NewFeatureFlagService(
		unitofwork.NewRepositoryFactory(db),
		logger.NewNopLogger(),
		feature.NewManager(),
		memory.NewFeatureFlagCache(time.Minute),
		pub,
	)
	return svc, pub, db
}

func TestFeatureFlagService_CacheLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, pub, _ := newFeatureService(t)
	actor := uuid.New()

	_, err := svc.Create(ctx, dto.CreateFeatureFlagRequest{Key: "books", Name: "Books", Enabled: true}, actor)
	require.NoError(t, err)

	keys, err := svc.GetEnabledKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"books"}, keys)

	keys, err = svc.GetEnabledKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"books"}, keys)

	stats := svc.CacheStats()
	assert.Equal(t, "memory", stats.Backend)
	assert.EqualValues(t, 1, stats.Hits)
	assert.EqualValues(t, 1, stats.Misses)
	assert.EqualValues(t, 1, stats.Sets)
	assert.EqualValues(t, 1, stats.Invalidations)

	off := false
	_, err = svc.Update(ctx, "books", dto.UpdateFeatureFlagRequest{Enabled: &off}, actor)
	require.NoError(t, err)

	keys, err = svc.GetEnabledKeys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)

	require.NoError(t, svc.Delete(ctx, "books", actor))

	require.Len(t, pub.events, 3)
	assert.Equal(t, "CREATED", pub.events[0].action)
	assert.Equal(t, "TOGGLED", pub.events[1].action)
	assert.Equal(t, "DELETED", pub.events[2].action)

	log, err := svc.GetAuditLog(ctx, dto.AuditLogQuery{FlagKey: "books"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, log.Total)
	assert.Equal(t, feature.DefaultAuditLimit, log.Limit)
}

func TestFeatureFlagService_FailedMutationLeavesNoTrace(t *testing.T) {
	ctx := context.Background()
	svc, pub, _ := newFeatureService(t)

	_, err := svc.Create(ctx, dto.CreateFeatureFlagRequest{Key: "dup", Name: "Dup"}, uuid.New())
	require.NoError(t, err)
	_, err = svc.Create(ctx, dto.CreateFeatureFlagRequest{Key: "dup", Name: "Dup again"}, uuid.New())
	assert.True(t, apperror.Is(err, apperror.KindConflict))

	err = svc.Delete(ctx, "missing", uuid.New())
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	log, err := svc.GetAuditLog(ctx, dto.AuditLogQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, log.Total)
	assert.Len(t, pub.events, 1)
}

// racingCache runs onMiss between a cache miss and the storage read.
type racingCache struct {
	*memory.FeatureFlagCache
	onMiss func()
}

func (c *racingCache) Get(ctx context.Context) ([]string, bool, error) {
	keys, ok, err := c.FeatureFlagCache.Get(ctx)
	if !ok && c.onMiss != nil {
		hook := c.onMiss
		c.onMiss = nil
		hook()
	}
	return keys, ok, err
}

func TestFeatureFlagService_InvalidationDuringMissSkipsFill(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	cache := &racingCache{FeatureFlagCache: memory.NewFeatureFlagCache(time.Minute)}
	svc := NewFeatureFlagService(
		unitofwork.NewRepositoryFactory(db),
		logger.NewNopLogger(),
		feature.NewManager(),
		cache,
		&recordingPublisher{},
	)
	actor := uuid.New()

	cache.onMiss = func() {
		require.NoError(t, svc.InvalidateCache(ctx))
	}
	keys, err := svc.GetEnabledKeys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
	assert.EqualValues(t, 0, svc.CacheStats().Sets)

	_, cached, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.False(t, cached)

	_, err = svc.Create(ctx, dto.CreateFeatureFlagRequest{Key: "books", Name: "Books", Enabled: true}, actor)
	require.NoError(t, err)

	keys, err = svc.GetEnabledKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"books"}, keys)
	assert.EqualValues(t, 1, svc.CacheStats().Sets)
}

type failingInvalidator struct {
	calls atomic.Int32
	err   error
}

func (f *failingInvalidator) InvalidateCache(ctx context.Context) error {
	f.calls.Add(1)
	return f.err
}

func TestConsumerService_InvalidatesOnFlagChange(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	svc, _, _ := newFeatureService(t)
	consumer := NewConsumerService(pubSub, "feature_flags", svc, logger.NewNopLogger())
	require.NoError(t, consumer.Consume(ctx))

	forward := ForwardFlagChanges(NewPublisherService(pubSub, "feature_flags"))
	require.NoError(t, forward(ctx, events.BaseEvent{
		Type: events.FeatureFlagChanged,
		Data: map[string]interface{}{"flag_key": "books", "action": "TOGGLED"},
	}))
	// other event types are ignored
	require.NoError(t, forward(ctx, events.BaseEvent{Type: events.UserRoleUpdated}))

	assert.Eventually(t, func() bool {
		return svc.CacheStats().Invalidations == 1
	}, time.Second, 10*time.Millisecond)
}

func TestConsumerService_AcksMalformedAndFailedMessages(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	inv := &failingInvalidator{err: errors.New("redis down")}
	require.NoError(t, NewConsumerService(pubSub, "feature_flags", inv, logger.NewNopLogger()).Consume(ctx))

	publisher := NewPublisherService(pubSub, "feature_flags")
	require.NoError(t, publisher.Publish(ctx, []byte("not json")))
	payload, _ := json.Marshal(dto.FlagChangedMessage{FlagKey: "x"})
	require.NoError(t, publisher.Publish(ctx, payload))

	// the malformed message is dropped and the failed invalidation is not redelivered
	assert.Eventually(t, func() bool {
		return inv.calls.Load() == 1
	}, time.Second, 10*time.Millisecond)
	assert.Never(t, func() bool {
		return inv.calls.Load() > 1
	}, 100*time.Millisecond, 10*time.Millisecond)
}

func newAdminService(t *testing.T, exportLimit int) (IAdminService, *recordingPublisher, unitofwork.UnitOfWork) {
	t.Helper()
	db := testdb.New(t)
	pub := &recordingPublisher{}
	log := logger.NewNopLogger()
	svc := NewAdminService(
		unitofwork.NewRepositoryFactory(db),
		log,
		user.NewManager(),
		session.NewManager(),
		dashboard.NewAggregator(log),
		export.NewExporter(exportLimit),
		pub,
	)
	return svc, pub, unitofwork.NewUnitOfWork(db)
}

func TestAdminService_UpdateUserRole(t *testing.T) {
	ctx := context.Background()
	svc, pub, uow := newAdminService(t, 0)

	admin := &entity.User{Name: "Admin", Email: "admin@example.com", IsAdmin: true}
	member := &entity.User{Name: "Member", Email: "member@example.com"}
	require.NoError(t, uow.UserRepository().Create(ctx, admin))
	require.NoError(t, uow.UserRepository().Create(ctx, member))

	_, err := svc.UpdateUserRole(ctx, admin.Id, false, admin.Id)
	assert.Equal(t, 400, apperror.StatusOf(err))
	isAdmin, err := svc.IsAdmin(ctx, admin.Id)
	require.NoError(t, err)
	assert.True(t, isAdmin)

	res, err := svc.UpdateUserRole(ctx, member.Id, true, admin.Id)
	require.NoError(t, err)
	assert.True(t, res.IsAdmin)
	require.Len(t, pub.events, 1)
	assert.Equal(t, events.UserRoleUpdated, pub.events[0].kind)

	isAdmin, err = svc.IsAdmin(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, isAdmin)
}

func TestAdminService_ExportData(t *testing.T) {
	ctx := context.Background()
	svc, _, uow := newAdminService(t, 2)

	u := &entity.User{Name: "Lee", Email: "lee@example.com"}
	require.NoError(t, uow.UserRepository().Create(ctx, u))
	h := &entity.Habit{UserId: u.Id, Name: "Walk", Color: "#123", Frequency: entity.HabitFrequencyDaily, HabitType: "boolean", IsActive: true}
	require.NoError(t, uow.HabitRepository().Create(ctx, h))
	for i := 0; i < 4; i++ {
		require.NoError(t, uow.HabitLogRepository().Create(ctx, &entity.HabitLog{HabitId: h.Id, UserId: u.Id, Date: time.Now().UTC().AddDate(0, 0, -i), Completed: true}))
	}

	file, err := svc.ExportData(ctx, "logs")
	require.NoError(t, err)
	assert.Equal(t, 2, file.Rows)
	assert.Regexp(t, `^logs-export-\d+\.csv$`, file.Filename)

	_, err = svc.ExportData(ctx, "invalid-type")
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestAdminService_Sessions(t *testing.T) {
	ctx := context.Background()
	svc, pub, uow := newAdminService(t, 0)

	u := &entity.User{Name: "Kim", Email: "kim@example.com"}
	require.NoError(t, uow.UserRepository().Create(ctx, u))
	s := &entity.Session{UserId: u.Id, TokenHash: "h1", ExpiresAt: time.Now().UTC().Add(time.Hour)}
	require.NoError(t, uow.SessionRepository().Create(ctx, s))
	require.NoError(t, uow.SessionRepository().Create(ctx, &entity.Session{UserId: u.Id, TokenHash: "h2", ExpiresAt: time.Now().UTC().Add(time.Hour)}))

	sessions, err := svc.GetActiveSessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "kim@example.com", sessions[0].User.Email)

	require.NoError(t, svc.RevokeSession(ctx, s.Id, uuid.New()))
	assert.Equal(t, 404, apperror.StatusOf(svc.RevokeSession(ctx, s.Id, uuid.New())))

	count, err := svc.RevokeAllUserSessions(ctx, u.Id, uuid.New())
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
	require.Len(t, pub.events, 2)
	assert.EqualValues(t, 1, pub.events[1].count)
}

type stubRequests struct{}

func (stubRequests) Snapshot() dto.RequestStats {
	return dto.RequestStats{Total: 7, ByMethod: map[string]int64{"GET": 7}}
}

type stubBus struct{ err error }

func (b stubBus) Ping() error { return b.err }

func TestSystemService_GetSystemStats(t *testing.T) {
	db := testdb.New(t)
	featureSvc, _, _ := newFeatureService(t)
	cfg := &config.Config{App: config.AppConfig{Name: "habit-tracker-be", Version: "1.2.3", Environment: "test"}}
	started := time.Now().Add(-time.Minute)

	svc := NewSystemService(cfg, db, nil, stubBus{err: errors.New("disconnected")}, featureSvc, stubRequests{}, started)
	stats, err := svc.GetSystemStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "1.2.3", stats.Application.Version)
	assert.GreaterOrEqual(t, stats.Application.Uptime, 60.0)
	assert.Greater(t, stats.Memory.Goroutines, 0)
	assert.Equal(t, "up", stats.Dependencies["database"].Status)
	assert.Equal(t, "not_configured", stats.Dependencies["redis"].Status)
	assert.Equal(t, "down", stats.Dependencies["nats"].Status)
	assert.Equal(t, "memory", stats.FeatureCache.Backend)
	assert.EqualValues(t, 7, stats.Requests.Total)
}
