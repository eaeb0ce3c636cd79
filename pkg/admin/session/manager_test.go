package session

import (
	"context"
	"testing"
	"time"

	"habit-tracker-be/internal/entity"
	"habit-tracker-be/internal/pkg/apperror"
	"habit-tracker-be/internal/pkg/testdb"
	"habit-tracker-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (unitofwork.UnitOfWork, *entity.User) {
	t.Helper()
	uow := unitofwork.NewUnitOfWork(testdb.New(t))
	u := &entity.User{Name: "Sam", Email: "sam@example.com"}
	require.NoError(t, uow.UserRepository().Create(context.Background(), u))
	return uow, u
}

func addSession(t *testing.T, uow unitofwork.UnitOfWork, userId uuid.UUID, createdAt, expiresAt time.Time) *entity.Session {
	t.Helper()
	s := &entity.Session{UserId: userId, TokenHash: uuid.NewString(), CreatedAt: createdAt, ExpiresAt: expiresAt}
	require.NoError(t, uow.SessionRepository().Create(context.Background(), s))
	return s
}

func TestManager_GetActive(t *testing.T) {
	uow, u := setup(t)
	now := time.Now().UTC()

	older := addSession(t, uow, u.Id, now.Add(-2*time.Hour), now.Add(time.Hour))
	newer := addSession(t, uow, u.Id, now.Add(-time.Hour), now.Add(time.Hour))
	addSession(t, uow, u.Id, now.Add(-3*time.Hour), now.Add(-time.Minute))

	sessions, err := NewManager().GetActive(context.Background(), uow, now)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, newer.Id, sessions[0].Id)
	assert.Equal(t, older.Id, sessions[1].Id)
	require.NotNil(t, sessions[0].User)
	assert.Equal(t, "sam@example.com", sessions[0].User.Email)
}

func TestManager_RevokeTwice(t *testing.T) {
	uow, u := setup(t)
	now := time.Now().UTC()
	s := addSession(t, uow, u.Id, now, now.Add(time.Hour))
	m := NewManager()

	revoked, err := m.Revoke(context.Background(), uow, s.Id)
	require.NoError(t, err)
	assert.Equal(t, u.Id, revoked.UserId)

	_, err = m.Revoke(context.Background(), uow, s.Id)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestManager_RevokeAllForUser(t *testing.T) {
	uow, u := setup(t)
	now := time.Now().UTC()
	m := NewManager()

	other := &entity.User{Name: "Other", Email: "other@example.com"}
	require.NoError(t, uow.UserRepository().Create(context.Background(), other))

	addSession(t, uow, u.Id, now, now.Add(time.Hour))
	addSession(t, uow, u.Id, now, now.Add(-time.Hour))
	addSession(t, uow, other.Id, now, now.Add(time.Hour))

	count, err := m.RevokeAllForUser(context.Background(), uow, u.Id)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	count, err = m.RevokeAllForUser(context.Background(), uow, u.Id)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	remaining, err := m.GetActive(context.Background(), uow, now)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)

	_, err = m.RevokeAllForUser(context.Background(), uow, uuid.New())
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}
