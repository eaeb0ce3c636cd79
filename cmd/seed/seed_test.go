package main

import (
	"context"
	"testing"

	"habit-tracker-be/internal/dto"
	"habit-tracker-be/internal/entity"
	"habit-tracker-be/internal/pkg/testdb"
	"habit-tracker-be/internal/repository/specification"
	"habit-tracker-be/internal/repository/unitofwork"
	"habit-tracker-be/pkg/admin/feature"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSeedAdmin(t *testing.T) {
	ctx := context.Background()
	uow := unitofwork.NewUnitOfWork(testdb.New(t))

	_, err := SeedAdmin(ctx, uow, "Admin@Example.com", "short")
	assert.Error(t, err)

	id, err := SeedAdmin(ctx, uow, "Admin@Example.com", "correct-horse")
	require.NoError(t, err)

	admin, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: id})
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, "admin@example.com", admin.Email)
	assert.True(t, admin.IsAdmin)
	require.NotNil(t, admin.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*admin.PasswordHash), []byte("correct-horse")))

	again, err := SeedAdmin(ctx, uow, "admin@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, id, again)
}

func TestSeedAdmin_PromotesExistingUser(t *testing.T) {
	ctx := context.Background()
	uow := unitofwork.NewUnitOfWork(testdb.New(t))

	member := &entity.User{Name: "Sam", Email: "sam@example.com"}
	require.NoError(t, uow.UserRepository().Create(ctx, member))

	id, err := SeedAdmin(ctx, uow, "sam@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, member.Id, id)

	promoted, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: id})
	require.NoError(t, err)
	assert.True(t, promoted.IsAdmin)
}

func TestSeedFeatureFlags_Idempotent(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	factory := unitofwork.NewRepositoryFactory(db)
	manager := feature.NewManager()
	actor := uuid.New()

	created, err := SeedFeatureFlags(ctx, factory, manager, actor)
	require.NoError(t, err)
	assert.Equal(t, len(defaultFlags), created)

	created, err = SeedFeatureFlags(ctx, factory, manager, actor)
	require.NoError(t, err)
	assert.Zero(t, created)

	keys, err := manager.GetEnabledKeys(ctx, factory.NewUnitOfWork(ctx))
	require.NoError(t, err)
	assert.Empty(t, keys)

	_, total, err := manager.GetAuditLog(ctx, factory.NewUnitOfWork(ctx), dto.AuditLogQuery{FlagKey: "ai_insights"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}
