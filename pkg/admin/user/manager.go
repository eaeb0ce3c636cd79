package user

import (
	"context"
	"fmt"

	"habit-tracker-be/internal/dto"
	"habit-tracker-be/internal/entity"
	"habit-tracker-be/internal/pkg/apperror"
	"habit-tracker-be/internal/repository/specification"
	"habit-tracker-be/internal/repository/unitofwork"
	"habit-tracker-be/pkg/admin/mapper"

	"github.com/google/uuid"
)

// RecentContentLimit caps books and challenges in the user detail view
const RecentContentLimit = 20

// Manager handles admin user operations
type Manager struct{}

// NewManager creates a new user manager
func NewManager() *Manager {
	return &Manager{}
}

// List returns one page of user summaries and the filtered total
func (m *Manager) List(ctx context.Context, uow unitofwork.UnitOfWork, params dto.UserListParams) (*dto.UserListResult, error) {
	q := BuildListQuery(params)

	total, err := uow.UserRepository().Count(ctx, q.Filters()...)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	users, err := uow.UserRepository().FindSummaries(ctx, q.Specifications()...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return &dto.UserListResult{
		Users: mapper.UserSummariesToResponse(users),
		Total: total,
		Page:  q.Page,
		Limit: q.Limit,
	}, nil
}

// UpdateRole sets isAdmin on a user. The self-demotion guard runs before any lookup.
func (m *Manager) UpdateRole(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, isAdmin bool, actorId uuid.UUID) (*entity.User, error) {
	if err := AssertNotSelfDemotion(actorId, userId, isAdmin); err != nil {
		return nil, err
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFound("User", userId)
	}

	if err := uow.UserRepository().UpdateRole(ctx, userId, isAdmin); err != nil {
		return nil, fmt.Errorf("update user role: %w", err)
	}
	user.IsAdmin = isAdmin
	return user, nil
}

// Detail returns the user with related counts, all habits and recent books and challenges
func (m *Manager) Detail(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*dto.UserDetailResponse, error) {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFound("User", userId)
	}

	counts, err := uow.UserRepository().CountRelated(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("count related records: %w", err)
	}

	owned := specification.UserOwnedBy{UserID: userId}
	newest := specification.OrderBy{Field: "created_at", Desc: true}

	habits, err := uow.HabitRepository().FindAll(ctx, owned, newest)
	if err != nil {
		return nil, err
	}
	books, err := uow.BookRepository().FindAll(ctx, owned, newest, specification.Limit{N: RecentContentLimit})
	if err != nil {
		return nil, err
	}
	challenges, err := uow.ChallengeRepository().FindAll(ctx, owned, newest, specification.Limit{N: RecentContentLimit})
	if err != nil {
		return nil, err
	}

	return mapper.UserToDetailResponse(user, counts, habits, books, challenges), nil
}
