package session

import (
	"context"
	"fmt"
	"time"

	"habit-tracker-be/internal/entity"
	"habit-tracker-be/internal/pkg/apperror"
	"habit-tracker-be/internal/repository/specification"
	"habit-tracker-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Manager handles refresh token sessions
type Manager struct{}

// NewManager creates a new session manager
func NewManager() *Manager {
	return &Manager{}
}

// GetActive returns sessions expiring after now, newest first, with their owners
func (m *Manager) GetActive(ctx context.Context, uow unitofwork.UnitOfWork, now time.Time) ([]*entity.Session, error) {
	return uow.SessionRepository().FindAllWithUser(ctx,
		specification.ActiveAt{Now: now},
		specification.OrderBy{Field: "refresh_tokens.created_at", Desc: true},
	)
}

// Revoke deletes one session. A second call for the same id is NotFound.
func (m *Manager) Revoke(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID) (*entity.Session, error) {
	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFound("Session", sessionId)
	}

	deleted, err := uow.SessionRepository().Delete(ctx, sessionId)
	if err != nil {
		return nil, fmt.Errorf("revoke session: %w", err)
	}
	if deleted == 0 {
		return nil, apperror.NewNotFound("Session", sessionId)
	}
	return session, nil
}

// RevokeAllForUser deletes every session of an existing user and returns the count
func (m *Manager) RevokeAllForUser(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (int64, error) {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, apperror.NewNotFound("User", userId)
	}

	count, err := uow.SessionRepository().DeleteAll(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return 0, fmt.Errorf("revoke user sessions: %w", err)
	}
	return count, nil
}
