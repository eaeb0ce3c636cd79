package service

import (
	"context"
	"time"

	"habit-tracker-be/internal/dto"
	"habit-tracker-be/internal/pkg/logger"
	"habit-tracker-be/internal/repository/specification"
	"habit-tracker-be/internal/repository/unitofwork"
	"habit-tracker-be/pkg/admin/dashboard"
	adminEvents "habit-tracker-be/pkg/admin/events"
	"habit-tracker-be/pkg/admin/export"
	"habit-tracker-be/pkg/admin/mapper"
	"habit-tracker-be/pkg/admin/session"
	"habit-tracker-be/pkg/admin/user"

	"github.com/google/uuid"
)

type IAdminService interface {
	// User Management
	GetAllUsers(ctx context.Context, params dto.UserListParams) (*dto.UserListResult, error)
	GetUserDetail(ctx context.Context, userId uuid.UUID) (*dto.UserDetailResponse, error)
	UpdateUserRole(ctx context.Context, userId uuid.UUID, isAdmin bool, actorId uuid.UUID) (*dto.UserRoleResponse, error)
	IsAdmin(ctx context.Context, userId uuid.UUID) (bool, error)

	// Analytics
	GetApplicationStats(ctx context.Context) (*dto.ApplicationStatsResponse, error)
	GetTrends(ctx context.Context, days int) ([]dto.TrendPoint, error)
	GetContentBreakdown(ctx context.Context) (*dto.ContentBreakdownResponse, error)

	// Export
	ExportData(ctx context.Context, exportType string) (*dto.ExportFile, error)

	// Session Management
	GetActiveSessions(ctx context.Context) ([]*dto.SessionResponse, error)
	RevokeSession(ctx context.Context, sessionId uuid.UUID, actorId uuid.UUID) error
	RevokeAllUserSessions(ctx context.Context, userId uuid.UUID, actorId uuid.UUID) (int64, error)
}

type adminService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger

	// Domain Components
	userManager         *user.Manager
	sessionManager      *session.Manager
	dashboardAggregator *dashboard.Aggregator
	exporter            *export.Exporter
	eventPublisher      adminEvents.Publisher
	now                 func() time.Time
}

func NewAdminService(
	uowFactory unitofwork.RepositoryFactory,
	logger logger.ILogger,
	userManager *user.Manager,
	sessionManager *session.Manager,
	dashboardAggregator *dashboard.Aggregator,
	exporter *export.Exporter,
	eventPublisher adminEvents.Publisher,
) IAdminService {
	return &adminService{
		uowFactory:          uowFactory,
		logger:              logger,
		userManager:         userManager,
		sessionManager:      sessionManager,
		dashboardAggregator: dashboardAggregator,
		exporter:            exporter,
		eventPublisher:      eventPublisher,
		now:                 func() time.Time { return time.Now().UTC() },
	}
}

// --- User Management ---

func (s *adminService) GetAllUsers(ctx context.Context, params dto.UserListParams) (*dto.UserListResult, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.userManager.List(ctx, uow, params)
}

func (s *adminService) GetUserDetail(ctx context.Context, userId uuid.UUID) (*dto.UserDetailResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.userManager.Detail(ctx, uow, userId)
}

func (s *adminService) UpdateUserRole(ctx context.Context, userId uuid.UUID, isAdmin bool, actorId uuid.UUID) (*dto.UserRoleResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	updated, err := s.userManager.UpdateRole(ctx, uow, userId, isAdmin, actorId)
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("ADMIN_USER", "User role updated", map[string]interface{}{
		"user_id":  userId,
		"is_admin": isAdmin,
		"actor_id": actorId,
	})
	s.eventPublisher.PublishUserRoleUpdated(ctx, updated.Id, updated.Email, updated.IsAdmin, actorId)

	return mapper.UserToRoleResponse(updated), nil
}

func (s *adminService) IsAdmin(ctx context.Context, userId uuid.UUID) (bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	u, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return false, err
	}
	return u != nil && u.IsAdmin, nil
}

// --- Analytics ---

func (s *adminService) GetApplicationStats(ctx context.Context) (*dto.ApplicationStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.dashboardAggregator.GetStats(ctx, uow)
}

func (s *adminService) GetTrends(ctx context.Context, days int) ([]dto.TrendPoint, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.dashboardAggregator.GetTrends(ctx, uow, days)
}

func (s *adminService) GetContentBreakdown(ctx context.Context) (*dto.ContentBreakdownResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.dashboardAggregator.GetContentBreakdown(ctx, uow)
}

// --- Export ---

func (s *adminService) ExportData(ctx context.Context, exportType string) (*dto.ExportFile, error) {
	if err := export.ValidateType(exportType); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	table, err := s.exporter.Export(ctx, uow, exportType)
	if err != nil {
		return nil, err
	}

	file := &dto.ExportFile{
		Filename: export.Filename(exportType, s.now()),
		Content:  export.FormatCSV(table.Headers, table.Rows),
		Rows:     len(table.Rows),
	}
	s.logger.Info("ADMIN_EXPORT", "Data exported", map[string]interface{}{"type": exportType, "rows": file.Rows})
	return file, nil
}

// --- Session Management ---

func (s *adminService) GetActiveSessions(ctx context.Context) ([]*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sessions, err := s.sessionManager.GetActive(ctx, uow, s.now())
	if err != nil {
		return nil, err
	}
	return mapper.SessionsToResponse(sessions), nil
}

func (s *adminService) RevokeSession(ctx context.Context, sessionId uuid.UUID, actorId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	revoked, err := s.sessionManager.Revoke(ctx, uow, sessionId)
	if err != nil {
		return err
	}

	s.logger.Info("ADMIN_SESSION", "Session revoked", map[string]interface{}{
		"session_id": sessionId,
		"user_id":    revoked.UserId,
		"actor_id":   actorId,
	})
	s.eventPublisher.PublishSessionsRevoked(ctx, revoked.UserId, &sessionId, 1, actorId)
	return nil
}

func (s *adminService) RevokeAllUserSessions(ctx context.Context, userId uuid.UUID, actorId uuid.UUID) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	count, err := s.sessionManager.RevokeAllForUser(ctx, uow, userId)
	if err != nil {
		return 0, err
	}

	s.logger.Info("ADMIN_SESSION", "User sessions revoked", map[string]interface{}{
		"user_id":       userId,
		"revoked_count": count,
		"actor_id":      actorId,
	})
	s.eventPublisher.PublishSessionsRevoked(ctx, userId, nil, count, actorId)
	return count, nil
}
