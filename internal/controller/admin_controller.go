package controller

import (
	"fmt"
	"strconv"

	"habit-tracker-be/internal/config"
	"habit-tracker-be/internal/dto"
	"habit-tracker-be/internal/pkg/apperror"
	"habit-tracker-be/internal/pkg/logger"
	"habit-tracker-be/internal/pkg/serverutils"
	"habit-tracker-be/internal/service"
	"habit-tracker-be/pkg/admin/dashboard"
	"habit-tracker-be/pkg/admin/feature"
	"habit-tracker-be/pkg/admin/user"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)

	// Feature Flags
	GetFeatureFlags(ctx *fiber.Ctx) error
	GetFeatureFlagAuditLog(ctx *fiber.Ctx) error
	CreateFeatureFlag(ctx *fiber.Ctx) error
	UpdateFeatureFlag(ctx *fiber.Ctx) error
	DeleteFeatureFlag(ctx *fiber.Ctx) error

	// Users
	GetAllUsers(ctx *fiber.Ctx) error
	GetUserDetail(ctx *fiber.Ctx) error
	UpdateUserRole(ctx *fiber.Ctx) error

	// Analytics
	GetApplicationStats(ctx *fiber.Ctx) error
	GetSystemStats(ctx *fiber.Ctx) error
	GetTrends(ctx *fiber.Ctx) error
	GetContentBreakdown(ctx *fiber.Ctx) error

	// Export
	ExportData(ctx *fiber.Ctx) error

	// Sessions
	GetActiveSessions(ctx *fiber.Ctx) error
	RevokeSession(ctx *fiber.Ctx) error
	RevokeAllUserSessions(ctx *fiber.Ctx) error
}

type adminController struct {
	cfg            *config.Config
	logger         logger.ILogger
	service        service.IAdminService
	featureService service.IFeatureFlagService
	systemService  service.ISystemService
}

func NewAdminController(
	cfg *config.Config,
	logger logger.ILogger,
	service service.IAdminService,
	featureService service.IFeatureFlagService,
	systemService service.ISystemService,
) IAdminController {
	return &adminController{
		cfg:            cfg,
		logger:         logger,
		service:        service,
		featureService: featureService,
		systemService:  systemService,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	read := serverutils.RateLimiter(c.cfg.RateLimit.ReadPerMinute)
	write := serverutils.RateLimiter(c.cfg.RateLimit.WritePerMinute)

	h := r.Group("/admin",
		serverutils.JwtMiddleware(c.cfg.Auth.JwtSecret),
		serverutils.AdminMiddleware(c.service, c.logger),
	)

	// Feature Flags (audit must be registered before /:key)
	h.Get("/features", read, c.GetFeatureFlags)
	h.Get("/features/audit", read, c.GetFeatureFlagAuditLog)
	h.Post("/features", write, c.CreateFeatureFlag)
	h.Patch("/features/:key", write, c.UpdateFeatureFlag)
	h.Delete("/features/:key", write, c.DeleteFeatureFlag)

	// Users
	h.Get("/users", read, c.GetAllUsers)
	h.Get("/users/:id", read, c.GetUserDetail)
	h.Patch("/users/:id/role", write, c.UpdateUserRole)

	// Analytics
	h.Get("/stats", read, c.GetApplicationStats)
	h.Get("/stats/system", read, c.GetSystemStats)
	h.Get("/stats/trends", read, c.GetTrends)
	h.Get("/stats/content", read, c.GetContentBreakdown)

	// Export
	exportHandlers := []fiber.Handler{read}
	if key := c.cfg.Admin.ExportFeatureKey; key != "" {
		exportHandlers = append(exportHandlers, serverutils.RequireFeature(c.featureService, key, c.logger))
	}
	h.Get("/export/:type", append(exportHandlers, c.ExportData)...)

	// Sessions (user/:userId before /:id)
	h.Get("/sessions", read, c.GetActiveSessions)
	h.Delete("/sessions/user/:userId", write, c.RevokeAllUserSessions)
	h.Delete("/sessions/:id", write, c.RevokeSession)
}

// --- Feature Flags ---

func (c *adminController) GetFeatureFlags(ctx *fiber.Ctx) error {
	flags, err := c.featureService.GetAll(ctx.UserContext())
	if err != nil {
		return serverutils.HandleError(ctx, err, c.logger)
	}
	return ctx.JSON(serverutils.SuccessResponse("Feature flags retrieved successfully", dto.FeatureFlagListResponse{Flags: flags}))
}

func (c *adminController) GetFeatureFlagAuditLog(ctx *fiber.Ctx) error {
	q := dto.AuditLogQuery{
		FlagKey: ctx.Query("flagKey"),
		Page:    ctx.QueryInt("page", 1),
		Limit:   ctx.QueryInt("limit", feature.DefaultAuditLimit),
	}
	if q.FlagKey != "" {
		if err := feature.ValidateKey(q.FlagKey); err != nil {
			return serverutils.HandleError(ctx, err, c.logger)
		}
	}

	res, err := c.featureService.GetAuditLog(ctx.UserContext(), q)
	if err != nil {
		return serverutils.HandleError(ctx, err, c.logger)
	}
	return ctx.JSON(serverutils.PaginatedResponse(
		"Audit log retrieved successfully",
		res.Entries,
		dto.NewPagination(res.Page, res.Limit, res.Total),
	))
}

func (c *adminController) CreateFeatureFlag(ctx *fiber.Ctx) error {
	actorId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return serverutils.HandleError(ctx, err, c.logger)
	}

	var req dto.CreateFeatureFlagRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.HandleError(ctx, apperror.NewBadRequest("Invalid request body"), c.logger)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return serverutils.HandleError(ctx, err, c.logger)
	}

	flag, err := c.featureService.Create(ctx.UserContext(), req, actorId)
	if err != nil {
		return serverutils.HandleError(ctx, err, c.logger)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse(
		fmt.Sprintf("Feature flag '%s' created successfully", flag.Key),
		dto.FeatureFlagEnvelope{Flag: flag},
	))
}

func (c *adminController) UpdateFeatureFlag(ctx *fiber.Ctx) error {
	actorId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return serverutils.HandleError(ctx, err, c.logger)
	}

	key := ctx.Params("key")
	if err := feature.ValidateKey(key); err != nil {
		return serverutils.HandleError(ctx, err, c.logger)
	}

	var req dto.UpdateFeatureFlagRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.HandleError(ctx, apperror.NewBadRequest("Invalid request body"), c.logger)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return serverutils.HandleError(ctx, err, c.logger)
	}

	flag, err := c.featureService.Update(ctx.UserContext(), key, req, actorId)
	if err != nil {
		return serverutils.HandleError(ctx, err, c.logger)
	}
	return ctx.JSON(serverutils.SuccessResponse(
		fmt.Sprintf("Feature flag '%s' updated successfully", key),
		dto.FeatureFlagEnvelope{Flag: flag},
	))
}

func (c *adminController) DeleteFeatureFlag(ctx *fiber.Ctx) error {
	actorId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return serverutils.HandleError(ctx, err, c.logger)
	}

	key := ctx.Params("key")
	if err := feature.ValidateKey(key); err != nil {
		return serverutils.HandleError(ctx, err, c.logger)
	}

	if err := c.featureService.Delete(ctx.UserContext(), key, actorId); err != nil {
		return serverutils.HandleError(ctx, err, c.logger)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// --- Users ---

func (c *adminController) GetAllUsers(ctx *fiber.Ctx) error {
	params := dto.UserListParams{
		Page:      ctx.QueryInt("page", 1),
		Limit:     ctx.QueryInt("limit", user.DefaultPageLimit),
		Search:    ctx.Query("search"),
		SortBy:    ctx.Query("sortBy"),
		SortOrder: ctx.Query("sortOrder"),
	}

	res, err := c.service.GetAllUsers(ctx.UserContext(), params)
	if err != nil {
		return serverutils.HandleError(ctx, err, c.logger)
	}
	return ctx.JSON(serverutils.PaginatedResponse(
		"Users retrieved successfully",
		res.Users,
		dto.NewPagination(res.Page, res.Limit, res.Total),
	))
}

func (c *adminController) GetUserDetail(ctx *fiber.Ctx) error {
	userId, err := parseUUIDParam(ctx, "id", "user")
	if err != nil {
		return serverutils.HandleError(ctx, err, c.logger)
	}

	detail, err := c.service.GetUserDetail(ctx.UserContext(), userId)
	if err != nil {
		return serverutils.HandleError(ctx, err, c.logger)
	}
	return ctx.JSON(serverutils.SuccessResponse("User detail retrieved successfully", fiber.Map{"user": detail}))
}

func (c *adminController) UpdateUserRole(ctx *fiber.Ctx) error {
	actorId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return serverutils.HandleError(ctx, err, c.logger)
	}

	userId, err := parseUUIDParam(ctx, "id", "user")
	if err != nil {
		return serverutils.HandleError(ctx, err, c.logger)
	}

	var req dto.UpdateUserRoleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.HandleError(ctx, apperror.NewBadRequest("Invalid request body"), c.logger)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return serverutils.HandleError(ctx, err, c.logger)
	}

	updated, err := c.service.UpdateUserRole(ctx.UserContext(), userId, *req.IsAdmin, actorId)
	if err != nil {
		return serverutils.HandleError(ctx, err, c.logger)
	}
	return ctx.JSON(serverutils.SuccessResponse("User role updated successfully", fiber.Map{"user": updated}))
}

// --- Analytics ---

func (c *adminController) GetApplicationStats(ctx *fiber.Ctx) error {
	stats, err := c.service.GetApplicationStats(ctx.UserContext())
	if err != nil {
		return serverutils.HandleError(ctx, err, c.logger)
	}
	return ctx.JSON(serverutils.SuccessResponse("Application stats retrieved successfully", fiber.Map{"stats": stats}))
}

func (c *adminController) GetSystemStats(ctx *fiber.Ctx) error {
	stats, err := c.systemService.GetSystemStats(ctx.UserContext())
	if err != nil {
		return serverutils.HandleError(ctx, err, c.logger)
	}
	return ctx.JSON(serverutils.SuccessResponse("System stats retrieved successfully", fiber.Map{"stats": stats}))
}

func (c *adminController) GetTrends(ctx *fiber.Ctx) error {
	maxDays := c.cfg.Admin.EffectiveTrendsMaxDays()
	days := dashboard.DefaultTrendDays
	if raw := ctx.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			days = 0
		} else {
			days = parsed
		}
	}
	if days < 1 || days > maxDays {
		return serverutils.HandleError(ctx, apperror.NewValidation(
			fmt.Sprintf("days must be between 1 and %d", maxDays),
		).WithDetails(map[string]interface{}{"days": ctx.Query("days")}), c.logger)
	}

	trends, err := c.service.GetTrends(ctx.UserContext(), days)
	if err != nil {
		return serverutils.HandleError(ctx, err, c.logger)
	}
	return ctx.JSON(serverutils.SuccessResponse("Trends retrieved successfully", fiber.Map{"trends": trends}))
}

func (c *adminController) GetContentBreakdown(ctx *fiber.Ctx) error {
	breakdown, err := c.service.GetContentBreakdown(ctx.UserContext())
	if err != nil {
		return serverutils.HandleError(ctx, err, c.logger)
	}
	return ctx.JSON(serverutils.SuccessResponse("Content breakdown retrieved successfully", fiber.Map{"breakdown": breakdown}))
}

// --- Export ---

func (c *adminController) ExportData(ctx *fiber.Ctx) error {
	file, err := c.service.ExportData(ctx.UserContext(), ctx.Params("type"))
	if err != nil {
		return serverutils.HandleError(ctx, err, c.logger)
	}

	ctx.Set(fiber.HeaderContentType, "text/csv")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	return ctx.SendString(file.Content)
}

// --- Sessions ---

func (c *adminController) GetActiveSessions(ctx *fiber.Ctx) error {
	sessions, err := c.service.GetActiveSessions(ctx.UserContext())
	if err != nil {
		return serverutils.HandleError(ctx, err, c.logger)
	}
	return ctx.JSON(serverutils.SuccessResponse("Active sessions retrieved successfully", fiber.Map{"sessions": sessions}))
}

func (c *adminController) RevokeSession(ctx *fiber.Ctx) error {
	actorId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return serverutils.HandleError(ctx, err, c.logger)
	}

	sessionId, err := parseUUIDParam(ctx, "id", "session")
	if err != nil {
		return serverutils.HandleError(ctx, err, c.logger)
	}

	if err := c.service.RevokeSession(ctx.UserContext(), sessionId, actorId); err != nil {
		return serverutils.HandleError(ctx, err, c.logger)
	}
	return ctx.JSON(serverutils.MessageResponse("Session revoked successfully"))
}

func (c *adminController) RevokeAllUserSessions(ctx *fiber.Ctx) error {
	actorId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return serverutils.HandleError(ctx, err, c.logger)
	}

	userId, err := parseUUIDParam(ctx, "userId", "user")
	if err != nil {
		return serverutils.HandleError(ctx, err, c.logger)
	}

	count, err := c.service.RevokeAllUserSessions(ctx.UserContext(), userId, actorId)
	if err != nil {
		return serverutils.HandleError(ctx, err, c.logger)
	}
	return ctx.JSON(serverutils.SuccessResponse(
		fmt.Sprintf("Revoked %d sessions", count),
		dto.RevokeSessionsResponse{RevokedCount: count},
	))
}

func parseUUIDParam(ctx *fiber.Ctx, name, entity string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, apperror.NewValidation(fmt.Sprintf("Invalid %s ID", entity)).
			WithDetails(map[string]interface{}{name: ctx.Params(name)})
	}
	return id, nil
}
