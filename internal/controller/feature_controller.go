// Controller for feature flag lookups by regular users
package controller

import (
	"habit-tracker-be/internal/config"
	"habit-tracker-be/internal/dto"
	"habit-tracker-be/internal/pkg/logger"
	"habit-tracker-be/internal/pkg/serverutils"
	"habit-tracker-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type FeatureController interface {
	RegisterRoutes(api fiber.Router)
	GetEnabledFeatures(ctx *fiber.Ctx) error
}

type featureController struct {
	cfg            *config.Config
	logger         logger.ILogger
	featureService service.IFeatureFlagService
}

func NewFeatureController(cfg *config.Config, logger logger.ILogger, featureService service.IFeatureFlagService) FeatureController {
	return &featureController{
		cfg:            cfg,
		logger:         logger,
		featureService: featureService,
	}
}

func (c *featureController) RegisterRoutes(api fiber.Router) {
	api.Get("/features",
		serverutils.JwtMiddleware(c.cfg.Auth.JwtSecret),
		serverutils.RateLimiter(c.cfg.RateLimit.ReadPerMinute),
		c.GetEnabledFeatures,
	)
}

// GetEnabledFeatures returns the keys of every enabled flag
// @Summary Get enabled features
// @Description Returns the enabled feature flag keys so clients can toggle UI
// @Tags Features
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.EnabledFeaturesResponse
// @Router /api/features [get]
func (c *featureController) GetEnabledFeatures(ctx *fiber.Ctx) error {
	keys, err := c.featureService.GetEnabledKeys(ctx.UserContext())
	if err != nil {
		return serverutils.HandleError(ctx, err, c.logger)
	}
	return ctx.JSON(serverutils.SuccessResponse("Enabled features retrieved successfully", dto.EnabledFeaturesResponse{Features: keys}))
}
