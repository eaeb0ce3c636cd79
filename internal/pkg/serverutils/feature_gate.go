package serverutils

import (
	"context"
	"fmt"
	"slices"

	"habit-tracker-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// EnabledFeatureSource lists the keys of enabled feature flags.
type EnabledFeatureSource interface {
	GetEnabledKeys(ctx context.Context) ([]string, error)
}

// RequireFeature rejects the request with 403 FEATURE_DISABLED unless the
// flag named key is enabled.
func RequireFeature(source EnabledFeatureSource, key string, log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		keys, err := source.GetEnabledKeys(ctx.UserContext())
		if err != nil {
			return HandleError(ctx, err, log)
		}
		if !slices.Contains(keys, key) {
			return ctx.Status(fiber.StatusForbidden).JSON(ErrorResponseWithCode(
				fmt.Sprintf("Feature '%s' is not enabled", key),
				"FEATURE_DISABLED",
				map[string]interface{}{"feature": key},
			))
		}
		return ctx.Next()
	}
}
