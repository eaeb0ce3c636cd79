package serverutils

import (
	"context"

	"habit-tracker-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AdminChecker reports whether a user holds admin privileges.
type AdminChecker interface {
	IsAdmin(ctx context.Context, userId uuid.UUID) (bool, error)
}

// AdminMiddleware must run after JwtMiddleware. The flag is read from storage
// on every request so a demotion takes effect immediately.
func AdminMiddleware(checker AdminChecker, log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userId, err := UserIdFromCtx(ctx)
		if err != nil {
			return unauthorized(ctx, "Authentication required - No token provided")
		}

		isAdmin, err := checker.IsAdmin(ctx.UserContext(), userId)
		if err != nil {
			return HandleError(ctx, err, log)
		}
		if !isAdmin {
			return ctx.Status(fiber.StatusForbidden).JSON(ErrorResponse(fiber.StatusForbidden, "Admin access required"))
		}
		return ctx.Next()
	}
}
