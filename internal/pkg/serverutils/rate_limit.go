package serverutils

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/google/uuid"
)

// RateLimiter allows max requests per minute per caller. Authenticated
// callers are keyed by user id, everyone else by IP. max <= 0 disables it.
func RateLimiter(max int) fiber.Handler {
	if max <= 0 {
		return func(ctx *fiber.Ctx) error { return ctx.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: time.Minute,
		KeyGenerator: func(ctx *fiber.Ctx) string {
			if userId, ok := ctx.Locals(userIdLocal).(uuid.UUID); ok {
				return userId.String()
			}
			return ctx.IP()
		},
		LimitReached: func(ctx *fiber.Ctx) error {
			return ctx.Status(fiber.StatusTooManyRequests).JSON(ErrorResponse(fiber.StatusTooManyRequests, "Too many requests, please try again later"))
		},
	})
}
