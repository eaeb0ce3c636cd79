package serverutils

import (
	"errors"
	"strings"

	"habit-tracker-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const userIdLocal = "user_id"

// JwtMiddleware authenticates the bearer token and stores the caller id in
// ctx.Locals("user_id") as a uuid.UUID.
func JwtMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") || len(authHeader) == len("Bearer ") {
			return unauthorized(ctx, "Authentication required - No token provided")
		}
		tokenStr := authHeader[len("Bearer "):]

		if secret == "" {
			return unauthorized(ctx, "Invalid token")
		}

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return unauthorized(ctx, "Token expired")
			}
			return unauthorized(ctx, "Invalid token")
		}
		if !token.Valid {
			return unauthorized(ctx, "Invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return unauthorized(ctx, "Invalid token")
		}

		userId, ok := userIdFromClaims(claims)
		if !ok {
			return unauthorized(ctx, "Invalid token")
		}

		ctx.Locals(userIdLocal, userId)
		return ctx.Next()
	}
}

// UserIdFromCtx returns the id stored by JwtMiddleware.
func UserIdFromCtx(ctx *fiber.Ctx) (uuid.UUID, error) {
	userId, ok := ctx.Locals(userIdLocal).(uuid.UUID)
	if !ok {
		return uuid.Nil, apperror.NewAuthentication("Authentication required")
	}
	return userId, nil
}

func userIdFromClaims(claims jwt.MapClaims) (uuid.UUID, bool) {
	for _, name := range []string{"userId", "user_id"} {
		raw, ok := claims[name].(string)
		if !ok {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return uuid.Nil, false
		}
		return id, true
	}
	return uuid.Nil, false
}

func unauthorized(ctx *fiber.Ctx, message string) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, message))
}
