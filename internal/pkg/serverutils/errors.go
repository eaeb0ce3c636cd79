package serverutils

import (
	"errors"

	"habit-tracker-be/internal/pkg/apperror"
	"habit-tracker-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

const internalErrorMessage = "Internal server error"

// HandleError writes the failure envelope for err. Typed errors keep their
// message; anything else is logged and reported as a generic 500.
func HandleError(ctx *fiber.Ctx, err error, log logger.ILogger) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := appErr.Status()
		if status >= fiber.StatusInternalServerError {
			logServerError(ctx, err, log)
			return ctx.Status(status).JSON(ErrorResponseWithCode(internalErrorMessage, appErr.Code, nil))
		}

		var details interface{}
		if len(appErr.Details) > 0 {
			details = appErr.Details
		}
		return ctx.Status(status).JSON(ErrorResponseWithCode(appErr.Message, appErr.Code, details))
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError {
		return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
	}

	logServerError(ctx, err, log)
	return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, internalErrorMessage))
}

// ErrorHandlerMiddleware turns errors returned further down the chain into
// envelopes. Register it before recover so panics end up here too.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if err := ctx.Next(); err != nil {
			return HandleError(ctx, err, log)
		}
		return nil
	}
}

func logServerError(ctx *fiber.Ctx, err error, log logger.ILogger) {
	if log == nil {
		return
	}
	log.Error("HTTP", "Request failed", map[string]interface{}{
		"method": ctx.Method(),
		"path":   ctx.Path(),
		"error":  err.Error(),
	})
}

func statusCode(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return string(apperror.KindBadRequest)
	case fiber.StatusUnauthorized:
		return string(apperror.KindAuthentication)
	case fiber.StatusForbidden:
		return string(apperror.KindAuthorization)
	case fiber.StatusNotFound:
		return string(apperror.KindNotFound)
	case fiber.StatusConflict:
		return string(apperror.KindConflict)
	case fiber.StatusTooManyRequests:
		return "RATE_LIMIT_EXCEEDED"
	case fiber.StatusInternalServerError:
		return string(apperror.KindInternal)
	default:
		return ""
	}
}
