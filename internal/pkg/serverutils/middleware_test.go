package serverutils

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"habit-tracker-be/internal/dto"
	"habit-tracker-be/internal/pkg/apperror"
	"habit-tracker-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func decodeBody(t *testing.T, resp *http.Response) BaseResponse[json.RawMessage] {
	t.Helper()
	defer resp.Body.Close()
	var body BaseResponse[json.RawMessage]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func doGet(t *testing.T, app *fiber.App, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestJwtMiddleware(t *testing.T) {
	userId := uuid.New()

	app := fiber.New()
	app.Get("/me", JwtMiddleware(testSecret), func(ctx *fiber.Ctx) error {
		id, err := UserIdFromCtx(ctx)
		if err != nil {
			return err
		}
		return ctx.JSON(SuccessResponse("ok", id.String()))
	})

	t.Run("missing token", func(t *testing.T) {
		resp := doGet(t, app, "/me", "")
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.False(t, body.Success)
		assert.Equal(t, "Authentication required - No token provided", body.Error.Message)
	})

	t.Run("userId claim", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{"userId": userId.String(), "exp": time.Now().Add(time.Hour).Unix()})
		resp := doGet(t, app, "/me", token)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.JSONEq(t, `"`+userId.String()+`"`, string(body.Data))
	})

	t.Run("user_id claim", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{"user_id": userId.String()})
		resp := doGet(t, app, "/me", token)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("expired", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{"userId": userId.String(), "exp": time.Now().Add(-time.Minute).Unix()})
		resp := doGet(t, app, "/me", token)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Token expired", decodeBody(t, resp).Error.Message)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := signToken(t, "other-secret", jwt.MapClaims{"userId": userId.String()})
		resp := doGet(t, app, "/me", token)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Invalid token", decodeBody(t, resp).Error.Message)
	})

	t.Run("non uuid subject", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{"userId": "42"})
		resp := doGet(t, app, "/me", token)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

type stubAdminChecker map[uuid.UUID]bool

func (s stubAdminChecker) IsAdmin(_ context.Context, userId uuid.UUID) (bool, error) {
	return s[userId], nil
}

func TestAdminMiddleware(t *testing.T) {
	admin, member := uuid.New(), uuid.New()
	checker := stubAdminChecker{admin: true, member: false}

	app := fiber.New()
	app.Get("/admin", JwtMiddleware(testSecret), AdminMiddleware(checker, logger.NewNopLogger()), func(ctx *fiber.Ctx) error {
		return ctx.JSON(MessageResponse("ok"))
	})

	resp := doGet(t, app, "/admin", signToken(t, testSecret, jwt.MapClaims{"userId": admin.String()}))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doGet(t, app, "/admin", signToken(t, testSecret, jwt.MapClaims{"userId": member.String()}))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, string(apperror.KindAuthorization), decodeBody(t, resp).Error.Code)
}

type stubFeatures []string

func (s stubFeatures) GetEnabledKeys(context.Context) ([]string, error) {
	return s, nil
}

func TestRequireFeature(t *testing.T) {
	app := fiber.New()
	app.Get("/on", RequireFeature(stubFeatures{"csv_export"}, "csv_export", logger.NewNopLogger()), func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/off", RequireFeature(stubFeatures{"csv_export"}, "ai_insights", logger.NewNopLogger()), func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusNoContent)
	})

	resp := doGet(t, app, "/on", "")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = doGet(t, app, "/off", "")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "FEATURE_DISABLED", body.Error.Code)
	assert.Equal(t, "Feature 'ai_insights' is not enabled", body.Error.Message)
}

func TestErrorHandlerMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware(logger.NewNopLogger()))
	app.Get("/not-found", func(ctx *fiber.Ctx) error {
		return apperror.NewNotFound("Feature flag", "dark_mode")
	})
	app.Get("/validation", func(ctx *fiber.Ctx) error {
		return apperror.NewValidation("Invalid key").WithDetails(map[string]interface{}{"key": "Invalid-Key!"})
	})
	app.Get("/boom", func(ctx *fiber.Ctx) error {
		return errors.New("connection refused")
	})

	resp := doGet(t, app, "/not-found", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Feature flag 'dark_mode' not found", body.Error.Message)
	assert.Equal(t, string(apperror.KindNotFound), body.Error.Code)

	resp = doGet(t, app, "/validation", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, map[string]interface{}{"key": "Invalid-Key!"}, body.Error.Details)

	resp = doGet(t, app, "/boom", "")
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, "Internal server error", body.Error.Message)
	assert.NotContains(t, body.Error.Message, "connection refused")

	resp = doGet(t, app, "/missing-route", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRequestMetrics(t *testing.T) {
	metrics := NewRequestMetrics()

	app := fiber.New()
	app.Use(metrics.Middleware())
	app.Use(ErrorHandlerMiddleware(logger.NewNopLogger()))
	app.Get("/ok", func(ctx *fiber.Ctx) error { return ctx.SendString("ok") })
	app.Get("/fail", func(ctx *fiber.Ctx) error { return apperror.NewConflict("taken") })

	doGet(t, app, "/ok", "")
	doGet(t, app, "/ok", "")
	doGet(t, app, "/fail", "")

	stats := metrics.Snapshot()
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(0), stats.Active)
	assert.Equal(t, int64(3), stats.ByMethod["GET"])
	assert.Equal(t, int64(2), stats.ByStatus["2xx"])
	assert.Equal(t, int64(1), stats.ByStatus["4xx"])
	assert.GreaterOrEqual(t, stats.AvgResponseTimeMs, 0.0)
}

func TestValidateRequest(t *testing.T) {
	err := ValidateRequest(dto.CreateFeatureFlagRequest{Key: "dark_mode"})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "is required", appErr.Details["name"])

	assert.NoError(t, ValidateRequest(dto.CreateFeatureFlagRequest{Name: "Dark Mode"}))

	err = ValidateRequest(dto.UpdateUserRoleRequest{})
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Details, "isAdmin")
}

func TestPaginatedResponse(t *testing.T) {
	res := PaginatedResponse("Users retrieved successfully", []string{"a"}, dto.NewPagination(2, 20, 41))

	assert.True(t, res.Success)
	require.NotNil(t, res.Meta.Pagination)
	assert.Equal(t, 3, res.Meta.Pagination.TotalPages)
	assert.False(t, res.Meta.Timestamp.IsZero())

	var none []string
	raw, err := json.Marshal(PaginatedResponse("Users retrieved successfully", none, dto.NewPagination(1, 20, 0)))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"data":[]`)
}

func TestEnvelopes_DataPresence(t *testing.T) {
	raw, err := json.Marshal(SuccessResponse[any]("ok", nil))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"data":null`)

	raw, err = json.Marshal(MessageResponse("done"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"data"`)

	raw, err = json.Marshal(ErrorResponse(fiber.StatusNotFound, "missing"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"data"`)
	assert.Contains(t, string(raw), `"code":"NOT_FOUND"`)
}

func TestRateLimiter(t *testing.T) {
	app := fiber.New()
	app.Get("/limited", RateLimiter(2), func(ctx *fiber.Ctx) error { return ctx.SendString("ok") })
	app.Get("/open", RateLimiter(0), func(ctx *fiber.Ctx) error { return ctx.SendString("ok") })

	assert.Equal(t, fiber.StatusOK, doGet(t, app, "/limited", "").StatusCode)
	assert.Equal(t, fiber.StatusOK, doGet(t, app, "/limited", "").StatusCode)

	resp := doGet(t, app, "/limited", "")
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", decodeBody(t, resp).Error.Code)

	for i := 0; i < 5; i++ {
		assert.Equal(t, fiber.StatusOK, doGet(t, app, "/open", "").StatusCode)
	}
}
