package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"habit-tracker-be/internal/bootstrap"
	"habit-tracker-be/internal/config"
	"habit-tracker-be/internal/entity"
	"habit-tracker-be/internal/pkg/testdb"
	"habit-tracker-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "server-test-secret"

func newTestServer(t *testing.T) (*Server, *entity.User) {
	t.Helper()
	db := testdb.New(t)
	cfg := &config.Config{
		App: config.AppConfig{
			Name:               "habit-tracker-be",
			Version:            "test",
			Environment:        "test",
			LogFilePath:        filepath.Join(t.TempDir(), "app.log"),
			CorsAllowedOrigins: "http://localhost:5173",
		},
		Auth: config.AuthConfig{JwtSecret: secret},
		Admin: config.AdminConfig{
			FeatureCacheTTL: time.Minute,
		},
		RateLimit: config.RateLimitConfig{ReadPerMinute: 100, WritePerMinute: 100},
	}

	container := bootstrap.NewContainer(db, cfg)
	t.Cleanup(container.Close)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, container.ConsumerService.Consume(ctx))

	admin := &entity.User{Name: "Root", Email: "root@example.com", IsAdmin: true}
	require.NoError(t, unitofwork.NewUnitOfWork(db).UserRepository().Create(context.Background(), admin))

	return New(cfg, container), admin
}

func bearer(t *testing.T, userId uuid.UUID) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userId.String(),
		"exp":    time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	return "Bearer " + token
}

func TestServer_Routes(t *testing.T) {
	srv, admin := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		auth   bool
		status int
	}{
		{name: "features require a token", method: http.MethodGet, path: "/api/features", status: http.StatusUnauthorized},
		{name: "features with token", method: http.MethodGet, path: "/api/features", auth: true, status: http.StatusOK},
		{name: "admin flags", method: http.MethodGet, path: "/api/admin/features", auth: true, status: http.StatusOK},
		{name: "system stats", method: http.MethodGet, path: "/api/admin/stats/system", auth: true, status: http.StatusOK},
		{name: "unknown route", method: http.MethodGet, path: "/api/nope", auth: true, status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.auth {
				req.Header.Set("Authorization", bearer(t, admin.Id))
			}
			resp, err := srv.GetApp().Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestServer_CorsPreflight(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/admin/features", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	resp, err := srv.GetApp().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
}
