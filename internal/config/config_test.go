package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("EXPORT_LOG_LIMIT", "")
	t.Setenv("FEATURE_CACHE_TTL_SECONDS", "")
	t.Setenv("OTEL_ENABLED", "")

	cfg := Load()

	assert.Equal(t, DefaultExportLogLimit, cfg.Admin.ExportLogLimit)
	assert.Equal(t, 60*time.Second, cfg.Admin.FeatureCacheTTL)
	assert.False(t, cfg.Tracing.Enabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("EXPORT_LOG_LIMIT", "500")
	t.Setenv("FEATURE_CACHE_TTL_SECONDS", "5")
	t.Setenv("TRENDS_MAX_DAYS", "90")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("GO_ENV", "production")

	cfg := Load()

	assert.Equal(t, 500, cfg.Admin.ExportLogLimit)
	assert.Equal(t, 5*time.Second, cfg.Admin.FeatureCacheTTL)
	assert.Equal(t, 90, cfg.Admin.TrendsMaxDays)
	assert.True(t, cfg.Tracing.Enabled)
	assert.True(t, cfg.IsProduction())
}

func TestAdminConfig_EffectiveLimits(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"configured", 250, 250},
		{"zero falls back", 0, DefaultExportLogLimit},
		{"negative falls back", -1, DefaultExportLogLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AdminConfig{ExportLogLimit: tt.limit}.EffectiveExportLogLimit())
		})
	}

	assert.Equal(t, DefaultTrendsMaxDays, AdminConfig{}.EffectiveTrendsMaxDays())
	assert.Equal(t, 30, AdminConfig{TrendsMaxDays: 30}.EffectiveTrendsMaxDays())
}
