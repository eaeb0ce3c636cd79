package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultExportLogLimit  = 10000
	DefaultTrendsMaxDays   = 365
	DefaultFeatureCacheTTL = 60 * time.Second
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Admin     AdminConfig
	RateLimit RateLimitConfig
	Tracing   TracingConfig
	Seed      SeedConfig
}

type AppConfig struct {
	Name               string
	Version            string
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	JwtSecret string
}

type AdminConfig struct {
	FeatureCacheTTL time.Duration
	ExportLogLimit  int
	TrendsMaxDays   int

	// ExportFeatureKey gates the export endpoint on a flag when set.
	ExportFeatureKey string
}

type RateLimitConfig struct {
	ReadPerMinute  int
	WritePerMinute int
}

type TracingConfig struct {
	Enabled  bool
	Endpoint string
}

type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Name:               getEnv("APP_NAME", "habit-tracker-be"),
			Version:            getEnv("APP_VERSION", "1.0.0"),
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JwtSecret: getEnv("JWT_SECRET", ""),
		},
		Admin: AdminConfig{
			FeatureCacheTTL: time.Duration(getEnvAsInt("FEATURE_CACHE_TTL_SECONDS", int(DefaultFeatureCacheTTL/time.Second))) * time.Second,
			ExportLogLimit:  getEnvAsInt("EXPORT_LOG_LIMIT", DefaultExportLogLimit),
			TrendsMaxDays:   getEnvAsInt("TRENDS_MAX_DAYS", DefaultTrendsMaxDays),

			ExportFeatureKey: getEnv("EXPORT_FEATURE_KEY", ""),
		},
		RateLimit: RateLimitConfig{
			ReadPerMinute:  getEnvAsInt("RATE_LIMIT_READ_PER_MIN", 120),
			WritePerMinute: getEnvAsInt("RATE_LIMIT_WRITE_PER_MIN", 30),
		},
		Tracing: TracingConfig{
			Enabled:  getEnvAsBool("OTEL_ENABLED", false),
			Endpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
		Seed: SeedConfig{
			AdminEmail:    getEnv("SEED_ADMIN_EMAIL", ""),
			AdminPassword: getEnv("SEED_ADMIN_PASSWORD", ""),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// EffectiveExportLogLimit never returns an unbounded limit.
func (a AdminConfig) EffectiveExportLogLimit() int {
	if a.ExportLogLimit <= 0 {
		return DefaultExportLogLimit
	}
	return a.ExportLogLimit
}

func (a AdminConfig) EffectiveTrendsMaxDays() int {
	if a.TrendsMaxDays <= 0 {
		return DefaultTrendsMaxDays
	}
	return a.TrendsMaxDays
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := strings.TrimSpace(getEnv(key, ""))
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
