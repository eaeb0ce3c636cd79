package service

import (
	"context"
	"os"
	"runtime"
	"time"

	"habit-tracker-be/internal/config"
	"habit-tracker-be/internal/dto"
	"habit-tracker-be/pkg/database"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	healthUp            = "up"
	healthDown          = "down"
	healthNotConfigured = "not_configured"
)

// RequestStatsProvider exposes the HTTP request counters
type RequestStatsProvider interface {
	Snapshot() dto.RequestStats
}

// CacheStatsProvider exposes the feature flag cache counters
type CacheStatsProvider interface {
	CacheStats() dto.CacheStats
}

// BusPinger reports event bus connectivity
type BusPinger interface {
	Ping() error
}

type ISystemService interface {
	GetSystemStats(ctx context.Context) (*dto.SystemStatsResponse, error)
}

type systemService struct {
	cfg       *config.Config
	db        *gorm.DB
	redis     *redis.Client
	bus       BusPinger
	cache     CacheStatsProvider
	requests  RequestStatsProvider
	startedAt time.Time
}

// NewSystemService builds the system status reporter. redisClient and bus may be nil.
func NewSystemService(
	cfg *config.Config,
	db *gorm.DB,
	redisClient *redis.Client,
	bus BusPinger,
	cache CacheStatsProvider,
	requests RequestStatsProvider,
	startedAt time.Time,
) ISystemService {
	return &systemService{
		cfg:       cfg,
		db:        db,
		redis:     redisClient,
		bus:       bus,
		cache:     cache,
		requests:  requests,
		startedAt: startedAt,
	}
}

func (s *systemService) GetSystemStats(ctx context.Context) (*dto.SystemStatsResponse, error) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	res := &dto.SystemStatsResponse{
		Application: dto.ApplicationInfo{
			Name:        s.cfg.App.Name,
			Version:     s.cfg.App.Version,
			Environment: s.cfg.App.Environment,
			GoVersion:   runtime.Version(),
			StartedAt:   s.startedAt,
			Uptime:      time.Since(s.startedAt).Seconds(),
		},
		Memory: dto.MemoryInfo{
			HeapAllocBytes: mem.HeapAlloc,
			HeapSysBytes:   mem.HeapSys,
			SysBytes:       mem.Sys,
			NumGC:          mem.NumGC,
			Goroutines:     runtime.NumGoroutine(),
			Platform:       runtime.GOOS,
			Arch:           runtime.GOARCH,
			Pid:            os.Getpid(),
		},
		Dependencies: map[string]dto.DependencyHealth{
			"database": s.pingDatabase(ctx),
			"redis":    s.pingRedis(ctx),
			"nats":     s.pingBus(),
		},
	}
	if s.cache != nil {
		res.FeatureCache = s.cache.CacheStats()
	}
	if s.requests != nil {
		res.Requests = s.requests.Snapshot()
	}
	return res, nil
}

func (s *systemService) pingDatabase(ctx context.Context) dto.DependencyHealth {
	latency, err := database.Ping(ctx, s.db)
	return health(latency, err)
}

func (s *systemService) pingRedis(ctx context.Context) dto.DependencyHealth {
	if s.redis == nil {
		return dto.DependencyHealth{Status: healthNotConfigured}
	}
	start := time.Now()
	err := s.redis.Ping(ctx).Err()
	return health(time.Since(start), err)
}

func (s *systemService) pingBus() dto.DependencyHealth {
	if s.bus == nil {
		return dto.DependencyHealth{Status: healthNotConfigured}
	}
	start := time.Now()
	err := s.bus.Ping()
	return health(time.Since(start), err)
}

func health(latency time.Duration, err error) dto.DependencyHealth {
	h := dto.DependencyHealth{
		Status:    healthUp,
		LatencyMs: float64(latency.Microseconds()) / 1000,
	}
	if err != nil {
		h.Status = healthDown
		h.Error = err.Error()
	}
	return h
}
