package service

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"habit-tracker-be/internal/dto"
	"habit-tracker-be/internal/entity"
	"habit-tracker-be/internal/pkg/logger"
	"habit-tracker-be/internal/repository/contract"
	"habit-tracker-be/internal/repository/unitofwork"
	adminEvents "habit-tracker-be/pkg/admin/events"
	"habit-tracker-be/pkg/admin/feature"
	"habit-tracker-be/pkg/admin/mapper"
	"habit-tracker-be/pkg/events"

	"github.com/google/uuid"
)

type IFeatureFlagService interface {
	GetAll(ctx context.Context) ([]*dto.FeatureFlagResponse, error)
	GetEnabledKeys(ctx context.Context) ([]string, error)
	Create(ctx context.Context, req dto.CreateFeatureFlagRequest, actorId uuid.UUID) (*dto.FeatureFlagResponse, error)
	Update(ctx context.Context, key string, req dto.UpdateFeatureFlagRequest, actorId uuid.UUID) (*dto.FeatureFlagResponse, error)
	Delete(ctx context.Context, key string, actorId uuid.UUID) error
	GetAuditLog(ctx context.Context, q dto.AuditLogQuery) (*dto.AuditLogResult, error)

	InvalidateCache(ctx context.Context) error
	CacheStats() dto.CacheStats
}

type cacheCounters struct {
	hits          atomic.Int64
	misses        atomic.Int64
	sets          atomic.Int64
	invalidations atomic.Int64
}

type featureFlagService struct {
	uowFactory     unitofwork.RepositoryFactory
	logger         logger.ILogger
	featureManager *feature.Manager
	cache          contract.EnabledKeysCache
	eventPublisher adminEvents.Publisher
	counters       cacheCounters

	// generation is bumped on every invalidation; a miss only fills the
	// cache if no invalidation happened while it read storage.
	generation atomic.Uint64
}

func NewFeatureFlagService(
	uowFactory unitofwork.RepositoryFactory,
	logger logger.ILogger,
	featureManager *feature.Manager,
	cache contract.EnabledKeysCache,
	eventPublisher adminEvents.Publisher,
) IFeatureFlagService {
	return &featureFlagService{
		uowFactory:     uowFactory,
		logger:         logger,
		featureManager: featureManager,
		cache:          cache,
		eventPublisher: eventPublisher,
	}
}

func (s *featureFlagService) GetAll(ctx context.Context) ([]*dto.FeatureFlagResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	flags, err := s.featureManager.GetAll(ctx, uow)
	if err != nil {
		return nil, err
	}
	return mapper.FlagsToResponse(flags), nil
}

// GetEnabledKeys serves from the cache and falls back to storage on a miss or cache error
func (s *featureFlagService) GetEnabledKeys(ctx context.Context) ([]string, error) {
	gen := s.generation.Load()
	keys, ok, err := s.cache.Get(ctx)
	if err != nil {
		s.logger.Warn("FEATURE_CACHE", "Cache read failed, falling back to database", map[string]interface{}{"backend": s.cache.Backend(), "error": err.Error()})
	}
	if ok {
		s.counters.hits.Add(1)
		return keys, nil
	}
	s.counters.misses.Add(1)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	keys, err = s.featureManager.GetEnabledKeys(ctx, uow)
	if err != nil {
		return nil, err
	}

	if s.generation.Load() != gen {
		return keys, nil
	}
	if err := s.cache.Set(ctx, keys); err != nil {
		s.logger.Warn("FEATURE_CACHE", "Cache write failed", map[string]interface{}{"backend": s.cache.Backend(), "error": err.Error()})
	} else {
		s.counters.sets.Add(1)
	}
	return keys, nil
}

func (s *featureFlagService) Create(ctx context.Context, req dto.CreateFeatureFlagRequest, actorId uuid.UUID) (*dto.FeatureFlagResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	flag, err := s.featureManager.Create(ctx, uow, req, actorId)
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.afterMutation(ctx, flag.Key, string(entity.AuditActionCreated), actorId)
	return mapper.FlagToResponse(flag), nil
}

func (s *featureFlagService) Update(ctx context.Context, key string, req dto.UpdateFeatureFlagRequest, actorId uuid.UUID) (*dto.FeatureFlagResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	flag, audit, err := s.featureManager.Update(ctx, uow, key, req, actorId)
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.afterMutation(ctx, key, string(audit.Action), actorId, map[string]interface{}{"changed_fields": len(audit.Changes)})
	return mapper.FlagToResponse(flag), nil
}

func (s *featureFlagService) Delete(ctx context.Context, key string, actorId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := s.featureManager.Delete(ctx, uow, key, actorId); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.afterMutation(ctx, key, string(entity.AuditActionDeleted), actorId)
	return nil
}

func (s *featureFlagService) GetAuditLog(ctx context.Context, q dto.AuditLogQuery) (*dto.AuditLogResult, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	entries, total, err := s.featureManager.GetAuditLog(ctx, uow, q)
	if err != nil {
		return nil, err
	}

	page, limit := feature.NormalizePage(q.Page, q.Limit)
	return &dto.AuditLogResult{
		Entries: mapper.AuditEntriesToResponse(entries),
		Total:   total,
		Page:    page,
		Limit:   limit,
	}, nil
}

func (s *featureFlagService) InvalidateCache(ctx context.Context) error {
	s.generation.Add(1)
	if err := s.cache.Invalidate(ctx); err != nil {
		return err
	}
	s.counters.invalidations.Add(1)
	return nil
}

func (s *featureFlagService) CacheStats() dto.CacheStats {
	return dto.CacheStats{
		Backend:       s.cache.Backend(),
		Hits:          s.counters.hits.Load(),
		Misses:        s.counters.misses.Load(),
		Sets:          s.counters.sets.Load(),
		Invalidations: s.counters.invalidations.Load(),
	}
}

func (s *featureFlagService) afterMutation(ctx context.Context, key, action string, actorId uuid.UUID, details ...map[string]interface{}) {
	if err := s.InvalidateCache(ctx); err != nil {
		s.logger.Warn("FEATURE_CACHE", "Failed to invalidate enabled keys cache", map[string]interface{}{"flag_key": key, "error": err.Error()})
	}

	fields := map[string]interface{}{"flag_key": key, "action": action, "actor_id": actorId}
	for _, d := range details {
		for k, v := range d {
			fields[k] = v
		}
	}
	s.logger.Info("FEATURE_FLAG", "Feature flag "+action, fields)

	s.eventPublisher.PublishFeatureFlagChanged(ctx, key, action, actorId)
}

// ForwardFlagChanges returns a bus handler that republishes FEATURE_FLAG_CHANGED
// events on the in-process topic so every instance drops its cache.
func ForwardFlagChanges(publisher IPublisherService) func(ctx context.Context, event events.Event) error {
	return func(ctx context.Context, event events.Event) error {
		if event.EventType() != events.FeatureFlagChanged {
			return nil
		}
		msg := dto.FlagChangedMessage{Source: "nats"}
		if key, ok := event.Payload()["flag_key"].(string); ok {
			msg.FlagKey = key
		}
		if action, ok := event.Payload()["action"].(string); ok {
			msg.Action = action
		}
		payload, err := json.Marshal(msg)
		if err != nil {
			return err
		}
		return publisher.Publish(ctx, payload)
	}
}
