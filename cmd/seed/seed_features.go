package main

import (
	"context"
	"fmt"

	"habit-tracker-be/internal/dto"
	"habit-tracker-be/internal/repository/specification"
	"habit-tracker-be/internal/repository/unitofwork"
	"habit-tracker-be/pkg/admin/feature"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

func strPtr(s string) *string { return &s }

// defaultFlags is the initial flag catalog. Everything ships disabled.
var defaultFlags = []dto.CreateFeatureFlagRequest{
	{Key: "ai_insights", Name: "AI Insights", Description: strPtr("Generate weekly AI reports from habit activity"), Category: "ai"},
	{Key: "books", Name: "Book Tracking", Description: strPtr("Reading list with progress and ratings"), Category: "content"},
	{Key: "challenges", Name: "Challenges", Description: strPtr("Time boxed habit challenges"), Category: "content"},
	{Key: "milestones", Name: "Milestones", Description: strPtr("Streak and completion milestones"), Category: "engagement"},
	{Key: "templates", Name: "Habit Templates", Description: strPtr("Start habits from curated templates"), Category: "content"},
}

// SeedFeatureFlags creates every missing default flag with a CREATED audit
// entry attributed to actorId. Existing keys are left untouched.
func SeedFeatureFlags(ctx context.Context, factory unitofwork.RepositoryFactory, manager *feature.Manager, actorId uuid.UUID) (int, error) {
	created := 0
	for _, req := range defaultFlags {
		existing, err := factory.NewUnitOfWork(ctx).FeatureFlagRepository().FindOne(ctx, specification.ByFlagKey{Key: req.Key})
		if err != nil {
			return created, fmt.Errorf("lookup flag %s: %w", req.Key, err)
		}
		if existing != nil {
			color.White("Feature flag '%s' already exists, skipping...", req.Key)
			continue
		}

		if err := createFlag(ctx, factory, manager, req, actorId); err != nil {
			return created, err
		}
		created++
		color.Green("Created feature flag: %s (%s)", req.Name, req.Key)
	}
	return created, nil
}

func createFlag(ctx context.Context, factory unitofwork.RepositoryFactory, manager *feature.Manager, req dto.CreateFeatureFlagRequest, actorId uuid.UUID) error {
	uow := factory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if _, err := manager.Create(ctx, uow, req, actorId); err != nil {
		return fmt.Errorf("create flag %s: %w", req.Key, err)
	}
	return uow.Commit()
}
