package main

import (
	"context"
	"os"

	"habit-tracker-be/internal/config"
	"habit-tracker-be/internal/repository/unitofwork"
	"habit-tracker-be/pkg/admin/feature"
	"habit-tracker-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

func main() {
	ctx := context.Background()

	cfg := config.Load()
	if cfg.Database.Connection == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, false)
	if err != nil {
		color.Red("Error: Failed to connect to database: %v", err)
		os.Exit(1)
	}
	factory := unitofwork.NewRepositoryFactory(db)

	actorId := uuid.Nil
	if cfg.Seed.AdminEmail != "" {
		color.Cyan("Seeding admin account...")
		actorId, err = SeedAdmin(ctx, factory.NewUnitOfWork(ctx), cfg.Seed.AdminEmail, cfg.Seed.AdminPassword)
		if err != nil {
			color.Red("Error: %v", err)
			os.Exit(1)
		}
		color.Green("Admin ready: %s (%s)", cfg.Seed.AdminEmail, actorId)
	} else {
		color.Yellow("SEED_ADMIN_EMAIL not set, skipping admin account")
	}

	color.Cyan("Seeding feature flags...")
	created, err := SeedFeatureFlags(ctx, factory, feature.NewManager(), actorId)
	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}

	color.Green("✅ Seeding completed! %d feature flags created.", created)
}
