package main

import (
	"os"

	"habit-tracker-be/internal/config"
	"habit-tracker-be/internal/model"
	"habit-tracker-be/pkg/database"

	"github.com/fatih/color"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, false)
	if err != nil {
		color.Red("Error: Failed to connect to database: %v", err)
		os.Exit(1)
	}

	color.Cyan("🚀 Starting GORM Migration...")

	// 3. Pre-Migration: Extensions
	color.Yellow("Step 1: Setting up Extensions...")
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		color.Red("Warn: Failed to create pgcrypto extension: %v. Continuing...", err)
	}

	// 4. AutoMigrate All Models
	models := model.All()
	color.Yellow("Step 2: Running AutoMigrate for %d Tables...", len(models))
	if err := db.AutoMigrate(models...); err != nil {
		color.Red("Error: AutoMigrate failed: %v", err)
		os.Exit(1)
	}

	// 5. Post-Migration: indexes for the admin queries
	color.Yellow("Step 3: Creating Indexes...")
	postMigrationSQL := []string{
		// Export and trends read logs newest first per user.
		`CREATE INDEX IF NOT EXISTS idx_habit_logs_user_date ON habit_logs (user_id, date DESC);`,
		// Enabled flag lookups.
		`CREATE INDEX IF NOT EXISTS idx_feature_flags_enabled ON feature_flags (key) WHERE enabled;`,
		// Audit log listing per flag.
		`CREATE INDEX IF NOT EXISTS idx_feature_flag_audit_logs_key_created ON feature_flag_audit_logs (flag_key, created_at DESC);`,
	}
	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			color.Red("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	color.Green("✅ Success: Database migration completed successfully via GORM.")
}
