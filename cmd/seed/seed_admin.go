package main

import (
	"context"
	"fmt"
	"strings"

	"habit-tracker-be/internal/entity"
	"habit-tracker-be/internal/repository/specification"
	"habit-tracker-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minAdminPasswordLength = 8

// SeedAdmin makes sure an admin account exists for email. An existing user is
// promoted; otherwise one is created with a bcrypt hashed password.
func SeedAdmin(ctx context.Context, uow unitofwork.UnitOfWork, email, password string) (uuid.UUID, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return uuid.Nil, fmt.Errorf("admin email is required")
	}

	users := uow.UserRepository()
	existing, err := users.FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return uuid.Nil, fmt.Errorf("lookup admin: %w", err)
	}
	if existing != nil {
		if !existing.IsAdmin {
			if err := users.UpdateRole(ctx, existing.Id, true); err != nil {
				return uuid.Nil, fmt.Errorf("promote admin: %w", err)
			}
		}
		return existing.Id, nil
	}

	if len(password) < minAdminPasswordLength {
		return uuid.Nil, fmt.Errorf("admin password must be at least %d characters", minAdminPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return uuid.Nil, fmt.Errorf("hash admin password: %w", err)
	}
	hashed := string(hash)

	admin := &entity.User{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: &hashed,
		IsAdmin:      true,
		Timezone:     "UTC",
	}
	if err := users.Create(ctx, admin); err != nil {
		return uuid.Nil, fmt.Errorf("create admin: %w", err)
	}
	return admin.Id, nil
}
