package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/fintrackhq/fintrack-be/internal/models"
	"github.com/fintrackhq/fintrack-be/internal/storage"
)

// EnsureAdmin lazily creates the single admin account, looked up by its
// sentinel email. Safe to call on every startup.
func EnsureAdmin(ctx context.Context, store storage.UserStore, email, password string) error {
	_, err := store.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("look up admin: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	_, err = store.CreateUser(ctx, models.User{
		Name:         "Admin",
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	})
	if err != nil && !errors.Is(err, storage.ErrAlreadyExists) {
		return fmt.Errorf("create admin: %w", err)
	}
	return nil
}
