// Package bootstrap wires the runtime dependencies shared by the commands.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"bridgeforum/internal/cache"
	"bridgeforum/internal/config"
	"bridgeforum/internal/database"
	"bridgeforum/internal/models"
	"bridgeforum/internal/repository"
	"bridgeforum/internal/service"
	"bridgeforum/internal/validation"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// InitRuntime connects to the database and Redis and makes sure the configured admin exists.
// The Redis client is nil when Redis is unreachable.
func InitRuntime(ctx context.Context, cfg *config.Config) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if err := EnsureBootstrapAdmin(ctx, cfg, repository.NewUserRepository(db)); err != nil {
		return nil, nil, fmt.Errorf("failed to bootstrap admin account: %w", err)
	}

	return db, r, nil
}

// EnsureBootstrapAdmin creates the BOOTSTRAP_ADMIN_EMAIL account, or promotes it when it already
// exists. It does nothing when no email is configured.
func EnsureBootstrapAdmin(ctx context.Context, cfg *config.Config, users repository.UserRepository) error {
	if cfg == nil || strings.TrimSpace(cfg.BootstrapAdminEmail) == "" {
		return nil
	}
	email := validation.NormalizeEmail(cfg.BootstrapAdminEmail)
	if err := validation.ValidateEmail(email); err != nil {
		return fmt.Errorf("BOOTSTRAP_ADMIN_EMAIL: %w", err)
	}

	existing, err := users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		if existing.IsAdmin {
			return nil
		}
		if err := users.SetAdmin(ctx, existing.ID, true); err != nil {
			return err
		}
		log.Printf("bootstrap admin promoted: %s", email)
		return nil
	}

	if cfg.BootstrapAdminPassword == "" {
		return errors.New("BOOTSTRAP_ADMIN_PASSWORD must be set to create the bootstrap admin")
	}
	if err := validation.ValidatePassword(cfg.BootstrapAdminPassword); err != nil {
		return fmt.Errorf("BOOTSTRAP_ADMIN_PASSWORD: %w", err)
	}
	hash, err := service.HashPassword(cfg.BootstrapAdminPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &models.User{
		Username: strings.TrimSpace(cfg.BootstrapAdminUsername),
		Email:    email,
		Password: hash,
		IsAdmin:  true,
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}
	log.Printf("bootstrap admin created: %s", email)
	return nil
}
