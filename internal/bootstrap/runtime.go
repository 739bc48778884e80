// Package bootstrap wires up runtime dependencies for the commands.
package bootstrap

import (
	"errors"
	"fmt"
	"strings"

	"critica/internal/cache"
	"critica/internal/config"
	"critica/internal/database"
	"critica/internal/models"
	"critica/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	SeedDemoData bool
}

// InitRuntime connects to the database and Redis and optionally seeds
// demo data. The Redis client may be nil when the server is unreachable;
// callers degrade to uncached operation.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if err := ensureDevRootAdmin(cfg, db); err != nil {
		return nil, nil, fmt.Errorf("failed to bootstrap development root admin: %w", err)
	}

	if opts.SeedDemoData {
		if err := seed.DemoCatalog(db); err != nil {
			return nil, nil, fmt.Errorf("failed to seed demo catalog: %w", err)
		}
	}

	return db, r, nil
}

// ensureDevRootAdmin creates (or repairs) the development superuser.
// There is no password to set: the account signs in through the normal
// signup/token flow, with the code delivered to the local mail catcher.
func ensureDevRootAdmin(cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil {
		return nil
	}
	if !strings.EqualFold(cfg.Env, "development") || !cfg.DevBootstrapRoot {
		return nil
	}

	username := strings.TrimSpace(cfg.DevRootUsername)
	if username == "" {
		username = "critica_root"
	}
	email := strings.TrimSpace(strings.ToLower(cfg.DevRootEmail))
	if email == "" {
		email = "root@critica.local"
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var root models.User
		findErr := tx.Where("username = ?", username).First(&root).Error
		switch {
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			root = models.User{
				Username:  username,
				Email:     email,
				Role:      models.RoleAdmin,
				Superuser: true,
			}
			return tx.Create(&root).Error
		case findErr != nil:
			return findErr
		default:
			return tx.Model(&root).Updates(map[string]any{
				"role":      models.RoleAdmin,
				"superuser": true,
			}).Error
		}
	})
}
