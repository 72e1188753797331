package seeders

import (
	"context"

	"github.com/shashiranjanraj/shopfront/config"
	"github.com/shashiranjanraj/shopfront/pkg/logger"
)

func init() {
	Register("admin", SeedAdmin)
}

// SeedAdmin makes sure ADMIN_EMAIL is an administrator, creating the account
// with ADMIN_PASSWORD when it does not exist.
func SeedAdmin(ctx context.Context, d Deps) error {
	email := config.Get("ADMIN_EMAIL", "")
	if email == "" {
		logger.Warn("ADMIN_EMAIL not set, skipping admin seeder")
		return nil
	}

	u, created, err := d.Auth.EnsureAdmin(ctx, config.Get("ADMIN_NAME", "Admin"), email, config.Get("ADMIN_PASSWORD", ""))
	if err != nil {
		return err
	}
	logger.Info("admin ready", "user_id", u.ID.Hex(), "email", u.Email, "created", created)
	return nil
}
