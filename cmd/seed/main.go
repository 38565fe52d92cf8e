// Command seed resets the users table and fills it with deterministic
// development data. It is a standalone administrative tool and is never
// reachable from the HTTP surface.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"usersvc/config"
	"usersvc/internal/domain/entity"
	"usersvc/internal/infra/auth"
	logs "usersvc/internal/infra/log"
	"usersvc/internal/infra/persistence/postgres"

	"github.com/pkg/errors"
	pgLib "github.com/slighter12/go-lib/database/postgres"
)

const defaultSeedUsers = 10

func main() {
	count := flag.Int("count", 0, "number of users to seed (0 = config value or default)")
	flag.Parse()

	if err := run(context.Background(), *count); err != nil {
		slog.Error("Seeding failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, count int) error {
	cfg, err := config.New()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	logger, err := logs.New(logs.Params{Config: cfg})
	if err != nil {
		return errors.Wrap(err, "failed to build logger")
	}

	if count <= 0 {
		count = defaultSeedUsers
		if cfg.Seed != nil && cfg.Seed.Users > 0 {
			count = cfg.Seed.Users
		}
	}

	db, err := pgLib.New(cfg.Postgres)
	if err != nil {
		return errors.Wrap(err, "failed to create PostgreSQL client")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}
	defer sqlDB.Close()

	repo := postgres.NewUserRepository(db)
	hasher := auth.NewBcryptHasher(cfg)

	logger.Info("Clearing users table")
	if err := repo.DeleteAll(ctx); err != nil {
		return errors.Wrap(err, "failed to clear users table")
	}

	for i := range count {
		hash, err := hasher.Hash(fmt.Sprintf("password%d", i))
		if err != nil {
			return errors.Wrapf(err, "failed to hash seed password %d", i)
		}

		user := &entity.User{
			Username:     fmt.Sprintf("user%d", i),
			Email:        fmt.Sprintf("user%d@example.com", i),
			PasswordHash: hash,
		}
		if err := repo.Create(ctx, user); err != nil {
			return errors.Wrapf(err, "failed to seed user %d", i)
		}
	}

	logger.Info("Seeding complete", slog.Int("users", count))

	return nil
}
