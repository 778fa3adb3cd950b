package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/tuanvumaihuynh/bizsuite/internal/apperr"
	"github.com/tuanvumaihuynh/bizsuite/internal/config"
	"github.com/tuanvumaihuynh/bizsuite/internal/log"
	"github.com/tuanvumaihuynh/bizsuite/internal/model"
	"github.com/tuanvumaihuynh/bizsuite/internal/repository"
	"github.com/tuanvumaihuynh/bizsuite/internal/service"
	"github.com/tuanvumaihuynh/bizsuite/internal/storage/db"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running migrate application: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log       config.Log
		Postgres  config.Postgres
		Bootstrap config.Bootstrap
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	pgxPool, err := db.NewPgxPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("error creating pgx pool: %w", err)
	}
	defer pgxPool.Close()

	logger.InfoContext(ctx, "starting database migration")

	if err := db.Migrate(ctx, pgxPool, logger); err != nil {
		return fmt.Errorf("error migrating database: %w", err)
	}

	logger.InfoContext(ctx, "database migration completed successfully")

	if !cfg.Bootstrap.Enabled() {
		return nil
	}

	userSvc := service.NewUserService(repository.NewUserRepository(db.NewClient(pgxPool)))
	admin, err := userSvc.CreateUser(ctx, service.CreateUserParams{
		Email:    cfg.Bootstrap.AdminEmail,
		Password: cfg.Bootstrap.AdminPassword,
		Name:     cfg.Bootstrap.AdminName,
		Role:     model.RoleAdmin,
	})
	switch {
	case errors.Is(err, apperr.EmailTakenErr):
		logger.InfoContext(ctx, "bootstrap admin already exists", slog.String("email", cfg.Bootstrap.AdminEmail))
	case err != nil:
		return fmt.Errorf("error creating bootstrap admin: %w", err)
	default:
		logger.InfoContext(ctx, "bootstrap admin created", slog.Int64("user_id", admin.ID))
	}

	return nil
}
