package cmd

import (
	"context"
	"fmt"

	"erp-backend/pkg/database"
	"erp-backend/pkg/utils"

	_ "erp-backend/migrations"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

// MigrationsDir holds the registered Go migrations, relative to the repository root.
const MigrationsDir = "migrations"

// Migrate applies pending migrations. args may name a goose command
// (up, down, status, version); the default is up.
func Migrate(ctx context.Context, config utils.DatabaseConfig, args []string, logger *zap.Logger) error {
	db, err := database.OpenSQL(config)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	command := "up"
	if len(args) > 0 {
		command = args[0]
	}

	logger.Info("Running migrations", zap.String("command", command), zap.String("dir", MigrationsDir))
	if err := goose.RunContext(ctx, command, db, MigrationsDir, args[min(1, len(args)):]...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}
