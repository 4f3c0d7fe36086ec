// main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"erp-backend/cmd"
	"erp-backend/internal/data/repository"
	"erp-backend/internal/usecase"
	"erp-backend/internal/wire"
	"erp-backend/pkg/database"
	"erp-backend/pkg/events"
	"erp-backend/pkg/mailer"
	"erp-backend/pkg/storage"
	"erp-backend/pkg/token"
	"erp-backend/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	command := "serve"
	var args []string
	if len(os.Args) > 1 {
		command, args = os.Args[1], os.Args[2:]
	}

	if err := run(context.Background(), config, command, args, logger); err != nil {
		logger.Error("Command failed", zap.String("command", command), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

// run executes one command. Resources opened here are released before it
// returns, so main only exits after the deferred closes have run.
func run(ctx context.Context, config *utils.Config, command string, args []string, logger *zap.Logger) error {
	if command == "migrate" {
		if err := cmd.Migrate(ctx, config.Database, args, logger); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		return nil
	}

	if command != "serve" && command != "createsuperuser" {
		return fmt.Errorf("unknown command %q, expected serve, migrate or createsuperuser", command)
	}

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("command", command),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	deps, closeDeps, err := initDeps(ctx, config, logger)
	if err != nil {
		return err
	}
	defer closeDeps()

	repos := repository.NewRepository(db, logger)

	if command == "createsuperuser" {
		service := usecase.NewService(repos, config, deps, logger)
		err := cmd.CreateSuperuser(ctx, service.Account, args, logger)
		service.Wait()
		return err
	}

	app := wire.Wiring(repos, config, deps, logger)
	err = cmd.APIServer(app.Router, config.App.Port, logger)
	app.Service.Wait()
	if err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}

// initDeps builds the outbound adapters. Mail, events and storage fall back to
// log-only or disabled implementations when they are not configured.
func initDeps(ctx context.Context, config *utils.Config, logger *zap.Logger) (usecase.Deps, func(), error) {
	mail, err := mailer.New(config.Email, logger)
	if err != nil {
		return usecase.Deps{}, nil, fmt.Errorf("init mailer: %w", err)
	}

	publisher, err := events.New(config.NATS.URL, logger)
	if err != nil {
		logger.Warn("NATS unavailable, account events are disabled", zap.Error(err))
		publisher = events.NopPublisher{}
	}

	store, err := storage.New(ctx, config.Storage, logger)
	if err != nil {
		publisher.Close()
		return usecase.Deps{}, nil, fmt.Errorf("init file storage: %w", err)
	}

	deps := usecase.Deps{
		Tokens:  token.NewManager(config.JWT),
		Mailer:  mail,
		Events:  publisher,
		Storage: store,
	}
	return deps, publisher.Close, nil
}
