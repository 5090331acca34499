package main

import (
	"context"
	"io"

	"finpal/internal/api"
	"finpal/internal/api/handlers"
	"finpal/internal/notify"
	"finpal/internal/repository"
	"finpal/internal/service"
	"finpal/pkg/auth"
	"finpal/pkg/config"
	"finpal/pkg/logger"
	"finpal/pkg/postgres"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, appLogger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()
			return serve(cmd.Context(), cfg, appLogger)
		},
	}
}

type invitationSender interface {
	service.InvitationNotifier
	io.Closer
}

func newNotifier(cfg config.AMQPConfig, appLogger *zap.Logger) (invitationSender, error) {
	if cfg.URL == "" {
		appLogger.Info("AMQP_URL not set, invitations will only be logged")
		return notify.NewLogNotifier(logger.Named("notify")), nil
	}
	return notify.NewAMQPNotifier(cfg.URL, cfg.Queue, logger.Named("notify"))
}

func serve(ctx context.Context, cfg *config.Config, appLogger *zap.Logger) error {
	appLogger.Info("Starting FinPal service")

	if cfg.Database.MigrateOnStart {
		if err := postgres.RunMigrations(&cfg.Database, appLogger); err != nil {
			return err
		}
	}

	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		return err
	}
	defer db.Close()

	notifier, err := newNotifier(cfg.AMQP, appLogger)
	if err != nil {
		return err
	}
	defer notifier.Close()

	// Initialize repositories
	profileRepo := repository.NewProfileRepository(db, appLogger)
	categoryRepo := repository.NewCategoryRepository(db, appLogger)
	txRepo := repository.NewTransactionRepository(db, appLogger)
	budgetRepo := repository.NewBudgetRepository(db, appLogger)

	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Initialize services
	authService := service.NewAuthService(profileRepo, categoryRepo, jwtManager, logger.Named("auth"))
	profileService := service.NewProfileService(profileRepo, notifier, cfg.App.BaseURL, logger.Named("family"))
	categoryService := service.NewCategoryService(categoryRepo, logger.Named("categories"))
	txService := service.NewTransactionService(txRepo, categoryRepo, logger.Named("transactions"))
	budgetService := service.NewBudgetService(budgetRepo, categoryRepo, txRepo, logger.Named("budgets"))
	analyticsService := service.NewAnalyticsService(txRepo, categoryRepo, budgetRepo, logger.Named("analytics"))

	app := api.SetupRouter(api.Handlers{
		Auth:          handlers.NewAuthHandler(authService, appLogger),
		Profile:       handlers.NewProfileHandler(profileService, appLogger),
		Category:      handlers.NewCategoryHandler(categoryService, appLogger),
		Transaction:   handlers.NewTransactionHandler(txService, appLogger),
		Budget:        handlers.NewBudgetHandler(budgetService, appLogger),
		Analytics:     handlers.NewAnalyticsHandler(analyticsService, appLogger),
		ScopeResolver: profileService,
		HealthCheck:   db.Ping,
	}, jwtManager, cfg.Server, appLogger)

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
	return nil
}
