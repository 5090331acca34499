package api

import (
	"context"
	"errors"
	"time"

	"finpal/docs"
	"finpal/internal/api/handlers"
	"finpal/pkg/auth"
	"finpal/pkg/config"
	"finpal/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth          *handlers.AuthHandler
	Profile       *handlers.ProfileHandler
	Category      *handlers.CategoryHandler
	Transaction   *handlers.TransactionHandler
	Budget        *handlers.BudgetHandler
	Analytics     *handlers.AnalyticsHandler
	ScopeResolver middleware.ScopeResolver

	// HealthCheck reports whether backing services are reachable; nil means always healthy
	HealthCheck func(ctx context.Context) error
}

func SetupRouter(h Handlers, jwtManager *auth.JWTManager, cfg config.ServerConfig, appLogger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			if code == fiber.StatusInternalServerError {
				appLogger.Error("Unhandled error", zap.String("path", c.Path()), zap.Error(err))
				return c.Status(code).JSON(fiber.Map{"error": "Internal server error"})
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	// importing docs registers the swagger document
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", func(c *fiber.Ctx) error {
		if h.HealthCheck != nil {
			if err := h.HealthCheck(c.UserContext()); err != nil {
				appLogger.Warn("Health check failed", zap.Error(err))
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth routes (public, rate limited per client IP)
	authGroup := app.Group("/user/auth", authLimiter(cfg.AuthRateLimit))
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.RefreshToken)

	protected := app.Group("/api/v1",
		middleware.AuthMiddleware(jwtManager, appLogger),
		middleware.ScopeMiddleware(h.ScopeResolver, appLogger),
	)

	protected.Get("/profile", h.Profile.GetProfile)
	protected.Put("/profile", h.Profile.UpdateProfile)

	family := protected.Group("/family")
	family.Get("/members", h.Profile.FamilyMembers)
	family.Post("/invitations", h.Profile.InviteMember)
	family.Delete("/members/:id", h.Profile.RemoveMember)

	categories := protected.Group("/categories")
	categories.Get("", h.Category.ListCategories)
	categories.Post("", h.Category.CreateCategory)
	categories.Put("/:id", h.Category.UpdateCategory)
	categories.Delete("/:id", h.Category.DeleteCategory)

	transactions := protected.Group("/transactions")
	transactions.Get("", h.Transaction.ListTransactions)
	transactions.Post("", h.Transaction.CreateTransaction)
	transactions.Get("/:id", h.Transaction.GetTransaction)
	transactions.Put("/:id", h.Transaction.UpdateTransaction)
	transactions.Delete("/:id", h.Transaction.DeleteTransaction)

	budgets := protected.Group("/budgets")
	budgets.Get("", h.Budget.GetBudgets)
	budgets.Put("", h.Budget.SaveBudgets)

	analytics := protected.Group("/analytics")
	analytics.Get("/dashboard", h.Analytics.Dashboard)
	analytics.Get("/summary", h.Analytics.Summary)
	analytics.Get("/budgets", h.Analytics.BudgetOverview)

	return app
}

func authLimiter(max int) fiber.Handler {
	if max <= 0 {
		max = 20
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many attempts. Please try again later.",
			})
		},
	})
}
