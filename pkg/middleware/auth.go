package middleware

import (
	"context"
	"errors"
	"strings"

	"finpal/internal/models"
	"finpal/internal/service"
	"finpal/pkg/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	LocalUserID = "userID"
	LocalEmail  = "email"
	LocalScope  = "scope"
)

func AuthMiddleware(jwtManager *auth.JWTManager, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get(fiber.HeaderAuthorization)
		if token == "" {
			logger.Warn("Missing authorization token", zap.String("path", c.Path()))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization token required",
			})
		}

		token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))

		claims, err := jwtManager.ValidateAccessToken(token)
		if err != nil {
			logger.Warn("Invalid token", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalEmail, claims.Email)

		return c.Next()
	}
}

// ScopeResolver maps an authenticated user onto their family scope. It
// returns service.ErrUserNotFound when the profile no longer exists.
type ScopeResolver interface {
	ResolveScope(ctx context.Context, userID uuid.UUID) (models.Scope, error)
}

// ScopeMiddleware runs after AuthMiddleware and stores the caller's models.Scope.
func ScopeMiddleware(resolver ScopeResolver, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, _ := c.Locals(LocalUserID).(string)
		userID, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		scope, err := resolver.ResolveScope(c.UserContext(), userID)
		if errors.Is(err, service.ErrUserNotFound) {
			logger.Warn("Token for unknown profile", zap.String("user_id", raw))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}
		if err != nil {
			logger.Error("Failed to resolve scope", zap.String("user_id", raw), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal server error",
			})
		}

		c.Locals(LocalScope, scope)
		return c.Next()
	}
}

// ScopeFrom returns the scope stored by ScopeMiddleware.
func ScopeFrom(c *fiber.Ctx) (models.Scope, bool) {
	scope, ok := c.Locals(LocalScope).(models.Scope)
	return scope, ok
}
