package handlers

import (
	"errors"

	"finpal/internal/dto"
	"finpal/internal/models"
	"finpal/internal/service"
	"finpal/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func errorJSON(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

var errInvalidBody = errors.New("Invalid request body")

// bindJSON parses the body into req and runs its validate tags. The returned
// error is safe to show to the client.
func bindJSON(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return errInvalidBody
	}
	return dto.Validate(req)
}

func getScope(c *fiber.Ctx) (models.Scope, error) {
	scope, ok := middleware.ScopeFrom(c)
	if !ok {
		return models.Scope{}, fiber.ErrUnauthorized
	}
	return scope, nil
}

func getUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userIDStr, ok := c.Locals(middleware.LocalUserID).(string)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	return uuid.Parse(userIDStr)
}

func parseID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	return id, err == nil
}

// handleError maps service errors onto HTTP statuses. Anything unrecognised
// is logged and answered with fallback.
func handleError(c *fiber.Ctx, logger *zap.Logger, err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidInvite),
		errors.Is(err, service.ErrCategoryNotInScope):
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return errorJSON(c, fiber.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, service.ErrForbidden):
		return errorJSON(c, fiber.StatusForbidden, "Only the family owner can do this")
	case errors.Is(err, service.ErrNotFound):
		return errorJSON(c, fiber.StatusNotFound, "Not found")
	case errors.Is(err, service.ErrUserNotFound):
		return errorJSON(c, fiber.StatusNotFound, "User not found")
	case errors.Is(err, service.ErrUserExists):
		return errorJSON(c, fiber.StatusConflict, "User already exists")
	case errors.Is(err, service.ErrCategoryExists):
		return errorJSON(c, fiber.StatusConflict, "Category already exists")
	}

	logger.Error(fallback, zap.String("path", c.Path()), zap.Error(err))
	return errorJSON(c, fiber.StatusInternalServerError, fallback)
}
