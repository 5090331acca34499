package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AnalyticsHandler struct {
	analyticsService AnalyticsService
	logger           *zap.Logger
}

func NewAnalyticsHandler(analyticsService AnalyticsService, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		logger:           logger,
	}
}

// Dashboard godoc
// @Summary Dashboard figures
// @Description All-time totals, the month's overall budget progress and the five latest transactions.
// @Tags analytics
// @Produce json
// @Param month query string false "YYYY-MM"
// @Security Bearer
// @Success 200 {object} dto.DashboardResponse
// @Router /api/v1/analytics/dashboard [get]
func (h *AnalyticsHandler) Dashboard(c *fiber.Ctx) error {
	scope, err := getScope(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	resp, err := h.analyticsService.Dashboard(c.UserContext(), scope, c.Query("month"))
	if err != nil {
		return handleError(c, h.logger, err, "Failed to build dashboard")
	}
	return c.JSON(resp)
}

// Summary godoc
// @Summary Totals, category breakdown and daily series
// @Tags analytics
// @Produce json
// @Param from query string false "YYYY-MM-DD, defaults to the first of this month"
// @Param to query string false "YYYY-MM-DD, defaults to the end of this month"
// @Security Bearer
// @Success 200 {object} dto.SummaryResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/analytics/summary [get]
func (h *AnalyticsHandler) Summary(c *fiber.Ctx) error {
	scope, err := getScope(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	resp, err := h.analyticsService.Summary(c.UserContext(), scope, c.Query("from"), c.Query("to"))
	if err != nil {
		return handleError(c, h.logger, err, "Failed to build summary")
	}
	return c.JSON(resp)
}

// BudgetOverview godoc
// @Summary Progress of every budgeted category
// @Tags analytics
// @Produce json
// @Param month query string false "YYYY-MM"
// @Security Bearer
// @Success 200 {object} dto.BudgetMonthResponse
// @Router /api/v1/analytics/budgets [get]
func (h *AnalyticsHandler) BudgetOverview(c *fiber.Ctx) error {
	scope, err := getScope(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	resp, err := h.analyticsService.BudgetOverview(c.UserContext(), scope, c.Query("month"))
	if err != nil {
		return handleError(c, h.logger, err, "Failed to build budget overview")
	}
	return c.JSON(resp)
}
