package handlers

import (
	"finpal/internal/dto"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type BudgetHandler struct {
	budgetService BudgetService
	logger        *zap.Logger
}

func NewBudgetHandler(budgetService BudgetService, logger *zap.Logger) *BudgetHandler {
	return &BudgetHandler{
		budgetService: budgetService,
		logger:        logger,
	}
}

// GetBudgets godoc
// @Summary Budgets for a month
// @Description Every category with its limit (zero when unset) and the month's spend.
// @Tags budgets
// @Produce json
// @Param month query string false "YYYY-MM, defaults to the current month"
// @Security Bearer
// @Success 200 {object} dto.BudgetMonthResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/budgets [get]
func (h *BudgetHandler) GetBudgets(c *fiber.Ctx) error {
	scope, err := getScope(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	resp, err := h.budgetService.Month(c.UserContext(), scope, c.Query("month"))
	if err != nil {
		return handleError(c, h.logger, err, "Failed to load budgets")
	}
	return c.JSON(resp)
}

// SaveBudgets godoc
// @Summary Save a month's budget limits
// @Description A zero limit clears that category's budget. All limits are saved together or not at all.
// @Tags budgets
// @Accept json
// @Produce json
// @Param request body dto.SaveBudgetsRequest true "Limits"
// @Security Bearer
// @Success 200 {object} dto.BudgetMonthResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/budgets [put]
func (h *BudgetHandler) SaveBudgets(c *fiber.Ctx) error {
	scope, err := getScope(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.SaveBudgetsRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Month == "" {
		req.Month = c.Query("month")
	}
	if err := dto.Validate(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	resp, err := h.budgetService.Save(c.UserContext(), scope, &req)
	if err != nil {
		return handleError(c, h.logger, err, "Failed to save budgets")
	}
	return c.JSON(resp)
}
