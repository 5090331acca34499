package dto

import "github.com/shopspring/decimal"

type BudgetLimitRequest struct {
	CategoryID string          `json:"category_id" validate:"required,uuid"`
	Limit      decimal.Decimal `json:"limit"`
}

type SaveBudgetsRequest struct {
	Month  string               `json:"month" validate:"required,datetime=2006-01"`
	Limits []BudgetLimitRequest `json:"limits" validate:"dive"`
}

type BudgetItemResponse struct {
	Category CategoryResponse `json:"category"`
	Progress ProgressResponse `json:"progress"`
}

type BudgetMonthResponse struct {
	Month string               `json:"month"`
	Items []BudgetItemResponse `json:"items"`
}

type ProgressResponse struct {
	Spent      decimal.Decimal `json:"spent"`
	Limit      decimal.Decimal `json:"limit"`
	Remaining  decimal.Decimal `json:"remaining"`
	Percent    int             `json:"percent"`
	OverBudget bool            `json:"over_budget"`
	Status     string          `json:"status"`
}
