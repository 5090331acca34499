package dto

import "github.com/shopspring/decimal"

type TotalsResponse struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

type DashboardResponse struct {
	Totals             TotalsResponse        `json:"totals"`
	Month              string                `json:"month"`
	MonthlyBudget      ProgressResponse      `json:"monthly_budget"`
	RecentTransactions []TransactionResponse `json:"recent_transactions"`
}

type CategorySliceResponse struct {
	CategoryID string          `json:"category_id,omitempty"`
	Name       string          `json:"name"`
	Color      string          `json:"color"`
	Icon       string          `json:"icon"`
	Total      decimal.Decimal `json:"total"`
	Count      int             `json:"count"`
	Percent    decimal.Decimal `json:"percent"`
}

type DailyPointResponse struct {
	Date    string          `json:"date"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

type SummaryResponse struct {
	From              string                  `json:"from"`
	To                string                  `json:"to"`
	Totals            TotalsResponse          `json:"totals"`
	ExpenseByCategory []CategorySliceResponse `json:"expense_by_category"`
	IncomeByCategory  []CategorySliceResponse `json:"income_by_category"`
	Daily             []DailyPointResponse    `json:"daily"`
}
