package dto

import "github.com/shopspring/decimal"

type TransactionRequest struct {
	Title       string          `json:"title" validate:"required,max=200"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Type        string          `json:"type" validate:"required,oneof=income expense transfer"`
	CategoryID  string          `json:"category_id,omitempty" validate:"omitempty,uuid"`
	Description string          `json:"description,omitempty" validate:"max=1000"`
}

type TransactionResponse struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Amount      decimal.Decimal  `json:"amount"`
	Date        string           `json:"date"`
	Type        string           `json:"type"`
	Category    CategoryResponse `json:"category"`
	Description string           `json:"description,omitempty"`
	CreatedBy   string           `json:"created_by"`
	CreatedAt   string           `json:"created_at"`
}

type TransactionListQuery struct {
	Type       string `query:"type" validate:"omitempty,oneof=all income expense transfer"`
	From       string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To         string `query:"to" validate:"omitempty,datetime=2006-01-02"`
	CategoryID string `query:"category_id" validate:"omitempty,uuid"`
	Limit      int    `query:"limit" validate:"gte=0"`
	Offset     int    `query:"offset" validate:"gte=0"`
}

type TransactionListResponse struct {
	Items  []TransactionResponse `json:"items"`
	Limit  int                   `json:"limit"`
	Offset int                   `json:"offset"`
}
