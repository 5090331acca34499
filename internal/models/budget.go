package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetCategory is a spending limit for one category in one month.
type BudgetCategory struct {
	ID          uuid.UUID       `db:"id"`
	FamilyID    uuid.UUID       `db:"family_id"`
	CategoryID  uuid.UUID       `db:"category_id"`
	Month       time.Time       `db:"month"`
	LimitAmount decimal.Decimal `db:"limit_amount"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

// MonthStart truncates t to the first day of its month at UTC midnight.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
