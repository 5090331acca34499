package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome   TransactionType = "income"
	TransactionTypeExpense  TransactionType = "expense"
	TransactionTypeTransfer TransactionType = "transfer"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense, TransactionTypeTransfer:
		return true
	}
	return false
}

type Transaction struct {
	ID          uuid.UUID       `db:"id"`
	FamilyID    uuid.UUID       `db:"family_id"`
	UserID      uuid.UUID       `db:"user_id"`
	CategoryID  *uuid.UUID      `db:"category_id"`
	Title       string          `db:"title"`
	Amount      decimal.Decimal `db:"amount"`
	Type        TransactionType `db:"type"`
	Date        time.Time       `db:"date"`
	Description string          `db:"description"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`

	// Category is filled by list queries that join categories; nil when uncategorized.
	Category *Category `db:"-"`
}

// TransactionFilter narrows a transaction listing. Zero values mean "no filter".
type TransactionFilter struct {
	Type       TransactionType
	From       time.Time
	To         time.Time
	CategoryID *uuid.UUID
	Limit      int
	Offset     int
}
