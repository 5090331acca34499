package service

import (
	"context"
	"testing"
	"time"

	"finpal/internal/dto"
	"finpal/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type budgetFixture struct {
	budgets      *BudgetService
	analytics    *AnalyticsService
	store        *memBudgets
	categories   *memCategories
	transactions *memTransactions
	scope        models.Scope
}

func newBudgetFixture() *budgetFixture {
	f := &budgetFixture{
		store:      newMemBudgets(),
		categories: newMemCategories(),
	}
	f.transactions = newMemTransactions(f.categories)
	family := uuid.New()
	f.scope = models.Scope{UserID: family, FamilyID: family, Role: models.RoleOwner}

	f.budgets = NewBudgetService(f.store, f.categories, f.transactions, zap.NewNop())
	f.budgets.now = fixedClock("2023-05-20")
	f.analytics = NewAnalyticsService(f.transactions, f.categories, f.store, zap.NewNop())
	f.analytics.now = fixedClock("2023-05-20")
	return f
}

func limitReq(c *models.Category, limit string) dto.BudgetLimitRequest {
	return dto.BudgetLimitRequest{CategoryID: c.ID.String(), Limit: decimal.RequireFromString(limit)}
}

func june() time.Time {
	return time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)
}

func TestBudgetMonthListsEveryCategory(t *testing.T) {
	f := newBudgetFixture()
	food := f.categories.add(f.scope.FamilyID, "Food")
	rent := f.categories.add(f.scope.FamilyID, "Rent")
	f.store.set(f.scope.FamilyID, food.ID, "2023-05", "200")
	f.transactions.add(f.scope.FamilyID, models.TransactionTypeExpense, "50", "2023-05-03", food)
	f.transactions.add(f.scope.FamilyID, models.TransactionTypeExpense, "70", "2023-04-30", food)
	f.transactions.add(f.scope.FamilyID, models.TransactionTypeIncome, "500", "2023-05-03", food)

	resp, err := f.budgets.Month(context.Background(), f.scope, "")
	require.NoError(t, err)
	assert.Equal(t, "2023-05", resp.Month)
	require.Len(t, resp.Items, 2)

	assert.Equal(t, food.Name, resp.Items[0].Category.Name)
	assert.Equal(t, "50", resp.Items[0].Progress.Spent.String())
	assert.Equal(t, "200", resp.Items[0].Progress.Limit.String())
	assert.Equal(t, 25, resp.Items[0].Progress.Percent)

	assert.Equal(t, rent.Name, resp.Items[1].Category.Name)
	assert.True(t, resp.Items[1].Progress.Limit.IsZero())
	assert.Equal(t, 0, resp.Items[1].Progress.Percent)
}

func TestBudgetMonthRejectsBadMonth(t *testing.T) {
	f := newBudgetFixture()
	_, err := f.budgets.Month(context.Background(), f.scope, "May 2023")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSaveBudgetsUpsertsAndClears(t *testing.T) {
	f := newBudgetFixture()
	food := f.categories.add(f.scope.FamilyID, "Food")
	rent := f.categories.add(f.scope.FamilyID, "Rent")
	f.store.set(f.scope.FamilyID, rent.ID, "2023-06", "900")

	resp, err := f.budgets.Save(context.Background(), f.scope, &dto.SaveBudgetsRequest{
		Month:  "2023-06",
		Limits: []dto.BudgetLimitRequest{limitReq(food, "150.555"), limitReq(rent, "0")},
	})
	require.NoError(t, err)
	assert.Equal(t, "2023-06", resp.Month)

	rows, err := f.store.ListByMonth(context.Background(), f.scope.FamilyID, june())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, food.ID, rows[0].CategoryID)
	assert.Equal(t, "150.56", rows[0].LimitAmount.String())

	// saving again updates in place instead of duplicating
	_, err = f.budgets.Save(context.Background(), f.scope, &dto.SaveBudgetsRequest{
		Month:  "2023-06",
		Limits: []dto.BudgetLimitRequest{limitReq(food, "80")},
	})
	require.NoError(t, err)
	rows, err = f.store.ListByMonth(context.Background(), f.scope.FamilyID, june())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "80", rows[0].LimitAmount.String())
}

func TestSaveBudgetsRejectsBeforeWriting(t *testing.T) {
	f := newBudgetFixture()
	food := f.categories.add(f.scope.FamilyID, "Food")
	foreign := f.categories.add(uuid.New(), "Theirs")

	_, err := f.budgets.Save(context.Background(), f.scope, &dto.SaveBudgetsRequest{
		Month:  "2023-06",
		Limits: []dto.BudgetLimitRequest{limitReq(food, "10"), limitReq(foreign, "10")},
	})
	assert.ErrorIs(t, err, ErrCategoryNotInScope)

	_, err = f.budgets.Save(context.Background(), f.scope, &dto.SaveBudgetsRequest{
		Month:  "2023-06",
		Limits: []dto.BudgetLimitRequest{limitReq(food, "-1")},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.budgets.Save(context.Background(), f.scope, &dto.SaveBudgetsRequest{
		Month:  "2023-06",
		Limits: []dto.BudgetLimitRequest{limitReq(food, "1"), limitReq(food, "2")},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Zero(t, f.store.saves)
	assert.Empty(t, f.store.rows)
}
