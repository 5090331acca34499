package service

import (
	"context"
	"testing"

	"finpal/internal/analytics"
	"finpal/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard(t *testing.T) {
	f := newBudgetFixture()
	food := f.categories.add(f.scope.FamilyID, "Food")
	rent := f.categories.add(f.scope.FamilyID, "Rent")
	f.categories.add(f.scope.FamilyID, "Unbudgeted")
	f.store.set(f.scope.FamilyID, food.ID, "2023-05", "100")
	f.store.set(f.scope.FamilyID, rent.ID, "2023-05", "1000")

	f.transactions.add(f.scope.FamilyID, models.TransactionTypeIncome, "3000", "2023-04-01", nil)
	f.transactions.add(f.scope.FamilyID, models.TransactionTypeExpense, "150", "2023-05-02", food)
	f.transactions.add(f.scope.FamilyID, models.TransactionTypeExpense, "900", "2023-05-01", rent)
	f.transactions.add(f.scope.FamilyID, models.TransactionTypeTransfer, "400", "2023-05-03", nil)
	f.transactions.add(f.scope.FamilyID, models.TransactionTypeExpense, "10", "2023-05-04", nil)
	f.transactions.add(f.scope.FamilyID, models.TransactionTypeExpense, "20", "2023-05-05", nil)
	f.transactions.add(f.scope.FamilyID, models.TransactionTypeExpense, "30", "2023-05-06", nil)
	f.transactions.add(uuid.New(), models.TransactionTypeIncome, "99999", "2023-05-06", nil)

	resp, err := f.analytics.Dashboard(context.Background(), f.scope, "")
	require.NoError(t, err)

	assert.Equal(t, "3000", resp.Totals.Income.String())
	assert.Equal(t, "1110", resp.Totals.Expense.String())
	assert.Equal(t, "1890", resp.Totals.Balance.String())
	assert.Equal(t, "2023-05", resp.Month)

	// 1050 spent of 1100 budgeted; uncategorized spend is not budgeted
	assert.Equal(t, "1050", resp.MonthlyBudget.Spent.String())
	assert.Equal(t, "1100", resp.MonthlyBudget.Limit.String())
	assert.Equal(t, 95, resp.MonthlyBudget.Percent)
	assert.Equal(t, string(analytics.BudgetStatusWarning), resp.MonthlyBudget.Status)

	require.Len(t, resp.RecentTransactions, recentTransactions)
	assert.Equal(t, "2023-05-06", resp.RecentTransactions[0].Date)
}

func TestSummaryDefaultsToCurrentMonth(t *testing.T) {
	f := newBudgetFixture()
	food := f.categories.add(f.scope.FamilyID, "Food")
	f.transactions.add(f.scope.FamilyID, models.TransactionTypeExpense, "30", "2023-05-02", food)
	f.transactions.add(f.scope.FamilyID, models.TransactionTypeExpense, "10", "2023-05-02", nil)
	f.transactions.add(f.scope.FamilyID, models.TransactionTypeIncome, "100", "2023-05-31", nil)
	f.transactions.add(f.scope.FamilyID, models.TransactionTypeExpense, "500", "2023-06-01", food)

	resp, err := f.analytics.Summary(context.Background(), f.scope, "", "")
	require.NoError(t, err)

	assert.Equal(t, "2023-05-01", resp.From)
	assert.Equal(t, "2023-05-31", resp.To)
	assert.Equal(t, "60", resp.Totals.Balance.String())
	require.Len(t, resp.Daily, 31)
	assert.Equal(t, "40", resp.Daily[1].Expense.String())
	assert.Equal(t, "100", resp.Daily[30].Income.String())
	assert.True(t, resp.Daily[0].Expense.IsZero())

	require.Len(t, resp.ExpenseByCategory, 2)
	assert.Equal(t, "Food", resp.ExpenseByCategory[0].Name)
	assert.Equal(t, "75", resp.ExpenseByCategory[0].Percent.String())
	assert.Equal(t, analytics.UncategorizedName, resp.ExpenseByCategory[1].Name)
	require.Len(t, resp.IncomeByCategory, 1)
}

func TestSummaryRange(t *testing.T) {
	f := newBudgetFixture()

	_, err := f.analytics.Summary(context.Background(), f.scope, "2023-01-01", "2024-01-01")
	assert.NoError(t, err, "366 days inclusive")

	_, err = f.analytics.Summary(context.Background(), f.scope, "2023-01-01", "2024-01-02")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.analytics.Summary(context.Background(), f.scope, "2023-02-01", "2023-01-01")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.analytics.Summary(context.Background(), f.scope, "01/02/2023", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSummarySingleBound(t *testing.T) {
	f := newBudgetFixture()

	resp, err := f.analytics.Summary(context.Background(), f.scope, "2023-08-10", "")
	require.NoError(t, err)
	assert.Equal(t, "2023-08-10", resp.From)
	assert.Equal(t, "2023-08-31", resp.To)

	resp, err = f.analytics.Summary(context.Background(), f.scope, "2021-02-03", "")
	require.NoError(t, err)
	assert.Equal(t, "2021-02-28", resp.To)
	assert.Len(t, resp.Daily, 26)

	resp, err = f.analytics.Summary(context.Background(), f.scope, "", "2020-03-15")
	require.NoError(t, err)
	assert.Equal(t, "2020-03-01", resp.From)
	assert.Equal(t, "2020-03-15", resp.To)
}

func TestBudgetOverviewOnlyBudgeted(t *testing.T) {
	f := newBudgetFixture()
	food := f.categories.add(f.scope.FamilyID, "Food")
	f.categories.add(f.scope.FamilyID, "Rent")
	f.store.set(f.scope.FamilyID, food.ID, "2023-05", "100")
	f.transactions.add(f.scope.FamilyID, models.TransactionTypeExpense, "250", "2023-05-10", food)

	resp, err := f.analytics.BudgetOverview(context.Background(), f.scope, "2023-05")
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)

	p := resp.Items[0].Progress
	assert.Equal(t, 100, p.Percent)
	assert.True(t, p.OverBudget)
	assert.Equal(t, "-150", p.Remaining.String())
	assert.Equal(t, string(analytics.BudgetStatusOver), p.Status)
}
