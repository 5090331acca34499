package service

import (
	"context"
	"testing"

	"finpal/internal/dto"
	"finpal/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type ledgerFixture struct {
	svc          *TransactionService
	categories   *memCategories
	transactions *memTransactions
	scope        models.Scope
}

func newLedgerFixture() *ledgerFixture {
	f := &ledgerFixture{categories: newMemCategories()}
	f.transactions = newMemTransactions(f.categories)
	family := uuid.New()
	f.scope = models.Scope{UserID: family, FamilyID: family, Role: models.RoleOwner}
	f.svc = NewTransactionService(f.transactions, f.categories, zap.NewNop())
	f.svc.now = fixedClock("2023-05-20")
	return f
}

func txReq(amount string) *dto.TransactionRequest {
	return &dto.TransactionRequest{
		Title:  "Groceries",
		Amount: decimal.RequireFromString(amount),
		Type:   "expense",
	}
}

func TestCreateTransaction(t *testing.T) {
	f := newLedgerFixture()
	cat := f.categories.add(f.scope.FamilyID, "Food")

	req := txReq("12.345")
	req.CategoryID = cat.ID.String()
	req.Date = "2023-05-14"
	resp, err := f.svc.Create(context.Background(), f.scope, req)
	require.NoError(t, err)

	assert.Equal(t, "12.35", resp.Amount.StringFixed(2))
	assert.Equal(t, "2023-05-14", resp.Date)
	assert.Equal(t, "Food", resp.Category.Name)
	assert.Equal(t, f.scope.UserID.String(), resp.CreatedBy)
}

func TestCreateTransactionDefaultsToToday(t *testing.T) {
	f := newLedgerFixture()

	resp, err := f.svc.Create(context.Background(), f.scope, txReq("5"))
	require.NoError(t, err)
	assert.Equal(t, "2023-05-20", resp.Date)
	assert.Equal(t, "Uncategorized", resp.Category.Name)
	assert.Empty(t, resp.Category.ID)
}

func TestCreateTransactionValidation(t *testing.T) {
	f := newLedgerFixture()

	for name, mutate := range map[string]func(*dto.TransactionRequest){
		"zero amount":     func(r *dto.TransactionRequest) { r.Amount = decimal.Zero },
		"negative amount": func(r *dto.TransactionRequest) { r.Amount = decimal.NewFromInt(-3) },
		"rounds to zero":  func(r *dto.TransactionRequest) { r.Amount = decimal.RequireFromString("0.004") },
		"blank title":     func(r *dto.TransactionRequest) { r.Title = " " },
		"bad type":        func(r *dto.TransactionRequest) { r.Type = "refund" },
		"bad date":        func(r *dto.TransactionRequest) { r.Date = "14/05/2023" },
	} {
		t.Run(name, func(t *testing.T) {
			req := txReq("10")
			mutate(req)
			_, err := f.svc.Create(context.Background(), f.scope, req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Empty(t, f.transactions.rows)
}

func TestCreateTransactionForeignCategory(t *testing.T) {
	f := newLedgerFixture()
	foreign := f.categories.add(uuid.New(), "Theirs")

	req := txReq("10")
	req.CategoryID = foreign.ID.String()
	_, err := f.svc.Create(context.Background(), f.scope, req)
	assert.ErrorIs(t, err, ErrCategoryNotInScope)
}

func TestDeleteTransactionNeverCrossesFamilies(t *testing.T) {
	f := newLedgerFixture()
	mine := f.transactions.add(f.scope.FamilyID, models.TransactionTypeExpense, "10", "2023-05-01", nil)
	theirs := f.transactions.add(uuid.New(), models.TransactionTypeExpense, "10", "2023-05-01", nil)

	assert.ErrorIs(t, f.svc.Delete(context.Background(), f.scope, theirs.ID), ErrNotFound)
	assert.Len(t, f.transactions.rows, 2)

	require.NoError(t, f.svc.Delete(context.Background(), f.scope, mine.ID))
	require.Len(t, f.transactions.rows, 1)
	assert.Equal(t, theirs.ID, f.transactions.rows[0].ID)

	assert.ErrorIs(t, f.svc.Delete(context.Background(), f.scope, mine.ID), ErrNotFound)
}

func TestUpdateTransaction(t *testing.T) {
	f := newLedgerFixture()
	existing := f.transactions.add(f.scope.FamilyID, models.TransactionTypeExpense, "10", "2023-05-01", nil)

	req := txReq("99.99")
	req.Type = "income"
	req.Date = "2023-05-02"
	resp, err := f.svc.Update(context.Background(), f.scope, existing.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "income", resp.Type)
	assert.Equal(t, "2023-05-02", resp.Date)

	got, err := f.svc.Get(context.Background(), f.scope, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "99.99", got.Amount.String())

	_, err = f.svc.Update(context.Background(), models.Scope{FamilyID: uuid.New()}, existing.ID, req)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListTransactions(t *testing.T) {
	f := newLedgerFixture()
	food := f.categories.add(f.scope.FamilyID, "Food")
	f.transactions.add(f.scope.FamilyID, models.TransactionTypeExpense, "10", "2023-05-01", food)
	f.transactions.add(f.scope.FamilyID, models.TransactionTypeIncome, "100", "2023-05-03", nil)
	f.transactions.add(f.scope.FamilyID, models.TransactionTypeExpense, "20", "2023-05-05", nil)
	f.transactions.add(uuid.New(), models.TransactionTypeExpense, "30", "2023-05-04", nil)

	all, err := f.svc.List(context.Background(), f.scope, &dto.TransactionListQuery{Type: "all"})
	require.NoError(t, err)
	require.Len(t, all.Items, 3)
	assert.Equal(t, defaultListLimit, all.Limit)
	assert.Equal(t, "2023-05-05", all.Items[0].Date)
	assert.Equal(t, "2023-05-01", all.Items[2].Date)

	expenses, err := f.svc.List(context.Background(), f.scope, &dto.TransactionListQuery{Type: "expense", From: "2023-05-02"})
	require.NoError(t, err)
	require.Len(t, expenses.Items, 1)
	assert.Equal(t, "20", expenses.Items[0].Amount.String())

	byCat, err := f.svc.List(context.Background(), f.scope, &dto.TransactionListQuery{CategoryID: food.ID.String()})
	require.NoError(t, err)
	require.Len(t, byCat.Items, 1)
	assert.Equal(t, "Food", byCat.Items[0].Category.Name)
}

func TestBuildFilter(t *testing.T) {
	f, err := buildFilter(&dto.TransactionListQuery{Limit: 10000, Offset: 5})
	require.NoError(t, err)
	assert.Equal(t, maxListLimit, f.Limit)
	assert.Equal(t, 5, f.Offset)
	assert.Empty(t, f.Type)

	_, err = buildFilter(&dto.TransactionListQuery{From: "2023-05-10", To: "2023-05-01"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = buildFilter(&dto.TransactionListQuery{Type: "gift"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
