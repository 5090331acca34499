package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"finpal/internal/analytics"
	"finpal/internal/dto"
	"finpal/internal/models"
	"finpal/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type BudgetService struct {
	budgets      BudgetStore
	categories   CategoryStore
	transactions TransactionStore
	logger       *zap.Logger
	now          func() time.Time
}

func NewBudgetService(budgets BudgetStore, categories CategoryStore, transactions TransactionStore, logger *zap.Logger) *BudgetService {
	return &BudgetService{
		budgets:      budgets,
		categories:   categories,
		transactions: transactions,
		logger:       logger,
		now:          time.Now,
	}
}

// Month lists every family category with its limit for the month (zero when
// unset) and what was spent against it.
func (s *BudgetService) Month(ctx context.Context, scope models.Scope, month string) (*dto.BudgetMonthResponse, error) {
	start, err := parseMonth(month, s.now().UTC())
	if err != nil {
		return nil, err
	}

	m, err := loadMonth(ctx, s.budgets, s.categories, s.transactions, scope, start)
	if err != nil {
		return nil, err
	}

	items := make([]dto.BudgetItemResponse, 0, len(m.categories))
	for _, c := range m.categories {
		limit, ok := m.limits[c.ID]
		if !ok {
			limit = decimal.Zero
		}
		items = append(items, dto.BudgetItemResponse{
			Category: toCategoryResponse(c),
			Progress: toProgressResponse(analytics.BudgetProgress(m.spentOn(c.ID), limit)),
		})
	}

	return &dto.BudgetMonthResponse{
		Month: start.Format(monthLayout),
		Items: items,
	}, nil
}

// Save upserts the month's limits in one database transaction. Every category
// is checked against the scope before anything is written.
func (s *BudgetService) Save(ctx context.Context, scope models.Scope, req *dto.SaveBudgetsRequest) (*dto.BudgetMonthResponse, error) {
	start, err := parseMonth(req.Month, s.now().UTC())
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	seen := make(map[uuid.UUID]struct{}, len(req.Limits))
	budgets := make([]*models.BudgetCategory, 0, len(req.Limits))

	for _, l := range req.Limits {
		categoryID, err := uuid.Parse(l.CategoryID)
		if err != nil {
			return nil, invalidf("category_id must be a uuid")
		}
		if l.Limit.IsNegative() {
			return nil, invalidf("limit must not be negative")
		}
		if _, dup := seen[categoryID]; dup {
			return nil, invalidf("category %s listed twice", categoryID)
		}
		seen[categoryID] = struct{}{}

		if _, err := s.categories.GetByID(ctx, scope.FamilyID, categoryID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrCategoryNotInScope
			}
			return nil, fmt.Errorf("get category: %w", err)
		}

		budgets = append(budgets, &models.BudgetCategory{
			ID:          uuid.New(),
			FamilyID:    scope.FamilyID,
			CategoryID:  categoryID,
			Month:       start,
			LimitAmount: l.Limit.Round(2),
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	if err := s.budgets.SaveMonth(ctx, budgets); err != nil {
		return nil, fmt.Errorf("save budgets: %w", err)
	}

	s.logger.Info("Budgets saved",
		zap.String("family_id", scope.FamilyID.String()),
		zap.String("month", start.Format(monthLayout)),
		zap.Int("count", len(budgets)),
	)

	return s.Month(ctx, scope, start.Format(monthLayout))
}

type monthData struct {
	start      time.Time
	categories []*models.Category
	limits     map[uuid.UUID]decimal.Decimal
	spent      map[uuid.UUID]decimal.Decimal
}

func (m *monthData) spentOn(categoryID uuid.UUID) decimal.Decimal {
	if v, ok := m.spent[categoryID]; ok {
		return v
	}
	return decimal.Zero
}

func loadMonth(ctx context.Context, budgets BudgetStore, categories CategoryStore, transactions TransactionStore, scope models.Scope, start time.Time) (*monthData, error) {
	cats, err := categories.ListByFamily(ctx, scope.FamilyID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	rows, err := budgets.ListByMonth(ctx, scope.FamilyID, start)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	limits := make(map[uuid.UUID]decimal.Decimal, len(rows))
	for _, b := range rows {
		limits[b.CategoryID] = b.LimitAmount
	}

	txs, err := transactions.List(ctx, scope.FamilyID, models.TransactionFilter{
		Type: models.TransactionTypeExpense,
		From: start,
		To:   monthEnd(start),
	})
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	return &monthData{
		start:      start,
		categories: cats,
		limits:     limits,
		spent:      analytics.SpentByCategory(txs),
	}, nil
}
