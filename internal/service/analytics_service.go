package service

import (
	"context"
	"fmt"
	"time"

	"finpal/internal/analytics"
	"finpal/internal/dto"
	"finpal/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	recentTransactions = 5
	maxSummaryDays     = 366
)

type AnalyticsService struct {
	transactions TransactionStore
	categories   CategoryStore
	budgets      BudgetStore
	logger       *zap.Logger
	now          func() time.Time
}

func NewAnalyticsService(transactions TransactionStore, categories CategoryStore, budgets BudgetStore, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{
		transactions: transactions,
		categories:   categories,
		budgets:      budgets,
		logger:       logger,
		now:          time.Now,
	}
}

// Dashboard combines all-time totals, the month's overall budget progress and
// the most recent transactions.
func (s *AnalyticsService) Dashboard(ctx context.Context, scope models.Scope, month string) (*dto.DashboardResponse, error) {
	start, err := parseMonth(month, s.now().UTC())
	if err != nil {
		return nil, err
	}

	all, err := s.transactions.List(ctx, scope.FamilyID, models.TransactionFilter{})
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	recent, err := s.transactions.List(ctx, scope.FamilyID, models.TransactionFilter{Limit: recentTransactions})
	if err != nil {
		return nil, fmt.Errorf("list recent transactions: %w", err)
	}

	m, err := loadMonth(ctx, s.budgets, s.categories, s.transactions, scope, start)
	if err != nil {
		return nil, err
	}

	spent, limit := decimal.Zero, decimal.Zero
	for id, l := range m.limits {
		limit = limit.Add(l)
		spent = spent.Add(m.spentOn(id))
	}

	return &dto.DashboardResponse{
		Totals:             toTotalsResponse(analytics.ComputeTotals(all)),
		Month:              start.Format(monthLayout),
		MonthlyBudget:      toProgressResponse(analytics.BudgetProgress(spent, limit)),
		RecentTransactions: toTransactionResponses(recent),
	}, nil
}

// Summary reports totals, category breakdowns and a daily series for [from, to].
// With neither bound it covers the current month. A single bound extends to
// the edge of its own month.
func (s *AnalyticsService) Summary(ctx context.Context, scope models.Scope, from, to string) (*dto.SummaryResponse, error) {
	start := models.MonthStart(s.now().UTC())
	end := monthEnd(start)

	if from != "" {
		t, err := time.Parse(dateLayout, from)
		if err != nil {
			return nil, invalidf("from must be YYYY-MM-DD")
		}
		start = t
		end = monthEnd(models.MonthStart(t))
	}
	if to != "" {
		t, err := time.Parse(dateLayout, to)
		if err != nil {
			return nil, invalidf("to must be YYYY-MM-DD")
		}
		end = t
		if from == "" {
			start = models.MonthStart(t)
		}
	}
	if end.Before(start) {
		return nil, invalidf("to must not be before from")
	}
	if end.Sub(start) >= maxSummaryDays*24*time.Hour {
		return nil, invalidf("range must not exceed %d days", maxSummaryDays)
	}

	txs, err := s.transactions.List(ctx, scope.FamilyID, models.TransactionFilter{From: start, To: end})
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	series := analytics.DailySeries(txs, start, end)
	daily := make([]dto.DailyPointResponse, len(series))
	for i, p := range series {
		daily[i] = dto.DailyPointResponse{
			Date:    p.Date.Format(dateLayout),
			Income:  p.Income,
			Expense: p.Expense,
		}
	}

	return &dto.SummaryResponse{
		From:              start.Format(dateLayout),
		To:                end.Format(dateLayout),
		Totals:            toTotalsResponse(analytics.ComputeTotals(txs)),
		ExpenseByCategory: toSliceResponses(analytics.ByCategory(txs, models.TransactionTypeExpense)),
		IncomeByCategory:  toSliceResponses(analytics.ByCategory(txs, models.TransactionTypeIncome)),
		Daily:             daily,
	}, nil
}

// BudgetOverview reports progress for each category that has a limit this month.
func (s *AnalyticsService) BudgetOverview(ctx context.Context, scope models.Scope, month string) (*dto.BudgetMonthResponse, error) {
	start, err := parseMonth(month, s.now().UTC())
	if err != nil {
		return nil, err
	}

	m, err := loadMonth(ctx, s.budgets, s.categories, s.transactions, scope, start)
	if err != nil {
		return nil, err
	}

	items := make([]dto.BudgetItemResponse, 0, len(m.limits))
	for _, c := range m.categories {
		limit, ok := m.limits[c.ID]
		if !ok {
			continue
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
