package repository

import (
	"context"
	"fmt"
	"time"

	"finpal/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type BudgetRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewBudgetRepository(db *pgxpool.Pool, logger *zap.Logger) *BudgetRepository {
	return &BudgetRepository{
		db:     db,
		logger: logger,
	}
}

func (r *BudgetRepository) ListByMonth(ctx context.Context, familyID uuid.UUID, month time.Time) ([]*models.BudgetCategory, error) {
	query := squirrel.Select("id", "family_id", "category_id", "month", "limit_amount::text", "created_at", "updated_at").
		From("budget_categories").
		Where(squirrel.Eq{"family_id": familyID, "month": models.MonthStart(month)}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []*models.BudgetCategory
	for rows.Next() {
		var (
			b     models.BudgetCategory
			limit string
		)
		if err := rows.Scan(&b.ID, &b.FamilyID, &b.CategoryID, &b.Month, &limit, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		if b.LimitAmount, err = decimal.NewFromString(limit); err != nil {
			return nil, fmt.Errorf("parse limit %q: %w", limit, err)
		}
		budgets = append(budgets, &b)
	}

	return budgets, rows.Err()
}

// SaveMonth applies all limits for a month atomically. A zero limit clears the row.
func (r *BudgetRepository) SaveMonth(ctx context.Context, budgets []*models.BudgetCategory) error {
	if len(budgets) == 0 {
		return nil
	}

	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		for _, b := range budgets {
			query := saveBudgetQuery(b)
			sql, args, err := query.ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, sql, args...); err != nil {
				return fmt.Errorf("save budget for category %s: %w", b.CategoryID, mapError(err))
			}
		}
		return nil
	})
}

func saveBudgetQuery(b *models.BudgetCategory) squirrel.Sqlizer {
	month := models.MonthStart(b.Month)
	if b.LimitAmount.IsZero() {
		return squirrel.Delete("budget_categories").
			Where(squirrel.Eq{"family_id": b.FamilyID, "category_id": b.CategoryID, "month": month}).
			PlaceholderFormat(squirrel.Dollar)
	}

	return squirrel.Insert("budget_categories").
		Columns("id", "family_id", "category_id", "month", "limit_amount", "created_at", "updated_at").
		Values(b.ID, b.FamilyID, b.CategoryID, month, b.LimitAmount, b.CreatedAt, b.UpdatedAt).
		Suffix("ON CONFLICT (family_id, category_id, month) DO UPDATE SET limit_amount = EXCLUDED.limit_amount, updated_at = NOW()").
		PlaceholderFormat(squirrel.Dollar)
}
