package repository

import (
	"context"
	"fmt"

	"finpal/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var transactionColumns = []string{
	"id", "family_id", "user_id", "category_id", "title", "amount", "type", "date", "description", "created_at", "updated_at",
}

// amount is read back as text so no precision is lost on the way into decimal.Decimal.
var transactionSelect = []string{
	"t.id", "t.family_id", "t.user_id", "t.category_id", "t.title", "t.amount::text", "t.type", "t.date", "t.description",
	"t.created_at", "t.updated_at", "c.name", "c.color", "c.icon",
}

type TransactionRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTransactionRepository(db *pgxpool.Pool, logger *zap.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	return r.CreateBatch(ctx, []*models.Transaction{tx})
}

func (r *TransactionRepository) CreateBatch(ctx context.Context, transactions []*models.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	builder := squirrel.Insert("transactions").
		Columns(transactionColumns...).
		PlaceholderFormat(squirrel.Dollar)

	for _, tx := range transactions {
		builder = builder.Values(tx.ID, tx.FamilyID, tx.UserID, tx.CategoryID, tx.Title, tx.Amount, tx.Type, tx.Date, tx.Description, tx.CreatedAt, tx.UpdatedAt)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return mapError(err)
}

func (r *TransactionRepository) GetByID(ctx context.Context, familyID, id uuid.UUID) (*models.Transaction, error) {
	query := squirrel.Select(transactionSelect...).
		From("transactions t").
		LeftJoin("categories c ON c.id = t.category_id AND c.family_id = t.family_id").
		Where(squirrel.Eq{"t.id": id, "t.family_id": familyID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	tx, err := scanTransaction(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, mapError(err)
	}
	return tx, nil
}

func (r *TransactionRepository) List(ctx context.Context, familyID uuid.UUID, filter models.TransactionFilter) ([]*models.Transaction, error) {
	sql, args, err := listTransactionsQuery(familyID, filter).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*models.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	return transactions, rows.Err()
}

func listTransactionsQuery(familyID uuid.UUID, filter models.TransactionFilter) squirrel.SelectBuilder {
	query := squirrel.Select(transactionSelect...).
		From("transactions t").
		LeftJoin("categories c ON c.id = t.category_id AND c.family_id = t.family_id").
		Where(squirrel.Eq{"t.family_id": familyID}).
		OrderBy("t.date DESC", "t.created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.Type != "" {
		query = query.Where(squirrel.Eq{"t.type": filter.Type})
	}
	if !filter.From.IsZero() {
		query = query.Where(squirrel.GtOrEq{"t.date": filter.From})
	}
	if !filter.To.IsZero() {
		query = query.Where(squirrel.LtOrEq{"t.date": filter.To})
	}
	if filter.CategoryID != nil {
		query = query.Where(squirrel.Eq{"t.category_id": *filter.CategoryID})
	}
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	return query
}

func (r *TransactionRepository) Update(ctx context.Context, tx *models.Transaction) error {
	query := squirrel.Update("transactions").
		Set("category_id", tx.CategoryID).
		Set("title", tx.Title).
		Set("amount", tx.Amount).
		Set("type", tx.Type).
		Set("date", tx.Date).
		Set("description", tx.Description).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": tx.ID, "family_id": tx.FamilyID}).
		PlaceholderFormat(squirrel.Dollar)

	return execOne(ctx, r.db, query)
}

// Delete removes the single row matching both id and family; ErrNotFound otherwise.
func (r *TransactionRepository) Delete(ctx context.Context, familyID, id uuid.UUID) error {
	return execOne(ctx, r.db, deleteTransactionQuery(familyID, id))
}

func deleteTransactionQuery(familyID, id uuid.UUID) squirrel.DeleteBuilder {
	return squirrel.Delete("transactions").
		Where(squirrel.Eq{"id": id, "family_id": familyID}).
		PlaceholderFormat(squirrel.Dollar)
}

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var (
		tx                         models.Transaction
		amount                     string
		catName, catColor, catIcon *string
	)
	if err := row.Scan(
		&tx.ID, &tx.FamilyID, &tx.UserID, &tx.CategoryID, &tx.Title, &amount, &tx.Type, &tx.Date, &tx.Description,
		&tx.CreatedAt, &tx.UpdatedAt, &catName, &catColor, &catIcon,
	); err != nil {
		return nil, err
	}

	var err error
	tx.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("parse amount %q: %w", amount, err)
	}

	if tx.CategoryID != nil && catName != nil {
		tx.Category = &models.Category{
			ID:       *tx.CategoryID,
			FamilyID: tx.FamilyID,
			Name:     *catName,
			Color:    deref(catColor),
			Icon:     deref(catIcon),
		}
	}

	return &tx, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
