package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"finpal/internal/dto"
	"finpal/internal/models"
	"finpal/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

var minAmount = decimal.New(1, -2)

type TransactionService struct {
	transactions TransactionStore
	categories   CategoryStore
	logger       *zap.Logger
	now          func() time.Time
}

func NewTransactionService(transactions TransactionStore, categories CategoryStore, logger *zap.Logger) *TransactionService {
	return &TransactionService{
		transactions: transactions,
		categories:   categories,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *TransactionService) Create(ctx context.Context, scope models.Scope, req *dto.TransactionRequest) (*dto.TransactionResponse, error) {
	now := s.now().UTC()
	tx := &models.Transaction{
		ID:        uuid.New(),
		FamilyID:  scope.FamilyID,
		UserID:    scope.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.apply(ctx, scope, tx, req); err != nil {
		return nil, err
	}

	if err := s.transactions.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	s.logger.Info("Transaction created",
		zap.String("family_id", scope.FamilyID.String()),
		zap.String("transaction_id", tx.ID.String()),
		zap.String("type", string(tx.Type)),
	)

	resp := toTransactionResponse(tx)
	return &resp, nil
}

func (s *TransactionService) Get(ctx context.Context, scope models.Scope, id uuid.UUID) (*dto.TransactionResponse, error) {
	tx, err := s.get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	resp := toTransactionResponse(tx)
	return &resp, nil
}

func (s *TransactionService) Update(ctx context.Context, scope models.Scope, id uuid.UUID, req *dto.TransactionRequest) (*dto.TransactionResponse, error) {
	tx, err := s.get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, scope, tx, req); err != nil {
		return nil, err
	}
	tx.UpdatedAt = s.now().UTC()

	if err := s.transactions.Update(ctx, tx); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update transaction: %w", err)
	}

	resp := toTransactionResponse(tx)
	return &resp, nil
}

// Delete removes exactly one transaction of the caller's family.
func (s *TransactionService) Delete(ctx context.Context, scope models.Scope, id uuid.UUID) error {
	if err := s.transactions.Delete(ctx, scope.FamilyID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete transaction: %w", err)
	}

	s.logger.Info("Transaction deleted",
		zap.String("family_id", scope.FamilyID.String()),
		zap.String("transaction_id", id.String()),
	)
	return nil
}

func (s *TransactionService) List(ctx context.Context, scope models.Scope, q *dto.TransactionListQuery) (*dto.TransactionListResponse, error) {
	filter, err := buildFilter(q)
	if err != nil {
		return nil, err
	}

	txs, err := s.transactions.List(ctx, scope.FamilyID, filter)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	return &dto.TransactionListResponse{
		Items:  toTransactionResponses(txs),
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}

func buildFilter(q *dto.TransactionListQuery) (models.TransactionFilter, error) {
	filter := models.TransactionFilter{
		Limit:  q.Limit,
		Offset: q.Offset,
	}

	switch {
	case filter.Limit <= 0:
		filter.Limit = defaultListLimit
	case filter.Limit > maxListLimit:
		filter.Limit = maxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	if q.Type != "" && q.Type != "all" {
		filter.Type = models.TransactionType(q.Type)
		if !filter.Type.Valid() {
			return filter, invalidf("unknown transaction type %q", q.Type)
		}
	}

	if q.From != "" {
		from, err := time.Parse(dateLayout, q.From)
		if err != nil {
			return filter, invalidf("from must be YYYY-MM-DD")
		}
		filter.From = from
	}
	if q.To != "" {
		to, err := time.Parse(dateLayout, q.To)
		if err != nil {
			return filter, invalidf("to must be YYYY-MM-DD")
		}
		filter.To = to
	}
	if !filter.From.IsZero() && !filter.To.IsZero() && filter.To.Before(filter.From) {
		return filter, invalidf("to must not be before from")
	}

	if q.CategoryID != "" {
		id, err := uuid.Parse(q.CategoryID)
		if err != nil {
			return filter, invalidf("category_id must be a uuid")
		}
		filter.CategoryID = &id
	}

	return filter, nil
}

// apply validates req and copies it onto tx, resolving the category within scope.
func (s *TransactionService) apply(ctx context.Context, scope models.Scope, tx *models.Transaction, req *dto.TransactionRequest) error {
	title := sanitizeUTF8(req.Title)
	if title == "" {
		return invalidf("title is required")
	}

	amount := req.Amount.Round(2)
	if amount.LessThan(minAmount) {
		return invalidf("amount must be at least 0.01")
	}

	typ := models.TransactionType(req.Type)
	if !typ.Valid() {
		return invalidf("type must be one of: income expense transfer")
	}

	date, err := parseDate(req.Date, s.now().UTC())
	if err != nil {
		return err
	}

	var category *models.Category
	if req.CategoryID != "" {
		id, err := uuid.Parse(req.CategoryID)
		if err != nil {
			return invalidf("category_id must be a uuid")
		}
		category, err = s.categories.GetByID(ctx, scope.FamilyID, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrCategoryNotInScope
			}
			return fmt.Errorf("get category: %w", err)
		}
	}

	tx.Title = title
	tx.Amount = amount
	tx.Type = typ
	tx.Date = date
	tx.Description = sanitizeUTF8(req.Description)
	tx.Category = category
	tx.CategoryID = nil
	if category != nil {
		id := category.ID
		tx.CategoryID = &id
	}
	return nil
}

func (s *TransactionService) get(ctx context.Context, scope models.Scope, id uuid.UUID) (*models.Transaction, error) {
	tx, err := s.transactions.GetByID(ctx, scope.FamilyID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return tx, nil
}
