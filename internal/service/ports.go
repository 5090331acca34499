package service

import (
	"context"
	"time"

	"finpal/internal/models"
	"finpal/internal/notify"

	"github.com/google/uuid"
)

// The repository package provides the Postgres implementations of these stores.

type ProfileStore interface {
	Create(ctx context.Context, p *models.Profile) error
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	ListByFamily(ctx context.Context, familyID uuid.UUID) ([]*models.Profile, error)
	Activate(ctx context.Context, p *models.Profile) error
	UpdateNames(ctx context.Context, id uuid.UUID, firstName, lastName string) error
	DeleteMember(ctx context.Context, familyID, id uuid.UUID) error
}

type CategoryStore interface {
	Create(ctx context.Context, c *models.Category) error
	CreateBatch(ctx context.Context, categories []*models.Category) error
	GetByID(ctx context.Context, familyID, id uuid.UUID) (*models.Category, error)
	ListByFamily(ctx context.Context, familyID uuid.UUID) ([]*models.Category, error)
	Update(ctx context.Context, c *models.Category) error
	Delete(ctx context.Context, familyID, id uuid.UUID) error
}

type TransactionStore interface {
	Create(ctx context.Context, tx *models.Transaction) error
	CreateBatch(ctx context.Context, transactions []*models.Transaction) error
	GetByID(ctx context.Context, familyID, id uuid.UUID) (*models.Transaction, error)
	List(ctx context.Context, familyID uuid.UUID, filter models.TransactionFilter) ([]*models.Transaction, error)
	Update(ctx context.Context, tx *models.Transaction) error
	Delete(ctx context.Context, familyID, id uuid.UUID) error
}

type BudgetStore interface {
	ListByMonth(ctx context.Context, familyID uuid.UUID, month time.Time) ([]*models.BudgetCategory, error)
	SaveMonth(ctx context.Context, budgets []*models.BudgetCategory) error
}

type InvitationNotifier interface {
	SendInvitation(ctx context.Context, inv notify.Invitation) error
}
