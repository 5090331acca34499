package handlers

import (
	"context"

	"finpal/internal/dto"
	"finpal/internal/models"

	"github.com/google/uuid"
)

// Implemented by the matching types in the service package.

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error)
}

type ProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	FamilyMembers(ctx context.Context, scope models.Scope) (*dto.FamilyResponse, error)
	InviteMember(ctx context.Context, scope models.Scope, req *dto.InviteRequest) (*dto.InviteResponse, error)
	RemoveMember(ctx context.Context, scope models.Scope, memberID uuid.UUID) error
}

type CategoryService interface {
	List(ctx context.Context, scope models.Scope) ([]dto.CategoryResponse, error)
	Create(ctx context.Context, scope models.Scope, req *dto.CategoryRequest) (*dto.CategoryResponse, error)
	Update(ctx context.Context, scope models.Scope, id uuid.UUID, req *dto.CategoryUpdateRequest) (*dto.CategoryResponse, error)
	Delete(ctx context.Context, scope models.Scope, id uuid.UUID) error
}

type TransactionService interface {
	Create(ctx context.Context, scope models.Scope, req *dto.TransactionRequest) (*dto.TransactionResponse, error)
	Get(ctx context.Context, scope models.Scope, id uuid.UUID) (*dto.TransactionResponse, error)
	Update(ctx context.Context, scope models.Scope, id uuid.UUID, req *dto.TransactionRequest) (*dto.TransactionResponse, error)
	Delete(ctx context.Context, scope models.Scope, id uuid.UUID) error
	List(ctx context.Context, scope models.Scope, q *dto.TransactionListQuery) (*dto.TransactionListResponse, error)
}

type BudgetService interface {
	Month(ctx context.Context, scope models.Scope, month string) (*dto.BudgetMonthResponse, error)
	Save(ctx context.Context, scope models.Scope, req *dto.SaveBudgetsRequest) (*dto.BudgetMonthResponse, error)
}

type AnalyticsService interface {
	Dashboard(ctx context.Context, scope models.Scope, month string) (*dto.DashboardResponse, error)
	Summary(ctx context.Context, scope models.Scope, from, to string) (*dto.SummaryResponse, error)
	BudgetOverview(ctx context.Context, scope models.Scope, month string) (*dto.BudgetMonthResponse, error)
}
