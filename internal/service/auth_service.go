package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"finpal/internal/dto"
	"finpal/internal/models"
	"finpal/internal/repository"
	"finpal/pkg/auth"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService struct {
	profiles   ProfileStore
	categories CategoryStore
	jwtManager *auth.JWTManager
	logger     *zap.Logger
	now        func() time.Time
}

func NewAuthService(profiles ProfileStore, categories CategoryStore, jwtManager *auth.JWTManager, logger *zap.Logger) *AuthService {
	return &AuthService{
		profiles:   profiles,
		categories: categories,
		jwtManager: jwtManager,
		logger:     logger,
		now:        time.Now,
	}
}

// Register creates an account. Without a family parameter the registrant owns
// a new family; with one they join that family as a member.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	firstName, lastName := sanitizeUTF8(req.FirstName), sanitizeUTF8(req.LastName)
	if email == "" || firstName == "" || lastName == "" {
		return nil, invalidf("email, first name and last name are required")
	}

	existing, err := s.profiles.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup profile: %w", err)
	}
	if existing != nil && existing.IsActive() {
		return nil, ErrUserExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	profile := &models.Profile{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hashedPassword,
		FirstName:    firstName,
		LastName:     lastName,
		Status:       models.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	familyID, err := s.resolveFamily(ctx, req.Family, existing)
	if err != nil {
		return nil, err
	}

	switch {
	case existing != nil:
		// accepting a pending invitation
		profile.ID = existing.ID
		profile.FamilyID = existing.FamilyID
		profile.Role = existing.Role
		profile.CreatedAt = existing.CreatedAt
		if err := s.profiles.Activate(ctx, profile); err != nil {
			return nil, fmt.Errorf("activate invitation: %w", err)
		}
	case familyID != uuid.Nil:
		profile.FamilyID = familyID
		profile.Role = models.RoleMember
		if err := s.createProfile(ctx, profile); err != nil {
			return nil, err
		}
	default:
		profile.FamilyID = profile.ID
		profile.Role = models.RoleOwner
		if err := s.createProfile(ctx, profile); err != nil {
			return nil, err
		}
		if err := s.categories.CreateBatch(ctx, DefaultCategories(profile.FamilyID, profile.ID, now)); err != nil {
			s.logger.Warn("Failed to seed default categories",
				zap.String("family_id", profile.FamilyID.String()),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("User registered",
		zap.String("user_id", profile.ID.String()),
		zap.String("family_id", profile.FamilyID.String()),
		zap.String("role", string(profile.Role)),
	)

	return s.issueTokens(profile, true)
}

// resolveFamily validates the invitation parameter. It returns uuid.Nil when
// the registrant should found a new family.
func (s *AuthService) resolveFamily(ctx context.Context, family string, pending *models.Profile) (uuid.UUID, error) {
	if family == "" {
		if pending != nil {
			return pending.FamilyID, nil
		}
		return uuid.Nil, nil
	}

	familyID, err := uuid.Parse(family)
	if err != nil {
		return uuid.Nil, ErrInvalidInvite
	}

	owner, err := s.profiles.GetByID(ctx, familyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return uuid.Nil, ErrInvalidInvite
		}
		return uuid.Nil, fmt.Errorf("lookup family owner: %w", err)
	}
	if !owner.IsOwner() || owner.FamilyID != familyID {
		return uuid.Nil, ErrInvalidInvite
	}
	if pending != nil && pending.FamilyID != familyID {
		return uuid.Nil, ErrInvalidInvite
	}

	return familyID, nil
}

func (s *AuthService) createProfile(ctx context.Context, profile *models.Profile) error {
	if err := s.profiles.Create(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrUserExists
		}
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	profile, err := s.profiles.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup profile: %w", err)
	}

	if !profile.IsActive() || !auth.CheckPasswordHash(req.Password, profile.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	remember := req.RememberMe == nil || *req.RememberMe
	return s.issueTokens(profile, remember)
}

func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup profile: %w", err)
	}
	if !profile.IsActive() {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(profile, true)
}

func (s *AuthService) issueTokens(profile *models.Profile, withRefresh bool) (*dto.AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateToken(profile.ID.String(), profile.Email)
	if err != nil {
		return nil, err
	}

	resp := &dto.AuthResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.jwtManager.GetTokenDuration().Seconds()),
		User:        toProfileResponse(profile),
	}

	if withRefresh {
		resp.RefreshToken, err = s.jwtManager.GenerateRefreshToken(profile.ID.String())
		if err != nil {
			return nil, err
		}
	}

	return resp, nil
}
