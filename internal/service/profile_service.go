package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"finpal/internal/dto"
	"finpal/internal/models"
	"finpal/internal/notify"
	"finpal/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProfileService struct {
	profiles ProfileStore
	notifier InvitationNotifier
	baseURL  string
	logger   *zap.Logger
	now      func() time.Time
}

func NewProfileService(profiles ProfileStore, notifier InvitationNotifier, baseURL string, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		notifier: notifier,
		baseURL:  baseURL,
		logger:   logger,
		now:      time.Now,
	}
}

// ResolveScope looks up the caller's family membership.
func (s *ProfileService) ResolveScope(ctx context.Context, userID uuid.UUID) (models.Scope, error) {
	profile, err := s.getProfile(ctx, userID)
	if err != nil {
		return models.Scope{}, err
	}
	if !profile.IsActive() {
		return models.Scope{}, ErrUserNotFound
	}
	return profile.Scope(), nil
}

func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error) {
	profile, err := s.getProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := toProfileResponse(profile)
	return &resp, nil
}

func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	firstName, lastName := sanitizeUTF8(req.FirstName), sanitizeUTF8(req.LastName)
	if err := s.profiles.UpdateNames(ctx, userID, firstName, lastName); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return s.GetProfile(ctx, userID)
}

// FamilyMembers lists everyone in the caller's family, pending invitations included.
func (s *ProfileService) FamilyMembers(ctx context.Context, scope models.Scope) (*dto.FamilyResponse, error) {
	profiles, err := s.profiles.ListByFamily(ctx, scope.FamilyID)
	if err != nil {
		return nil, fmt.Errorf("list family members: %w", err)
	}

	members := make([]dto.ProfileResponse, len(profiles))
	for i, p := range profiles {
		members[i] = toProfileResponse(p)
	}

	return &dto.FamilyResponse{
		FamilyID: scope.FamilyID.String(),
		Members:  members,
	}, nil
}

// InviteMember records a pending member and sends the registration link.
func (s *ProfileService) InviteMember(ctx context.Context, scope models.Scope, req *dto.InviteRequest) (*dto.InviteResponse, error) {
	if scope.Role != models.RoleOwner {
		return nil, ErrForbidden
	}

	inviter, err := s.getProfile(ctx, scope.UserID)
	if err != nil {
		return nil, err
	}

	email := normalizeEmail(req.Email)
	if _, err := s.profiles.GetByEmail(ctx, email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup profile: %w", err)
	}

	now := s.now().UTC()
	member := &models.Profile{
		ID:        uuid.New(),
		Email:     email,
		FamilyID:  scope.FamilyID,
		Role:      models.RoleMember,
		Status:    models.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.profiles.Create(ctx, member); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create invitation: %w", err)
	}

	link := s.registrationURL(scope.FamilyID)
	name := inviter.FirstName
	if inviter.LastName != "" {
		name += " " + inviter.LastName
	}
	inv := notify.NewInvitation(email, scope.FamilyID.String(), name, inviter.Email, link)
	if err := s.notifier.SendInvitation(ctx, inv); err != nil {
		s.logger.Error("Failed to send invitation",
			zap.String("email", email),
			zap.String("family_id", scope.FamilyID.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("send invitation: %w", err)
	}

	return &dto.InviteResponse{
		Member:          toProfileResponse(member),
		RegistrationURL: link,
	}, nil
}

// RemoveMember deletes a member or pending invitation from the owner's family.
func (s *ProfileService) RemoveMember(ctx context.Context, scope models.Scope, memberID uuid.UUID) error {
	if scope.Role != models.RoleOwner {
		return ErrForbidden
	}
	if memberID == scope.UserID {
		return invalidf("owners cannot remove themselves")
	}

	if err := s.profiles.DeleteMember(ctx, scope.FamilyID, memberID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("remove member: %w", err)
	}

	s.logger.Info("Family member removed",
		zap.String("family_id", scope.FamilyID.String()),
		zap.String("member_id", memberID.String()),
	)
	return nil
}

func (s *ProfileService) registrationURL(familyID uuid.UUID) string {
	return s.baseURL + "/register?" + url.Values{"family": {familyID.String()}}.Encode()
}

func (s *ProfileService) getProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup profile: %w", err)
	}
	return profile, nil
}
