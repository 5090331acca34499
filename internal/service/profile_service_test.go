package service

import (
	"context"
	"testing"

	"finpal/internal/dto"
	"finpal/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type familyFixture struct {
	svc      *ProfileService
	profiles *memProfiles
	notifier *recordingNotifier
	owner    *models.Profile
	member   *models.Profile
}

func newFamilyFixture(t *testing.T) *familyFixture {
	t.Helper()
	f := &familyFixture{
		profiles: newMemProfiles(),
		notifier: &recordingNotifier{},
	}
	f.svc = NewProfileService(f.profiles, f.notifier, "https://finpal.test", zap.NewNop())

	ownerID := uuid.New()
	f.owner = &models.Profile{
		ID: ownerID, Email: "owner@example.com", FirstName: "Ann", LastName: "Lee",
		FamilyID: ownerID, Role: models.RoleOwner, Status: models.StatusActive,
	}
	f.member = &models.Profile{
		ID: uuid.New(), Email: "kid@example.com", FirstName: "Bo",
		FamilyID: ownerID, Role: models.RoleMember, Status: models.StatusActive,
	}
	require.NoError(t, f.profiles.Create(context.Background(), f.owner))
	require.NoError(t, f.profiles.Create(context.Background(), f.member))
	return f
}

func TestResolveScope(t *testing.T) {
	f := newFamilyFixture(t)

	scope, err := f.svc.ResolveScope(context.Background(), f.member.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Scope{UserID: f.member.ID, FamilyID: f.owner.ID, Role: models.RoleMember}, scope)

	_, err = f.svc.ResolveScope(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateProfile(t *testing.T) {
	f := newFamilyFixture(t)

	resp, err := f.svc.UpdateProfile(context.Background(), f.member.ID, &dto.UpdateProfileRequest{FirstName: " Bob ", LastName: "Lee"})
	require.NoError(t, err)
	assert.Equal(t, "Bob", resp.FirstName)
	assert.Equal(t, "Lee", resp.LastName)

	_, err = f.svc.UpdateProfile(context.Background(), uuid.New(), &dto.UpdateProfileRequest{FirstName: "x", LastName: "y"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestFamilyMembersOwnerFirst(t *testing.T) {
	f := newFamilyFixture(t)
	// another family's profile must not leak in
	otherID := uuid.New()
	require.NoError(t, f.profiles.Create(context.Background(), &models.Profile{
		ID: otherID, Email: "aaa@example.com", FamilyID: otherID, Role: models.RoleOwner, Status: models.StatusActive,
	}))

	resp, err := f.svc.FamilyMembers(context.Background(), f.owner.Scope())
	require.NoError(t, err)
	require.Len(t, resp.Members, 2)
	assert.Equal(t, f.owner.ID.String(), resp.FamilyID)
	assert.Equal(t, "owner@example.com", resp.Members[0].Email)
	assert.Equal(t, "kid@example.com", resp.Members[1].Email)
}

func TestInviteMember(t *testing.T) {
	f := newFamilyFixture(t)

	resp, err := f.svc.InviteMember(context.Background(), f.owner.Scope(), &dto.InviteRequest{Email: "New@Example.com"})
	require.NoError(t, err)

	wantURL := "https://finpal.test/register?family=" + f.owner.ID.String()
	assert.Equal(t, wantURL, resp.RegistrationURL)
	assert.Equal(t, "new@example.com", resp.Member.Email)
	assert.Equal(t, string(models.StatusPending), resp.Member.Status)
	assert.Equal(t, string(models.RoleMember), resp.Member.Role)

	require.Len(t, f.notifier.sent, 1)
	inv := f.notifier.sent[0]
	assert.Equal(t, "new@example.com", inv.Email)
	assert.Equal(t, wantURL, inv.RegistrationURL)
	assert.Equal(t, "Ann Lee", inv.InviterName)

	_, err = f.svc.InviteMember(context.Background(), f.owner.Scope(), &dto.InviteRequest{Email: "new@example.com"})
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestInviteMemberRules(t *testing.T) {
	f := newFamilyFixture(t)

	_, err := f.svc.InviteMember(context.Background(), f.member.Scope(), &dto.InviteRequest{Email: "x@example.com"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.InviteMember(context.Background(), f.owner.Scope(), &dto.InviteRequest{Email: "kid@example.com"})
	assert.ErrorIs(t, err, ErrUserExists)
	assert.Empty(t, f.notifier.sent)
}

func TestInviteMemberNotifierFailureKeepsRow(t *testing.T) {
	f := newFamilyFixture(t)
	f.notifier.err = errBoom

	_, err := f.svc.InviteMember(context.Background(), f.owner.Scope(), &dto.InviteRequest{Email: "x@example.com"})
	assert.ErrorIs(t, err, errBoom)

	p, err := f.profiles.GetByEmail(context.Background(), "x@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, p.Status)
}

func TestRemoveMember(t *testing.T) {
	f := newFamilyFixture(t)

	assert.ErrorIs(t, f.svc.RemoveMember(context.Background(), f.member.Scope(), f.owner.ID), ErrForbidden)
	assert.ErrorIs(t, f.svc.RemoveMember(context.Background(), f.owner.Scope(), f.owner.ID), ErrInvalidInput)

	otherID := uuid.New()
	require.NoError(t, f.profiles.Create(context.Background(), &models.Profile{
		ID: uuid.New(), Email: "stranger@example.com", FamilyID: otherID, Role: models.RoleMember, Status: models.StatusActive,
	}))
	stranger, err := f.profiles.GetByEmail(context.Background(), "stranger@example.com")
	require.NoError(t, err)
	assert.ErrorIs(t, f.svc.RemoveMember(context.Background(), f.owner.Scope(), stranger.ID), ErrNotFound)

	require.NoError(t, f.svc.RemoveMember(context.Background(), f.owner.Scope(), f.member.ID))
	_, err = f.profiles.GetByID(context.Background(), f.member.ID)
	assert.Error(t, err)
}
