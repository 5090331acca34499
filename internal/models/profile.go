package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleOwner  Role = "owner"
	RoleMember Role = "member"
)

type ProfileStatus string

const (
	StatusPending ProfileStatus = "pending"
	StatusActive  ProfileStatus = "active"
)

// Profile is both the login identity and the family membership record.
// An owner's ID doubles as the FamilyID of everyone in the family.
type Profile struct {
	ID           uuid.UUID     `db:"id"`
	Email        string        `db:"email"`
	PasswordHash string        `db:"password_hash"`
	FirstName    string        `db:"first_name"`
	LastName     string        `db:"last_name"`
	FamilyID     uuid.UUID     `db:"family_id"`
	Role         Role          `db:"role"`
	Status       ProfileStatus `db:"status"`
	CreatedAt    time.Time     `db:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at"`
}

func (p *Profile) IsOwner() bool {
	return p.Role == RoleOwner
}

func (p *Profile) IsActive() bool {
	return p.Status == StatusActive
}

// Scope is the tenant boundary every data operation is filtered by.
type Scope struct {
	UserID   uuid.UUID
	FamilyID uuid.UUID
	Role     Role
}

func (p *Profile) Scope() Scope {
	return Scope{UserID: p.ID, FamilyID: p.FamilyID, Role: p.Role}
}
