package repository

import (
	"context"
	"strings"

	"finpal/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var profileColumns = []string{
	"id", "email", "password_hash", "first_name", "last_name", "family_id", "role", "status", "created_at", "updated_at",
}

type ProfileRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewProfileRepository(db *pgxpool.Pool, logger *zap.Logger) *ProfileRepository {
	return &ProfileRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ProfileRepository) Create(ctx context.Context, p *models.Profile) error {
	query := squirrel.Insert("profiles").
		Columns(profileColumns...).
		Values(p.ID, strings.ToLower(p.Email), p.PasswordHash, p.FirstName, p.LastName, p.FamilyID, p.Role, p.Status, p.CreatedAt, p.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return mapError(err)
}

func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	return r.getOne(ctx, squirrel.Eq{"email": strings.ToLower(email)})
}

func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *ProfileRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.Profile, error) {
	query := squirrel.Select(profileColumns...).
		From("profiles").
		Where(where).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var p models.Profile
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&p.ID, &p.Email, &p.PasswordHash, &p.FirstName, &p.LastName, &p.FamilyID, &p.Role, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return &p, nil
}

// ListByFamily returns every profile in the family, owner first.
func (r *ProfileRepository) ListByFamily(ctx context.Context, familyID uuid.UUID) ([]*models.Profile, error) {
	sql, args, err := listFamilyQuery(familyID).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*models.Profile
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(
			&p.ID, &p.Email, &p.PasswordHash, &p.FirstName, &p.LastName, &p.FamilyID, &p.Role, &p.Status, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		profiles = append(profiles, &p)
	}

	return profiles, rows.Err()
}

func listFamilyQuery(familyID uuid.UUID) squirrel.SelectBuilder {
	return squirrel.Select(profileColumns...).
		From("profiles").
		Where(squirrel.Eq{"family_id": familyID}).
		OrderBy("(role = 'owner') DESC", "email ASC").
		PlaceholderFormat(squirrel.Dollar)
}

// Activate completes a pending invitation with the registrant's credentials.
func (r *ProfileRepository) Activate(ctx context.Context, p *models.Profile) error {
	query := squirrel.Update("profiles").
		Set("password_hash", p.PasswordHash).
		Set("first_name", p.FirstName).
		Set("last_name", p.LastName).
		Set("status", models.StatusActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": p.ID, "status": models.StatusPending}).
		PlaceholderFormat(squirrel.Dollar)

	return execOne(ctx, r.db, query)
}

func (r *ProfileRepository) UpdateNames(ctx context.Context, id uuid.UUID, firstName, lastName string) error {
	query := squirrel.Update("profiles").
		Set("first_name", firstName).
		Set("last_name", lastName).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	return execOne(ctx, r.db, query)
}

// DeleteMember removes a non-owner profile from the given family only.
func (r *ProfileRepository) DeleteMember(ctx context.Context, familyID, id uuid.UUID) error {
	query := squirrel.Delete("profiles").
		Where(squirrel.Eq{"id": id, "family_id": familyID, "role": models.RoleMember}).
		PlaceholderFormat(squirrel.Dollar)

	return execOne(ctx, r.db, query)
}
