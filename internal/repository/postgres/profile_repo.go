package postgres

import (
	"context"

	"github.com/and161185/medtrack/internal/errs"
	"github.com/and161185/medtrack/internal/model"
	"github.com/gofrs/uuid/v5"
)

// ProfileRepo implements ProfileRepository using PostgreSQL.
type ProfileRepo struct{ db *DB }

// NewProfileRepo constructs a profile repository.
func NewProfileRepo(db *DB) *ProfileRepo { return &ProfileRepo{db: db} }

// Create inserts a profile row.
func (r *ProfileRepo) Create(ctx context.Context, p *model.Profile) error {
	const q = `
INSERT INTO profiles (id, user_id, name)
VALUES ($1, $2, $3)
RETURNING created_at`
	err := r.db.Pool.QueryRow(ctx, q, p.ID, p.UserID, p.Name).Scan(&p.CreatedAt)
	if isForeignKeyViolation(err) {
		return errs.ErrNotFound
	}
	return err
}

// Get selects a profile by ID.
func (r *ProfileRepo) Get(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	const q = `SELECT id, user_id, name, created_at FROM profiles WHERE id=$1`
	var p model.Profile
	if err := r.db.Pool.QueryRow(ctx, q, id).Scan(&p.ID, &p.UserID, &p.Name, &p.CreatedAt); err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// ListByUser returns profiles of a user, oldest first.
func (r *ProfileRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Profile, error) {
	const q = `
SELECT id, user_id, name, created_at
FROM profiles
WHERE user_id=$1
ORDER BY created_at ASC, id ASC`
	rows, err := r.db.Pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Profile{}
	for rows.Next() {
		var p model.Profile
		if err = rows.Scan(&p.ID, &p.UserID, &p.Name, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Delete removes a profile; medications go with it (ON DELETE CASCADE).
func (r *ProfileRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM profiles WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// OwnerOf returns profiles.user_id.
func (r *ProfileRepo) OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var owner uuid.UUID
	if err := r.db.Pool.QueryRow(ctx, `SELECT user_id FROM profiles WHERE id=$1`, id).Scan(&owner); err != nil {
		return uuid.Nil, notFound(err)
	}
	return owner, nil
}
