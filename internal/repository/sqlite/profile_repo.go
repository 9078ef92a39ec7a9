package sqlite

import (
	"context"
	"time"

	"github.com/and161185/medtrack/internal/errs"
	"github.com/and161185/medtrack/internal/model"
	"github.com/gofrs/uuid/v5"
)

// ProfileRepo implements ProfileRepository on SQLite.
type ProfileRepo struct{ db *DB }

// NewProfileRepo constructs a profile repository.
func NewProfileRepo(db *DB) *ProfileRepo { return &ProfileRepo{db: db} }

// Create inserts a profile row.
func (r *ProfileRepo) Create(ctx context.Context, p *model.Profile) error {
	now := time.Now().UTC()
	_, err := r.db.SQL.ExecContext(ctx,
		`INSERT INTO profiles (id, user_id, name, created_at) VALUES (?, ?, ?, ?)`,
		p.ID, p.UserID, p.Name, toUnix(now))
	if isForeignKeyViolation(err) {
		return errs.ErrNotFound
	}
	if err != nil {
		return err
	}
	p.CreatedAt = now
	return nil
}

// Get selects a profile by ID.
func (r *ProfileRepo) Get(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	var (
		p  model.Profile
		ts int64
	)
	err := r.db.SQL.QueryRowContext(ctx,
		`SELECT id, user_id, name, created_at FROM profiles WHERE id = ?`, id,
	).Scan(&p.ID, &p.UserID, &p.Name, &ts)
	if err != nil {
		return nil, notFound(err)
	}
	p.CreatedAt = fromUnix(ts)
	return &p, nil
}

// ListByUser returns profiles of a user, oldest first.
func (r *ProfileRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Profile, error) {
	rows, err := r.db.SQL.QueryContext(ctx,
		`SELECT id, user_id, name, created_at FROM profiles WHERE user_id = ? ORDER BY created_at ASC, id ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Profile{}
	for rows.Next() {
		var (
			p  model.Profile
			ts int64
		)
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &ts); err != nil {
			return nil, err
		}
		p.CreatedAt = fromUnix(ts)
		out = append(out, p)
	}
	return out, rows.Err()
}

// Delete removes a profile; medications go with it (ON DELETE CASCADE).
func (r *ProfileRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.SQL.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// OwnerOf returns profiles.user_id.
func (r *ProfileRepo) OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var owner uuid.UUID
	if err := r.db.SQL.QueryRowContext(ctx, `SELECT user_id FROM profiles WHERE id = ?`, id).Scan(&owner); err != nil {
		return uuid.Nil, notFound(err)
	}
	return owner, nil
}
