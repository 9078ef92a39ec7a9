package sqlite

import (
	"context"
	"time"

	"github.com/and161185/medtrack/internal/errs"
	"github.com/and161185/medtrack/internal/model"
)

// UserRepo implements UserRepository on SQLite.
type UserRepo struct{ db *DB }

// NewUserRepo constructs a user repository.
func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a new user row.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	const q = `INSERT INTO users (id, email, pwd_hash, pwd_salt, name, created_at) VALUES (?, ?, ?, ?, ?, ?)`
	now := time.Now().UTC()
	_, err := r.db.SQL.ExecContext(ctx, q, u.ID, u.Email, u.PwdHash, u.PwdSalt, u.Name, toUnix(now))
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	if err != nil {
		return err
	}
	u.CreatedAt = now
	return nil
}

// GetByEmail selects a user by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `SELECT id, email, pwd_hash, pwd_salt, name, created_at FROM users WHERE email = ?`
	var (
		u  model.User
		ts int64
	)
	err := r.db.SQL.QueryRowContext(ctx, q, email).Scan(&u.ID, &u.Email, &u.PwdHash, &u.PwdSalt, &u.Name, &ts)
	if err != nil {
		return nil, notFound(err)
	}
	u.CreatedAt = fromUnix(ts)
	return &u, nil
}
