// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/and161185/medtrack/internal/model"
)

// UserRepository provides access to user accounts.
type UserRepository interface {
	// Create inserts a new user. Duplicate email yields errs.ErrAlreadyExists.
	Create(ctx context.Context, u *model.User) error
	// GetByEmail loads a user by (lower-cased) email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}
