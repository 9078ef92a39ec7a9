package repository

import (
	"context"

	"github.com/and161185/medtrack/internal/model"
	"github.com/gofrs/uuid/v5"
)

// ProfileRepository provides access to profiles.
type ProfileRepository interface {
	// Create inserts a profile; ID and CreatedAt are filled in.
	Create(ctx context.Context, p *model.Profile) error
	// Get loads a profile by ID.
	Get(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	// ListByUser returns the user's profiles ordered by creation time.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Profile, error)
	// Delete removes a profile and, by cascade, its medications.
	Delete(ctx context.Context, id uuid.UUID) error
	// OwnerOf returns the owning user of a profile.
	OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
}
