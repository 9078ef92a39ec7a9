package service

import (
	"context"
	"strings"

	"github.com/and161185/medtrack/internal/errs"
	"github.com/and161185/medtrack/internal/model"
	"github.com/and161185/medtrack/internal/repository"
	"github.com/gofrs/uuid/v5"
)

// ProfileService defines owner-gated profile operations.
type ProfileService interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.Profile, error)
	Create(ctx context.Context, userID uuid.UUID, name string) (*model.Profile, error)
	Get(ctx context.Context, userID, profileID uuid.UUID) (*model.Profile, error)
	Delete(ctx context.Context, userID, profileID uuid.UUID) error
}

type ProfileServiceImpl struct {
	repo   repository.ProfileRepository
	owners *OwnershipResolver
}

// NewProfileService constructs ProfileService.
func NewProfileService(repo repository.ProfileRepository, owners *OwnershipResolver) *ProfileServiceImpl {
	return &ProfileServiceImpl{repo: repo, owners: owners}
}

// List returns the caller's profiles.
func (s *ProfileServiceImpl) List(ctx context.Context, userID uuid.UUID) ([]model.Profile, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Create adds a profile owned by userID. The name is trimmed and must not be empty.
func (s *ProfileServiceImpl) Create(ctx context.Context, userID uuid.UUID, name string) (*model.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.Invalid("profile name is required")
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	p := &model.Profile{ID: id, UserID: userID, Name: name}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns a profile owned by userID.
func (s *ProfileServiceImpl) Get(ctx context.Context, userID, profileID uuid.UUID) (*model.Profile, error) {
	if err := s.owners.requireProfile(ctx, profileID, userID); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, profileID)
}

// Delete removes a profile owned by userID together with its medications.
func (s *ProfileServiceImpl) Delete(ctx context.Context, userID, profileID uuid.UUID) error {
	if err := s.owners.requireProfile(ctx, profileID, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, profileID)
}
