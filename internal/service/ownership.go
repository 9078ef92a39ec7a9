package service

import (
	"context"
	"errors"

	"github.com/and161185/medtrack/internal/errs"
	"github.com/gofrs/uuid/v5"
)

// OwnerLookup resolves the owning user of a resource.
type OwnerLookup interface {
	OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
}

// OwnershipResolver checks the user -> profile -> medication chain.
// Nothing is cached; every call goes to storage.
type OwnershipResolver struct {
	profiles    OwnerLookup
	medications OwnerLookup
}

// NewOwnershipResolver constructs a resolver over profile and medication owner lookups.
func NewOwnershipResolver(profiles, medications OwnerLookup) *OwnershipResolver {
	return &OwnershipResolver{profiles: profiles, medications: medications}
}

// OwnsProfile reports whether userID owns profileID. A missing profile is not an error.
func (r *OwnershipResolver) OwnsProfile(ctx context.Context, profileID, userID uuid.UUID) (bool, error) {
	return owns(ctx, r.profiles, profileID, userID)
}

// OwnsMedication reports whether userID owns the profile holding medicationID.
func (r *OwnershipResolver) OwnsMedication(ctx context.Context, medicationID, userID uuid.UUID) (bool, error) {
	return owns(ctx, r.medications, medicationID, userID)
}

func owns(ctx context.Context, lookup OwnerLookup, id, userID uuid.UUID) (bool, error) {
	if id == uuid.Nil || userID == uuid.Nil {
		return false, nil
	}
	owner, err := lookup.OwnerOf(ctx, id)
	if errors.Is(err, errs.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return owner == userID, nil
}

// requireProfile turns a failed ownership check into errs.ErrNotFound.
func (r *OwnershipResolver) requireProfile(ctx context.Context, profileID, userID uuid.UUID) error {
	ok, err := r.OwnsProfile(ctx, profileID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return errs.ErrNotFound
	}
	return nil
}

// requireMedication turns a failed ownership check into errs.ErrNotFound.
func (r *OwnershipResolver) requireMedication(ctx context.Context, medicationID, userID uuid.UUID) error {
	ok, err := r.OwnsMedication(ctx, medicationID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return errs.ErrNotFound
	}
	return nil
}
