package repository

import (
	"context"

	"github.com/and161185/medtrack/internal/model"
	"github.com/gofrs/uuid/v5"
)

// MedicationRepository provides access to medications and their stock.
type MedicationRepository interface {
	// Create inserts a medication; ID and timestamps are filled in.
	Create(ctx context.Context, m *model.Medication) error
	// Get loads a medication by ID.
	Get(ctx context.Context, id uuid.UUID) (*model.Medication, error)
	// ListByProfile returns the profile's medications ordered by name.
	ListByProfile(ctx context.Context, profileID uuid.UUID) ([]model.Medication, error)
	// Delete removes a medication.
	Delete(ctx context.Context, id uuid.UUID) error
	// OwnerOf resolves medication -> profile -> user. A missing medication or
	// an orphaned profile reference yields errs.ErrNotFound.
	OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	// DecrementStock atomically lowers current stock by one if it is positive.
	// It returns errs.ErrOutOfStock when stock is zero and errs.ErrNotFound
	// when the medication does not exist.
	DecrementStock(ctx context.Context, id uuid.UUID) (*model.Medication, error)
}
