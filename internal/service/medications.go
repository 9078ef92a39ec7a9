package service

import (
	"context"
	"math"
	"strings"

	"github.com/and161185/medtrack/internal/errs"
	"github.com/and161185/medtrack/internal/model"
	"github.com/and161185/medtrack/internal/repository"
	"github.com/gofrs/uuid/v5"
)

// MaxCount bounds stock counters to the range of a 32-bit integer column.
const MaxCount = math.MaxInt32

// MedicationService defines owner-gated medication operations.
type MedicationService interface {
	ListByProfile(ctx context.Context, userID, profileID uuid.UUID) ([]model.Medication, error)
	Create(ctx context.Context, userID uuid.UUID, in model.NewMedication) (*model.Medication, error)
	Get(ctx context.Context, userID, medicationID uuid.UUID) (*model.Medication, error)
	MarkTaken(ctx context.Context, userID, medicationID uuid.UUID) (*model.Medication, error)
	Delete(ctx context.Context, userID, medicationID uuid.UUID) error
}

type MedicationServiceImpl struct {
	repo      repository.MedicationRepository
	owners    *OwnershipResolver
	inventory *InventoryService
}

// NewMedicationService constructs MedicationService.
func NewMedicationService(repo repository.MedicationRepository, owners *OwnershipResolver, inventory *InventoryService) *MedicationServiceImpl {
	return &MedicationServiceImpl{repo: repo, owners: owners, inventory: inventory}
}

// ListByProfile returns medications of a profile owned by userID.
func (s *MedicationServiceImpl) ListByProfile(ctx context.Context, userID, profileID uuid.UUID) ([]model.Medication, error) {
	if err := s.owners.requireProfile(ctx, profileID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByProfile(ctx, profileID)
}

// Create validates in and adds a medication to a profile owned by userID.
// Validation:
// - name not blank
// - currentStock in [0, MaxCount]
// - lowStockThreshold in [0, MaxCount], default 5
func (s *MedicationServiceImpl) Create(ctx context.Context, userID uuid.UUID, in model.NewMedication) (*model.Medication, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errs.Invalid("medication name is required")
	}
	if in.CurrentStock < 0 {
		return nil, errs.Invalid("currentStock must not be negative")
	}
	if in.CurrentStock > MaxCount {
		return nil, errs.Invalid("currentStock is too large")
	}
	threshold := model.DefaultLowStockThreshold
	if in.LowStockThreshold != nil {
		threshold = *in.LowStockThreshold
	}
	if threshold < 0 {
		return nil, errs.Invalid("lowStockThreshold must not be negative")
	}
	if threshold > MaxCount {
		return nil, errs.Invalid("lowStockThreshold is too large")
	}

	if err := s.owners.requireProfile(ctx, in.ProfileID, userID); err != nil {
		return nil, err
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	m := &model.Medication{
		ID:                id,
		ProfileID:         in.ProfileID,
		Name:              name,
		Dosage:            trimOptional(in.Dosage),
		CurrentStock:      in.CurrentStock,
		LowStockThreshold: threshold,
		TakeTime:          trimOptional(in.TakeTime),
		Frequency:         trimOptional(in.Frequency),
		Notes:             trimOptional(in.Notes),
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Get returns a medication owned (through its profile) by userID.
func (s *MedicationServiceImpl) Get(ctx context.Context, userID, medicationID uuid.UUID) (*model.Medication, error) {
	if err := s.owners.requireMedication(ctx, medicationID, userID); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, medicationID)
}

// MarkTaken decrements stock of an owned medication by one.
func (s *MedicationServiceImpl) MarkTaken(ctx context.Context, userID, medicationID uuid.UUID) (*model.Medication, error) {
	if err := s.owners.requireMedication(ctx, medicationID, userID); err != nil {
		return nil, err
	}
	return s.inventory.DecrementOnTaken(ctx, medicationID)
}

// Delete hard-deletes an owned medication.
func (s *MedicationServiceImpl) Delete(ctx context.Context, userID, medicationID uuid.UUID) error {
	if err := s.owners.requireMedication(ctx, medicationID, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, medicationID)
}
