package service

import (
	"context"

	"github.com/and161185/medtrack/internal/model"
	"github.com/and161185/medtrack/internal/repository"
	"github.com/gofrs/uuid/v5"
)

// InventoryService applies stock changes. Stock never drops below zero:
// the decrement is a single conditional update in storage.
type InventoryService struct {
	meds repository.MedicationRepository
}

// NewInventoryService constructs an InventoryService.
func NewInventoryService(meds repository.MedicationRepository) *InventoryService {
	return &InventoryService{meds: meds}
}

// DecrementOnTaken lowers stock by exactly one or fails with errs.ErrOutOfStock.
func (s *InventoryService) DecrementOnTaken(ctx context.Context, medicationID uuid.UUID) (*model.Medication, error) {
	return s.meds.DecrementStock(ctx, medicationID)
}
