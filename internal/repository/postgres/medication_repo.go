package postgres

import (
	"context"
	"errors"

	"github.com/and161185/medtrack/internal/errs"
	"github.com/and161185/medtrack/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
)

const medicationColumns = `id, profile_id, name, dosage, current_stock, low_stock_threshold,
       take_time, frequency, notes, created_at, updated_at`

// MedicationRepo implements MedicationRepository using PostgreSQL.
type MedicationRepo struct{ db *DB }

// NewMedicationRepo constructs a medication repository.
func NewMedicationRepo(db *DB) *MedicationRepo { return &MedicationRepo{db: db} }

func scanMedication(row pgx.Row) (*model.Medication, error) {
	var m model.Medication
	err := row.Scan(
		&m.ID, &m.ProfileID, &m.Name, &m.Dosage, &m.CurrentStock, &m.LowStockThreshold,
		&m.TakeTime, &m.Frequency, &m.Notes, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a medication row.
func (r *MedicationRepo) Create(ctx context.Context, m *model.Medication) error {
	const q = `
INSERT INTO medications (id, profile_id, name, dosage, current_stock, low_stock_threshold, take_time, frequency, notes)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING created_at, updated_at`
	err := r.db.Pool.QueryRow(ctx, q,
		m.ID, m.ProfileID, m.Name, m.Dosage, m.CurrentStock, m.LowStockThreshold, m.TakeTime, m.Frequency, m.Notes,
	).Scan(&m.CreatedAt, &m.UpdatedAt)
	if isForeignKeyViolation(err) {
		return errs.ErrNotFound
	}
	return err
}

// Get selects a medication by ID.
func (r *MedicationRepo) Get(ctx context.Context, id uuid.UUID) (*model.Medication, error) {
	const q = `SELECT ` + medicationColumns + ` FROM medications WHERE id=$1`
	m, err := scanMedication(r.db.Pool.QueryRow(ctx, q, id))
	if err != nil {
		return nil, notFound(err)
	}
	return m, nil
}

// ListByProfile returns medications of a profile ordered by name.
func (r *MedicationRepo) ListByProfile(ctx context.Context, profileID uuid.UUID) ([]model.Medication, error) {
	const q = `SELECT ` + medicationColumns + ` FROM medications WHERE profile_id=$1 ORDER BY name ASC, id ASC`
	rows, err := r.db.Pool.Query(ctx, q, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Medication{}
	for rows.Next() {
		m, err := scanMedication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

// Delete removes a medication row.
func (r *MedicationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM medications WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// OwnerOf resolves the owning user through the parent profile.
func (r *MedicationRepo) OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	const q = `
SELECT p.user_id
FROM medications m
LEFT JOIN profiles p ON p.id = m.profile_id
WHERE m.id=$1`
	var owner uuid.NullUUID
	if err := r.db.Pool.QueryRow(ctx, q, id).Scan(&owner); err != nil {
		return uuid.Nil, notFound(err)
	}
	if !owner.Valid {
		return uuid.Nil, errs.ErrNotFound
	}
	return owner.UUID, nil
}

// DecrementStock lowers current_stock by one in a single conditional UPDATE.
func (r *MedicationRepo) DecrementStock(ctx context.Context, id uuid.UUID) (*model.Medication, error) {
	const upd = `
UPDATE medications
SET current_stock = current_stock - 1, updated_at = now()
WHERE id=$1 AND current_stock > 0
RETURNING ` + medicationColumns
	m, err := scanMedication(r.db.Pool.QueryRow(ctx, upd, id))
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	var exists bool
	if err := r.db.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM medications WHERE id=$1)`, id).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.ErrNotFound
	}
	return nil, errs.ErrOutOfStock
}
