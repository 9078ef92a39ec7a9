package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/and161185/medtrack/internal/errs"
	"github.com/and161185/medtrack/internal/model"
	"github.com/gofrs/uuid/v5"
)

const medicationColumns = `id, profile_id, name, dosage, current_stock, low_stock_threshold,
       take_time, frequency, notes, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMedication(row rowScanner) (*model.Medication, error) {
	var (
		m                model.Medication
		created, updated int64
	)
	err := row.Scan(
		&m.ID, &m.ProfileID, &m.Name, &m.Dosage, &m.CurrentStock, &m.LowStockThreshold,
		&m.TakeTime, &m.Frequency, &m.Notes, &created, &updated,
	)
	if err != nil {
		return nil, err
	}
	m.CreatedAt, m.UpdatedAt = fromUnix(created), fromUnix(updated)
	return &m, nil
}

// MedicationRepo implements MedicationRepository on SQLite.
type MedicationRepo struct{ db *DB }

// NewMedicationRepo constructs a medication repository.
func NewMedicationRepo(db *DB) *MedicationRepo { return &MedicationRepo{db: db} }

// Create inserts a medication row.
func (r *MedicationRepo) Create(ctx context.Context, m *model.Medication) error {
	const q = `
INSERT INTO medications (id, profile_id, name, dosage, current_stock, low_stock_threshold,
                         take_time, frequency, notes, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	now := time.Now().UTC()
	_, err := r.db.SQL.ExecContext(ctx, q,
		m.ID, m.ProfileID, m.Name, m.Dosage, m.CurrentStock, m.LowStockThreshold,
		m.TakeTime, m.Frequency, m.Notes, toUnix(now), toUnix(now))
	if isForeignKeyViolation(err) {
		return errs.ErrNotFound
	}
	if err != nil {
		return err
	}
	m.CreatedAt, m.UpdatedAt = now, now
	return nil
}

// Get selects a medication by ID.
func (r *MedicationRepo) Get(ctx context.Context, id uuid.UUID) (*model.Medication, error) {
	m, err := scanMedication(r.db.SQL.QueryRowContext(ctx,
		`SELECT `+medicationColumns+` FROM medications WHERE id = ?`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return m, nil
}

// ListByProfile returns medications of a profile ordered by name.
func (r *MedicationRepo) ListByProfile(ctx context.Context, profileID uuid.UUID) ([]model.Medication, error) {
	rows, err := r.db.SQL.QueryContext(ctx,
		`SELECT `+medicationColumns+` FROM medications WHERE profile_id = ? ORDER BY name ASC, id ASC`, profileID)
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
	res, err := r.db.SQL.ExecContext(ctx, `DELETE FROM medications WHERE id = ?`, id)
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

// OwnerOf resolves the owning user through the parent profile.
func (r *MedicationRepo) OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	const q = `
SELECT p.user_id
FROM medications m
LEFT JOIN profiles p ON p.id = m.profile_id
WHERE m.id = ?`
	var owner uuid.NullUUID
	if err := r.db.SQL.QueryRowContext(ctx, q, id).Scan(&owner); err != nil {
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
SET current_stock = current_stock - 1, updated_at = ?
WHERE id = ? AND current_stock > 0
RETURNING ` + medicationColumns
	m, err := scanMedication(r.db.SQL.QueryRowContext(ctx, upd, toUnix(time.Now()), id))
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	var exists bool
	if err := r.db.SQL.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM medications WHERE id = ?)`, id).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.ErrNotFound
	}
	return nil, errs.ErrOutOfStock
}
