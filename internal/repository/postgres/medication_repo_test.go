package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/and161185/medtrack/internal/errs"
	"github.com/and161185/medtrack/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

var medCols = []string{
	"id", "profile_id", "name", "dosage", "current_stock", "low_stock_threshold",
	"take_time", "frequency", "notes", "created_at", "updated_at",
}

func medRow(id, profileID uuid.UUID, name string, stock int) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows(medCols).
		AddRow(id, profileID, name, nil, stock, 5, nil, nil, nil, now, now)
}

func TestMedicationRepo_Create(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewMedicationRepo(db)
	ctx := context.Background()
	dosage := "500mg"
	m := &model.Medication{
		ID: uuid.Must(uuid.NewV4()), ProfileID: uuid.Must(uuid.NewV4()),
		Name: "Aspirin", Dosage: &dosage, CurrentStock: 2, LowStockThreshold: 5,
	}
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO medications`).
		WithArgs(m.ID, m.ProfileID, m.Name, m.Dosage, m.CurrentStock, m.LowStockThreshold, m.TakeTime, m.Frequency, m.Notes).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	require.NoError(t, r.Create(ctx, m))
	require.Equal(t, now, m.UpdatedAt)

	mock.ExpectQuery(`INSERT INTO medications`).
		WithArgs(m.ID, m.ProfileID, m.Name, m.Dosage, m.CurrentStock, m.LowStockThreshold, m.TakeTime, m.Frequency, m.Notes).
		WillReturnError(&pgconn.PgError{Code: "23503"})
	require.ErrorIs(t, r.Create(ctx, m), errs.ErrNotFound)
}

func TestMedicationRepo_GetListDelete(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewMedicationRepo(db)
	ctx := context.Background()
	id, pid := uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4())

	mock.ExpectQuery(`FROM medications WHERE id=\$1`).WithArgs(id).
		WillReturnRows(medRow(id, pid, "Aspirin", 3))
	m, err := r.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 3, m.CurrentStock)
	require.Nil(t, m.Dosage)

	mock.ExpectQuery(`FROM medications WHERE id=\$1`).WithArgs(id).WillReturnError(pgx.ErrNoRows)
	_, err = r.Get(ctx, id)
	require.ErrorIs(t, err, errs.ErrNotFound)

	mock.ExpectQuery(`FROM medications WHERE profile_id=\$1 ORDER BY name ASC`).WithArgs(pid).
		WillReturnRows(medRow(id, pid, "Aspirin", 3))
	list, err := r.ListByProfile(ctx, pid)
	require.NoError(t, err)
	require.Len(t, list, 1)

	mock.ExpectExec(`DELETE FROM medications WHERE id=\$1`).WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, r.Delete(ctx, id))

	mock.ExpectExec(`DELETE FROM medications WHERE id=\$1`).WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	require.ErrorIs(t, r.Delete(ctx, id), errs.ErrNotFound)
}

func TestMedicationRepo_OwnerOf(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewMedicationRepo(db)
	ctx := context.Background()
	id, owner := uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4())

	mock.ExpectQuery(`LEFT JOIN profiles p ON p.id = m.profile_id`).WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"user_id"}).AddRow(owner))
	got, err := r.OwnerOf(ctx, id)
	require.NoError(t, err)
	require.Equal(t, owner, got)

	// orphaned profile reference
	mock.ExpectQuery(`LEFT JOIN profiles`).WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"user_id"}).AddRow(nil))
	_, err = r.OwnerOf(ctx, id)
	require.ErrorIs(t, err, errs.ErrNotFound)

	mock.ExpectQuery(`LEFT JOIN profiles`).WithArgs(id).WillReturnError(pgx.ErrNoRows)
	_, err = r.OwnerOf(ctx, id)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestMedicationRepo_DecrementStock(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewMedicationRepo(db)
	ctx := context.Background()
	id, pid := uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4())

	// success: a single conditional UPDATE, no prior SELECT
	mock.ExpectQuery(`UPDATE medications SET current_stock = current_stock - 1, updated_at = now\(\) WHERE id=\$1 AND current_stock > 0 RETURNING`).
		WithArgs(id).
		WillReturnRows(medRow(id, pid, "Aspirin", 1))
	m, err := r.DecrementStock(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 1, m.CurrentStock)

	// stock exhausted
	mock.ExpectQuery(`UPDATE medications`).WithArgs(id).WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(`SELECT EXISTS`).WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	_, err = r.DecrementStock(ctx, id)
	require.ErrorIs(t, err, errs.ErrOutOfStock)

	// missing row
	mock.ExpectQuery(`UPDATE medications`).WithArgs(id).WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(`SELECT EXISTS`).WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	_, err = r.DecrementStock(ctx, id)
	require.ErrorIs(t, err, errs.ErrNotFound)

	// driver error is propagated untouched
	boom := errors.New("boom")
	mock.ExpectQuery(`UPDATE medications`).WithArgs(id).WillReturnError(boom)
	_, err = r.DecrementStock(ctx, id)
	require.ErrorIs(t, err, boom)

	require.NoError(t, mock.ExpectationsWereMet())
}
