package service

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conveydrive/internal/domain"
	"conveydrive/internal/repository"
)

func newMatterService(t *testing.T) (*MatterService, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return NewMatterService(
		repository.NewMatterRepository(sqlxDB),
		repository.NewAuditRepository(sqlxDB),
	), mock
}

func matterRow(id uuid.UUID, amount float64, status domain.MatterStatus) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"uuid", "tenant_id", "reference", "type", "date", "settlement_date",
		"amount", "status", "property_id", "buyer_id", "seller_id",
		"archived", "created_by", "created_at", "updated_at",
	}).AddRow(
		id, "tenant-1", "CNV-0042", "PURCHASE", nil, nil,
		amount, status, nil, nil, nil,
		false, "user-1", now, now,
	)
}

func TestMatterService_UpdateMatter_RecordsChanges(t *testing.T) {
	svc, mock := newMatterService(t)

	id := uuid.New()
	amount := 500000.0

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM matters WHERE uuid = \$1 AND tenant_id = \$2 FOR UPDATE`).
		WithArgs(id, "tenant-1").
		WillReturnRows(matterRow(id, amount, domain.MatterStatusPending))
	mock.ExpectQuery(`UPDATE matters`).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(time.Now()))
	mock.ExpectQuery(`INSERT INTO audit_logs`).
		WithArgs(id, "tenant-1", "user-1", domain.ActionUpdated,
			`{"changes":{"status":{"from":"Pending","to":"Completed"}}}`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), time.Now()))
	mock.ExpectCommit()

	input := MatterInput{
		Type:   domain.MatterPurchase,
		Amount: &amount,
		Status: domain.MatterStatusCompleted,
	}

	matter, changes, err := svc.UpdateMatter(context.Background(), "tenant-1", "user-1", id, input)
	require.NoError(t, err)
	assert.Equal(t, domain.MatterStatusCompleted, matter.Status)

	require.Len(t, changes, 1)
	assert.Equal(t, domain.FieldChange{From: "Pending", To: "Completed"}, changes["status"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

// Обновление без фактических изменений: строка дела перезаписывается, но
// запись в журнал не создаётся.
func TestMatterService_UpdateMatter_NoChangesNoAudit(t *testing.T) {
	svc, mock := newMatterService(t)

	id := uuid.New()
	amount := 500000.0

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM matters WHERE uuid = \$1 AND tenant_id = \$2 FOR UPDATE`).
		WithArgs(id, "tenant-1").
		WillReturnRows(matterRow(id, amount, domain.MatterStatusPending))
	mock.ExpectQuery(`UPDATE matters`).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(time.Now()))
	mock.ExpectCommit()

	input := MatterInput{
		Type:   domain.MatterPurchase,
		Amount: &amount,
		Status: domain.MatterStatusPending,
	}

	_, changes, err := svc.UpdateMatter(context.Background(), "tenant-1", "user-1", id, input)
	require.NoError(t, err)
	assert.Empty(t, changes)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMatterService_UpdateMatter_NotFound(t *testing.T) {
	svc, mock := newMatterService(t)

	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM matters WHERE uuid = \$1 AND tenant_id = \$2 FOR UPDATE`).
		WithArgs(id, "tenant-2").
		WillReturnRows(sqlmock.NewRows([]string{"uuid"}))
	mock.ExpectRollback()

	_, _, err := svc.UpdateMatter(context.Background(), "tenant-2", "user-1", id, MatterInput{
		Type: domain.MatterSale,
	})
	assert.ErrorIs(t, err, ErrMatterNotFound)
}

func TestMatterService_UpdateMatter_InvalidType(t *testing.T) {
	svc, _ := newMatterService(t)

	_, _, err := svc.UpdateMatter(context.Background(), "tenant-1", "user-1", uuid.New(), MatterInput{
		Type: "LEASE",
	})
	assert.ErrorIs(t, err, ErrInvalidMatter)
}

func TestMatterService_CreateMatter_DefaultStatus(t *testing.T) {
	svc, mock := newMatterService(t)

	now := time.Now()

	mock.ExpectQuery(`INSERT INTO matters`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectQuery(`INSERT INTO audit_logs`).
		WithArgs(sqlmock.AnyArg(), "tenant-1", "user-1", domain.ActionCreated,
			`{"note":"Matter CNV-0042 created"}`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), now))

	matter, err := svc.CreateMatter(context.Background(), "tenant-1", "user-1", MatterInput{
		Reference: "CNV-0042",
		Type:      domain.MatterPurchase,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.MatterStatusPending, matter.Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMatterService_CreateMatter_MissingReference(t *testing.T) {
	svc, _ := newMatterService(t)

	_, err := svc.CreateMatter(context.Background(), "tenant-1", "user-1", MatterInput{
		Type: domain.MatterPurchase,
	})
	assert.ErrorIs(t, err, ErrInvalidMatter)
}
