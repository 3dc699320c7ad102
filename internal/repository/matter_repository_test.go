package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conveydrive/internal/domain"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "sqlmock"), mock
}

func matterColumns() []string {
	return []string{
		"uuid", "tenant_id", "reference", "type", "date", "settlement_date",
		"amount", "status", "property_id", "buyer_id", "seller_id",
		"archived", "created_by", "created_at", "updated_at",
	}
}

func TestMatterRepository_GetByUUID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMatterRepository(db)

	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM matters WHERE uuid = \$1 AND tenant_id = \$2`).
		WithArgs(id, "tenant-1").
		WillReturnRows(sqlmock.NewRows(matterColumns()).AddRow(
			id, "tenant-1", "CNV-0042", "PURCHASE", nil, nil,
			500000.0, "Pending", nil, nil, nil,
			false, "user-1", now, now,
		))

	matter, err := repo.GetByUUID(context.Background(), "tenant-1", id)
	require.NoError(t, err)
	assert.Equal(t, "CNV-0042", matter.Reference)
	assert.Equal(t, domain.MatterPurchase, matter.Type)
	require.NotNil(t, matter.Amount)
	assert.Equal(t, 500000.0, *matter.Amount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMatterRepository_GetByUUID_WrongTenant(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMatterRepository(db)

	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM matters WHERE uuid = \$1 AND tenant_id = \$2`).
		WithArgs(id, "tenant-2").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByUUID(context.Background(), "tenant-2", id)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMatterRepository_Update(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMatterRepository(db)

	id := uuid.New()
	amount := 525000.0
	matter := &domain.Matter{
		UUID:     id,
		TenantID: "tenant-1",
		Type:     domain.MatterPurchase,
		Amount:   &amount,
		Status:   domain.MatterStatusContract,
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE matters`).
		WithArgs(
			matter.Type, matter.Date, matter.SettlementDate, matter.Amount,
			matter.Status, matter.PropertyID, matter.BuyerID, matter.SellerID,
			matter.UUID, matter.TenantID,
		).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(time.Now()))
	mock.ExpectCommit()

	tx, err := repo.BeginTx(context.Background())
	require.NoError(t, err)

	require.NoError(t, repo.Update(context.Background(), tx, matter))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMatterRepository_SetArchived_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMatterRepository(db)

	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE matters`).
		WithArgs(true, id, "tenant-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	tx, err := repo.BeginTx(context.Background())
	require.NoError(t, err)

	err = repo.SetArchived(context.Background(), tx, "tenant-1", id, true)
	assert.ErrorContains(t, err, "matter not found")
}
