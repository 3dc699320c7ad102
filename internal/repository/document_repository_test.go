package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentRepository_NextVersion(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDocumentRepository(db)

	groupID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT version FROM documents`).
		WithArgs(groupID).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(3))
	mock.ExpectCommit()

	tx, err := repo.BeginTx(context.Background())
	require.NoError(t, err)

	version, err := repo.NextVersion(context.Background(), tx, groupID)
	require.NoError(t, err)
	assert.Equal(t, 4, version)

	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepository_NextVersion_EmptyChain(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDocumentRepository(db)

	groupID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT version FROM documents`).
		WithArgs(groupID).
		WillReturnRows(sqlmock.NewRows([]string{"version"}))
	mock.ExpectCommit()

	tx, err := repo.BeginTx(context.Background())
	require.NoError(t, err)

	version, err := repo.NextVersion(context.Background(), tx, groupID)
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepository_DeleteChain_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDocumentRepository(db)

	groupID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM documents`).
		WithArgs(groupID, "tenant-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	tx, err := repo.BeginTx(context.Background())
	require.NoError(t, err)

	err = repo.DeleteChain(context.Background(), tx, "tenant-1", groupID)
	assert.ErrorContains(t, err, "document not found")
}
