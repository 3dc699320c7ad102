package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"conveydrive/internal/domain"
)

type DocumentRepository struct {
	db *sqlx.DB
}

func NewDocumentRepository(db *sqlx.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Create(ctx context.Context, tx *sqlx.Tx, doc *domain.Document) error {
	query := `
        INSERT INTO documents (uuid, matter_id, tenant_id, original_id, version, category,
                               name, file_size, file_type, description, s3_key, uploaded_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING uploaded_at`

	err := tx.QueryRowContext(
		ctx,
		query,
		doc.UUID,
		doc.MatterID,
		doc.TenantID,
		doc.OriginalID,
		doc.Version,
		doc.Category,
		doc.Name,
		doc.FileSize,
		doc.FileType,
		doc.Description,
		doc.S3Key,
		doc.UploadedBy,
	).Scan(&doc.UploadedAt)
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	return nil
}

func (r *DocumentRepository) GetByUUID(ctx context.Context, tenantID string, id uuid.UUID) (*domain.Document, error) {
	var doc domain.Document
	query := `SELECT * FROM documents WHERE uuid = $1 AND tenant_id = $2`

	err := r.db.GetContext(ctx, &doc, query, id, tenantID)
	if err != nil {
		return nil, err
	}

	return &doc, nil
}

func (r *DocumentRepository) ListByMatter(ctx context.Context, tenantID string, matterID uuid.UUID) ([]domain.Document, error) {
	var docs []domain.Document
	query := `
        SELECT * FROM documents
        WHERE matter_id = $1 AND tenant_id = $2
        ORDER BY uploaded_at DESC`

	err := r.db.SelectContext(ctx, &docs, query, matterID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	return docs, nil
}

// NextVersion выдаёт следующий номер версии для цепочки groupID. Верхняя
// строка цепочки блокируется до конца транзакции, поэтому параллельные
// загрузки версий одного документа не получат одинаковый номер; уникальный
// индекс в схеме страхует от дубликатов.
func (r *DocumentRepository) NextVersion(ctx context.Context, tx *sqlx.Tx, groupID uuid.UUID) (int, error) {
	var version int
	query := `
        SELECT version FROM documents
        WHERE uuid = $1 OR original_id = $1
        ORDER BY version DESC
        LIMIT 1
        FOR UPDATE`

	err := tx.QueryRowContext(ctx, query, groupID).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get current version: %w", err)
	}

	return version + 1, nil
}

// ListChain возвращает все записи цепочки версий документа.
func (r *DocumentRepository) ListChain(ctx context.Context, tenantID string, groupID uuid.UUID) ([]domain.Document, error) {
	var docs []domain.Document
	query := `
        SELECT * FROM documents
        WHERE (uuid = $1 OR original_id = $1) AND tenant_id = $2
        ORDER BY version DESC`

	err := r.db.SelectContext(ctx, &docs, query, groupID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list document chain: %w", err)
	}

	return docs, nil
}

func (r *DocumentRepository) DeleteChain(ctx context.Context, tx *sqlx.Tx, tenantID string, groupID uuid.UUID) error {
	query := `DELETE FROM documents WHERE (uuid = $1 OR original_id = $1) AND tenant_id = $2`

	result, err := tx.ExecContext(ctx, query, groupID, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete document chain: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("document not found")
	}

	return nil
}

func (r *DocumentRepository) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	return r.db.BeginTxx(ctx, nil)
}
