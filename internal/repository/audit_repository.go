package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"conveydrive/internal/domain"
)

type AuditRepository struct {
	db *sqlx.DB
}

func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create записывает событие журнала. Запись участвует в транзакции
// мутирующей операции, если транзакция передана.
func (r *AuditRepository) Create(ctx context.Context, tx *sqlx.Tx, entry *domain.AuditLog) error {
	query := `
        INSERT INTO audit_logs (matter_id, tenant_id, user_id, action, details)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`

	if tx != nil {
		err := tx.QueryRowContext(ctx, query,
			entry.MatterID,
			entry.TenantID,
			entry.UserID,
			entry.Action,
			entry.Details,
		).Scan(&entry.ID, &entry.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create audit log within transaction: %w", err)
		}
		return nil
	}

	err := r.db.QueryRowContext(ctx, query,
		entry.MatterID,
		entry.TenantID,
		entry.UserID,
		entry.Action,
		entry.Details,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}

	return nil
}

func (r *AuditRepository) ListByMatter(ctx context.Context, tenantID string, matterID uuid.UUID) ([]domain.AuditLog, error) {
	var entries []domain.AuditLog
	query := `
        SELECT * FROM audit_logs
        WHERE matter_id = $1 AND tenant_id = $2
        ORDER BY created_at DESC, id DESC`

	err := r.db.SelectContext(ctx, &entries, query, matterID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}

	return entries, nil
}
