package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"conveydrive/internal/domain"
)

type MatterRepository struct {
	db *sqlx.DB
}

func NewMatterRepository(db *sqlx.DB) *MatterRepository {
	return &MatterRepository{db: db}
}

func (r *MatterRepository) Create(ctx context.Context, matter *domain.Matter) error {
	query := `
        INSERT INTO matters (uuid, tenant_id, reference, type, date, settlement_date, amount, status,
                             property_id, buyer_id, seller_id, created_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(
		ctx,
		query,
		matter.UUID,
		matter.TenantID,
		matter.Reference,
		matter.Type,
		matter.Date,
		matter.SettlementDate,
		matter.Amount,
		matter.Status,
		matter.PropertyID,
		matter.BuyerID,
		matter.SellerID,
		matter.CreatedBy,
	).Scan(&matter.CreatedAt, &matter.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create matter: %w", err)
	}

	return nil
}

func (r *MatterRepository) GetByUUID(ctx context.Context, tenantID string, id uuid.UUID) (*domain.Matter, error) {
	var matter domain.Matter
	query := `SELECT * FROM matters WHERE uuid = $1 AND tenant_id = $2`

	err := r.db.GetContext(ctx, &matter, query, id, tenantID)
	if err != nil {
		return nil, err
	}

	return &matter, nil
}

// GetByUUIDTx читает дело внутри транзакции с блокировкой строки: снимок
// "до" и запись изменений должны видеть одно и то же состояние.
func (r *MatterRepository) GetByUUIDTx(ctx context.Context, tx *sqlx.Tx, tenantID string, id uuid.UUID) (*domain.Matter, error) {
	var matter domain.Matter
	query := `SELECT * FROM matters WHERE uuid = $1 AND tenant_id = $2 FOR UPDATE`

	err := tx.GetContext(ctx, &matter, query, id, tenantID)
	if err != nil {
		return nil, err
	}

	return &matter, nil
}

func (r *MatterRepository) List(ctx context.Context, tenantID string, includeArchived bool) ([]domain.Matter, error) {
	var matters []domain.Matter
	query := `SELECT * FROM matters WHERE tenant_id = $1 ORDER BY created_at DESC`
	if !includeArchived {
		query = `SELECT * FROM matters WHERE tenant_id = $1 AND NOT archived ORDER BY created_at DESC`
	}

	err := r.db.SelectContext(ctx, &matters, query, tenantID)
	if err != nil {
		return nil, err
	}

	return matters, nil
}

func (r *MatterRepository) Update(ctx context.Context, tx *sqlx.Tx, matter *domain.Matter) error {
	query := `
        UPDATE matters
        SET type = $1,
            date = $2,
            settlement_date = $3,
            amount = $4,
            status = $5,
            property_id = $6,
            buyer_id = $7,
            seller_id = $8,
            updated_at = CURRENT_TIMESTAMP
        WHERE uuid = $9 AND tenant_id = $10
        RETURNING updated_at`

	err := tx.QueryRowContext(
		ctx,
		query,
		matter.Type,
		matter.Date,
		matter.SettlementDate,
		matter.Amount,
		matter.Status,
		matter.PropertyID,
		matter.BuyerID,
		matter.SellerID,
		matter.UUID,
		matter.TenantID,
	).Scan(&matter.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update matter: %w", err)
	}

	return nil
}

func (r *MatterRepository) SetArchived(ctx context.Context, tx *sqlx.Tx, tenantID string, id uuid.UUID, archived bool) error {
	query := `
        UPDATE matters
        SET archived = $1, updated_at = CURRENT_TIMESTAMP
        WHERE uuid = $2 AND tenant_id = $3`

	result, err := tx.ExecContext(ctx, query, archived, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to set archived flag: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("matter not found")
	}

	return nil
}

func (r *MatterRepository) Delete(ctx context.Context, tx *sqlx.Tx, tenantID string, id uuid.UUID) error {
	result, err := tx.ExecContext(ctx, `DELETE FROM matters WHERE uuid = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete matter: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("matter not found")
	}

	return nil
}

func (r *MatterRepository) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	return r.db.BeginTxx(ctx, nil)
}
