package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"conveydrive/internal/domain"
)

type PropertyRepository struct {
	db *sqlx.DB
}

func NewPropertyRepository(db *sqlx.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

func (r *PropertyRepository) Create(ctx context.Context, property *domain.Property) error {
	query := `
        INSERT INTO properties (uuid, tenant_id, address, suburb, state, postcode, title_reference)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		property.UUID,
		property.TenantID,
		property.Address,
		property.Suburb,
		property.State,
		property.Postcode,
		property.TitleReference,
	).Scan(&property.CreatedAt, &property.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}

	return nil
}

func (r *PropertyRepository) GetByUUID(ctx context.Context, tenantID string, id uuid.UUID) (*domain.Property, error) {
	var property domain.Property
	query := `SELECT * FROM properties WHERE uuid = $1 AND tenant_id = $2`

	err := r.db.GetContext(ctx, &property, query, id, tenantID)
	if err != nil {
		return nil, err
	}

	return &property, nil
}

func (r *PropertyRepository) List(ctx context.Context, tenantID string) ([]domain.Property, error) {
	var properties []domain.Property
	query := `SELECT * FROM properties WHERE tenant_id = $1 ORDER BY address`

	err := r.db.SelectContext(ctx, &properties, query, tenantID)
	if err != nil {
		return nil, err
	}

	return properties, nil
}

func (r *PropertyRepository) Update(ctx context.Context, property *domain.Property) error {
	query := `
        UPDATE properties
        SET address = $1, suburb = $2, state = $3, postcode = $4, title_reference = $5,
            updated_at = CURRENT_TIMESTAMP
        WHERE uuid = $6 AND tenant_id = $7
        RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		property.Address,
		property.Suburb,
		property.State,
		property.Postcode,
		property.TitleReference,
		property.UUID,
		property.TenantID,
	).Scan(&property.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update property: %w", err)
	}

	return nil
}

func (r *PropertyRepository) Delete(ctx context.Context, tenantID string, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM properties WHERE uuid = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("property not found")
	}

	return nil
}
