package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"conveydrive/internal/domain"
)

type ClientRepository struct {
	db *sqlx.DB
}

func NewClientRepository(db *sqlx.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) error {
	query := `
        INSERT INTO clients (uuid, tenant_id, name, email, phone, address)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		client.UUID,
		client.TenantID,
		client.Name,
		client.Email,
		client.Phone,
		client.Address,
	).Scan(&client.CreatedAt, &client.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	return nil
}

func (r *ClientRepository) GetByUUID(ctx context.Context, tenantID string, id uuid.UUID) (*domain.Client, error) {
	var client domain.Client
	query := `SELECT * FROM clients WHERE uuid = $1 AND tenant_id = $2`

	err := r.db.GetContext(ctx, &client, query, id, tenantID)
	if err != nil {
		return nil, err
	}

	return &client, nil
}

func (r *ClientRepository) List(ctx context.Context, tenantID string) ([]domain.Client, error) {
	var clients []domain.Client
	query := `SELECT * FROM clients WHERE tenant_id = $1 ORDER BY name`

	err := r.db.SelectContext(ctx, &clients, query, tenantID)
	if err != nil {
		return nil, err
	}

	return clients, nil
}

func (r *ClientRepository) Update(ctx context.Context, client *domain.Client) error {
	query := `
        UPDATE clients
        SET name = $1, email = $2, phone = $3, address = $4, updated_at = CURRENT_TIMESTAMP
        WHERE uuid = $5 AND tenant_id = $6
        RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		client.Name,
		client.Email,
		client.Phone,
		client.Address,
		client.UUID,
		client.TenantID,
	).Scan(&client.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}

	return nil
}

func (r *ClientRepository) Delete(ctx context.Context, tenantID string, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE uuid = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("client not found")
	}

	return nil
}
