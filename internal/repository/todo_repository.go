package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"conveydrive/internal/domain"
)

type TodoRepository struct {
	db *sqlx.DB
}

func NewTodoRepository(db *sqlx.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) Create(ctx context.Context, todo *domain.Todo) error {
	query := `
        INSERT INTO todos (uuid, tenant_id, matter_id, title, due_date, created_by)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		todo.UUID,
		todo.TenantID,
		todo.MatterID,
		todo.Title,
		todo.DueDate,
		todo.CreatedBy,
	).Scan(&todo.CreatedAt, &todo.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create todo: %w", err)
	}

	return nil
}

func (r *TodoRepository) GetByUUID(ctx context.Context, tenantID string, id uuid.UUID) (*domain.Todo, error) {
	var todo domain.Todo
	query := `SELECT * FROM todos WHERE uuid = $1 AND tenant_id = $2`

	err := r.db.GetContext(ctx, &todo, query, id, tenantID)
	if err != nil {
		return nil, err
	}

	return &todo, nil
}

func (r *TodoRepository) ListByMatter(ctx context.Context, tenantID string, matterID uuid.UUID) ([]domain.Todo, error) {
	var todos []domain.Todo
	query := `
        SELECT * FROM todos
        WHERE matter_id = $1 AND tenant_id = $2
        ORDER BY completed, due_date NULLS LAST, created_at`

	err := r.db.SelectContext(ctx, &todos, query, matterID, tenantID)
	if err != nil {
		return nil, err
	}

	return todos, nil
}

func (r *TodoRepository) SetCompleted(ctx context.Context, tenantID string, id uuid.UUID, completed bool) error {
	query := `
        UPDATE todos
        SET completed = $1,
            completed_at = CASE WHEN $1 THEN CURRENT_TIMESTAMP ELSE NULL END,
            overdue = CASE WHEN $1 THEN FALSE ELSE overdue END,
            updated_at = CURRENT_TIMESTAMP
        WHERE uuid = $2 AND tenant_id = $3`

	result, err := r.db.ExecContext(ctx, query, completed, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("todo not found")
	}

	return nil
}

func (r *TodoRepository) Delete(ctx context.Context, tenantID string, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE uuid = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("todo not found")
	}

	return nil
}

// MarkOverdue помечает просроченные незавершённые задачи. Вызывается
// периодической фоновой задачей.
func (r *TodoRepository) MarkOverdue(ctx context.Context) (int64, error) {
	query := `
        UPDATE todos
        SET overdue = TRUE, updated_at = CURRENT_TIMESTAMP
        WHERE due_date < CURRENT_TIMESTAMP AND NOT completed AND NOT overdue`

	result, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to mark overdue todos: %w", err)
	}

	return result.RowsAffected()
}
