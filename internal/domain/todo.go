package domain

import (
	"time"

	"github.com/google/uuid"
)

// Todo — задача по делу.
type Todo struct {
	UUID        uuid.UUID  `json:"uuid" db:"uuid"`
	TenantID    string     `json:"tenant_id" db:"tenant_id"`
	MatterID    uuid.UUID  `json:"matter_id" db:"matter_id"`
	Title       string     `json:"title" db:"title"`
	DueDate     *time.Time `json:"due_date,omitempty" db:"due_date"`
	Completed   bool       `json:"completed" db:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	Overdue     bool       `json:"overdue" db:"overdue"`
	CreatedBy   string     `json:"created_by" db:"created_by"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}
