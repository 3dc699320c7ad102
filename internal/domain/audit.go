package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type AuditAction string

const (
	ActionCreated    AuditAction = "CREATED"
	ActionUpdated    AuditAction = "UPDATED"
	ActionArchived   AuditAction = "ARCHIVED"
	ActionUnarchived AuditAction = "UNARCHIVED"
	ActionDeleted    AuditAction = "DELETED"
)

// AuditLog — запись журнала по делу. Создаётся один раз на мутирующую
// операцию и далее не изменяется; политика хранения — на стороне БД.
type AuditLog struct {
	ID        int64       `json:"id" db:"id"`
	MatterID  uuid.UUID   `json:"matter_id" db:"matter_id"`
	TenantID  string      `json:"tenant_id" db:"tenant_id"`
	UserID    string      `json:"user_id" db:"user_id"`
	Action    AuditAction `json:"action" db:"action"`
	Details   string      `json:"details" db:"details"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
}

// AuditDetails — типизированное содержимое колонки details. Для действия
// UPDATED заполняется Changes, для остальных — свободная заметка.
type AuditDetails struct {
	Changes ChangeSet `json:"changes,omitempty"`
	Note    string    `json:"note,omitempty"`
}

// Encode сериализует details для записи в БД.
func (d AuditDetails) Encode() (string, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("failed to encode audit details: %w", err)
	}
	return string(raw), nil
}

// ParseAuditDetails разбирает details, прочитанный из БД. Ошибку разбора
// вызывающая сторона переводит в состояние "changes unavailable", а не
// пробрасывает пользователю.
func ParseAuditDetails(raw string) (AuditDetails, error) {
	var details AuditDetails
	if err := json.Unmarshal([]byte(raw), &details); err != nil {
		return AuditDetails{}, fmt.Errorf("failed to parse audit details: %w", err)
	}
	return details, nil
}
