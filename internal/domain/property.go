package domain

import (
	"time"

	"github.com/google/uuid"
)

// Property — объект недвижимости, фигурирующий в сделках.
type Property struct {
	UUID           uuid.UUID `json:"uuid" db:"uuid"`
	TenantID       string    `json:"tenant_id" db:"tenant_id"`
	Address        string    `json:"address" db:"address"`
	Suburb         *string   `json:"suburb,omitempty" db:"suburb"`
	State          *string   `json:"state,omitempty" db:"state"`
	Postcode       *string   `json:"postcode,omitempty" db:"postcode"`
	TitleReference *string   `json:"title_reference,omitempty" db:"title_reference"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
