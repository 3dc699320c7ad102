package domain

import (
	"time"

	"github.com/google/uuid"
)

type MatterType string

const (
	MatterPurchase MatterType = "PURCHASE"
	MatterSale     MatterType = "SALE"
)

type MatterStatus string

const (
	MatterStatusPending    MatterStatus = "Pending"
	MatterStatusContract   MatterStatus = "Contract"
	MatterStatusSettlement MatterStatus = "Settlement"
	MatterStatusCompleted  MatterStatus = "Completed"
	MatterStatusCancelled  MatterStatus = "Cancelled"
)

// Matter — сделка по купле-продаже недвижимости.
type Matter struct {
	UUID           uuid.UUID    `json:"uuid" db:"uuid"`
	TenantID       string       `json:"tenant_id" db:"tenant_id"`
	Reference      string       `json:"reference" db:"reference"`
	Type           MatterType   `json:"type" db:"type"`
	Date           *time.Time   `json:"date,omitempty" db:"date"`
	SettlementDate *time.Time   `json:"settlement_date,omitempty" db:"settlement_date"`
	Amount         *float64     `json:"amount,omitempty" db:"amount"`
	Status         MatterStatus `json:"status" db:"status"`
	PropertyID     *uuid.UUID   `json:"property_id,omitempty" db:"property_id"`
	BuyerID        *uuid.UUID   `json:"buyer_id,omitempty" db:"buyer_id"`
	SellerID       *uuid.UUID   `json:"seller_id,omitempty" db:"seller_id"`
	Archived       bool         `json:"archived" db:"archived"`
	CreatedBy      string       `json:"created_by" db:"created_by"`
	CreatedAt      time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at" db:"updated_at"`
}

// Snapshot строит снимок отслеживаемых полей для сравнения. Даты здесь же
// нормализуются к началу дня UTC: две семантически равные даты в разных
// представлениях не должны регистрироваться как изменение.
func (m *Matter) Snapshot() MatterSnapshot {
	return MatterSnapshot{
		Type:           string(m.Type),
		Date:           normalizeDate(m.Date),
		SettlementDate: normalizeDate(m.SettlementDate),
		Amount:         m.Amount,
		Status:         string(m.Status),
		PropertyID:     uuidString(m.PropertyID),
		BuyerID:        uuidString(m.BuyerID),
		SellerID:       uuidString(m.SellerID),
	}
}

func normalizeDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC().Truncate(24 * time.Hour)
	return &u
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
