package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFieldLabel(t *testing.T) {
	tests := []struct {
		field string
		want  string
	}{
		{"type", "Transaction Type"},
		{"date", "Transaction Date"},
		{"settlementDate", "Settlement Date"},
		{"amount", "Amount"},
		{"status", "Status"},
		{"propertyId", "Property"},
		{"buyerId", "Buyer"},
		{"sellerId", "Seller"},
		{"unknownField", "unknownField"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FieldLabel(tt.field))
	}
}

func TestFormatFieldValue_Nil(t *testing.T) {
	assert.Equal(t, "—", FormatFieldValue("amount", nil))
	assert.Equal(t, "—", FormatFieldValue("status", nil))
}

func TestFormatFieldValue_Amount(t *testing.T) {
	assert.Equal(t, "$525,000.00", FormatFieldValue("amount", 525000.0))
	assert.Equal(t, "$1,250.50", FormatFieldValue("amount", 1250.5))
	assert.Equal(t, "$100.00", FormatFieldValue("amount", 100))
}

func TestFormatFieldValue_Dates(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "10 Mar 2026", FormatFieldValue("date", date))

	// После перечитывания из JSON даты приходят строками RFC3339.
	assert.Equal(t, "10 Mar 2026", FormatFieldValue("settlementDate", "2026-03-10T00:00:00Z"))

	// Непригодная строка отображается как есть.
	assert.Equal(t, "not-a-date", FormatFieldValue("date", "not-a-date"))
}

func TestFormatFieldValue_Default(t *testing.T) {
	assert.Equal(t, "Pending", FormatFieldValue("status", "Pending"))
	assert.Equal(t, "PURCHASE", FormatFieldValue("type", "PURCHASE"))
}
