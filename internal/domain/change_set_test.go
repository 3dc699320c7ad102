package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func float(v float64) *float64 { return &v }

func str(v string) *string { return &v }

func day(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return &parsed
}

func TestComputeChanges_IdenticalSnapshots(t *testing.T) {
	snapshot := MatterSnapshot{
		Type:       "PURCHASE",
		Date:       day(t, "2026-03-10"),
		Amount:     float(500000),
		Status:     "Pending",
		PropertyID: str("prop-1"),
	}

	changes := ComputeChanges(snapshot, snapshot)
	assert.Empty(t, changes)
}

func TestComputeChanges_AmountOnly(t *testing.T) {
	previous := MatterSnapshot{Type: "PURCHASE", Amount: float(500000), Status: "Pending"}
	next := MatterSnapshot{Type: "PURCHASE", Amount: float(525000), Status: "Pending"}

	changes := ComputeChanges(previous, next)

	require.Len(t, changes, 1)
	assert.Equal(t, FieldChange{From: 500000.0, To: 525000.0}, changes["amount"])
}

func TestComputeChanges_StatusScenario(t *testing.T) {
	previous := MatterSnapshot{Status: "Pending", Amount: float(100)}
	next := MatterSnapshot{Status: "Completed", Amount: float(100)}

	changes := ComputeChanges(previous, next)

	require.Len(t, changes, 1)
	assert.Equal(t, FieldChange{From: "Pending", To: "Completed"}, changes["status"])
}

func TestComputeChanges_NilToValue(t *testing.T) {
	previous := MatterSnapshot{}
	next := MatterSnapshot{
		SettlementDate: day(t, "2026-04-01"),
		BuyerID:        str("buyer-1"),
	}

	changes := ComputeChanges(previous, next)

	require.Len(t, changes, 2)
	assert.Nil(t, changes["settlementDate"].From)
	assert.Equal(t, *day(t, "2026-04-01"), changes["settlementDate"].To)
	assert.Nil(t, changes["buyerId"].From)
	assert.Equal(t, "buyer-1", changes["buyerId"].To)
}

func TestComputeChanges_OnlyTrackableFieldsReported(t *testing.T) {
	previous := MatterSnapshot{Type: "SALE", Status: "Pending"}
	next := MatterSnapshot{Type: "PURCHASE", Status: "Contract"}

	changes := ComputeChanges(previous, next)

	for field := range changes {
		assert.Contains(t, TrackableFields, field)
	}
	require.Len(t, changes, 2)
}

func TestMatterSnapshot_DateNormalization(t *testing.T) {
	// Одна и та же дата в разных зонах и с разным временем суток не должна
	// регистрироваться как изменение.
	melbourne, err := time.LoadLocation("Australia/Melbourne")
	require.NoError(t, err)

	utc := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	// 20:30 в Мельбурне (+11) = 09:30 UTC того же дня
	local := time.Date(2026, 3, 10, 20, 30, 0, 0, melbourne)

	before := Matter{Type: MatterPurchase, Status: MatterStatusPending, Date: &utc}
	after := Matter{Type: MatterPurchase, Status: MatterStatusPending, Date: &local}

	changes := ComputeChanges(before.Snapshot(), after.Snapshot())
	assert.Empty(t, changes)
}

func TestAuditDetails_RoundTrip(t *testing.T) {
	details := AuditDetails{
		Changes: ChangeSet{
			"status": {From: "Pending", To: "Completed"},
		},
	}

	raw, err := details.Encode()
	require.NoError(t, err)

	parsed, err := ParseAuditDetails(raw)
	require.NoError(t, err)
	require.Contains(t, parsed.Changes, "status")
	assert.Equal(t, "Pending", parsed.Changes["status"].From)
	assert.Equal(t, "Completed", parsed.Changes["status"].To)
}

func TestParseAuditDetails_Malformed(t *testing.T) {
	_, err := ParseAuditDetails("{not json")
	assert.Error(t, err)
}
