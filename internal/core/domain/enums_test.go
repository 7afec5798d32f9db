package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFinancingStatus(t *testing.T) {
	tests := []struct {
		raw     string
		want    FinancingStatus
		wantErr bool
	}{
		{"ANALYSIS", FinancingAnalysis, false},
		{"APPROVED", FinancingApproved, false},
		{"PAID", FinancingPaid, false},
		{"REJECTED", FinancingRejected, false},
		{"approved", "", true},
		{"UNKNOWN", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseFinancingStatus(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFinancingStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFinancingStatus_IsTerminal(t *testing.T) {
	assert.False(t, FinancingAnalysis.IsTerminal())
	assert.False(t, FinancingApproved.IsTerminal())
	assert.True(t, FinancingPaid.IsTerminal())
	assert.True(t, FinancingRejected.IsTerminal())
}

func TestFinancingStatus_Label(t *testing.T) {
	for _, status := range FinancingStatuses {
		assert.NotEmpty(t, status.Label())
	}
}

func TestParseBillingType(t *testing.T) {
	for _, raw := range []string{"BOLETO", "CREDIT_CARD", "PIX"} {
		got, err := ParseBillingType(raw)
		require.NoError(t, err)
		assert.True(t, got.IsValid())
	}

	_, err := ParseBillingType("CHEQUE")
	assert.ErrorIs(t, err, ErrInvalidBillingType)
}

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RoleSeller.IsValid())
	assert.True(t, RoleManager.IsValid())
	assert.True(t, RoleAdmin.IsValid())
	assert.False(t, Role("ROOT").IsValid())
}

func TestSessionStatus_IsValid(t *testing.T) {
	assert.True(t, SessionConnected.IsValid())
	assert.False(t, SessionStatus("PAIRING").IsValid())
}
