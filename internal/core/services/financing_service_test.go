package services

import (
	"testing"

	"revendapro/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
)

func TestFinancingService_ApplyValuation(t *testing.T) {
	s := &FinancingService{}

	proposal := &models.FinancingProposal{
		AssetValue:         10000000,
		AccessoriesRateBps: 500,
		FeeAmount:          20000,
		ExpectedReturn:     2000000,
		AgentCommission:    100000,
		SellerCommission:   50000,
	}

	changed := s.applyValuation(proposal)
	assert.True(t, changed, "first valuation fills the derived columns")
	assert.Equal(t, int64(510000), proposal.ILAAmount)
	assert.Equal(t, int64(9980000), proposal.ReleasedAmount)
	assert.Equal(t, int64(1860000), proposal.NetProfit)

	changed = s.applyValuation(proposal)
	assert.False(t, changed, "unchanged inputs must not report a recompute")

	proposal.ExpectedReturn = 2500000
	changed = s.applyValuation(proposal)
	assert.True(t, changed, "moving an input moves the valuation")
	assert.Equal(t, int64(637500), proposal.ILAAmount)
}
