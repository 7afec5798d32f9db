package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNetProfit_WorkedExample(t *testing.T) {
	// asset 100000.00, accessories 5%, fee 200.00, expected return
	// 20000.00, agent 1000.00, seller 500.00
	in := ValuationInput{
		AssetValue:         10000000,
		AccessoriesRateBps: 500,
		FeeAmount:          20000,
		ExpectedReturn:     2000000,
		AgentCommission:    100000,
		SellerCommission:   50000,
	}

	assert.Equal(t, int64(510000), ILAAmount(in.ExpectedReturn), "ila = 5100.00")
	assert.Equal(t, int64(500000), AccessoriesValue(in.AssetValue, in.AccessoriesRateBps), "accessories = 5000.00")
	assert.Equal(t, int64(1860000), NetProfit(in), "net profit = 18600.00")
}

func TestNetProfit_ZeroInputs(t *testing.T) {
	// missing values contribute zero, the function never fails
	assert.Equal(t, int64(0), NetProfit(ValuationInput{}))

	in := ValuationInput{ExpectedReturn: 100000}
	assert.Equal(t, int64(100000-25500), NetProfit(in))
}

func TestNetProfit_Deterministic(t *testing.T) {
	in := ValuationInput{
		AssetValue:         5250000,
		AccessoriesRateBps: 250,
		FeeAmount:          9900,
		ExpectedReturn:     731500,
		AgentCommission:    36575,
		SellerCommission:   21945,
	}

	first := NetProfit(in)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, NetProfit(in))
	}
}

func TestCommissionAmount(t *testing.T) {
	tests := []struct {
		name           string
		expectedReturn int64
		rateBps        int64
		want           int64
	}{
		{"five percent", 2000000, 500, 100000},
		{"zero rate", 2000000, 0, 0},
		{"zero base", 0, 500, 0},
		{"rounds half up", 101, 50, 1}, // 101 * 0.5% = 0.505 -> 1
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CommissionAmount(tt.expectedReturn, tt.rateBps))
		})
	}
}

func TestReleasedAmount(t *testing.T) {
	assert.Equal(t, int64(9980000), ReleasedAmount(10000000, 20000))
	assert.Equal(t, int64(0), ReleasedAmount(0, 0))
}

func TestCompute(t *testing.T) {
	in := ValuationInput{
		AssetValue:         10000000,
		AccessoriesRateBps: 500,
		FeeAmount:          20000,
		ExpectedReturn:     2000000,
		AgentCommission:    100000,
		SellerCommission:   50000,
	}

	v := Compute(in)
	assert.Equal(t, int64(510000), v.ILAAmount)
	assert.Equal(t, int64(500000), v.AccessoriesValue)
	assert.Equal(t, int64(1860000), v.NetProfit)
	assert.Equal(t, int64(9980000), v.ReleasedAmount)
}
