package finance

// All monetary values are int64 centavos. Percentages are basis points
// (1% = 100 bps) so the arithmetic stays exact; float formatting only
// happens at the presentation layer.

// ILARateBps is the fixed regulatory deduction applied to the expected
// return of every financing proposal (25.5%).
const ILARateBps int64 = 2550

const bpsScale int64 = 10000

// ValuationInput carries the stored inputs of a financing proposal.
// Zero values are valid: a missing amount contributes nothing.
type ValuationInput struct {
	AssetValue         int64 // vehicle value in centavos
	AccessoriesRateBps int64 // accessories percentage over asset value
	FeeAmount          int64
	ExpectedReturn     int64
	AgentCommission    int64
	SellerCommission   int64
}

// Valuation is the derived money of a proposal. Every field is
// recomputable from ValuationInput alone.
type Valuation struct {
	ILAAmount        int64
	AccessoriesValue int64
	NetProfit        int64
	ReleasedAmount   int64
}

// applyBps multiplies amount by a basis-point rate, rounding half away
// from zero.
func applyBps(amount, rateBps int64) int64 {
	product := amount * rateBps
	if product >= 0 {
		return (product + bpsScale/2) / bpsScale
	}
	return (product - bpsScale/2) / bpsScale
}

// ILAAmount returns the fixed deduction over the expected return.
func ILAAmount(expectedReturn int64) int64 {
	return applyBps(expectedReturn, ILARateBps)
}

// AccessoriesValue returns the accessories share of the asset value.
func AccessoriesValue(assetValue, accessoriesRateBps int64) int64 {
	return applyBps(assetValue, accessoriesRateBps)
}

// CommissionAmount returns a commission derived from a personnel
// commission rate applied to the expected return.
func CommissionAmount(expectedReturn, rateBps int64) int64 {
	return applyBps(expectedReturn, rateBps)
}

// NetProfit computes the proposal profit:
//
//	expectedReturn - ILA + accessories + fee - agentCommission - sellerCommission
func NetProfit(in ValuationInput) int64 {
	return in.ExpectedReturn -
		ILAAmount(in.ExpectedReturn) +
		AccessoriesValue(in.AssetValue, in.AccessoriesRateBps) +
		in.FeeAmount -
		in.AgentCommission -
		in.SellerCommission
}

// ReleasedAmount is what the bank wires to the dealership after
// deducting its fee from the asset value.
func ReleasedAmount(assetValue, feeAmount int64) int64 {
	return assetValue - feeAmount
}

// Compute derives the full valuation for a proposal.
func Compute(in ValuationInput) Valuation {
	return Valuation{
		ILAAmount:        ILAAmount(in.ExpectedReturn),
		AccessoriesValue: AccessoriesValue(in.AssetValue, in.AccessoriesRateBps),
		NetProfit:        NetProfit(in),
		ReleasedAmount:   ReleasedAmount(in.AssetValue, in.FeeAmount),
	}
}
