package services

import (
	"context"
	"testing"

	"revendapro/internal/adapters/gateway/asaas"
	"revendapro/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingGateway wraps the demo gateway and counts upstream reads so
// the tests can observe cache hits.
type countingGateway struct {
	*asaas.DemoGateway
	listCalls    int
	balanceCalls int
}

func (g *countingGateway) ListPayments(ctx context.Context, offset, limit int, status string) asaas.PaymentPage {
	g.listCalls++
	return g.DemoGateway.ListPayments(ctx, offset, limit, status)
}

func (g *countingGateway) GetBalance(ctx context.Context) float64 {
	g.balanceCalls++
	return g.DemoGateway.GetBalance(ctx)
}

func TestPaymentService_ListingIsCached(t *testing.T) {
	gw := &countingGateway{DemoGateway: asaas.NewDemoGateway()}
	svc := NewPaymentService(gw)
	ctx := context.Background()

	svc.ListPayments(ctx, 0, 10, "")
	svc.ListPayments(ctx, 0, 10, "")
	assert.Equal(t, 1, gw.listCalls, "second identical read should hit the cache")

	// A different query shape is a different cache key
	svc.ListPayments(ctx, 10, 10, "")
	assert.Equal(t, 2, gw.listCalls)

	svc.GetBalance(ctx)
	svc.GetBalance(ctx)
	assert.Equal(t, 1, gw.balanceCalls)
}

func TestPaymentService_MutationInvalidatesCache(t *testing.T) {
	gw := &countingGateway{DemoGateway: asaas.NewDemoGateway()}
	svc := NewPaymentService(gw)
	ctx := context.Background()

	page := svc.ListPayments(ctx, 0, 10, "")
	assert.Equal(t, 0, page.TotalCount)

	created, err := svc.CreatePayment(ctx, &asaas.CreatePaymentRequest{
		BillingType:  domain.BillingPix,
		Value:        99.9,
		CustomerName: "Maria Silva",
		CustomerCpf:  "12345678900",
	})
	require.NoError(t, err)

	// The post-mutation read must bypass the stale cached page
	page = svc.ListPayments(ctx, 0, 10, "")
	assert.Equal(t, 1, page.TotalCount)
	assert.Equal(t, 2, gw.listCalls)

	_, err = svc.CancelPayment(ctx, created.ID)
	require.NoError(t, err)

	page = svc.ListPayments(ctx, 0, 10, "PENDING")
	assert.Equal(t, 0, page.TotalCount)
}

func TestPaymentService_ValidatesBeforeGateway(t *testing.T) {
	svc := NewPaymentService(asaas.NewDemoGateway())
	ctx := context.Background()

	_, err := svc.CreatePayment(ctx, &asaas.CreatePaymentRequest{BillingType: "CHEQUE", Value: 10, CustomerName: "x", CustomerCpf: "1"})
	assert.ErrorIs(t, err, domain.ErrInvalidBillingType)

	_, err = svc.CreatePayment(ctx, &asaas.CreatePaymentRequest{BillingType: domain.BillingPix, Value: 0, CustomerName: "x", CustomerCpf: "1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.CancelPayment(ctx, "")
	assert.ErrorIs(t, err, domain.ErrPaymentIDRequired)
}

func TestPaymentService_IsDemo(t *testing.T) {
	assert.True(t, NewPaymentService(asaas.NewDemoGateway()).IsDemo())
}
