package asaas

import (
	"context"
	"strings"
	"testing"

	"revendapro/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoGateway_ReadsNeverFail(t *testing.T) {
	g := NewDemoGateway()
	ctx := context.Background()

	assert.Equal(t, float64(0), g.GetBalance(ctx))

	customers := g.ListCustomers(ctx, 0, 10, "any")
	assert.NotNil(t, customers.Data)
	assert.Empty(t, customers.Data)

	payments := g.ListPayments(ctx, 0, 10, "")
	assert.NotNil(t, payments.Data)
	assert.Empty(t, payments.Data)
}

func TestDemoGateway_ChargeLifecycle(t *testing.T) {
	g := NewDemoGateway()
	ctx := context.Background()

	created, err := g.CreatePayment(ctx, &CreatePaymentRequest{
		BillingType:  domain.BillingPix,
		Value:        150.75,
		CustomerName: "Maria Silva",
		CustomerCpf:  "12345678900",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(created.ID, "demo_pay_"))
	assert.True(t, strings.HasPrefix(created.CustomerID, "demo_cus_"))
	assert.Equal(t, "PENDING", created.Status)
	assert.NotEmpty(t, created.DueDate)

	fetched, err := g.GetPayment(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)

	page := g.ListPayments(ctx, 0, 10, "PENDING")
	assert.Equal(t, 1, page.TotalCount)

	cancelled, err := g.CancelPayment(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", cancelled.Status)

	// Second cancel is the same fault as an unknown id
	_, err = g.CancelPayment(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrPaymentNotFound)

	_, err = g.CancelPayment(ctx, "demo_pay_unknown")
	assert.ErrorIs(t, err, domain.ErrPaymentNotFound)
}

func TestDemoGateway_WritesValidate(t *testing.T) {
	g := NewDemoGateway()
	ctx := context.Background()

	_, err := g.CreatePayment(ctx, &CreatePaymentRequest{BillingType: "CHEQUE", Value: 10})
	assert.ErrorIs(t, err, domain.ErrInvalidBillingType)

	_, err = g.GetPayment(ctx, "")
	assert.ErrorIs(t, err, domain.ErrPaymentIDRequired)

	_, err = g.CancelPayment(ctx, "")
	assert.ErrorIs(t, err, domain.ErrPaymentIDRequired)
}

func TestDemoGateway_PaginatedWalkIsStable(t *testing.T) {
	g := NewDemoGateway()
	ctx := context.Background()

	created := make([]string, 0, 8)
	for i := 0; i < 8; i++ {
		p, err := g.CreatePayment(ctx, &CreatePaymentRequest{
			BillingType: domain.BillingPix,
			Value:       float64(10 * (i + 1)),
		})
		require.NoError(t, err)
		created = append(created, p.ID)
	}

	// Walking the pages must yield every charge exactly once, in
	// creation order, on every walk.
	for walk := 0; walk < 10; walk++ {
		seen := make([]string, 0, 8)
		for offset := 0; offset < 8; offset += 2 {
			page := g.ListPayments(ctx, offset, 2, "")
			require.Len(t, page.Data, 2)
			for _, p := range page.Data {
				seen = append(seen, p.ID)
			}
		}
		assert.Equal(t, created, seen)
	}
}

func TestDemoGateway_ListClampsNonPositiveLimit(t *testing.T) {
	g := NewDemoGateway()
	ctx := context.Background()

	for i := 0; i < demoDefaultLimit+5; i++ {
		_, err := g.CreatePayment(ctx, &CreatePaymentRequest{
			BillingType: domain.BillingBoleto,
			Value:       100,
		})
		require.NoError(t, err)
	}

	page := g.ListPayments(ctx, 0, 0, "")
	assert.Equal(t, demoDefaultLimit+5, page.TotalCount)
	assert.Len(t, page.Data, demoDefaultLimit)

	page = g.ListPayments(ctx, 0, -1, "")
	assert.Len(t, page.Data, demoDefaultLimit)
}

func TestDemoGateway_ListPagination(t *testing.T) {
	g := NewDemoGateway()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := g.CreatePayment(ctx, &CreatePaymentRequest{
			BillingType: domain.BillingBoleto,
			Value:       100,
		})
		require.NoError(t, err)
	}

	page := g.ListPayments(ctx, 0, 2, "")
	assert.Equal(t, 5, page.TotalCount)
	assert.Len(t, page.Data, 2)

	page = g.ListPayments(ctx, 4, 2, "")
	assert.Len(t, page.Data, 1)

	page = g.ListPayments(ctx, 10, 2, "")
	assert.Empty(t, page.Data)
}
