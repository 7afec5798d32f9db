package asaas

import (
	"context"
	"fmt"
	"sync"
	"time"

	"revendapro/internal/core/domain"

	"github.com/google/uuid"
)

// DemoGateway is the strategy used when no API key is configured. It
// serves synthetic but well-formed records so the back office keeps
// working without a live credential. Every id carries a demo_ prefix so
// the data is never mistaken for real gateway records.
type DemoGateway struct {
	mu       sync.Mutex
	payments map[string]*Payment
	order    []string
}

// demoDefaultLimit caps a page when the caller passes no usable limit.
const demoDefaultLimit = 20

// NewDemoGateway creates the demo strategy.
func NewDemoGateway() *DemoGateway {
	return &DemoGateway{payments: make(map[string]*Payment)}
}

// GetMode returns ModeDemo.
func (g *DemoGateway) GetMode() Mode {
	return ModeDemo
}

// GetBalance always reports zero in demo mode.
func (g *DemoGateway) GetBalance(ctx context.Context) float64 {
	return 0
}

// ListCustomers returns an empty but valid page. The UI renders an
// empty table rather than crashing on a missing credential.
func (g *DemoGateway) ListCustomers(ctx context.Context, offset, limit int, name string) CustomerPage {
	return CustomerPage{Data: []Customer{}, TotalCount: 0}
}

// ListPayments returns the charges created in this process, paginated.
// Listing follows creation order so a paginated walk sees every charge
// exactly once.
func (g *DemoGateway) ListPayments(ctx context.Context, offset, limit int, status string) PaymentPage {
	g.mu.Lock()
	defer g.mu.Unlock()

	if limit <= 0 {
		limit = demoDefaultLimit
	}

	all := make([]Payment, 0, len(g.order))
	for _, id := range g.order {
		p := g.payments[id]
		if status != "" && p.Status != status {
			continue
		}
		all = append(all, *p)
	}

	page := PaymentPage{Data: []Payment{}, TotalCount: len(all)}
	if offset < 0 || offset >= len(all) {
		return page
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	page.Data = all[offset:end]
	return page
}

// GetPayment returns a previously created demo charge.
func (g *DemoGateway) GetPayment(ctx context.Context, id string) (*Payment, error) {
	if id == "" {
		return nil, domain.ErrPaymentIDRequired
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	payment, ok := g.payments[id]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	out := *payment
	return &out, nil
}

// CreatePayment fabricates a charge with a demo_ prefixed id.
func (g *DemoGateway) CreatePayment(ctx context.Context, req *CreatePaymentRequest) (*Payment, error) {
	if !req.BillingType.IsValid() {
		return nil, domain.ErrInvalidBillingType
	}

	dueDate := req.DueDate
	if dueDate == "" {
		dueDate = time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	}

	payment := &Payment{
		ID:           fmt.Sprintf("demo_pay_%s", uuid.New().String()[:8]),
		CustomerID:   fmt.Sprintf("demo_cus_%s", uuid.New().String()[:8]),
		BillingType:  req.BillingType,
		Value:        req.Value,
		Status:       "PENDING",
		DueDate:      dueDate,
		Description:  req.Description,
		EstimatedFee: EstimateFee(req.BillingType, req.Value),
	}

	g.mu.Lock()
	g.payments[payment.ID] = payment
	g.order = append(g.order, payment.ID)
	g.mu.Unlock()

	return payment, nil
}

// CancelPayment cancels a demo charge, surfacing the same domain fault
// as the live client for unknown or already-cancelled ids.
func (g *DemoGateway) CancelPayment(ctx context.Context, id string) (*Payment, error) {
	if id == "" {
		return nil, domain.ErrPaymentIDRequired
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	payment, ok := g.payments[id]
	if !ok || payment.Status == "CANCELLED" {
		return nil, domain.ErrPaymentNotFound
	}
	payment.Status = "CANCELLED"
	out := *payment
	return &out, nil
}
