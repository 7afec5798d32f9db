package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"revendapro/internal/adapters/gateway/asaas"
	"revendapro/internal/core/domain"
)

// cacheTTL bounds how stale a cached gateway read may get even without
// a local mutation invalidating it (another operator may create charges
// through the gateway's own panel).
const cacheTTL = 60 * time.Second

type cacheEntry struct {
	value     interface{}
	fetchedAt time.Time
}

// PaymentService fronts the payment gateway. Listing and balance reads
// are cached per query shape; every successful mutation invalidates the
// whole cache so the next read reflects it.
type PaymentService struct {
	gateway asaas.Gateway

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// NewPaymentService creates a new payment service
func NewPaymentService(gateway asaas.Gateway) *PaymentService {
	return &PaymentService{
		gateway: gateway,
		cache:   make(map[string]cacheEntry),
	}
}

// IsDemo reports whether the gateway is running without credentials
func (s *PaymentService) IsDemo() bool {
	return s.gateway.GetMode() == asaas.ModeDemo
}

// GetBalance returns the gateway account balance
func (s *PaymentService) GetBalance(ctx context.Context) float64 {
	if v, ok := s.cached("balance"); ok {
		return v.(float64)
	}
	balance := s.gateway.GetBalance(ctx)
	s.store("balance", balance)
	return balance
}

// ListCustomers returns a page of gateway customers
func (s *PaymentService) ListCustomers(ctx context.Context, offset, limit int, name string) asaas.CustomerPage {
	key := fmt.Sprintf("customers:%d:%d:%s", offset, limit, name)
	if v, ok := s.cached(key); ok {
		return v.(asaas.CustomerPage)
	}
	page := s.gateway.ListCustomers(ctx, offset, limit, name)
	s.store(key, page)
	return page
}

// ListPayments returns a page of gateway charges
func (s *PaymentService) ListPayments(ctx context.Context, offset, limit int, status string) asaas.PaymentPage {
	key := fmt.Sprintf("payments:%d:%d:%s", offset, limit, status)
	if v, ok := s.cached(key); ok {
		return v.(asaas.PaymentPage)
	}
	page := s.gateway.ListPayments(ctx, offset, limit, status)
	s.store(key, page)
	return page
}

// GetPayment returns one charge by gateway id. Never cached: a single
// charge read is what operators use to confirm state after an action.
func (s *PaymentService) GetPayment(ctx context.Context, id string) (*asaas.Payment, error) {
	return s.gateway.GetPayment(ctx, id)
}

// CreatePayment creates a charge and invalidates cached reads
func (s *PaymentService) CreatePayment(ctx context.Context, req *asaas.CreatePaymentRequest) (*asaas.Payment, error) {
	if !req.BillingType.IsValid() {
		return nil, domain.ErrInvalidBillingType
	}
	if req.Value <= 0 || req.CustomerName == "" || req.CustomerCpf == "" {
		return nil, domain.ErrInvalidInput
	}

	payment, err := s.gateway.CreatePayment(ctx, req)
	if err != nil {
		return nil, err
	}

	s.invalidate()
	log.Printf("✅ Payment %s created (%s, R$ %.2f)", payment.ID, payment.BillingType, payment.Value)
	return payment, nil
}

// CancelPayment cancels a charge and invalidates cached reads
func (s *PaymentService) CancelPayment(ctx context.Context, id string) (*asaas.Payment, error) {
	if id == "" {
		return nil, domain.ErrPaymentIDRequired
	}

	payment, err := s.gateway.CancelPayment(ctx, id)
	if err != nil {
		return nil, err
	}

	s.invalidate()
	log.Printf("✅ Payment %s cancelled", id)
	return payment, nil
}

func (s *PaymentService) cached(key string) (interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.cache[key]
	if !ok || time.Since(entry.fetchedAt) > cacheTTL {
		return nil, false
	}
	return entry.value, true
}

func (s *PaymentService) store(key string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[key] = cacheEntry{value: value, fetchedAt: time.Now()}
}

func (s *PaymentService) invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]cacheEntry)
}
