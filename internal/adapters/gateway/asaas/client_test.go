package asaas

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"revendapro/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ModeSelection(t *testing.T) {
	assert.Equal(t, ModeDemo, New("", "").GetMode())
	assert.Equal(t, ModeLive, New("key", "").GetMode())
}

func TestGetBalance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/finance/balance", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("access_token"))
		w.Write([]byte(`{"balance": 1234.56}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", srv.URL)
	assert.Equal(t, 1234.56, client.GetBalance(context.Background()))
}

func TestGetBalance_DegradesToZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient("test-key", srv.URL)
	assert.Equal(t, float64(0), client.GetBalance(context.Background()))
}

func TestGetBalance_TransportFailureDegradesToZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused

	client := NewClient("test-key", srv.URL)
	assert.Equal(t, float64(0), client.GetBalance(context.Background()))
}

func TestListCustomers_PassesFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "10", r.URL.Query().Get("offset"))
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		assert.Equal(t, "Maria", r.URL.Query().Get("name"))
		w.Write([]byte(`{"data":[{"id":"cus_1","name":"Maria Silva"}],"totalCount":1}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", srv.URL)
	page := client.ListCustomers(context.Background(), 10, 20, "Maria")
	require.Len(t, page.Data, 1)
	assert.Equal(t, "cus_1", page.Data[0].ID)
	assert.Equal(t, 1, page.TotalCount)
}

func TestListCustomers_DegradesToEmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient("test-key", srv.URL)
	page := client.ListCustomers(context.Background(), 0, 10, "")
	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
}

func TestListPayments_AttachesFeeEstimates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[
			{"id":"pay_1","billingType":"CREDIT_CARD","value":1000},
			{"id":"pay_2","billingType":"PIX","value":1000},
			{"id":"pay_3","billingType":"BOLETO","value":1000}
		],"totalCount":3}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", srv.URL)
	page := client.ListPayments(context.Background(), 0, 10, "")
	require.Len(t, page.Data, 3)
	assert.Equal(t, 15.0, page.Data[0].EstimatedFee)
	assert.Equal(t, 9.9, page.Data[1].EstimatedFee)
	assert.Equal(t, 1.99, page.Data[2].EstimatedFee)
}

func TestGetPayment_EmptyID(t *testing.T) {
	client := NewClient("test-key", "http://localhost:1")
	_, err := client.GetPayment(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrPaymentIDRequired)
}

func TestGetPayment_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient("test-key", srv.URL)
	_, err := client.GetPayment(context.Background(), "pay_missing")
	assert.ErrorIs(t, err, domain.ErrPaymentNotFound)
}

func TestCancelPayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/payments/pay_1", r.URL.Path)
		w.Write([]byte(`{"deleted": true}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", srv.URL)
	payment, err := client.CancelPayment(context.Background(), "pay_1")
	require.NoError(t, err)
	assert.Equal(t, "pay_1", payment.ID)
	assert.Equal(t, "CANCELLED", payment.Status)
}

func TestCancelPayment_NotFoundVsTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient("test-key", srv.URL)
	_, err := client.CancelPayment(context.Background(), "pay_gone")
	assert.ErrorIs(t, err, domain.ErrPaymentNotFound)

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer down.Close()

	client = NewClient("test-key", down.URL)
	_, err = client.CancelPayment(context.Background(), "pay_1")
	assert.ErrorIs(t, err, domain.ErrGatewayRequest)
	assert.NotErrorIs(t, err, domain.ErrPaymentNotFound)
}

func TestCreatePayment_InvalidBillingType(t *testing.T) {
	client := NewClient("test-key", "http://localhost:1")
	_, err := client.CreatePayment(context.Background(), &CreatePaymentRequest{
		BillingType: "CHEQUE",
		Value:       100,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidBillingType)
}

func TestCreatePayment_ReusesExistingCustomer(t *testing.T) {
	var createdCustomer bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/customers" && r.Method == http.MethodGet:
			assert.Equal(t, "12345678900", r.URL.Query().Get("cpfCnpj"))
			w.Write([]byte(`{"data":[{"id":"cus_known","cpfCnpj":"12345678900"}],"totalCount":1}`))
		case r.URL.Path == "/customers" && r.Method == http.MethodPost:
			createdCustomer = true
			w.Write([]byte(`{"id":"cus_new"}`))
		case r.URL.Path == "/payments" && r.Method == http.MethodPost:
			w.Write([]byte(`{"id":"pay_new","customer":"cus_known","billingType":"PIX","value":250.5,"status":"PENDING"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := NewClient("test-key", srv.URL)
	payment, err := client.CreatePayment(context.Background(), &CreatePaymentRequest{
		BillingType:  domain.BillingPix,
		Value:        250.5,
		DueDate:      "2026-09-10",
		CustomerName: "João Souza",
		CustomerCpf:  "12345678900",
	})
	require.NoError(t, err)
	assert.False(t, createdCustomer, "should reuse the customer found by document")
	assert.Equal(t, "pay_new", payment.ID)
	assert.Equal(t, "cus_known", payment.CustomerID)
}

func TestEstimateFee(t *testing.T) {
	tests := []struct {
		name        string
		billingType domain.BillingType
		value       float64
		want        float64
	}{
		{"credit card 1.5%", domain.BillingCreditCard, 1000, 15.0},
		{"pix 0.99%", domain.BillingPix, 1000, 9.9},
		{"boleto flat", domain.BillingBoleto, 1000, 1.99},
		{"boleto flat regardless of value", domain.BillingBoleto, 50, 1.99},
		{"rounds to cents", domain.BillingPix, 33.33, 0.33},
		{"unknown type", domain.BillingType("CHEQUE"), 1000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateFee(tt.billingType, tt.value))
		})
	}
}

func TestEstimateFee_HugeValueStaysSane(t *testing.T) {
	// Values beyond int64-cents range must still round to a sane
	// estimate instead of truncating to garbage.
	fee := EstimateFee(domain.BillingCreditCard, 1e19)
	assert.InDelta(t, 1.5e17, fee, 1e3)
	assert.Greater(t, fee, 0.0)
}
