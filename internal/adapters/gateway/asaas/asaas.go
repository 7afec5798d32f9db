package asaas

import (
	"context"
	"math"

	"revendapro/internal/core/domain"
)

// Mode selects the gateway strategy at construction time.
type Mode string

const (
	ModeLive Mode = "LIVE"
	ModeDemo Mode = "DEMO"
)

// Customer mirrors a customer record held by the payment gateway. The
// application keeps no authoritative copy; records are fetched on demand.
type Customer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	CpfCnpj string `json:"cpfCnpj,omitempty"`
}

// Payment mirrors a charge record held by the payment gateway.
type Payment struct {
	ID           string             `json:"id"`
	CustomerID   string             `json:"customer"`
	BillingType  domain.BillingType `json:"billingType"`
	Value        float64            `json:"value"`
	NetValue     float64            `json:"netValue,omitempty"`
	Status       string             `json:"status"`
	DueDate      string             `json:"dueDate"`
	Description  string             `json:"description,omitempty"`
	InvoiceURL   string             `json:"invoiceUrl,omitempty"`
	EstimatedFee float64            `json:"estimatedFee"`
}

// CustomerPage is one page of gateway customers.
type CustomerPage struct {
	Data       []Customer `json:"data"`
	TotalCount int        `json:"totalCount"`
}

// PaymentPage is one page of gateway payments.
type PaymentPage struct {
	Data       []Payment `json:"data"`
	TotalCount int       `json:"totalCount"`
}

// CardData carries credit card fields for CREDIT_CARD charges.
type CardData struct {
	HolderName  string `json:"holderName"`
	Number      string `json:"number"`
	ExpiryMonth string `json:"expiryMonth"`
	ExpiryYear  string `json:"expiryYear"`
	Ccv         string `json:"ccv"`
}

// AddressData carries billing address fields for BOLETO charges.
type AddressData struct {
	PostalCode    string `json:"postalCode"`
	AddressNumber string `json:"addressNumber"`
	Complement    string `json:"complement,omitempty"`
}

// CreatePaymentRequest is the input for CreatePayment.
type CreatePaymentRequest struct {
	BillingType   domain.BillingType `json:"billingType"`
	Value         float64            `json:"value"`
	DueDate       string             `json:"dueDate"`
	Description   string             `json:"description,omitempty"`
	CustomerName  string             `json:"customerName"`
	CustomerCpf   string             `json:"customerCpf"`
	CustomerEmail string             `json:"customerEmail,omitempty"`
	CustomerPhone string             `json:"customerPhone,omitempty"`
	Card          *CardData          `json:"card,omitempty"`
	Address       *AddressData       `json:"address,omitempty"`
}

// Gateway is the payment processor façade. Reads degrade to empty/zero
// results on transport failure; writes fail loudly.
type Gateway interface {
	GetMode() Mode
	GetBalance(ctx context.Context) float64
	ListCustomers(ctx context.Context, offset, limit int, name string) CustomerPage
	ListPayments(ctx context.Context, offset, limit int, status string) PaymentPage
	GetPayment(ctx context.Context, id string) (*Payment, error)
	CreatePayment(ctx context.Context, req *CreatePaymentRequest) (*Payment, error)
	CancelPayment(ctx context.Context, id string) (*Payment, error)
}

// New resolves the strategy once: a live client when an API key is
// configured, the demo gateway otherwise. The rest of the system never
// branches on the mode again.
func New(apiKey, baseURL string) Gateway {
	if apiKey == "" {
		return NewDemoGateway()
	}
	return NewClient(apiKey, baseURL)
}

// Estimated gateway fees per billing method. Informational only, never
// used for reconciliation.
const (
	creditCardFeeRate = 0.015
	pixFeeRate        = 0.0099
	boletoFlatFee     = 1.99
)

// EstimateFee returns the display-only fee estimate for a charge.
func EstimateFee(billingType domain.BillingType, value float64) float64 {
	switch billingType {
	case domain.BillingCreditCard:
		return round2(value * creditCardFeeRate)
	case domain.BillingPix:
		return round2(value * pixFeeRate)
	case domain.BillingBoleto:
		return boletoFlatFee
	}
	return 0
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
