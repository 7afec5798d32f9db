package asaas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"revendapro/internal/core/domain"
)

// DefaultBaseURL is the production payment API endpoint.
const DefaultBaseURL = "https://api.asaas.com/v3"

const requestTimeout = 15 * time.Second

// Client is the live gateway strategy. It holds only fixed configuration
// and is safe to share across concurrent callers.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a live payment gateway client.
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// GetMode returns ModeLive.
func (c *Client) GetMode() Mode {
	return ModeLive
}

// doRequest performs one gateway call and returns the raw body.
// Non-2xx responses are returned as errors carrying the status code.
func (c *Client) doRequest(ctx context.Context, method, path string, payload interface{}) ([]byte, int, error) {
	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, err
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("access_token", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", domain.ErrGatewayRequest, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: %v", domain.ErrGatewayRequest, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return respBody, resp.StatusCode, fmt.Errorf("%w: status %d: %s",
			domain.ErrGatewayRequest, resp.StatusCode, string(respBody))
	}

	return respBody, resp.StatusCode, nil
}

// GetBalance returns the account balance. Any failure degrades to zero
// so the dashboard never breaks on a gateway hiccup.
func (c *Client) GetBalance(ctx context.Context) float64 {
	body, _, err := c.doRequest(ctx, http.MethodGet, "/finance/balance", nil)
	if err != nil {
		log.Printf("⚠️ Gateway balance unavailable: %v", err)
		return 0
	}

	var result struct {
		Balance float64 `json:"balance"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		log.Printf("⚠️ Gateway balance parse error: %v", err)
		return 0
	}
	return result.Balance
}

// ListCustomers returns a page of gateway customers, optionally filtered
// by name keyword. Failures degrade to an empty page.
func (c *Client) ListCustomers(ctx context.Context, offset, limit int, name string) CustomerPage {
	params := url.Values{}
	params.Set("offset", strconv.Itoa(offset))
	params.Set("limit", strconv.Itoa(limit))
	if name != "" {
		params.Set("name", name)
	}

	body, _, err := c.doRequest(ctx, http.MethodGet, "/customers?"+params.Encode(), nil)
	if err != nil {
		log.Printf("⚠️ Gateway customer listing unavailable: %v", err)
		return CustomerPage{Data: []Customer{}}
	}

	var page CustomerPage
	if err := json.Unmarshal(body, &page); err != nil {
		log.Printf("⚠️ Gateway customer listing parse error: %v", err)
		return CustomerPage{Data: []Customer{}}
	}
	if page.Data == nil {
		page.Data = []Customer{}
	}
	return page
}

// ListPayments returns a page of gateway payments, optionally filtered
// by status. Failures degrade to an empty page.
func (c *Client) ListPayments(ctx context.Context, offset, limit int, status string) PaymentPage {
	params := url.Values{}
	params.Set("offset", strconv.Itoa(offset))
	params.Set("limit", strconv.Itoa(limit))
	if status != "" {
		params.Set("status", status)
	}

	body, _, err := c.doRequest(ctx, http.MethodGet, "/payments?"+params.Encode(), nil)
	if err != nil {
		log.Printf("⚠️ Gateway payment listing unavailable: %v", err)
		return PaymentPage{Data: []Payment{}}
	}

	var page PaymentPage
	if err := json.Unmarshal(body, &page); err != nil {
		log.Printf("⚠️ Gateway payment listing parse error: %v", err)
		return PaymentPage{Data: []Payment{}}
	}
	if page.Data == nil {
		page.Data = []Payment{}
	}
	for i := range page.Data {
		page.Data[i].EstimatedFee = EstimateFee(page.Data[i].BillingType, page.Data[i].Value)
	}
	return page
}

// GetPayment fetches a single payment. Unlike the listings it fails
// loudly: there is no sensible empty fallback for a detail view.
func (c *Client) GetPayment(ctx context.Context, id string) (*Payment, error) {
	if id == "" {
		return nil, domain.ErrPaymentIDRequired
	}

	body, statusCode, err := c.doRequest(ctx, http.MethodGet, "/payments/"+url.PathEscape(id), nil)
	if err != nil {
		if statusCode == http.StatusNotFound {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}

	var payment Payment
	if err := json.Unmarshal(body, &payment); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGatewayRequest, err)
	}
	payment.EstimatedFee = EstimateFee(payment.BillingType, payment.Value)
	return &payment, nil
}

// CreatePayment registers a charge. The customer is resolved by
// cpf/cnpj first (the gateway keys payments by its own customer id).
func (c *Client) CreatePayment(ctx context.Context, req *CreatePaymentRequest) (*Payment, error) {
	if !req.BillingType.IsValid() {
		return nil, domain.ErrInvalidBillingType
	}

	customerID, err := c.ensureCustomer(ctx, req)
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"customer":    customerID,
		"billingType": req.BillingType,
		"value":       req.Value,
		"dueDate":     req.DueDate,
		"description": req.Description,
	}
	switch req.BillingType {
	case domain.BillingCreditCard:
		if req.Card != nil {
			payload["creditCard"] = req.Card
		}
	case domain.BillingBoleto:
		if req.Address != nil {
			payload["postalCode"] = req.Address.PostalCode
			payload["addressNumber"] = req.Address.AddressNumber
		}
	case domain.BillingPix:
		// nothing extra, the gateway issues the QR code itself
	}

	body, _, err := c.doRequest(ctx, http.MethodPost, "/payments", payload)
	if err != nil {
		return nil, err
	}

	var payment Payment
	if err := json.Unmarshal(body, &payment); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGatewayRequest, err)
	}
	payment.EstimatedFee = EstimateFee(req.BillingType, req.Value)
	return &payment, nil
}

// ensureCustomer finds the gateway customer by document, creating it
// when absent. The mapping is by name/document, never a stored FK.
func (c *Client) ensureCustomer(ctx context.Context, req *CreatePaymentRequest) (string, error) {
	params := url.Values{}
	params.Set("cpfCnpj", req.CustomerCpf)

	body, _, err := c.doRequest(ctx, http.MethodGet, "/customers?"+params.Encode(), nil)
	if err == nil {
		var page CustomerPage
		if jsonErr := json.Unmarshal(body, &page); jsonErr == nil && len(page.Data) > 0 {
			return page.Data[0].ID, nil
		}
	}

	payload := map[string]interface{}{
		"name":    req.CustomerName,
		"cpfCnpj": req.CustomerCpf,
	}
	if req.CustomerEmail != "" {
		payload["email"] = req.CustomerEmail
	}
	if req.CustomerPhone != "" {
		payload["mobilePhone"] = req.CustomerPhone
	}

	body, _, err = c.doRequest(ctx, http.MethodPost, "/customers", payload)
	if err != nil {
		return "", err
	}

	var customer Customer
	if err := json.Unmarshal(body, &customer); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGatewayRequest, err)
	}
	return customer.ID, nil
}

// CancelPayment cancels a charge. A gateway 404 (unknown or already
// cancelled id) surfaces as ErrPaymentNotFound so the operator sees a
// clear message instead of a generic transport error.
func (c *Client) CancelPayment(ctx context.Context, id string) (*Payment, error) {
	if id == "" {
		return nil, domain.ErrPaymentIDRequired
	}

	_, statusCode, err := c.doRequest(ctx, http.MethodDelete, "/payments/"+url.PathEscape(id), nil)
	if err != nil {
		if statusCode == http.StatusNotFound {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}

	return &Payment{ID: id, Status: "CANCELLED"}, nil
}
