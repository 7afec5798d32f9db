package handlers

import (
	"errors"

	"revendapro/internal/adapters/gateway/asaas"
	"revendapro/internal/core/domain"
	"revendapro/internal/core/services"
	"revendapro/internal/pkg/pagination"
	"revendapro/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PaymentHandler handles payment gateway endpoints. Read responses are
// flagged as demo when the gateway runs without credentials.
type PaymentHandler struct {
	paymentService *services.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Balance godoc
// @Summary Gateway account balance
// @Tags payments
// @Produce json
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /payments/balance [get]
func (h *PaymentHandler) Balance(c *fiber.Ctx) error {
	balance := h.paymentService.GetBalance(c.Context())
	data := fiber.Map{"balance": balance}
	if h.paymentService.IsDemo() {
		return response.SuccessDemo(c, "gateway balance", data)
	}
	return response.Success(c, "gateway balance", data)
}

// ListCustomers godoc
// @Summary List gateway customers
// @Tags payments
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param name query string false "Name filter"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /payments/customers [get]
func (h *PaymentHandler) ListCustomers(c *fiber.Ctx) error {
	params := pagination.FromQuery(c)
	page := h.paymentService.ListCustomers(c.Context(), params.Offset, params.Limit, c.Query("name"))
	if h.paymentService.IsDemo() {
		return response.SuccessDemo(c, "gateway customers", page)
	}
	return response.Success(c, "gateway customers", page)
}

// ListPayments godoc
// @Summary List gateway charges
// @Tags payments
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param status query string false "Status filter"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /payments [get]
func (h *PaymentHandler) ListPayments(c *fiber.Ctx) error {
	params := pagination.FromQuery(c)
	page := h.paymentService.ListPayments(c.Context(), params.Offset, params.Limit, c.Query("status"))
	if h.paymentService.IsDemo() {
		return response.SuccessDemo(c, "gateway charges", page)
	}
	return response.Success(c, "gateway charges", page)
}

// GetPayment godoc
// @Summary Get a gateway charge
// @Tags payments
// @Produce json
// @Param id path string true "Gateway payment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 502 {object} response.Response
// @Security BearerAuth
// @Router /payments/{id} [get]
func (h *PaymentHandler) GetPayment(c *fiber.Ctx) error {
	payment, err := h.paymentService.GetPayment(c.Context(), c.Params("id"))
	if err != nil {
		return h.mapGatewayError(c, err)
	}
	if h.paymentService.IsDemo() {
		return response.SuccessDemo(c, "gateway charge", payment)
	}
	return response.Success(c, "gateway charge", payment)
}

// CreatePayment godoc
// @Summary Create a gateway charge
// @Tags payments
// @Accept json
// @Produce json
// @Param request body asaas.CreatePaymentRequest true "Charge data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 502 {object} response.Response
// @Security BearerAuth
// @Router /payments [post]
func (h *PaymentHandler) CreatePayment(c *fiber.Ctx) error {
	var req asaas.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	payment, err := h.paymentService.CreatePayment(c.Context(), &req)
	if err != nil {
		return h.mapGatewayError(c, err)
	}
	return response.Created(c, "charge created", payment)
}

// CancelPayment godoc
// @Summary Cancel a gateway charge
// @Tags payments
// @Produce json
// @Param id path string true "Gateway payment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 502 {object} response.Response
// @Security BearerAuth
// @Router /payments/{id} [delete]
func (h *PaymentHandler) CancelPayment(c *fiber.Ctx) error {
	payment, err := h.paymentService.CancelPayment(c.Context(), c.Params("id"))
	if err != nil {
		return h.mapGatewayError(c, err)
	}
	return response.Success(c, "charge cancelled", payment)
}

func (h *PaymentHandler) mapGatewayError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrPaymentIDRequired):
		return response.BadRequest(c, "payment id is required")
	case errors.Is(err, domain.ErrPaymentNotFound):
		return response.NotFound(c, "payment not found or already cancelled")
	case errors.Is(err, domain.ErrInvalidBillingType):
		return response.BadRequest(c, "billing type must be BOLETO, CREDIT_CARD or PIX")
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, "value, customer name and CPF/CNPJ are required")
	case errors.Is(err, domain.ErrGatewayRequest):
		return response.BadGateway(c, "payment gateway unavailable")
	default:
		return response.InternalServerError(c, "payment operation failed")
	}
}
