package handlers

import (
	"errors"

	"revendapro/internal/core/domain"
	"revendapro/internal/core/services"
	"revendapro/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// WhatsAppHandler handles messaging connection endpoints
type WhatsAppHandler struct {
	whatsappService *services.WhatsAppService
}

// NewWhatsAppHandler creates a new whatsapp handler
func NewWhatsAppHandler(whatsappService *services.WhatsAppService) *WhatsAppHandler {
	return &WhatsAppHandler{whatsappService: whatsappService}
}

// Create godoc
// @Summary Register a WhatsApp connection
// @Description Registers a phone and starts its gateway session
// @Tags whatsapp
// @Accept json
// @Produce json
// @Param request body services.CreateConnectionRequest true "Connection data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Security BearerAuth
// @Router /whatsapp/connections [post]
func (h *WhatsAppHandler) Create(c *fiber.Ctx) error {
	var req services.CreateConnectionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	conn, err := h.whatsappService.CreateConnection(c.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "a valid phone number is required")
		case errors.Is(err, domain.ErrDuplicateEntry):
			return response.Conflict(c, "this phone is already registered")
		default:
			return response.InternalServerError(c, "failed to register connection")
		}
	}
	return response.Created(c, "connection registered", conn)
}

// List godoc
// @Summary List WhatsApp connections
// @Tags whatsapp
// @Produce json
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /whatsapp/connections [get]
func (h *WhatsAppHandler) List(c *fiber.Ctx) error {
	conns, err := h.whatsappService.ListConnections(c.Context())
	if err != nil {
		return response.InternalServerError(c, "failed to list connections")
	}
	return response.Success(c, "connections", conns)
}

// Get godoc
// @Summary Get a WhatsApp connection
// @Tags whatsapp
// @Produce json
// @Param id path int true "Connection ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /whatsapp/connections/{id} [get]
func (h *WhatsAppHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "invalid connection id")
	}

	conn, err := h.whatsappService.GetConnection(c.Context(), id)
	if err != nil {
		return response.NotFound(c, "connection not found")
	}
	return response.Success(c, "connection", conn)
}

// Status godoc
// @Summary Refresh connection status
// @Description Polls the gateway and mirrors the status into the record
// @Tags whatsapp
// @Produce json
// @Param id path int true "Connection ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /whatsapp/connections/{id}/status [get]
func (h *WhatsAppHandler) Status(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "invalid connection id")
	}

	conn, err := h.whatsappService.RefreshStatus(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrConnectionNotFound) {
			return response.NotFound(c, "connection not found")
		}
		return response.InternalServerError(c, "failed to refresh status")
	}
	return response.Success(c, "connection status", conn)
}

// QRCode godoc
// @Summary Pairing QR code
// @Description Returns the base64 QR code, empty when already paired
// @Tags whatsapp
// @Produce json
// @Param id path int true "Connection ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /whatsapp/connections/{id}/qrcode [get]
func (h *WhatsAppHandler) QRCode(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "invalid connection id")
	}

	qr, err := h.whatsappService.GetQRCode(c.Context(), id)
	if err != nil {
		return response.NotFound(c, "connection not found")
	}
	return response.Success(c, "qr code", fiber.Map{"qrcode": qr})
}

// Delete godoc
// @Summary Remove a WhatsApp connection
// @Description Closes the gateway session and removes the registration
// @Tags whatsapp
// @Produce json
// @Param id path int true "Connection ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /whatsapp/connections/{id} [delete]
func (h *WhatsAppHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "invalid connection id")
	}

	if err := h.whatsappService.DeleteConnection(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrConnectionNotFound) {
			return response.NotFound(c, "connection not found")
		}
		return response.InternalServerError(c, "failed to remove connection")
	}
	return response.Success(c, "connection removed", nil)
}

// SendMessage godoc
// @Summary Send a text message
// @Tags whatsapp
// @Accept json
// @Produce json
// @Param id path int true "Connection ID"
// @Param request body services.SendMessageRequest true "Message"
// @Success 200 {object} response.Response
// @Failure 422 {object} response.Response
// @Failure 429 {object} response.Response
// @Security BearerAuth
// @Router /whatsapp/connections/{id}/send-message [post]
func (h *WhatsAppHandler) SendMessage(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "invalid connection id")
	}

	var req services.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	result, err := h.whatsappService.SendMessage(c.Context(), id, &req)
	if err != nil {
		return h.mapSendError(c, err)
	}
	return response.Success(c, "message processed", result)
}

// SendFile godoc
// @Summary Send a file
// @Tags whatsapp
// @Accept json
// @Produce json
// @Param id path int true "Connection ID"
// @Param request body services.SendFileRequest true "File"
// @Success 200 {object} response.Response
// @Failure 422 {object} response.Response
// @Failure 429 {object} response.Response
// @Security BearerAuth
// @Router /whatsapp/connections/{id}/send-file [post]
func (h *WhatsAppHandler) SendFile(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "invalid connection id")
	}

	var req services.SendFileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	result, err := h.whatsappService.SendFile(c.Context(), id, &req)
	if err != nil {
		return h.mapSendError(c, err)
	}
	return response.Success(c, "file processed", result)
}

// Contacts godoc
// @Summary Gateway contact list
// @Tags whatsapp
// @Produce json
// @Param id path int true "Connection ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /whatsapp/connections/{id}/contacts [get]
func (h *WhatsAppHandler) Contacts(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "invalid connection id")
	}

	contacts, err := h.whatsappService.GetContacts(c.Context(), id)
	if err != nil {
		return response.NotFound(c, "connection not found")
	}
	return response.Success(c, "contacts", contacts)
}

// CheckNumber godoc
// @Summary Check whether a number exists on WhatsApp
// @Tags whatsapp
// @Produce json
// @Param id path int true "Connection ID"
// @Param phone query string true "Phone number"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /whatsapp/connections/{id}/check-number [get]
func (h *WhatsAppHandler) CheckNumber(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "invalid connection id")
	}

	exists, err := h.whatsappService.CheckNumber(c.Context(), id, c.Query("phone"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrConnectionNotFound):
			return response.NotFound(c, "connection not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "a valid phone number is required")
		default:
			return response.InternalServerError(c, "failed to check number")
		}
	}
	return response.Success(c, "number check", fiber.Map{"exists": exists})
}

func (h *WhatsAppHandler) mapSendError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrConnectionNotFound):
		return response.NotFound(c, "connection not found")
	case errors.Is(err, domain.ErrSessionNotPaired):
		return response.UnprocessableEntity(c, "session is not connected, pair the phone first")
	case errors.Is(err, domain.ErrDailyLimitReached):
		return response.Error(c, fiber.StatusTooManyRequests, "daily message limit reached")
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, "phone and content are required")
	default:
		return response.InternalServerError(c, "send failed")
	}
}
