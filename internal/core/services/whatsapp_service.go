package services

import (
	"context"
	"fmt"
	"log"

	"revendapro/internal/adapters/gateway/wppconnect"
	"revendapro/internal/adapters/persistence/models"
	"revendapro/internal/adapters/persistence/repositories"
	"revendapro/internal/core/domain"
)

// WhatsAppService manages messaging sessions and enforces the per-phone
// daily send quota. The adapter itself never enforces quota.
type WhatsAppService struct {
	connRepo          *repositories.ConnectionRepository
	client            *wppconnect.Client
	defaultDailyLimit int
}

// NewWhatsAppService creates a new whatsapp service
func NewWhatsAppService(connRepo *repositories.ConnectionRepository, client *wppconnect.Client, defaultDailyLimit int) *WhatsAppService {
	return &WhatsAppService{
		connRepo:          connRepo,
		client:            client,
		defaultDailyLimit: defaultDailyLimit,
	}
}

// CreateConnectionRequest is the payload for registering a phone
type CreateConnectionRequest struct {
	Phone      string `json:"phone"`
	DailyLimit *int   `json:"daily_limit"`
}

// SendMessageRequest is the payload for a text send
type SendMessageRequest struct {
	Phone string `json:"phone"`
	Text  string `json:"text"`
}

// SendFileRequest is the payload for a file send
type SendFileRequest struct {
	Phone    string `json:"phone"`
	FileURL  string `json:"file_url"`
	Filename string `json:"filename"`
	Caption  string `json:"caption"`
}

// SendResult reports the outcome of one send attempt
type SendResult struct {
	Delivered bool `json:"delivered"`
	Remaining int  `json:"remaining_today"`
}

// CreateConnection registers a phone and starts its gateway session.
// The session id is derived from the phone so re-registering the same
// number reattaches to the same gateway session.
func (s *WhatsAppService) CreateConnection(ctx context.Context, req *CreateConnectionRequest) (*models.WhatsAppConnection, error) {
	phone := wppconnect.NormalizePhone(req.Phone)
	if phone == "" {
		return nil, domain.ErrInvalidInput
	}

	if existing, _ := s.connRepo.GetByPhone(ctx, phone); existing != nil {
		return nil, domain.ErrDuplicateEntry
	}

	limit := s.defaultDailyLimit
	if req.DailyLimit != nil {
		limit = *req.DailyLimit
	}

	conn := &models.WhatsAppConnection{
		Phone:      phone,
		SessionID:  fmt.Sprintf("rvp_%s", phone),
		Status:     domain.SessionStarting,
		DailyLimit: limit,
	}
	if err := s.connRepo.Create(ctx, conn); err != nil {
		return nil, err
	}

	if s.client.StartSession(ctx, conn.SessionID) {
		conn.Status = s.client.GetStatus(ctx, conn.SessionID)
		_ = s.connRepo.UpdateStatus(ctx, conn.ID, conn.Status)
	} else {
		conn.Status = domain.SessionError
		_ = s.connRepo.UpdateStatus(ctx, conn.ID, domain.SessionError)
	}

	log.Printf("✅ WhatsApp connection registered for %s (session: %s, status: %s)", phone, conn.SessionID, conn.Status)
	return conn, nil
}

// ListConnections returns every registered connection
func (s *WhatsAppService) ListConnections(ctx context.Context) ([]*models.WhatsAppConnection, error) {
	return s.connRepo.List(ctx)
}

// GetConnection returns one connection by id
func (s *WhatsAppService) GetConnection(ctx context.Context, id uint) (*models.WhatsAppConnection, error) {
	conn, err := s.connRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.ErrConnectionNotFound
	}
	return conn, nil
}

// RefreshStatus polls the gateway and mirrors the result into the row
func (s *WhatsAppService) RefreshStatus(ctx context.Context, id uint) (*models.WhatsAppConnection, error) {
	conn, err := s.connRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.ErrConnectionNotFound
	}

	status := s.client.GetStatus(ctx, conn.SessionID)
	if status != conn.Status {
		if err := s.connRepo.UpdateStatus(ctx, conn.ID, status); err != nil {
			return nil, err
		}
		conn.Status = status
	}
	return conn, nil
}

// GetQRCode returns the pairing QR code for a connection. Empty when
// the session is already paired or the gateway is unreachable.
func (s *WhatsAppService) GetQRCode(ctx context.Context, id uint) (string, error) {
	conn, err := s.connRepo.GetByID(ctx, id)
	if err != nil {
		return "", domain.ErrConnectionNotFound
	}
	return s.client.GetQRCode(ctx, conn.SessionID), nil
}

// DeleteConnection closes the gateway session and removes the row. The
// row is removed even when the gateway close fails, so a dead gateway
// never strands a registration.
func (s *WhatsAppService) DeleteConnection(ctx context.Context, id uint) error {
	conn, err := s.connRepo.GetByID(ctx, id)
	if err != nil {
		return domain.ErrConnectionNotFound
	}

	if !s.client.CloseSession(ctx, conn.SessionID) {
		log.Printf("⚠️ Gateway session %s did not close cleanly, removing registration anyway", conn.SessionID)
	}
	return s.connRepo.Delete(ctx, id)
}

// SendMessage sends a text through a connection, enforcing the quota
func (s *WhatsAppService) SendMessage(ctx context.Context, connID uint, req *SendMessageRequest) (*SendResult, error) {
	conn, err := s.prepareSend(ctx, connID)
	if err != nil {
		return nil, err
	}

	phone := wppconnect.NormalizePhone(req.Phone)
	if phone == "" || req.Text == "" {
		return nil, domain.ErrInvalidInput
	}

	delivered := s.client.SendMessage(ctx, conn.SessionID, phone, req.Text)
	return s.finishSend(ctx, conn, delivered)
}

// SendFile sends a file through a connection, enforcing the quota
func (s *WhatsAppService) SendFile(ctx context.Context, connID uint, req *SendFileRequest) (*SendResult, error) {
	conn, err := s.prepareSend(ctx, connID)
	if err != nil {
		return nil, err
	}

	phone := wppconnect.NormalizePhone(req.Phone)
	if phone == "" || req.FileURL == "" {
		return nil, domain.ErrInvalidInput
	}

	delivered := s.client.SendFile(ctx, conn.SessionID, phone, req.FileURL, req.Filename, req.Caption)
	return s.finishSend(ctx, conn, delivered)
}

// GetContacts returns the gateway contact list of a connection
func (s *WhatsAppService) GetContacts(ctx context.Context, id uint) ([]wppconnect.Contact, error) {
	conn, err := s.connRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.ErrConnectionNotFound
	}
	return s.client.GetAllContacts(ctx, conn.SessionID), nil
}

// CheckNumber reports whether a phone number exists on WhatsApp
func (s *WhatsAppService) CheckNumber(ctx context.Context, id uint, phone string) (bool, error) {
	conn, err := s.connRepo.GetByID(ctx, id)
	if err != nil {
		return false, domain.ErrConnectionNotFound
	}
	normalized := wppconnect.NormalizePhone(phone)
	if normalized == "" {
		return false, domain.ErrInvalidInput
	}
	return s.client.CheckNumberStatus(ctx, conn.SessionID, normalized), nil
}

// FindConnectedSession returns the first connected session, used for
// outbound notifications. Nil when no phone is paired.
func (s *WhatsAppService) FindConnectedSession(ctx context.Context) *models.WhatsAppConnection {
	conns, err := s.connRepo.ListByStatus(ctx, domain.SessionConnected)
	if err != nil || len(conns) == 0 {
		return nil
	}
	return conns[0]
}

func (s *WhatsAppService) prepareSend(ctx context.Context, connID uint) (*models.WhatsAppConnection, error) {
	conn, err := s.connRepo.GetByID(ctx, connID)
	if err != nil {
		return nil, domain.ErrConnectionNotFound
	}
	if conn.Status != domain.SessionConnected {
		return nil, domain.ErrSessionNotPaired
	}
	if !conn.CanSendToday() {
		return nil, domain.ErrDailyLimitReached
	}
	return conn, nil
}

// finishSend counts only delivered messages against the quota.
func (s *WhatsAppService) finishSend(ctx context.Context, conn *models.WhatsAppConnection, delivered bool) (*SendResult, error) {
	if delivered {
		if err := s.connRepo.IncrementSent(ctx, conn.ID); err != nil {
			log.Printf("❌ Failed to increment send counter for connection #%d: %v", conn.ID, err)
		}
		conn.SentToday++
	}
	return &SendResult{
		Delivered: delivered,
		Remaining: conn.RemainingToday(),
	}, nil
}
