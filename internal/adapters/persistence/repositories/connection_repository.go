package repositories

import (
	"context"
	"time"

	"revendapro/internal/adapters/persistence/models"
	"revendapro/internal/core/domain"

	"gorm.io/gorm"
)

// ConnectionRepository handles whatsapp connection data access
type ConnectionRepository struct {
	db *gorm.DB
}

// NewConnectionRepository creates a new connection repository
func NewConnectionRepository(db *gorm.DB) *ConnectionRepository {
	return &ConnectionRepository{db: db}
}

// Create registers a new connection row
func (r *ConnectionRepository) Create(ctx context.Context, conn *models.WhatsAppConnection) error {
	return r.db.WithContext(ctx).Create(conn).Error
}

// GetByID gets a connection by ID
func (r *ConnectionRepository) GetByID(ctx context.Context, id uint) (*models.WhatsAppConnection, error) {
	var conn models.WhatsAppConnection
	err := r.db.WithContext(ctx).First(&conn, id).Error
	if err != nil {
		return nil, err
	}
	return &conn, nil
}

// GetByPhone gets a connection by phone number
func (r *ConnectionRepository) GetByPhone(ctx context.Context, phone string) (*models.WhatsAppConnection, error) {
	var conn models.WhatsAppConnection
	err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&conn).Error
	if err != nil {
		return nil, err
	}
	return &conn, nil
}

// List lists all connections
func (r *ConnectionRepository) List(ctx context.Context) ([]*models.WhatsAppConnection, error) {
	var conns []*models.WhatsAppConnection
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&conns).Error
	return conns, err
}

// ListByStatus lists connections in a given status
func (r *ConnectionRepository) ListByStatus(ctx context.Context, status domain.SessionStatus) ([]*models.WhatsAppConnection, error) {
	var conns []*models.WhatsAppConnection
	err := r.db.WithContext(ctx).Where("status = ?", status).Find(&conns).Error
	return conns, err
}

// Update updates a connection
func (r *ConnectionRepository) Update(ctx context.Context, conn *models.WhatsAppConnection) error {
	return r.db.WithContext(ctx).Save(conn).Error
}

// UpdateStatus mirrors a gateway-reported status onto the row
func (r *ConnectionRepository) UpdateStatus(ctx context.Context, id uint, status domain.SessionStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.WhatsAppConnection{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// IncrementSent bumps the daily counter after a successful send
func (r *ConnectionRepository) IncrementSent(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.WhatsAppConnection{}).
		Where("id = ?", id).
		UpdateColumn("sent_today", gorm.Expr("sent_today + 1")).Error
}

// ResetDailyCounters zeroes every counter; run once per day at midnight
func (r *ConnectionRepository) ResetDailyCounters(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Model(&models.WhatsAppConnection{}).
		Where("1 = 1").
		Updates(map[string]interface{}{
			"sent_today":    0,
			"last_reset_at": time.Now(),
		}).Error
}

// Delete removes a connection row
func (r *ConnectionRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.WhatsAppConnection{}, id).Error
}
