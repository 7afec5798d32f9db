package models

import (
	"time"

	"revendapro/internal/core/domain"

	"gorm.io/gorm"
)

// Monetary columns store int64 centavos; commission and accessories
// rates store basis points. Formatting to reais happens client-side.

// ============================================================
// Auth & User Tables
// ============================================================

// User represents users table
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      domain.Role    `gorm:"size:20;default:'SELLER'" json:"role"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint        `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	IsActive  bool        `json:"is_active"`
	CreatedAt time.Time   `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Dealership Master Tables
// ============================================================

// Customer is the dealership's own customer record. It maps to the
// payment gateway's customer by name/document only; no gateway id is
// stored as an identity guarantee.
type Customer struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:120;not null;index" json:"name"`
	CpfCnpj   string         `gorm:"size:20;uniqueIndex;not null" json:"cpf_cnpj"`
	Email     string         `gorm:"size:100" json:"email"`
	Phone     string         `gorm:"size:20" json:"phone"`
	Address   string         `gorm:"size:200" json:"address"`
	City      string         `gorm:"size:80" json:"city"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Customer) TableName() string {
	return "customers"
}

// Personnel is an employee, agent or dealer whose commission rate feeds
// the financing valuation.
type Personnel struct {
	ID                uint                 `gorm:"primaryKey" json:"id"`
	Name              string               `gorm:"size:120;not null" json:"name"`
	Type              domain.PersonnelType `gorm:"size:20;not null;default:'EMPLOYEE'" json:"type"`
	CommissionRateBps int64                `gorm:"not null;default:0" json:"commission_rate_bps"`
	Phone             string               `gorm:"size:20" json:"phone"`
	Email             string               `gorm:"size:100" json:"email"`
	IsActive          bool                 `gorm:"default:true" json:"is_active"`
	CreatedAt         time.Time            `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time            `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt       `gorm:"index" json:"-"`
}

func (Personnel) TableName() string {
	return "personnel"
}

// Bank is a financing bank master record.
type Bank struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Code      string         `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Bank) TableName() string {
	return "banks"
}

// Vehicle statuses
const (
	VehicleAvailable = "AVAILABLE"
	VehicleReserved  = "RESERVED"
	VehicleSold      = "SOLD"
)

// Vehicle is an inventory record.
type Vehicle struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Plate      string         `gorm:"size:10;uniqueIndex;not null" json:"plate"`
	Brand      string         `gorm:"size:50;not null" json:"brand"`
	Model      string         `gorm:"size:80;not null" json:"model"`
	ModelYear  int            `json:"model_year"`
	Color      string         `gorm:"size:30" json:"color"`
	PriceCents int64          `gorm:"not null" json:"price_cents"`
	Status     string         `gorm:"size:20;not null;default:'AVAILABLE'" json:"status"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}

// ============================================================
// Financing Tables
// ============================================================

// FinancingProposal is a vehicle-purchase financing application routed
// through a bank. The ila/released/net-profit columns are derived data,
// always recomputable from the stored inputs plus the referenced
// personnel commission rates. Rows are never physically deleted in the
// normal flow; terminal statuses are soft states.
type FinancingProposal struct {
	ID                 uint                   `gorm:"primaryKey" json:"id"`
	CustomerID         uint                   `gorm:"not null;index" json:"customer_id"`
	BankID             uint                   `gorm:"not null" json:"bank_id"`
	VehicleID          *uint                  `gorm:"index" json:"vehicle_id"`
	AgentID            *uint                  `json:"agent_id"`
	SellerID           *uint                  `json:"seller_id"`
	ReturnType         string                 `gorm:"size:30" json:"return_type"`
	AssetValue         int64                  `gorm:"not null" json:"asset_value"`
	AccessoriesRateBps int64                  `gorm:"not null;default:0" json:"accessories_rate_bps"`
	FeeAmount          int64                  `gorm:"not null;default:0" json:"fee_amount"`
	ExpectedReturn     int64                  `gorm:"not null;default:0" json:"expected_return"`
	AgentCommission    int64                  `gorm:"not null;default:0" json:"agent_commission"`
	SellerCommission   int64                  `gorm:"not null;default:0" json:"seller_commission"`
	ILAAmount          int64                  `gorm:"not null;default:0" json:"ila_amount"`
	ReleasedAmount     int64                  `gorm:"not null;default:0" json:"released_amount"`
	NetProfit          int64                  `gorm:"not null;default:0" json:"net_profit"`
	Status             domain.FinancingStatus `gorm:"size:20;not null;default:'ANALYSIS';index" json:"status"`
	Remark             string                 `gorm:"type:text" json:"remark"`
	CreatedAt          time.Time              `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time              `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt         `gorm:"index" json:"-"`

	// Relations
	Customer *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Bank     *Bank      `gorm:"foreignKey:BankID" json:"bank,omitempty"`
	Vehicle  *Vehicle   `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	Agent    *Personnel `gorm:"foreignKey:AgentID" json:"agent,omitempty"`
	Seller   *Personnel `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
}

func (FinancingProposal) TableName() string {
	return "financing_proposals"
}

// FinancingResponse DTO
type FinancingResponse struct {
	ID             uint                   `json:"id"`
	CustomerID     uint                   `json:"customer_id"`
	CustomerName   string                 `json:"customer_name,omitempty"`
	BankID         uint                   `json:"bank_id"`
	BankName       string                 `json:"bank_name,omitempty"`
	VehicleID      *uint                  `json:"vehicle_id"`
	VehicleModel   string                 `json:"vehicle_model,omitempty"`
	ReturnType     string                 `json:"return_type"`
	AssetValue     int64                  `json:"asset_value"`
	FeeAmount      int64                  `json:"fee_amount"`
	ExpectedReturn int64                  `json:"expected_return"`
	ILAAmount      int64                  `json:"ila_amount"`
	ReleasedAmount int64                  `json:"released_amount"`
	NetProfit      int64                  `json:"net_profit"`
	Status         domain.FinancingStatus `json:"status"`
	StatusLabel    string                 `json:"status_label"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

func (p *FinancingProposal) ToResponse() *FinancingResponse {
	resp := &FinancingResponse{
		ID:             p.ID,
		CustomerID:     p.CustomerID,
		BankID:         p.BankID,
		VehicleID:      p.VehicleID,
		ReturnType:     p.ReturnType,
		AssetValue:     p.AssetValue,
		FeeAmount:      p.FeeAmount,
		ExpectedReturn: p.ExpectedReturn,
		ILAAmount:      p.ILAAmount,
		ReleasedAmount: p.ReleasedAmount,
		NetProfit:      p.NetProfit,
		Status:         p.Status,
		StatusLabel:    p.Status.Label(),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}

	if p.Customer != nil {
		resp.CustomerName = p.Customer.Name
	}
	if p.Bank != nil {
		resp.BankName = p.Bank.Name
	}
	if p.Vehicle != nil {
		resp.VehicleModel = p.Vehicle.Brand + " " + p.Vehicle.Model
	}

	return resp
}

// FinancingEvent records every proposal mutation for the history view.
type FinancingEvent struct {
	ID          uint                    `gorm:"primaryKey" json:"id"`
	ProposalID  uint                    `gorm:"not null;index" json:"proposal_id"`
	EventType   string                  `gorm:"size:50;not null" json:"event_type"`
	FromStatus  *domain.FinancingStatus `gorm:"size:20" json:"from_status"`
	ToStatus    *domain.FinancingStatus `gorm:"size:20" json:"to_status"`
	Description string                  `gorm:"type:text" json:"description"`
	PerformedBy uint                    `gorm:"not null" json:"performed_by"`
	IPAddress   string                  `gorm:"size:50" json:"ip_address"`
	CreatedAt   time.Time               `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Proposal  *FinancingProposal `gorm:"foreignKey:ProposalID" json:"proposal,omitempty"`
	Performer *User              `gorm:"foreignKey:PerformedBy" json:"performer,omitempty"`
}

func (FinancingEvent) TableName() string {
	return "financing_events"
}

// Financing event types
const (
	EventCreate       = "CREATE"
	EventUpdate       = "UPDATE"
	EventStatusChange = "STATUS_CHANGE"
	EventRecompute    = "RECOMPUTE"
)

// ============================================================
// Messaging Tables
// ============================================================

// WhatsAppConnection is one row per phone-number session registered
// with the messaging gateway. Status mirrors the last gateway poll; the
// daily counter is the caller-side quota the adapter never enforces.
type WhatsAppConnection struct {
	ID          uint                 `gorm:"primaryKey" json:"id"`
	Phone       string               `gorm:"size:20;uniqueIndex;not null" json:"phone"`
	SessionID   string               `gorm:"size:60;uniqueIndex;not null" json:"session_id"`
	Status      domain.SessionStatus `gorm:"size:20;not null;default:'STARTING'" json:"status"`
	DailyLimit  int                  `gorm:"not null;default:200" json:"daily_limit"`
	SentToday   int                  `gorm:"not null;default:0" json:"sent_today"`
	LastResetAt time.Time            `json:"last_reset_at"`
	CreatedAt   time.Time            `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time            `gorm:"autoUpdateTime" json:"updated_at"`
}

func (WhatsAppConnection) TableName() string {
	return "whatsapp_connections"
}

// CanSendToday reports whether the daily quota still allows a send.
// Quota enforcement happens here, before the adapter is invoked.
func (c *WhatsAppConnection) CanSendToday() bool {
	if c.DailyLimit <= 0 {
		return true // zero limit means unmetered
	}
	return c.SentToday < c.DailyLimit
}

// RemainingToday returns how many sends are left in the quota.
func (c *WhatsAppConnection) RemainingToday() int {
	if c.DailyLimit <= 0 {
		return -1
	}
	remaining := c.DailyLimit - c.SentToday
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate creates or updates all application tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// Auth
		&User{},
		&RefreshToken{},
		// Masters
		&Customer{},
		&Personnel{},
		&Bank{},
		&Vehicle{},
		// Financing
		&FinancingProposal{},
		&FinancingEvent{},
		// Messaging
		&WhatsAppConnection{},
	)
}
