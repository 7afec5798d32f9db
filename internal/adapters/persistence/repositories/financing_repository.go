package repositories

import (
	"context"

	"revendapro/internal/adapters/persistence/models"
	"revendapro/internal/core/domain"

	"gorm.io/gorm"
)

// FinancingRepository handles financing proposal data access
type FinancingRepository struct {
	db *gorm.DB
}

// NewFinancingRepository creates a new financing repository
func NewFinancingRepository(db *gorm.DB) *FinancingRepository {
	return &FinancingRepository{db: db}
}

// Create creates a new financing proposal
func (r *FinancingRepository) Create(ctx context.Context, proposal *models.FinancingProposal) error {
	return r.db.WithContext(ctx).Create(proposal).Error
}

// GetByID gets a proposal by ID with relations
func (r *FinancingRepository) GetByID(ctx context.Context, id uint) (*models.FinancingProposal, error) {
	var proposal models.FinancingProposal
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Bank").
		Preload("Vehicle").
		Preload("Agent").
		Preload("Seller").
		First(&proposal, id).Error
	if err != nil {
		return nil, err
	}
	return &proposal, nil
}

// List lists proposals with pagination and optional status filter
func (r *FinancingRepository) List(ctx context.Context, offset, limit int, status domain.FinancingStatus) ([]*models.FinancingProposal, int64, error) {
	var proposals []*models.FinancingProposal
	var total int64

	query := r.db.WithContext(ctx).Model(&models.FinancingProposal{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	query.Count(&total)

	err := query.
		Preload("Customer").
		Preload("Bank").
		Preload("Vehicle").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&proposals).Error

	return proposals, total, err
}

// ListByCustomer lists proposals for one customer
func (r *FinancingRepository) ListByCustomer(ctx context.Context, customerID uint) ([]*models.FinancingProposal, error) {
	var proposals []*models.FinancingProposal
	err := r.db.WithContext(ctx).
		Preload("Bank").
		Preload("Vehicle").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&proposals).Error
	return proposals, err
}

// Update updates a proposal
func (r *FinancingRepository) Update(ctx context.Context, proposal *models.FinancingProposal) error {
	return r.db.WithContext(ctx).Save(proposal).Error
}

// CountByStatus counts proposals per status
func (r *FinancingRepository) CountByStatus(ctx context.Context, status domain.FinancingStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.FinancingProposal{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// SumNetProfit sums net profit over proposals in a status
func (r *FinancingRepository) SumNetProfit(ctx context.Context, status domain.FinancingStatus) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.FinancingProposal{}).
		Where("status = ?", status).
		Select("COALESCE(SUM(net_profit), 0)").
		Scan(&total).Error
	return total, err
}

// FinancingEventRepository handles financing history data access
type FinancingEventRepository struct {
	db *gorm.DB
}

// NewFinancingEventRepository creates a new financing event repository
func NewFinancingEventRepository(db *gorm.DB) *FinancingEventRepository {
	return &FinancingEventRepository{db: db}
}

// Create records an event
func (r *FinancingEventRepository) Create(ctx context.Context, event *models.FinancingEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// GetByProposalID gets the event history of a proposal
func (r *FinancingEventRepository) GetByProposalID(ctx context.Context, proposalID uint) ([]*models.FinancingEvent, error) {
	var events []*models.FinancingEvent
	err := r.db.WithContext(ctx).
		Preload("Performer").
		Where("proposal_id = ?", proposalID).
		Order("created_at DESC").
		Find(&events).Error
	return events, err
}
