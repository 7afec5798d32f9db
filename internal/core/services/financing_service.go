package services

import (
	"context"
	"fmt"
	"log"

	"revendapro/internal/adapters/persistence/models"
	"revendapro/internal/adapters/persistence/repositories"
	"revendapro/internal/core/domain"
	"revendapro/internal/core/finance"
	"revendapro/internal/pkg/pagination"
)

// StatusNotifier is notified after a proposal changes status. Delivery
// is best-effort; a failed notification never fails the transition.
type StatusNotifier interface {
	NotifyStatusChange(ctx context.Context, proposal *models.FinancingProposal, from, to domain.FinancingStatus)
}

// FinancingService handles financing proposals and their valuation
type FinancingService struct {
	financingRepo *repositories.FinancingRepository
	eventRepo     *repositories.FinancingEventRepository
	customerRepo  *repositories.CustomerRepository
	bankRepo      *repositories.BankRepository
	vehicleRepo   *repositories.VehicleRepository
	personnelRepo *repositories.PersonnelRepository
	notifier      StatusNotifier
}

// NewFinancingService creates a new financing service
func NewFinancingService(
	financingRepo *repositories.FinancingRepository,
	eventRepo *repositories.FinancingEventRepository,
	customerRepo *repositories.CustomerRepository,
	bankRepo *repositories.BankRepository,
	vehicleRepo *repositories.VehicleRepository,
	personnelRepo *repositories.PersonnelRepository,
) *FinancingService {
	return &FinancingService{
		financingRepo: financingRepo,
		eventRepo:     eventRepo,
		customerRepo:  customerRepo,
		bankRepo:      bankRepo,
		vehicleRepo:   vehicleRepo,
		personnelRepo: personnelRepo,
	}
}

// SetNotifier wires the status-change notifier after construction
func (s *FinancingService) SetNotifier(n StatusNotifier) {
	s.notifier = n
}

// CreateFinancingRequest is the payload for proposal creation. Money is
// in centavos, rates in basis points.
type CreateFinancingRequest struct {
	CustomerID         uint   `json:"customer_id"`
	BankID             uint   `json:"bank_id"`
	VehicleID          *uint  `json:"vehicle_id"`
	AgentID            *uint  `json:"agent_id"`
	SellerID           *uint  `json:"seller_id"`
	ReturnType         string `json:"return_type"`
	AssetValue         int64  `json:"asset_value"`
	AccessoriesRateBps int64  `json:"accessories_rate_bps"`
	FeeAmount          int64  `json:"fee_amount"`
	ExpectedReturn     int64  `json:"expected_return"`
	AgentCommission    int64  `json:"agent_commission"`
	SellerCommission   int64  `json:"seller_commission"`
	Remark             string `json:"remark"`
}

// UpdateFinancingRequest is the payload for proposal updates. Nil
// fields are left untouched; derived values are always recomputed.
type UpdateFinancingRequest struct {
	BankID             *uint   `json:"bank_id"`
	VehicleID          *uint   `json:"vehicle_id"`
	AgentID            *uint   `json:"agent_id"`
	SellerID           *uint   `json:"seller_id"`
	ReturnType         *string `json:"return_type"`
	AssetValue         *int64  `json:"asset_value"`
	AccessoriesRateBps *int64  `json:"accessories_rate_bps"`
	FeeAmount          *int64  `json:"fee_amount"`
	ExpectedReturn     *int64  `json:"expected_return"`
	AgentCommission    *int64  `json:"agent_commission"`
	SellerCommission   *int64  `json:"seller_commission"`
	Remark             *string `json:"remark"`
}

// Summary aggregates proposal counts and realized profit
type Summary struct {
	TotalProposals int64 `json:"total_proposals"`
	InAnalysis     int64 `json:"in_analysis"`
	Approved       int64 `json:"approved"`
	Paid           int64 `json:"paid"`
	Rejected       int64 `json:"rejected"`
	PaidNetProfit  int64 `json:"paid_net_profit"`
}

// Create validates references, derives the valuation and stores the
// proposal with its creation event.
func (s *FinancingService) Create(ctx context.Context, req *CreateFinancingRequest, userID uint, ip string) (*models.FinancingProposal, error) {
	if req.AssetValue <= 0 {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.customerRepo.GetByID(ctx, req.CustomerID); err != nil {
		return nil, fmt.Errorf("%w: customer %d", domain.ErrNotFound, req.CustomerID)
	}
	if _, err := s.bankRepo.GetByID(ctx, req.BankID); err != nil {
		return nil, fmt.Errorf("%w: bank %d", domain.ErrNotFound, req.BankID)
	}
	if req.VehicleID != nil {
		if _, err := s.vehicleRepo.GetByID(ctx, *req.VehicleID); err != nil {
			return nil, fmt.Errorf("%w: vehicle %d", domain.ErrNotFound, *req.VehicleID)
		}
	}

	agentCommission, err := s.resolveCommission(ctx, req.AgentID, req.AgentCommission, req.ExpectedReturn)
	if err != nil {
		return nil, err
	}
	sellerCommission, err := s.resolveCommission(ctx, req.SellerID, req.SellerCommission, req.ExpectedReturn)
	if err != nil {
		return nil, err
	}

	proposal := &models.FinancingProposal{
		CustomerID:         req.CustomerID,
		BankID:             req.BankID,
		VehicleID:          req.VehicleID,
		AgentID:            req.AgentID,
		SellerID:           req.SellerID,
		ReturnType:         req.ReturnType,
		AssetValue:         req.AssetValue,
		AccessoriesRateBps: req.AccessoriesRateBps,
		FeeAmount:          req.FeeAmount,
		ExpectedReturn:     req.ExpectedReturn,
		AgentCommission:    agentCommission,
		SellerCommission:   sellerCommission,
		Status:             domain.FinancingAnalysis,
		Remark:             req.Remark,
	}
	s.applyValuation(proposal)

	if err := s.financingRepo.Create(ctx, proposal); err != nil {
		return nil, err
	}

	s.recordEvent(ctx, proposal.ID, models.EventCreate, nil, &proposal.Status, "proposal created", userID, ip)
	log.Printf("✅ Financing proposal #%d created (net profit: %d centavos)", proposal.ID, proposal.NetProfit)

	return s.financingRepo.GetByID(ctx, proposal.ID)
}

// Update applies changes and recomputes the valuation
func (s *FinancingService) Update(ctx context.Context, id uint, req *UpdateFinancingRequest, userID uint, ip string) (*models.FinancingProposal, error) {
	proposal, err := s.financingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.ErrFinancingNotFound
	}

	if req.BankID != nil {
		if _, err := s.bankRepo.GetByID(ctx, *req.BankID); err != nil {
			return nil, fmt.Errorf("%w: bank %d", domain.ErrNotFound, *req.BankID)
		}
		proposal.BankID = *req.BankID
	}
	if req.VehicleID != nil {
		if _, err := s.vehicleRepo.GetByID(ctx, *req.VehicleID); err != nil {
			return nil, fmt.Errorf("%w: vehicle %d", domain.ErrNotFound, *req.VehicleID)
		}
		proposal.VehicleID = req.VehicleID
	}
	if req.AgentID != nil {
		proposal.AgentID = req.AgentID
	}
	if req.SellerID != nil {
		proposal.SellerID = req.SellerID
	}
	if req.ReturnType != nil {
		proposal.ReturnType = *req.ReturnType
	}
	if req.AssetValue != nil {
		if *req.AssetValue <= 0 {
			return nil, domain.ErrInvalidInput
		}
		proposal.AssetValue = *req.AssetValue
	}
	if req.AccessoriesRateBps != nil {
		proposal.AccessoriesRateBps = *req.AccessoriesRateBps
	}
	if req.FeeAmount != nil {
		proposal.FeeAmount = *req.FeeAmount
	}
	if req.ExpectedReturn != nil {
		proposal.ExpectedReturn = *req.ExpectedReturn
	}
	if req.AgentCommission != nil {
		proposal.AgentCommission = *req.AgentCommission
	}
	if req.SellerCommission != nil {
		proposal.SellerCommission = *req.SellerCommission
	}
	if req.Remark != nil {
		proposal.Remark = *req.Remark
	}

	eventType, description := models.EventUpdate, "proposal updated"
	if s.applyValuation(proposal) {
		eventType, description = models.EventRecompute, "proposal updated and valuation recomputed"
	}

	if err := s.financingRepo.Update(ctx, proposal); err != nil {
		return nil, err
	}

	s.recordEvent(ctx, proposal.ID, eventType, nil, nil, description, userID, ip)

	return s.financingRepo.GetByID(ctx, proposal.ID)
}

// GetByID returns a proposal with its relations preloaded
func (s *FinancingService) GetByID(ctx context.Context, id uint) (*models.FinancingProposal, error) {
	proposal, err := s.financingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.ErrFinancingNotFound
	}
	return proposal, nil
}

// List returns a page of proposals, optionally filtered by status
func (s *FinancingService) List(ctx context.Context, params *pagination.Params, statusRaw string) (*pagination.Page, error) {
	var status domain.FinancingStatus
	if statusRaw != "" {
		parsed, err := domain.ParseFinancingStatus(statusRaw)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	proposals, total, err := s.financingRepo.List(ctx, params.Offset, params.Limit, status)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.FinancingResponse, 0, len(proposals))
	for _, p := range proposals {
		responses = append(responses, p.ToResponse())
	}
	return pagination.NewPage(responses, params, total), nil
}

// ListByCustomer returns every proposal of one customer
func (s *FinancingService) ListByCustomer(ctx context.Context, customerID uint) ([]*models.FinancingResponse, error) {
	proposals, err := s.financingRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	responses := make([]*models.FinancingResponse, 0, len(proposals))
	for _, p := range proposals {
		responses = append(responses, p.ToResponse())
	}
	return responses, nil
}

// ChangeStatus moves a proposal to a new status. Transitions are not
// blocked, only recorded; a jump that skips the usual order is logged
// so the history view surfaces it.
func (s *FinancingService) ChangeStatus(ctx context.Context, id uint, statusRaw string, userID uint, ip string) (*models.FinancingProposal, error) {
	newStatus, err := domain.ParseFinancingStatus(statusRaw)
	if err != nil {
		return nil, err
	}

	proposal, err := s.financingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.ErrFinancingNotFound
	}

	oldStatus := proposal.Status
	if oldStatus == newStatus {
		return proposal, nil
	}
	if oldStatus.IsTerminal() {
		log.Printf("⚠️ Proposal #%d leaving terminal status %s -> %s", id, oldStatus, newStatus)
	}

	proposal.Status = newStatus
	if err := s.financingRepo.Update(ctx, proposal); err != nil {
		return nil, err
	}

	s.recordEvent(ctx, id, models.EventStatusChange, &oldStatus, &newStatus,
		fmt.Sprintf("status changed from %s to %s", oldStatus, newStatus), userID, ip)
	log.Printf("✅ Proposal #%d status: %s -> %s", id, oldStatus, newStatus)

	if s.notifier != nil {
		s.notifier.NotifyStatusChange(ctx, proposal, oldStatus, newStatus)
	}

	return proposal, nil
}

// GetEvents returns the audit history of a proposal
func (s *FinancingService) GetEvents(ctx context.Context, proposalID uint) ([]*models.FinancingEvent, error) {
	if _, err := s.financingRepo.GetByID(ctx, proposalID); err != nil {
		return nil, domain.ErrFinancingNotFound
	}
	return s.eventRepo.GetByProposalID(ctx, proposalID)
}

// GetSummary aggregates counts per status and realized profit
func (s *FinancingService) GetSummary(ctx context.Context) (*Summary, error) {
	summary := &Summary{}

	counts := []struct {
		status domain.FinancingStatus
		dest   *int64
	}{
		{domain.FinancingAnalysis, &summary.InAnalysis},
		{domain.FinancingApproved, &summary.Approved},
		{domain.FinancingPaid, &summary.Paid},
		{domain.FinancingRejected, &summary.Rejected},
	}
	for _, c := range counts {
		n, err := s.financingRepo.CountByStatus(ctx, c.status)
		if err != nil {
			return nil, err
		}
		*c.dest = n
		summary.TotalProposals += n
	}

	profit, err := s.financingRepo.SumNetProfit(ctx, domain.FinancingPaid)
	if err != nil {
		return nil, err
	}
	summary.PaidNetProfit = profit

	return summary, nil
}

// resolveCommission returns the explicit amount when given, otherwise
// derives it from the referenced personnel's rate over the expected
// return. No personnel reference means no commission.
func (s *FinancingService) resolveCommission(ctx context.Context, personnelID *uint, explicit, expectedReturn int64) (int64, error) {
	if explicit != 0 {
		return explicit, nil
	}
	if personnelID == nil {
		return 0, nil
	}
	person, err := s.personnelRepo.GetByID(ctx, *personnelID)
	if err != nil {
		return 0, fmt.Errorf("%w: personnel %d", domain.ErrNotFound, *personnelID)
	}
	return finance.CommissionAmount(expectedReturn, person.CommissionRateBps), nil
}

// applyValuation refreshes the derived money columns and reports
// whether any of them moved.
func (s *FinancingService) applyValuation(proposal *models.FinancingProposal) bool {
	v := finance.Compute(finance.ValuationInput{
		AssetValue:         proposal.AssetValue,
		AccessoriesRateBps: proposal.AccessoriesRateBps,
		FeeAmount:          proposal.FeeAmount,
		ExpectedReturn:     proposal.ExpectedReturn,
		AgentCommission:    proposal.AgentCommission,
		SellerCommission:   proposal.SellerCommission,
	})
	changed := proposal.ILAAmount != v.ILAAmount ||
		proposal.ReleasedAmount != v.ReleasedAmount ||
		proposal.NetProfit != v.NetProfit

	proposal.ILAAmount = v.ILAAmount
	proposal.ReleasedAmount = v.ReleasedAmount
	proposal.NetProfit = v.NetProfit
	return changed
}

func (s *FinancingService) recordEvent(ctx context.Context, proposalID uint, eventType string, from, to *domain.FinancingStatus, description string, userID uint, ip string) {
	event := &models.FinancingEvent{
		ProposalID:  proposalID,
		EventType:   eventType,
		FromStatus:  from,
		ToStatus:    to,
		Description: description,
		PerformedBy: userID,
		IPAddress:   ip,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		// History must not block the mutation itself.
		log.Printf("❌ Failed to record financing event for proposal #%d: %v", proposalID, err)
	}
}
