package services

import (
	"context"

	"revendapro/internal/adapters/persistence/models"
	"revendapro/internal/adapters/persistence/repositories"
	"revendapro/internal/core/domain"
)

// DashboardService aggregates the numbers shown on the home screen
type DashboardService struct {
	financing   *FinancingService
	payment     *PaymentService
	vehicleRepo *repositories.VehicleRepository
	connRepo    *repositories.ConnectionRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	financing *FinancingService,
	payment *PaymentService,
	vehicleRepo *repositories.VehicleRepository,
	connRepo *repositories.ConnectionRepository,
) *DashboardService {
	return &DashboardService{
		financing:   financing,
		payment:     payment,
		vehicleRepo: vehicleRepo,
		connRepo:    connRepo,
	}
}

// Dashboard is the aggregated home-screen payload
type Dashboard struct {
	Financing         *Summary `json:"financing"`
	VehiclesAvailable int64    `json:"vehicles_available"`
	VehiclesSold      int64    `json:"vehicles_sold"`
	GatewayBalance    float64  `json:"gateway_balance"`
	GatewayDemo       bool     `json:"gateway_demo"`
	SessionsConnected int      `json:"sessions_connected"`
}

// Get builds the dashboard. Gateway balance is a degrading read, so a
// dead gateway still renders the rest of the board.
func (s *DashboardService) Get(ctx context.Context) (*Dashboard, error) {
	summary, err := s.financing.GetSummary(ctx)
	if err != nil {
		return nil, err
	}

	available, err := s.vehicleRepo.CountByStatus(ctx, models.VehicleAvailable)
	if err != nil {
		return nil, err
	}
	sold, err := s.vehicleRepo.CountByStatus(ctx, models.VehicleSold)
	if err != nil {
		return nil, err
	}

	connected, err := s.connRepo.ListByStatus(ctx, domain.SessionConnected)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Financing:         summary,
		VehiclesAvailable: available,
		VehiclesSold:      sold,
		GatewayBalance:    s.payment.GetBalance(ctx),
		GatewayDemo:       s.payment.IsDemo(),
		SessionsConnected: len(connected),
	}, nil
}
