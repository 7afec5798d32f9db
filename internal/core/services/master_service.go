package services

import (
	"context"

	"revendapro/internal/adapters/persistence/models"
	"revendapro/internal/adapters/persistence/repositories"
	"revendapro/internal/core/domain"
	"revendapro/internal/pkg/pagination"
)

// MasterService handles the dealership master tables: customers,
// personnel, banks and vehicles.
type MasterService struct {
	customerRepo  *repositories.CustomerRepository
	personnelRepo *repositories.PersonnelRepository
	bankRepo      *repositories.BankRepository
	vehicleRepo   *repositories.VehicleRepository
}

// NewMasterService creates a new master data service
func NewMasterService(
	customerRepo *repositories.CustomerRepository,
	personnelRepo *repositories.PersonnelRepository,
	bankRepo *repositories.BankRepository,
	vehicleRepo *repositories.VehicleRepository,
) *MasterService {
	return &MasterService{
		customerRepo:  customerRepo,
		personnelRepo: personnelRepo,
		bankRepo:      bankRepo,
		vehicleRepo:   vehicleRepo,
	}
}

// ---- Customers ----

// CreateCustomer stores a new customer. CPF/CNPJ must be unique.
func (s *MasterService) CreateCustomer(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	if customer.Name == "" || customer.CpfCnpj == "" {
		return nil, domain.ErrInvalidInput
	}
	if existing, _ := s.customerRepo.GetByDocument(ctx, customer.CpfCnpj); existing != nil {
		return nil, domain.ErrDuplicateEntry
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// ListCustomers returns a page of customers filtered by name
func (s *MasterService) ListCustomers(ctx context.Context, params *pagination.Params, name string) (*pagination.Page, error) {
	customers, total, err := s.customerRepo.List(ctx, params.Offset, params.Limit, name)
	if err != nil {
		return nil, err
	}
	return pagination.NewPage(customers, params, total), nil
}

// GetCustomer returns one customer by id
func (s *MasterService) GetCustomer(ctx context.Context, id uint) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return customer, nil
}

// UpdateCustomer modifies a customer record
func (s *MasterService) UpdateCustomer(ctx context.Context, id uint, changes *models.Customer) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	if changes.Name != "" {
		customer.Name = changes.Name
	}
	if changes.Email != "" {
		customer.Email = changes.Email
	}
	if changes.Phone != "" {
		customer.Phone = changes.Phone
	}
	if changes.Address != "" {
		customer.Address = changes.Address
	}
	if changes.City != "" {
		customer.City = changes.City
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer soft-deletes a customer
func (s *MasterService) DeleteCustomer(ctx context.Context, id uint) error {
	if _, err := s.customerRepo.GetByID(ctx, id); err != nil {
		return domain.ErrNotFound
	}
	return s.customerRepo.Delete(ctx, id)
}

// ---- Personnel ----

// CreatePersonnel stores a new personnel record
func (s *MasterService) CreatePersonnel(ctx context.Context, p *models.Personnel) (*models.Personnel, error) {
	if p.Name == "" || !p.Type.IsValid() {
		return nil, domain.ErrInvalidInput
	}
	if p.CommissionRateBps < 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := s.personnelRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListPersonnel returns a page of personnel
func (s *MasterService) ListPersonnel(ctx context.Context, params *pagination.Params) (*pagination.Page, error) {
	people, total, err := s.personnelRepo.List(ctx, params.Offset, params.Limit)
	if err != nil {
		return nil, err
	}
	return pagination.NewPage(people, params, total), nil
}

// GetPersonnel returns one personnel record by id
func (s *MasterService) GetPersonnel(ctx context.Context, id uint) (*models.Personnel, error) {
	p, err := s.personnelRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// UpdatePersonnel modifies a personnel record
func (s *MasterService) UpdatePersonnel(ctx context.Context, id uint, changes *models.Personnel) (*models.Personnel, error) {
	p, err := s.personnelRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	if changes.Name != "" {
		p.Name = changes.Name
	}
	if changes.Type != "" {
		if !changes.Type.IsValid() {
			return nil, domain.ErrInvalidInput
		}
		p.Type = changes.Type
	}
	if changes.CommissionRateBps > 0 {
		p.CommissionRateBps = changes.CommissionRateBps
	}
	if changes.Phone != "" {
		p.Phone = changes.Phone
	}
	if changes.Email != "" {
		p.Email = changes.Email
	}

	if err := s.personnelRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeletePersonnel soft-deletes a personnel record
func (s *MasterService) DeletePersonnel(ctx context.Context, id uint) error {
	if _, err := s.personnelRepo.GetByID(ctx, id); err != nil {
		return domain.ErrNotFound
	}
	return s.personnelRepo.Delete(ctx, id)
}

// ---- Banks ----

// ListBanks returns the active bank master list
func (s *MasterService) ListBanks(ctx context.Context) ([]*models.Bank, error) {
	return s.bankRepo.List(ctx)
}

// CreateBank stores a new bank
func (s *MasterService) CreateBank(ctx context.Context, bank *models.Bank) (*models.Bank, error) {
	if bank.Code == "" || bank.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	bank.IsActive = true
	if err := s.bankRepo.Create(ctx, bank); err != nil {
		return nil, err
	}
	return bank, nil
}

// ---- Vehicles ----

// CreateVehicle stores a new vehicle
func (s *MasterService) CreateVehicle(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error) {
	if vehicle.Plate == "" || vehicle.Brand == "" || vehicle.Model == "" {
		return nil, domain.ErrInvalidInput
	}
	if vehicle.Status == "" {
		vehicle.Status = models.VehicleAvailable
	}
	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// ListVehicles returns a page of vehicles, optionally filtered by status
func (s *MasterService) ListVehicles(ctx context.Context, params *pagination.Params, status string) (*pagination.Page, error) {
	vehicles, total, err := s.vehicleRepo.List(ctx, params.Offset, params.Limit, status)
	if err != nil {
		return nil, err
	}
	return pagination.NewPage(vehicles, params, total), nil
}

// GetVehicle returns one vehicle by id
func (s *MasterService) GetVehicle(ctx context.Context, id uint) (*models.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return vehicle, nil
}

// UpdateVehicle modifies a vehicle record
func (s *MasterService) UpdateVehicle(ctx context.Context, id uint, changes *models.Vehicle) (*models.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	if changes.Brand != "" {
		vehicle.Brand = changes.Brand
	}
	if changes.Model != "" {
		vehicle.Model = changes.Model
	}
	if changes.ModelYear != 0 {
		vehicle.ModelYear = changes.ModelYear
	}
	if changes.Color != "" {
		vehicle.Color = changes.Color
	}
	if changes.PriceCents > 0 {
		vehicle.PriceCents = changes.PriceCents
	}
	if changes.Status != "" {
		switch changes.Status {
		case models.VehicleAvailable, models.VehicleReserved, models.VehicleSold:
			vehicle.Status = changes.Status
		default:
			return nil, domain.ErrInvalidInput
		}
	}

	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// DeleteVehicle soft-deletes a vehicle
func (s *MasterService) DeleteVehicle(ctx context.Context, id uint) error {
	if _, err := s.vehicleRepo.GetByID(ctx, id); err != nil {
		return domain.ErrNotFound
	}
	return s.vehicleRepo.Delete(ctx, id)
}
