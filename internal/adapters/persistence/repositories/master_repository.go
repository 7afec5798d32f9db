package repositories

import (
	"context"

	"revendapro/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// CustomerRepository handles customer data access
type CustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Create creates a new customer
func (r *CustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

// GetByID gets a customer by ID
func (r *CustomerRepository) GetByID(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).First(&customer, id).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// GetByDocument gets a customer by cpf/cnpj
func (r *CustomerRepository) GetByDocument(ctx context.Context, cpfCnpj string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).Where("cpf_cnpj = ?", cpfCnpj).First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// List lists customers with pagination and optional name keyword filter
func (r *CustomerRepository) List(ctx context.Context, offset, limit int, name string) ([]*models.Customer, int64, error) {
	var customers []*models.Customer
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Customer{})
	if name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}
	query.Count(&total)

	err := query.
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&customers).Error

	return customers, total, err
}

// Update updates a customer
func (r *CustomerRepository) Update(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

// Delete soft deletes a customer
func (r *CustomerRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Customer{}, id).Error
}

// PersonnelRepository handles personnel data access
type PersonnelRepository struct {
	db *gorm.DB
}

// NewPersonnelRepository creates a new personnel repository
func NewPersonnelRepository(db *gorm.DB) *PersonnelRepository {
	return &PersonnelRepository{db: db}
}

// Create creates a new personnel record
func (r *PersonnelRepository) Create(ctx context.Context, p *models.Personnel) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// GetByID gets a personnel record by ID
func (r *PersonnelRepository) GetByID(ctx context.Context, id uint) (*models.Personnel, error) {
	var p models.Personnel
	err := r.db.WithContext(ctx).First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List lists personnel with pagination
func (r *PersonnelRepository) List(ctx context.Context, offset, limit int) ([]*models.Personnel, int64, error) {
	var personnel []*models.Personnel
	var total int64

	r.db.WithContext(ctx).Model(&models.Personnel{}).Count(&total)

	err := r.db.WithContext(ctx).
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&personnel).Error

	return personnel, total, err
}

// Update updates a personnel record
func (r *PersonnelRepository) Update(ctx context.Context, p *models.Personnel) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Delete soft deletes a personnel record
func (r *PersonnelRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Personnel{}, id).Error
}

// BankRepository handles financing bank data access
type BankRepository struct {
	db *gorm.DB
}

// NewBankRepository creates a new bank repository
func NewBankRepository(db *gorm.DB) *BankRepository {
	return &BankRepository{db: db}
}

// Create creates a new bank
func (r *BankRepository) Create(ctx context.Context, bank *models.Bank) error {
	return r.db.WithContext(ctx).Create(bank).Error
}

// GetByID gets a bank by ID
func (r *BankRepository) GetByID(ctx context.Context, id uint) (*models.Bank, error) {
	var bank models.Bank
	err := r.db.WithContext(ctx).First(&bank, id).Error
	if err != nil {
		return nil, err
	}
	return &bank, nil
}

// List lists all active banks
func (r *BankRepository) List(ctx context.Context) ([]*models.Bank, error) {
	var banks []*models.Bank
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&banks).Error
	return banks, err
}

// Update updates a bank
func (r *BankRepository) Update(ctx context.Context, bank *models.Bank) error {
	return r.db.WithContext(ctx).Save(bank).Error
}

// Delete soft deletes a bank
func (r *BankRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Bank{}, id).Error
}

// VehicleRepository handles vehicle inventory data access
type VehicleRepository struct {
	db *gorm.DB
}

// NewVehicleRepository creates a new vehicle repository
func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// Create creates a new vehicle
func (r *VehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	return r.db.WithContext(ctx).Create(vehicle).Error
}

// GetByID gets a vehicle by ID
func (r *VehicleRepository) GetByID(ctx context.Context, id uint) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.db.WithContext(ctx).First(&vehicle, id).Error
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// List lists vehicles with pagination and optional status filter
func (r *VehicleRepository) List(ctx context.Context, offset, limit int, status string) ([]*models.Vehicle, int64, error) {
	var vehicles []*models.Vehicle
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Vehicle{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	query.Count(&total)

	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&vehicles).Error

	return vehicles, total, err
}

// Update updates a vehicle
func (r *VehicleRepository) Update(ctx context.Context, vehicle *models.Vehicle) error {
	return r.db.WithContext(ctx).Save(vehicle).Error
}

// Delete soft deletes a vehicle
func (r *VehicleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Vehicle{}, id).Error
}

// CountByStatus counts vehicles in a given status
func (r *VehicleRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Vehicle{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
