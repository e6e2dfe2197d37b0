package repository

import (
	"crm-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerRepository handles database operations for customers
type CustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Create creates a new customer
func (r *CustomerRepository) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

// GetByID retrieves a customer by ID
func (r *CustomerRepository) GetByID(id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.First(&customer, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// GetByEmailAndTenant retrieves a customer by email within a tenant
func (r *CustomerRepository) GetByEmailAndTenant(email string, tenantID uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.First(&customer, "email = ? AND tenant_id = ?", email, tenantID).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// ListByTenant retrieves a page of customers for a tenant, newest first,
// optionally filtered by a case-insensitive substring over name, email and
// phone.
func (r *CustomerRepository) ListByTenant(tenantID uuid.UUID, search string, limit, offset int) ([]models.Customer, int64, error) {
	var customers []models.Customer
	var total int64

	query := r.db.Model(&models.Customer{}).Where("tenant_id = ?", tenantID)
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ?", pattern, pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&customers).Error
	if err != nil {
		return nil, 0, err
	}

	return customers, total, nil
}

// Update updates a customer
func (r *CustomerRepository) Update(customer *models.Customer) error {
	return r.db.Save(customer).Error
}

// Delete deletes a customer
func (r *CustomerRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Customer{}, "id = ?", id).Error
}
