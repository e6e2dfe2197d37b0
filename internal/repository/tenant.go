package repository

import (
	"crm-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TenantRepository handles database operations for tenants
type TenantRepository struct {
	db *gorm.DB
}

// NewTenantRepository creates a new tenant repository
func NewTenantRepository(db *gorm.DB) *TenantRepository {
	return &TenantRepository{db: db}
}

// TenantWithCounts is a tenant row annotated with its user and customer counts.
type TenantWithCounts struct {
	models.Tenant
	UserCount     int64 `json:"userCount" gorm:"column:user_count"`
	CustomerCount int64 `json:"customerCount" gorm:"column:customer_count"`
}

// Create creates a new tenant
func (r *TenantRepository) Create(tenant *models.Tenant) error {
	return r.db.Create(tenant).Error
}

// GetByID retrieves a tenant by ID
func (r *TenantRepository) GetByID(id uuid.UUID) (*models.Tenant, error) {
	var tenant models.Tenant
	err := r.db.First(&tenant, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// GetBySlug retrieves a tenant by slug
func (r *TenantRepository) GetBySlug(slug string) (*models.Tenant, error) {
	var tenant models.Tenant
	err := r.db.First(&tenant, "slug = ?", slug).Error
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// GetAllWithCounts retrieves all tenants with their user and customer counts
func (r *TenantRepository) GetAllWithCounts() ([]TenantWithCounts, error) {
	var rows []TenantWithCounts
	err := r.db.Model(&models.Tenant{}).
		Select("tenants.*, " +
			"(SELECT count(*) FROM users WHERE users.tenant_id = tenants.id) AS user_count, " +
			"(SELECT count(*) FROM customers WHERE customers.tenant_id = tenants.id) AS customer_count").
		Order("tenants.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Update updates a tenant
func (r *TenantRepository) Update(tenant *models.Tenant) error {
	return r.db.Save(tenant).Error
}

// Delete deletes a tenant
func (r *TenantRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Tenant{}, "id = ?", id).Error
}
