package repository

import (
	"crm-backend/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// TenantRepositoryInterface defines the interface for tenant repository operations
type TenantRepositoryInterface interface {
	Create(tenant *models.Tenant) error
	GetByID(id uuid.UUID) (*models.Tenant, error)
	GetBySlug(slug string) (*models.Tenant, error)
	GetAllWithCounts() ([]TenantWithCounts, error)
	Update(tenant *models.Tenant) error
	Delete(id uuid.UUID) error
}

// UserRepositoryInterface defines the interface for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByEmailWithTenant(email string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uuid.UUID) error
}

// CustomerRepositoryInterface defines the interface for customer repository operations
type CustomerRepositoryInterface interface {
	Create(customer *models.Customer) error
	GetByID(id uuid.UUID) (*models.Customer, error)
	GetByEmailAndTenant(email string, tenantID uuid.UUID) (*models.Customer, error)
	ListByTenant(tenantID uuid.UUID, search string, limit, offset int) ([]models.Customer, int64, error)
	Update(customer *models.Customer) error
	Delete(id uuid.UUID) error
}

// MagicLinkRepositoryInterface defines the interface for magic link repository operations
type MagicLinkRepositoryInterface interface {
	Create(link *models.MagicLink) error
	GetByToken(token string) (*models.MagicLink, error)
	Delete(id uuid.UUID) error
}
