package service

import (
	"errors"
	"fmt"
	"time"

	"crm-backend/internal/database/models"
	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TenantService handles business logic for tenants
type TenantService struct {
	tenants   repository.TenantRepositoryInterface
	users     repository.UserRepositoryInterface
	validator *validator.Validate
}

// NewTenantService creates a new tenant service
func NewTenantService(tenants repository.TenantRepositoryInterface, users repository.UserRepositoryInterface, validator *validator.Validate) *TenantService {
	return &TenantService{
		tenants:   tenants,
		users:     users,
		validator: validator,
	}
}

// CreateTenantRequest represents the request to create a tenant
type CreateTenantRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=100"`
	Slug       string `json:"slug" validate:"required,min=1,max=100"`
	AdminEmail string `json:"adminEmail" validate:"required,email"`
}

// TenantResponse represents the response for tenant operations
type TenantResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
}

// TenantListItem is a tenant together with its user and customer counts,
// as shown on the super-admin dashboard.
type TenantListItem struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	CreatedAt     time.Time `json:"createdAt"`
	UserCount     int64     `json:"userCount"`
	CustomerCount int64     `json:"customerCount"`
}

// Create creates a new tenant and, when a user with the given admin email
// already exists, promotes that user to ADMIN of it. The caller's role has
// already been checked at the route.
func (s *TenantService) Create(req *CreateTenantRequest) (*TenantResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	existing, err := s.tenants.GetBySlug(req.Slug)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing tenant by slug: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrTenantExists
	}

	tenant := &models.Tenant{
		Name: req.Name,
		Slug: req.Slug,
	}
	if err := s.tenants.Create(tenant); err != nil {
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}

	// Promote an existing account to admin of the new tenant. A missing
	// account is fine: the admin is expected to arrive through a magic link.
	admin, err := s.users.GetByEmail(req.AdminEmail)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up admin user: %w", err)
	}
	if admin != nil {
		admin.Role = models.RoleAdmin
		admin.TenantID = &tenant.ID
		if err := s.users.Update(admin); err != nil {
			return nil, fmt.Errorf("failed to promote admin user: %w", err)
		}
	}

	return &TenantResponse{
		ID:        tenant.ID,
		Name:      tenant.Name,
		Slug:      tenant.Slug,
		CreatedAt: tenant.CreatedAt,
	}, nil
}

// List retrieves all tenants with their user and customer counts
func (s *TenantService) List() ([]TenantListItem, error) {
	rows, err := s.tenants.GetAllWithCounts()
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}

	items := make([]TenantListItem, len(rows))
	for i, row := range rows {
		items[i] = TenantListItem{
			ID:            row.ID,
			Name:          row.Name,
			Slug:          row.Slug,
			CreatedAt:     row.CreatedAt,
			UserCount:     row.UserCount,
			CustomerCount: row.CustomerCount,
		}
	}
	return items, nil
}
