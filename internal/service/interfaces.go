package service

import (
	"context"

	"crm-backend/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// TenantServiceInterface defines the interface for tenant service
type TenantServiceInterface interface {
	Create(req *CreateTenantRequest) (*TenantResponse, error)
	List() ([]TenantListItem, error)
}

// CustomerServiceInterface defines the interface for customer service
type CustomerServiceInterface interface {
	Create(tenantID uuid.UUID, req *CreateCustomerRequest) (*CustomerResponse, error)
	List(tenantID uuid.UUID, page, limit int, search string) (*CustomerListResponse, error)
}

// MagicLinkServiceInterface defines the interface for magic link service
type MagicLinkServiceInterface interface {
	Issue(ctx context.Context, req *IssueMagicLinkRequest, inviterRole models.Role, inviterTenantID string) error
	Validate(token string) (*ValidateMagicLinkResponse, error)
}

// RegistrationServiceInterface defines the interface for registration service
type RegistrationServiceInterface interface {
	Register(req *RegisterRequest) error
}
