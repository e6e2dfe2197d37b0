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

// CustomerService handles business logic for customers
type CustomerService struct {
	customers repository.CustomerRepositoryInterface
	validator *validator.Validate
}

// NewCustomerService creates a new customer service
func NewCustomerService(customers repository.CustomerRepositoryInterface, validator *validator.Validate) *CustomerService {
	return &CustomerService{
		customers: customers,
		validator: validator,
	}
}

// CreateCustomerRequest represents the request to create a customer
type CreateCustomerRequest struct {
	Name    string  `json:"name" validate:"required,min=1,max=100"`
	Email   string  `json:"email" validate:"required,email,max=255"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=255"`
}

// CustomerResponse represents the response for customer operations
type CustomerResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	Address   *string   `json:"address"`
	TenantID  uuid.UUID `json:"tenantId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Pagination describes a page of a filtered listing
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int   `json:"totalPages"`
}

// CustomerListResponse represents a paginated list of customers
type CustomerListResponse struct {
	Customers  []CustomerResponse `json:"customers"`
	Pagination Pagination         `json:"pagination"`
}

// Create creates a new customer in the given tenant. The tenant id always
// comes from the caller's verified session, never from the payload.
func (s *CustomerService) Create(tenantID uuid.UUID, req *CreateCustomerRequest) (*CustomerResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	existing, err := s.customers.GetByEmailAndTenant(req.Email, tenantID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing customer: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrCustomerExists
	}

	customer := &models.Customer{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		TenantID: tenantID,
	}
	if err := s.customers.Create(customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	return toCustomerResponse(customer), nil
}

// List retrieves a page of the tenant's customers, filtered by a
// case-insensitive substring over name, email and phone.
func (s *CustomerService) List(tenantID uuid.UUID, page, limit int, search string) (*CustomerListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	offset := (page - 1) * limit
	customers, total, err := s.customers.ListByTenant(tenantID, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = *toCustomerResponse(&customers[i])
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &CustomerListResponse{
		Customers: responses,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			TotalCount: total,
			TotalPages: totalPages,
		},
	}, nil
}

func toCustomerResponse(customer *models.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:        customer.ID,
		Name:      customer.Name,
		Email:     customer.Email,
		Phone:     customer.Phone,
		Address:   customer.Address,
		TenantID:  customer.TenantID,
		CreatedAt: customer.CreatedAt,
	}
}
