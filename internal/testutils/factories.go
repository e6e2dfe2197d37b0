package testutils

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"crm-backend/internal/database/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TenantFactory provides methods to create test Tenant data
type TenantFactory struct{}

// Create creates a test Tenant with default values
func (f *TenantFactory) Create() *models.Tenant {
	id := uuid.New()
	return &models.Tenant{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name: "Test Tenant",
		Slug: "test-tenant-" + id.String()[:8],
	}
}

// WithSlug sets a custom slug for the tenant
func (f *TenantFactory) WithSlug(slug string) *models.Tenant {
	tenant := f.Create()
	tenant.Slug = slug
	return tenant
}

// UserFactory provides methods to create test User data
type UserFactory struct{}

// Create creates a test USER-role user with default values. The password
// behind the stored hash is "password123".
func (f *UserFactory) Create() *models.User {
	id := uuid.New()
	return &models.User{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:         "Test User",
		Email:        "user-" + id.String()[:8] + "@test.com",
		PasswordHash: HashPassword("password123"),
		Role:         models.RoleUser,
	}
}

// WithEmail sets a custom email for the user
func (f *UserFactory) WithEmail(email string) *models.User {
	user := f.Create()
	user.Email = email
	return user
}

// WithRole sets a custom role for the user
func (f *UserFactory) WithRole(role models.Role) *models.User {
	user := f.Create()
	user.Role = role
	return user
}

// WithTenant binds the user to a tenant
func (f *UserFactory) WithTenant(tenantID uuid.UUID) *models.User {
	user := f.Create()
	user.TenantID = &tenantID
	return user
}

// CustomerFactory provides methods to create test Customer data
type CustomerFactory struct{}

// Create creates a test Customer bound to the given tenant
func (f *CustomerFactory) Create(tenantID uuid.UUID) *models.Customer {
	id := uuid.New()
	phone := "+1-555-0123"
	return &models.Customer{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:     "Test Customer",
		Email:    "customer-" + id.String()[:8] + "@test.com",
		Phone:    &phone,
		TenantID: tenantID,
	}
}

// WithEmail sets a custom email for the customer
func (f *CustomerFactory) WithEmail(tenantID uuid.UUID, email string) *models.Customer {
	customer := f.Create(tenantID)
	customer.Email = email
	return customer
}

// MagicLinkFactory provides methods to create test MagicLink data
type MagicLinkFactory struct{}

// Create creates an unexpired test MagicLink for the given email
func (f *MagicLinkFactory) Create(email string) *models.MagicLink {
	raw := make([]byte, 32)
	_, _ = rand.Read(raw)
	return &models.MagicLink{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Email:   email,
		Token:   hex.EncodeToString(raw),
		Expires: time.Now().Add(24 * time.Hour),
	}
}

// Expired creates a MagicLink whose expiry is already in the past
func (f *MagicLinkFactory) Expired(email string) *models.MagicLink {
	link := f.Create(email)
	link.Expires = time.Now().Add(-1 * time.Hour)
	return link
}

// FactorySet groups all factories for convenient access in tests
type FactorySet struct {
	Tenant    *TenantFactory
	User      *UserFactory
	Customer  *CustomerFactory
	MagicLink *MagicLinkFactory
}

// NewFactorySet creates a new FactorySet
func NewFactorySet() *FactorySet {
	return &FactorySet{
		Tenant:    &TenantFactory{},
		User:      &UserFactory{},
		Customer:  &CustomerFactory{},
		MagicLink: &MagicLinkFactory{},
	}
}

// HashPassword bcrypt-hashes a plaintext password for test fixtures
func HashPassword(password string) string {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return string(hash)
}
