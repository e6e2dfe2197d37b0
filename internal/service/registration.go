package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"crm-backend/internal/auth"
	"crm-backend/internal/database/models"
	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// RegistrationService consumes magic-link tokens. It is the only component
// that deletes a MagicLink row, and only after the registration effects have
// landed. All writes of a single registration run in one transaction, so a
// partial failure cannot leave an orphaned tenant or customer, or a
// consumed-looking token that is still present.
type RegistrationService struct {
	db        *gorm.DB
	validator *validator.Validate
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(db *gorm.DB, validator *validator.Validate) *RegistrationService {
	return &RegistrationService{db: db, validator: validator}
}

// RegisterRequest represents the registration payload. TenantID is present
// only for admin-originated invitations; it is trusted here because there is
// no session yet — the token issuer put it into the emailed link.
type RegisterRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=100"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Token    string  `json:"token" validate:"required"`
	TenantID *string `json:"tenantId,omitempty"`
}

// Register validates and consumes a magic-link token. Without a tenant id
// the registrant becomes the ADMIN of a freshly created tenant (super-admin
// invite); with one they become a customer plus a USER of that tenant
// (admin invite).
func (s *RegistrationService) Register(req *RegisterRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	magicLinks := repository.NewMagicLinkRepository(s.db)
	link, err := magicLinks.GetByToken(req.Token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrInvalidToken
		}
		return fmt.Errorf("failed to look up magic link: %w", err)
	}

	if link.IsExpired(time.Now()) {
		return apperrors.ErrTokenExpired
	}

	if link.Email != req.Email {
		return apperrors.ErrEmailMismatch
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var tenantID uuid.UUID
		var role models.Role

		if req.TenantID == nil {
			tenant, err := s.createTenantFor(tx, req.Name)
			if err != nil {
				return err
			}
			tenantID = tenant.ID
			role = models.RoleAdmin
		} else {
			id, err := uuid.Parse(*req.TenantID)
			if err != nil {
				return apperrors.ErrInvalidTenant
			}
			tenants := repository.NewTenantRepository(tx)
			if _, err := tenants.GetByID(id); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.ErrInvalidTenant
				}
				return fmt.Errorf("failed to look up tenant: %w", err)
			}

			customers := repository.NewCustomerRepository(tx)
			customer := &models.Customer{
				Name:     req.Name,
				Email:    req.Email,
				TenantID: id,
			}
			if err := customers.Create(customer); err != nil {
				return fmt.Errorf("failed to create customer: %w", err)
			}
			tenantID = id
			role = models.RoleUser
		}

		if err := s.upsertUser(tx, req, hash, role, tenantID); err != nil {
			return err
		}

		// Consume the invitation last, inside the same transaction.
		txLinks := repository.NewMagicLinkRepository(tx)
		if err := txLinks.Delete(link.ID); err != nil {
			return fmt.Errorf("failed to delete magic link: %w", err)
		}
		return nil
	})
}

// createTenantFor derives a tenant from the registrant's name: the slug is
// the lowercased name with whitespace runs collapsed to hyphens, and a
// timestamp suffix disambiguates a collision.
func (s *RegistrationService) createTenantFor(tx *gorm.DB, name string) (*models.Tenant, error) {
	tenants := repository.NewTenantRepository(tx)

	slug := Slugify(name)
	existing, err := tenants.GetBySlug(slug)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing tenant by slug: %w", err)
	}
	if existing != nil {
		slug = fmt.Sprintf("%s-%d", slug, time.Now().UnixMilli())
	}

	tenant := &models.Tenant{
		Name: name,
		Slug: slug,
	}
	if err := tenants.Create(tenant); err != nil {
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}
	return tenant, nil
}

// upsertUser creates the registrant's account, or rebinds an existing
// account with the same email to the new role and tenant.
func (s *RegistrationService) upsertUser(tx *gorm.DB, req *RegisterRequest, passwordHash string, role models.Role, tenantID uuid.UUID) error {
	users := repository.NewUserRepository(tx)

	user, err := users.GetByEmail(req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up user: %w", err)
	}

	if user != nil {
		user.Name = req.Name
		user.PasswordHash = passwordHash
		user.Role = role
		user.TenantID = &tenantID
		if err := users.Update(user); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
		return nil
	}

	user = &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         role,
		TenantID:     &tenantID,
	}
	if err := users.Create(user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Slugify lowercases a name and collapses whitespace runs to hyphens.
func Slugify(name string) string {
	return whitespaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}
