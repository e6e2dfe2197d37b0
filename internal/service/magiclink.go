package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"crm-backend/internal/database/models"
	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/mailer"
	"crm-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// magicLinkTTL is how long an invitation stays valid.
const magicLinkTTL = 24 * time.Hour

// MagicLinkService issues and validates invitation tokens. Tokens are
// single-use by construction: this service never deletes them, only the
// registration flow does, after a successful registration.
type MagicLinkService struct {
	magicLinks repository.MagicLinkRepositoryInterface
	users      repository.UserRepositoryInterface
	customers  repository.CustomerRepositoryInterface
	mailer     mailer.Mailer
	appURL     string
	validator  *validator.Validate
}

// NewMagicLinkService creates a new magic link service
func NewMagicLinkService(
	magicLinks repository.MagicLinkRepositoryInterface,
	users repository.UserRepositoryInterface,
	customers repository.CustomerRepositoryInterface,
	m mailer.Mailer,
	appURL string,
	validator *validator.Validate,
) *MagicLinkService {
	return &MagicLinkService{
		magicLinks: magicLinks,
		users:      users,
		customers:  customers,
		mailer:     m,
		appURL:     appURL,
		validator:  validator,
	}
}

// IssueMagicLinkRequest represents the request to issue an invitation
type IssueMagicLinkRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ValidateMagicLinkResponse represents a token validation result
type ValidateMagicLinkResponse struct {
	Valid bool   `json:"valid"`
	Email string `json:"email"`
}

// Issue generates an opaque invitation token for the email, persists it with
// a 24h expiry and mails the registration link. The branch depends on who is
// inviting: a super admin invites a future tenant admin (the email must not
// belong to an existing user), a tenant admin invites a customer into their
// own tenant (the email must not already be a customer there).
func (s *MagicLinkService) Issue(ctx context.Context, req *IssueMagicLinkRequest, inviterRole models.Role, inviterTenantID string) error {
	if err := s.validator.Struct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	registrationURL, err := s.checkInviteTarget(req.Email, inviterRole, inviterTenantID)
	if err != nil {
		return err
	}

	token, err := generateToken()
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	link := &models.MagicLink{
		Email:   req.Email,
		Token:   token,
		Expires: time.Now().Add(magicLinkTTL),
	}
	if err := s.magicLinks.Create(link); err != nil {
		return fmt.Errorf("failed to store magic link: %w", err)
	}

	inv := &mailer.Invitation{
		To:              req.Email,
		RegistrationURL: fmt.Sprintf(registrationURL, token),
	}
	if err := s.mailer.SendInvitation(ctx, inv); err != nil {
		return fmt.Errorf("failed to send invitation email: %w", err)
	}

	return nil
}

// checkInviteTarget runs the role-specific duplicate check and returns the
// registration URL template (with a %s placeholder for the token).
func (s *MagicLinkService) checkInviteTarget(email string, inviterRole models.Role, inviterTenantID string) (string, error) {
	switch inviterRole {
	case models.RoleSuperAdmin:
		existing, err := s.users.GetByEmail(email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("failed to check existing user: %w", err)
		}
		if existing != nil {
			return "", apperrors.ErrUserExists
		}
		return s.appURL + "/register?token=%s", nil

	case models.RoleAdmin:
		tenantID, err := uuid.Parse(inviterTenantID)
		if err != nil {
			return "", apperrors.ErrUnauthorized
		}
		existing, err := s.customers.GetByEmailAndTenant(email, tenantID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("failed to check existing customer: %w", err)
		}
		if existing != nil {
			return "", apperrors.ErrCustomerExists
		}
		return s.appURL + "/register?token=%s&tenantId=" + tenantID.String(), nil
	}

	return "", apperrors.ErrUnauthorized
}

// Validate checks a token without consuming it.
func (s *MagicLinkService) Validate(token string) (*ValidateMagicLinkResponse, error) {
	if token == "" {
		return nil, apperrors.NewValidationError("token", "is required")
	}

	link, err := s.magicLinks.GetByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to look up magic link: %w", err)
	}

	if link.IsExpired(time.Now()) {
		return nil, apperrors.ErrTokenExpired
	}

	return &ValidateMagicLinkResponse{Valid: true, Email: link.Email}, nil
}

// generateToken returns 32 random bytes hex-encoded, the opaque invitation
// token embedded in registration links.
func generateToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}
