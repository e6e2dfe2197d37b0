package auth

import (
	"errors"
	"fmt"
	"time"

	"crm-backend/internal/config"
	"crm-backend/internal/database/models"
	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// AuthService issues and validates session tokens for credential login.
type AuthService struct {
	cfg   *config.Config
	users repository.UserRepositoryInterface
}

// AuthClaims represents the session token claims. Every protected handler
// re-derives the caller's role and tenant from these verified claims and
// never from the request payload.
type AuthClaims struct {
	UserID     string      `json:"user_id"`
	Email      string      `json:"email"`
	Name       string      `json:"name"`
	Role       models.Role `json:"role"`
	TenantID   string      `json:"tenant_id,omitempty"`
	TenantSlug string      `json:"tenant_slug,omitempty"`
	jwt.RegisteredClaims
}

// UserProfile is the user shape returned alongside a session token.
type UserProfile struct {
	ID         string      `json:"id"`
	Email      string      `json:"email"`
	Name       string      `json:"name"`
	Role       models.Role `json:"role"`
	TenantID   string      `json:"tenantId,omitempty"`
	TenantSlug string      `json:"tenantSlug,omitempty"`
}

// LoginRequest represents the credential login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents a successful login
type LoginResponse struct {
	AccessToken string      `json:"accessToken"`
	TokenType   string      `json:"tokenType"`
	ExpiresIn   int64       `json:"expiresIn"`
	Profile     UserProfile `json:"profile"`
}

// NewAuthService creates a new authentication service
func NewAuthService(cfg *config.Config, users repository.UserRepositoryInterface) *AuthService {
	return &AuthService{cfg: cfg, users: users}
}

// Login verifies credentials and issues a session token.
func (s *AuthService) Login(req *LoginRequest) (*LoginResponse, error) {
	user, err := s.users.GetByEmailWithTenant(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	profile := profileFor(user)
	token, err := s.GenerateJWT(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	return &LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.sessionTTL().Seconds()),
		Profile:     *profile,
	}, nil
}

// GenerateJWT creates a signed session token for the given profile.
func (s *AuthService) GenerateJWT(profile *UserProfile) (string, error) {
	now := time.Now()
	claims := &AuthClaims{
		UserID:     profile.ID,
		Email:      profile.Email,
		Name:       profile.Name,
		Role:       profile.Role,
		TenantID:   profile.TenantID,
		TenantSlug: profile.TenantSlug,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL())),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "crm-backend",
			Subject:   profile.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ValidateJWT validates and parses a session token
func (s *AuthService) ValidateJWT(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*AuthClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

func (s *AuthService) sessionTTL() time.Duration {
	return time.Duration(s.cfg.SessionTTLHours) * time.Hour
}

func profileFor(user *models.User) *UserProfile {
	profile := &UserProfile{
		ID:    user.ID.String(),
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	}
	if user.TenantID != nil {
		profile.TenantID = user.TenantID.String()
	}
	if user.Tenant != nil {
		profile.TenantSlug = user.Tenant.Slug
	}
	return profile
}
