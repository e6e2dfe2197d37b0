package auth

import (
	"net/http"

	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles HTTP requests for authentication
type AuthHandler struct {
	service *AuthService
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(service *AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login handles POST /api/auth/login
// @Summary Log in with email and password
// @Description Verifies credentials and issues a session token, also set as a cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse "Successfully logged in"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 401 {object} map[string]interface{} "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	resp, err := h.service.Login(&req)
	if err != nil {
		if apperrors.IsAuthentication(err) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		logger.New().WithError(err).Error("Login failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
		return
	}

	c.SetCookie(SessionCookieName, resp.AccessToken, int(resp.ExpiresIn), "/", "", false, true)
	c.JSON(http.StatusOK, resp)
}

// Logout handles POST /api/auth/logout
// @Summary Log out
// @Description Clears the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{} "Logged out"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Session handles GET /api/auth/session
// @Summary Get the current session
// @Description Returns the verified session claims for the caller
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{} "Session claims"
// @Failure 401 {object} map[string]interface{} "Not authenticated"
// @Security BearerAuth
// @Router /auth/session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"user": UserProfile{
			ID:         claims.UserID,
			Email:      claims.Email,
			Name:       claims.Name,
			Role:       claims.Role,
			TenantID:   claims.TenantID,
			TenantSlug: claims.TenantSlug,
		},
	})
}
