package handlers

import (
	"errors"
	"net/http"
	"strings"

	"crm-backend/internal/auth"
	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/logger"
	"crm-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// MagicLinkHandler handles invitation token endpoints
type MagicLinkHandler struct {
	magicLinkService service.MagicLinkServiceInterface
	log              *logger.Logger
}

// NewMagicLinkHandler creates a new magic link handler
func NewMagicLinkHandler(magicLinkService service.MagicLinkServiceInterface, log *logger.Logger) *MagicLinkHandler {
	return &MagicLinkHandler{
		magicLinkService: magicLinkService,
		log:              log,
	}
}

// IssueMagicLink issues an invitation token and emails the registration link
// @Summary Issue an invitation
// @Description Issue a single-use registration token for the given email and send the registration link. Super admins invite tenant admins, tenant admins invite customers into their own tenant.
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param invitation body service.IssueMagicLinkRequest true "Invitee email"
// @Success 200 {object} map[string]string "Invitation sent"
// @Failure 400 {object} ErrorResponse "Invalid request or invitee already exists"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /api/magic-link [post]
func (h *MagicLinkHandler) IssueMagicLink(c *gin.Context) {
	claims, ok := auth.GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req service.IssueMagicLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.magicLinkService.Issue(c.Request.Context(), &req, claims.Role, claims.TenantID); err != nil {
		switch {
		case apperrors.IsAuthorization(err):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		case apperrors.IsAlreadyExists(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case strings.Contains(err.Error(), "validation failed"):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.log.WithError(err).Error("Failed to issue magic link")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send invitation"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invitation sent"})
}

// ValidateMagicLink checks an invitation token without consuming it
// @Summary Validate an invitation token
// @Description Check whether a registration token exists and has not expired. The token stays valid until registration completes.
// @Tags invitations
// @Produce json
// @Param token query string true "Registration token"
// @Success 200 {object} service.ValidateMagicLinkResponse "Token is valid"
// @Failure 400 {object} ErrorResponse "Token missing, unknown or expired"
// @Router /api/magic-link [get]
func (h *MagicLinkHandler) ValidateMagicLink(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token is required"})
		return
	}

	result, err := h.magicLinkService.Validate(token)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidToken), errors.Is(err, apperrors.ErrTokenExpired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.log.WithError(err).Error("Failed to validate magic link")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate token"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
