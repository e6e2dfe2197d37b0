package handlers

import (
	"errors"
	"net/http"
	"strings"

	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/logger"
	"crm-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterHandler handles magic-link registration
type RegisterHandler struct {
	registrationService service.RegistrationServiceInterface
	log                 *logger.Logger
}

// NewRegisterHandler creates a new registration handler
func NewRegisterHandler(registrationService service.RegistrationServiceInterface, log *logger.Logger) *RegisterHandler {
	return &RegisterHandler{
		registrationService: registrationService,
		log:                 log,
	}
}

// Register completes a magic-link registration
// @Summary Register via invitation
// @Description Consume a magic-link token and create the associated account. Without a tenant id the registrant becomes the admin of a new tenant, with one they are added as a customer of that tenant.
// @Tags registration
// @Accept json
// @Produce json
// @Param registration body service.RegisterRequest true "Registration details"
// @Success 201 {object} map[string]string "Registration successful"
// @Failure 400 {object} ErrorResponse "Invalid token, expired token, email mismatch or invalid tenant"
// @Router /api/register [post]
func (h *RegisterHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.registrationService.Register(&req); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidToken),
			errors.Is(err, apperrors.ErrTokenExpired),
			errors.Is(err, apperrors.ErrEmailMismatch),
			errors.Is(err, apperrors.ErrInvalidTenant):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case strings.Contains(err.Error(), "validation failed"):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.log.WithError(err).Error("Registration failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Registration successful"})
}
