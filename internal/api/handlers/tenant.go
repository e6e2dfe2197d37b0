package handlers

import (
	"net/http"
	"strings"

	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/logger"
	"crm-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// TenantHandler handles tenant management endpoints
type TenantHandler struct {
	tenantService service.TenantServiceInterface
	log           *logger.Logger
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(tenantService service.TenantServiceInterface, log *logger.Logger) *TenantHandler {
	return &TenantHandler{
		tenantService: tenantService,
		log:           log,
	}
}

// CreateTenant creates a new tenant
// @Summary Create a tenant
// @Description Create a new tenant with a unique slug. Super admin only.
// @Tags tenants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param tenant body service.CreateTenantRequest true "Tenant to create"
// @Success 201 {object} service.TenantResponse "Tenant created"
// @Failure 400 {object} ErrorResponse "Invalid request or slug already taken"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /api/tenants [post]
func (h *TenantHandler) CreateTenant(c *gin.Context) {
	var req service.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	tenant, err := h.tenantService.Create(&req)
	if err != nil {
		switch {
		case apperrors.IsAlreadyExists(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case strings.Contains(err.Error(), "validation failed"):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.log.WithError(err).Error("Failed to create tenant")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tenant"})
		}
		return
	}

	c.JSON(http.StatusCreated, tenant)
}

// ListTenants lists all tenants with their user and customer counts
// @Summary List tenants
// @Description List all tenants together with their user and customer counts. Super admin only.
// @Tags tenants
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.TenantListItem "Tenants"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /api/tenants [get]
func (h *TenantHandler) ListTenants(c *gin.Context) {
	tenants, err := h.tenantService.List()
	if err != nil {
		h.log.WithError(err).Error("Failed to list tenants")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tenants"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tenants": tenants})
}
