package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"crm-backend/internal/auth"
	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/logger"
	"crm-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CustomerHandler handles customer endpoints scoped to the caller's tenant
type CustomerHandler struct {
	customerService service.CustomerServiceInterface
	log             *logger.Logger
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService service.CustomerServiceInterface, log *logger.Logger) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		log:             log,
	}
}

// tenantFromSession resolves the caller's tenant id from the verified
// session claims. The payload never carries a tenant id.
func tenantFromSession(c *gin.Context) (uuid.UUID, bool) {
	claims, ok := auth.GetAuthClaims(c)
	if !ok || claims.TenantID == "" {
		return uuid.Nil, false
	}

	tenantID, err := uuid.Parse(claims.TenantID)
	if err != nil {
		return uuid.Nil, false
	}

	return tenantID, true
}

// CreateCustomer creates a customer in the caller's tenant
// @Summary Create a customer
// @Description Create a new customer record in the authenticated user's tenant
// @Tags customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param customer body service.CreateCustomerRequest true "Customer to create"
// @Success 201 {object} service.CustomerResponse "Customer created"
// @Failure 400 {object} ErrorResponse "Invalid request or duplicate email in tenant"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /api/customers [post]
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	tenantID, ok := tenantFromSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req service.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	customer, err := h.customerService.Create(tenantID, &req)
	if err != nil {
		switch {
		case apperrors.IsAlreadyExists(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case strings.Contains(err.Error(), "validation failed"):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.log.WithError(err).Error("Failed to create customer")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer"})
		}
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// ListCustomers lists the caller's tenant customers with pagination and search
// @Summary List customers
// @Description List customers of the authenticated user's tenant, newest first, with optional case-insensitive search over name, email and phone
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size, capped at 100" default(10)
// @Param search query string false "Search term"
// @Success 200 {object} service.CustomerListResponse "Page of customers"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /api/customers [get]
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	tenantID, ok := tenantFromSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		limit = 10
	}
	search := c.Query("search")

	result, err := h.customerService.List(tenantID, page, limit, search)
	if err != nil {
		h.log.WithError(err).Error("Failed to list customers")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list customers"})
		return
	}

	c.JSON(http.StatusOK, result)
}
