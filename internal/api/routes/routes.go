package routes

import (
	"crm-backend/internal/api/handlers"
	"crm-backend/internal/api/middleware"
	"crm-backend/internal/auth"
	"crm-backend/internal/config"
	"crm-backend/internal/database/models"
	"crm-backend/internal/logger"
	"crm-backend/internal/mailer"
	"crm-backend/internal/repository"
	"crm-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Create router
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg))

	log := logger.New()

	// Initialize validator
	validate := validator.New()

	// Initialize repositories
	tenantRepo := repository.NewTenantRepository(db)
	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	magicLinkRepo := repository.NewMagicLinkRepository(db)

	// Initialize services
	tenantService := service.NewTenantService(tenantRepo, userRepo, validate)
	customerService := service.NewCustomerService(customerRepo, validate)
	magicLinkService := service.NewMagicLinkService(magicLinkRepo, userRepo, customerRepo, mailer.New(cfg), cfg.AppURL, validate)
	registrationService := service.NewRegistrationService(db, validate)

	// Initialize auth services
	authService := auth.NewAuthService(cfg, userRepo)
	authHandler := auth.NewAuthHandler(authService)
	authMiddleware := auth.NewAuthMiddleware(authService)

	// Page gate sits in front of the page routes only
	router.Use(middleware.Gate(authService))

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	tenantHandler := handlers.NewTenantHandler(tenantService, log)
	customerHandler := handlers.NewCustomerHandler(customerService, log)
	magicLinkHandler := handlers.NewMagicLinkHandler(magicLinkService, log)
	registerHandler := handlers.NewRegisterHandler(registrationService, log)
	pageHandler := handlers.NewPageHandler()

	// Health check routes
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	// Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Page routes behind the gate
	router.GET("/", pageHandler.Home)
	router.GET("/login", pageHandler.Login)
	router.GET("/register", pageHandler.Register)
	router.GET("/dashboard", pageHandler.Dashboard)

	// Auth routes
	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/logout", authHandler.Logout)
		authGroup.GET("/session", authMiddleware.RequireAuth(), authHandler.Session)
	}

	// Public registration routes
	api := router.Group("/api")
	{
		api.POST("/register", registerHandler.Register)
		api.GET("/magic-link", magicLinkHandler.ValidateMagicLink)
	}

	// Tenant routes, super admin only
	tenants := api.Group("/tenants")
	tenants.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRole(models.RoleSuperAdmin))
	{
		tenants.GET("", tenantHandler.ListTenants)
		tenants.POST("", tenantHandler.CreateTenant)
	}

	// Customer routes, scoped to the caller's tenant. Any tenant member may
	// list, only a tenant admin may create.
	customers := api.Group("/customers")
	customers.Use(authMiddleware.RequireAuth(), authMiddleware.RequireTenant())
	{
		customers.GET("", customerHandler.ListCustomers)
		customers.POST("", authMiddleware.RequireRole(models.RoleAdmin), customerHandler.CreateCustomer)
	}

	// Invitation issuance, super admins and tenant admins
	api.POST("/magic-link", authMiddleware.RequireAuth(), authMiddleware.RequireRole(models.RoleSuperAdmin, models.RoleAdmin), magicLinkHandler.IssueMagicLink)

	return router
}
