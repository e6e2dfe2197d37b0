package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"crm-backend/internal/auth"
	"crm-backend/internal/config"
	"crm-backend/internal/database/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gateRouter(t *testing.T) (*gin.Engine, *auth.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWTSecret:       "test-secret-key-for-gate",
		SessionTTLHours: 24,
	}
	authService := auth.NewAuthService(cfg, nil)

	router := gin.New()
	router.Use(Gate(authService))

	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	router.GET("/", ok)
	router.GET("/login", ok)
	router.GET("/register", ok)
	router.GET("/register/confirm", ok)
	router.GET("/dashboard", ok)
	router.GET("/api/tenants", ok)
	router.GET("/health", ok)

	return router, authService
}

func sessionToken(t *testing.T, authService *auth.AuthService) string {
	t.Helper()
	token, err := authService.GenerateJWT(&auth.UserProfile{
		ID:    "00000000-0000-0000-0000-000000000001",
		Email: "admin@acme.com",
		Name:  "Admin",
		Role:  models.RoleAdmin,
	})
	require.NoError(t, err)
	return token
}

func gateGet(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: token})
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestGateRedirectsAnonymousToLogin(t *testing.T) {
	router, _ := gateRouter(t)

	recorder := gateGet(router, "/dashboard", "")

	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/login", recorder.Header().Get("Location"))
}

func TestGateAllowsAnonymousPublicPages(t *testing.T) {
	router, _ := gateRouter(t)

	for _, path := range []string{"/", "/login", "/register", "/register/confirm"} {
		recorder := gateGet(router, path, "")
		assert.Equal(t, http.StatusOK, recorder.Code, path)
	}
}

func TestGateRedirectsAuthenticatedOffPublicPages(t *testing.T) {
	router, authService := gateRouter(t)
	token := sessionToken(t, authService)

	for _, path := range []string{"/login", "/register"} {
		recorder := gateGet(router, path, token)
		assert.Equal(t, http.StatusFound, recorder.Code, path)
		assert.Equal(t, "/dashboard", recorder.Header().Get("Location"), path)
	}
}

func TestGateAllowsAuthenticatedProtectedPages(t *testing.T) {
	router, authService := gateRouter(t)
	token := sessionToken(t, authService)

	for _, path := range []string{"/", "/dashboard"} {
		recorder := gateGet(router, path, token)
		assert.Equal(t, http.StatusOK, recorder.Code, path)
	}
}

func TestGateBypassesAPIAndHealth(t *testing.T) {
	router, _ := gateRouter(t)

	for _, path := range []string{"/api/tenants", "/health"} {
		recorder := gateGet(router, path, "")
		assert.Equal(t, http.StatusOK, recorder.Code, path)
	}
}

func TestGateReadsBearerHeader(t *testing.T) {
	router, authService := gateRouter(t)
	token := sessionToken(t, authService)

	req, _ := http.NewRequest(http.MethodGet, "/login", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/dashboard", recorder.Header().Get("Location"))
}

func TestGateIgnoresGarbageToken(t *testing.T) {
	router, _ := gateRouter(t)

	recorder := gateGet(router, "/dashboard", "not-a-jwt")

	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/login", recorder.Header().Get("Location"))
}
