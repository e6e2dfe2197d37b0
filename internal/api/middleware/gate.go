package middleware

import (
	"net/http"
	"strings"

	"crm-backend/internal/auth"

	"github.com/gin-gonic/gin"
)

// publicPaths are the page routes reachable without a session
var publicPaths = []string{"/login", "/register"}

func isPublicPath(path string) bool {
	for _, p := range publicPaths {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// Gate is the page-level redirect middleware. API, health and swagger routes
// authorize themselves and pass straight through. Authenticated users are
// pushed off the public pages onto the dashboard, unauthenticated users are
// pushed off every protected page onto /login. The landing page stays
// reachable either way.
func Gate(authService *auth.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if strings.HasPrefix(path, "/api") ||
			strings.HasPrefix(path, "/health") ||
			strings.HasPrefix(path, "/swagger") {
			c.Next()
			return
		}

		authenticated := false
		if token := gateToken(c); token != "" {
			if _, err := authService.ValidateJWT(token); err == nil {
				authenticated = true
			}
		}

		public := isPublicPath(path)

		if authenticated && public {
			c.Redirect(http.StatusFound, "/dashboard")
			c.Abort()
			return
		}

		if !authenticated && !public && path != "/" {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Next()
	}
}

func gateToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	cookie, err := c.Cookie(auth.SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie
}
