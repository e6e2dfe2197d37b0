package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PageHandler serves the page routes behind the redirect gate. There is no
// server-rendered UI; these respond with a small JSON body so the gate's
// redirect behavior stays observable.
type PageHandler struct{}

// NewPageHandler creates a new page handler
func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Home serves the landing page route
func (h *PageHandler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "home"})
}

// Login serves the login page route
func (h *PageHandler) Login(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "login"})
}

// Register serves the registration page route
func (h *PageHandler) Register(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "register"})
}

// Dashboard serves the dashboard page route
func (h *PageHandler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "dashboard"})
}
