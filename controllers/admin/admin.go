package adminController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/shopfront-api/controllers/respond"
	userControllers "github.com/junaidrashid-git/shopfront-api/controllers/user"
	"github.com/junaidrashid-git/shopfront-api/middleware"
	"github.com/junaidrashid-git/shopfront-api/models"
)

// POST /admin/login
func AdminLogin(svc *userControllers.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req userControllers.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Invalid(c, "Email and password required")
			return
		}

		session, err := svc.AdminLogin(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respond.Error(c, err, "Login failed")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"admin_id":   session.Admin.ID,
			"name":       session.Admin.Name,
			"token":      session.Token,
			"expires_at": session.ExpiresAt,
		})
	}
}

// POST /admin/logout
func AdminLogout(svc *userControllers.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.AdminClaims(c)
		if !ok {
			respond.Error(c, models.ErrAdminInvalidCredentials, "Logout failed")
			return
		}

		if err := svc.AdminLogout(c.Request.Context(), claims); err != nil {
			respond.Error(c, err, "Logout failed")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}
