package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/shopfront-api/auth"
	cartControllers "github.com/junaidrashid-git/shopfront-api/controllers/cart"
	orderControllers "github.com/junaidrashid-git/shopfront-api/controllers/order"
	productcontroller "github.com/junaidrashid-git/shopfront-api/controllers/product"
	userControllers "github.com/junaidrashid-git/shopfront-api/controllers/user"
	"github.com/junaidrashid-git/shopfront-api/middleware"
)

// Deps is everything the HTTP layer hands requests to.
type Deps struct {
	Accounts *userControllers.Service
	Catalog  *productcontroller.Service
	Carts    *cartControllers.Service
	Orders   *orderControllers.Service
	Feed     *orderControllers.Feed

	Tokens  *auth.TokenIssuer
	Revoker auth.Revoker

	// Health checks the database for GET /healthz. Nil reports healthy.
	Health func(ctx context.Context) error

	// AccessLog toggles gin's request logger; tests leave it off.
	AccessLog bool
}

// NewEngine builds the gin engine with recovery, request ids, CORS and all routes.
func NewEngine(d Deps) *gin.Engine {
	r := gin.New()
	if d.AccessLog {
		r.Use(gin.Logger())
	}
	r.Use(middleware.RequestID(), middleware.Recovery())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:   []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:          12 * time.Hour,
	}))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	SetupRoutes(r, d)
	return r
}

// SetupRoutes is the single entry-point that wires up the public and admin route groups.
func SetupRoutes(r *gin.Engine, d Deps) {
	// 1️⃣ Public shop routes
	SetupShopRoutes(r, d)

	// 2️⃣ Admin routes (token-protected, except login)
	SetupAdminRoutes(r, d)
}
