package routes

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	cartControllers "github.com/junaidrashid-git/shopfront-api/controllers/cart"
	productcontroller "github.com/junaidrashid-git/shopfront-api/controllers/product"
	userControllers "github.com/junaidrashid-git/shopfront-api/controllers/user"
)

// SetupShopRoutes registers the customer-facing endpoints. None require a token.
func SetupShopRoutes(r *gin.Engine, d Deps) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "Backend is running"})
	})
	r.GET("/healthz", healthz(d.Health))

	// ──────────────── Accounts ────────────────
	r.POST("/signup", userControllers.Signup(d.Accounts))
	r.POST("/login", userControllers.Login(d.Accounts))

	// ──────────────── Browse Products ────────────────
	r.GET("/products", productcontroller.GetProducts(d.Catalog))

	// ──────────────── Shopping Cart ────────────────
	r.POST("/add-to-cart", cartControllers.AddToCart(d.Carts))
	r.GET("/cart", cartControllers.GetCart(d.Carts))
}

func healthz(check func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				log.Printf("❌ Health check failed: %v", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
