package routes

import (
	"github.com/gin-gonic/gin"
	adminController "github.com/junaidrashid-git/shopfront-api/controllers/admin"
	orderControllers "github.com/junaidrashid-git/shopfront-api/controllers/order"
	productcontroller "github.com/junaidrashid-git/shopfront-api/controllers/product"
	"github.com/junaidrashid-git/shopfront-api/middleware"
)

// SetupAdminRoutes registers all “/admin/*” endpoints. Everything but login
// requires an admin token.
func SetupAdminRoutes(r *gin.Engine, d Deps) {
	r.POST("/admin/login", adminController.AdminLogin(d.Accounts))

	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.RequireAdmin(d.Tokens, d.Revoker))
	{
		adminGroup.POST("/logout", adminController.AdminLogout(d.Accounts))
		adminGroup.GET("/stats", orderControllers.GetStats(d.Orders))

		// ─────────── Product Management ───────────
		adminGroup.POST("/product", productcontroller.CreateProduct(d.Catalog))
		adminGroup.DELETE("/product", productcontroller.DeleteProduct(d.Catalog))
		adminGroup.GET("/product/export", productcontroller.ExportProductsToExcel(d.Catalog))
		adminGroup.POST("/product/import", productcontroller.ImportProductsFromExcel(d.Catalog))

		// ─────────── Order Management ───────────
		adminGroup.GET("/orders", orderControllers.GetAllOrders(d.Orders))
		adminGroup.PUT("/orders", orderControllers.UpdateOrderStatus(d.Orders))

		if d.Feed != nil {
			adminGroup.GET("/events/ws", d.Feed.Handler())
		}
	}
}
