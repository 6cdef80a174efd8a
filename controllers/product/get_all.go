package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/shopfront-api/controllers/respond"
)

// GET /products?category=
func GetProducts(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.List(c.Request.Context(), c.Query("category"))
		if err != nil {
			respond.Error(c, err, "Failed to fetch products")
			return
		}

		c.JSON(http.StatusOK, products)
	}
}
