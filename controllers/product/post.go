package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/shopfront-api/controllers/respond"
)

// POST /admin/product
func CreateProduct(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respond.Invalid(c, missingProductFields)
			return
		}

		if _, err := svc.Create(c.Request.Context(), input); err != nil {
			respond.Error(c, err, "Failed to create product")
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Product created"})
	}
}
