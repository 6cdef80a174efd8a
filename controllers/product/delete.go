package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/shopfront-api/controllers/respond"
)

// DELETE /admin/product?id=
func DeleteProduct(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr := c.Query("id")
		if idStr == "" {
			respond.Invalid(c, "id required")
			return
		}
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil || id == 0 {
			respond.Invalid(c, "Invalid product id")
			return
		}

		if err := svc.Delete(c.Request.Context(), uint(id)); err != nil {
			respond.Error(c, err, "Failed to delete product")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}
