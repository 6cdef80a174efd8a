// Package respond writes error bodies in the {"error": "..."} shape every endpoint uses.
package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/shopfront-api/middleware"
	"github.com/junaidrashid-git/shopfront-api/models"
)

// Status maps an error to its HTTP status. Unclassified errors are storage failures.
func Status(err error) int {
	switch models.KindOf(err) {
	case models.KindValidation, models.KindDuplicate:
		return http.StatusBadRequest
	case models.KindUnauthorized:
		return http.StatusUnauthorized
	case models.KindForbidden:
		return http.StatusForbidden
	case models.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err to the client. Storage failures are logged and replaced
// by the endpoint's generic message.
func Error(c *gin.Context, err error, generic string) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		middleware.LogFailure(c, generic, err)
		c.JSON(status, gin.H{"error": generic})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// Invalid writes a 400 with msg.
func Invalid(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
