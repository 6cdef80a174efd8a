package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/shopfront-api/auth"
)

const (
	AdminIDKey     = "admin_id"
	AdminClaimsKey = "admin_claims"
)

// RequireAdmin accepts a signed admin token from the Authorization header
// ("Bearer <token>" or the bare token) or, for websocket clients, ?token=.
func RequireAdmin(tokens *auth.TokenIssuer, revoker auth.Revoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		if revoker != nil {
			revoked, err := revoker.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				LogFailure(c, "revocation lookup", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
				return
			}
			if revoked {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
				return
			}
		}

		c.Set(AdminIDKey, claims.AdminID())
		c.Set(AdminClaimsKey, claims)
		c.Next()
	}
}

// AdminClaims returns the claims RequireAdmin stored on the context.
func AdminClaims(c *gin.Context) (*auth.AdminClaims, bool) {
	v, ok := c.Get(AdminClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.AdminClaims)
	return claims, ok
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}
