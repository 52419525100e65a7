package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"rental-backoffice/internal/core/auth"
	"rental-backoffice/internal/domain"
	"rental-backoffice/internal/transport/http/ez"
	resp "rental-backoffice/internal/transport/http/response"
)

// AuthJWT verifies the bearer token and stores the caller id and role. A
// non-empty requireRole rejects other roles early; services still re-check
// the account on every privileged call.
func AuthJWT(j *auth.JWTer, requireRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusOK, resp.FromError(domain.Unauthorized("missing token")))
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusOK, resp.FromError(domain.Unauthorized("invalid token")))
			return
		}
		if requireRole != "" && claims.Role != requireRole {
			c.AbortWithStatusJSON(http.StatusOK, resp.FromError(domain.Unauthorized(strings.ToLower(requireRole)+" role required")))
			return
		}
		c.Set("claims", claims)
		c.Set(ez.KeyUserID, claims.UID)
		c.Set(ez.KeyRole, claims.Role)
		c.Next()
	}
}
