package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	jwtsvc "github.com/likecompany/file/internal/pkg/jwt"
	"github.com/likecompany/file/internal/pkg/response"
)

// AdminAuth protects the debug-only admin endpoints with a signed
// bearer token carrying the admin role.
func AdminAuth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logAuthFailure(c, "missing_auth")
			response.Fail(c, http.StatusUnauthorized, "ACCESS_DENIED")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logAuthFailure(c, "invalid_auth_format")
			response.Fail(c, http.StatusUnauthorized, "ACCESS_DENIED")
			c.Abort()
			return
		}

		claims, err := jwt.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil || claims.Role != "admin" {
			logAuthFailure(c, "invalid_token")
			response.Fail(c, http.StatusForbidden, "ACCESS_DENIED")
			c.Abort()
			return
		}

		c.Next()
	}
}

func logAuthFailure(c *gin.Context, reason string) {
	log.Printf("admin_auth status=denied path=%s client_ip=%s reason=%s", c.Request.URL.Path, c.ClientIP(), reason)
}
