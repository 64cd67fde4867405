package middleware

import (
	"net/http"
	"strings"

	"jobsite/internal/api/handler/response"
	"jobsite/internal/api/service"
	"jobsite/pkg"

	"github.com/gin-gonic/gin"
)

// Identity resolves the caller from an optional "Authorization: Bearer" header.
// A valid token attaches a service.Identity to the request context; anything
// else leaves the request anonymous. It never rejects.
func Identity(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		// Bearer token format: "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}

		claims, err := pkg.ValidateToken(parts[1], secret)
		if err != nil {
			c.Next()
			return
		}

		ctx := service.WithIdentity(c.Request.Context(), service.Identity{UserID: claims.UserID, Email: claims.Email})
		c.Request = c.Request.WithContext(ctx)
		c.Set("userID", claims.UserID)
		c.Set("userEmail", claims.Email)

		c.Next()
	}
}

// RequireIdentity rejects anonymous requests.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := service.IdentityFromContext(c.Request.Context()); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.APIError{Message: "Authentication required"})
			return
		}
		c.Next()
	}
}

// RequireAdmin lets through only callers the guard accepts.
func RequireAdmin(guard *service.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if _, ok := service.IdentityFromContext(ctx); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.APIError{Message: "Authentication required"})
			return
		}
		if !guard.IsAdmin(ctx) {
			c.AbortWithStatusJSON(http.StatusForbidden, response.APIError{Message: "Insufficient permissions"})
			return
		}
		c.Next()
	}
}
