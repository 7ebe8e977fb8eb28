package middleware

import (
	"net/http"
	"strings"

	"designhire-backend/internal/delivery/http/response"
	"designhire-backend/internal/domain"
	"designhire-backend/pkg/auth"

	"github.com/gin-gonic/gin"
)

// tokenFromRequest pulls the session token from the Authorization
// header, falling back to the token cookie set at sign-in.
func tokenFromRequest(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	cookie, err := c.Cookie("token")
	if err == nil && cookie != "" {
		return cookie
	}
	return ""
}

// AuthMiddleware rejects requests without a valid session token and
// stores the caller's identity on the context.
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or token cookie required", nil)
			c.Abort()
			return
		}

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), claims.Subject)
		c.Set(string(domain.KeyUserRole), claims.UserType)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches the caller's identity when a valid
// token is present but lets anonymous requests through. Used on job
// listings, which are public but personalize for signed-in viewers.
func OptionalAuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString != "" {
			if claims, err := tokens.Verify(tokenString); err == nil {
				c.Set(string(domain.KeyUserID), claims.Subject)
				c.Set(string(domain.KeyUserRole), claims.UserType)
			}
		}
		c.Next()
	}
}
