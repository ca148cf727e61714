package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"MediClaim/models"
	"MediClaim/policy"
	"MediClaim/utils"
)

type contextKey string

const (
	userIDKey   contextKey = "userID"
	userRoleKey contextKey = "userRole"
)

// sessionToken finds the access token on the request. The browser client
// sends the cookie; API clients may use the Authorization header or the
// accessToken query parameter instead.
func sessionToken(c *gin.Context) string {
	if token, err := c.Cookie("accessToken"); err == nil && token != "" {
		return token
	}
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.DefaultQuery("accessToken", "")
}

// TokenAuthMiddleware validates the session token and stores the caller's
// identity in the request context.
func TokenAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing access token"})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}
		if !models.ValidRole(models.Role(claims.Role)) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		ctx := context.WithValue(c.Request.Context(), userIDKey, claims.UserID)
		ctx = context.WithValue(ctx, userRoleKey, claims.Role)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// Principal reconstructs the authenticated caller from the request context.
func Principal(ctx context.Context) (policy.Principal, error) {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok {
		return policy.Principal{}, errors.New("user ID not found in context")
	}
	role, ok := ctx.Value(userRoleKey).(string)
	if !ok {
		return policy.Principal{}, errors.New("user role not found in context")
	}
	return policy.Principal{UserID: userID, Role: models.Role(role)}, nil
}
