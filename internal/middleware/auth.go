package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"hr-portal-svc/internal/models"
	"hr-portal-svc/pkg/utils"
)

const (
	// ContextUserID is the gin context key holding the authenticated user ID
	ContextUserID = "user_id"

	// ContextUserRole is the gin context key holding the authenticated role
	ContextUserRole = "user_role"
)

// Auth validates the Bearer token and stores the user ID and role in the
// request context
func Auth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			utils.UnauthorizedResponse(c, "Authorization header is required")
			c.Abort()
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			utils.UnauthorizedResponse(c, "Authorization header must be a Bearer token")
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			utils.UnauthorizedResponse(c, "Invalid or expired token")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			utils.UnauthorizedResponse(c, "Invalid token claims")
			c.Abort()
			return
		}

		sub, ok := claims["sub"].(float64)
		if !ok {
			utils.UnauthorizedResponse(c, "Invalid token subject")
			c.Abort()
			return
		}
		role, _ := claims["role"].(string)

		c.Set(ContextUserID, uint(sub))
		c.Set(ContextUserRole, models.UserRole(role))
		c.Next()
	}
}

// RequireRole allows only the listed roles past the middleware. Admins
// always pass.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(ContextUserRole)
		if !exists {
			utils.UnauthorizedResponse(c, "Authentication is required")
			c.Abort()
			return
		}

		role := value.(models.UserRole)
		if role == models.RoleAdmin {
			c.Next()
			return
		}
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		utils.ForbiddenResponse(c, "Insufficient permissions")
		c.Abort()
	}
}
