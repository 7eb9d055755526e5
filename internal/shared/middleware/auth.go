package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rentora-backend/internal/shared/response"
	"rentora-backend/pkg/jwt"
)

// Context keys set by AuthMiddleware.
const (
	CtxUserID    = "userID"
	CtxUserEmail = "userEmail"
	CtxUserRole  = "userRole"
)

// AuthMiddleware verifies the bearer access token and stores the caller's
// identity on the request context.
func AuthMiddleware(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			response.Unauthorized(c, "invalid user ID in token")
			c.Abort()
			return
		}

		c.Set(CtxUserID, userID)
		c.Set(CtxUserEmail, claims.Email)
		c.Set(CtxUserRole, claims.Role)

		c.Next()
	}
}

// OptionalAuth stores the caller's identity when a valid bearer token is
// present but lets anonymous requests through untouched. Public listing
// routes use it to mark liked properties for signed-in viewers.
func OptionalAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			c.Next()
			return
		}

		if userID, err := uuid.Parse(claims.UserID); err == nil {
			c.Set(CtxUserID, userID)
			c.Set(CtxUserEmail, claims.Email)
			c.Set(CtxUserRole, claims.Role)
		}
		c.Next()
	}
}

// UserID reads the authenticated caller's id from the context.
// Only valid behind AuthMiddleware.
func UserID(c *gin.Context) uuid.UUID {
	id, _ := c.Get(CtxUserID)
	uid, _ := id.(uuid.UUID)
	return uid
}

// UserRole reads the authenticated caller's role from the context.
func UserRole(c *gin.Context) string {
	return c.GetString(CtxUserRole)
}
