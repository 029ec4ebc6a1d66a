package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sikado/tutoring-service/internal/models"
	"github.com/sikado/tutoring-service/internal/repositories"
	"github.com/sikado/tutoring-service/internal/services"
)

// TokenAuthMiddleware authenticates requests by verifying the bearer token
// and resolving the account it names.
type TokenAuthMiddleware struct {
	identity services.IdentityService
	userRepo repositories.UserRepository
}

func NewTokenAuthMiddleware(identity services.IdentityService, userRepo repositories.UserRepository) *TokenAuthMiddleware {
	return &TokenAuthMiddleware{
		identity: identity,
		userRepo: userRepo,
	}
}

// AuthMiddleware validates the Authorization header and sets user_id and
// user_role in the gin context.
func (m *TokenAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Authorization header required",
			})
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Invalid authorization header format",
			})
			return
		}

		accountID, err := m.identity.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Invalid or expired token",
			})
			return
		}

		// Resolve the role here so handlers and role checks never re-query.
		user, err := m.userRepo.GetByID(c.Request.Context(), accountID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Invalid or expired token",
			})
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user_role", user.Role)
		c.Next()
	}
}

// RequireRoleMiddleware allows the request through only when the
// authenticated account holds one of the given roles.
func (m *TokenAuthMiddleware) RequireRoleMiddleware(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("user_role")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "User not authenticated",
			})
			return
		}

		role, ok := value.(models.UserRole)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "User not authenticated",
			})
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
			Message: "Insufficient permissions",
		})
	}
}
