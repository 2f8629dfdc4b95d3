package middleware

import (
	"errors"
	"strings"

	"hrm-location/internal/adapters/persistence/models"
	"hrm-location/internal/core/domain"
	"hrm-location/internal/core/services"
	"hrm-location/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by AuthMiddleware
const (
	LocalUserID = "userID"
	LocalRole   = "role"
	LocalUser   = "user"
)

// AuthMiddleware resolves the bearer access token to a live user
func AuthMiddleware(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Get token from Authorization header
		accessToken := bearerToken(c.Get(fiber.HeaderAuthorization))

		// 2. Validate token and load the subject
		user, err := authService.Authenticate(c.Context(), accessToken)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrMissingToken):
				return response.Unauthorized(c, "Authorization token missing")
			case errors.Is(err, domain.ErrInvalidToken):
				return response.Unauthorized(c, "Invalid or expired token")
			case errors.Is(err, domain.ErrUserNotFound):
				return response.Unauthorized(c, "User not found")
			default:
				return response.InternalServerError(c, "Internal server error")
			}
		}

		// 3. Set user info in context
		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalRole, user.Role)
		c.Locals(LocalUser, user)

		return c.Next()
	}
}

// bearerToken extracts the credentials of a "Bearer" Authorization header.
// The scheme is case-insensitive.
func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(LocalRole).(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		identity := domain.Identity{UserID: CurrentUserID(c), Role: domain.Role(role)}
		if identity.HasRole(allowedRoles...) {
			return c.Next()
		}

		return response.Forbidden(c, "Forbidden: insufficient role")
	}
}

// AdminOnly middleware allows only the admin role
func AdminOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleAdmin)
}

// EmployeeOrAdmin middleware allows both roles
func EmployeeOrAdmin() fiber.Handler {
	return RoleMiddleware(domain.RoleEmployee, domain.RoleAdmin)
}

// CurrentUserID returns the authenticated user's id, or "" outside AuthMiddleware
func CurrentUserID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalUserID).(string)
	return id
}

// CurrentUser returns the authenticated user, or nil outside AuthMiddleware
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(LocalUser).(*models.User)
	return user
}
