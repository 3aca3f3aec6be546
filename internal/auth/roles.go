package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-service/internal/domain"
	apperrors "github.com/spec-kit/clinic-service/pkg/util"
)

// AdminRoles is the admin-equivalent role set.
var AdminRoles = []domain.Role{domain.RoleSuperAdmin, domain.RoleStaff}

// RequireRole ensures the resolved session's role is in the allowed set.
// Runs after Middleware.Handle; a missing session means the route was wired
// without it and is treated as Unauthorized.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		session, ok := SessionFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[session.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireAdmin gates admin-equivalent routes.
func RequireAdmin() fiber.Handler {
	return RequireRole(AdminRoles...)
}

// RequireAuthenticated only asserts a resolved session exists.
func RequireAuthenticated() fiber.Handler {
	return RequireRole()
}
