package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/suraksha-setu/relief-service/internal/domain"
)

// RequireAdmin ensures the caller has the ADMIN role.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil || principal.User.Role != domain.RoleAdmin {
			return fiber.NewError(http.StatusForbidden, "not authorized as an admin")
		}
		return c.Next()
	}
}

// RequireVolunteer ensures the caller has the VOLUNTEER role.
func RequireVolunteer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil || principal.User.Role != domain.RoleVolunteer {
			return fiber.NewError(http.StatusForbidden, "not authorized as a volunteer")
		}
		return c.Next()
	}
}
