package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vaxtrack/vaxtrack-backend/internal/dto"
	"github.com/vaxtrack/vaxtrack-backend/internal/identity"
)

// RoleRequired admits callers whose profile role is one of roles.
// It must run after LoadUser.
func RoleRequired(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := identity.User(c)
		if err != nil {
			return dto.Unauthorized(c)
		}
		if contains(roles, user.Role) {
			return c.Next()
		}
		return dto.Fail(c, fiber.StatusForbidden, "Insufficient role")
	}
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
