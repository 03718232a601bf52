package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/vaxtrack/vaxtrack-backend/internal/dto"
	"github.com/vaxtrack/vaxtrack-backend/internal/identity"
	"github.com/vaxtrack/vaxtrack-backend/internal/models"
)

// UserResolver finds the local profile for an identity-provider subject.
type UserResolver interface {
	FindBySubject(ctx context.Context, subject string) (*models.User, error)
}

// LoadUser resolves the caller's active local profile and stores it in the
// request context. Requests without a synced, active profile stop here.
func LoadUser(users UserResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sub, err := identity.Subject(c)
		if err != nil {
			return dto.Unauthorized(c)
		}

		user, err := users.FindBySubject(c.UserContext(), sub)
		if err != nil || user == nil {
			return dto.Fail(c, fiber.StatusUnauthorized, "Profile not found: sync your account first")
		}
		if !user.IsActive {
			return dto.Fail(c, fiber.StatusUnauthorized, "Account is deactivated")
		}

		identity.SetUser(c, user)
		return c.Next()
	}
}
