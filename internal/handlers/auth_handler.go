package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/vaxtrack/vaxtrack-backend/internal/dto"
	"github.com/vaxtrack/vaxtrack-backend/internal/identity"
	"github.com/vaxtrack/vaxtrack-backend/internal/services"
	"github.com/vaxtrack/vaxtrack-backend/internal/validation"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Sync upserts the local profile of the token subject. It runs behind token
// verification only, since the profile may not exist yet.
func (h *AuthHandler) Sync(c *fiber.Ctx) error {
	subject, err := identity.Subject(c)
	if err != nil {
		return dto.Unauthorized(c)
	}

	var req dto.SyncProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Email == "" {
		req.Email = identity.Email(c)
	}
	if err := validation.Struct(&req); err != nil {
		return dto.FailValidation(c, err)
	}

	user, created, err := h.authService.SyncProfile(c.UserContext(), subject, &req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return dto.Fail(c, fiber.StatusConflict, err.Error())
		}
		slog.Error("profile sync failed", "error", err.Error())
		return dto.Fail(c, fiber.StatusInternalServerError, "Internal server error")
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"user": user})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := identity.User(c)
	if err != nil {
		return dto.Unauthorized(c)
	}
	return c.JSON(fiber.Map{"user": user})
}

func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	user, err := identity.User(c)
	if err != nil {
		return dto.Unauthorized(c)
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return dto.FailValidation(c, err)
	}

	updated, err := h.authService.UpdateProfile(c.UserContext(), user, &req)
	if err != nil {
		slog.Error("profile update failed", "user_id", user.ID.String(), "error", err.Error())
		return dto.Fail(c, fiber.StatusInternalServerError, "Failed to update profile")
	}
	return c.JSON(fiber.Map{"user": updated})
}

// DeleteAccount deactivates the caller's profile.
func (h *AuthHandler) DeleteAccount(c *fiber.Ctx) error {
	user, err := identity.User(c)
	if err != nil {
		return dto.Unauthorized(c)
	}

	if err := h.authService.Deactivate(c.UserContext(), user); err != nil {
		slog.Error("account deactivation failed", "user_id", user.ID.String(), "error", err.Error())
		return dto.Fail(c, fiber.StatusInternalServerError, "Failed to delete account")
	}
	return c.JSON(fiber.Map{"message": "Account deactivated"})
}
