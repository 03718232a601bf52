package children

import (
	"errors"
	"io"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/vaxtrack/vaxtrack-backend/internal/dto"
	"github.com/vaxtrack/vaxtrack-backend/internal/identity"
	"github.com/vaxtrack/vaxtrack-backend/internal/validation"
)

type ChildHandler struct {
	service *ChildService
}

func NewChildHandler(service *ChildService) *ChildHandler {
	return &ChildHandler{service: service}
}

func (h *ChildHandler) List(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return dto.Unauthorized(c)
	}

	resp, err := h.service.List(c.UserContext(), userID)
	if err != nil {
		slog.Error("list children failed", "user_id", userID.String(), "error", err.Error())
		return dto.Fail(c, fiber.StatusInternalServerError, "Failed to fetch children")
	}
	return c.JSON(resp)
}

func (h *ChildHandler) Get(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return dto.Unauthorized(c)
	}
	childID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid child ID")
	}

	resp, err := h.service.Get(c.UserContext(), userID, childID)
	if err != nil {
		return h.fail(c, err, "Failed to fetch child")
	}
	return c.JSON(resp)
}

func (h *ChildHandler) Create(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return dto.Unauthorized(c)
	}

	var req CreateChildRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return dto.FailValidation(c, err)
	}

	photo, err := dto.ImageFromForm(c, "photo")
	if err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, err.Error())
	}
	var reader io.Reader
	if photo != nil {
		defer photo.Close()
		reader = photo
	}

	child, err := h.service.Create(c.UserContext(), userID, &req, reader)
	if err != nil {
		return h.fail(c, err, "Failed to create child")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"child": child})
}

func (h *ChildHandler) Update(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return dto.Unauthorized(c)
	}
	childID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid child ID")
	}

	var req UpdateChildRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return dto.FailValidation(c, err)
	}

	photo, err := dto.ImageFromForm(c, "photo")
	if err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, err.Error())
	}
	var reader io.Reader
	if photo != nil {
		defer photo.Close()
		reader = photo
	}

	child, err := h.service.Update(c.UserContext(), userID, childID, &req, reader)
	if err != nil {
		return h.fail(c, err, "Failed to update child")
	}
	return c.JSON(fiber.Map{"child": child})
}

func (h *ChildHandler) Delete(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return dto.Unauthorized(c)
	}
	childID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid child ID")
	}

	if err := h.service.Delete(c.UserContext(), userID, childID); err != nil {
		return h.fail(c, err, "Failed to delete child")
	}
	return c.JSON(fiber.Map{"message": "Child deleted successfully"})
}

func (h *ChildHandler) fail(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, ErrChildNotFound):
		return dto.Fail(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidBirth):
		return dto.FailValidation(c, validation.FieldErrors{"dateOfBirth": err.Error()})
	case errors.Is(err, ErrPhotoDisabled):
		return dto.Fail(c, fiber.StatusServiceUnavailable, err.Error())
	}
	slog.Error(fallback, "error", err.Error())
	return dto.Fail(c, fiber.StatusInternalServerError, fallback)
}
