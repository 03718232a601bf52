package clinics

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/vaxtrack/vaxtrack-backend/internal/dto"
	"github.com/vaxtrack/vaxtrack-backend/internal/identity"
	"github.com/vaxtrack/vaxtrack-backend/internal/validation"
)

type ClinicHandler struct {
	service *ClinicService
}

func NewClinicHandler(service *ClinicService) *ClinicHandler {
	return &ClinicHandler{service: service}
}

func (h *ClinicHandler) List(c *fiber.Ctx) error {
	service := c.Query("service")
	if service != "" {
		if err := validation.Validate.Var(service, "clinicservice"); err != nil {
			return dto.Fail(c, fiber.StatusBadRequest, "Invalid service filter")
		}
	}

	resp, err := h.service.List(c.UserContext(), c.Query("search"), service)
	if err != nil {
		slog.Error("list clinics failed", "error", err.Error())
		return dto.Fail(c, fiber.StatusInternalServerError, "Failed to fetch clinics")
	}
	return c.JSON(resp)
}

func (h *ClinicHandler) Nearby(c *fiber.Ctx) error {
	lng, errLng := strconv.ParseFloat(c.Query("longitude"), 64)
	lat, errLat := strconv.ParseFloat(c.Query("latitude"), 64)
	if errLng != nil || errLat != nil {
		return dto.Fail(c, fiber.StatusBadRequest, ErrBadCoordinates.Error())
	}
	maxDistance := float64(defaultMaxDistance)
	if raw := c.Query("maxDistance"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return dto.Fail(c, fiber.StatusBadRequest, ErrBadDistance.Error())
		}
		maxDistance = v
	}

	resp, err := h.service.Nearby(c.UserContext(), lng, lat, maxDistance)
	if err != nil {
		if errors.Is(err, ErrBadCoordinates) || errors.Is(err, ErrBadDistance) {
			return dto.Fail(c, fiber.StatusBadRequest, err.Error())
		}
		slog.Error("nearby clinics failed", "error", err.Error())
		return dto.Fail(c, fiber.StatusInternalServerError, "Failed to fetch nearby clinics")
	}
	return c.JSON(resp)
}

func (h *ClinicHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid clinic ID")
	}

	clinic, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, ErrClinicNotFound) {
			return dto.Fail(c, fiber.StatusNotFound, err.Error())
		}
		slog.Error("get clinic failed", "clinic_id", id.String(), "error", err.Error())
		return dto.Fail(c, fiber.StatusInternalServerError, "Failed to fetch clinic")
	}
	return c.JSON(fiber.Map{"clinic": clinic})
}

func (h *ClinicHandler) Review(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return dto.Unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid clinic ID")
	}

	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return dto.FailValidation(c, err)
	}

	clinic, err := h.service.Review(c.UserContext(), userID, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrClinicNotFound):
			return dto.Fail(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, ErrDuplicateReview):
			return dto.Fail(c, fiber.StatusBadRequest, err.Error())
		}
		slog.Error("add review failed", "clinic_id", id.String(), "error", err.Error())
		return dto.Fail(c, fiber.StatusInternalServerError, "Failed to add review")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"clinic": clinic})
}

func (h *ClinicHandler) Create(c *fiber.Ctx) error {
	var req CreateClinicRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return dto.FailValidation(c, err)
	}

	clinic, err := h.service.Create(c.UserContext(), &req)
	if err != nil {
		slog.Error("create clinic failed", "error", err.Error())
		return dto.Fail(c, fiber.StatusInternalServerError, "Failed to create clinic")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"clinic": clinic})
}
