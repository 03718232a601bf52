package vaccinations

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/vaxtrack/vaxtrack-backend/internal/dto"
	"github.com/vaxtrack/vaxtrack-backend/internal/identity"
	"github.com/vaxtrack/vaxtrack-backend/internal/validation"
)

type VaccinationHandler struct {
	service *VaccinationService
}

func NewVaccinationHandler(service *VaccinationService) *VaccinationHandler {
	return &VaccinationHandler{service: service}
}

func (h *VaccinationHandler) List(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return dto.Unauthorized(c)
	}

	var filter ListFilter
	if raw := c.Query("childId"); raw != "" {
		childID, err := uuid.Parse(raw)
		if err != nil {
			return dto.Fail(c, fiber.StatusBadRequest, "Invalid child ID")
		}
		filter.ChildID = &childID
	}
	if status := c.Query("status"); status != "" {
		if err := validation.Validate.Var(status, "vaccinestatus"); err != nil {
			return dto.Fail(c, fiber.StatusBadRequest, "Invalid status filter")
		}
		filter.Status = status
	}

	resp, err := h.service.List(c.UserContext(), userID, filter)
	if err != nil {
		slog.Error("list vaccinations failed", "user_id", userID.String(), "error", err.Error())
		return dto.Fail(c, fiber.StatusInternalServerError, "Failed to fetch vaccinations")
	}
	return c.JSON(resp)
}

func (h *VaccinationHandler) Upcoming(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return dto.Unauthorized(c)
	}

	resp, err := h.service.Upcoming(c.UserContext(), userID)
	if err != nil {
		slog.Error("list upcoming vaccinations failed", "user_id", userID.String(), "error", err.Error())
		return dto.Fail(c, fiber.StatusInternalServerError, "Failed to fetch upcoming vaccinations")
	}
	return c.JSON(resp)
}

func (h *VaccinationHandler) Schedule(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"schedule": RecommendedSchedule})
}

func (h *VaccinationHandler) Create(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return dto.Unauthorized(c)
	}

	var req CreateVaccinationRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return dto.FailValidation(c, err)
	}

	v, err := h.service.Create(c.UserContext(), userID, &req)
	if err != nil {
		return h.fail(c, err, "Failed to create vaccination")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"vaccination": v})
}

func (h *VaccinationHandler) Update(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return dto.Unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid vaccination ID")
	}

	var req UpdateVaccinationRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return dto.FailValidation(c, err)
	}

	v, err := h.service.Update(c.UserContext(), userID, id, &req)
	if err != nil {
		return h.fail(c, err, "Failed to update vaccination")
	}
	return c.JSON(fiber.Map{"vaccination": v})
}

func (h *VaccinationHandler) Delete(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return dto.Unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid vaccination ID")
	}

	if err := h.service.Delete(c.UserContext(), userID, id); err != nil {
		return h.fail(c, err, "Failed to delete vaccination")
	}
	return c.JSON(fiber.Map{"message": "Vaccination record deleted"})
}

func (h *VaccinationHandler) fail(c *fiber.Ctx, err error, fallback string) error {
	var dateErr *DateError
	switch {
	case errors.Is(err, ErrChildNotFound),
		errors.Is(err, ErrClinicNotFound),
		errors.Is(err, ErrVaccinationNotFound):
		return dto.Fail(c, fiber.StatusNotFound, err.Error())
	case errors.As(err, &dateErr):
		return dto.FailValidation(c, validation.FieldErrors{dateErr.Field: dto.ErrInvalidDate.Error()})
	}
	slog.Error(fallback, "error", err.Error())
	return dto.Fail(c, fiber.StatusInternalServerError, fallback)
}
