package appointments

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/vaxtrack/vaxtrack-backend/internal/dto"
	"github.com/vaxtrack/vaxtrack-backend/internal/identity"
	"github.com/vaxtrack/vaxtrack-backend/internal/validation"
)

type AppointmentHandler struct {
	service *AppointmentService
}

func NewAppointmentHandler(service *AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

func (h *AppointmentHandler) List(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return dto.Unauthorized(c)
	}

	filter := ListFilter{Upcoming: c.QueryBool("upcoming")}
	if status := c.Query("status"); status != "" {
		if err := validation.Validate.Var(status, "apptstatus"); err != nil {
			return dto.Fail(c, fiber.StatusBadRequest, "Invalid status filter")
		}
		filter.Status = status
	}

	resp, err := h.service.List(c.UserContext(), userID, filter)
	if err != nil {
		slog.Error("list appointments failed", "user_id", userID.String(), "error", err.Error())
		return dto.Fail(c, fiber.StatusInternalServerError, "Failed to fetch appointments")
	}
	return c.JSON(resp)
}

func (h *AppointmentHandler) Get(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return dto.Unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid appointment ID")
	}

	a, err := h.service.Get(c.UserContext(), userID, id)
	if err != nil {
		return h.fail(c, err, "Failed to fetch appointment")
	}
	return c.JSON(fiber.Map{"appointment": a})
}

func (h *AppointmentHandler) Create(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return dto.Unauthorized(c)
	}

	var req CreateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return dto.FailValidation(c, err)
	}

	a, err := h.service.Create(c.UserContext(), userID, &req)
	if err != nil {
		return h.fail(c, err, "Failed to create appointment")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"appointment": a})
}

func (h *AppointmentHandler) Update(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return dto.Unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid appointment ID")
	}

	var req UpdateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return dto.FailValidation(c, err)
	}

	a, err := h.service.Update(c.UserContext(), userID, id, &req)
	if err != nil {
		return h.fail(c, err, "Failed to update appointment")
	}
	return c.JSON(fiber.Map{"appointment": a})
}

func (h *AppointmentHandler) Cancel(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return dto.Unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid appointment ID")
	}

	var req CancelRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return dto.Fail(c, fiber.StatusBadRequest, "Invalid request body")
		}
		if err := validation.Struct(&req); err != nil {
			return dto.FailValidation(c, err)
		}
	}

	a, err := h.service.Cancel(c.UserContext(), userID, id, req.Reason)
	if err != nil {
		return h.fail(c, err, "Failed to cancel appointment")
	}
	return c.JSON(fiber.Map{"message": "Appointment cancelled", "appointment": a})
}

func (h *AppointmentHandler) fail(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, ErrAppointmentNotFound),
		errors.Is(err, ErrChildNotFound),
		errors.Is(err, ErrClinicNotFound):
		return dto.Fail(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrNotOwner):
		return dto.Fail(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrAppointmentClosed),
		errors.Is(err, ErrVaccinationMismatch):
		return dto.Fail(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, ErrDateInPast), errors.Is(err, dto.ErrInvalidDate):
		return dto.FailValidation(c, validation.FieldErrors{"appointmentDate": err.Error()})
	}
	slog.Error(fallback, "error", err.Error())
	return dto.Fail(c, fiber.StatusInternalServerError, fallback)
}
