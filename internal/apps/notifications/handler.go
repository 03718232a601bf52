package notifications

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/vaxtrack/vaxtrack-backend/internal/dto"
	"github.com/vaxtrack/vaxtrack-backend/internal/identity"
)

type NotificationHandler struct {
	service *NotificationService
}

func NewNotificationHandler(service *NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return dto.Unauthorized(c)
	}

	resp, err := h.service.List(c.UserContext(), userID, c.QueryBool("unread"))
	if err != nil {
		slog.Error("list notifications failed", "user_id", userID.String(), "error", err.Error())
		return dto.Fail(c, fiber.StatusInternalServerError, "Failed to fetch notifications")
	}
	return c.JSON(resp)
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return dto.Unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid notification ID")
	}

	n, err := h.service.MarkRead(c.UserContext(), userID, id)
	if errors.Is(err, ErrNotificationNotFound) {
		return dto.Fail(c, fiber.StatusNotFound, err.Error())
	}
	if err != nil {
		slog.Error("mark notification read failed", "user_id", userID.String(), "error", err.Error())
		return dto.Fail(c, fiber.StatusInternalServerError, "Failed to update notification")
	}
	return c.JSON(fiber.Map{"notification": n})
}

func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return dto.Unauthorized(c)
	}

	updated, err := h.service.MarkAllRead(c.UserContext(), userID)
	if err != nil {
		slog.Error("mark all notifications read failed", "user_id", userID.String(), "error", err.Error())
		return dto.Fail(c, fiber.StatusInternalServerError, "Failed to update notifications")
	}
	return c.JSON(fiber.Map{"message": "All notifications marked as read", "updated": updated})
}

func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return dto.Unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid notification ID")
	}

	err = h.service.Delete(c.UserContext(), userID, id)
	if errors.Is(err, ErrNotificationNotFound) {
		return dto.Fail(c, fiber.StatusNotFound, err.Error())
	}
	if err != nil {
		slog.Error("delete notification failed", "user_id", userID.String(), "error", err.Error())
		return dto.Fail(c, fiber.StatusInternalServerError, "Failed to delete notification")
	}
	return c.JSON(fiber.Map{"message": "Notification deleted"})
}
