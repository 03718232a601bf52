package messages

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/vaxtrack/vaxtrack-backend/internal/dto"
	"github.com/vaxtrack/vaxtrack-backend/internal/identity"
	"github.com/vaxtrack/vaxtrack-backend/internal/validation"
)

type MessageHandler struct {
	service *MessageService
}

func NewMessageHandler(service *MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

func (h *MessageHandler) Conversation(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return dto.Unauthorized(c)
	}
	otherID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	resp, err := h.service.Conversation(c.UserContext(), userID, otherID)
	if err != nil {
		slog.Error("get conversation failed", "user_id", userID.String(), "error", err.Error())
		return dto.Fail(c, fiber.StatusInternalServerError, "Failed to fetch conversation")
	}
	return c.JSON(resp)
}

func (h *MessageHandler) Conversations(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return dto.Unauthorized(c)
	}

	resp, err := h.service.Conversations(c.UserContext(), userID)
	if err != nil {
		slog.Error("list conversations failed", "user_id", userID.String(), "error", err.Error())
		return dto.Fail(c, fiber.StatusInternalServerError, "Failed to fetch conversations")
	}
	return c.JSON(resp)
}

func (h *MessageHandler) Send(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return dto.Unauthorized(c)
	}

	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return dto.FailValidation(c, err)
	}

	m, err := h.service.Send(c.UserContext(), userID, &req)
	if err != nil {
		return h.fail(c, err, "Failed to send message")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": m})
}

func (h *MessageHandler) MarkRead(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return dto.Unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid message ID")
	}

	m, err := h.service.MarkRead(c.UserContext(), userID, id)
	if err != nil {
		return h.fail(c, err, "Failed to mark message as read")
	}
	return c.JSON(fiber.Map{"message": m})
}

func (h *MessageHandler) Delete(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return dto.Unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid message ID")
	}

	if err := h.service.Delete(c.UserContext(), userID, id); err != nil {
		return h.fail(c, err, "Failed to delete message")
	}
	return c.JSON(fiber.Map{"message": "Message deleted"})
}

func (h *MessageHandler) fail(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, ErrMessageNotFound), errors.Is(err, ErrReceiverNotFound):
		return dto.Fail(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrNotReceiver), errors.Is(err, ErrNotSender):
		return dto.Fail(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, ErrSelfMessage):
		return dto.Fail(c, fiber.StatusBadRequest, err.Error())
	}
	slog.Error(fallback, "error", err.Error())
	return dto.Fail(c, fiber.StatusInternalServerError, fallback)
}
