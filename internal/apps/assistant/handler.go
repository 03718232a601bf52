package assistant

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vaxtrack/vaxtrack-backend/internal/dto"
	"github.com/vaxtrack/vaxtrack-backend/internal/identity"
	"github.com/vaxtrack/vaxtrack-backend/internal/validation"
)

type AssistantHandler struct {
	service *AssistantService
}

func NewAssistantHandler(service *AssistantService) *AssistantHandler {
	return &AssistantHandler{service: service}
}

func (h *AssistantHandler) Chat(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return dto.Unauthorized(c)
	}

	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return dto.FailValidation(c, err)
	}

	return c.JSON(h.service.Chat(c.UserContext(), userID, &req))
}

// History is a placeholder until conversations are persisted.
func (h *AssistantHandler) History(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"conversations": []ChatResponse{}})
}

func (h *AssistantHandler) Feedback(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return dto.Unauthorized(c)
	}

	var req FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return dto.FailValidation(c, err)
	}

	h.service.Feedback(userID, &req)
	return c.JSON(fiber.Map{"message": "Feedback submitted successfully"})
}
