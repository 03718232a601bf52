package messages

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vaxtrack/vaxtrack-backend/internal/apps"
	"github.com/vaxtrack/vaxtrack-backend/internal/models"
)

type MessagesPlugin struct {
	service *MessageService
}

// New builds the plugin around a shared service so the websocket endpoint
// and the REST routes mark reads through the same code path.
func New(service *MessageService) *MessagesPlugin {
	return &MessagesPlugin{service: service}
}

func (p *MessagesPlugin) ID() string { return "messages" }

func (p *MessagesPlugin) Models() []interface{} {
	return []interface{}{
		&models.Message{},
	}
}

func (p *MessagesPlugin) RegisterRoutes(router fiber.Router, deps *apps.Deps) {
	svc := p.service
	if svc == nil {
		svc = NewMessageService(NewStore(deps.DB), deps.Users, deps.Realtime)
	}
	handler := NewMessageHandler(svc)

	router.Get("/conversations", handler.Conversations)
	router.Get("/conversation/:userId", handler.Conversation)
	router.Post("/", handler.Send)
	router.Put("/:id/read", handler.MarkRead)
	router.Delete("/:id", handler.Delete)
}
