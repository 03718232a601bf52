package notifications

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vaxtrack/vaxtrack-backend/internal/apps"
	"github.com/vaxtrack/vaxtrack-backend/internal/models"
	"github.com/vaxtrack/vaxtrack-backend/internal/services"
)

type NotificationsPlugin struct{}

func New() *NotificationsPlugin {
	return &NotificationsPlugin{}
}

func (p *NotificationsPlugin) ID() string { return "notifications" }

func (p *NotificationsPlugin) Models() []interface{} {
	return []interface{}{
		&models.Notification{},
	}
}

func (p *NotificationsPlugin) RegisterRoutes(router fiber.Router, deps *apps.Deps) {
	handler := NewNotificationHandler(NewNotificationService(services.NewNotificationStore(deps.DB)))

	router.Get("/", handler.List)
	router.Put("/read-all", handler.MarkAllRead)
	router.Put("/:id/read", handler.MarkRead)
	router.Delete("/:id", handler.Delete)
}
