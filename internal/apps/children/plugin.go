package children

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vaxtrack/vaxtrack-backend/internal/apps"
	"github.com/vaxtrack/vaxtrack-backend/internal/models"
)

type ChildrenPlugin struct{}

func New() *ChildrenPlugin {
	return &ChildrenPlugin{}
}

func (p *ChildrenPlugin) ID() string { return "children" }

func (p *ChildrenPlugin) Models() []interface{} {
	return []interface{}{
		&models.Child{},
	}
}

func (p *ChildrenPlugin) RegisterRoutes(router fiber.Router, deps *apps.Deps) {
	svc := NewChildService(NewStore(deps.DB), deps.Media)
	handler := NewChildHandler(svc)

	router.Get("/", handler.List)
	router.Post("/", handler.Create)
	router.Get("/:id", handler.Get)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", handler.Delete)
}
