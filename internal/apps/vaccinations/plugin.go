package vaccinations

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vaxtrack/vaxtrack-backend/internal/apps"
	"github.com/vaxtrack/vaxtrack-backend/internal/models"
)

type VaccinationsPlugin struct{}

func New() *VaccinationsPlugin {
	return &VaccinationsPlugin{}
}

func (p *VaccinationsPlugin) ID() string { return "vaccinations" }

func (p *VaccinationsPlugin) Models() []interface{} {
	return []interface{}{
		&models.Vaccination{},
	}
}

func (p *VaccinationsPlugin) RegisterRoutes(router fiber.Router, deps *apps.Deps) {
	svc := NewVaccinationService(NewStore(deps.DB), deps.Notifier)
	handler := NewVaccinationHandler(svc)

	router.Get("/", handler.List)
	router.Get("/upcoming", handler.Upcoming)
	router.Get("/schedule", handler.Schedule)
	router.Post("/", handler.Create)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", handler.Delete)
}
