package appointments

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vaxtrack/vaxtrack-backend/internal/apps"
	"github.com/vaxtrack/vaxtrack-backend/internal/models"
)

type AppointmentsPlugin struct{}

func New() *AppointmentsPlugin {
	return &AppointmentsPlugin{}
}

func (p *AppointmentsPlugin) ID() string { return "appointments" }

func (p *AppointmentsPlugin) Models() []interface{} {
	return []interface{}{
		&models.Appointment{},
	}
}

func (p *AppointmentsPlugin) RegisterRoutes(router fiber.Router, deps *apps.Deps) {
	svc := NewAppointmentService(NewStore(deps.DB), deps.Notifier)
	handler := NewAppointmentHandler(svc)

	router.Get("/", handler.List)
	router.Post("/", handler.Create)
	router.Get("/:id", handler.Get)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", handler.Cancel)
}
