package clinics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vaxtrack/vaxtrack-backend/internal/apps"
	"github.com/vaxtrack/vaxtrack-backend/internal/models"
)

type ClinicsPlugin struct{}

func New() *ClinicsPlugin {
	return &ClinicsPlugin{}
}

func (p *ClinicsPlugin) ID() string { return "clinics" }

func (p *ClinicsPlugin) Models() []interface{} {
	return []interface{}{
		&models.Clinic{},
		&models.ClinicReview{},
	}
}

func (p *ClinicsPlugin) handler(deps *apps.Deps) *ClinicHandler {
	return NewClinicHandler(NewClinicService(NewStore(deps.DB)))
}

// RegisterPublicRoutes mounts the directory reads, which need no account.
func (p *ClinicsPlugin) RegisterPublicRoutes(router fiber.Router, deps *apps.Deps) {
	handler := p.handler(deps)

	router.Get("/", handler.List)
	router.Get("/nearby", handler.Nearby)
	router.Get("/:id", handler.Get)
}

func (p *ClinicsPlugin) RegisterRoutes(router fiber.Router, deps *apps.Deps) {
	router.Post("/:id/review", p.handler(deps).Review)
}

func (p *ClinicsPlugin) AdminRoles() []string {
	return []string{models.RoleAdmin, models.RoleClinicStaff}
}

func (p *ClinicsPlugin) RegisterAdminRoutes(router fiber.Router, deps *apps.Deps) {
	router.Post("/", p.handler(deps).Create)
}
