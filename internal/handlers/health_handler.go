package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/vaxtrack/vaxtrack-backend/internal/database"
	"github.com/vaxtrack/vaxtrack-backend/internal/dto"
)

// ConnectionCounter reports live realtime connections.
type ConnectionCounter interface {
	Connections() int
}

type HealthHandler struct {
	hub ConnectionCounter
}

func NewHealthHandler(hub ConnectionCounter) *HealthHandler {
	return &HealthHandler{hub: hub}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := database.Ping(); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	return c.JSON(dto.HealthResponse{
		Status:      "ok",
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		DB:          dbStatus,
		Connections: h.hub.Connections(),
	})
}
