package apps

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/vaxtrack/vaxtrack-backend/internal/config"
	"github.com/vaxtrack/vaxtrack-backend/internal/models"
	"github.com/vaxtrack/vaxtrack-backend/internal/services"
	"gorm.io/gorm"
)

// Notifier creates a notification and fans it out over the user's channels.
type Notifier interface {
	Notify(ctx context.Context, req services.NotificationRequest) (*models.Notification, error)
}

// Broadcaster pushes a realtime event to every connection in a room.
type Broadcaster interface {
	Emit(room, event string, payload interface{})
}

// Deps carries the shared collaborators every resource plugin may use.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Users    services.UserStore
	Notifier Notifier
	Media    services.MediaStore
	Realtime Broadcaster
}

// Plugin defines the interface every resource package must implement.
type Plugin interface {
	// ID returns the resource name, also used as the route prefix.
	ID() string

	// Models returns the list of GORM model pointers for AutoMigrate.
	Models() []interface{}

	// RegisterRoutes mounts resource routes on the given Fiber group.
	// The group is already prefixed with /api/<version>/<id> and has JWT and
	// current-user middleware applied.
	RegisterRoutes(router fiber.Router, deps *Deps)
}

// PublicPlugin is implemented by resources that expose unauthenticated reads.
// Public routes are mounted before the auth middleware.
type PublicPlugin interface {
	Plugin

	RegisterPublicRoutes(router fiber.Router, deps *Deps)
}

// AdminPlugin extends Plugin with privileged route registration.
type AdminPlugin interface {
	Plugin

	// AdminRoles lists the roles allowed on admin routes.
	AdminRoles() []string

	// RegisterAdminRoutes mounts routes on a group that additionally requires
	// one of AdminRoles.
	RegisterAdminRoutes(router fiber.Router, deps *Deps)
}
