package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vaxtrack/vaxtrack-backend/internal/apps"
	"github.com/vaxtrack/vaxtrack-backend/internal/config"
	"github.com/vaxtrack/vaxtrack-backend/internal/handlers"
	"github.com/vaxtrack/vaxtrack-backend/internal/middleware"
	"github.com/vaxtrack/vaxtrack-backend/internal/realtime"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	deps *apps.Deps,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	wsHandler *realtime.Handler,
	plugins []apps.Plugin,
) {
	root := app.Group("/api")

	// Health (no auth, no rate limit)
	root.Get("/health", healthHandler.Check)

	api := root.Group("/" + cfg.APIVersion)
	api.Use(middleware.RateLimit(cfg.RateLimitMax, cfg.RateLimitWindow, "Too many requests, please try again later."))

	jwt := middleware.JWTProtected(cfg)
	loadUser := middleware.LoadUser(deps.Users)

	// Auth: sync only needs a valid token since the profile may not exist yet
	auth := api.Group("/auth")
	auth.Post("/sync",
		middleware.RateLimit(cfg.AuthRateLimitMax, cfg.AuthRateLimitWindow, "Too many authentication attempts, please try again later."),
		jwt, authHandler.Sync)
	auth.Get("/me", jwt, loadUser, authHandler.Me)
	auth.Put("/profile", jwt, loadUser, authHandler.UpdateProfile)
	auth.Delete("/account", jwt, loadUser, authHandler.DeleteAccount)

	// Realtime: browsers cannot set headers on websocket upgrades
	api.Get("/ws", middleware.JWTProtectedQuery(cfg), loadUser, wsHandler.Upgrade, wsHandler.Serve())

	// Resource plugins. Public routes are mounted before the auth middleware
	// so they never see it; admin routes additionally require a role.
	for _, p := range plugins {
		group := api.Group("/" + p.ID())
		if pp, ok := p.(apps.PublicPlugin); ok {
			pp.RegisterPublicRoutes(group, deps)
		}

		group.Use(jwt, loadUser)
		p.RegisterRoutes(group, deps)

		if ap, ok := p.(apps.AdminPlugin); ok {
			admin := group.Group("", middleware.RoleRequired(ap.AdminRoles()...))
			ap.RegisterAdminRoutes(admin, deps)
		}
	}
}
