package assistant

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vaxtrack/vaxtrack-backend/internal/apps"
	"github.com/vaxtrack/vaxtrack-backend/internal/middleware"
)

type AssistantPlugin struct {
	completer ChatCompleter
}

// New builds the plugin. A nil completer means the OpenAI-compatible client
// configured from the environment.
func New(completer ChatCompleter) *AssistantPlugin {
	return &AssistantPlugin{completer: completer}
}

func (p *AssistantPlugin) ID() string { return "ai" }

func (p *AssistantPlugin) Models() []interface{} { return nil }

func (p *AssistantPlugin) RegisterRoutes(router fiber.Router, deps *apps.Deps) {
	completer := p.completer
	if completer == nil {
		cfg := deps.Config
		completer = NewOpenAIClient(cfg.OpenAIAPIURL, cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.AITimeout)
	}
	handler := NewAssistantHandler(NewAssistantService(completer))

	chatLimiter := middleware.RateLimit(deps.Config.AIRateLimitMax, deps.Config.AIRateLimitWindow,
		"Too many AI requests, please try again later.")

	router.Post("/chat", chatLimiter, handler.Chat)
	router.Get("/history", handler.History)
	router.Post("/feedback", handler.Feedback)
}
