package assistant

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const systemPrompt = `You are a helpful assistant specialized in childhood vaccinations and pediatric healthcare.
You provide accurate, evidence-based information about vaccination schedules, vaccine side effects,
preparing a child for a vaccination, and general child health questions.

Always be empathetic, give clear and simple explanations, cite reputable sources such as WHO and CDC
where possible, and encourage consulting healthcare professionals for medical decisions.
Never provide emergency medical advice. If asked about emergencies or serious symptoms, advise
seeking medical attention immediately.`

const fallbackReply = `I'm having trouble connecting right now. For vaccine information, please consult:
- Your pediatrician
- WHO vaccine guidelines: https://www.who.int/immunization
- CDC vaccine schedules: https://www.cdc.gov/vaccines

For urgent concerns, please contact your healthcare provider.`

type ChatRequest struct {
	Message             string        `json:"message" validate:"required,notblank,max=4000"`
	ConversationID      string        `json:"conversationId" validate:"max=100"`
	ConversationHistory []ChatMessage `json:"conversationHistory" validate:"max=50,dive"`
}

type ChatResponse struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversationId,omitempty"`
	Fallback       bool   `json:"fallback,omitempty"`
}

type FeedbackRequest struct {
	MessageID string `json:"messageId" validate:"required,max=100"`
	Helpful   *bool  `json:"helpful" validate:"required"`
}

// AssistantService answers vaccination questions. Provider failures never
// reach the caller; they get a static pointer to authoritative sources.
type AssistantService struct {
	completer ChatCompleter
	now       func() time.Time
}

func NewAssistantService(completer ChatCompleter) *AssistantService {
	return &AssistantService{completer: completer, now: time.Now}
}

func (s *AssistantService) Chat(ctx context.Context, userID uuid.UUID, req *ChatRequest) *ChatResponse {
	messages := make([]ChatMessage, 0, len(req.ConversationHistory)+2)
	messages = append(messages, ChatMessage{Role: "system", Content: systemPrompt})
	for _, m := range req.ConversationHistory {
		if m.Role != "user" && m.Role != "assistant" {
			continue
		}
		messages = append(messages, m)
	}
	messages = append(messages, ChatMessage{Role: "user", Content: req.Message})

	reply, err := s.completer.Complete(ctx, messages)
	if err != nil {
		slog.Error("assistant chat failed", "user_id", userID.String(), "error", err.Error())
		return &ChatResponse{Message: fallbackReply, Fallback: true}
	}

	conversationID := req.ConversationID
	if conversationID == "" {
		conversationID = strconv.FormatInt(s.now().UnixMilli(), 10)
	}
	return &ChatResponse{Message: reply, ConversationID: conversationID}
}

func (s *AssistantService) Feedback(userID uuid.UUID, req *FeedbackRequest) {
	slog.Info("assistant feedback",
		"user_id", userID.String(),
		"message_id", req.MessageID,
		"helpful", *req.Helpful,
	)
}
