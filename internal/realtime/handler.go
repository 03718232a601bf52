package realtime

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/vaxtrack/vaxtrack-backend/internal/dto"
	"github.com/vaxtrack/vaxtrack-backend/internal/identity"
	"github.com/vaxtrack/vaxtrack-backend/internal/logging"
	"github.com/vaxtrack/vaxtrack-backend/internal/models"
)

const userLocal = "realtime_user_id"

// Client and server event names.
const (
	EventJoin        = "join"
	EventTyping      = "typing"
	EventMessageRead = "message_read"
	EventUserTyping  = "user_typing"
	EventError       = "error"
)

// ReadMarker marks a message read on behalf of its receiver and notifies the
// sender.
type ReadMarker interface {
	MarkRead(ctx context.Context, readerID, messageID uuid.UUID) (*models.Message, error)
}

type joinData struct {
	UserID string `json:"userId"`
}

type typingData struct {
	ReceiverID string `json:"receiverId"`
	IsTyping   bool   `json:"isTyping"`
}

type typingEvent struct {
	SenderID string `json:"senderId"`
	IsTyping bool   `json:"isTyping"`
}

type readData struct {
	MessageID string `json:"messageId"`
}

type Handler struct {
	hub   *Hub
	reads ReadMarker
	log   *slog.Logger
}

func NewHandler(hub *Hub, reads ReadMarker) *Handler {
	return &Handler{hub: hub, reads: reads, log: logging.Component("realtime")}
}

// Upgrade admits websocket upgrades from authenticated callers. It must run
// after the token and profile middleware.
func (h *Handler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	userID, err := identity.UserID(c)
	if err != nil {
		return dto.Unauthorized(c)
	}
	c.Locals(userLocal, userID)
	return c.Next()
}

func (h *Handler) Serve() fiber.Handler {
	return websocket.New(h.serve)
}

func (h *Handler) serve(conn *websocket.Conn) {
	userID, ok := conn.Locals(userLocal).(uuid.UUID)
	if !ok {
		return
	}

	sub := h.hub.Subscribe(userID.String())
	written := make(chan struct{})
	go func() {
		defer close(written)
		for msg := range sub.C() {
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		}
	}()
	defer func() {
		sub.Unsubscribe()
		<-written
	}()

	h.log.Info("realtime connected", "user_id", userID.String())
	ctx := context.Background()
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			break
		}
		if reply := h.handle(ctx, userID, raw); reply != nil {
			sub.push(reply)
		}
	}
	h.log.Info("realtime disconnected", "user_id", userID.String())
}

// handle processes one client frame and returns an optional frame for the
// sending connection only.
func (h *Handler) handle(ctx context.Context, userID uuid.UUID, raw []byte) []byte {
	var frame Frame
	if err := json.Unmarshal(raw, &frame); err != nil {
		return errorFrame("malformed frame")
	}

	switch frame.Event {
	case EventJoin:
		var data joinData
		if err := json.Unmarshal(frame.Data, &data); err != nil || data.UserID != userID.String() {
			return errorFrame("cannot join another user's room")
		}
		// Connections join their own room on connect.
		return nil

	case EventTyping:
		var data typingData
		if err := json.Unmarshal(frame.Data, &data); err != nil {
			return errorFrame("invalid typing payload")
		}
		receiver, err := uuid.Parse(data.ReceiverID)
		if err != nil || receiver == userID {
			return errorFrame("invalid receiverId")
		}
		h.hub.Emit(receiver.String(), EventUserTyping, typingEvent{SenderID: userID.String(), IsTyping: data.IsTyping})
		return nil

	case EventMessageRead:
		var data readData
		if err := json.Unmarshal(frame.Data, &data); err != nil {
			return errorFrame("invalid message_read payload")
		}
		messageID, err := uuid.Parse(data.MessageID)
		if err != nil {
			return errorFrame("invalid messageId")
		}
		if _, err := h.reads.MarkRead(ctx, userID, messageID); err != nil {
			h.log.Warn("realtime mark read failed", "user_id", userID.String(), "message_id", data.MessageID, "error", err.Error())
			return errorFrame("message could not be marked as read")
		}
		return nil
	}

	return errorFrame("unknown event")
}

func errorFrame(message string) []byte {
	msg, err := encode(EventError, fiber.Map{"message": message})
	if err != nil {
		return nil
	}
	return msg
}
