package realtime

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/vaxtrack/vaxtrack-backend/internal/logging"
)

const sendBuffer = 32

// Frame is the wire envelope of every realtime event in both directions.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Subscription is one live connection's membership in a room.
type Subscription struct {
	room string
	send chan []byte
	hub  *Hub
}

// C delivers encoded frames for the connection. It is closed by Unsubscribe.
func (s *Subscription) C() <-chan []byte {
	return s.send
}

func (s *Subscription) Unsubscribe() {
	s.hub.remove(s)
}

// push enqueues without blocking; a slow connection loses frames rather
// than stalling the sender.
func (s *Subscription) push(msg []byte) bool {
	select {
	case s.send <- msg:
		return true
	default:
		return false
	}
}

// Hub maps user ids to their live connections. A user may hold several
// connections at once; each receives every event emitted to the room.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Subscription]struct{}
	log   *slog.Logger
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*Subscription]struct{}),
		log:   logging.Component("realtime"),
	}
}

func (h *Hub) Subscribe(room string) *Subscription {
	sub := &Subscription{room: room, send: make(chan []byte, sendBuffer), hub: h}

	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*Subscription]struct{})
		h.rooms[room] = members
	}
	members[sub] = struct{}{}
	return sub
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.rooms[sub.room]
	if !ok {
		return
	}
	if _, ok := members[sub]; !ok {
		return
	}
	delete(members, sub)
	close(sub.send)
	if len(members) == 0 {
		delete(h.rooms, sub.room)
	}
}

// Emit sends an event to every connection in room. Emitting to a room with
// no members does nothing; events are never queued for later delivery.
func (h *Hub) Emit(room, event string, payload interface{}) {
	msg, err := encode(event, payload)
	if err != nil {
		h.log.Error("encode realtime event failed", "event", event, "error", err.Error())
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.rooms[room] {
		if !sub.push(msg) {
			h.log.Warn("realtime frame dropped", "room", room, "event", event)
		}
	}
}

// Connections reports the number of live subscriptions across all rooms.
func (h *Hub) Connections() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, members := range h.rooms {
		n += len(members)
	}
	return n
}

func encode(event string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Frame{Event: event, Data: data})
}
