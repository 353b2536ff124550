package api

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// SlotEvent notifies connected pickers that a time slot changed state, so an
// open calendar can refresh instead of waiting for its next poll. Delivery is
// best effort; the booked flag at commit time is still the arbiter.
type SlotEvent struct {
	Event        string `json:"event"`
	SummonDateID string `json:"summonDateID"`
	TimeSlotID   string `json:"timeSlotID"`
}

// Hub fans slot events out to all connected websocket clients
type Hub struct {
	mu       sync.Mutex
	clients  map[*websocket.Conn]bool
	upgrader websocket.Upgrader
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// ServeWS upgrades the request and registers the connection until it closes
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Errorw("failed to upgrade websocket", "error", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()
	zap.S().Debugw("websocket client connected", "remote", conn.RemoteAddr())

	// clients only listen; the read loop just detects disconnects
	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// BroadcastSlotBooked announces a slot flipping to booked
func (h *Hub) BroadcastSlotBooked(summonDateID, timeSlotID string) {
	h.broadcast(SlotEvent{
		Event:        "slot_booked",
		SummonDateID: summonDateID,
		TimeSlotID:   timeSlotID,
	})
}

func (h *Hub) broadcast(event SlotEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteJSON(event); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conn.Close()
	delete(h.clients, conn)
}
