package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Hub maintains the set of active clients and pushes events to them
type Hub struct {
	// Registered clients organized by user ID
	clients map[int64]map[*Client]bool

	// Channel for outbound events to connected users
	events chan *Event

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	// Logger for Hub operations
	logger zerolog.Logger
}

// Event represents a payload pushed to a connected user
type Event struct {
	// Type of event: "notification"
	Type string `json:"type"`

	// User this event is addressed to
	UserID int64 `json:"-"`

	// Event payload, shape depends on Type
	Payload interface{} `json:"payload"`

	// Timestamp when the event was emitted
	Timestamp time.Time `json:"timestamp"`
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		events:     make(chan *Event, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[int64]map[*Client]bool),
		logger:     logger,
	}
}

// Run starts the hub, handling client registrations and event delivery
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.events:
			h.deliverEvent(event)
		}
	}
}

// registerClient registers a new client to the hub
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	userID := client.userID
	if _, ok := h.clients[userID]; !ok {
		h.clients[userID] = make(map[*Client]bool)
	}
	h.clients[userID][client] = true

	h.logger.Info().
		Int64("userID", userID).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("Client registered")
}

// unregisterClient unregisters a client from the hub
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	userID := client.userID
	if _, ok := h.clients[userID]; ok {
		if _, ok := h.clients[userID][client]; ok {
			delete(h.clients[userID], client)
			close(client.send)

			// If the user has no more open connections, clean up
			if len(h.clients[userID]) == 0 {
				delete(h.clients, userID)
			}

			h.logger.Info().
				Int64("userID", userID).
				Str("addr", client.conn.RemoteAddr().String()).
				Msg("Client unregistered")
		}
	}
}

// deliverEvent sends an event to every open connection of the addressed user
func (h *Hub) deliverEvent(event *Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.clients[event.UserID]
	if !ok {
		h.logger.Debug().
			Int64("userID", event.UserID).
			Msg("No open connections for user, event dropped")
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("userID", event.UserID).
			Msg("Failed to marshal event for delivery")
		return
	}

	for client := range clients {
		select {
		case client.send <- data:
			// Event queued successfully
		default:
			// Client's send buffer is full, they might be slow or disconnected
			h.mu.RUnlock()
			h.unregister <- client
			h.mu.RLock()
		}
	}

	h.logger.Debug().
		Int64("userID", event.UserID).
		Int("clientCount", len(clients)).
		Msg("Event delivered to user connections")
}

// PushToUser queues an event for delivery to a user's open connections.
// Delivery is best effort; the underlying data is persisted separately,
// so an event dropped here is still visible through the REST endpoints.
func (h *Hub) PushToUser(userID int64, eventType string, payload interface{}) {
	event := &Event{
		Type:      eventType,
		UserID:    userID,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	select {
	case h.events <- event:
	default:
		h.logger.Warn().
			Int64("userID", userID).
			Str("eventType", eventType).
			Msg("Event queue full, event dropped")
	}
}

// GetConnectionCount returns the number of open connections for a user
func (h *Hub) GetConnectionCount(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, ok := h.clients[userID]; ok {
		return len(clients)
	}
	return 0
}
