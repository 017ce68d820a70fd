package ws_like

import (
	"context"
	"log/slog"

	"github.com/gorilla/websocket"
	"github.com/humanbelnik/moviematch/internal/model"
)

const (
	EventLikeSaved = "LIKE_SAVED"

	sendBuffer      = 16
	broadcastBuffer = 64
)

type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type LikePayload struct {
	ID       int64  `json:"id"`
	TmdbID   int64  `json:"tmdbId"`
	Username string `json:"username"`
	Liked    bool   `json:"liked"`
}

type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan Event
	username string
}

type userEvent struct {
	username string
	event    Event
}

// Hub fans like events out to the sockets of the user who reacted.
// The registry is owned by the Run goroutine.
type Hub struct {
	logger     *slog.Logger
	users      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan userEvent
	done       chan struct{}

	onRegister func(username string)
}

type HubOption func(*Hub)

func WithLogger(logger *slog.Logger) HubOption {
	return func(h *Hub) {
		h.logger = logger
	}
}

func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		logger:     slog.Default(),
		users:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan userEvent, broadcastBuffer),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run serves the hub until ctx is done, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.handleRegister(client)

		case client := <-h.unregister:
			h.handleUnregister(client)

		case ue := <-h.broadcast:
			h.broadcastToUser(ue.username, ue.event)
		}
	}
}

// LikeSaved implements the like usecase notifier.
func (h *Hub) LikeSaved(ctx context.Context, like model.Like) {
	ev := userEvent{
		username: like.Username,
		event: Event{
			Type: EventLikeSaved,
			Payload: LikePayload{
				ID:       like.ID,
				TmdbID:   like.TmdbID,
				Username: like.Username,
				Liked:    like.Liked,
			},
		},
	}

	select {
	case h.broadcast <- ev:
	case <-h.done:
	case <-ctx.Done():
	}
}

func (h *Hub) handleRegister(client *Client) {
	if _, exists := h.users[client.username]; !exists {
		h.users[client.username] = make(map[*Client]bool)
	}
	h.users[client.username][client] = true

	h.logger.Info("client registered", "username", client.username)
	if h.onRegister != nil {
		h.onRegister(client.username)
	}
}

func (h *Hub) handleUnregister(client *Client) {
	clients, exists := h.users[client.username]
	if !exists || !clients[client] {
		return
	}
	h.drop(client)

	h.logger.Info("client unregistered", "username", client.username)
}

func (h *Hub) drop(client *Client) {
	clients := h.users[client.username]
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.users, client.username)
	}
}

func (h *Hub) broadcastToUser(username string, event Event) {
	for client := range h.users[username] {
		select {
		case client.send <- event:
		default:
			h.logger.Warn("dropping slow client", "username", username)
			h.drop(client)
		}
	}
}

func (h *Hub) closeAll() {
	for _, clients := range h.users {
		for client := range clients {
			h.drop(client)
		}
	}
}

func (h *Hub) subscribe(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) unsubscribe(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}
