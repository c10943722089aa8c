package websocket

import (
	"context"

	"github.com/educat/tutor_marketplace/services"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

type Client struct {
	UserID uuid.UUID
	Conn   Conn
}

type delivery struct {
	userID uuid.UUID
	event  services.Event
}

// Hub fans lesson, review and request events out to connected users. A user
// may hold several connections.
type Hub struct {
	clients    map[uuid.UUID]map[Conn]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan delivery
	log        *zap.Logger
}

var _ services.Notifier = (*Hub)(nil)

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[Conn]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan delivery, 256),
		log:        log.Named("hub"),
	}
}

func (h *Hub) Register(c *Client)   { h.register <- c }
func (h *Hub) Unregister(c *Client) { h.unregister <- c }

// Notify queues the event for userID. When the queue is full the event is dropped.
func (h *Hub) Notify(userID uuid.UUID, event services.Event) {
	select {
	case h.broadcast <- delivery{userID: userID, event: event}:
	default:
		h.log.Warn("notification queue full, dropping event",
			zap.String("user_id", userID.String()), zap.String("type", event.Type))
	}
}

// Run owns the client registry until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for _, conns := range h.clients {
				for conn := range conns {
					_ = conn.Close()
				}
			}
			h.clients = make(map[uuid.UUID]map[Conn]struct{})
			return
		case client := <-h.register:
			h.log.Debug("client registered", zap.String("user_id", client.UserID.String()))
			conns, ok := h.clients[client.UserID]
			if !ok {
				conns = make(map[Conn]struct{})
				h.clients[client.UserID] = conns
			}
			conns[client.Conn] = struct{}{}
		case client := <-h.unregister:
			h.log.Debug("client unregistered", zap.String("user_id", client.UserID.String()))
			h.remove(client.UserID, client.Conn)
		case d := <-h.broadcast:
			for conn := range h.clients[d.userID] {
				if err := conn.WriteJSON(d.event); err != nil {
					h.log.Warn("failed to deliver event",
						zap.String("user_id", d.userID.String()), zap.Error(err))
					_ = conn.Close()
					h.remove(d.userID, conn)
				}
			}
		}
	}
}

func (h *Hub) remove(userID uuid.UUID, conn Conn) {
	conns, ok := h.clients[userID]
	if !ok {
		return
	}
	delete(conns, conn)
	if len(conns) == 0 {
		delete(h.clients, userID)
	}
}
