package websocket

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MaheshMoholkar/slack/internal/events"
	"github.com/MaheshMoholkar/slack/internal/services"
)

// Hub tracks connected clients and bridges broadcaster topics to their
// sockets. It also derives presence: a user is online while at least
// one of their connections is registered.
type Hub struct {
	clients map[uuid.UUID]*Client

	// one user may hold several connections
	userClients map[uuid.UUID]map[uuid.UUID]*Client

	register   chan *Client
	unregister chan *Client

	broadcaster *events.Broadcaster
	presence    *services.PresenceService
	log         *zap.Logger

	mu sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc
}

func NewHub(broadcaster *events.Broadcaster, presence *services.PresenceService, log *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:     make(map[uuid.UUID]*Client),
		userClients: make(map[uuid.UUID]map[uuid.UUID]*Client),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		broadcaster: broadcaster,
		presence:    presence,
		log:         log,
		ctx:         ctx,
		cancel:      cancel,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)
		}
	}
}

func (h *Hub) Stop() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		client.dropSubscriptions()
		client.closeOnce.Do(func() { close(client.done) })
		client.Conn.Close()
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	h.clients[client.ID] = client

	firstConnection := false
	if _, ok := h.userClients[client.UserID]; !ok {
		h.userClients[client.UserID] = make(map[uuid.UUID]*Client)
		firstConnection = true
	}
	h.userClients[client.UserID][client.ID] = client
	h.mu.Unlock()

	h.log.Info("client registered",
		zap.String("client_id", client.ID.String()),
		zap.String("user_id", client.UserID.String()))

	if firstConnection {
		h.presence.SetOnline(client.UserID, true)
	}
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client.ID]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client.ID)

	lastConnection := false
	if userClients, ok := h.userClients[client.UserID]; ok {
		delete(userClients, client.ID)
		if len(userClients) == 0 {
			delete(h.userClients, client.UserID)
			lastConnection = true
		}
	}
	h.mu.Unlock()

	client.dropSubscriptions()
	client.closeOnce.Do(func() { close(client.done) })

	h.log.Info("client unregistered",
		zap.String("client_id", client.ID.String()),
		zap.String("user_id", client.UserID.String()))

	if lastConnection {
		h.presence.SetOnline(client.UserID, false)
	}
}

// Subscribe attaches the client to a topic and starts forwarding its
// events to the socket. Subscribing twice to one topic is a no-op.
func (h *Hub) Subscribe(client *Client, topic string) {
	client.mu.Lock()
	if _, ok := client.subs[topic]; ok {
		client.mu.Unlock()
		return
	}
	sub := h.broadcaster.Subscribe(topic)
	client.subs[topic] = sub
	client.mu.Unlock()

	go h.forward(client, sub)
}

func (h *Hub) Unsubscribe(client *Client, topic string) {
	client.mu.Lock()
	sub, ok := client.subs[topic]
	if ok {
		delete(client.subs, topic)
	}
	client.mu.Unlock()

	if ok {
		h.broadcaster.Unsubscribe(sub)
	}
}

// forward pumps one subscription into the client's send queue until the
// subscription is closed. A stalled client drops events rather than
// blocking the topic.
func (h *Hub) forward(client *Client, sub *events.Subscription) {
	for data := range sub.C {
		select {
		case <-client.done:
			return
		case client.Send <- data:
		default:
			h.log.Warn("dropping event",
				zap.String("client_id", client.ID.String()),
				zap.String("topic", sub.Topic),
				zap.Error(ErrClientQueueFull))
		}
	}
}

// OnlineUsers lists users with at least one live connection.
func (h *Hub) OnlineUsers() []uuid.UUID {
	h.mu.RLock()
	defer h.mu.RUnlock()

	users := make([]uuid.UUID, 0, len(h.userClients))
	for userID := range h.userClients {
		users = append(users, userID)
	}
	return users
}
