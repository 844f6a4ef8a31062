package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/MaheshMoholkar/slack/internal/events"
)

const (
	writeWait = 10 * time.Second

	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxFrameSize = 4 * 1024
)

// ControlFrame is what clients send upstream: topic subscription
// management. All domain mutations go through the HTTP API; the socket
// is a downstream event feed.
type ControlFrame struct {
	Action string `json:"action"` // subscribe | unsubscribe
	Topic  string `json:"topic"`
}

type Client struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Conn   *websocket.Conn
	Send   chan []byte

	subs map[string]*events.Subscription
	hub  *Hub
	log  *zap.Logger

	done      chan struct{}
	closeOnce sync.Once
	mu        sync.Mutex
}

func NewClient(hub *Hub, conn *websocket.Conn, userID uuid.UUID, log *zap.Logger) *Client {
	return &Client{
		ID:     uuid.New(),
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 256),
		subs:   make(map[string]*events.Subscription),
		hub:    hub,
		log:    log,
		done:   make(chan struct{}),
	}
}

// ReadPump consumes control frames until the connection drops.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxFrameSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var frame ControlFrame
		if err := c.Conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Warn("websocket read", zap.Error(err))
			}
			break
		}

		if frame.Topic == "" {
			c.sendError(ErrInvalidFrame.Error())
			continue
		}

		switch frame.Action {
		case "subscribe":
			c.hub.Subscribe(c, frame.Topic)
		case "unsubscribe":
			c.hub.Unsubscribe(c, frame.Topic)
		default:
			c.sendError(ErrUnknownAction.Error())
		}
	}
}

// WritePump drains the send queue to the socket and keeps the
// connection alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case <-c.done:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case message := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) sendError(message string) {
	data, err := json.Marshal(map[string]string{"error": message})
	if err != nil {
		return
	}
	select {
	case c.Send <- data:
	default:
	}
}

// dropSubscriptions detaches every topic subscription; the forwarding
// goroutines exit as their channels close.
func (c *Client) dropSubscriptions() {
	c.mu.Lock()
	subs := make([]*events.Subscription, 0, len(c.subs))
	for topic, sub := range c.subs {
		subs = append(subs, sub)
		delete(c.subs, topic)
	}
	c.mu.Unlock()

	for _, sub := range subs {
		c.hub.broadcaster.Unsubscribe(sub)
	}
}
