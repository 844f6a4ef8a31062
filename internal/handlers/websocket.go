package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gorillaws "github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/MaheshMoholkar/slack/internal/middleware"
	"github.com/MaheshMoholkar/slack/internal/websocket"
)

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Cross-origin policy is enforced at the token level.
		return true
	},
}

type WebSocketHandler struct {
	hub *websocket.Hub
	log *zap.Logger
}

func NewWebSocketHandler(hub *websocket.Hub, log *zap.Logger) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, log: log}
}

// Connect upgrades the request and attaches the client to the hub. The
// client then subscribes to topics over the socket itself.
func (h *WebSocketHandler) Connect(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade", zap.Error(err))
		return
	}

	client := websocket.NewClient(h.hub, conn, userID, h.log)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
