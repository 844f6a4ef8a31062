package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MaheshMoholkar/slack/internal/dto"
	"github.com/MaheshMoholkar/slack/internal/services"
)

const (
	defaultPageSize = 50
	maxPageSize     = 100
)

type MessageHandler struct {
	messages *services.MessageService
	presence *services.PresenceService
}

func NewMessageHandler(messages *services.MessageService, presence *services.PresenceService) *MessageHandler {
	return &MessageHandler{messages: messages, presence: presence}
}

func (h *MessageHandler) Create(c *gin.Context) {
	var req dto.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.messages.Create(services.CreateMessageInput{
		Body:            req.Body,
		ImageID:         req.ImageID,
		WorkspaceID:     req.WorkspaceID,
		MemberID:        req.MemberID,
		ChannelID:       req.ChannelID,
		ConversationID:  req.ConversationID,
		ParentMessageID: req.ParentMessageID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromMessage(message))
}

func (h *MessageHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	message, err := h.messages.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromMessage(message))
}

func (h *MessageHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.messages.Update(id, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromMessage(message))
}

func (h *MessageHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.messages.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "message deleted"})
}

func (h *MessageHandler) ListChannelMessages(c *gin.Context) {
	channelID, ok := pathID(c, "id")
	if !ok {
		return
	}
	page, size := pagination(c)

	messages, err := h.messages.ListChannelMessages(channelID, page, size)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": messages,
		"hasMore":  len(messages) == size,
	})
}

func (h *MessageHandler) ListConversationMessages(c *gin.Context) {
	conversationID, ok := pathID(c, "id")
	if !ok {
		return
	}
	page, size := pagination(c)

	messages, err := h.messages.ListConversationMessages(conversationID, page, size)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": messages,
		"hasMore":  len(messages) == size,
	})
}

func (h *MessageHandler) ListThreadReplies(c *gin.Context) {
	parentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	replies, err := h.messages.ListThreadReplies(parentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": replies})
}

func (h *MessageHandler) NotifyTyping(c *gin.Context) {
	h.typing(c, true)
}

func (h *MessageHandler) StopTyping(c *gin.Context) {
	h.typing(c, false)
}

func (h *MessageHandler) typing(c *gin.Context, isTyping bool) {
	var req dto.TypingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.presence.SetTyping(req.WorkspaceID, req.ChannelID, req.ConversationID, req.UserID, isTyping)
	c.Status(http.StatusOK)
}

func pagination(c *gin.Context) (page, size int) {
	page = 0
	size = defaultPageSize
	if p := c.Query("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed >= 0 {
			page = parsed
		}
	}
	if s := c.Query("size"); s != "" {
		if parsed, err := strconv.Atoi(s); err == nil && parsed > 0 && parsed <= maxPageSize {
			size = parsed
		}
	}
	return page, size
}
