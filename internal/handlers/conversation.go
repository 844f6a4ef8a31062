package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MaheshMoholkar/slack/internal/dto"
	"github.com/MaheshMoholkar/slack/internal/services"
)

type ConversationHandler struct {
	conversations *services.ConversationService
}

func NewConversationHandler(conversations *services.ConversationService) *ConversationHandler {
	return &ConversationHandler{conversations: conversations}
}

// CreateOrGet resolves the 1:1 conversation for a member pair; repeated
// calls with the pair in either order return the same conversation.
func (h *ConversationHandler) CreateOrGet(c *gin.Context) {
	var req dto.CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conversation, err := h.conversations.GetOrCreate(req.WorkspaceID, req.MemberOneID, req.MemberTwoID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromConversation(conversation))
}

func (h *ConversationHandler) ListByWorkspace(c *gin.Context) {
	workspaceID, ok := pathID(c, "id")
	if !ok {
		return
	}

	conversations, err := h.conversations.GetWorkspaceConversations(workspaceID)
	if err != nil {
		respondError(c, err)
		return
	}

	result := make([]dto.ConversationResponse, len(conversations))
	for i := range conversations {
		result[i] = dto.FromConversation(&conversations[i])
	}
	c.JSON(http.StatusOK, result)
}

func (h *ConversationHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.conversations.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "conversation deleted"})
}
