package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MaheshMoholkar/slack/internal/dto"
	"github.com/MaheshMoholkar/slack/internal/services"
)

type ReactionHandler struct {
	reactions *services.ReactionService
}

func NewReactionHandler(reactions *services.ReactionService) *ReactionHandler {
	return &ReactionHandler{reactions: reactions}
}

func (h *ReactionHandler) Add(c *gin.Context) {
	var req dto.ReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reaction, err := h.reactions.Add(req.MessageID, req.MemberID, req.Value)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromReaction(reaction))
}

func (h *ReactionHandler) Remove(c *gin.Context) {
	var req dto.ReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.reactions.Remove(req.MessageID, req.MemberID, req.Value); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "reaction removed"})
}

func (h *ReactionHandler) ListByMessage(c *gin.Context) {
	messageID, ok := pathID(c, "id")
	if !ok {
		return
	}

	reactions, err := h.reactions.List(messageID)
	if err != nil {
		respondError(c, err)
		return
	}

	result := make([]dto.ReactionResponse, len(reactions))
	for i := range reactions {
		result[i] = dto.FromReaction(&reactions[i])
	}
	c.JSON(http.StatusOK, result)
}
