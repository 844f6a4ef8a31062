package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MaheshMoholkar/slack/internal/dto"
	"github.com/MaheshMoholkar/slack/internal/services"
)

type ChannelHandler struct {
	channels *services.ChannelService
}

func NewChannelHandler(channels *services.ChannelService) *ChannelHandler {
	return &ChannelHandler{channels: channels}
}

func (h *ChannelHandler) Create(c *gin.Context) {
	var req dto.CreateChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	channel, err := h.channels.Create(req.Name, req.WorkspaceID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromChannel(channel))
}

func (h *ChannelHandler) ListByWorkspace(c *gin.Context) {
	workspaceID, ok := pathID(c, "id")
	if !ok {
		return
	}

	channels, err := h.channels.GetWorkspaceChannels(workspaceID)
	if err != nil {
		respondError(c, err)
		return
	}

	result := make([]dto.ChannelResponse, len(channels))
	for i := range channels {
		result[i] = dto.FromChannel(&channels[i])
	}
	c.JSON(http.StatusOK, result)
}

func (h *ChannelHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	channel, err := h.channels.Update(id, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromChannel(channel))
}

func (h *ChannelHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.channels.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "channel deleted"})
}
