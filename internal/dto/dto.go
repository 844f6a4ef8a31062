package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/MaheshMoholkar/slack/internal/models"
)

type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	ImageURL string    `json:"imageUrl,omitempty"`
}

type MemberSummary struct {
	ID   uuid.UUID   `json:"id"`
	Role models.Role `json:"role"`
	User UserSummary `json:"user"`
}

func FromMember(m *models.Member) MemberSummary {
	return MemberSummary{
		ID:   m.ID,
		Role: m.Role,
		User: UserSummary{
			ID:       m.User.ID,
			Name:     m.User.Name,
			ImageURL: m.User.ImageURL,
		},
	}
}

type WorkspaceResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	UserID   uuid.UUID `json:"userId"`
	JoinCode string    `json:"joinCode"`
}

func FromWorkspace(w *models.Workspace) WorkspaceResponse {
	return WorkspaceResponse{
		ID:       w.ID,
		Name:     w.Name,
		UserID:   w.UserID,
		JoinCode: w.JoinCode,
	}
}

type ChannelResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	WorkspaceID uuid.UUID `json:"workspaceId"`
	CreatedAt   time.Time `json:"createdAt"`
}

func FromChannel(c *models.Channel) ChannelResponse {
	return ChannelResponse{
		ID:          c.ID,
		Name:        c.Name,
		WorkspaceID: c.WorkspaceID,
		CreatedAt:   c.CreatedAt,
	}
}

type ConversationResponse struct {
	ID          uuid.UUID     `json:"id"`
	WorkspaceID uuid.UUID     `json:"workspaceId"`
	MemberOne   MemberSummary `json:"memberOne"`
	MemberTwo   MemberSummary `json:"memberTwo"`
}

func FromConversation(c *models.Conversation) ConversationResponse {
	return ConversationResponse{
		ID:          c.ID,
		WorkspaceID: c.WorkspaceID,
		MemberOne:   FromMember(&c.MemberOne),
		MemberTwo:   FromMember(&c.MemberTwo),
	}
}

// MessageResponse is the transport shape of a message. The Thread*
// fields are only populated by list enrichment on root messages that
// have replies.
type MessageResponse struct {
	ID              uuid.UUID     `json:"id"`
	Body            string        `json:"body"`
	ImageID         *string       `json:"imageId,omitempty"`
	Member          MemberSummary `json:"member"`
	WorkspaceID     uuid.UUID     `json:"workspaceId"`
	ChannelID       *uuid.UUID    `json:"channelId,omitempty"`
	ConversationID  *uuid.UUID    `json:"conversationId,omitempty"`
	ParentMessageID *uuid.UUID    `json:"parentMessageId,omitempty"`
	CreatedAt       int64         `json:"createdAt"`
	UpdatedAt       int64         `json:"updatedAt"`
	ThreadCount     int           `json:"threadCount,omitempty"`
	ThreadName      string        `json:"threadName,omitempty"`
	ThreadImage     string        `json:"threadImage,omitempty"`
	ThreadTimestamp int64         `json:"threadTimestamp,omitempty"`
}

func FromMessage(m *models.Message) MessageResponse {
	return MessageResponse{
		ID:              m.ID,
		Body:            m.Body,
		ImageID:         m.ImageID,
		Member:          FromMember(&m.Member),
		WorkspaceID:     m.WorkspaceID,
		ChannelID:       m.ChannelID,
		ConversationID:  m.ConversationID,
		ParentMessageID: m.ParentMessageID,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

type ReactionResponse struct {
	ID          uuid.UUID `json:"id"`
	Value       string    `json:"value"`
	MessageID   uuid.UUID `json:"messageId"`
	MemberID    uuid.UUID `json:"memberId"`
	WorkspaceID uuid.UUID `json:"workspaceId"`
}

func FromReaction(r *models.Reaction) ReactionResponse {
	return ReactionResponse{
		ID:          r.ID,
		Value:       r.Value,
		MessageID:   r.MessageID,
		MemberID:    r.MemberID,
		WorkspaceID: r.WorkspaceID,
	}
}
