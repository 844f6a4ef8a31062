package dto

import "github.com/google/uuid"

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	User  UserSummary `json:"user"`
	Token string      `json:"token"`
}

type CreateWorkspaceRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type UpdateWorkspaceRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type JoinWorkspaceRequest struct {
	JoinCode string `json:"joinCode" binding:"required,len=6"`
}

type CreateChannelRequest struct {
	Name        string    `json:"name" binding:"required,max=80"`
	WorkspaceID uuid.UUID `json:"workspaceId" binding:"required"`
}

type UpdateChannelRequest struct {
	Name string `json:"name" binding:"required,max=80"`
}

type AddMemberRequest struct {
	WorkspaceID uuid.UUID `json:"workspaceId" binding:"required"`
	UserID      uuid.UUID `json:"userId" binding:"required"`
	Role        string    `json:"role" binding:"required,oneof=ADMIN MEMBER"`
}

type UpdateMemberRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=ADMIN MEMBER"`
}

type CreateConversationRequest struct {
	WorkspaceID uuid.UUID `json:"workspaceId" binding:"required"`
	MemberOneID uuid.UUID `json:"memberOneId" binding:"required"`
	MemberTwoID uuid.UUID `json:"memberTwoId" binding:"required"`
}

type CreateMessageRequest struct {
	Body            string     `json:"body" binding:"required,max=10000"`
	ImageID         *string    `json:"imageId"`
	WorkspaceID     uuid.UUID  `json:"workspaceId" binding:"required"`
	MemberID        uuid.UUID  `json:"memberId" binding:"required"`
	ChannelID       *uuid.UUID `json:"channelId"`
	ConversationID  *uuid.UUID `json:"conversationId"`
	ParentMessageID *uuid.UUID `json:"parentMessageId"`
}

type UpdateMessageRequest struct {
	Body string `json:"body" binding:"required,max=10000"`
}

type TypingRequest struct {
	WorkspaceID    uuid.UUID  `json:"workspaceId" binding:"required"`
	ChannelID      *uuid.UUID `json:"channelId"`
	ConversationID *uuid.UUID `json:"conversationId"`
	UserID         uuid.UUID  `json:"userId" binding:"required"`
}

type ReactionRequest struct {
	MessageID uuid.UUID `json:"messageId" binding:"required"`
	MemberID  uuid.UUID `json:"memberId" binding:"required"`
	Value     string    `json:"value" binding:"required,max=32"`
}
