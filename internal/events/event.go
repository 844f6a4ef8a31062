package events

import "github.com/google/uuid"

// Type tags the payload shape carried by an Event.
type Type string

const (
	TypeMessageSent    Type = "MESSAGE_SENT"
	TypeMessageUpdated Type = "MESSAGE_UPDATED"
	TypeMessageDeleted Type = "MESSAGE_DELETED"

	TypeChannelCreated Type = "CHANNEL_CREATED"
	TypeChannelUpdated Type = "CHANNEL_UPDATED"
	TypeChannelDeleted Type = "CHANNEL_DELETED"

	TypeMemberJoined  Type = "MEMBER_JOINED"
	TypeMemberUpdated Type = "MEMBER_UPDATED"
	TypeMemberLeft    Type = "MEMBER_LEFT"

	TypeReactionAdded   Type = "REACTION_ADDED"
	TypeReactionRemoved Type = "REACTION_REMOVED"

	TypeConversationCreated Type = "CONVERSATION_CREATED"
	TypeConversationUpdated Type = "CONVERSATION_UPDATED"
	TypeConversationDeleted Type = "CONVERSATION_DELETED"

	TypeWorkspaceCreated Type = "WORKSPACE_CREATED"
	TypeWorkspaceUpdated Type = "WORKSPACE_UPDATED"
	TypeWorkspaceDeleted Type = "WORKSPACE_DELETED"

	TypePresenceUpdate Type = "PRESENCE_UPDATE"
	TypeTypingUpdate   Type = "TYPING_UPDATE"
)

// Event is the envelope pushed to subscribers. The scope ids are set
// when the topic is workspace/channel/conversation scoped and empty for
// the global presence topic.
type Event struct {
	Type           Type   `json:"type"`
	WorkspaceID    string `json:"workspaceId,omitempty"`
	ChannelID      string `json:"channelId,omitempty"`
	ConversationID string `json:"conversationId,omitempty"`
	Payload        any    `json:"payload,omitempty"`
}

type PresencePayload struct {
	UserID   string `json:"userId"`
	IsOnline bool   `json:"isOnline"`
}

type TypingPayload struct {
	UserID   string `json:"userId"`
	IsTyping bool   `json:"isTyping"`
}

type ReactionRemovedPayload struct {
	MessageID string `json:"messageId"`
	MemberID  string `json:"memberId"`
	Value     string `json:"value"`
}

// PresenceTopic is global: presence is not workspace scoped.
const PresenceTopic = "/topic/presence"

func WorkspaceTopic(workspaceID uuid.UUID) string {
	return "/topic/workspace/" + workspaceID.String()
}

func ChannelTopic(workspaceID, channelID uuid.UUID) string {
	return WorkspaceTopic(workspaceID) + "/channel/" + channelID.String()
}

func ConversationTopic(workspaceID, conversationID uuid.UUID) string {
	return WorkspaceTopic(workspaceID) + "/conversation/" + conversationID.String()
}
