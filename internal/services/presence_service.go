package services

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MaheshMoholkar/slack/internal/events"
)

// PresenceService pushes ephemeral presence and typing state through the
// broadcaster. Nothing here is persisted: a late subscriber simply
// starts from the next update.
type PresenceService struct {
	broadcaster *events.Broadcaster
	log         *zap.Logger
}

func NewPresenceService(broadcaster *events.Broadcaster, log *zap.Logger) *PresenceService {
	return &PresenceService{broadcaster: broadcaster, log: log}
}

// SetOnline announces the user's presence on the global presence topic.
func (s *PresenceService) SetOnline(userID uuid.UUID, isOnline bool) {
	s.broadcaster.Publish(events.PresenceTopic, events.Event{
		Type: events.TypePresenceUpdate,
		Payload: events.PresencePayload{
			UserID:   userID.String(),
			IsOnline: isOnline,
		},
	})
}

// SetTyping announces typing state on the channel or conversation
// topic. With neither target set the call is a no-op; the caller is
// responsible for the matching stop-typing signal.
func (s *PresenceService) SetTyping(workspaceID uuid.UUID, channelID, conversationID *uuid.UUID, userID uuid.UUID, isTyping bool) {
	event := events.Event{
		Type:        events.TypeTypingUpdate,
		WorkspaceID: workspaceID.String(),
		Payload: events.TypingPayload{
			UserID:   userID.String(),
			IsTyping: isTyping,
		},
	}

	switch {
	case channelID != nil:
		event.ChannelID = channelID.String()
		s.broadcaster.Publish(events.ChannelTopic(workspaceID, *channelID), event)
	case conversationID != nil:
		event.ConversationID = conversationID.String()
		s.broadcaster.Publish(events.ConversationTopic(workspaceID, *conversationID), event)
	}
}
