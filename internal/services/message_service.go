package services

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MaheshMoholkar/slack/internal/database"
	"github.com/MaheshMoholkar/slack/internal/dto"
	"github.com/MaheshMoholkar/slack/internal/events"
	"github.com/MaheshMoholkar/slack/internal/models"
)

type MessageService struct {
	db          *database.Database
	broadcaster *events.Broadcaster
	log         *zap.Logger
}

func NewMessageService(db *database.Database, broadcaster *events.Broadcaster, log *zap.Logger) *MessageService {
	return &MessageService{db: db, broadcaster: broadcaster, log: log}
}

type CreateMessageInput struct {
	Body            string
	ImageID         *string
	WorkspaceID     uuid.UUID // must match the member's workspace when set
	MemberID        uuid.UUID
	ChannelID       *uuid.UUID
	ConversationID  *uuid.UUID
	ParentMessageID *uuid.UUID
}

// scopeTopic picks the channel or conversation topic for a message;
// every message has exactly one of the two set.
func scopeTopic(m *models.Message) string {
	if m.ChannelID != nil {
		return events.ChannelTopic(m.WorkspaceID, *m.ChannelID)
	}
	return events.ConversationTopic(m.WorkspaceID, *m.ConversationID)
}

// Create posts a root message into a channel or conversation, or a
// reply into its parent's thread. Threads are one level deep: only a
// root message can be a parent. A reply's placement always comes from
// the parent; a caller-supplied placement that disagrees is rejected
// before anything is written.
func (s *MessageService) Create(in CreateMessageInput) (*models.Message, error) {
	member, err := s.db.GetMember(in.MemberID)
	if err != nil {
		return nil, wrapLookup(err, "member %s", in.MemberID)
	}
	if in.WorkspaceID != uuid.Nil && in.WorkspaceID != member.WorkspaceID {
		return nil, invalid("member %s does not belong to workspace %s", in.MemberID, in.WorkspaceID)
	}

	message := &models.Message{
		Body:        in.Body,
		ImageID:     in.ImageID,
		MemberID:    member.ID,
		WorkspaceID: member.WorkspaceID,
	}

	if in.ParentMessageID != nil {
		parent, err := s.db.GetMessage(*in.ParentMessageID)
		if err != nil {
			return nil, wrapLookup(err, "parent message %s", *in.ParentMessageID)
		}
		if parent.ParentMessageID != nil {
			return nil, invalid("message %s is a reply and cannot start a thread", parent.ID)
		}
		if in.ChannelID != nil && (parent.ChannelID == nil || *parent.ChannelID != *in.ChannelID) {
			return nil, invalid("reply placement conflicts with parent message %s", parent.ID)
		}
		if in.ConversationID != nil && (parent.ConversationID == nil || *parent.ConversationID != *in.ConversationID) {
			return nil, invalid("reply placement conflicts with parent message %s", parent.ID)
		}
		message.ParentMessageID = &parent.ID
		message.ChannelID = parent.ChannelID
		message.ConversationID = parent.ConversationID
	} else {
		if (in.ChannelID == nil) == (in.ConversationID == nil) {
			return nil, invalid("exactly one of channelId and conversationId must be set")
		}
		if in.ChannelID != nil {
			channel, err := s.db.GetChannel(*in.ChannelID)
			if err != nil {
				return nil, wrapLookup(err, "channel %s", *in.ChannelID)
			}
			message.ChannelID = &channel.ID
		} else {
			conversation, err := s.db.GetConversation(*in.ConversationID)
			if err != nil {
				return nil, wrapLookup(err, "conversation %s", *in.ConversationID)
			}
			message.ConversationID = &conversation.ID
		}
	}

	if err := s.db.SaveMessage(message); err != nil {
		return nil, err
	}
	message.Member = *member

	s.broadcaster.Publish(scopeTopic(message), s.messageEvent(events.TypeMessageSent, message))

	return message, nil
}

func (s *MessageService) Get(messageID uuid.UUID) (*models.Message, error) {
	message, err := s.db.GetMessage(messageID)
	if err != nil {
		return nil, wrapLookup(err, "message %s", messageID)
	}
	return message, nil
}

// Update replaces the body and bumps updatedAt. Ownership checks are the
// caller's concern.
func (s *MessageService) Update(messageID uuid.UUID, body string) (*models.Message, error) {
	message, err := s.Get(messageID)
	if err != nil {
		return nil, err
	}

	message.Body = body
	if err := s.db.UpdateMessage(message); err != nil {
		return nil, err
	}

	s.broadcaster.Publish(scopeTopic(message), s.messageEvent(events.TypeMessageUpdated, message))

	return message, nil
}

// Delete removes the message along with its thread replies and every
// reaction either carried. The event payload is the deleted id.
func (s *MessageService) Delete(messageID uuid.UUID) error {
	message, err := s.Get(messageID)
	if err != nil {
		return err
	}

	if err := s.db.DeleteMessage(message.ID); err != nil {
		return err
	}

	event := events.Event{
		Type:        events.TypeMessageDeleted,
		WorkspaceID: message.WorkspaceID.String(),
		Payload:     message.ID.String(),
	}
	if message.ChannelID != nil {
		event.ChannelID = message.ChannelID.String()
	}
	if message.ConversationID != nil {
		event.ConversationID = message.ConversationID.String()
	}
	s.broadcaster.Publish(scopeTopic(message), event)

	return nil
}

// ListChannelMessages returns one page of the channel's root messages,
// newest first, each enriched with its thread summary.
func (s *MessageService) ListChannelMessages(channelID uuid.UUID, page, size int) ([]dto.MessageResponse, error) {
	messages, err := s.db.GetChannelMessages(channelID, page, size)
	if err != nil {
		return nil, err
	}
	return s.enrichPage(messages)
}

// ListConversationMessages returns one page of the conversation's root
// messages, newest first, each enriched with its thread summary.
func (s *MessageService) ListConversationMessages(conversationID uuid.UUID, page, size int) ([]dto.MessageResponse, error) {
	messages, err := s.db.GetConversationMessages(conversationID, page, size)
	if err != nil {
		return nil, err
	}
	return s.enrichPage(messages)
}

// ListThreadReplies returns a root message's replies oldest first,
// without enrichment.
func (s *MessageService) ListThreadReplies(parentMessageID uuid.UUID) ([]dto.MessageResponse, error) {
	if _, err := s.Get(parentMessageID); err != nil {
		return nil, err
	}

	replies, err := s.db.GetThreadMessages(parentMessageID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.MessageResponse, len(replies))
	for i := range replies {
		responses[i] = dto.FromMessage(&replies[i])
	}
	return responses, nil
}

// enrichPage attaches thread summaries using one batched replies query
// for the whole page.
func (s *MessageService) enrichPage(messages []models.Message) ([]dto.MessageResponse, error) {
	ids := make([]uuid.UUID, len(messages))
	for i := range messages {
		ids[i] = messages[i].ID
	}

	summaries, err := s.db.GetThreadSummaries(ids)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.MessageResponse, len(messages))
	for i := range messages {
		response := dto.FromMessage(&messages[i])
		if summary, ok := summaries[messages[i].ID]; ok {
			response.ThreadCount = summary.Count
			response.ThreadTimestamp = summary.LatestReply.CreatedAt
			response.ThreadName = summary.LatestReply.Member.User.Name
			response.ThreadImage = summary.LatestReply.Member.User.ImageURL
		}
		responses[i] = response
	}
	return responses, nil
}

func (s *MessageService) messageEvent(kind events.Type, message *models.Message) events.Event {
	event := events.Event{
		Type:        kind,
		WorkspaceID: message.WorkspaceID.String(),
		Payload:     dto.FromMessage(message),
	}
	if message.ChannelID != nil {
		event.ChannelID = message.ChannelID.String()
	}
	if message.ConversationID != nil {
		event.ConversationID = message.ConversationID.String()
	}
	return event
}
