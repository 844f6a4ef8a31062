package services

import (
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MaheshMoholkar/slack/internal/database"
	"github.com/MaheshMoholkar/slack/internal/dto"
	"github.com/MaheshMoholkar/slack/internal/events"
	"github.com/MaheshMoholkar/slack/internal/models"
)

type ReactionService struct {
	db          *database.Database
	broadcaster *events.Broadcaster
	log         *zap.Logger
}

func NewReactionService(db *database.Database, broadcaster *events.Broadcaster, log *zap.Logger) *ReactionService {
	return &ReactionService{db: db, broadcaster: broadcaster, log: log}
}

// Add is idempotent on the (message, member, value) triple: a duplicate
// call, including a lost insert race, returns the existing reaction.
// The event is re-broadcast either way.
func (s *ReactionService) Add(messageID, memberID uuid.UUID, value string) (*models.Reaction, error) {
	message, err := s.db.GetMessage(messageID)
	if err != nil {
		return nil, wrapLookup(err, "message %s", messageID)
	}
	if _, err := s.db.GetMember(memberID); err != nil {
		return nil, wrapLookup(err, "member %s", memberID)
	}

	reaction, err := s.db.FindReaction(messageID, memberID, value)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		reaction = &models.Reaction{
			Value:       value,
			MessageID:   message.ID,
			MemberID:    memberID,
			WorkspaceID: message.WorkspaceID,
		}
		if createErr := s.db.CreateReaction(reaction); createErr != nil {
			if errors.Is(createErr, gorm.ErrDuplicatedKey) {
				reaction, err = s.db.FindReaction(messageID, memberID, value)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, createErr
			}
		}
	} else if err != nil {
		return nil, err
	}

	s.broadcaster.Publish(scopeTopic(message), s.reactionEvent(events.TypeReactionAdded, message, dto.FromReaction(reaction)))

	return reaction, nil
}

// Remove deletes the matching triple; removing a reaction that was
// never added is a no-op, not an error.
func (s *ReactionService) Remove(messageID, memberID uuid.UUID, value string) error {
	message, err := s.db.GetMessage(messageID)
	if err != nil {
		return wrapLookup(err, "message %s", messageID)
	}

	if err := s.db.DeleteReaction(messageID, memberID, value); err != nil {
		return err
	}

	payload := events.ReactionRemovedPayload{
		MessageID: messageID.String(),
		MemberID:  memberID.String(),
		Value:     value,
	}
	s.broadcaster.Publish(scopeTopic(message), s.reactionEvent(events.TypeReactionRemoved, message, payload))

	return nil
}

// List returns a message's reactions in insertion order.
func (s *ReactionService) List(messageID uuid.UUID) ([]models.Reaction, error) {
	if _, err := s.db.GetMessage(messageID); err != nil {
		return nil, wrapLookup(err, "message %s", messageID)
	}
	return s.db.GetMessageReactions(messageID)
}

func (s *ReactionService) reactionEvent(kind events.Type, message *models.Message, payload any) events.Event {
	event := events.Event{
		Type:        kind,
		WorkspaceID: message.WorkspaceID.String(),
		Payload:     payload,
	}
	if message.ChannelID != nil {
		event.ChannelID = message.ChannelID.String()
	}
	if message.ConversationID != nil {
		event.ConversationID = message.ConversationID.String()
	}
	return event
}
