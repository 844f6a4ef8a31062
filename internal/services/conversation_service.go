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

type ConversationService struct {
	db          *database.Database
	broadcaster *events.Broadcaster
	log         *zap.Logger
}

func NewConversationService(db *database.Database, broadcaster *events.Broadcaster, log *zap.Logger) *ConversationService {
	return &ConversationService{db: db, broadcaster: broadcaster, log: log}
}

// GetOrCreate resolves the 1:1 conversation for an unordered member
// pair. The found path returns the record unchanged and emits nothing.
// On the create path a unique index guards the lookup-then-insert race:
// the loser re-reads and returns the winner's conversation.
func (s *ConversationService) GetOrCreate(workspaceID, memberAID, memberBID uuid.UUID) (*models.Conversation, error) {
	existing, err := s.db.FindConversationByMembers(workspaceID, memberAID, memberBID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.db.GetWorkspace(workspaceID); err != nil {
		return nil, wrapLookup(err, "workspace %s", workspaceID)
	}
	memberA, err := s.db.GetMember(memberAID)
	if err != nil {
		return nil, wrapLookup(err, "member %s", memberAID)
	}
	memberB, err := s.db.GetMember(memberBID)
	if err != nil {
		return nil, wrapLookup(err, "member %s", memberBID)
	}
	if memberA.WorkspaceID != workspaceID {
		return nil, notFound("member %s in workspace %s", memberAID, workspaceID)
	}
	if memberB.WorkspaceID != workspaceID {
		return nil, notFound("member %s in workspace %s", memberBID, workspaceID)
	}

	conversation := &models.Conversation{
		WorkspaceID: workspaceID,
		MemberOneID: memberAID,
		MemberTwoID: memberBID,
	}
	if err := s.db.CreateConversation(conversation); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race; the winner's record is the result.
			return s.db.FindConversationByMembers(workspaceID, memberAID, memberBID)
		}
		return nil, err
	}

	created, err := s.db.GetConversation(conversation.ID)
	if err != nil {
		return nil, err
	}

	s.broadcaster.Publish(events.WorkspaceTopic(workspaceID), events.Event{
		Type:        events.TypeConversationCreated,
		WorkspaceID: workspaceID.String(),
		Payload:     dto.FromConversation(created),
	})

	s.log.Info("conversation created",
		zap.String("conversation_id", created.ID.String()),
		zap.String("workspace_id", workspaceID.String()))

	return created, nil
}

func (s *ConversationService) Get(conversationID uuid.UUID) (*models.Conversation, error) {
	conversation, err := s.db.GetConversation(conversationID)
	if err != nil {
		return nil, wrapLookup(err, "conversation %s", conversationID)
	}
	return conversation, nil
}

func (s *ConversationService) GetWorkspaceConversations(workspaceID uuid.UUID) ([]models.Conversation, error) {
	return s.db.GetWorkspaceConversations(workspaceID)
}

func (s *ConversationService) GetMemberConversations(workspaceID, memberID uuid.UUID) ([]models.Conversation, error) {
	return s.db.GetMemberConversations(workspaceID, memberID)
}

// Delete cascades to the conversation's messages and their reactions.
func (s *ConversationService) Delete(conversationID uuid.UUID) error {
	conversation, err := s.Get(conversationID)
	if err != nil {
		return err
	}

	if err := s.db.DeleteConversation(conversation.ID); err != nil {
		return err
	}

	s.broadcaster.Publish(events.WorkspaceTopic(conversation.WorkspaceID), events.Event{
		Type:           events.TypeConversationDeleted,
		WorkspaceID:    conversation.WorkspaceID.String(),
		ConversationID: conversation.ID.String(),
		Payload:        conversation.ID.String(),
	})

	return nil
}
