package database

import (
	"bytes"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MaheshMoholkar/slack/internal/models"
)

// NormalizePair orders a member pair so the smaller uuid comes first.
// Conversations are stored normalized, which lets a plain unique index
// enforce "one conversation per unordered pair per workspace".
func NormalizePair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if bytes.Compare(a[:], b[:]) > 0 {
		return b, a
	}
	return a, b
}

func (d *Database) FindConversationByMembers(workspaceID, memberAID, memberBID uuid.UUID) (*models.Conversation, error) {
	one, two := NormalizePair(memberAID, memberBID)
	var conversation models.Conversation
	err := d.db.
		Preload("MemberOne.User").Preload("MemberTwo.User").
		Where("workspace_id = ? AND member_one_id = ? AND member_two_id = ?", workspaceID, one, two).
		First(&conversation).Error
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (d *Database) CreateConversation(conversation *models.Conversation) error {
	conversation.MemberOneID, conversation.MemberTwoID = NormalizePair(conversation.MemberOneID, conversation.MemberTwoID)
	return d.db.Create(conversation).Error
}

func (d *Database) GetConversation(id uuid.UUID) (*models.Conversation, error) {
	var conversation models.Conversation
	err := d.db.
		Preload("MemberOne.User").Preload("MemberTwo.User").
		First(&conversation, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (d *Database) GetWorkspaceConversations(workspaceID uuid.UUID) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := d.db.
		Preload("MemberOne.User").Preload("MemberTwo.User").
		Where("workspace_id = ?", workspaceID).
		Find(&conversations).Error
	return conversations, err
}

func (d *Database) GetMemberConversations(workspaceID, memberID uuid.UUID) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := d.db.
		Preload("MemberOne.User").Preload("MemberTwo.User").
		Where("workspace_id = ? AND (member_one_id = ? OR member_two_id = ?)", workspaceID, memberID, memberID).
		Find(&conversations).Error
	return conversations, err
}

// DeleteConversation removes the conversation with all its messages and
// their reactions in one transaction.
func (d *Database) DeleteConversation(id uuid.UUID) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("message_id IN (?)", tx.Model(&models.Message{}).Select("id").Where("conversation_id = ?", id)).
			Delete(&models.Reaction{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Message{}, "conversation_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Conversation{}, "id = ?", id).Error
	})
}
