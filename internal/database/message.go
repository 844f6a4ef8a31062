package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MaheshMoholkar/slack/internal/models"
)

// ThreadSummary aggregates a root message's replies for list views.
type ThreadSummary struct {
	Count       int
	LatestReply *models.Message
}

func (d *Database) SaveMessage(message *models.Message) error {
	return d.db.Create(message).Error
}

func (d *Database) GetMessage(id uuid.UUID) (*models.Message, error) {
	var message models.Message
	if err := d.db.Preload("Member.User").First(&message, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

func (d *Database) UpdateMessage(message *models.Message) error {
	return d.db.Save(message).Error
}

// DeleteMessage removes the message, its thread replies, and the
// reactions of all of them in one transaction.
func (d *Database) DeleteMessage(id uuid.UUID) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("message_id = ? OR message_id IN (?)", id,
				tx.Model(&models.Message{}).Select("id").Where("parent_message_id = ?", id)).
			Delete(&models.Reaction{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Message{}, "parent_message_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Message{}, "id = ?", id).Error
	})
}

// GetChannelMessages returns root messages only, newest first.
func (d *Database) GetChannelMessages(channelID uuid.UUID, page, size int) ([]models.Message, error) {
	var messages []models.Message
	err := d.db.
		Where("channel_id = ? AND parent_message_id IS NULL", channelID).
		Order("created_at DESC").
		Offset(page * size).
		Limit(size).
		Preload("Member.User").
		Find(&messages).Error
	return messages, err
}

// GetConversationMessages returns root messages only, newest first.
func (d *Database) GetConversationMessages(conversationID uuid.UUID, page, size int) ([]models.Message, error) {
	var messages []models.Message
	err := d.db.
		Where("conversation_id = ? AND parent_message_id IS NULL", conversationID).
		Order("created_at DESC").
		Offset(page * size).
		Limit(size).
		Preload("Member.User").
		Find(&messages).Error
	return messages, err
}

// GetThreadMessages returns all replies to a root message, oldest first.
func (d *Database) GetThreadMessages(parentMessageID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	err := d.db.
		Where("parent_message_id = ?", parentMessageID).
		Order("created_at ASC").
		Preload("Member.User").
		Find(&messages).Error
	return messages, err
}

// GetThreadSummaries loads the replies of a whole page of root messages
// in a single query and aggregates per parent, so that list enrichment
// never goes one-query-per-message.
func (d *Database) GetThreadSummaries(parentIDs []uuid.UUID) (map[uuid.UUID]*ThreadSummary, error) {
	summaries := make(map[uuid.UUID]*ThreadSummary)
	if len(parentIDs) == 0 {
		return summaries, nil
	}

	var replies []models.Message
	err := d.db.
		Where("parent_message_id IN ?", parentIDs).
		Order("created_at ASC").
		Preload("Member.User").
		Find(&replies).Error
	if err != nil {
		return nil, err
	}

	for i := range replies {
		reply := &replies[i]
		parentID := *reply.ParentMessageID
		summary, ok := summaries[parentID]
		if !ok {
			summary = &ThreadSummary{}
			summaries[parentID] = summary
		}
		summary.Count++
		if summary.LatestReply == nil || reply.CreatedAt >= summary.LatestReply.CreatedAt {
			summary.LatestReply = reply
		}
	}

	return summaries, nil
}
