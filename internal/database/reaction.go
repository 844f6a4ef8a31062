package database

import (
	"github.com/google/uuid"

	"github.com/MaheshMoholkar/slack/internal/models"
)

func (d *Database) CreateReaction(reaction *models.Reaction) error {
	return d.db.Create(reaction).Error
}

func (d *Database) FindReaction(messageID, memberID uuid.UUID, value string) (*models.Reaction, error) {
	var reaction models.Reaction
	err := d.db.Preload("Member.User").
		Where("message_id = ? AND member_id = ? AND value = ?", messageID, memberID, value).
		First(&reaction).Error
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

// DeleteReaction removes the matching triple; deleting a triple that is
// not there is not an error.
func (d *Database) DeleteReaction(messageID, memberID uuid.UUID, value string) error {
	return d.db.
		Where("message_id = ? AND member_id = ? AND value = ?", messageID, memberID, value).
		Delete(&models.Reaction{}).Error
}

// GetMessageReactions returns reactions in insertion order.
func (d *Database) GetMessageReactions(messageID uuid.UUID) ([]models.Reaction, error) {
	var reactions []models.Reaction
	err := d.db.Preload("Member.User").
		Where("message_id = ?", messageID).
		Order("created_at ASC").
		Find(&reactions).Error
	return reactions, err
}
